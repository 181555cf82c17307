/*
Package light provides an ICS-10 light client for chains finalized by the
GRANDPA finality gadget.

The client tracks a remote chain through headers carrying GRANDPA
justifications. A justification is accepted once strictly more than two
thirds of the weight of the current authority set signed precommits for the
header, or for descendants of it proven through the justification's votes
ancestries.

A Client stores its state in a store.Store: the client state, one consensus
state per verified height, and every authority set it has trusted. Every
call commits its whole effect in a single atomic write or fails without
writing anything.

	c := light.NewClient("10-grandpa-0", dbs.New(db, "10-grandpa-0"),
		light.Logger(logger),
		light.PruningSize(1000),
	)
	if err := c.Initialize(clientState, consensusState, authoritySet); err != nil {
		return err
	}

	consensusState, err := c.SubmitHeader(header, time.Now())

Authority set changes

A header may carry a GRANDPA ScheduledChange consensus digest. With a zero
delay the new set becomes current as soon as the header is verified. With a
delay of d blocks the change is recorded as pending and enacted by the
header at the scheduled height plus d, which is still finalized by the old
set. Headers beyond that height are rejected until the enacting header has
been submitted. Forced changes and the other GRANDPA consensus logs are
logged and ignored.

Only the digest of a submitted header is inspected, so relayers must submit
every header that announces a change. A client that skips one keeps the
retired set and cannot verify justifications of the new set.

Misbehaviour

Two justifications of the same round finalizing blocks on different forks,
or two precommits from one authority in one round for different blocks,
prove that the authorities broke GRANDPA safety. SubmitMisbehaviour freezes
the client at the lowest implicated height; a frozen client rejects every
further message. Evidence that does not conclusively prove misbehaviour is
rejected with ErrInconclusiveMisbehaviour and changes nothing.
*/
package light
