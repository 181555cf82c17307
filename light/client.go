package light

import (
	"errors"
	"fmt"
	"time"

	"github.com/tendermint/ics10-grandpa/libs/log"
	"github.com/tendermint/ics10-grandpa/light/store"
	"github.com/tendermint/ics10-grandpa/types"
)

// Option sets a parameter for the light client.
type Option func(*Client)

// PruningSize option sets the maximum amount of consensus states that the
// light client stores. After every accepted header, all consensus states
// that are earlier than the h latest ones are removed from the store.
// Default: 0, which does not prune the light client at all.
func PruningSize(h uint16) Option {
	return func(c *Client) {
		c.pruningSize = h
	}
}

// Logger option can be used to set a logger for the client.
func Logger(l log.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithMetrics option sets the metrics the client reports to.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// Client is a GRANDPA light client bound to a single client identifier and
// its store. Every call either commits its whole effect to the store in one
// write or fails without writing anything.
//
// Client is not safe for concurrent use; the host serializes calls for a
// client identifier.
type Client struct {
	clientID    string
	store       store.Store
	pruningSize uint16

	logger  log.Logger
	metrics *Metrics
}

// NewClient returns a light client over the given store. The client must be
// initialized before it accepts messages, unless the store already holds
// its state.
func NewClient(clientID string, s store.Store, options ...Option) *Client {
	c := &Client{
		clientID: clientID,
		store:    s,
		logger:   log.NewNopLogger(),
		metrics:  NopMetrics(),
	}

	for _, o := range options {
		o(c)
	}

	c.logger = c.logger.With("client", clientID)

	return c
}

// ClientID returns the identifier the client is bound to.
func (c *Client) ClientID() string {
	return c.clientID
}

// Initialize performs the first-time setup of the client: it stores the
// client state, the consensus state at its latest height and the authority
// set it trusts.
func (c *Client) Initialize(cs *types.ClientState, cons *types.ConsensusState, set *types.AuthoritySet) error {
	if _, err := c.store.ClientState(); err == nil {
		return ErrAlreadyInitialized
	} else if !errors.Is(err, store.ErrClientStateNotFound) {
		return err
	}

	g := types.Genesis{ClientState: cs, ConsensusState: cons, AuthoritySet: set}
	if err := g.ValidateBasic(); err != nil {
		return fmt.Errorf("invalid genesis: %w", err)
	}
	if cs.IsFrozen() {
		return ErrClientFrozen{FrozenHeight: cs.FrozenHeight}
	}

	err := c.store.Commit(&store.Changeset{
		ClientState:    cs,
		ConsensusState: cons,
		Height:         cs.LatestHeight,
		AuthoritySets:  []*types.AuthoritySet{set},
	})
	if err != nil {
		return fmt.Errorf("failed to save genesis: %w", err)
	}

	c.reportClientState(cs)
	c.logger.Info("initialized light client",
		"chain", cs.ChainID, "height", cs.LatestHeight, "set_id", cs.CurrentSetID, "hash", cons.BlockHash)
	return nil
}

// SubmitHeader verifies a header and its justification against the current
// authority set and, on success, stores a new consensus state at the
// header's height. When the header enacts or announces an authority set
// change, the registry advances or the change is recorded as pending.
//
// SubmitHeader fails with ErrClientFrozen on a frozen client, ErrHeaderTooOld
// if the header is not above the latest height, ErrClockDrift if it is too
// far in the future and with the verifier's error if the justification does
// not verify.
func (c *Client) SubmitHeader(h *types.Header, now time.Time) (*types.ConsensusState, error) {
	cs, err := c.clientState()
	if err != nil {
		return nil, err
	}

	update, err := c.verifyHeader(cs, h, now)
	if err != nil {
		c.metrics.HeadersRejected.Add(1)
		c.logger.Debug("rejected header", "height", uint64(h.Block.Number), "err", err)
		return nil, err
	}

	if err := c.store.Commit(update.changeset); err != nil {
		return nil, fmt.Errorf("failed to save header: %w", err)
	}

	c.afterUpdate(update)
	return update.changeset.ConsensusState, nil
}

// UpdateState commits a header. The header is verified again so that
// nothing unverified is ever written.
func (c *Client) UpdateState(h *types.Header, now time.Time) (*types.ClientState, []*types.ConsensusState, error) {
	cons, err := c.SubmitHeader(h, now)
	if err != nil {
		return nil, nil, err
	}
	cs, err := c.store.ClientState()
	if err != nil {
		return nil, nil, err
	}
	return cs, []*types.ConsensusState{cons}, nil
}

// VerifyClientMessage verifies a header or a misbehaviour without changing
// any state. A misbehaviour verifies only if it is conclusive.
func (c *Client) VerifyClientMessage(msg types.ClientMessage, now time.Time) error {
	cs, err := c.clientState()
	if err != nil {
		return err
	}

	switch m := msg.(type) {
	case *types.Header:
		_, err := c.verifyHeader(cs, m, now)
		return err

	case *types.Misbehaviour:
		_, err := c.verifyMisbehaviour(cs, m)
		return err

	default:
		return fmt.Errorf("unknown client message %T", msg)
	}
}

// CheckForMisbehaviour reports whether msg proves misbehaviour: conclusive
// misbehaviour evidence, or a header finalized by the current authority set
// that conflicts with a stored consensus state.
func (c *Client) CheckForMisbehaviour(msg types.ClientMessage, now time.Time) bool {
	cs, err := c.clientState()
	if err != nil || cs.IsFrozen() {
		return false
	}

	switch m := msg.(type) {
	case *types.Header:
		ok, _ := c.conflictingHeader(cs, m)
		return ok

	case *types.Misbehaviour:
		_, err := c.verifyMisbehaviour(cs, m)
		return err == nil

	default:
		return false
	}
}

// UpdateStateOnMisbehaviour freezes the client if msg proves misbehaviour.
func (c *Client) UpdateStateOnMisbehaviour(msg types.ClientMessage, now time.Time) error {
	switch m := msg.(type) {
	case *types.Header:
		cs, err := c.clientState()
		if err != nil {
			return err
		}
		if cs.IsFrozen() {
			return ErrClientFrozen{FrozenHeight: cs.FrozenHeight}
		}
		ok, err := c.conflictingHeader(cs, m)
		if err != nil {
			return ErrInconclusiveMisbehaviour{Reason: err}
		}
		if !ok {
			return ErrInconclusiveMisbehaviour{Reason: errors.New("header does not conflict with a stored consensus state")}
		}
		return c.freeze(cs, m.GetHeight(), "conflicting header")

	case *types.Misbehaviour:
		return c.SubmitMisbehaviour(m, now)

	default:
		return fmt.Errorf("unknown client message %T", msg)
	}
}

// SubmitMisbehaviour freezes the client at the lowest height implicated by
// conclusive misbehaviour evidence. Evidence that does not conclusively
// prove misbehaviour fails with ErrInconclusiveMisbehaviour.
func (c *Client) SubmitMisbehaviour(m *types.Misbehaviour, now time.Time) error {
	cs, err := c.clientState()
	if err != nil {
		return err
	}

	height, err := c.verifyMisbehaviour(cs, m)
	if err != nil {
		return err
	}

	return c.freeze(cs, height, fmt.Sprintf("%T", m.Evidence))
}

// Status returns the status of the client at now.
func (c *Client) Status(now time.Time) types.Status {
	cs, err := c.store.ClientState()
	if err != nil {
		return types.StatusUnknown
	}
	if cs.IsFrozen() {
		return types.StatusFrozen
	}

	latest, err := c.store.ConsensusState(cs.LatestHeight)
	if err != nil {
		return types.StatusUnknown
	}
	if ConsensusStateExpired(latest, cs.TrustingPeriod, now) {
		return types.StatusExpired
	}
	return types.StatusActive
}

// LatestClientState returns the stored client state.
func (c *Client) LatestClientState() (*types.ClientState, error) {
	return c.clientState()
}

// ConsensusStateAt returns the consensus state stored at height.
func (c *Client) ConsensusStateAt(height uint64) (*types.ConsensusState, error) {
	if height == 0 {
		return nil, errors.New("height must be > 0")
	}
	return c.store.ConsensusState(height)
}

// TimestampAtHeight returns the timestamp of the consensus state at height.
func (c *Client) TimestampAtHeight(height uint64) (time.Time, error) {
	cons, err := c.ConsensusStateAt(height)
	if err != nil {
		return time.Time{}, err
	}
	return cons.Timestamp, nil
}

// AuthoritySet returns the stored authority set with the given id.
func (c *Client) AuthoritySet(setID uint64) (*types.AuthoritySet, error) {
	return c.store.AuthoritySet(setID)
}

// Prune removes the oldest consensus states until at most size remain.
func (c *Client) Prune(size uint16) error {
	return c.store.Prune(size)
}

// ConsensusStateExpired returns true if the consensus state is older than
// the trusting period at now.
func ConsensusStateExpired(cons *types.ConsensusState, trustingPeriod time.Duration, now time.Time) bool {
	expirationTime := cons.Timestamp.Add(trustingPeriod)
	return !expirationTime.After(now)
}

func (c *Client) clientState() (*types.ClientState, error) {
	cs, err := c.store.ClientState()
	if errors.Is(err, store.ErrClientStateNotFound) {
		return nil, ErrNotInitialized
	}
	return cs, err
}

// headerUpdate is the verified effect of a header.
type headerUpdate struct {
	changeset *store.Changeset
	commit    *VerifiedCommit
	enacted   []*types.AuthoritySet
	scheduled *types.PendingChange
}

// verifyHeader runs every check on h and computes the changeset it would
// commit. It does not write to the store.
func (c *Client) verifyHeader(cs *types.ClientState, h *types.Header, now time.Time) (*headerUpdate, error) {
	if cs.IsFrozen() {
		return nil, ErrClientFrozen{FrozenHeight: cs.FrozenHeight}
	}
	if err := h.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("invalid header: %w", err)
	}

	height := h.GetHeight()
	if height <= cs.LatestHeight {
		return nil, ErrHeaderTooOld{Height: height, LatestHeight: cs.LatestHeight}
	}
	if h.Timestamp.After(now.Add(cs.MaxClockDrift)) {
		return nil, ErrClockDrift{Timestamp: h.Timestamp, Now: now, MaxDrift: cs.MaxClockDrift}
	}

	latest, err := c.store.ConsensusState(cs.LatestHeight)
	if err != nil {
		return nil, fmt.Errorf("latest consensus state: %w", err)
	}
	if ConsensusStateExpired(latest, cs.TrustingPeriod, now) {
		return nil, ErrClientExpired{At: latest.Timestamp.Add(cs.TrustingPeriod), Now: now}
	}
	if !h.Timestamp.After(latest.Timestamp) {
		return nil, ErrNonIncreasingTimestamp{Timestamp: h.Timestamp, Latest: latest.Timestamp}
	}

	blockHash := h.Hash()
	announced := types.Precommit{TargetHash: blockHash, TargetNumber: h.Block.Number}
	if target := h.Justification.Target(); target != announced {
		return nil, ErrHeaderMismatch{Header: announced, Target: target}
	}

	pending := cs.PendingChange
	if pending != nil && height > pending.EffectiveHeight {
		return nil, ErrPendingChangeSkipped{Height: height, EffectiveHeight: pending.EffectiveHeight}
	}

	scheduled, err := h.Block.ScheduledChange()
	if err != nil {
		return nil, fmt.Errorf("invalid header digest: %w", err)
	}

	registry := NewRegistry(c.store, cs.CurrentSetID)
	set, err := registry.Current()
	if err != nil {
		return nil, err
	}

	commit, err := VerifyJustification(&h.Justification, set)
	if err != nil {
		return nil, err
	}
	for _, reason := range commit.Skipped {
		c.logger.Debug("skipped precommit", "height", height, "set_id", set.SetID, "reason", reason)
	}

	update := &headerUpdate{commit: commit}
	newCS := cs.Copy()
	newCS.LatestHeight = height

	// the header finalizing the effective height enacts the pending change
	if pending != nil && height == pending.EffectiveHeight {
		next, err := registry.Advance(pending.NextAuthorities, registry.CurrentSetID()+1)
		if err != nil {
			return nil, err
		}
		newCS.PendingChange = nil
		update.enacted = append(update.enacted, next)
	}

	var hint *types.Hash
	if scheduled != nil {
		if newCS.PendingChange != nil {
			return nil, ErrPendingChangeExists{EffectiveHeight: newCS.PendingChange.EffectiveHeight}
		}

		if scheduled.Delay == 0 {
			next, err := registry.Advance(scheduled.NextAuthorities, registry.CurrentSetID()+1)
			if err != nil {
				return nil, err
			}
			update.enacted = append(update.enacted, next)
			nextHash := next.Hash()
			hint = &nextHash
		} else {
			change := &types.PendingChange{
				NextAuthorities: scheduled.NextAuthorities,
				ScheduledHeight: height,
				EffectiveHeight: height + uint64(scheduled.Delay),
			}
			if err := change.ValidateBasic(); err != nil {
				return nil, fmt.Errorf("invalid scheduled change: %w", err)
			}
			newCS.PendingChange = change
			update.scheduled = change
			nextHash := change.NextSetHash(registry.CurrentSetID())
			hint = &nextHash
		}
	}
	newCS.CurrentSetID = registry.CurrentSetID()

	c.logIgnoredConsensusLogs(h)

	update.changeset = &store.Changeset{
		ClientState: newCS,
		ConsensusState: &types.ConsensusState{
			Timestamp:            h.Timestamp,
			StateRoot:            h.Block.StateRoot,
			BlockHash:            blockHash,
			NextAuthoritySetHint: hint,
		},
		Height:        height,
		AuthoritySets: registry.Staged(),
	}
	return update, nil
}

func (c *Client) logIgnoredConsensusLogs(h *types.Header) {
	logs, err := h.Block.ConsensusLogs()
	if err != nil {
		return
	}
	for _, l := range logs {
		switch l.(type) {
		case types.ScheduledChange:
		default:
			c.logger.Info("ignoring GRANDPA consensus log", "height", h.GetHeight(), "log", fmt.Sprintf("%T", l))
		}
	}
}

func (c *Client) afterUpdate(update *headerUpdate) {
	cs := update.changeset.ClientState
	height := update.changeset.Height

	c.metrics.HeadersAccepted.Add(1)
	c.reportClientState(cs)

	c.logger.Info("accepted header",
		"height", height,
		"hash", update.changeset.ConsensusState.BlockHash,
		"set_id", update.commit.SetID,
		"round", update.commit.Round,
		"tally", update.commit.Tally,
		"total", update.commit.Total)

	for _, set := range update.enacted {
		c.logger.Info("advanced authority set", "height", height, "set_id", set.SetID, "authorities", set.Size())
	}
	if pc := update.scheduled; pc != nil {
		c.logger.Info("scheduled authority set change",
			"height", height, "effective_height", pc.EffectiveHeight, "authorities", len(pc.NextAuthorities))
	}

	if c.pruningSize > 0 {
		if err := c.store.Prune(c.pruningSize); err != nil {
			c.logger.Error("failed to prune consensus states", "err", err)
		}
	}
}

// verifyMisbehaviour checks the misbehaviour against the authority set it
// names and returns the height to freeze at.
func (c *Client) verifyMisbehaviour(cs *types.ClientState, m *types.Misbehaviour) (uint64, error) {
	if cs.IsFrozen() {
		return 0, ErrClientFrozen{FrozenHeight: cs.FrozenHeight}
	}
	if err := m.ValidateBasic(); err != nil {
		return 0, ErrInconclusiveMisbehaviour{Reason: err}
	}
	if m.ClientID != c.clientID {
		return 0, ErrInconclusiveMisbehaviour{
			Reason: fmt.Errorf("misbehaviour is for client %q, not %q", m.ClientID, c.clientID),
		}
	}

	set, err := NewRegistry(c.store, cs.CurrentSetID).SetAt(m.Evidence.AuthoritySetID())
	if err != nil {
		return 0, ErrInconclusiveMisbehaviour{Reason: err}
	}

	ok, err := CheckMisbehaviour(m.Evidence, set)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, ErrInconclusiveMisbehaviour{Reason: errors.New("evidence does not conflict")}
	}
	return m.Evidence.Height(), nil
}

// conflictingHeader reports whether h is finalized by the current authority
// set and conflicts with the consensus state stored at its height. A
// justification carrying a double vote is misbehaviour on its own.
func (c *Client) conflictingHeader(cs *types.ClientState, h *types.Header) (bool, error) {
	if err := h.ValidateBasic(); err != nil {
		return false, err
	}

	blockHash := h.Hash()
	announced := types.Precommit{TargetHash: blockHash, TargetNumber: h.Block.Number}
	if target := h.Justification.Target(); target != announced {
		return false, ErrHeaderMismatch{Header: announced, Target: target}
	}

	set, err := NewRegistry(c.store, cs.CurrentSetID).Current()
	if err != nil {
		return false, err
	}

	_, err = VerifyJustification(&h.Justification, set)
	var dup ErrDuplicateVote
	switch {
	case errors.As(err, &dup) && dup.Evidence() != nil:
		return true, nil
	case err != nil:
		return false, err
	}

	cons, err := c.store.ConsensusState(h.GetHeight())
	if err != nil {
		return false, err
	}
	return cons.BlockHash != blockHash, nil
}

func (c *Client) freeze(cs *types.ClientState, height uint64, reason string) error {
	if height == 0 {
		height = 1
	}

	frozen := cs.Copy()
	frozen.FrozenHeight = height
	if err := c.store.Commit(&store.Changeset{ClientState: frozen}); err != nil {
		return fmt.Errorf("failed to freeze client: %w", err)
	}

	c.metrics.MisbehaviourDetected.Add(1)
	c.reportClientState(frozen)
	c.logger.Error("misbehaviour detected, client frozen", "height", height, "evidence", reason)
	return nil
}

func (c *Client) reportClientState(cs *types.ClientState) {
	c.metrics.LatestHeight.Set(float64(cs.LatestHeight))
	c.metrics.AuthoritySetID.Set(float64(cs.CurrentSetID))
	if cs.IsFrozen() {
		c.metrics.Frozen.Set(1)
	} else {
		c.metrics.Frozen.Set(0)
	}
}
