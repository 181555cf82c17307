package types

import (
	"errors"
	"fmt"

	"github.com/gogo/protobuf/proto"
	gogotypes "github.com/gogo/protobuf/types"

	"github.com/tendermint/ics10-grandpa/crypto/ed25519"
	grandpaproto "github.com/tendermint/ics10-grandpa/proto/grandpa"
)

// ToProto converts the authority to its protobuf representation.
func (a Authority) ToProto() *grandpaproto.Authority {
	return &grandpaproto.Authority{PubKey: a.PubKey.Bytes(), Weight: a.Weight}
}

// AuthorityFromProto converts a protobuf authority.
func AuthorityFromProto(pa *grandpaproto.Authority) (Authority, error) {
	if pa == nil {
		return Authority{}, errors.New("nil authority")
	}
	pk, err := ed25519.PubKeyFromBytes(pa.PubKey)
	if err != nil {
		return Authority{}, err
	}
	return Authority{PubKey: pk, Weight: pa.Weight}, nil
}

func authoritiesToProto(as []Authority) []*grandpaproto.Authority {
	out := make([]*grandpaproto.Authority, len(as))
	for i, a := range as {
		out[i] = a.ToProto()
	}
	return out
}

func authoritiesFromProto(pas []*grandpaproto.Authority) ([]Authority, error) {
	out := make([]Authority, len(pas))
	for i, pa := range pas {
		a, err := AuthorityFromProto(pa)
		if err != nil {
			return nil, fmt.Errorf("authority #%d: %w", i, err)
		}
		out[i] = a
	}
	return out, nil
}

// ToProto converts the set to its protobuf representation.
func (s *AuthoritySet) ToProto() *grandpaproto.AuthoritySet {
	return &grandpaproto.AuthoritySet{
		SetId:       s.SetID,
		Authorities: authoritiesToProto(s.Authorities),
	}
}

// AuthoritySetFromProto converts and validates a protobuf authority set.
func AuthoritySetFromProto(ps *grandpaproto.AuthoritySet) (*AuthoritySet, error) {
	if ps == nil {
		return nil, errors.New("nil authority set")
	}
	as, err := authoritiesFromProto(ps.Authorities)
	if err != nil {
		return nil, err
	}
	set := &AuthoritySet{SetID: ps.SetId, Authorities: as}
	return set, set.ValidateBasic()
}

func (cs *ClientState) ToProto() *grandpaproto.ClientState {
	pc := &grandpaproto.ClientState{
		ChainId:        cs.ChainID,
		LatestHeight:   cs.LatestHeight,
		FrozenHeight:   cs.FrozenHeight,
		TrustingPeriod: gogotypes.DurationProto(cs.TrustingPeriod),
		MaxClockDrift:  gogotypes.DurationProto(cs.MaxClockDrift),
		CurrentSetId:   cs.CurrentSetID,
	}
	if cs.PendingChange != nil {
		pc.PendingChange = &grandpaproto.PendingChange{
			NextAuthorities: authoritiesToProto(cs.PendingChange.NextAuthorities),
			ScheduledHeight: cs.PendingChange.ScheduledHeight,
			EffectiveHeight: cs.PendingChange.EffectiveHeight,
		}
	}
	return pc
}

// ClientStateFromProto converts and validates a protobuf client state.
func ClientStateFromProto(pc *grandpaproto.ClientState) (*ClientState, error) {
	if pc == nil {
		return nil, errors.New("nil client state")
	}
	tp, err := gogotypes.DurationFromProto(pc.TrustingPeriod)
	if err != nil {
		return nil, fmt.Errorf("trusting period: %w", err)
	}
	drift, err := gogotypes.DurationFromProto(pc.MaxClockDrift)
	if err != nil {
		return nil, fmt.Errorf("max clock drift: %w", err)
	}

	cs := &ClientState{
		ChainID:        pc.ChainId,
		LatestHeight:   pc.LatestHeight,
		FrozenHeight:   pc.FrozenHeight,
		TrustingPeriod: tp,
		MaxClockDrift:  drift,
		CurrentSetID:   pc.CurrentSetId,
	}
	if pc.PendingChange != nil {
		next, err := authoritiesFromProto(pc.PendingChange.NextAuthorities)
		if err != nil {
			return nil, fmt.Errorf("pending change: %w", err)
		}
		cs.PendingChange = &PendingChange{
			NextAuthorities: next,
			ScheduledHeight: pc.PendingChange.ScheduledHeight,
			EffectiveHeight: pc.PendingChange.EffectiveHeight,
		}
	}
	return cs, cs.ValidateBasic()
}

func (cs *ConsensusState) ToProto() *grandpaproto.ConsensusState {
	ts, err := gogotypes.TimestampProto(cs.Timestamp)
	if err != nil {
		panic(err)
	}
	pc := &grandpaproto.ConsensusState{
		Timestamp: ts,
		StateRoot: cs.StateRoot.Bytes(),
		BlockHash: cs.BlockHash.Bytes(),
	}
	if cs.NextAuthoritySetHint != nil {
		pc.NextAuthoritySetHint = cs.NextAuthoritySetHint.Bytes()
	}
	return pc
}

// ConsensusStateFromProto converts and validates a protobuf consensus state.
func ConsensusStateFromProto(pc *grandpaproto.ConsensusState) (*ConsensusState, error) {
	if pc == nil {
		return nil, errors.New("nil consensus state")
	}
	ts, err := gogotypes.TimestampFromProto(pc.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("timestamp: %w", err)
	}
	root, err := HashFromBytes(pc.StateRoot)
	if err != nil {
		return nil, fmt.Errorf("state root: %w", err)
	}
	blockHash, err := HashFromBytes(pc.BlockHash)
	if err != nil {
		return nil, fmt.Errorf("block hash: %w", err)
	}

	cs := &ConsensusState{Timestamp: ts, StateRoot: root, BlockHash: blockHash}
	if len(pc.NextAuthoritySetHint) > 0 {
		hint, err := HashFromBytes(pc.NextAuthoritySetHint)
		if err != nil {
			return nil, fmt.Errorf("next authority set hint: %w", err)
		}
		cs.NextAuthoritySetHint = &hint
	}
	return cs, cs.ValidateBasic()
}

func (h *BlockHeader) ToProto() *grandpaproto.BlockHeader {
	ph := &grandpaproto.BlockHeader{
		ParentHash:     h.ParentHash.Bytes(),
		Number:         h.Number,
		StateRoot:      h.StateRoot.Bytes(),
		ExtrinsicsRoot: h.ExtrinsicsRoot.Bytes(),
		Digest:         make([]*grandpaproto.DigestItem, len(h.Digest)),
	}
	for i, d := range h.Digest {
		pd := &grandpaproto.DigestItem{Kind: uint32(d.Kind), Data: d.Data}
		switch d.Kind {
		case DigestConsensus, DigestSeal, DigestPreRuntime:
			pd.Engine = append([]byte(nil), d.Engine[:]...)
		}
		ph.Digest[i] = pd
	}
	return ph
}

func BlockHeaderFromProto(ph *grandpaproto.BlockHeader) (BlockHeader, error) {
	if ph == nil {
		return BlockHeader{}, errors.New("nil block header")
	}
	var (
		h   = BlockHeader{Number: ph.Number}
		err error
	)
	if h.ParentHash, err = HashFromBytes(ph.ParentHash); err != nil {
		return h, fmt.Errorf("parent hash: %w", err)
	}
	if h.StateRoot, err = HashFromBytes(ph.StateRoot); err != nil {
		return h, fmt.Errorf("state root: %w", err)
	}
	if h.ExtrinsicsRoot, err = HashFromBytes(ph.ExtrinsicsRoot); err != nil {
		return h, fmt.Errorf("extrinsics root: %w", err)
	}
	for i, pd := range ph.Digest {
		if pd == nil || pd.Kind > 0xff {
			return h, fmt.Errorf("digest #%d: invalid item", i)
		}
		d := DigestItem{Kind: DigestKind(pd.Kind), Data: pd.Data}
		if len(pd.Engine) > 0 {
			if len(pd.Engine) != len(d.Engine) {
				return h, fmt.Errorf("digest #%d: invalid engine id size %d", i, len(pd.Engine))
			}
			copy(d.Engine[:], pd.Engine)
		}
		h.Digest = append(h.Digest, d)
	}
	return h, h.ValidateBasic()
}

func (sp SignedPrecommit) ToProto() *grandpaproto.SignedPrecommit {
	return &grandpaproto.SignedPrecommit{
		TargetHash:   sp.TargetHash.Bytes(),
		TargetNumber: sp.TargetNumber,
		Signature:    append([]byte(nil), sp.Signature...),
		Id:           sp.ID.Bytes(),
	}
}

func SignedPrecommitFromProto(pp *grandpaproto.SignedPrecommit) (SignedPrecommit, error) {
	if pp == nil {
		return SignedPrecommit{}, errors.New("nil precommit")
	}
	target, err := HashFromBytes(pp.TargetHash)
	if err != nil {
		return SignedPrecommit{}, fmt.Errorf("target hash: %w", err)
	}
	id, err := ed25519.PubKeyFromBytes(pp.Id)
	if err != nil {
		return SignedPrecommit{}, fmt.Errorf("id: %w", err)
	}
	return SignedPrecommit{
		TargetHash:   target,
		TargetNumber: pp.TargetNumber,
		Signature:    pp.Signature,
		ID:           id,
	}, nil
}

func (j *Justification) ToProto() *grandpaproto.Justification {
	pj := &grandpaproto.Justification{
		Round: j.Round,
		Commit: &grandpaproto.Commit{
			TargetHash:   j.Commit.TargetHash.Bytes(),
			TargetNumber: j.Commit.TargetNumber,
			Precommits:   make([]*grandpaproto.SignedPrecommit, len(j.Commit.Precommits)),
		},
		VotesAncestries: make([]*grandpaproto.BlockHeader, len(j.VotesAncestries)),
	}
	for i, p := range j.Commit.Precommits {
		pj.Commit.Precommits[i] = p.ToProto()
	}
	for i := range j.VotesAncestries {
		pj.VotesAncestries[i] = j.VotesAncestries[i].ToProto()
	}
	return pj
}

func JustificationFromProto(pj *grandpaproto.Justification) (Justification, error) {
	if pj == nil || pj.Commit == nil {
		return Justification{}, errors.New("nil justification")
	}
	target, err := HashFromBytes(pj.Commit.TargetHash)
	if err != nil {
		return Justification{}, fmt.Errorf("commit target hash: %w", err)
	}
	j := Justification{
		Round: pj.Round,
		Commit: Commit{
			TargetHash:   target,
			TargetNumber: pj.Commit.TargetNumber,
		},
	}
	for i, pp := range pj.Commit.Precommits {
		p, err := SignedPrecommitFromProto(pp)
		if err != nil {
			return Justification{}, fmt.Errorf("precommit #%d: %w", i, err)
		}
		j.Commit.Precommits = append(j.Commit.Precommits, p)
	}
	for i, ph := range pj.VotesAncestries {
		h, err := BlockHeaderFromProto(ph)
		if err != nil {
			return Justification{}, fmt.Errorf("votes ancestry #%d: %w", i, err)
		}
		j.VotesAncestries = append(j.VotesAncestries, h)
	}
	return j, nil
}

func (h *Header) ToProto() *grandpaproto.Header {
	ts, err := gogotypes.TimestampProto(h.Timestamp)
	if err != nil {
		panic(err)
	}
	return &grandpaproto.Header{
		Block:         h.Block.ToProto(),
		Timestamp:     ts,
		Justification: h.Justification.ToProto(),
	}
}

// HeaderFromProto converts and validates a protobuf header.
func HeaderFromProto(ph *grandpaproto.Header) (*Header, error) {
	if ph == nil {
		return nil, errors.New("nil header")
	}
	block, err := BlockHeaderFromProto(ph.Block)
	if err != nil {
		return nil, err
	}
	ts, err := gogotypes.TimestampFromProto(ph.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("timestamp: %w", err)
	}
	j, err := JustificationFromProto(ph.Justification)
	if err != nil {
		return nil, err
	}
	h := &Header{Block: block, Timestamp: ts, Justification: j}
	return h, h.ValidateBasic()
}

func (m *Misbehaviour) ToProto() (*grandpaproto.Misbehaviour, error) {
	switch ev := m.Evidence.(type) {
	case *ConflictingCommits:
		return (&grandpaproto.ConflictingCommits{
			SetId:  ev.SetID,
			First:  ev.First.ToProto(),
			Second: ev.Second.ToProto(),
		}).Wrap(m.ClientID), nil

	case *DoubleVote:
		return (&grandpaproto.DoubleVote{
			SetId:  ev.SetID,
			Round:  ev.Round,
			First:  ev.First.ToProto(),
			Second: ev.Second.ToProto(),
		}).Wrap(m.ClientID), nil

	default:
		return nil, fmt.Errorf("unknown evidence type %T", ev)
	}
}

// MisbehaviourFromProto converts and validates a protobuf misbehaviour.
func MisbehaviourFromProto(pm *grandpaproto.Misbehaviour) (*Misbehaviour, error) {
	if pm == nil {
		return nil, errors.New("nil misbehaviour")
	}
	msg, err := pm.Unwrap()
	if err != nil {
		return nil, err
	}

	m := &Misbehaviour{ClientID: pm.ClientId}
	switch ev := msg.(type) {
	case *grandpaproto.ConflictingCommits:
		first, err := JustificationFromProto(ev.First)
		if err != nil {
			return nil, fmt.Errorf("first: %w", err)
		}
		second, err := JustificationFromProto(ev.Second)
		if err != nil {
			return nil, fmt.Errorf("second: %w", err)
		}
		m.Evidence = &ConflictingCommits{SetID: ev.SetId, First: first, Second: second}

	case *grandpaproto.DoubleVote:
		first, err := SignedPrecommitFromProto(ev.First)
		if err != nil {
			return nil, fmt.Errorf("first: %w", err)
		}
		second, err := SignedPrecommitFromProto(ev.Second)
		if err != nil {
			return nil, fmt.Errorf("second: %w", err)
		}
		m.Evidence = &DoubleVote{SetID: ev.SetId, Round: ev.Round, First: first, Second: second}

	default:
		return nil, fmt.Errorf("unknown evidence type %T", ev)
	}
	return m, m.ValidateBasic()
}

func (g *Genesis) ToProto() *grandpaproto.Genesis {
	return &grandpaproto.Genesis{
		ClientState:    g.ClientState.ToProto(),
		ConsensusState: g.ConsensusState.ToProto(),
		AuthoritySet:   g.AuthoritySet.ToProto(),
	}
}

// GenesisFromProto converts and validates a protobuf genesis.
func GenesisFromProto(pg *grandpaproto.Genesis) (*Genesis, error) {
	cs, err := ClientStateFromProto(pg.ClientState)
	if err != nil {
		return nil, err
	}
	cons, err := ConsensusStateFromProto(pg.ConsensusState)
	if err != nil {
		return nil, err
	}
	set, err := AuthoritySetFromProto(pg.AuthoritySet)
	if err != nil {
		return nil, err
	}
	g := &Genesis{ClientState: cs, ConsensusState: cons, AuthoritySet: set}
	return g, g.ValidateBasic()
}

// PackClientMessage wraps a header or misbehaviour in a google.protobuf.Any.
func PackClientMessage(msg ClientMessage) (*gogotypes.Any, error) {
	var pb proto.Message
	switch m := msg.(type) {
	case *Header:
		pb = m.ToProto()
	case *Misbehaviour:
		pm, err := m.ToProto()
		if err != nil {
			return nil, err
		}
		pb = pm
	default:
		return nil, fmt.Errorf("unknown client message %T", msg)
	}
	return gogotypes.MarshalAny(pb)
}

// UnpackClientMessage decodes a google.protobuf.Any carrying a header or a
// misbehaviour.
func UnpackClientMessage(msg *gogotypes.Any) (ClientMessage, error) {
	var dyn gogotypes.DynamicAny
	if err := gogotypes.UnmarshalAny(msg, &dyn); err != nil {
		return nil, err
	}
	switch m := dyn.Message.(type) {
	case *grandpaproto.Header:
		return HeaderFromProto(m)
	case *grandpaproto.Misbehaviour:
		return MisbehaviourFromProto(m)
	default:
		return nil, fmt.Errorf("unexpected client message %s", msg.TypeUrl)
	}
}

// PackClientState wraps the client state in a google.protobuf.Any.
func PackClientState(cs *ClientState) (*gogotypes.Any, error) {
	return gogotypes.MarshalAny(cs.ToProto())
}

// UnpackClientState decodes a google.protobuf.Any carrying a client state.
func UnpackClientState(msg *gogotypes.Any) (*ClientState, error) {
	pc := new(grandpaproto.ClientState)
	if err := gogotypes.UnmarshalAny(msg, pc); err != nil {
		return nil, err
	}
	return ClientStateFromProto(pc)
}

// PackConsensusState wraps the consensus state in a google.protobuf.Any.
func PackConsensusState(cs *ConsensusState) (*gogotypes.Any, error) {
	return gogotypes.MarshalAny(cs.ToProto())
}

// UnpackConsensusState decodes a google.protobuf.Any carrying a consensus
// state.
func UnpackConsensusState(msg *gogotypes.Any) (*ConsensusState, error) {
	pc := new(grandpaproto.ConsensusState)
	if err := gogotypes.UnmarshalAny(msg, pc); err != nil {
		return nil, err
	}
	return ConsensusStateFromProto(pc)
}
