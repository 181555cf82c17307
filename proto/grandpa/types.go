// Package grandpa contains the protobuf envelopes of the GRANDPA light client.
// The messages are encoded through gogo/protobuf struct-tag reflection and are
// registered under the ibc.lightclients.grandpa.v1 package so they can travel
// inside google.protobuf.Any.
package grandpa

import (
	proto "github.com/gogo/protobuf/proto"
	types "github.com/gogo/protobuf/types"
)

const protoPackage = "ibc.lightclients.grandpa.v1."

// ClientState is the persisted per-client configuration and head pointer.
type ClientState struct {
	ChainId        string          `protobuf:"bytes,1,opt,name=chain_id,json=chainId,proto3" json:"chain_id,omitempty"`
	LatestHeight   uint64          `protobuf:"varint,2,opt,name=latest_height,json=latestHeight,proto3" json:"latest_height,omitempty"`
	FrozenHeight   uint64          `protobuf:"varint,3,opt,name=frozen_height,json=frozenHeight,proto3" json:"frozen_height,omitempty"`
	TrustingPeriod *types.Duration `protobuf:"bytes,4,opt,name=trusting_period,json=trustingPeriod,proto3" json:"trusting_period,omitempty"`
	MaxClockDrift  *types.Duration `protobuf:"bytes,5,opt,name=max_clock_drift,json=maxClockDrift,proto3" json:"max_clock_drift,omitempty"`
	CurrentSetId   uint64          `protobuf:"varint,6,opt,name=current_set_id,json=currentSetId,proto3" json:"current_set_id,omitempty"`
	PendingChange  *PendingChange  `protobuf:"bytes,7,opt,name=pending_change,json=pendingChange,proto3" json:"pending_change,omitempty"`
}

func (m *ClientState) Reset()         { *m = ClientState{} }
func (m *ClientState) String() string { return proto.CompactTextString(m) }
func (*ClientState) ProtoMessage()    {}

// PendingChange is a scheduled authority set change awaiting its effective
// height.
type PendingChange struct {
	NextAuthorities []*Authority `protobuf:"bytes,1,rep,name=next_authorities,json=nextAuthorities,proto3" json:"next_authorities,omitempty"`
	ScheduledHeight uint64       `protobuf:"varint,2,opt,name=scheduled_height,json=scheduledHeight,proto3" json:"scheduled_height,omitempty"`
	EffectiveHeight uint64       `protobuf:"varint,3,opt,name=effective_height,json=effectiveHeight,proto3" json:"effective_height,omitempty"`
}

func (m *PendingChange) Reset()         { *m = PendingChange{} }
func (m *PendingChange) String() string { return proto.CompactTextString(m) }
func (*PendingChange) ProtoMessage()    {}

// ConsensusState commits to one verified header.
type ConsensusState struct {
	Timestamp            *types.Timestamp `protobuf:"bytes,1,opt,name=timestamp,proto3" json:"timestamp,omitempty"`
	StateRoot            []byte           `protobuf:"bytes,2,opt,name=state_root,json=stateRoot,proto3" json:"state_root,omitempty"`
	BlockHash            []byte           `protobuf:"bytes,3,opt,name=block_hash,json=blockHash,proto3" json:"block_hash,omitempty"`
	NextAuthoritySetHint []byte           `protobuf:"bytes,4,opt,name=next_authority_set_hint,json=nextAuthoritySetHint,proto3" json:"next_authority_set_hint,omitempty"`
}

func (m *ConsensusState) Reset()         { *m = ConsensusState{} }
func (m *ConsensusState) String() string { return proto.CompactTextString(m) }
func (*ConsensusState) ProtoMessage()    {}

type Authority struct {
	PubKey []byte `protobuf:"bytes,1,opt,name=pub_key,json=pubKey,proto3" json:"pub_key,omitempty"`
	Weight uint64 `protobuf:"varint,2,opt,name=weight,proto3" json:"weight,omitempty"`
}

func (m *Authority) Reset()         { *m = Authority{} }
func (m *Authority) String() string { return proto.CompactTextString(m) }
func (*Authority) ProtoMessage()    {}

type AuthoritySet struct {
	SetId       uint64       `protobuf:"varint,1,opt,name=set_id,json=setId,proto3" json:"set_id,omitempty"`
	Authorities []*Authority `protobuf:"bytes,2,rep,name=authorities,proto3" json:"authorities,omitempty"`
}

func (m *AuthoritySet) Reset()         { *m = AuthoritySet{} }
func (m *AuthoritySet) String() string { return proto.CompactTextString(m) }
func (*AuthoritySet) ProtoMessage()    {}

type DigestItem struct {
	Kind   uint32 `protobuf:"varint,1,opt,name=kind,proto3" json:"kind,omitempty"`
	Engine []byte `protobuf:"bytes,2,opt,name=engine,proto3" json:"engine,omitempty"`
	Data   []byte `protobuf:"bytes,3,opt,name=data,proto3" json:"data,omitempty"`
}

func (m *DigestItem) Reset()         { *m = DigestItem{} }
func (m *DigestItem) String() string { return proto.CompactTextString(m) }
func (*DigestItem) ProtoMessage()    {}

// BlockHeader is a Substrate block header.
type BlockHeader struct {
	ParentHash     []byte        `protobuf:"bytes,1,opt,name=parent_hash,json=parentHash,proto3" json:"parent_hash,omitempty"`
	Number         uint32        `protobuf:"varint,2,opt,name=number,proto3" json:"number,omitempty"`
	StateRoot      []byte        `protobuf:"bytes,3,opt,name=state_root,json=stateRoot,proto3" json:"state_root,omitempty"`
	ExtrinsicsRoot []byte        `protobuf:"bytes,4,opt,name=extrinsics_root,json=extrinsicsRoot,proto3" json:"extrinsics_root,omitempty"`
	Digest         []*DigestItem `protobuf:"bytes,5,rep,name=digest,proto3" json:"digest,omitempty"`
}

func (m *BlockHeader) Reset()         { *m = BlockHeader{} }
func (m *BlockHeader) String() string { return proto.CompactTextString(m) }
func (*BlockHeader) ProtoMessage()    {}

type SignedPrecommit struct {
	TargetHash   []byte `protobuf:"bytes,1,opt,name=target_hash,json=targetHash,proto3" json:"target_hash,omitempty"`
	TargetNumber uint32 `protobuf:"varint,2,opt,name=target_number,json=targetNumber,proto3" json:"target_number,omitempty"`
	Signature    []byte `protobuf:"bytes,3,opt,name=signature,proto3" json:"signature,omitempty"`
	Id           []byte `protobuf:"bytes,4,opt,name=id,proto3" json:"id,omitempty"`
}

func (m *SignedPrecommit) Reset()         { *m = SignedPrecommit{} }
func (m *SignedPrecommit) String() string { return proto.CompactTextString(m) }
func (*SignedPrecommit) ProtoMessage()    {}

type Commit struct {
	TargetHash   []byte             `protobuf:"bytes,1,opt,name=target_hash,json=targetHash,proto3" json:"target_hash,omitempty"`
	TargetNumber uint32             `protobuf:"varint,2,opt,name=target_number,json=targetNumber,proto3" json:"target_number,omitempty"`
	Precommits   []*SignedPrecommit `protobuf:"bytes,3,rep,name=precommits,proto3" json:"precommits,omitempty"`
}

func (m *Commit) Reset()         { *m = Commit{} }
func (m *Commit) String() string { return proto.CompactTextString(m) }
func (*Commit) ProtoMessage()    {}

type Justification struct {
	Round           uint64         `protobuf:"varint,1,opt,name=round,proto3" json:"round,omitempty"`
	Commit          *Commit        `protobuf:"bytes,2,opt,name=commit,proto3" json:"commit,omitempty"`
	VotesAncestries []*BlockHeader `protobuf:"bytes,3,rep,name=votes_ancestries,json=votesAncestries,proto3" json:"votes_ancestries,omitempty"`
}

func (m *Justification) Reset()         { *m = Justification{} }
func (m *Justification) String() string { return proto.CompactTextString(m) }
func (*Justification) ProtoMessage()    {}

// Header is the client message carrying a new finalized block.
type Header struct {
	Block         *BlockHeader     `protobuf:"bytes,1,opt,name=block,proto3" json:"block,omitempty"`
	Timestamp     *types.Timestamp `protobuf:"bytes,2,opt,name=timestamp,proto3" json:"timestamp,omitempty"`
	Justification *Justification   `protobuf:"bytes,3,opt,name=justification,proto3" json:"justification,omitempty"`
}

func (m *Header) Reset()         { *m = Header{} }
func (m *Header) String() string { return proto.CompactTextString(m) }
func (*Header) ProtoMessage()    {}

// Misbehaviour carries exactly one of ConflictingCommits or DoubleVote.
type Misbehaviour struct {
	ClientId           string              `protobuf:"bytes,1,opt,name=client_id,json=clientId,proto3" json:"client_id,omitempty"`
	ConflictingCommits *ConflictingCommits `protobuf:"bytes,2,opt,name=conflicting_commits,json=conflictingCommits,proto3" json:"conflicting_commits,omitempty"`
	DoubleVote         *DoubleVote         `protobuf:"bytes,3,opt,name=double_vote,json=doubleVote,proto3" json:"double_vote,omitempty"`
}

func (m *Misbehaviour) Reset()         { *m = Misbehaviour{} }
func (m *Misbehaviour) String() string { return proto.CompactTextString(m) }
func (*Misbehaviour) ProtoMessage()    {}

type ConflictingCommits struct {
	SetId  uint64         `protobuf:"varint,1,opt,name=set_id,json=setId,proto3" json:"set_id,omitempty"`
	First  *Justification `protobuf:"bytes,2,opt,name=first,proto3" json:"first,omitempty"`
	Second *Justification `protobuf:"bytes,3,opt,name=second,proto3" json:"second,omitempty"`
}

func (m *ConflictingCommits) Reset()         { *m = ConflictingCommits{} }
func (m *ConflictingCommits) String() string { return proto.CompactTextString(m) }
func (*ConflictingCommits) ProtoMessage()    {}

type DoubleVote struct {
	SetId  uint64           `protobuf:"varint,1,opt,name=set_id,json=setId,proto3" json:"set_id,omitempty"`
	Round  uint64           `protobuf:"varint,2,opt,name=round,proto3" json:"round,omitempty"`
	First  *SignedPrecommit `protobuf:"bytes,3,opt,name=first,proto3" json:"first,omitempty"`
	Second *SignedPrecommit `protobuf:"bytes,4,opt,name=second,proto3" json:"second,omitempty"`
}

func (m *DoubleVote) Reset()         { *m = DoubleVote{} }
func (m *DoubleVote) String() string { return proto.CompactTextString(m) }
func (*DoubleVote) ProtoMessage()    {}

// Genesis bundles everything required to create a client.
type Genesis struct {
	ClientState    *ClientState    `protobuf:"bytes,1,opt,name=client_state,json=clientState,proto3" json:"client_state,omitempty"`
	ConsensusState *ConsensusState `protobuf:"bytes,2,opt,name=consensus_state,json=consensusState,proto3" json:"consensus_state,omitempty"`
	AuthoritySet   *AuthoritySet   `protobuf:"bytes,3,opt,name=authority_set,json=authoritySet,proto3" json:"authority_set,omitempty"`
}

func (m *Genesis) Reset()         { *m = Genesis{} }
func (m *Genesis) String() string { return proto.CompactTextString(m) }
func (*Genesis) ProtoMessage()    {}

func init() {
	proto.RegisterType((*ClientState)(nil), protoPackage+"ClientState")
	proto.RegisterType((*PendingChange)(nil), protoPackage+"PendingChange")
	proto.RegisterType((*ConsensusState)(nil), protoPackage+"ConsensusState")
	proto.RegisterType((*Authority)(nil), protoPackage+"Authority")
	proto.RegisterType((*AuthoritySet)(nil), protoPackage+"AuthoritySet")
	proto.RegisterType((*DigestItem)(nil), protoPackage+"DigestItem")
	proto.RegisterType((*BlockHeader)(nil), protoPackage+"BlockHeader")
	proto.RegisterType((*SignedPrecommit)(nil), protoPackage+"SignedPrecommit")
	proto.RegisterType((*Commit)(nil), protoPackage+"Commit")
	proto.RegisterType((*Justification)(nil), protoPackage+"Justification")
	proto.RegisterType((*Header)(nil), protoPackage+"Header")
	proto.RegisterType((*Misbehaviour)(nil), protoPackage+"Misbehaviour")
	proto.RegisterType((*ConflictingCommits)(nil), protoPackage+"ConflictingCommits")
	proto.RegisterType((*DoubleVote)(nil), protoPackage+"DoubleVote")
	proto.RegisterType((*Genesis)(nil), protoPackage+"Genesis")
}
