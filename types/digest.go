package types

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ChainSafe/gossamer/pkg/scale"
)

// DigestKind is the SCALE enum index of a Substrate DigestItem.
type DigestKind uint8

const (
	DigestOther                     DigestKind = 0
	DigestConsensus                 DigestKind = 4
	DigestSeal                      DigestKind = 5
	DigestPreRuntime                DigestKind = 6
	DigestRuntimeEnvironmentUpdated DigestKind = 8
)

// ConsensusEngineID identifies the consensus engine a digest item belongs
// to.
type ConsensusEngineID [4]byte

// GrandpaEngineID is the engine identifier of GRANDPA digests.
var GrandpaEngineID = ConsensusEngineID{'F', 'R', 'N', 'K'}

func (id ConsensusEngineID) String() string {
	return string(id[:])
}

// DigestItem is one entry of a header digest. Engine is only meaningful for
// the Consensus, Seal and PreRuntime kinds.
type DigestItem struct {
	Kind   DigestKind
	Engine ConsensusEngineID
	Data   []byte
}

func (d DigestItem) ValidateBasic() error {
	switch d.Kind {
	case DigestOther, DigestConsensus, DigestSeal, DigestPreRuntime:
		return nil
	case DigestRuntimeEnvironmentUpdated:
		if len(d.Data) != 0 {
			return errors.New("runtime environment updated digest carries no data")
		}
		return nil
	default:
		return fmt.Errorf("unknown digest kind %d", d.Kind)
	}
}

// Encode returns the SCALE encoding of the digest item.
func (d DigestItem) Encode() ([]byte, error) {
	if err := d.ValidateBasic(); err != nil {
		return nil, err
	}

	buf := bytes.NewBuffer([]byte{byte(d.Kind)})
	switch d.Kind {
	case DigestConsensus, DigestSeal, DigestPreRuntime:
		buf.Write(d.Engine[:])
		fallthrough
	case DigestOther:
		data, err := scale.Marshal(d.Data)
		if err != nil {
			return nil, err
		}
		buf.Write(data)
	}
	return buf.Bytes(), nil
}

// IsGrandpa reports whether the item is a GRANDPA consensus digest.
func (d DigestItem) IsGrandpa() bool {
	return d.Kind == DigestConsensus && d.Engine == GrandpaEngineID
}

// ConsensusLog is a decoded GRANDPA consensus digest.
type ConsensusLog interface {
	isConsensusLog()
}

const (
	logScheduledChange byte = 1
	logForcedChange    byte = 2
	logOnDisabled      byte = 3
	logPause           byte = 4
	logResume          byte = 5
)

// ScheduledChange announces that NextAuthorities take over once the block
// Delay blocks after the announcing one is finalized.
type ScheduledChange struct {
	NextAuthorities []Authority
	Delay           uint32
}

// ForcedChange is an authority set change that does not wait for finality.
type ForcedChange struct {
	Median uint32
	Change ScheduledChange
}

type OnDisabled struct {
	AuthorityIndex uint64
}

type Pause struct {
	Delay uint32
}

type Resume struct {
	Delay uint32
}

func (ScheduledChange) isConsensusLog() {}
func (ForcedChange) isConsensusLog()    {}
func (OnDisabled) isConsensusLog()      {}
func (Pause) isConsensusLog()           {}
func (Resume) isConsensusLog()          {}

type scaleScheduledChange struct {
	NextAuthorities []scaleAuthority
	Delay           uint32
}

type scaleForcedChange struct {
	Median          uint32
	NextAuthorities []scaleAuthority
	Delay           uint32
}

// DecodeConsensusLog decodes the payload of a GRANDPA consensus digest.
func DecodeConsensusLog(data []byte) (ConsensusLog, error) {
	if len(data) == 0 {
		return nil, errors.New("empty consensus log")
	}

	body := data[1:]
	switch data[0] {
	case logScheduledChange:
		var sc scaleScheduledChange
		if err := unmarshalScale(body, &sc, "scheduled change"); err != nil {
			return nil, err
		}
		return ScheduledChange{
			NextAuthorities: fromScaleAuthorities(sc.NextAuthorities),
			Delay:           sc.Delay,
		}, nil

	case logForcedChange:
		var fc scaleForcedChange
		if err := unmarshalScale(body, &fc, "forced change"); err != nil {
			return nil, err
		}
		return ForcedChange{
			Median: fc.Median,
			Change: ScheduledChange{
				NextAuthorities: fromScaleAuthorities(fc.NextAuthorities),
				Delay:           fc.Delay,
			},
		}, nil

	case logOnDisabled:
		var od OnDisabled
		if err := unmarshalScale(body, &od, "on disabled"); err != nil {
			return nil, err
		}
		return od, nil

	case logPause:
		var p Pause
		if err := unmarshalScale(body, &p, "pause"); err != nil {
			return nil, err
		}
		return p, nil

	case logResume:
		var r Resume
		if err := unmarshalScale(body, &r, "resume"); err != nil {
			return nil, err
		}
		return r, nil

	default:
		return nil, fmt.Errorf("unknown consensus log index %d", data[0])
	}
}

// NewScheduledChangeDigest builds the GRANDPA consensus digest announcing a
// scheduled change to next after delay blocks.
func NewScheduledChangeDigest(next []Authority, delay uint32) DigestItem {
	body := scale.MustMarshal(scaleScheduledChange{
		NextAuthorities: toScaleAuthorities(next),
		Delay:           delay,
	})
	return DigestItem{
		Kind:   DigestConsensus,
		Engine: GrandpaEngineID,
		Data:   append([]byte{logScheduledChange}, body...),
	}
}

// NewForcedChangeDigest builds a GRANDPA forced change digest.
func NewForcedChangeDigest(median uint32, next []Authority, delay uint32) DigestItem {
	body := scale.MustMarshal(scaleForcedChange{
		Median:          median,
		NextAuthorities: toScaleAuthorities(next),
		Delay:           delay,
	})
	return DigestItem{
		Kind:   DigestConsensus,
		Engine: GrandpaEngineID,
		Data:   append([]byte{logForcedChange}, body...),
	}
}

// ConsensusLogs decodes every GRANDPA consensus digest in the header.
func (h *BlockHeader) ConsensusLogs() ([]ConsensusLog, error) {
	var logs []ConsensusLog
	for i, d := range h.Digest {
		if !d.IsGrandpa() {
			continue
		}
		l, err := DecodeConsensusLog(d.Data)
		if err != nil {
			return nil, fmt.Errorf("digest #%d: %w", i, err)
		}
		logs = append(logs, l)
	}
	return logs, nil
}

// ScheduledChange returns the scheduled authority set change signaled by the
// header, if any. A header carrying more than one is malformed.
func (h *BlockHeader) ScheduledChange() (*ScheduledChange, error) {
	logs, err := h.ConsensusLogs()
	if err != nil {
		return nil, err
	}

	var found *ScheduledChange
	for _, l := range logs {
		sc, ok := l.(ScheduledChange)
		if !ok {
			continue
		}
		if found != nil {
			return nil, errors.New("multiple scheduled changes in one header")
		}
		change := sc
		found = &change
	}
	return found, nil
}
