package types

import (
	"bytes"
	"fmt"

	"github.com/tendermint/ics10-grandpa/crypto"
)

// BlockHeader is a Substrate block header with a u32 block number.
type BlockHeader struct {
	ParentHash     Hash
	Number         uint32
	StateRoot      Hash
	ExtrinsicsRoot Hash
	Digest         []DigestItem
}

// Encode returns the SCALE encoding of the header:
// parent_hash ‖ Compact<number> ‖ state_root ‖ extrinsics_root ‖ Vec<DigestItem>.
func (h *BlockHeader) Encode() ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(h.ParentHash[:])
	buf.Write(encodeCompact(uint(h.Number)))
	buf.Write(h.StateRoot[:])
	buf.Write(h.ExtrinsicsRoot[:])
	buf.Write(encodeCompact(uint(len(h.Digest))))
	for i, d := range h.Digest {
		bz, err := d.Encode()
		if err != nil {
			return nil, fmt.Errorf("digest #%d: %w", i, err)
		}
		buf.Write(bz)
	}
	return buf.Bytes(), nil
}

// Hash returns the blake2b-256 hash of the SCALE encoded header. Headers
// passing ValidateBasic always encode.
func (h *BlockHeader) Hash() Hash {
	bz, err := h.Encode()
	if err != nil {
		panic(err)
	}
	return crypto.Blake2b256(bz)
}

// ValidateBasic performs stateless validation of the header.
func (h *BlockHeader) ValidateBasic() error {
	if h == nil {
		return fmt.Errorf("nil block header")
	}
	for i, d := range h.Digest {
		if err := d.ValidateBasic(); err != nil {
			return fmt.Errorf("digest #%d: %w", i, err)
		}
	}
	return nil
}

// Copy returns a deep copy of the header.
func (h *BlockHeader) Copy() BlockHeader {
	cp := *h
	cp.Digest = make([]DigestItem, len(h.Digest))
	for i, d := range h.Digest {
		cp.Digest[i] = DigestItem{
			Kind:   d.Kind,
			Engine: d.Engine,
			Data:   append([]byte(nil), d.Data...),
		}
	}
	return cp
}

func (h *BlockHeader) String() string {
	return fmt.Sprintf("BlockHeader{#%d parent:%v}", h.Number, h.ParentHash)
}
