package types

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ChainSafe/gossamer/pkg/scale"
	"github.com/holiman/uint256"

	"github.com/tendermint/ics10-grandpa/crypto"
	"github.com/tendermint/ics10-grandpa/crypto/ed25519"
)

// Authority is a GRANDPA voter: an ed25519 key and its voting weight.
type Authority struct {
	PubKey ed25519.PubKey
	Weight uint64
}

func (a Authority) String() string {
	return fmt.Sprintf("Authority{%v W:%d}", a.PubKey, a.Weight)
}

// AuthoritySet is the set of authorities voting under one set id.
// NOTE: the order of Authorities is the on-chain order and is part of Hash.
type AuthoritySet struct {
	SetID       uint64
	Authorities []Authority
}

// NewAuthoritySet returns a set with a copy of authorities.
func NewAuthoritySet(setID uint64, authorities []Authority) *AuthoritySet {
	return &AuthoritySet{
		SetID:       setID,
		Authorities: copyAuthorities(authorities),
	}
}

// ValidateBasic checks that the set is non-empty, that keys are unique and
// that every weight is positive.
func (s *AuthoritySet) ValidateBasic() error {
	if s == nil {
		return errors.New("nil authority set")
	}
	return validateAuthorities(s.Authorities)
}

func validateAuthorities(authorities []Authority) error {
	if len(authorities) == 0 {
		return errors.New("authority set is empty")
	}

	seen := make(map[ed25519.PubKey]struct{}, len(authorities))
	for i, a := range authorities {
		if a.PubKey.IsZero() {
			return fmt.Errorf("authority #%d has an empty public key", i)
		}
		if a.Weight == 0 {
			return fmt.Errorf("authority #%d (%v) has zero weight", i, a.PubKey)
		}
		if _, ok := seen[a.PubKey]; ok {
			return fmt.Errorf("duplicate authority %v", a.PubKey)
		}
		seen[a.PubKey] = struct{}{}
	}
	return nil
}

// TotalWeight returns the sum of all weights. The sum of any number of
// uint64 weights fits in 256 bits.
func (s *AuthoritySet) TotalWeight() *uint256.Int {
	total := uint256.NewInt(0)
	for _, a := range s.Authorities {
		total.Add(total, uint256.NewInt(a.Weight))
	}
	return total
}

// GetByPubKey returns the index and authority for key; index is -1 and the
// authority nil if the key is not in the set.
func (s *AuthoritySet) GetByPubKey(key ed25519.PubKey) (index int, authority *Authority) {
	for idx, a := range s.Authorities {
		if a.PubKey == key {
			return idx, &s.Authorities[idx]
		}
	}
	return -1, nil
}

// HasPubKey returns true if key is in the set.
func (s *AuthoritySet) HasPubKey(key ed25519.PubKey) bool {
	idx, _ := s.GetByPubKey(key)
	return idx >= 0
}

// Size returns the number of authorities.
func (s *AuthoritySet) Size() int {
	return len(s.Authorities)
}

// Copy returns a deep copy of the set.
func (s *AuthoritySet) Copy() *AuthoritySet {
	if s == nil {
		return nil
	}
	return NewAuthoritySet(s.SetID, s.Authorities)
}

// Hash returns blake2b-256 of SCALE(set_id, authorities).
func (s *AuthoritySet) Hash() Hash {
	return AuthoritySetHash(s.SetID, s.Authorities)
}

// AuthoritySetHash commits to a set that may not have been built yet, such
// as the one announced by a scheduled change.
func AuthoritySetHash(setID uint64, authorities []Authority) Hash {
	bz := scale.MustMarshal(struct {
		SetID       uint64
		Authorities []scaleAuthority
	}{setID, toScaleAuthorities(authorities)})
	return crypto.Blake2b256(bz)
}

func (s *AuthoritySet) String() string {
	if s == nil {
		return "nil-AuthoritySet"
	}
	strs := make([]string, len(s.Authorities))
	for i, a := range s.Authorities {
		strs[i] = a.String()
	}
	return fmt.Sprintf("AuthoritySet{SetID:%d [%s]}", s.SetID, strings.Join(strs, ", "))
}

func copyAuthorities(authorities []Authority) []Authority {
	if authorities == nil {
		return nil
	}
	cp := make([]Authority, len(authorities))
	copy(cp, authorities)
	return cp
}
