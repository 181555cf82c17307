package db

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/gogo/protobuf/proto"
	"github.com/google/orderedcode"
	dbm "github.com/tendermint/tm-db"

	"github.com/tendermint/ics10-grandpa/light/store"
	grandpaproto "github.com/tendermint/ics10-grandpa/proto/grandpa"
	"github.com/tendermint/ics10-grandpa/types"
)

const (
	prefixClientState    = int64(0)
	prefixConsensusState = int64(1)
	prefixAuthoritySet   = int64(2)
	prefixSize           = int64(3)
)

type dbs struct {
	db     dbm.DB
	prefix string

	mtx  sync.RWMutex
	size uint64
}

var _ store.Store = (*dbs)(nil)

// New returns a Store that wraps any DB (with an optional prefix in case you
// want to use one DB with many light clients). The prefix is usually the
// client identifier.
//
// Objects are marshalled using protobuf.
func New(db dbm.DB, prefix string) store.Store {
	s := &dbs{db: db, prefix: prefix}

	bz, err := db.Get(s.sizeKey())
	if err != nil {
		panic(err)
	}
	if len(bz) > 0 {
		s.size = unmarshalSize(bz)
	}

	return s
}

// ClientState loads the client state.
//
// Safe for concurrent use by multiple goroutines.
func (s *dbs) ClientState() (*types.ClientState, error) {
	bz, err := s.db.Get(s.csKey())
	if err != nil {
		panic(err)
	}
	if len(bz) == 0 {
		return nil, store.ErrClientStateNotFound
	}

	var pc grandpaproto.ClientState
	if err := proto.Unmarshal(bz, &pc); err != nil {
		return nil, fmt.Errorf("unmarshal client state: %w", err)
	}
	return types.ClientStateFromProto(&pc)
}

// ConsensusState loads the consensus state at the given height.
//
// Safe for concurrent use by multiple goroutines.
func (s *dbs) ConsensusState(height uint64) (*types.ConsensusState, error) {
	if height == 0 {
		panic("zero height")
	}

	bz, err := s.db.Get(s.consKey(height))
	if err != nil {
		panic(err)
	}
	if len(bz) == 0 {
		return nil, store.ErrConsensusStateNotFound
	}

	var pc grandpaproto.ConsensusState
	if err := proto.Unmarshal(bz, &pc); err != nil {
		return nil, fmt.Errorf("unmarshal consensus state: %w", err)
	}
	return types.ConsensusStateFromProto(&pc)
}

// ConsensusHeights returns all consensus state heights in ascending order.
//
// Safe for concurrent use by multiple goroutines.
func (s *dbs) ConsensusHeights() ([]uint64, error) {
	itr, err := s.db.Iterator(s.kindKey(prefixConsensusState), s.kindKey(prefixConsensusState+1))
	if err != nil {
		panic(err)
	}
	defer itr.Close()

	var heights []uint64
	for ; itr.Valid(); itr.Next() {
		height, ok := s.parseConsKey(itr.Key())
		if ok {
			heights = append(heights, height)
		}
	}

	return heights, itr.Error()
}

// AuthoritySet loads the authority set with the given id.
//
// Safe for concurrent use by multiple goroutines.
func (s *dbs) AuthoritySet(setID uint64) (*types.AuthoritySet, error) {
	bz, err := s.db.Get(s.asKey(setID))
	if err != nil {
		panic(err)
	}
	if len(bz) == 0 {
		return nil, store.ErrAuthoritySetNotFound
	}

	var ps grandpaproto.AuthoritySet
	if err := proto.Unmarshal(bz, &ps); err != nil {
		return nil, fmt.Errorf("unmarshal authority set: %w", err)
	}
	return types.AuthoritySetFromProto(&ps)
}

// Commit persists the changeset in a single batch.
//
// Safe for concurrent use by multiple goroutines.
func (s *dbs) Commit(cs *store.Changeset) error {
	if cs == nil || cs.ClientState == nil {
		return fmt.Errorf("changeset must carry a client state")
	}

	csBz, err := proto.Marshal(cs.ClientState.ToProto())
	if err != nil {
		return fmt.Errorf("marshalling client state: %w", err)
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	b := s.db.NewBatch()
	defer b.Close()

	if err := b.Set(s.csKey(), csBz); err != nil {
		return err
	}

	size := s.size
	if cs.ConsensusState != nil {
		if cs.Height == 0 {
			return fmt.Errorf("consensus state height must be > 0")
		}
		ok, err := s.db.Has(s.consKey(cs.Height))
		if err != nil {
			panic(err)
		}
		if ok {
			return fmt.Errorf("height %d: %w", cs.Height, store.ErrConsensusStateExists)
		}

		consBz, err := proto.Marshal(cs.ConsensusState.ToProto())
		if err != nil {
			return fmt.Errorf("marshalling consensus state: %w", err)
		}
		if err := b.Set(s.consKey(cs.Height), consBz); err != nil {
			return err
		}
		size++
		if err := b.Set(s.sizeKey(), marshalSize(size)); err != nil {
			return err
		}
	}

	for _, set := range cs.AuthoritySets {
		setBz, err := proto.Marshal(set.ToProto())
		if err != nil {
			return fmt.Errorf("marshalling authority set %d: %w", set.SetID, err)
		}
		existing, err := s.db.Get(s.asKey(set.SetID))
		if err != nil {
			panic(err)
		}
		if existing != nil && string(existing) != string(setBz) {
			return fmt.Errorf("set id %d: %w", set.SetID, store.ErrAuthoritySetExists)
		}
		if err := b.Set(s.asKey(set.SetID), setBz); err != nil {
			return err
		}
	}

	if err := b.WriteSync(); err != nil {
		return err
	}

	s.size = size
	return nil
}

// Prune prunes consensus states until there are only size states left. The
// latest consensus state always survives.
//
// Safe for concurrent use by multiple goroutines.
func (s *dbs) Prune(size uint16) error {
	if size == 0 {
		size = 1
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	// 1) Check how many we need to prune.
	if s.size <= uint64(size) { // nothing to prune
		return nil
	}
	numToPrune := s.size - uint64(size)

	// 2) Iterate over consensus states and perform a batch operation.
	itr, err := s.db.Iterator(s.kindKey(prefixConsensusState), s.kindKey(prefixConsensusState+1))
	if err != nil {
		panic(err)
	}

	b := s.db.NewBatch()
	defer b.Close()

	pruned := uint64(0)
	for itr.Valid() && numToPrune > 0 {
		height, ok := s.parseConsKey(itr.Key())
		if ok {
			if err := b.Delete(s.consKey(height)); err != nil {
				itr.Close()
				return err
			}
			numToPrune--
			pruned++
		}
		itr.Next()
	}

	if err := itr.Close(); err != nil {
		return err
	}

	// 3) Update size.
	if err := b.Set(s.sizeKey(), marshalSize(s.size-pruned)); err != nil {
		return err
	}
	if err := b.WriteSync(); err != nil {
		return fmt.Errorf("failed to prune: %w", err)
	}

	s.size -= pruned
	return nil
}

// Size returns the number of consensus states.
//
// Safe for concurrent use by multiple goroutines.
func (s *dbs) Size() uint64 {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return s.size
}

func (s *dbs) kindKey(kind int64) []byte {
	key, err := orderedcode.Append(nil, s.prefix, kind)
	if err != nil {
		panic(err)
	}
	return key
}

func (s *dbs) csKey() []byte {
	return s.kindKey(prefixClientState)
}

func (s *dbs) sizeKey() []byte {
	return s.kindKey(prefixSize)
}

func (s *dbs) consKey(height uint64) []byte {
	key, err := orderedcode.Append(nil, s.prefix, prefixConsensusState, height)
	if err != nil {
		panic(err)
	}
	return key
}

func (s *dbs) asKey(setID uint64) []byte {
	key, err := orderedcode.Append(nil, s.prefix, prefixAuthoritySet, setID)
	if err != nil {
		panic(err)
	}
	return key
}

func (s *dbs) parseConsKey(key []byte) (height uint64, ok bool) {
	var (
		prefix string
		kind   int64
	)
	remaining, err := orderedcode.Parse(string(key), &prefix, &kind, &height)
	if err != nil || len(remaining) != 0 {
		return 0, false
	}
	if prefix != s.prefix || kind != prefixConsensusState {
		return 0, false
	}
	return height, true
}

func marshalSize(size uint64) []byte {
	bs := make([]byte, 8)
	binary.LittleEndian.PutUint64(bs, size)
	return bs
}

func unmarshalSize(bz []byte) uint64 {
	return binary.LittleEndian.Uint64(bz)
}
