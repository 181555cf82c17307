package light_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	dbm "github.com/tendermint/tm-db"

	"github.com/tendermint/ics10-grandpa/internal/test/factory"
	"github.com/tendermint/ics10-grandpa/libs/log"
	"github.com/tendermint/ics10-grandpa/light"
	"github.com/tendermint/ics10-grandpa/light/store"
	dbs "github.com/tendermint/ics10-grandpa/light/store/db"
	"github.com/tendermint/ics10-grandpa/types"
)

const clientID = "10-grandpa-0"

var bTime = factory.GenesisTime

// testClient is a light client initialized at a genesis block under one
// authority set, together with the chain it follows.
type testClient struct {
	*light.Client

	db     *dbm.MemDB
	store  store.Store
	voters []*factory.Voter
	setID  uint64

	genesis types.BlockHeader
	head    types.BlockHeader
	now     time.Time
}

func newTestClient(t *testing.T, voters []*factory.Voter, options ...light.Option) *testClient {
	t.Helper()

	db := dbm.NewMemDB()
	s := dbs.New(db, clientID)
	options = append([]light.Option{light.Logger(log.TestingLogger())}, options...)
	c := light.NewClient(clientID, s, options...)

	genesis := factory.GenesisBlock(100)
	g := factory.MakeGenesis(genesis, bTime, 0, voters, factory.DefaultTrustingPeriod)
	require.NoError(t, c.Initialize(g.ClientState, g.ConsensusState, g.AuthoritySet))

	return &testClient{
		Client:  c,
		db:      db,
		store:   s,
		voters:  voters,
		genesis: genesis,
		head:    genesis,
		now:     bTime,
	}
}

// next builds the header finalizing the child of the current head, signed
// by signers, without submitting it.
func (tc *testClient) next(signers []*factory.Voter, digest ...types.DigestItem) *types.Header {
	block := factory.NextBlock(tc.head, digest...)
	j := factory.MakeJustification(1, tc.setID, block, signers)
	return factory.MakeHeader(block, tc.now.Add(time.Minute), j)
}

// advance submits h and moves the head on success.
func (tc *testClient) advance(t *testing.T, h *types.Header) *types.ConsensusState {
	t.Helper()

	tc.now = h.Timestamp
	cons, err := tc.SubmitHeader(h, tc.now)
	require.NoError(t, err)
	tc.head = h.Block
	return cons
}

// snapshot returns every key/value pair held by db.
func snapshot(t *testing.T, db dbm.DB) map[string][]byte {
	t.Helper()

	it, err := db.Iterator(nil, nil)
	require.NoError(t, err)
	defer it.Close()

	out := make(map[string][]byte)
	for ; it.Valid(); it.Next() {
		out[string(it.Key())] = append([]byte(nil), it.Value()...)
	}
	require.NoError(t, it.Error())
	return out
}
