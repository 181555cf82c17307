package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gogo/protobuf/proto"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	dbm "github.com/tendermint/tm-db"

	"github.com/tendermint/ics10-grandpa/config"
	"github.com/tendermint/ics10-grandpa/internal/test"
	"github.com/tendermint/ics10-grandpa/internal/test/factory"
	grandpaproto "github.com/tendermint/ics10-grandpa/proto/grandpa"
	"github.com/tendermint/ics10-grandpa/types"
)

const testClientID = "10-grandpa-0"

func TestMain(m *testing.M) {
	NewExecutor(os.TempDir())
	os.Exit(m.Run())
}

// run executes the root command with args under home and returns what it
// printed.
func run(t *testing.T, home string, args ...string) (string, error) {
	t.Helper()

	viper.Reset()
	conf = config.DefaultConfig()
	checkOnly, pruneSize = false, 1

	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetArgs(append(args, "--home", home, "--log-level", "error"))
	err := RootCmd.Execute()
	return out.String(), err
}

func writeProto(t *testing.T, dir, name string, msg proto.Message) string {
	t.Helper()

	bz, err := marshalProto(msg)
	require.NoError(t, err)
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, bz, 0600))
	return path
}

func TestCommandsLifecycle(t *testing.T) {
	var (
		home    = t.TempDir()
		voters  = factory.Voters("cli", 4, 1)
		genTime = time.Now().Add(-time.Hour).UTC().Truncate(time.Second)
		block   = factory.GenesisBlock(40)
	)

	_, err := run(t, home, "init")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(home, "config", "config.toml"))

	g := factory.MakeGenesis(block, genTime, 0, voters, 0)
	pg := g.ToProto()
	pg.ClientState.TrustingPeriod = nil // filled from the config
	genesisFile := writeProto(t, home, "genesis.json", pg)

	_, err = run(t, home, "create", testClientID, genesisFile)
	require.NoError(t, err)
	_, err = run(t, home, "create", testClientID, genesisFile)
	assert.Error(t, err, "client already exists")

	next := factory.NextBlock(block)
	h := factory.MakeHeader(next, genTime.Add(time.Minute), factory.MakeJustification(1, 0, next, voters))
	headerFile := writeProto(t, home, "header.json", h.ToProto())

	out, err := run(t, home, "update", testClientID, headerFile)
	require.NoError(t, err)
	var cons grandpaproto.ConsensusState
	require.NoError(t, jsonpbUnmarshaller.Unmarshal(bytes.NewReader([]byte(out)), &cons))
	assert.Equal(t, next.Hash().Bytes(), cons.BlockHash)

	_, err = run(t, home, "update", testClientID, headerFile)
	assert.Error(t, err, "same header twice")

	out, err = run(t, home, "status", testClientID)
	require.NoError(t, err)
	var status struct {
		Status       string `json:"status"`
		LatestHeight uint64 `json:"latest_height"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &status))
	assert.Equal(t, types.StatusActive.String(), status.Status)
	assert.Equal(t, uint64(41), status.LatestHeight)

	exportFile := filepath.Join(home, "export.json")
	_, err = run(t, home, "export", testClientID, exportFile)
	require.NoError(t, err)
	var exported grandpaproto.Genesis
	require.NoError(t, readProto(exportFile, &exported))
	eg, err := types.GenesisFromProto(&exported)
	require.NoError(t, err)
	assert.Equal(t, uint64(41), eg.ClientState.LatestHeight)
	assert.Equal(t, config.DefaultLightConfig().TrustingPeriod, eg.ClientState.TrustingPeriod)

	// the export seeds another client
	_, err = run(t, home, "create", "10-grandpa-1", exportFile)
	require.NoError(t, err)

	m := &types.Misbehaviour{
		ClientID: testClientID,
		Evidence: &types.DoubleVote{
			Round:  2,
			First:  factory.SignPrecommit(voters[0], 2, 0, factory.NextBlock(next)),
			Second: factory.SignPrecommit(voters[0], 2, 0, factory.NextBlockOnFork(next, 1)),
		},
	}
	pm, err := m.ToProto()
	require.NoError(t, err)
	pm.ClientId = ""
	evidenceFile := writeProto(t, home, "evidence.json", pm)

	out, err = run(t, home, "misbehaviour", testClientID, evidenceFile, "--check")
	require.NoError(t, err)
	assert.Contains(t, out, "conclusive")

	_, err = run(t, home, "misbehaviour", testClientID, evidenceFile)
	require.NoError(t, err)

	out, err = run(t, home, "status", testClientID)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &status))
	assert.Equal(t, types.StatusFrozen.String(), status.Status)

	_, err = run(t, home, "export", testClientID, exportFile)
	assert.Error(t, err, "frozen clients are not exported")

	// the other client is untouched
	out, err = run(t, home, "status", "10-grandpa-1")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &status))
	assert.Equal(t, types.StatusActive.String(), status.Status)
}

func TestCommandsMetricsTextfile(t *testing.T) {
	cfg := test.ResetTestRoot(t, func(cfg *config.Config) {
		cfg.DBBackend = "goleveldb"
		cfg.Instrumentation.Prometheus = true
	})
	home := cfg.RootDir
	voters := factory.Voters("cli-metrics", 3, 1)

	g := factory.MakeGenesis(factory.GenesisBlock(3), time.Now().Add(-time.Minute), 0, voters, time.Hour)
	genesisFile := writeProto(t, home, "genesis.json", g.ToProto())

	_, err := run(t, home, "create", "metrics-client", genesisFile)
	require.NoError(t, err)

	bz, err := os.ReadFile(filepath.Join(home, "data", "metrics.prom"))
	require.NoError(t, err)
	assert.Contains(t, string(bz), "grandpa_grandpa_light_latest_height")
	assert.Contains(t, string(bz), `client_id="metrics-client"`)
}

type failingCloseDB struct {
	*dbm.MemDB
}

func (failingCloseDB) Close() error { return errors.New("close failed") }

func TestCloseClientReportsError(t *testing.T) {
	conf = config.DefaultConfig()

	var err error
	closeClient(&clientEnv{db: failingCloseDB{dbm.NewMemDB()}}, &err)
	assert.EqualError(t, err, "close failed")

	err = errors.New("command failed")
	closeClient(&clientEnv{db: failingCloseDB{dbm.NewMemDB()}}, &err)
	assert.EqualError(t, err, "command failed")
}

func TestVersionCmd(t *testing.T) {
	out, err := run(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
