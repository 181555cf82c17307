package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	tmos "github.com/tendermint/ics10-grandpa/libs/os"
	"github.com/tendermint/ics10-grandpa/light"
	"github.com/tendermint/ics10-grandpa/types"
)

// ExportCmd writes the trusted state of a client as a genesis that another
// light client can be created from.
var ExportCmd = &cobra.Command{
	Use:   "export [client-id] [out.json]",
	Short: "Export the trusted state of a light client as a genesis",
	Long: `Export the trusted state of a light client as a genesis.

The output is the protobuf JSON encoding of ibc.lightclients.grandpa.v1.Genesis
holding the client state, the consensus state at its latest height and the
current authority set. The file is replaced atomically.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		c, err := openClient(args[0])
		if err != nil {
			return err
		}
		defer closeClient(c, &err)

		g, err := exportGenesis(c.Client)
		if err != nil {
			return err
		}

		bz, err := marshalProto(g.ToProto())
		if err != nil {
			return err
		}
		if err := tmos.WriteFileAtomic(args[1], bz, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", args[1], err)
		}
		logger.Info("exported client", "client", args[0], "height", g.ClientState.LatestHeight, "out", args[1])
		return nil
	},
}

func exportGenesis(c *light.Client) (*types.Genesis, error) {
	cs, err := c.LatestClientState()
	if err != nil {
		return nil, err
	}
	if cs.IsFrozen() {
		return nil, light.ErrClientFrozen{FrozenHeight: cs.FrozenHeight}
	}
	cons, err := c.ConsensusStateAt(cs.LatestHeight)
	if err != nil {
		return nil, err
	}
	set, err := c.AuthoritySet(cs.CurrentSetID)
	if err != nil {
		return nil, err
	}
	return &types.Genesis{ClientState: cs, ConsensusState: cons, AuthoritySet: set}, nil
}
