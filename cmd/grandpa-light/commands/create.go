package commands

import (
	"fmt"

	gogotypes "github.com/gogo/protobuf/types"
	"github.com/spf13/cobra"

	grandpaproto "github.com/tendermint/ics10-grandpa/proto/grandpa"
	"github.com/tendermint/ics10-grandpa/types"
)

// CreateCmd initializes a light client from a trusted genesis.
var CreateCmd = &cobra.Command{
	Use:   "create [client-id] [genesis.json]",
	Short: "Create a light client from a trusted genesis",
	Long: `Create a light client from a trusted genesis.

The genesis is the protobuf JSON encoding of ibc.lightclients.grandpa.v1.Genesis:
the client state, the consensus state at its latest height and the authority
set it trusts. A missing trusting period or clock drift is taken from the
[light] config section.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		clientID := args[0]

		var pg grandpaproto.Genesis
		if err := readProto(args[1], &pg); err != nil {
			return err
		}
		if pg.ClientState != nil {
			if pg.ClientState.TrustingPeriod == nil {
				pg.ClientState.TrustingPeriod = gogotypes.DurationProto(conf.Light.TrustingPeriod)
			}
			if pg.ClientState.MaxClockDrift == nil {
				pg.ClientState.MaxClockDrift = gogotypes.DurationProto(conf.Light.MaxClockDrift)
			}
		}

		g, err := types.GenesisFromProto(&pg)
		if err != nil {
			return fmt.Errorf("invalid genesis: %w", err)
		}

		c, err := openClient(clientID)
		if err != nil {
			return err
		}
		defer closeClient(c, &err)

		return c.Initialize(g.ClientState, g.ConsensusState, g.AuthoritySet)
	},
}
