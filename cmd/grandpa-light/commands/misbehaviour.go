package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	grandpaproto "github.com/tendermint/ics10-grandpa/proto/grandpa"
	"github.com/tendermint/ics10-grandpa/types"
)

var checkOnly bool

// MisbehaviourCmd submits misbehaviour evidence.
var MisbehaviourCmd = &cobra.Command{
	Use:   "misbehaviour [client-id] [evidence.json]",
	Short: "Freeze the client with proof of misbehaviour",
	Long: `Freeze the client with proof of misbehaviour.

The evidence is the protobuf JSON encoding of
ibc.lightclients.grandpa.v1.Misbehaviour. An empty client_id defaults to the
client being addressed. Evidence that does not conclusively prove
misbehaviour is rejected and leaves the client unchanged.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		clientID := args[0]

		var pm grandpaproto.Misbehaviour
		if err := readProto(args[1], &pm); err != nil {
			return err
		}
		if pm.ClientId == "" {
			pm.ClientId = clientID
		}
		m, err := types.MisbehaviourFromProto(&pm)
		if err != nil {
			return err
		}

		c, err := openClient(clientID)
		if err != nil {
			return err
		}
		defer closeClient(c, &err)

		now := time.Now()
		if checkOnly {
			if err := c.VerifyClientMessage(m, now); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "misbehaviour is conclusive")
			return nil
		}
		return c.SubmitMisbehaviour(m, now)
	},
}

func init() {
	MisbehaviourCmd.Flags().BoolVar(&checkOnly, "check", false, "only check the evidence, do not freeze the client")
}
