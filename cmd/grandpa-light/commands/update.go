package commands

import (
	"time"

	"github.com/spf13/cobra"

	grandpaproto "github.com/tendermint/ics10-grandpa/proto/grandpa"
	"github.com/tendermint/ics10-grandpa/types"
)

// UpdateCmd submits a header with its justification.
var UpdateCmd = &cobra.Command{
	Use:   "update [client-id] [header.json]",
	Short: "Verify a header and store its consensus state",
	Long: `Verify a header and store its consensus state.

The header is the protobuf JSON encoding of ibc.lightclients.grandpa.v1.Header.
On success the new consensus state is printed.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var ph grandpaproto.Header
		if err := readProto(args[1], &ph); err != nil {
			return err
		}
		h, err := types.HeaderFromProto(&ph)
		if err != nil {
			return err
		}

		c, err := openClient(args[0])
		if err != nil {
			return err
		}
		defer closeClient(c, &err)

		cons, err := c.SubmitHeader(h, time.Now())
		if err != nil {
			return err
		}
		return printProto(cmd, cons.ToProto())
	},
}
