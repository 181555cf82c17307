package commands

import (
	"github.com/spf13/cobra"
)

var pruneSize uint16

// PruneCmd removes old consensus states of a light client.
var PruneCmd = &cobra.Command{
	Use:   "prune [client-id]",
	Short: "Remove all but the latest consensus states",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		c, err := openClient(args[0])
		if err != nil {
			return err
		}
		defer closeClient(c, &err)

		if err := c.Prune(pruneSize); err != nil {
			return err
		}
		logger.Info("pruned consensus states", "client", args[0], "kept", pruneSize)
		return nil
	},
}

func init() {
	PruneCmd.Flags().Uint16Var(&pruneSize, "keep", 1, "number of consensus states to keep")
}
