package commands

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tendermint/ics10-grandpa/types"
)

// StatusCmd prints the status of a light client.
var StatusCmd = &cobra.Command{
	Use:   "status [client-id]",
	Short: "Show the status of a light client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		c, err := openClient(args[0])
		if err != nil {
			return err
		}
		defer closeClient(c, &err)

		now := time.Now()
		cs, err := c.LatestClientState()
		if err != nil {
			return err
		}
		ts, err := c.TimestampAtHeight(cs.LatestHeight)
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(struct {
			ClientID     string    `json:"client_id"`
			ChainID      string    `json:"chain_id"`
			Status       string    `json:"status"`
			LatestHeight uint64    `json:"latest_height"`
			Timestamp    time.Time `json:"timestamp"`
			FrozenHeight uint64    `json:"frozen_height,omitempty"`
			SetID        uint64    `json:"current_set_id"`
			PendingAt    uint64    `json:"pending_change_height,omitempty"`
		}{
			ClientID:     c.ClientID(),
			ChainID:      cs.ChainID,
			Status:       c.Status(now).String(),
			LatestHeight: cs.LatestHeight,
			Timestamp:    ts,
			FrozenHeight: cs.FrozenHeight,
			SetID:        cs.CurrentSetID,
			PendingAt:    pendingHeight(cs.PendingChange),
		}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func pendingHeight(pc *types.PendingChange) uint64 {
	if pc == nil {
		return 0
	}
	return pc.EffectiveHeight
}
