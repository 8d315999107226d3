// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/ava-labs/launchpad/actions"
	"github.com/ava-labs/launchpad/api/ws"
	"github.com/ava-labs/launchpad/utils"
)

var watchCmd = &cobra.Command{
	Use:   "watch [token...]",
	Short: "Stream committed trades, optionally for the given tokens only",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		cli, err := ws.NewWebSocketClient(ctx, endpoint, args...)
		if err != nil {
			return err
		}
		defer cli.Close()

		utils.Outf("{{yellow}}watching trades on %s{{/}}\n", endpoint)
		for {
			e, err := cli.ListenTrade(ctx)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			if err != nil {
				return err
			}
			out, err := e.Decode()
			if err != nil {
				return err
			}
			switch o := out.(type) {
			case *actions.LaunchResult:
				utils.Outf("{{green}}launch{{/}} %s #%d supply %s\n", o.Token, o.Index, o.TotalSupply)
			case *actions.BuyResult:
				utils.Outf("{{green}}buy{{/}}    %s in %s out %s\n", o.Token, o.AmountIn, o.AmountOut)
			case *actions.SellResult:
				utils.Outf("{{red}}sell{{/}}   %s in %s out %s\n", o.Token, o.AmountIn, o.AmountOut)
			case *actions.TransferResult:
				utils.Outf("{{cyan}}transfer{{/}} %s amount %s\n", o.Asset, o.Amount)
			}
		}
	},
}
