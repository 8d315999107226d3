// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ava-labs/launchpad/market"
	"github.com/ava-labs/launchpad/utils"
)

const displayPrecision = 6

var (
	quoteSell bool
	offset    uint64
	limit     uint64
)

var quoteCmd = &cobra.Command{
	Use:   "quote [token] [amount]",
	Short: "Price a trade without executing it",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		token, err := market.ParseTokenID(args[0])
		if err != nil {
			return err
		}
		amount, err := utils.ParseAmount(args[1])
		if err != nil {
			return err
		}

		ctx, cancel := requestContext(cmd)
		defer cancel()
		quote, err := client().Quote(ctx, token, amount, !quoteSell)
		if err != nil {
			return err
		}
		if !quote.Exists {
			utils.Outf("{{orange}}%s has not been launched{{/}}\n", token)
			return nil
		}
		in, out := market.Base, token
		if quoteSell {
			in, out = token, market.Base
		}
		utils.Outf(
			"%s %s {{yellow}}->{{/}} %s %s {{yellow}}price impact:{{/}} %s\n",
			quote.AmountIn,
			in,
			quote.AmountOut,
			out,
			utils.FormatPercent(quote.PriceImpact, 2),
		)
		return nil
	},
}

var marketCmd = &cobra.Command{
	Use:   "market [token]",
	Short: "Show a market",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		token, err := market.ParseTokenID(args[0])
		if err != nil {
			return err
		}

		ctx, cancel := requestContext(cmd)
		defer cancel()
		info, err := client().Market(ctx, token)
		if err != nil {
			return err
		}
		if err := printAccount("creator", info.Creator); err != nil {
			return err
		}
		utils.Outf("{{yellow}}market account:{{/}} %s\n", info.Market)
		utils.Outf("{{yellow}}total supply:{{/}} %s\n", info.TotalSupply)
		utils.Outf("{{yellow}}base reserve:{{/}} %s (%s virtual)\n", info.RealBaseReserve, info.VirtualBaseReserve)
		utils.Outf("{{yellow}}asset reserve:{{/}} %s\n", info.RealAssetReserve)
		utils.Outf("{{yellow}}spot price:{{/}} %s\n", utils.FormatRat(info.SpotPrice, displayPrecision))
		utils.Outf("{{yellow}}market cap:{{/}} %s\n", utils.FormatRat(info.MarketCap, displayPrecision))
		utils.Outf("{{yellow}}sold:{{/}} %s\n", utils.FormatPercent(info.Progress, 2))
		return nil
	},
}

var marketsCmd = &cobra.Command{
	Use:   "markets",
	Short: "List launched tokens in launch order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()
		tokens, err := client().LaunchedTokens(ctx, offset, limit)
		if err != nil {
			return err
		}
		for i, token := range tokens {
			utils.Outf("%d) {{cyan}}%s{{/}}\n", offset+uint64(i), token)
		}
		return nil
	},
}

var balanceCmd = &cobra.Command{
	Use:   "balance [asset]",
	Short: "Show the account's balance of an asset",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		account, err := currentAccount()
		if err != nil {
			return err
		}
		asset := market.Base
		if len(args) == 1 {
			asset, err = market.ParseTokenID(args[0])
			if err != nil {
				return err
			}
		}

		ctx, cancel := requestContext(cmd)
		defer cancel()
		balance, err := client().Balance(ctx, account, asset)
		if err != nil {
			return err
		}
		utils.Outf("{{yellow}}balance:{{/}} %s %s\n", balance, asset)
		return nil
	},
}

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the node is serving",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()
		ok, err := client().Ping(ctx)
		if err != nil {
			return err
		}
		utils.Outf("{{green}}ping:{{/}} %t\n", ok)
		return nil
	},
}

func initMarketFlags() {
	quoteCmd.Flags().BoolVar(
		&quoteSell,
		"sell",
		false,
		"quote selling the token instead of buying it",
	)
	marketsCmd.Flags().Uint64Var(
		&offset,
		"offset",
		0,
		"index of the first token",
	)
	marketsCmd.Flags().Uint64Var(
		&limit,
		"limit",
		0,
		"maximum number of tokens (0 lists all)",
	)
}
