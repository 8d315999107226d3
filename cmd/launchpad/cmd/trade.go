// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"fmt"
	"math/big"

	"github.com/spf13/cobra"

	"github.com/ava-labs/launchpad/codec"
	"github.com/ava-labs/launchpad/market"
	"github.com/ava-labs/launchpad/utils"
)

var (
	minAmountOut string

	tokenName        string
	tokenDescription string
	tokenImageURL    string
)

var launchCmd = &cobra.Command{
	Use:   "launch [token] [supply] [virtual base]",
	Short: "Launch a market for a token you hold",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		actor, err := currentAccount()
		if err != nil {
			return err
		}
		token, err := market.ParseTokenID(args[0])
		if err != nil {
			return err
		}
		supply, err := utils.ParseAmount(args[1])
		if err != nil {
			return err
		}
		virtualBase, err := utils.ParseAmount(args[2])
		if err != nil {
			return err
		}

		metadata, err := launchMetadata()
		if err != nil {
			return err
		}

		ok, err := confirm(fmt.Sprintf("launch %s with supply %s and virtual base %s? launches cannot be undone", token, supply, virtualBase))
		if err != nil || !ok {
			return err
		}

		ctx, cancel := requestContext(cmd)
		defer cancel()
		result, err := client().Launch(ctx, actor, token, supply, virtualBase, metadata)
		if err != nil {
			return err
		}
		utils.Outf(
			"{{green}}launched{{/}} %s {{yellow}}supply:{{/}} %s {{yellow}}virtual base:{{/}} %s {{yellow}}index:{{/}} %d\n",
			result.Token,
			result.TotalSupply,
			result.VirtualBase,
			result.Index,
		)
		return nil
	},
}

var buyCmd = &cobra.Command{
	Use:   "buy [token] [base amount]",
	Short: "Buy a token with the base asset",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		actor, token, amount, minOut, err := tradeArgs(args)
		if err != nil {
			return err
		}

		ctx, cancel := requestContext(cmd)
		defer cancel()
		result, err := client().Buy(ctx, actor, token, amount, minOut)
		if err != nil {
			return err
		}
		utils.Outf(
			"{{green}}bought{{/}} %s %s for %s %s\n",
			result.AmountOut,
			result.Token,
			result.AmountIn,
			market.Base,
		)
		return nil
	},
}

var sellCmd = &cobra.Command{
	Use:   "sell [token] [amount]",
	Short: "Sell a token back to its market",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		actor, token, amount, minOut, err := tradeArgs(args)
		if err != nil {
			return err
		}

		ctx, cancel := requestContext(cmd)
		defer cancel()
		result, err := client().Sell(ctx, actor, token, amount, minOut)
		if err != nil {
			return err
		}
		utils.Outf(
			"{{green}}sold{{/}} %s %s for %s %s\n",
			result.AmountIn,
			result.Token,
			result.AmountOut,
			market.Base,
		)
		return nil
	},
}

var transferCmd = &cobra.Command{
	Use:   "transfer [to] [asset] [amount]",
	Short: "Send an asset to another account",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		actor, err := currentAccount()
		if err != nil {
			return err
		}
		to, err := parseAccount(args[0])
		if err != nil {
			return err
		}
		asset, err := market.ParseTokenID(args[1])
		if err != nil {
			return err
		}
		amount, err := utils.ParseAmount(args[2])
		if err != nil {
			return err
		}

		ctx, cancel := requestContext(cmd)
		defer cancel()
		result, err := client().Transfer(ctx, actor, to, asset, amount)
		if err != nil {
			return err
		}
		utils.Outf("{{green}}transferred{{/}} %s %s to %s\n", result.Amount, result.Asset, args[0])
		return nil
	},
}

var depositCmd = &cobra.Command{
	Use:   "deposit [asset] [amount]",
	Short: "Fund the account from the node's faucet",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		actor, err := currentAccount()
		if err != nil {
			return err
		}
		asset, err := market.ParseTokenID(args[0])
		if err != nil {
			return err
		}
		amount, err := utils.ParseAmount(args[1])
		if err != nil {
			return err
		}

		ctx, cancel := requestContext(cmd)
		defer cancel()
		balance, err := client().Deposit(ctx, actor, asset, amount)
		if err != nil {
			return err
		}
		utils.Outf("{{green}}deposited{{/}} %s %s {{yellow}}balance:{{/}} %s\n", amount, asset, balance)
		return nil
	},
}

func initTradeFlags() {
	for _, c := range []*cobra.Command{buyCmd, sellCmd} {
		c.Flags().StringVar(
			&minAmountOut,
			"min-out",
			"",
			"fail if the trade yields less",
		)
	}
	launchCmd.Flags().StringVar(
		&tokenName,
		"name",
		"",
		"display name stored with the market",
	)
	launchCmd.Flags().StringVar(
		&tokenDescription,
		"description",
		"",
		"description stored with the market",
	)
	launchCmd.Flags().StringVar(
		&tokenImageURL,
		"image-url",
		"",
		"http(s) or ipfs url of the token image",
	)
}

// launchMetadata returns nil unless a name was given.
func launchMetadata() (*market.Metadata, error) {
	if tokenName == "" {
		if tokenDescription != "" || tokenImageURL != "" {
			return nil, fmt.Errorf("%w: --name is required with --description or --image-url", market.ErrInvalidMetadata)
		}
		return nil, nil
	}
	m := &market.Metadata{
		Name:        tokenName,
		Description: tokenDescription,
		ImageURL:    tokenImageURL,
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func tradeArgs(args []string) (actor codec.Address, token market.TokenID, amount, minOut *big.Int, err error) {
	actor, err = currentAccount()
	if err != nil {
		return
	}
	token, err = market.ParseTokenID(args[0])
	if err != nil {
		return
	}
	amount, err = utils.ParseAmount(args[1])
	if err != nil {
		return
	}
	if minAmountOut != "" {
		minOut, err = utils.ParseAmount(minAmountOut)
		if err != nil {
			err = fmt.Errorf("%w: min-out: %w", ErrInvalidArgs, err)
		}
	}
	return
}
