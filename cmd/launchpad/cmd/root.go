// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/ava-labs/launchpad/api/jsonrpc"
)

const (
	defaultEndpoint    = "http://127.0.0.1:9650/ext"
	defaultAccountFile = ".launchpad-account"
	requestTimeout     = 30 * time.Second
)

var (
	endpoint    string
	accountFile string
	accountFlag string
	assumeYes   bool

	rootCmd = &cobra.Command{
		Use:        "launchpad",
		Short:      "Bonding-curve token launchpad",
		SuggestFor: []string{"launchpad", "launch-pad"},
	}
)

func init() {
	cobra.EnablePrefixMatching = true
	rootCmd.AddCommand(
		nodeCmd,
		accountCmd,
		launchCmd,
		buyCmd,
		sellCmd,
		transferCmd,
		depositCmd,
		quoteCmd,
		marketCmd,
		marketsCmd,
		balanceCmd,
		pingCmd,
		watchCmd,
		versionCmd,
	)
	rootCmd.PersistentFlags().StringVar(
		&endpoint,
		"endpoint",
		defaultEndpoint,
		"API endpoint of the node",
	)
	rootCmd.PersistentFlags().StringVar(
		&accountFile,
		"account-file",
		defaultAccountFile,
		"file holding the default account",
	)
	rootCmd.PersistentFlags().StringVar(
		&accountFlag,
		"account",
		"",
		"account to act as (overrides the account file)",
	)
	rootCmd.PersistentFlags().BoolVar(
		&assumeYes,
		"yes",
		false,
		"skip confirmation prompts",
	)
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	initNodeFlags()
	initTradeFlags()
	initMarketFlags()
}

func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func client() *jsonrpc.JSONRPCClient {
	return jsonrpc.NewJSONRPCClient(endpoint)
}

func requestContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), requestTimeout)
}
