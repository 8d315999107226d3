// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/spf13/cobra"

	"github.com/ava-labs/launchpad/codec"
	"github.com/ava-labs/launchpad/consts"
	"github.com/ava-labs/launchpad/utils"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage the default account",
	RunE: func(*cobra.Command, []string) error {
		return ErrMissingSubcommand
	},
}

var newAccountCmd = &cobra.Command{
	Use:   "new",
	Short: "Create an account and make it the default",
	RunE: func(*cobra.Command, []string) error {
		if _, err := os.Stat(accountFile); err == nil {
			ok, err := confirm("replace the account in " + accountFile + "?")
			if err != nil || !ok {
				return err
			}
		}
		var id ids.ID
		if _, err := rand.Read(id[:]); err != nil {
			return err
		}
		account := codec.CreateAddress(consts.AccountID, id)
		if err := utils.SaveBytes(accountFile, account[:]); err != nil {
			return err
		}
		return printAccount("created account", account)
	},
}

var showAccountCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the default account",
	RunE: func(*cobra.Command, []string) error {
		account, err := currentAccount()
		if err != nil {
			return err
		}
		return printAccount("account", account)
	},
}

func init() {
	accountCmd.AddCommand(newAccountCmd, showAccountCmd)
}

func printAccount(label string, account codec.Address) error {
	formatted, err := codec.FormatAddress(consts.HRP, account)
	if err != nil {
		return err
	}
	utils.Outf("{{green}}%s:{{/}} %s {{light-gray}}(%s){{/}}\n", label, formatted, account)
	return nil
}

// currentAccount returns the account passed with --account or, failing
// that, the one saved in the account file.
func currentAccount() (codec.Address, error) {
	if accountFlag != "" {
		return parseAccount(accountFlag)
	}
	b, err := utils.LoadBytes(accountFile, codec.AddressLen)
	if errors.Is(err, fs.ErrNotExist) {
		return codec.EmptyAddress, fmt.Errorf("%w: run \"launchpad account new\" or pass --account", ErrNoAccount)
	}
	if err != nil {
		return codec.EmptyAddress, err
	}
	return codec.ToAddress(b)
}

func parseAccount(s string) (codec.Address, error) {
	account, err := codec.ParseAnyAddress(consts.HRP, s)
	if err != nil {
		return codec.EmptyAddress, fmt.Errorf("%w: %w", ErrInvalidArgs, err)
	}
	return account, nil
}
