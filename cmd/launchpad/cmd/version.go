// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ava-labs/launchpad/consts"
	"github.com/ava-labs/launchpad/utils"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	RunE: func(*cobra.Command, []string) error {
		utils.Outf("{{yellow}}%s{{/}} %s\n", consts.Name, consts.Version)
		return nil
	},
}
