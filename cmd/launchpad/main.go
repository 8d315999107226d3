// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// "launchpad" runs a launchpad node and trades against one.
package main

import (
	"os"

	"github.com/ava-labs/launchpad/cmd/launchpad/cmd"
	"github.com/ava-labs/launchpad/utils"
)

func main() {
	if err := cmd.Execute(); err != nil {
		utils.Outf("{{red}}launchpad exited with error:{{/}} %+v\n", err)
		os.Exit(1)
	}
	os.Exit(0)
}
