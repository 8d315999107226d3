// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"errors"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/ava-labs/launchpad/utils"
)

var (
	ErrInputEmpty    = errors.New("input is empty")
	ErrInvalidChoice = errors.New("invalid choice")
)

func validateChoice(input string) error {
	if len(input) == 0 {
		return ErrInputEmpty
	}
	lower := strings.ToLower(input)
	if lower == "y" || lower == "n" {
		return nil
	}
	return ErrInvalidChoice
}

// confirm asks the user to approve [label]. It returns true without asking
// when --yes is set.
func confirm(label string) (bool, error) {
	if assumeYes {
		return true, nil
	}
	promptText := promptui.Prompt{
		Label:    label + " (y/n)",
		Validate: validateChoice,
	}
	raw, err := promptText.Run()
	if err != nil {
		return false, err
	}
	if strings.ToLower(raw) == "n" {
		utils.Outf("{{red}}exiting...{{/}}\n")
		return false, nil
	}
	return true, nil
}
