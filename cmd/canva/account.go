package main

import (
	"github.com/spf13/cobra"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Show account information",
	Args:  cobra.ExactArgs(0),
	RunE:  runAccount,
}

func init() {
	rootCmd.AddCommand(accountCmd)
}

func runAccount(cmd *cobra.Command, _ []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	fetcher, err := s.fetcher()
	if err != nil {
		return err
	}

	account, err := fetcher.Account(cmd.Context())
	if err != nil {
		return err
	}
	s.printer.PrintAccount(account)
	return nil
}
