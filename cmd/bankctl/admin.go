package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var wipeConfirmed bool

var applyInterestCmd = &cobra.Command{
	Use:   "apply-interest",
	Short: "Accrue interest on every savings account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bank.ApplyAllInterest(cmd.Context()); err != nil {
			return fmt.Errorf("apply interest: %w", err)
		}
		fmt.Println("Interest applied to all savings accounts")
		return nil
	},
}

var wipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Delete all customers, accounts, and the on-disk record",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !wipeConfirmed {
			return fmt.Errorf("refusing to wipe without --yes")
		}
		if err := bank.ClearAllData(cmd.Context()); err != nil {
			return fmt.Errorf("wipe: %w", err)
		}
		fmt.Println("All data cleared")
		return nil
	},
}

func init() {
	wipeCmd.Flags().BoolVar(&wipeConfirmed, "yes", false, "confirm deletion of all data")

	rootCmd.AddCommand(applyInterestCmd)
	rootCmd.AddCommand(wipeCmd)
}
