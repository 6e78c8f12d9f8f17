package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// parseAmount validates raw user entry before it reaches the ledger; the
// ledger re-checks its own preconditions regardless.
func parseAmount(raw string) (float64, error) {
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", raw)
	}
	return amount, nil
}

var depositCmd = &cobra.Command{
	Use:   "deposit <account> <amount>",
	Short: "Deposit into an account",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := parseAmount(args[1])
		if err != nil {
			return err
		}
		if err := bank.Deposit(cmd.Context(), args[0], amount); err != nil {
			return fmt.Errorf("deposit: %w", err)
		}
		fmt.Printf("Deposited $%.2f into %s\n", amount, args[0])
		return nil
	},
}

var withdrawCmd = &cobra.Command{
	Use:   "withdraw <account> <amount>",
	Short: "Withdraw from an account",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := parseAmount(args[1])
		if err != nil {
			return err
		}
		if err := bank.Withdraw(cmd.Context(), args[0], amount); err != nil {
			return fmt.Errorf("withdraw: %w", err)
		}
		fmt.Printf("Withdrew $%.2f from %s\n", amount, args[0])
		return nil
	},
}

var transferCmd = &cobra.Command{
	Use:   "transfer <from> <to> <amount>",
	Short: "Transfer between two accounts",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := parseAmount(args[2])
		if err != nil {
			return err
		}
		if err := bank.TransferFunds(cmd.Context(), args[0], args[1], amount); err != nil {
			return fmt.Errorf("transfer: %w", err)
		}
		fmt.Printf("Transferred $%.2f from %s to %s\n", amount, args[0], args[1])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(depositCmd)
	rootCmd.AddCommand(withdrawCmd)
	rootCmd.AddCommand(transferCmd)
}
