package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"bankledger/internal/domain"
	"bankledger/internal/ledger"
)

var (
	accountKind     string
	initialBalance  float64
	interestRate    float64
	overdraftLimit  float64
	listCustomerID  string
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage accounts",
}

var accountCreateCmd = &cobra.Command{
	Use:   "create <customer-id>",
	Short: "Open a savings or checking account for a customer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := domain.Kind(accountKind)
		var params any
		switch kind {
		case domain.KindSavings:
			params = domain.SavingsParams{InterestRate: interestRate}
		case domain.KindChecking:
			params = domain.CheckingParams{OverdraftLimit: overdraftLimit}
		default:
			return fmt.Errorf("unknown account kind %q (want savings or checking)", accountKind)
		}

		info, err := bank.CreateAccount(cmd.Context(), args[0], kind, initialBalance, params)
		if err != nil {
			return fmt.Errorf("create account: %w", err)
		}
		fmt.Printf("Account created: %s\n%s\n", info.Number, info.Details)
		return nil
	},
}

var accountListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts, optionally for one customer",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var accounts []ledger.AccountInfo
		if listCustomerID != "" {
			accounts = bank.CustomerAccounts(cmd.Context(), listCustomerID)
		} else {
			accounts = bank.Accounts(cmd.Context())
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NUMBER\tHOLDER\tBALANCE\tTYPE\tDETAILS")
		for _, a := range accounts {
			detail := fmt.Sprintf("Interest: %.2f%%", a.InterestRate*100)
			if a.Kind == domain.KindChecking {
				detail = fmt.Sprintf("Overdraft: $%.2f", a.OverdraftLimit)
			}
			fmt.Fprintf(w, "%s\t%s\t$%.2f\t%s\t%s\n", a.Number, a.HolderID, a.Balance, a.Kind, detail)
		}
		return w.Flush()
	},
}

func init() {
	accountCreateCmd.Flags().StringVar(&accountKind, "kind", string(domain.KindSavings), "account kind: savings or checking")
	accountCreateCmd.Flags().Float64Var(&initialBalance, "balance", 0.0, "initial balance")
	accountCreateCmd.Flags().Float64Var(&interestRate, "interest-rate", domain.DefaultInterestRate, "interest rate (savings)")
	accountCreateCmd.Flags().Float64Var(&overdraftLimit, "overdraft-limit", domain.DefaultOverdraftLimit, "overdraft limit (checking)")
	accountListCmd.Flags().StringVar(&listCustomerID, "customer", "", "only list this customer's accounts")

	accountCmd.AddCommand(accountCreateCmd)
	accountCmd.AddCommand(accountListCmd)
	rootCmd.AddCommand(accountCmd)
}
