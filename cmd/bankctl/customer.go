package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var customerCmd = &cobra.Command{
	Use:   "customer",
	Short: "Manage customers",
}

var customerAddCmd = &cobra.Command{
	Use:   "add <id> <name> <address>",
	Short: "Add a new customer",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bank.AddCustomer(cmd.Context(), args[0], args[1], args[2]); err != nil {
			return fmt.Errorf("add customer: %w", err)
		}
		fmt.Printf("Customer %s added\n", args[0])
		return nil
	},
}

var customerRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a customer with no open accounts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bank.RemoveCustomer(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("remove customer: %w", err)
		}
		fmt.Printf("Customer %s removed\n", args[0])
		return nil
	},
}

var customerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all customers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tADDRESS\tACCOUNTS")
		for _, c := range bank.Customers(cmd.Context()) {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", c.ID, c.Name, c.Address, len(c.AccountNumbers))
		}
		return w.Flush()
	},
}

func init() {
	customerCmd.AddCommand(customerAddCmd)
	customerCmd.AddCommand(customerRemoveCmd)
	customerCmd.AddCommand(customerListCmd)
	rootCmd.AddCommand(customerCmd)
}
