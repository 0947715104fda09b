package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/simonvc/trackit/internal/budget"
	"github.com/simonvc/trackit/internal/tracker"
	"github.com/spf13/cobra"
)

var transactionCmd = &cobra.Command{
	Use:     "transaction",
	Aliases: []string{"txn"},
	Short:   "Record and list transactions",
}

// transaction add
var (
	txnAmount   string
	txnType     string
	txnCategory string
	txnNote     string
)

var transactionAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record an income or expense",
	Long:  "Record a transaction dated today (UTC). Expenses must use one of: Food, Shopping, Bills, Travel, Salary, Other.",
	RunE: func(cmd *cobra.Command, args []string) error {
		txn, err := budget.NewTransaction(budget.Draft{
			Amount:   txnAmount,
			Type:     budget.Type(txnType),
			Category: txnCategory,
			Note:     txnNote,
		}, time.Now())
		if err != nil {
			return err
		}

		st, err := newTracker(newClient())
		if err != nil {
			return err
		}
		txns, err := st.Append(cmd.Context(), txn)
		if err != nil && !errors.Is(err, tracker.ErrResyncFailed) {
			return loginHint(err)
		}

		fmt.Printf("Transaction added: %s %s (%s)\n", txn.Type, budget.FormatMoney(txn.Amount, cfg.Currency), txn.Category)
		if err != nil {
			// The record is stored; only the reload failed.
			fmt.Fprintf(os.Stderr, "warning: %v\n", loginHint(err))
			return nil
		}
		fmt.Printf("Balance: %s\n", budget.FormatMoney(budget.ComputeTotals(txns).Balance, cfg.Currency))
		return nil
	},
}

// transaction list
var txnListJSON bool

var transactionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List transactions, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := newTracker(newClient())
		if err != nil {
			return err
		}
		txns, err := st.FetchAll(cmd.Context())
		if err != nil {
			return loginHint(err)
		}

		if txnListJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(txns)
		}

		if len(txns) == 0 {
			fmt.Println("No transactions found.")
			return nil
		}

		fmt.Printf("%-10s %-8s %-10s %14s  %s\n", "DATE", "TYPE", "CATEGORY", "AMOUNT", "NOTE")
		fmt.Printf("%-10s %-8s %-10s %14s  %s\n", "----", "----", "--------", "------", "----")
		for _, t := range budget.Recent(txns) {
			fmt.Printf("%-10s %-8s %-10s %14s  %s\n", t.Date, t.Type, t.Category, budget.FormatSigned(t, cfg.Currency), t.Note)
		}
		fmt.Printf("\n%d transactions\n", len(txns))
		return nil
	},
}

func init() {
	transactionAddCmd.Flags().StringVar(&txnAmount, "amount", "", "Amount, e.g. 250.00")
	transactionAddCmd.Flags().StringVar(&txnType, "type", string(budget.TypeExpense), "income or expense")
	transactionAddCmd.Flags().StringVar(&txnCategory, "category", "Other", "Category")
	transactionAddCmd.Flags().StringVar(&txnNote, "note", "", "Optional note")
	transactionAddCmd.MarkFlagRequired("amount")

	transactionListCmd.Flags().BoolVar(&txnListJSON, "json", false, "Print the records as JSON in fetch order")

	transactionCmd.AddCommand(transactionAddCmd)
	transactionCmd.AddCommand(transactionListCmd)

	rootCmd.AddCommand(transactionCmd)
}
