package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/simonvc/trackit/internal/budget"
	"github.com/spf13/cobra"
)

var summaryJSON bool

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show totals, spending by category and the running balance",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := newTracker(newClient())
		if err != nil {
			return err
		}
		if _, err := st.FetchAll(cmd.Context()); err != nil {
			return loginHint(err)
		}

		sum := st.Summary()
		if summaryJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(sum)
		}
		printSummary(os.Stdout, sum, cfg.Currency)
		return nil
	},
}

func printSummary(out io.Writer, sum budget.Summary, currency string) {
	w := 60
	fmt.Fprintln(out)
	fmt.Fprintln(out, center("BUDGET SUMMARY", w))
	fmt.Fprintln(out, center(strings.Repeat("=", 20), w))
	fmt.Fprintln(out)

	t := sum.Totals
	fmt.Fprintf(out, "  %-*s%15s\n", w-19, "Income", budget.FormatMoney(t.Income, currency))
	fmt.Fprintf(out, "  %-*s%15s\n", w-19, "Expense", budget.FormatMoney(t.Expense, currency))
	fmt.Fprintf(out, "  %*s%s\n", w-19, "", "─────────────")
	fmt.Fprintf(out, "  %-*s%15s\n", w-19, "Balance", budget.FormatMoney(t.Balance, currency))
	fmt.Fprintln(out)

	fmt.Fprintf(out, "  %s\n", "SPENDING BY CATEGORY")
	fmt.Fprintf(out, "  %s\n", strings.Repeat("─", w-4))
	for _, c := range sum.Categories {
		fmt.Fprintf(out, "  %-10s %-*s%15s\n", c.Category, w-30, bar(c.Amount, t.Expense, w-32), budget.FormatMoney(c.Amount, currency))
	}
	fmt.Fprintln(out)

	fmt.Fprintf(out, "  %s\n", "RUNNING BALANCE")
	fmt.Fprintf(out, "  %s\n", strings.Repeat("─", w-4))
	if len(sum.Series) == 0 {
		fmt.Fprintln(out, "  No transactions yet.")
		return
	}
	for _, p := range sum.Series {
		fmt.Fprintf(out, "  %-*s%15s\n", w-19, p.Date, budget.FormatMoney(p.Balance, currency))
	}
}

// bar is a share of total drawn in at most width cells.
func bar(amount, total decimal.Decimal, width int) string {
	if !total.IsPositive() || !amount.IsPositive() {
		return ""
	}
	n := int(amount.Mul(decimal.NewFromInt(int64(width))).Div(total).Round(0).IntPart())
	return strings.Repeat("#", max(n, 1))
}

func center(s string, w int) string {
	if len(s) >= w {
		return s
	}
	pad := (w - len(s)) / 2
	return strings.Repeat(" ", pad) + s
}

func init() {
	summaryCmd.Flags().BoolVar(&summaryJSON, "json", false, "Print the aggregates as JSON")
	rootCmd.AddCommand(summaryCmd)
}
