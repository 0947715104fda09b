package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/simonvc/trackit/internal/budget"
	"github.com/simonvc/trackit/internal/session"
)

func TestPrintSummary(t *testing.T) {
	sum := budget.Summarize([]budget.Transaction{
		{ID: 1, Amount: decimal.NewFromInt(1000), Type: budget.TypeIncome, Category: "Salary", Date: "2024-01-01"},
		{ID: 2, Amount: decimal.NewFromInt(250), Type: budget.TypeExpense, Category: "Food", Date: "2024-01-02"},
	})

	var buf bytes.Buffer
	printSummary(&buf, sum, "INR")
	out := buf.String()

	for _, want := range []string{"BUDGET SUMMARY", "₹1,000.00", "₹250.00", "₹750.00", "Shopping", "2024-01-02"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintSummaryEmpty(t *testing.T) {
	var buf bytes.Buffer
	printSummary(&buf, budget.Summarize(nil), "INR")
	if !strings.Contains(buf.String(), "No transactions yet.") {
		t.Errorf("output:\n%s", buf.String())
	}
}

func TestBar(t *testing.T) {
	if got := bar(decimal.NewFromInt(50), decimal.NewFromInt(100), 20); got != strings.Repeat("#", 10) {
		t.Errorf("bar = %q", got)
	}
	if got := bar(decimal.Zero, decimal.NewFromInt(100), 20); got != "" {
		t.Errorf("zero bar = %q", got)
	}
	if got := bar(decimal.NewFromInt(1), decimal.NewFromInt(1000), 20); got != "#" {
		t.Errorf("tiny bar = %q", got)
	}
}

func TestLoginHint(t *testing.T) {
	err := loginHint(fmt.Errorf("fetch: %w", session.ErrLoginRequired))
	if !strings.Contains(err.Error(), "trackit login") {
		t.Errorf("hint = %v", err)
	}
	other := errors.New("boom")
	if loginHint(other) != other {
		t.Error("other errors pass through")
	}
}
