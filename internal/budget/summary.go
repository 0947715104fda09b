package budget

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

type Totals struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

type CategoryTotal struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// Point is one step of the running balance series.
type Point struct {
	Date    string          `json:"date"`
	Balance decimal.Decimal `json:"balance"`
}

// Summary holds every aggregate the dashboard draws.
type Summary struct {
	Totals     Totals          `json:"totals"`
	Categories []CategoryTotal `json:"categories"`
	Series     []Point         `json:"series"`
}

func Summarize(txns []Transaction) Summary {
	return Summary{
		Totals:     ComputeTotals(txns),
		Categories: CategoryTotals(txns),
		Series:     RunningBalance(txns),
	}
}

// ComputeTotals sums income and expense amounts. Balance is income minus expense.
func ComputeTotals(txns []Transaction) Totals {
	income, expense := decimal.Zero, decimal.Zero
	for _, t := range txns {
		switch t.Type {
		case TypeIncome:
			income = income.Add(t.Amount)
		case TypeExpense:
			expense = expense.Add(t.Amount)
		}
	}
	return Totals{Income: income, Expense: expense, Balance: income.Sub(expense)}
}

// CategoryTotals sums expense amounts per category. Every fixed category is present,
// in enumeration order, even at zero. Categories outside the enumeration follow in
// order of first appearance.
func CategoryTotals(txns []Transaction) []CategoryTotal {
	out := make([]CategoryTotal, len(Categories), len(Categories)+1)
	index := make(map[string]int, len(Categories))
	for i, c := range Categories {
		out[i] = CategoryTotal{Category: c, Amount: decimal.Zero}
		index[c] = i
	}
	for _, t := range txns {
		if t.Type != TypeExpense {
			continue
		}
		i, ok := index[t.Category]
		if !ok {
			i = len(out)
			index[t.Category] = i
			out = append(out, CategoryTotal{Category: t.Category, Amount: decimal.Zero})
		}
		out[i].Amount = out[i].Amount.Add(t.Amount)
	}
	return out
}

// CategoryTotalsMap is CategoryTotals keyed by category.
func CategoryTotalsMap(txns []Transaction) map[string]decimal.Decimal {
	totals := CategoryTotals(txns)
	m := make(map[string]decimal.Decimal, len(totals))
	for _, ct := range totals {
		m[ct.Category] = ct.Amount
	}
	return m
}

// RunningBalance orders a copy of txns by date string and accumulates signed amounts,
// one point per transaction. Same-date entries keep their fetch order.
func RunningBalance(txns []Transaction) []Point {
	sorted := slices.Clone(txns)
	slices.SortStableFunc(sorted, func(a, b Transaction) int {
		return strings.Compare(a.Date, b.Date)
	})

	points := make([]Point, 0, len(sorted))
	running := decimal.Zero
	for _, t := range sorted {
		running = running.Add(t.Signed())
		points = append(points, Point{Date: t.Date, Balance: running})
	}
	return points
}

// Recent returns the collection in reverse fetch order.
func Recent(txns []Transaction) []Transaction {
	out := slices.Clone(txns)
	slices.Reverse(out)
	return out
}
