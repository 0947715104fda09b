package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"github.com/simonvc/trackit/internal/budget"
)

func TestBarLength(t *testing.T) {
	tests := []struct {
		amount, top string
		width, want int
	}{
		{"50", "100", 20, 10},
		{"100", "100", 20, 20},
		{"1", "1000", 20, 1},
		{"0", "100", 20, 0},
		{"10", "0", 20, 0},
		{"10", "10", 0, 0},
	}
	for _, tt := range tests {
		got := barLength(decimal.RequireFromString(tt.amount), decimal.RequireFromString(tt.top), tt.width)
		if got != tt.want {
			t.Errorf("barLength(%s, %s, %d) = %d, want %d", tt.amount, tt.top, tt.width, got, tt.want)
		}
	}
}

func point(date, balance string) budget.Point {
	return budget.Point{Date: date, Balance: decimal.RequireFromString(balance)}
}

func TestSparkline(t *testing.T) {
	got := sparkline([]budget.Point{point("a", "0"), point("b", "50"), point("c", "100")}, 10)
	if got != "▁▅█" {
		t.Errorf("sparkline = %q", got)
	}

	flat := sparkline([]budget.Point{point("a", "7"), point("b", "7")}, 10)
	if flat != "▄▄" {
		t.Errorf("flat sparkline = %q", flat)
	}

	// Only the most recent points fit.
	tail := sparkline([]budget.Point{point("a", "-100"), point("b", "0"), point("c", "10")}, 2)
	if tail != "▁█" {
		t.Errorf("truncated sparkline = %q", tail)
	}

	if sparkline(nil, 10) != "" {
		t.Error("empty series should render nothing")
	}
}

func TestRenderBars(t *testing.T) {
	cats := budget.CategoryTotals([]budget.Transaction{
		{ID: 1, Amount: decimal.NewFromInt(60), Type: budget.TypeExpense, Category: "Food", Date: "2024-01-01"},
		{ID: 2, Amount: decimal.NewFromInt(30), Type: budget.TypeExpense, Category: "Pets", Date: "2024-01-02"},
	})
	out := renderBars(cats, 80, "INR")
	lines := strings.Split(out, "\n")
	if len(lines) != len(budget.Categories)+1 {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(budget.Categories)+1, out)
	}
	if !strings.HasPrefix(lines[0], "Food") || !strings.Contains(lines[0], "₹60.00") {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.HasPrefix(lines[len(lines)-1], "Pets") {
		t.Errorf("extra bucket should come last: %q", lines[len(lines)-1])
	}
	if strings.Count(lines[0], "█") != 2*strings.Count(lines[len(lines)-1], "█") {
		t.Errorf("bars not proportional:\n%s", out)
	}
}

func TestRenderBarsAlignsWideLabels(t *testing.T) {
	cats := []budget.CategoryTotal{
		{Category: "Café au lait", Amount: decimal.NewFromInt(10)},
		{Category: "Food", Amount: decimal.NewFromInt(5)},
	}
	lines := strings.Split(renderBars(cats, 80, "INR"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines", len(lines))
	}
	// Both bars start in the same column.
	col := func(s string) int { return lipgloss.Width(s[:strings.Index(s, "█")]) }
	if col(lines[0]) != col(lines[1]) {
		t.Errorf("bars misaligned:\n%s\n%s", lines[0], lines[1])
	}
}
