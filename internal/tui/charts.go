package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"github.com/simonvc/trackit/internal/budget"
)

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// barLength scales amount against the largest bar into at most width cells. Any non-zero
// amount gets at least one cell.
func barLength(amount, top decimal.Decimal, width int) int {
	if width <= 0 || !top.IsPositive() || !amount.IsPositive() {
		return 0
	}
	n := int(amount.Mul(decimal.NewFromInt(int64(width))).Div(top).Round(0).IntPart())
	if n < 1 {
		n = 1
	}
	if n > width {
		n = width
	}
	return n
}

// renderBars draws the expense breakdown as one horizontal bar per category.
func renderBars(cats []budget.CategoryTotal, width int, currency string) string {
	if len(cats) == 0 {
		return dimStyle.Render("No categories.")
	}

	labelW := 8
	top := decimal.Zero
	for _, c := range cats {
		if w := lipgloss.Width(c.Category); w > labelW {
			labelW = w
		}
		if c.Amount.GreaterThan(top) {
			top = c.Amount
		}
	}
	barW := width - labelW - 18
	if barW < 10 {
		barW = 20
	}

	var b strings.Builder
	for i, c := range cats {
		n := barLength(c.Amount, top, barW)
		bar := barStyle.Render(strings.Repeat("█", n)) + strings.Repeat(" ", barW-n)
		label := c.Category + strings.Repeat(" ", labelW-lipgloss.Width(c.Category))
		fmt.Fprintf(&b, "%s %s %s", label, bar, budget.FormatMoney(c.Amount, currency))
		if i < len(cats)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// sparkline renders the last width points of the running balance, scaled between
// the lowest and highest balance shown. A flat series sits at mid height.
func sparkline(points []budget.Point, width int) string {
	if len(points) == 0 || width <= 0 {
		return ""
	}
	if len(points) > width {
		points = points[len(points)-width:]
	}

	lo, hi := points[0].Balance, points[0].Balance
	for _, p := range points[1:] {
		if p.Balance.LessThan(lo) {
			lo = p.Balance
		}
		if p.Balance.GreaterThan(hi) {
			hi = p.Balance
		}
	}
	span := hi.Sub(lo)
	steps := decimal.NewFromInt(int64(len(sparkRunes) - 1))

	var b strings.Builder
	for _, p := range points {
		idx := len(sparkRunes)/2 - 1
		if !span.IsZero() {
			idx = int(p.Balance.Sub(lo).Mul(steps).Div(span).Round(0).IntPart())
		}
		b.WriteRune(sparkRunes[idx])
	}
	return b.String()
}
