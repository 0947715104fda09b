package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/simonvc/trackit/internal/budget"
	"github.com/simonvc/trackit/internal/tracker"
)

type txnsLoadedMsg struct {
	txns []budget.Transaction
	err  error
}

type dashboardModel struct {
	currency string
	txns     []budget.Transaction // newest first
	summary  budget.Summary
	loaded   bool
	loading  bool
	cursor   int
	width    int
	height   int
}

func newDashboard(currency string) dashboardModel {
	return dashboardModel{
		currency: currency,
		summary:  budget.Summarize(nil),
	}
}

func (m *dashboardModel) init(st *tracker.Store) tea.Cmd {
	m.loading = true
	return func() tea.Msg {
		txns, err := st.FetchAll(context.Background())
		return txnsLoadedMsg{txns: txns, err: err}
	}
}

// setTransactions redraws from a fresh server read in fetch order.
func (m *dashboardModel) setTransactions(txns []budget.Transaction) {
	m.txns = budget.Recent(txns)
	m.summary = budget.Summarize(txns)
	m.loaded = true
	if m.cursor >= len(m.txns) {
		m.cursor = max(len(m.txns)-1, 0)
	}
}

func (m dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case txnsLoadedMsg:
		m.loading = false
		// A failed read keeps the last good data on screen.
		if msg.err == nil {
			m.setTransactions(msg.txns)
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.txns)-1 {
				m.cursor++
			}
		}
	}
	return m, nil
}

func (m *dashboardModel) view() string {
	if m.loading && !m.loaded {
		return "Loading transactions..."
	}

	var b strings.Builder
	b.WriteString(m.cardsView())
	b.WriteString("\n\n")
	b.WriteString(m.chartsView())
	b.WriteString("\n\n")
	b.WriteString(m.tableView())
	return b.String()
}

func (m *dashboardModel) cardsView() string {
	t := m.summary.Totals
	card := func(label string, v string, style lipgloss.Style) string {
		return cardStyle.Render(subtitleStyle.Render(label) + "\n" + style.Bold(true).Render(v))
	}
	balanceStyle := incomeStyle
	if t.Balance.IsNegative() {
		balanceStyle = expenseStyle
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		card("Income", budget.FormatMoney(t.Income, m.currency), incomeStyle),
		" ",
		card("Expense", budget.FormatMoney(t.Expense, m.currency), expenseStyle),
		" ",
		card("Balance", budget.FormatMoney(t.Balance, m.currency), balanceStyle),
	)
}

func (m *dashboardModel) chartsView() string {
	half := m.width/2 - 4
	if half < 30 {
		half = 40
	}

	cats := titleStyle.Render("Spending by category") + "\n" +
		renderBars(m.summary.Categories, half, m.currency)

	trend := titleStyle.Render("Balance over time") + "\n"
	series := m.summary.Series
	if len(series) == 0 {
		trend += dimStyle.Render("No transactions yet.")
	} else {
		first, last := series[0], series[len(series)-1]
		trend += barStyle.Render(sparkline(series, half)) + "\n" +
			dimStyle.Render(fmt.Sprintf("%s  %s  ->  %s  %s",
				first.Date, budget.FormatMoney(first.Balance, m.currency),
				last.Date, budget.FormatMoney(last.Balance, m.currency)))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		boxStyle.Render(cats),
		" ",
		boxStyle.Render(trend),
	)
}

func (m *dashboardModel) tableView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Recent transactions"))
	b.WriteString("\n")

	if len(m.txns) == 0 {
		b.WriteString(dimStyle.Render("No transactions yet. Press t to add one."))
		return b.String()
	}

	header := fmt.Sprintf("  %-10s %-8s %-10s %14s  %s", "DATE", "TYPE", "CATEGORY", "AMOUNT", "NOTE")
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	maxRows := m.height - 24
	if maxRows < 5 {
		maxRows = 10
	}
	start := 0
	if m.cursor >= maxRows {
		start = m.cursor - maxRows + 1
	}

	for i := start; i < len(m.txns) && i < start+maxRows; i++ {
		t := m.txns[i]
		note := ansi.Truncate(t.Note, 30, "..")
		amount := fmt.Sprintf("%14s", budget.FormatSigned(t, m.currency))
		if t.Type == budget.TypeIncome {
			amount = incomeStyle.Render(amount)
		} else {
			amount = expenseStyle.Render(amount)
		}
		line := fmt.Sprintf("  %-10s %-8s %-10s ", t.Date, t.Type, t.Category)
		if i == m.cursor {
			line = selectedStyle.Render("> " + line[2:])
		}
		b.WriteString(line + amount + "  " + note)
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("\n  %d transactions", len(m.txns)))
	return b.String()
}
