package tui

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/simonvc/trackit/internal/budget"
	"github.com/simonvc/trackit/internal/tracker"
)

type entryStep int

const (
	entryStepAmount entryStep = iota
	entryStepType
	entryStepCategory
	entryStepNote
	entryStepConfirm
)

type txnAddedMsg struct {
	txns []budget.Transaction
	err  error
}

type entryFormModel struct {
	step        entryStep
	amountInput textinput.Model
	amount      decimal.Decimal
	noteInput   textinput.Model
	income      bool
	categoryIdx int
	currency    string

	// now stamps the record at submission; tests pin it.
	now func() time.Time

	submitting bool
	txns       []budget.Transaction
	err        error
	done       bool
	cancelled  bool
	statusMsg  string
	width      int
}

func newEntryForm(currency string) entryFormModel {
	amt := textinput.New()
	amt.Placeholder = "e.g. 250.00"
	amt.CharLimit = 20
	amt.Focus()

	note := textinput.New()
	note.Placeholder = "optional"
	note.CharLimit = 100

	return entryFormModel{
		step:        entryStepAmount,
		amountInput: amt,
		noteInput:   note,
		currency:    currency,
		now:         time.Now,
	}
}

func (m *entryFormModel) txnType() budget.Type {
	if m.income {
		return budget.TypeIncome
	}
	return budget.TypeExpense
}

func (m *entryFormModel) draft() budget.Draft {
	return budget.Draft{
		Amount:   m.amountInput.Value(),
		Type:     m.txnType(),
		Category: budget.Categories[m.categoryIdx],
		Note:     m.noteInput.Value(),
	}
}

func (m entryFormModel) update(msg tea.Msg, st *tracker.Store) (entryFormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case txnAddedMsg:
		m.submitting = false
		m.err = msg.err
		if msg.err != nil && !errors.Is(msg.err, tracker.ErrResyncFailed) {
			return m, nil
		}
		// The record is stored even when the reload failed, so the form is finished.
		m.txns = msg.txns
		m.done = true
		m.statusMsg = fmt.Sprintf("Transaction added: %s %s", m.txnType(), budget.FormatMoney(m.amount, m.currency))
		return m, nil

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		if key.Matches(msg, keys.Escape) {
			m.cancelled = true
			return m, nil
		}

		switch m.step {
		case entryStepAmount:
			return m.updateAmount(msg)
		case entryStepType:
			return m.updateType(msg)
		case entryStepCategory:
			return m.updateCategory(msg)
		case entryStepNote:
			return m.updateNote(msg)
		case entryStepConfirm:
			return m.updateConfirm(msg, st)
		}
	}
	return m, nil
}

func (m entryFormModel) updateAmount(msg tea.KeyMsg) (entryFormModel, tea.Cmd) {
	if key.Matches(msg, keys.Enter) {
		amount, err := budget.ParseAmount(m.amountInput.Value())
		if err != nil {
			m.err = err
			return m, nil
		}
		m.amount = amount
		m.err = nil
		m.amountInput.Blur()
		m.step = entryStepType
		return m, nil
	}
	var cmd tea.Cmd
	m.amountInput, cmd = m.amountInput.Update(msg)
	return m, cmd
}

func (m entryFormModel) updateType(msg tea.KeyMsg) (entryFormModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up), key.Matches(msg, keys.Down):
		m.income = !m.income
	case key.Matches(msg, keys.Enter):
		m.step = entryStepCategory
		if m.income {
			m.categoryIdx = slices.Index(budget.Categories, "Salary")
		}
	}
	return m, nil
}

func (m entryFormModel) updateCategory(msg tea.KeyMsg) (entryFormModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if m.categoryIdx > 0 {
			m.categoryIdx--
		}
	case key.Matches(msg, keys.Down):
		if m.categoryIdx < len(budget.Categories)-1 {
			m.categoryIdx++
		}
	case key.Matches(msg, keys.Enter):
		m.step = entryStepNote
		m.noteInput.Focus()
	}
	return m, nil
}

func (m entryFormModel) updateNote(msg tea.KeyMsg) (entryFormModel, tea.Cmd) {
	if key.Matches(msg, keys.Enter) {
		m.noteInput.Blur()
		m.step = entryStepConfirm
		return m, nil
	}
	var cmd tea.Cmd
	m.noteInput, cmd = m.noteInput.Update(msg)
	return m, cmd
}

func (m entryFormModel) updateConfirm(msg tea.KeyMsg, st *tracker.Store) (entryFormModel, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		txn, err := budget.NewTransaction(m.draft(), m.now())
		if err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		m.submitting = true
		return m, func() tea.Msg {
			txns, err := st.Append(context.Background(), txn)
			return txnAddedMsg{txns: txns, err: err}
		}
	case "n", "N":
		m.cancelled = true
	}
	return m, nil
}

func (m *entryFormModel) view() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("New Transaction"))
	b.WriteString("\n\n")

	switch m.step {
	case entryStepAmount:
		b.WriteString(fmt.Sprintf("  Amount (%s):\n\n", m.currency))
		b.WriteString("  " + m.amountInput.View() + "\n")

	case entryStepType:
		b.WriteString(fmt.Sprintf("  Amount: %s\n", m.amountInput.Value()))
		b.WriteString("  Select type:\n\n")
		options := []string{"Expense", "Income"}
		sel := 0
		if m.income {
			sel = 1
		}
		for i, opt := range options {
			if i == sel {
				b.WriteString(selectedStyle.Render("  > "+opt) + "\n")
			} else {
				b.WriteString("    " + opt + "\n")
			}
		}

	case entryStepCategory:
		b.WriteString(fmt.Sprintf("  Amount: %s | Type: %s\n", m.amountInput.Value(), m.txnType()))
		b.WriteString("  Select category:\n\n")
		for i, c := range budget.Categories {
			if i == m.categoryIdx {
				b.WriteString(selectedStyle.Render("  > "+c) + "\n")
			} else {
				b.WriteString("    " + c + "\n")
			}
		}

	case entryStepNote:
		b.WriteString(fmt.Sprintf("  Amount: %s | Type: %s | Category: %s\n",
			m.amountInput.Value(), m.txnType(), budget.Categories[m.categoryIdx]))
		b.WriteString("  Note:\n\n")
		b.WriteString("  " + m.noteInput.View() + "\n")

	case entryStepConfirm:
		b.WriteString("  Review transaction:\n\n")
		d := m.draft()
		var summary strings.Builder
		summary.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("Amount:"), d.Amount))
		summary.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("Type:"), d.Type))
		summary.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("Category:"), d.Category))
		if strings.TrimSpace(d.Note) != "" {
			summary.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("Note:"), d.Note))
		}
		b.WriteString(boxStyle.Render(strings.TrimRight(summary.String(), "\n")))
		b.WriteString("\n\n")
		if m.submitting {
			b.WriteString("  Saving...\n")
		} else {
			b.WriteString("  Add this transaction? (y/n)\n")
		}
	}

	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render("  Error: "+errText(m.err)) + "\n")
	}

	b.WriteString("\n" + dimStyle.Render("  ESC to cancel"))
	return b.String()
}

