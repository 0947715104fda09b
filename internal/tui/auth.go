package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/simonvc/trackit/internal/session"
	"github.com/simonvc/trackit/internal/tracker"
)

const (
	fieldName = iota
	fieldEmail
	fieldPassword
)

type authDoneMsg struct {
	signup bool
	email  string
	err    error
}

// authModel is the login view, or the signup view when signup is set.
type authModel struct {
	signup bool
	inputs []textinput.Model
	focus  int
	busy   bool
	notice string
	err    error
	width  int
}

func newAuth(signup bool) authModel {
	name := textinput.New()
	name.Placeholder = "Your name"
	name.CharLimit = 60

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 100

	pw := textinput.New()
	pw.Placeholder = "Password"
	pw.CharLimit = 100
	pw.EchoMode = textinput.EchoPassword
	pw.EchoCharacter = '•'

	m := authModel{
		signup: signup,
		inputs: []textinput.Model{name, email, pw},
		focus:  fieldEmail,
	}
	if signup {
		m.focus = fieldName
	}
	m.inputs[m.focus].Focus()
	return m
}

// fields lists the inputs shown in this view, in tab order.
func (m *authModel) fields() []int {
	if m.signup {
		return []int{fieldName, fieldEmail, fieldPassword}
	}
	return []int{fieldEmail, fieldPassword}
}

func (m *authModel) move(delta int) {
	fields := m.fields()
	pos := 0
	for i, f := range fields {
		if f == m.focus {
			pos = i
		}
	}
	pos = (pos + delta + len(fields)) % len(fields)
	m.inputs[m.focus].Blur()
	m.focus = fields[pos]
	m.inputs[m.focus].Focus()
}

func (m *authModel) value(field int) string {
	return m.inputs[field].Value()
}

func (m authModel) update(msg tea.Msg, auth tracker.Authenticator, sess *session.Session) (authModel, tea.Cmd) {
	switch msg := msg.(type) {
	case authDoneMsg:
		m.busy = false
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch {
		// j and k are text here, so only the arrow keys move focus.
		case key.Matches(msg, keys.Tab), msg.Type == tea.KeyDown:
			m.move(1)
			return m, nil
		case key.Matches(msg, keys.ShiftTab), msg.Type == tea.KeyUp:
			m.move(-1)
			return m, nil
		case key.Matches(msg, keys.Enter):
			fields := m.fields()
			if m.focus != fields[len(fields)-1] {
				m.move(1)
				return m, nil
			}
			return m.submit(auth, sess)
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m authModel) submit(auth tracker.Authenticator, sess *session.Session) (authModel, tea.Cmd) {
	m.busy = true
	m.err = nil
	m.notice = ""
	name, email, pw := m.value(fieldName), strings.TrimSpace(m.value(fieldEmail)), m.value(fieldPassword)
	if m.signup {
		return m, func() tea.Msg {
			err := tracker.Signup(context.Background(), auth, name, email, pw)
			return authDoneMsg{signup: true, email: email, err: err}
		}
	}
	return m, func() tea.Msg {
		err := tracker.Login(context.Background(), auth, sess, email, pw)
		return authDoneMsg{email: email, err: err}
	}
}

func (m *authModel) view() string {
	var b strings.Builder

	title := "Log in"
	if m.signup {
		title = "Sign up"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	labels := map[int]string{fieldName: "Name", fieldEmail: "Email", fieldPassword: "Password"}
	var form strings.Builder
	for i, f := range m.fields() {
		label := labelStyle.Render(labels[f] + ":")
		if f == m.focus {
			label = selectedStyle.Width(12).Render(labels[f] + ":")
		}
		form.WriteString(label + " " + m.inputs[f].View())
		if i < len(m.fields())-1 {
			form.WriteString("\n\n")
		}
	}
	b.WriteString(boxStyle.Render(form.String()))
	b.WriteString("\n")

	if m.busy {
		b.WriteString("\n  Please wait...\n")
	}
	if m.notice != "" {
		b.WriteString("\n" + successStyle.Render("  "+m.notice) + "\n")
	}
	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render("  "+errText(m.err)) + "\n")
	}

	other := "ctrl+s: create an account"
	if m.signup {
		other = "ctrl+s: back to log in"
	}
	b.WriteString("\n" + dimStyle.Render("  tab:next field  enter:submit  "+other+"  ctrl+c:quit"))
	return b.String()
}
