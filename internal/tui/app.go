package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/simonvc/trackit/internal/client"
	"github.com/simonvc/trackit/internal/session"
	"github.com/simonvc/trackit/internal/tracker"
)

type mode int

const (
	modeAuth mode = iota
	modeDashboard
	modeEntry
)

type App struct {
	store         *tracker.Store
	auth          tracker.Authenticator
	currency      string
	mode          mode
	dark          bool
	width, height int
	err           error
	statusMsg     string

	login authModel
	dash  dashboardModel
	entry entryFormModel
}

func NewApp(st *tracker.Store, auth tracker.Authenticator, currency string) *App {
	return &App{
		store:    st,
		auth:     auth,
		currency: currency,
		mode:     modeAuth,
		dark:     true,
		login:    newAuth(false),
		dash:     newDashboard(currency),
	}
}

// Init shows the login view when there is no token. The dashboard is only
// fetched once a session exists.
func (a *App) Init() tea.Cmd {
	setTheme(a.dark)
	if !a.store.Session().Authorized() {
		a.mode = modeAuth
		return textinput.Blink
	}
	a.mode = modeDashboard
	return a.dash.init(a.store)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.dash.width = msg.Width
		a.dash.height = msg.Height - 6
		a.entry.width = msg.Width
		a.login.width = msg.Width
		return a, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.ForceQuit) {
			return a, tea.Quit
		}
	}

	// Results of remote calls arrive here whatever the active mode is.
	switch typedMsg := msg.(type) {
	case txnsLoadedMsg:
		if a.sessionEnded(typedMsg.err) {
			return a, textinput.Blink
		}
		a.err = typedMsg.err
		var cmd tea.Cmd
		a.dash, cmd = a.dash.update(msg)
		return a, cmd

	case txnAddedMsg:
		if a.sessionEnded(typedMsg.err) {
			return a, textinput.Blink
		}
		var cmd tea.Cmd
		a.entry, cmd = a.entry.update(msg, a.store)
		if a.entry.done {
			// A failed reload keeps the previous rows and shows the load error.
			if a.entry.err == nil {
				a.dash.setTransactions(a.entry.txns)
			}
			a.mode = modeDashboard
			a.err = a.entry.err
			a.statusMsg = a.entry.statusMsg
		}
		return a, cmd

	case authDoneMsg:
		var cmd tea.Cmd
		a.login, cmd = a.login.update(msg, a.auth, a.store.Session())
		if typedMsg.err != nil {
			return a, cmd
		}
		if typedMsg.signup {
			a.login = newAuth(false)
			a.login.inputs[fieldEmail].SetValue(typedMsg.email)
			a.login.move(1)
			a.login.notice = "Account created. Please log in."
			return a, textinput.Blink
		}
		a.mode = modeDashboard
		a.err = nil
		a.statusMsg = "Logged in as " + typedMsg.email
		return a, a.dash.init(a.store)
	}

	// Modal modes: delegate ALL message types (not just keys)
	if a.mode == modeAuth {
		if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, keys.SwitchAuth) {
			notice := a.login.notice
			a.login = newAuth(!a.login.signup)
			if !a.login.signup {
				a.login.notice = notice
			}
			return a, textinput.Blink
		}
		var cmd tea.Cmd
		a.login, cmd = a.login.update(msg, a.auth, a.store.Session())
		return a, cmd
	}

	if a.mode == modeEntry {
		var cmd tea.Cmd
		a.entry, cmd = a.entry.update(msg, a.store)
		if a.entry.cancelled {
			a.mode = modeDashboard
			a.statusMsg = "Transaction cancelled"
		}
		return a, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit

		case key.Matches(msg, keys.NewTxn):
			a.mode = modeEntry
			a.entry = newEntryForm(a.currency)
			a.entry.width = a.width
			a.statusMsg = ""
			return a, textinput.Blink

		case key.Matches(msg, keys.Refresh):
			a.statusMsg = ""
			return a, a.dash.init(a.store)

		case key.Matches(msg, keys.Theme):
			a.dark = !a.dark
			setTheme(a.dark)
			if a.dark {
				a.statusMsg = "Dark mode"
			} else {
				a.statusMsg = "Light mode"
			}
			return a, nil

		case key.Matches(msg, keys.Logout):
			if err := tracker.Logout(a.store.Session()); err != nil {
				a.err = err
				return a, nil
			}
			a.toLogin("Logged out.")
			return a, textinput.Blink
		}
	}

	var cmd tea.Cmd
	a.dash, cmd = a.dash.update(msg)
	return a, cmd
}

// sessionEnded switches to the login view when err means the token is gone.
func (a *App) sessionEnded(err error) bool {
	if !errors.Is(err, session.ErrLoginRequired) {
		return false
	}
	a.toLogin("Your session has ended. Please log in again.")
	return true
}

func (a *App) toLogin(notice string) {
	a.mode = modeAuth
	a.login = newAuth(false)
	a.login.width = a.width
	a.login.notice = notice
	a.dash = newDashboard(a.currency)
	a.dash.width = a.width
	a.dash.height = a.height - 6
	a.err = nil
	a.statusMsg = ""
}

// errText is the message shown to the user for err.
func errText(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	return err.Error()
}

func (a *App) View() string {
	label := "Dashboard"
	switch a.mode {
	case modeAuth:
		label = "Log in"
		if a.login.signup {
			label = "Sign up"
		}
	case modeEntry:
		label = "New Transaction"
	}
	header := activeTabStyle.Render("TrackIt") + " " + inactiveTabStyle.Render(label)

	var content string
	switch a.mode {
	case modeAuth:
		content = a.login.view()
	case modeDashboard:
		content = a.dash.view()
	case modeEntry:
		content = a.entry.view()
	}

	status := ""
	if a.statusMsg != "" {
		status = successStyle.Render(a.statusMsg)
	}
	if a.err != nil {
		if status != "" {
			status += "  "
		}
		status += errorStyle.Render(errText(a.err))
	}

	helpText := ""
	if a.mode == modeDashboard {
		helpText = dimStyle.Render("t:new txn  r:refresh  up/down:scroll  m:dark/light  o:log out  q:quit")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		content,
		"",
		status,
		helpText,
	)
}
