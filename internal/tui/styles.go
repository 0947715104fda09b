package tui

import "github.com/charmbracelet/lipgloss"

// palette is one colour scheme. The dashboard swaps between dark and light with m.
type palette struct {
	accent  lipgloss.Color
	text    lipgloss.Color
	dim     lipgloss.Color
	subtle  lipgloss.Color
	border  lipgloss.Color
	tabBg   lipgloss.Color
	income  lipgloss.Color
	expense lipgloss.Color
}

var (
	darkPalette = palette{
		accent:  lipgloss.Color("99"),
		text:    lipgloss.Color("252"),
		dim:     lipgloss.Color("240"),
		subtle:  lipgloss.Color("241"),
		border:  lipgloss.Color("240"),
		tabBg:   lipgloss.Color("236"),
		income:  lipgloss.Color("82"),
		expense: lipgloss.Color("196"),
	}
	lightPalette = palette{
		accent:  lipgloss.Color("55"),
		text:    lipgloss.Color("235"),
		dim:     lipgloss.Color("245"),
		subtle:  lipgloss.Color("243"),
		border:  lipgloss.Color("250"),
		tabBg:   lipgloss.Color("254"),
		income:  lipgloss.Color("28"),
		expense: lipgloss.Color("160"),
	}
)

var (
	titleStyle       lipgloss.Style
	subtitleStyle    lipgloss.Style
	activeTabStyle   lipgloss.Style
	inactiveTabStyle lipgloss.Style
	errorStyle       lipgloss.Style
	successStyle     lipgloss.Style
	incomeStyle      lipgloss.Style
	expenseStyle     lipgloss.Style
	labelStyle       lipgloss.Style
	selectedStyle    lipgloss.Style
	dimStyle         lipgloss.Style
	headerStyle      lipgloss.Style
	boxStyle         lipgloss.Style
	cardStyle        lipgloss.Style
	barStyle         lipgloss.Style
)

func init() {
	setTheme(true)
}

func setTheme(dark bool) {
	p := lightPalette
	if dark {
		p = darkPalette
	}

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.accent).
		MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
		Foreground(p.subtle)

	activeTabStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.accent).
		Background(p.tabBg).
		Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
		Foreground(p.subtle).
		Padding(0, 2)

	errorStyle = lipgloss.NewStyle().
		Foreground(p.expense)

	successStyle = lipgloss.NewStyle().
		Foreground(p.income)

	incomeStyle = lipgloss.NewStyle().
		Foreground(p.income)

	expenseStyle = lipgloss.NewStyle().
		Foreground(p.expense)

	labelStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.text).
		Width(12)

	selectedStyle = lipgloss.NewStyle().
		Foreground(p.accent).
		Bold(true)

	dimStyle = lipgloss.NewStyle().
		Foreground(p.dim)

	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.text).
		BorderBottom(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(p.border)

	boxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.border).
		Padding(1, 2)

	cardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.accent).
		Padding(0, 2).
		Width(24)

	barStyle = lipgloss.NewStyle().
		Foreground(p.accent)
}
