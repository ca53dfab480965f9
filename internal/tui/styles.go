package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Base styles — neutral palette
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0c4d0"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec")).
			Bold(true)

	// Yolk yellow accent
	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f5c542")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e06060"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#4ade80"))

	// Round rendering
	hostStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#60a0e0")).
			Bold(true)

	viewerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c084e0")).
			Bold(true)

	splatStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e06060")).
			Bold(true)

	// Chat feed
	chatNameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9aa3b5"))

	chatTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	chatBadgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f5c542"))

	chatSepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#404858"))

	// Form input
	inputPromptStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#f5c542")).
				Bold(true)

	inputPlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#343c4a"))

	// Help bar
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))
)

// logoText is the header wordmark, letters spaced apart.
const logoText = "VERY EGGS"

// renderLogo renders the wordmark with alternating shell/yolk letters.
func renderLogo() string {
	shell := lipgloss.NewStyle().Foreground(lipgloss.Color("#e4e4ec")).Bold(true)
	yolk := lipgloss.NewStyle().Foreground(lipgloss.Color("#f5c542")).Bold(true)

	var out string
	for i, r := range logoText {
		if r == ' ' {
			out += "  "
			continue
		}
		s := shell
		if i%2 == 1 {
			s = yolk
		}
		out += s.Render(string(r))
		if i < len(logoText)-1 {
			out += " "
		}
	}
	return out
}

// helpEntry renders a single "key label" pair for help bars.
func helpEntry(key, label string) string {
	return helpKeyStyle.Render(key) + " " + helpLabelStyle.Render(label)
}

// renderLives renders a life counter as filled/empty hearts.
func renderLives(lives, max int) string {
	var out string
	for i := 0; i < max; i++ {
		if i < lives {
			out += splatStyle.Render("♥")
		} else {
			out += metaStyle.Render("♡")
		}
		if i < max-1 {
			out += " "
		}
	}
	return out
}

// pollerBadge renders the poller state as a short colored badge.
func pollerBadge(state string) string {
	switch state {
	case "fetching":
		return okStyle.Render("● live")
	case "scheduled":
		return okStyle.Render("● live")
	case "disabled":
		return errorStyle.Render("○ chat disabled")
	case "failed":
		return errorStyle.Render("○ failed")
	}
	return metaStyle.Render("○ idle")
}
