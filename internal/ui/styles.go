package ui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	ribbonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("240")).
			Padding(0, 1)

	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
	labelStyle   = lipgloss.NewStyle().Bold(true)
	focusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
)

// icons maps ribbon icon names to terminal glyphs.
var icons = map[string]string{
	"calendar-plus": "[+]",
	"settings":      "[*]",
}

func iconGlyph(name string) string {
	if glyph, ok := icons[name]; ok {
		return glyph
	}
	return "[?]"
}

func messageLine(status, errLine string) string {
	if errLine != "" {
		return errorStyle.Render("! " + errLine)
	}
	if status != "" {
		return statusStyle.Render(status)
	}
	return ""
}
