package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/projectpulse/pulse/internal/derive"
	"github.com/projectpulse/pulse/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// RAGColor returns the style for a health classification.
func RAGColor(rag derive.RAG) lipgloss.Style {
	switch rag {
	case derive.RAGRed:
		return StyleRed
	case derive.RAGYellow:
		return StyleYellow
	case derive.RAGGreen:
		return StyleGreen
	default:
		return StyleDim
	}
}

// RAGIndicator returns a colored health marker such as "● RED".
func RAGIndicator(rag derive.RAG) string {
	return RAGColor(rag).Render("● " + strings.ToUpper(string(rag)))
}

// StatusPill renders a project status in its signal color.
func StatusPill(status domain.ProjectStatus) string {
	switch {
	case status == domain.ProjectCompleted:
		return StyleGreen.Render(string(status))
	case status.IsCompleted():
		return StyleYellow.Render(string(status))
	case status == domain.ProjectNotStarted:
		return StyleDim.Render(string(status))
	default:
		return StyleBlue.Render(string(status))
	}
}

// TimerBadge renders the derived timer phase.
func TimerBadge(phase domain.TimerPhase) string {
	switch phase {
	case domain.TimerRunning:
		return StyleGreen.Render("▶ running")
	case domain.TimerHeld:
		return StyleYellow.Render("⏸ held")
	case domain.TimerCompleted:
		return StyleDim.Render("✔ done")
	default:
		return StyleDim.Render("· idle")
	}
}

// Header renders a section header with an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
