package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/projectpulse/pulse/internal/cli/formatter"
	"github.com/projectpulse/pulse/internal/service"
)

// pulseHuhTheme returns a huh theme matching the formatter palette.
func pulseHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// commentForm collects a mandatory free-text comment, used for the
// completion states that refuse to proceed without one.
func commentForm(title string, value *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title(title).
				Value(value).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("a comment is required")
					}
					return nil
				}),
		),
	).WithTheme(pulseHuhTheme()).WithShowHelp(false)
}

// riskReasonForm selects one of the predefined blocked reasons.
func riskReasonForm(reason *string) *huh.Form {
	options := make([]huh.Option[string], 0, len(service.RiskReasons))
	for _, r := range service.RiskReasons {
		options = append(options, huh.NewOption(r, r))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Why is this blocked?").
				Options(options...).
				Value(reason),
		),
	).WithTheme(pulseHuhTheme()).WithShowHelp(false)
}
