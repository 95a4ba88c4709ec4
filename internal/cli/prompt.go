package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/estimo/internal/cli/formatter"
	"github.com/alexanderramin/estimo/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var errNotInteractive = errors.New("not an interactive session")

// estimoHuhTheme returns a huh theme using the Gruvbox palette.
func estimoHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// huhConfirm asks a yes/no question on the terminal.
func huhConfirm(title string) (bool, error) {
	var confirmed bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(&confirmed),
		),
	).WithTheme(estimoHuhTheme()).WithShowHelp(false)
	if err := form.Run(); err != nil {
		return false, err
	}
	return confirmed, nil
}

// huhSelectEstimate lets the user pick one of the listed estimates.
func huhSelectEstimate(estimates []domain.Estimate) (domain.ID, error) {
	options := make([]huh.Option[string], 0, len(estimates))
	for _, e := range estimates {
		label := fmt.Sprintf("%s  (%s)", e.Name, e.ID)
		options = append(options, huh.NewOption(label, e.ID.String()))
	}

	var picked string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Estimate").
				Options(options...).
				Value(&picked),
		),
	).WithTheme(estimoHuhTheme()).WithShowHelp(false)
	if err := form.Run(); err != nil {
		return domain.ID{}, err
	}
	return domain.ParseID(picked), nil
}

func (app *App) interactive() bool {
	return app.IsInteractive != nil && app.IsInteractive()
}

// confirm asks before a destructive action. --yes skips the question; a
// non-interactive session without --yes is refused.
func (app *App) confirm(what string, yes bool) (bool, error) {
	if yes {
		return true, nil
	}
	if !app.interactive() {
		return false, fmt.Errorf("deleting %s: %w (pass --yes)", what, errNotInteractive)
	}
	ask := app.Confirm
	if ask == nil {
		ask = huhConfirm
	}
	return ask("Delete " + what + "?")
}
