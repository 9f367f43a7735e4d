package cli

import (
	"fmt"

	"github.com/alexanderramin/rota/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

type workDoneMsg struct{}

// spinnerModel animates while a solver call runs in the background.
type spinnerModel struct {
	spinner spinner.Model
	message string
	done    bool
}

func newSpinnerModel(message string) spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	s.Style = formatter.StylePurple
	return spinnerModel{spinner: s, message: message}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case workDoneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("  %s %s", m.spinner.View(), formatter.Dim(m.message))
}

// withSpinner runs work, animating a spinner on stderr when attached to a
// terminal. The work's error is returned unchanged.
func (a *App) withSpinner(cmd *cobra.Command, message string, work func() error) error {
	if !a.interactive() {
		return work()
	}

	p := tea.NewProgram(newSpinnerModel(message),
		tea.WithOutput(cmd.ErrOrStderr()),
		tea.WithInput(nil),
		tea.WithContext(cmd.Context()),
	)
	errc := make(chan error, 1)
	go func() {
		errc <- work()
		p.Send(workDoneMsg{})
	}()

	_, runErr := p.Run()
	if err := <-errc; err != nil {
		return err
	}
	if runErr != nil && cmd.Context().Err() == nil {
		return fmt.Errorf("spinner: %w", runErr)
	}
	return nil
}
