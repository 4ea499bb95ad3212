package output

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// interactive reports whether stderr is a terminal that can show a spinner
var interactive = func() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// Spin runs fn while a spinner labelled message is shown on stderr.
// When stderr is not a terminal fn simply runs and the outcome is printed
// as a verbose line. The error returned is always fn's.
func Spin(message string, fn func() error) error {
	if !interactive() {
		err := fn()
		if err != nil {
			Verbose(message + " failed")
		} else {
			Verbose(message + " done")
		}
		return err
	}

	p := tea.NewProgram(newSpinnerModel(message), tea.WithOutput(os.Stderr), tea.WithInput(nil))

	done := make(chan error, 1)
	go func() {
		err := fn()
		done <- err
		p.Send(spinnerDoneMsg{err: err})
	}()

	// A spinner that fails to start only loses the animation
	if _, err := p.Run(); err != nil {
		Verbose(fmt.Sprintf("spinner unavailable: %v", err))
	}
	return <-done
}

// spinnerModel is the bubbletea model behind Spin
type spinnerModel struct {
	spinner spinner.Model
	message string
	done    bool
	err     error
}

type spinnerDoneMsg struct {
	err error
}

func newSpinnerModel(message string) *spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return &spinnerModel{
		spinner: s,
		message: message,
	}
}

func (m *spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	case spinner.TickMsg:
		if !m.done {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m *spinnerModel) View() string {
	if m.done {
		if m.err != nil {
			return fmt.Sprintf("❌ %s\n", m.message)
		}
		return fmt.Sprintf("✅ %s\n", m.message)
	}
	return fmt.Sprintf("%s %s...", m.spinner.View(), m.message)
}
