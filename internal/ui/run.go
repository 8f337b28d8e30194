package ui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"stylecheck/internal/driver"
)

// RunProgress renders progress to out until events is closed.
func RunProgress(out io.Writer, title string, files []string, events <-chan driver.Event) error {
	p := tea.NewProgram(NewProgressModel(title, files, events), tea.WithOutput(out), tea.WithInput(nil))
	_, err := p.Run()
	return err
}
