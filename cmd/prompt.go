package main

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
)

// promptPath asks the user for an input file path. It satisfies
// fasta.PathFunc so the reader can call it when no path was configured.
func promptPath() (string, error) {
	p := tea.NewProgram(newPromptModel())
	m, err := p.Run()
	if err != nil {
		return "", errors.Wrap(err, "run path prompt")
	}
	pm := m.(promptModel)
	path := strings.TrimSpace(pm.input.Value())
	if pm.cancelled || path == "" {
		return "", errors.New("no input path provided")
	}
	return path, nil
}

type promptModel struct {
	input     textinput.Model
	cancelled bool
}

func newPromptModel() promptModel {
	ti := textinput.New()
	ti.Prompt = "Enter the path to the FASTA file: "
	ti.Placeholder = "sequences.fasta"
	ti.Focus()
	return promptModel{input: ti}
}

func (m promptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m promptModel) View() string {
	return m.input.View() + "\n"
}
