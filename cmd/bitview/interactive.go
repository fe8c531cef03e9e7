package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type interactiveModel struct {
	err      error
	source   string
	witFile  string
	prim     string
	types    []typeInfo
	rows     []row
	input    textinput.Model
	selected int
	state    modelState
	loaded   bool
}

type modelState int

const (
	stateSelectType modelState = iota
	stateInputValue
	stateShowResult
)

func newInteractiveModel(witFile, prim string) *interactiveModel {
	source := witFile
	if prim != "" {
		source = prim
	}
	return &interactiveModel{
		source:  source,
		witFile: witFile,
		prim:    prim,
		state:   stateSelectType,
	}
}

type loadedMsg struct {
	err   error
	types []typeInfo
}

type decodedMsg struct {
	err  error
	rows []row
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.loadTypes
}

func (m *interactiveModel) loadTypes() tea.Msg {
	types, err := loadCatalog(m.witFile, m.prim)
	return loadedMsg{types: types, err: err}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.state != stateInputValue {
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateSelectType && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectType && m.selected < len(m.types)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectType:
				if len(m.types) == 0 {
					break
				}
				if err := m.types[m.selected].err; err != nil {
					m.err = err
					m.state = stateShowResult
					break
				}
				m.prepareInput()
				m.state = stateInputValue
				return m, textinput.Blink

			case stateInputValue:
				return m, m.decodeValue

			case stateShowResult:
				m.reset()
			}

		case "esc":
			if m.state != stateSelectType {
				m.reset()
			}
		}

	case loadedMsg:
		m.loaded = true
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.types = msg.types

	case decodedMsg:
		m.rows = msg.rows
		m.err = msg.err
		m.state = stateShowResult
	}

	if m.state == stateInputValue {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *interactiveModel) reset() {
	m.state = stateSelectType
	m.rows = nil
	m.err = nil
}

func (m *interactiveModel) prepareInput() {
	ti := m.types[m.selected]
	in := textinput.New()
	in.Placeholder = fmt.Sprintf("%d byte(s) of hex, low byte first", (ti.size+7)/8)
	in.Prompt = "value: "
	in.Width = 40
	in.Focus()
	m.input = in
}

func (m *interactiveModel) decodeValue() tea.Msg {
	ti := m.types[m.selected]
	vec, err := parseValue(m.input.Value(), ti.size)
	if err != nil {
		return decodedMsg{err: err}
	}
	rows, err := describe(ti.shape, vec)
	return decodedMsg{rows: rows, err: err}
}

func (m *interactiveModel) View() string {
	if m.err != nil && m.state != stateShowResult {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	if !m.loaded {
		return "Loading types..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Bit Viewer"))
	b.WriteString(" ")
	b.WriteString(m.source)
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectType:
		b.WriteString("Select a type to decode:\n\n")
		for i, ti := range m.types {
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + formatTypeLine(ti)))
			} else {
				b.WriteString("  " + formatTypeLine(ti))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter decode • q quit"))

	case stateInputValue:
		ti := m.types[m.selected]
		b.WriteString(fmt.Sprintf("Decoding %s %s\n\n", nameStyle.Render(ti.name), typeStyle.Render(fmt.Sprintf("(%d bits)", ti.size))))
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter decode • esc back"))

	case stateShowResult:
		ti := m.types[m.selected]
		b.WriteString(fmt.Sprintf("Fields of %s:\n\n", nameStyle.Render(ti.name)))
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			for _, r := range m.rows {
				b.WriteString(resultStyle.Render(formatRow(r)))
				b.WriteString("\n")
			}
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}

func formatTypeLine(ti typeInfo) string {
	if ti.err != nil {
		return nameStyle.Render(ti.name) + " " + errorStyle.Render("unsupported")
	}
	return nameStyle.Render(ti.name) + " " + typeStyle.Render(fmt.Sprintf("%d bits", ti.size))
}

func runInteractive(witFile, prim string) error {
	p := tea.NewProgram(newInteractiveModel(witFile, prim), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
