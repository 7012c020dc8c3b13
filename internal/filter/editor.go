package filter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	editorLabelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	editorChoiceStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("75")).Bold(true)
	editorCursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	editorHintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
)

// choiceEditor pairs a cycled choice (operator, match mode) with a text input.
// With no choices it is a plain text input.
type choiceEditor struct {
	choiceLabel string
	choices     []string
	input       textinput.Model

	read  func(value any) (choice int, text string)
	write func(choice int, text string) any
}

func newChoiceEditor(choiceLabel string, choices []string, placeholder string,
	read func(any) (int, string), write func(int, string) any) *choiceEditor {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.Width = 24
	ti.Focus()

	return &choiceEditor{
		choiceLabel: choiceLabel,
		choices:     choices,
		input:       ti,
		read:        read,
		write:       write,
	}
}

// sync keeps the text input in step with the value owned by the caller
func (e *choiceEditor) sync(text string) {
	if e.input.Value() != text {
		e.input.SetValue(text)
	}
}

func (e *choiceEditor) Update(msg tea.Msg, value any, onChange func(any)) tea.Cmd {
	choice, text := e.read(value)
	e.sync(text)

	if key, ok := msg.(tea.KeyMsg); ok && len(e.choices) > 0 {
		switch key.String() {
		case "up":
			onChange(e.write(wrapIndex(choice-1, len(e.choices)), text))
			return nil
		case "down":
			onChange(e.write(wrapIndex(choice+1, len(e.choices)), text))
			return nil
		}
	}

	var cmd tea.Cmd
	e.input, cmd = e.input.Update(msg)
	if next := e.input.Value(); next != text {
		onChange(e.write(choice, next))
	}
	return cmd
}

func (e *choiceEditor) View(value any) string {
	choice, text := e.read(value)
	e.sync(text)

	var b strings.Builder
	if len(e.choices) > 0 {
		label := ""
		if choice >= 0 && choice < len(e.choices) {
			label = e.choices[choice]
		}
		b.WriteString(editorLabelStyle.Render(e.choiceLabel + ": "))
		b.WriteString(editorChoiceStyle.Render("‹ " + label + " ›"))
		b.WriteString("\n")
	}
	b.WriteString(e.input.View())
	if len(e.choices) > 0 {
		b.WriteString("\n")
		b.WriteString(editorHintStyle.Render(fmt.Sprintf("↑↓ %s", strings.ToLower(e.choiceLabel))))
	}
	return b.String()
}

// listEditor toggles membership of a fixed option list
type listEditor struct {
	options []string
	cursor  int
}

func (e *listEditor) Update(msg tea.Msg, value any, onChange func(any)) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok || len(e.options) == 0 {
		return nil
	}
	switch key.String() {
	case "up", "k":
		e.cursor = wrapIndex(e.cursor-1, len(e.options))
	case "down", "j":
		e.cursor = wrapIndex(e.cursor+1, len(e.options))
	case " ", "x":
		onChange(toggleOption(enumSelection(value), e.options[e.cursor]))
	case "a":
		onChange(append(EnumValue(nil), e.options...))
	case "n":
		onChange(EnumValue{})
	}
	return nil
}

func (e *listEditor) View(value any) string {
	selected := enumSelection(value)
	var b strings.Builder
	for i, opt := range e.options {
		mark := "[ ]"
		if selected.Has(opt) {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s %s", mark, opt)
		if i == e.cursor {
			line = editorCursorStyle.Render("› " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(editorHintStyle.Render("space toggle · a all · n none"))
	return b.String()
}

func wrapIndex(i, n int) int {
	if n == 0 {
		return 0
	}
	return ((i % n) + n) % n
}
