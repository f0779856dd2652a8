package notelist

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"scribble/internal/tui/theme"
)

var inputPromptStyle = lipgloss.NewStyle().Foreground(theme.Secondary)

// TextInputModel is the always-visible "new note" field. Unlike a modal
// prompt it keeps its value when it loses focus.
type TextInputModel struct {
	Input  textinput.Model
	Prompt string
	Width  int
}

// SubmitMsg is sent when enter is pressed in the focused input.
type SubmitMsg struct {
	Value string
}

// BlurMsg is sent when esc is pressed in the focused input.
type BlurMsg struct{}

// NewTextInput creates a new, unfocused text input
func NewTextInput(prompt, placeholder string) TextInputModel {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 1024
	ti.Blur()
	return TextInputModel{
		Input:  ti,
		Prompt: prompt,
	}
}

// Update handles keys while the input is focused
func (m TextInputModel) Update(msg tea.Msg) (TextInputModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			value := m.Input.Value()
			return m, func() tea.Msg { return SubmitMsg{Value: value} }
		case "esc":
			return m, func() tea.Msg { return BlurMsg{} }
		}
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

// View renders the input box
func (m TextInputModel) View() string {
	box := theme.InputBox
	if m.Input.Focused() {
		box = theme.InputBoxFocused
	}
	content := inputPromptStyle.Render(m.Prompt+": ") + m.Input.View()
	if m.Width > 0 {
		box = box.Width(m.Width)
	}
	return box.Render(content)
}

// Value returns the current input value
func (m TextInputModel) Value() string {
	return m.Input.Value()
}

// Clear empties the input
func (m *TextInputModel) Clear() {
	m.Input.SetValue("")
}

// SetValue sets the input value
func (m *TextInputModel) SetValue(v string) {
	m.Input.SetValue(v)
}

// SetWidth sets both the outer box and inner input widths
func (m *TextInputModel) SetWidth(w int) {
	// Account for border (2) and padding (2)
	m.Width = w - 4
	// Inner input accounts for prompt text
	m.Input.Width = m.Width - lipgloss.Width(m.Prompt+": ") - 1
}

// Focus focuses the input
func (m *TextInputModel) Focus() tea.Cmd {
	return m.Input.Focus()
}

// Blur removes focus, keeping the value
func (m *TextInputModel) Blur() {
	m.Input.Blur()
}

// Focused reports whether the input has focus
func (m TextInputModel) Focused() bool {
	return m.Input.Focused()
}
