package notelist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"scribble/internal/tui/theme"
)

var (
	modeStyle    = theme.NavActive
	hintStyle    = theme.HelpHint
	searchStyle  = lipgloss.NewStyle().Foreground(theme.Success)
	busyStyle    = lipgloss.NewStyle().Foreground(theme.Warning)
	infoBarStyle = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(theme.Border)
)

// Mode is the input mode of the note list
type Mode int

const (
	ModeNormal Mode = iota
	ModeInsert
	ModeSearch
	ModeConfirmation
)

func (m Mode) String() string {
	switch m {
	case ModeInsert:
		return "Insert"
	case ModeSearch:
		return "Search"
	case ModeConfirmation:
		return "Confirm"
	}
	return "Normal"
}

// InfoBarModel displays mode, counts, in-flight operations and the last
// status or error message
type InfoBarModel struct {
	Mode        Mode
	Total       int
	Shown       int
	SearchQuery string
	Busy        []string
	Spinner     string
	Message     string
	IsError     bool
	Width       int
}

// NewInfoBar creates a new info bar
func NewInfoBar() InfoBarModel {
	return InfoBarModel{
		Width: 80,
	}
}

// View renders the info bar (2 fixed lines)
func (m *InfoBarModel) View() string {
	lines := []string{m.renderModeLine(), m.renderMessageLine()}
	return infoBarStyle.Width(m.Width).Render(strings.Join(lines, "\n"))
}

func (m *InfoBarModel) renderModeLine() string {
	parts := []string{modeStyle.Render("[" + m.Mode.String() + "]")}

	count := fmt.Sprintf("%d notes", m.Total)
	if m.SearchQuery != "" {
		count = fmt.Sprintf("%d/%d notes", m.Shown, m.Total)
	}
	parts = append(parts, hintStyle.Render(count))

	if m.SearchQuery != "" {
		parts = append(parts, searchStyle.Render("Search: \""+m.SearchQuery+"\""))
	}

	if len(m.Busy) > 0 {
		parts = append(parts, busyStyle.Render(m.Spinner+" "+strings.Join(m.Busy, ", ")+"..."))
	}

	return strings.Join(parts, "  ")
}

func (m *InfoBarModel) renderMessageLine() string {
	if m.Message == "" {
		return ""
	}
	if m.IsError {
		return theme.Error.Render("Error: ") + m.Message
	}
	return hintStyle.Render(m.Message)
}

// RenderHintsRaw returns the raw (unstyled) keybind hints for the current mode.
func (m *InfoBarModel) RenderHintsRaw() string {
	switch m.Mode {
	case ModeInsert:
		return "enter:add  esc:back to list"
	case ModeSearch:
		return "type to filter  enter:confirm  esc:clear"
	case ModeConfirmation:
		return "y/enter:yes  n/esc:no"
	}
	return "j/k:move  n:new  d:delete  r:refresh  /:search  ?:help  q:quit"
}
