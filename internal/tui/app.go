package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"scribble/internal/notes"
	"scribble/internal/tui/notelist"
	"scribble/internal/tui/shared"
	"scribble/internal/tui/theme"
)

// AppModel is the root model: window sizing, global keys, the help overlay
// and the status bar around the note list.
type AppModel struct {
	serverURL string
	listView  notelist.ListModel
	showHelp  bool
	width     int
	height    int
	ready     bool
}

// NewAppModel creates the root application model
func NewAppModel(sync *notes.Synchronizer, serverURL string) AppModel {
	return AppModel{
		serverURL: serverURL,
		listView:  notelist.NewListModel(sync),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.listView.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.listView.SetSize(msg.Width, msg.Height-2) // Reserve space for status bar
		return m, nil

	case tea.KeyMsg:
		// Global keys: ctrl+c always quits
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		// Dismiss help overlay on any key
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}

		if !m.listView.IsInModalState() {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "?":
				m.showHelp = true
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.listView, cmd = m.listView.Update(msg)
	return m, cmd
}

func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return shared.RenderHelpPopup(helpSections, m.width, m.height)
	}

	statusText := m.serverURL + " | " + m.listView.HintsRaw()
	statusBar := theme.StatusBar.Width(m.width).Render(theme.HelpHint.Render(statusText))

	return lipgloss.JoinVertical(lipgloss.Left, m.listView.View(), statusBar)
}

var helpSections = []shared.HelpSection{
	{
		Title: "Scribble - Keyboard Shortcuts",
		Binds: []shared.HelpBind{
			{Key: "?", Desc: "Show this help"},
			{Key: "q", Desc: "Quit"},
			{Key: "ctrl+c", Desc: "Force quit"},
		},
	},
	{
		Title: "Notes",
		Binds: []shared.HelpBind{
			{Key: "j / k", Desc: "Move cursor"},
			{Key: "g / G", Desc: "First / last note"},
			{Key: "n / a / i", Desc: "Write a new note"},
			{Key: "enter", Desc: "Add the note (input stays open)"},
			{Key: "esc", Desc: "Leave input / clear filter and errors"},
			{Key: "d / x", Desc: "Delete selected note"},
			{Key: "r", Desc: "Reload from server"},
			{Key: "/", Desc: "Fuzzy filter"},
		},
	},
}
