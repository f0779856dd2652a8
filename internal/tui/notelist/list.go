package notelist

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"scribble/internal/logs"
	"scribble/internal/notes"
	"scribble/internal/tui/messages"
	"scribble/internal/tui/shared"
	"scribble/internal/tui/theme"
)

const defaultStatusTTL = 3 * time.Second

// noteTexts adapts a note slice to fuzzy.Source
type noteTexts []notes.Note

func (n noteTexts) String(i int) string { return n[i].Text }
func (n noteTexts) Len() int            { return len(n) }

// ListModel is the note list view: the new-note input, the list itself and
// the info bar. It renders a snapshot of the synchronizer taken after every
// state change.
type ListModel struct {
	sync *notes.Synchronizer

	// Data
	notes   []notes.Note
	display []int // indexes into notes after filtering

	// Navigation
	cursor       int
	scrollOffset int

	// State
	mode            Mode
	inFlight      [3]int // indexed by messages.Op
	searchQuery   string
	status        string
	statusIsError bool
	statusSeq     int
	statusTTL     time.Duration

	// Sub-components
	input       TextInputModel
	searchInput textinput.Model
	confirm     *DeleteConfirm
	spinner     spinner.Model
	infoBar     InfoBarModel

	// Dimensions
	width  int
	height int
}

// NewListModel creates the list view. The initial refresh is counted as in
// flight; Init issues it.
func NewListModel(sync *notes.Synchronizer) ListModel {
	si := textinput.New()
	si.Prompt = "/"
	si.Placeholder = "filter notes"

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := ListModel{
		sync:        sync,
		input:       NewTextInput("New note", "Write a note…"),
		searchInput: si,
		spinner:     sp,
		infoBar:     NewInfoBar(),
		statusTTL:   defaultStatusTTL,
	}
	m.inFlight[messages.OpRefresh] = 1
	m.reload()
	return m
}

// Init issues the initial refresh
func (m ListModel) Init() tea.Cmd {
	return tea.Batch(messages.Refresh(m.sync), m.spinner.Tick)
}

// SetSize updates the dimensions
func (m *ListModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.infoBar.Width = width
	m.input.SetWidth(width)
	m.ensureCursorVisible()
}

// IsInModalState reports whether the view wants every key for itself
func (m ListModel) IsInModalState() bool {
	return m.mode != ModeNormal
}

// Notes returns the rendered snapshot, in display order
func (m ListModel) Notes() []notes.Note {
	out := make([]notes.Note, 0, len(m.display))
	for _, i := range m.display {
		out = append(out, m.notes[i])
	}
	return out
}

// Selected returns the note under the cursor
func (m ListModel) Selected() (notes.Note, bool) {
	if m.cursor < 0 || m.cursor >= len(m.display) {
		return notes.Note{}, false
	}
	return m.notes[m.display[m.cursor]], true
}

// InputValue returns the text of the new-note field
func (m ListModel) InputValue() string {
	return m.input.Value()
}

// Busy reports whether any remote operation is in flight
func (m ListModel) Busy() bool {
	return m.inFlight[messages.OpRefresh]+m.inFlight[messages.OpCreate]+m.inFlight[messages.OpDelete] > 0
}

// Update handles messages for the note list
func (m ListModel) Update(msg tea.Msg) (ListModel, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.NotesRefreshedMsg:
		m.end(messages.OpRefresh)
		if msg.Err != nil {
			logs.Logger.Error("Refresh failed", "error", msg.Err)
			cmd := m.setError(fmt.Sprintf("refresh failed: %v", msg.Err))
			return m, cmd
		}
		m.reload()
		return m, nil

	case messages.NoteCreatedMsg:
		m.end(messages.OpCreate)
		if errors.Is(msg.Err, notes.ErrEmptyText) {
			return m, nil
		}
		if msg.Err != nil {
			logs.Logger.Error("Create failed", "error", msg.Err)
			cmd := m.setError(fmt.Sprintf("add failed, text kept: %v", msg.Err))
			return m, cmd
		}
		m.input.Clear()
		m.reload()
		m.focusNote(msg.Note.ID)
		cmd := m.setStatus("Added note " + shortID(msg.Note.ID))
		return m, cmd

	case messages.NoteRemovedMsg:
		m.end(messages.OpDelete)
		if msg.Err != nil {
			logs.Logger.Error("Delete failed", "id", msg.ID, "error", msg.Err)
			cmd := m.setError(fmt.Sprintf("delete failed on server (removed locally): %v", msg.Err))
			return m, cmd
		}
		cmd := m.setStatus("Deleted note " + shortID(msg.ID))
		return m, cmd

	case messages.ClearStatusMsg:
		if msg.Seq == m.statusSeq && !m.statusIsError {
			m.status = ""
		}
		return m, nil

	case SubmitMsg:
		if notes.IsBlank(msg.Value) {
			return m, nil
		}
		cmd := m.begin(messages.OpCreate, messages.AddNote(m.sync, msg.Value))
		return m, cmd

	case BlurMsg:
		m.input.Blur()
		m.mode = ModeNormal
		return m, nil

	case ConfirmationResultMsg:
		m.mode = ModeNormal
		m.confirm = nil
		if !msg.Confirmed || msg.ID == "" {
			return m, nil
		}
		remove := messages.RemoveNote(m.sync, msg.ID)
		m.reload()
		cmd := m.begin(messages.OpDelete, remove)
		return m, cmd

	case spinner.TickMsg:
		if !m.Busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch m.mode {
		case ModeConfirmation:
			if m.confirm != nil {
				return m, m.confirm.Update(msg)
			}
			m.mode = ModeNormal
			return m, nil
		case ModeInsert:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		case ModeSearch:
			return m.handleSearchKey(msg)
		}
		return m.handleNormalKey(msg)
	}

	// Forward anything else (cursor blink) to the focused input
	var cmd tea.Cmd
	switch m.mode {
	case ModeInsert:
		m.input, cmd = m.input.Update(msg)
	case ModeSearch:
		m.searchInput, cmd = m.searchInput.Update(msg)
	}
	return m, cmd
}

func (m ListModel) handleNormalKey(msg tea.KeyMsg) (ListModel, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.display)-1 {
			m.cursor++
			m.ensureCursorVisible()
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
			m.ensureCursorVisible()
		}
	case "g", "home":
		m.cursor = 0
		m.ensureCursorVisible()
	case "G", "end":
		m.cursor = max(len(m.display)-1, 0)
		m.ensureCursorVisible()
	case "n", "a", "i":
		m.mode = ModeInsert
		cmd := m.input.Focus()
		return m, cmd
	case "d", "x", "delete":
		note, ok := m.Selected()
		if !ok {
			return m, nil
		}
		m.confirm = NewDeleteConfirm(note, min(max(m.width-4, 20), 60))
		m.mode = ModeConfirmation
	case "r":
		cmd := m.begin(messages.OpRefresh, messages.Refresh(m.sync))
		return m, cmd
	case "/":
		m.mode = ModeSearch
		m.searchInput.SetValue(m.searchQuery)
		cmd := m.searchInput.Focus()
		return m, cmd
	case "esc":
		m.status = ""
		m.statusIsError = false
		if m.searchQuery != "" {
			m.searchQuery = ""
			m.applyFilter()
		}
	}
	return m, nil
}

func (m ListModel) handleSearchKey(msg tea.KeyMsg) (ListModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchInput.Blur()
		m.mode = ModeNormal
		return m, nil
	case "esc":
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.searchQuery = ""
		m.mode = ModeNormal
		m.applyFilter()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if q := m.searchInput.Value(); q != m.searchQuery {
		m.searchQuery = q
		m.cursor = 0
		m.applyFilter()
	}
	return m, cmd
}

// begin counts op as in flight and starts the spinner when leaving idle
func (m *ListModel) begin(op messages.Op, cmd tea.Cmd) tea.Cmd {
	wasIdle := !m.Busy()
	m.inFlight[op]++
	if wasIdle {
		return tea.Batch(cmd, m.spinner.Tick)
	}
	return cmd
}

func (m *ListModel) end(op messages.Op) {
	if m.inFlight[op] > 0 {
		m.inFlight[op]--
	}
}

func (m *ListModel) setStatus(s string) tea.Cmd {
	m.statusSeq++
	m.status = s
	m.statusIsError = false
	if m.statusTTL <= 0 {
		return nil
	}
	return messages.ClearStatusAfter(m.statusTTL, m.statusSeq)
}

func (m *ListModel) setError(s string) tea.Cmd {
	m.statusSeq++
	m.status = s
	m.statusIsError = true
	return nil
}

func (m *ListModel) reload() {
	m.notes = m.sync.Notes()
	m.applyFilter()
}

func (m *ListModel) applyFilter() {
	display := make([]int, 0, len(m.notes))
	if m.searchQuery == "" {
		for i := range m.notes {
			display = append(display, i)
		}
	} else {
		for _, match := range fuzzy.FindFrom(m.searchQuery, noteTexts(m.notes)) {
			display = append(display, match.Index)
		}
	}
	m.display = display

	if m.cursor >= len(m.display) {
		m.cursor = max(len(m.display)-1, 0)
	}
	m.ensureCursorVisible()
}

func (m *ListModel) focusNote(id string) {
	for i, idx := range m.display {
		if m.notes[idx].ID == id {
			m.cursor = i
			m.ensureCursorVisible()
			return
		}
	}
}

func (m *ListModel) listHeight() int {
	// title (1) + input box (3) + info bar (3) + spacing (1)
	return max(m.height-8, 1)
}

func (m *ListModel) ensureCursorVisible() {
	h := m.listHeight()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	}
	if m.cursor >= m.scrollOffset+h {
		m.scrollOffset = m.cursor - h + 1
	}
	if m.scrollOffset < 0 {
		m.scrollOffset = 0
	}
}

func (m *ListModel) busyOps() []string {
	var ops []string
	for _, op := range []messages.Op{messages.OpRefresh, messages.OpCreate, messages.OpDelete} {
		if n := m.inFlight[op]; n > 0 {
			label := op.String()
			if n > 1 {
				label = fmt.Sprintf("%s×%d", label, n)
			}
			ops = append(ops, label)
		}
	}
	return ops
}

// View renders the note list
func (m ListModel) View() string {
	var b strings.Builder

	b.WriteString(theme.Title.Render("Notes") + "\n")
	b.WriteString(m.input.View() + "\n")
	b.WriteString(m.renderList() + "\n")

	m.infoBar.Mode = m.mode
	m.infoBar.Total = len(m.notes)
	m.infoBar.Shown = len(m.display)
	m.infoBar.SearchQuery = m.searchQuery
	m.infoBar.Busy = m.busyOps()
	m.infoBar.Spinner = m.spinner.View()
	m.infoBar.Message = m.status
	m.infoBar.IsError = m.statusIsError
	if m.mode == ModeSearch {
		m.infoBar.Message = m.searchInput.View()
		m.infoBar.IsError = false
	}
	b.WriteString(m.infoBar.View())

	content := b.String()
	if m.mode == ModeConfirmation && m.confirm != nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.confirm.View())
	}
	return content
}

// HintsRaw returns the keybind hints for the status bar
func (m ListModel) HintsRaw() string {
	m.infoBar.Mode = m.mode
	return m.infoBar.RenderHintsRaw()
}

func (m ListModel) renderList() string {
	h := m.listHeight()

	if len(m.display) == 0 {
		var msg string
		switch {
		case m.searchQuery != "":
			msg = theme.Muted.Render("No notes match \"" + m.searchQuery + "\"")
		case m.inFlight[messages.OpRefresh] > 0:
			msg = theme.Muted.Render("Loading notes…")
		default:
			msg = theme.Muted.Render("No notes yet. Press n to write one.")
		}
		return shared.CenterContent(msg, h)
	}

	end := min(m.scrollOffset+h, len(m.display))
	lines := make([]string, 0, h)
	textWidth := max(m.width-14, 10)
	for row := m.scrollOffset; row < end; row++ {
		n := m.notes[m.display[row]]
		text := truncate(oneLine(n.Text), textWidth)
		id := theme.NoteID.Render(shortID(n.ID))
		if row == m.cursor {
			lines = append(lines, theme.Cursor.Render("> ")+theme.SelectedBg.Render(text)+"  "+id)
		} else {
			lines = append(lines, "  "+text+"  "+id)
		}
	}
	for len(lines) < h {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "…"
}
