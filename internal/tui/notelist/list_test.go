package notelist

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"scribble/internal/notes"
	"scribble/internal/tui/messages"
)

type stubRemote struct {
	list      []notes.Note
	listErr   error
	createErr error
	deleteErr error
	creates   int
	deletes   []string
}

func (r *stubRemote) List(context.Context) ([]notes.Note, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return append([]notes.Note(nil), r.list...), nil
}

func (r *stubRemote) Create(_ context.Context, text string) (notes.Note, error) {
	r.creates++
	if r.createErr != nil {
		return notes.Note{}, r.createErr
	}
	n := notes.Note{ID: fmt.Sprintf("id-%d", r.creates), Text: text}
	r.list = append(r.list, n)
	return n, nil
}

func (r *stubRemote) Delete(_ context.Context, id string) error {
	r.deletes = append(r.deletes, id)
	return r.deleteErr
}

// run executes cmd and feeds every resulting message back into m. Spinner
// ticks are dropped so nothing sleeps.
func run(m ListModel, cmd tea.Cmd) ListModel {
	if cmd == nil {
		return m
	}
	switch msg := cmd().(type) {
	case nil, spinner.TickMsg:
		return m
	case tea.BatchMsg:
		for _, c := range msg {
			m = run(m, c)
		}
		return m
	default:
		var next tea.Cmd
		m, next = m.Update(msg)
		return run(m, next)
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m ListModel, keys ...string) ListModel {
	for _, k := range keys {
		confirming := m.mode == ModeConfirmation
		var cmd tea.Cmd
		m, cmd = m.Update(key(k))
		// Focus returns a cursor blink command that never settles; only
		// follow commands produced by submit, refresh and confirmation keys.
		if confirming || k == "enter" || k == "r" {
			m = run(m, cmd)
		}
	}
	return m
}

func typeText(m ListModel, text string) ListModel {
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return m
}

func newLoadedModel(t *testing.T, remote *stubRemote) ListModel {
	t.Helper()
	m := NewListModel(notes.NewSynchronizer(remote))
	m.statusTTL = 0
	m.SetSize(80, 30)
	m = run(m, m.Init())
	if m.Busy() {
		t.Fatal("expected initial refresh to complete")
	}
	return m
}

func ids(ns []notes.Note) []string {
	var out []string
	for _, n := range ns {
		out = append(out, n.ID)
	}
	return out
}

func TestInit_LoadsServerOrder(t *testing.T) {
	remote := &stubRemote{list: []notes.Note{{ID: "b", Text: "two"}, {ID: "a", Text: "one"}}}
	m := newLoadedModel(t, remote)

	got := ids(m.Notes())
	if strings.Join(got, ",") != "b,a" {
		t.Errorf("expected server order b,a, got %v", got)
	}
}

func TestInit_RefreshErrorIsShown(t *testing.T) {
	remote := &stubRemote{listErr: errors.New("connection refused")}
	m := newLoadedModel(t, remote)

	if !m.statusIsError || !strings.Contains(m.status, "connection refused") {
		t.Errorf("expected refresh error in status, got %q", m.status)
	}
	if len(m.Notes()) != 0 {
		t.Errorf("expected no notes, got %d", len(m.Notes()))
	}
}

func TestSubmit_AppendsAndClearsInput(t *testing.T) {
	remote := &stubRemote{list: []notes.Note{{ID: "a", Text: "one"}}}
	m := newLoadedModel(t, remote)

	m = press(m, "n")
	if m.mode != ModeInsert {
		t.Fatalf("expected insert mode, got %v", m.mode)
	}
	m = typeText(m, "hello")
	m = press(m, "enter")

	if remote.creates != 1 {
		t.Fatalf("expected 1 create call, got %d", remote.creates)
	}
	got := m.Notes()
	if len(got) != 2 || got[1].ID != "id-1" || got[1].Text != "hello" {
		t.Errorf("expected server note appended, got %+v", got)
	}
	if m.InputValue() != "" {
		t.Errorf("expected input cleared, got %q", m.InputValue())
	}
	if sel, _ := m.Selected(); sel.ID != "id-1" {
		t.Errorf("expected cursor on new note, got %q", sel.ID)
	}
	if m.mode != ModeInsert {
		t.Errorf("expected input to stay open for the next note")
	}
}

func TestSubmit_BlankIsNoop(t *testing.T) {
	remote := &stubRemote{}
	m := newLoadedModel(t, remote)

	m = press(m, "n")
	m = typeText(m, "   ")
	m = press(m, "enter")

	if remote.creates != 0 {
		t.Errorf("expected no create call, got %d", remote.creates)
	}
	if m.Busy() {
		t.Error("expected nothing in flight")
	}
	if m.InputValue() != "   " {
		t.Errorf("expected input untouched, got %q", m.InputValue())
	}
}

func TestSubmit_FailureKeepsText(t *testing.T) {
	remote := &stubRemote{createErr: errors.New("503")}
	m := newLoadedModel(t, remote)

	m = press(m, "n")
	m = typeText(m, "keep me")
	m = press(m, "enter")

	if m.InputValue() != "keep me" {
		t.Errorf("expected text kept after failure, got %q", m.InputValue())
	}
	if !m.statusIsError {
		t.Error("expected error status")
	}
	if len(m.Notes()) != 0 {
		t.Errorf("expected no notes, got %d", len(m.Notes()))
	}
}

func TestDelete_ConfirmRemovesBeforeRemoteReturns(t *testing.T) {
	remote := &stubRemote{list: []notes.Note{{ID: "1", Text: "a"}, {ID: "2", Text: "b"}}}
	m := newLoadedModel(t, remote)

	m = press(m, "d")
	if m.mode != ModeConfirmation {
		t.Fatalf("expected confirmation mode, got %v", m.mode)
	}

	// Deliver the confirmation but hold the resulting remote command.
	var cmd tea.Cmd
	m, cmd = m.Update(ConfirmationResultMsg{ID: "1", Confirmed: true})

	if got := ids(m.Notes()); len(got) != 1 || got[0] != "2" {
		t.Errorf("expected note removed before remote call, got %v", got)
	}
	if len(remote.deletes) != 0 {
		t.Errorf("expected remote delete not yet issued, got %v", remote.deletes)
	}
	if !m.Busy() {
		t.Error("expected delete to be in flight")
	}

	m = run(m, cmd)
	if len(remote.deletes) != 1 || remote.deletes[0] != "1" {
		t.Errorf("expected delete of 1, got %v", remote.deletes)
	}
	if m.Busy() {
		t.Error("expected idle after delete")
	}
}

func TestDelete_FailureIsReportedNotRolledBack(t *testing.T) {
	remote := &stubRemote{list: []notes.Note{{ID: "1", Text: "a"}}, deleteErr: errors.New("500")}
	m := newLoadedModel(t, remote)

	m = press(m, "d", "y")

	if len(m.Notes()) != 0 {
		t.Errorf("expected local removal kept, got %v", ids(m.Notes()))
	}
	if !m.statusIsError || !strings.Contains(m.status, "removed locally") {
		t.Errorf("expected delete error status, got %q", m.status)
	}
}

func TestDelete_CancelKeepsNote(t *testing.T) {
	remote := &stubRemote{list: []notes.Note{{ID: "1", Text: "a"}}}
	m := newLoadedModel(t, remote)

	m = press(m, "d", "n")

	if len(m.Notes()) != 1 {
		t.Errorf("expected note kept, got %d", len(m.Notes()))
	}
	if len(remote.deletes) != 0 {
		t.Errorf("expected no delete call, got %v", remote.deletes)
	}
	if m.mode != ModeNormal {
		t.Errorf("expected normal mode, got %v", m.mode)
	}
}

func TestRefreshKey_ReplacesList(t *testing.T) {
	remote := &stubRemote{list: []notes.Note{{ID: "1", Text: "a"}}}
	m := newLoadedModel(t, remote)

	remote.list = []notes.Note{{ID: "9", Text: "z"}, {ID: "8", Text: "y"}}
	m = press(m, "r")

	if got := ids(m.Notes()); strings.Join(got, ",") != "9,8" {
		t.Errorf("expected refreshed list, got %v", got)
	}
}

func TestSearch_FiltersAndClears(t *testing.T) {
	remote := &stubRemote{list: []notes.Note{
		{ID: "1", Text: "buy milk"},
		{ID: "2", Text: "call mom"},
		{ID: "3", Text: "milk the cow"},
	}}
	m := newLoadedModel(t, remote)

	m = press(m, "/")
	if m.mode != ModeSearch {
		t.Fatalf("expected search mode, got %v", m.mode)
	}
	m = typeText(m, "milk")

	got := ids(m.Notes())
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %v", got)
	}
	for _, id := range got {
		if id == "2" {
			t.Errorf("unexpected match %q", id)
		}
	}

	m = press(m, "enter")
	if m.mode != ModeNormal || m.searchQuery != "milk" {
		t.Errorf("expected filter kept in normal mode, mode=%v query=%q", m.mode, m.searchQuery)
	}

	m = press(m, "esc")
	if len(m.Notes()) != 3 {
		t.Errorf("expected filter cleared, got %d notes", len(m.Notes()))
	}
}

func TestCursorNavigation(t *testing.T) {
	remote := &stubRemote{list: []notes.Note{{ID: "1", Text: "a"}, {ID: "2", Text: "b"}, {ID: "3", Text: "c"}}}
	m := newLoadedModel(t, remote)

	m = press(m, "j", "j", "j")
	if sel, _ := m.Selected(); sel.ID != "3" {
		t.Errorf("expected cursor clamped at last note, got %q", sel.ID)
	}

	m = press(m, "g")
	if sel, _ := m.Selected(); sel.ID != "1" {
		t.Errorf("expected first note, got %q", sel.ID)
	}
}

func TestView_RendersNotesAndBusyState(t *testing.T) {
	remote := &stubRemote{list: []notes.Note{{ID: "abcdef123456", Text: "first note"}}}
	m := NewListModel(notes.NewSynchronizer(remote))
	m.SetSize(80, 20)

	if !strings.Contains(m.View(), "Loading notes") {
		t.Error("expected loading placeholder before first refresh")
	}

	m = run(m, m.Init())
	view := m.View()
	if !strings.Contains(view, "first note") {
		t.Error("expected note text in view")
	}
	if !strings.Contains(view, "abcdef12") {
		t.Error("expected short id in view")
	}
	if !strings.Contains(view, "1 notes") {
		t.Error("expected note count in info bar")
	}
}

func TestModesAndHints(t *testing.T) {
	remote := &stubRemote{list: []notes.Note{{ID: "1", Text: "a"}}}
	m := newLoadedModel(t, remote)

	if m.IsInModalState() {
		t.Error("expected normal mode after load")
	}
	m = press(m, "n")
	if !m.IsInModalState() || !strings.Contains(m.HintsRaw(), "enter:add") {
		t.Errorf("expected insert hints, got %q", m.HintsRaw())
	}
	m, cmd := m.Update(key("esc"))
	m = run(m, cmd)
	if m.IsInModalState() {
		t.Error("expected esc to leave insert mode")
	}
}

func TestClearStatusMsg_IgnoresStaleSeq(t *testing.T) {
	m := ListModel{status: "Added", statusSeq: 2}

	m, _ = m.Update(messages.ClearStatusMsg{Seq: 1})
	if m.status == "" {
		t.Error("stale clear should not remove newer status")
	}
	m, _ = m.Update(messages.ClearStatusMsg{Seq: 2})
	if m.status != "" {
		t.Errorf("expected status cleared, got %q", m.status)
	}
}
