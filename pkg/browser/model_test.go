package browser

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"taxdesk/internal/models"
	"taxdesk/internal/sync"
)

// fakeAPI is a scriptable in-memory remote for headless update-loop tests.
type fakeAPI struct {
	records    []models.Record
	categories []models.Category
	loadErr    error
	updateErr  error
	updates    []models.Record
}

func (f *fakeAPI) ListRecords() ([]models.Record, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.records, nil
}

func (f *fakeAPI) ListCategories() ([]models.Category, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.categories, nil
}

func (f *fakeAPI) UpdateRecord(id string, rec models.Record) (models.Record, error) {
	f.updates = append(f.updates, rec)
	if f.updateErr != nil {
		return models.Record{}, f.updateErr
	}
	return rec, nil
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		records: []models.Record{
			{ID: "1", Name: "amelie laurent", Gender: models.GenderFemale, Country: "France", CountryID: "c1"},
			{ID: "2", Name: "carlos mendez", Gender: models.GenderMale, Country: "Spain", CountryID: "c2"},
			{ID: "3", Name: "greta fischer", Gender: models.GenderFemale, Country: "Germany", CountryID: "c3"},
		},
		categories: []models.Category{
			{ID: "c1", Name: "France"},
			{ID: "c2", Name: "Spain"},
			{ID: "c3", Name: "Germany"},
		},
	}
}

// loadedModel builds a model with the initial fetch already installed,
// driving the real Init command and update loop.
func loadedModel(t *testing.T, api *fakeAPI) Model {
	t.Helper()
	m := New(api)
	m.Width = 100
	m.Height = 40

	msg := m.Init()()
	next, _ := m.Update(msg)
	m = next.(Model)

	if m.Loading || m.LoadErr != nil {
		t.Fatalf("load failed: loading=%v err=%v", m.Loading, m.LoadErr)
	}
	return m
}

func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "ctrl+s":
			msg = tea.KeyMsg{Type: tea.KeyCtrlS}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

func TestLoadRendersTable(t *testing.T) {
	m := loadedModel(t, newFakeAPI())

	view := m.View()
	for _, want := range []string{"Customers", "Amelie Laurent", "Carlos Mendez", "Greta Fischer"} {
		if !strings.Contains(view, want) {
			t.Errorf("view should contain %q", want)
		}
	}
}

func TestLoadFailureBlocksUI(t *testing.T) {
	api := newFakeAPI()
	api.loadErr = errors.New("backend down")

	m := New(api)
	m.Width = 100
	m.Height = 40
	next, _ := m.Update(m.Init()())
	m = next.(Model)

	if m.LoadErr == nil {
		t.Fatal("load error not surfaced")
	}
	var loadErr *sync.LoadError
	if !errors.As(m.LoadErr, &loadErr) {
		t.Fatalf("got %T, want *sync.LoadError", m.LoadErr)
	}
	view := m.View()
	if !strings.Contains(view, "Failed to load data") {
		t.Errorf("blocking error screen missing:\n%s", view)
	}
	// No partial table behind the error.
	if strings.Contains(view, "Amelie") {
		t.Error("records must not render behind a load error")
	}

	// r retries: the fetch runs again and the table comes up.
	api.loadErr = nil
	m, cmd := press(t, m, "r")
	if !m.Loading || cmd == nil {
		t.Fatalf("retry should start a new load: loading=%v", m.Loading)
	}
	next, _ = m.Update(cmd())
	m = next.(Model)
	if m.LoadErr != nil || !strings.Contains(m.View(), "Amelie Laurent") {
		t.Fatalf("retry did not recover: err=%v", m.LoadErr)
	}
}

func TestCursorNavigation(t *testing.T) {
	m := loadedModel(t, newFakeAPI())

	m, _ = press(t, m, "j", "j")
	if m.Cursor != 2 {
		t.Fatalf("cursor: got %d, want 2", m.Cursor)
	}
	// Clamped at the last row.
	m, _ = press(t, m, "j")
	if m.Cursor != 2 {
		t.Fatalf("cursor past end: got %d, want 2", m.Cursor)
	}
	m, _ = press(t, m, "k", "k", "k", "k")
	if m.Cursor != 0 {
		t.Fatalf("cursor before start: got %d, want 0", m.Cursor)
	}
}

func TestCountryFilter(t *testing.T) {
	m := loadedModel(t, newFakeAPI())

	// Open the popover, select Spain, close.
	m, _ = press(t, m, "f", "j", " ", "esc")

	rows := m.visibleRecords()
	if len(rows) != 1 || rows[0].Name != "carlos mendez" {
		t.Fatalf("filtered rows: %+v", rows)
	}

	// Add France: union of selections.
	m, _ = press(t, m, "f", "k", " ", "esc")
	if got := len(m.visibleRecords()); got != 2 {
		t.Fatalf("union rows: got %d, want 2", got)
	}

	// C clears everything.
	m, _ = press(t, m, "C")
	if got := len(m.visibleRecords()); got != 3 {
		t.Fatalf("after clear: got %d, want 3", got)
	}
}

func TestFilterEmptyState(t *testing.T) {
	api := newFakeAPI()
	// A category no record belongs to.
	api.categories = append(api.categories, models.Category{ID: "c9", Name: "Norway"})
	m := loadedModel(t, api)

	m, _ = press(t, m, "f", "j", "j", "j", " ", "esc")
	if got := len(m.visibleRecords()); got != 0 {
		t.Fatalf("rows: got %d, want 0", got)
	}
	view := m.View()
	if !strings.Contains(view, "No customers match") {
		t.Errorf("empty state missing:\n%s", view)
	}
}

func TestSearchFilter(t *testing.T) {
	m := loadedModel(t, newFakeAPI())

	m, _ = press(t, m, "/", "c", "a", "r", "enter")
	rows := m.visibleRecords()
	if len(rows) != 1 || rows[0].ID != "2" {
		t.Fatalf("search rows: %+v", rows)
	}
}

func TestInlineCountryChange(t *testing.T) {
	api := newFakeAPI()
	m := loadedModel(t, api)

	// Open inline select on the first record; the cursor seeds on the
	// record's current country (France, index 0). Move to Spain, confirm.
	m, cmd := press(t, m, "c", "j", "enter")
	if cmd == nil {
		t.Fatal("confirm should produce a commit command")
	}

	// Optimistic value is visible before the write resolves.
	rec, _ := m.Store.Get("1")
	if rec.Country != "Spain" || rec.CountryID != "c2" {
		t.Fatalf("optimistic value: %+v", rec)
	}

	next, _ := m.Update(cmd())
	m = next.(Model)
	rec, _ = m.Store.Get("1")
	if rec.Country != "Spain" {
		t.Fatalf("confirmed value: %+v", rec)
	}
	if len(api.updates) != 1 || api.updates[0].CountryID != "c2" {
		t.Fatalf("write sent: %+v", api.updates)
	}
	if m.Notifier.Current() != nil {
		t.Fatalf("no notification on success, got %+v", m.Notifier.Current())
	}
}

func TestInlineCountryChangeRollsBackOnFailure(t *testing.T) {
	api := newFakeAPI()
	api.updateErr = errors.New("write refused")
	m := loadedModel(t, api)

	before, _ := m.Store.Get("1")
	m, cmd := press(t, m, "c", "j", "enter")
	next, _ := m.Update(cmd())
	m = next.(Model)

	after, _ := m.Store.Get("1")
	if after != before {
		t.Fatalf("rollback: got %+v, want %+v", after, before)
	}
	note := m.Notifier.Current()
	if note == nil || note.Kind != sync.NoteError {
		t.Fatalf("error banner missing: %+v", note)
	}
	if !strings.Contains(m.View(), "Failed to update country, reverted.") {
		t.Error("error banner not rendered")
	}
}

func TestInlineSameCountryIsNoOp(t *testing.T) {
	api := newFakeAPI()
	m := loadedModel(t, api)

	// Confirm the seeded selection (the record's current country).
	m, cmd := press(t, m, "c", "enter")
	if cmd != nil {
		t.Fatal("selecting the current country must not write")
	}
	if len(api.updates) != 0 {
		t.Fatalf("writes sent: %+v", api.updates)
	}
	if m.InlineOpen {
		t.Fatal("inline select should close")
	}
}

func TestEditFormOpensWithDraft(t *testing.T) {
	m := loadedModel(t, newFakeAPI())

	m, _ = press(t, m, "e")
	if !m.FormOpen || m.FormState == nil {
		t.Fatal("form did not open")
	}
	if m.Session.State() != sync.SessionOpen {
		t.Fatalf("session state: %v", m.Session.State())
	}
	if m.FormState.Name != "amelie laurent" || m.FormState.CountryID != "c1" {
		t.Fatalf("form seed: name=%q country=%q", m.FormState.Name, m.FormState.CountryID)
	}
}

func TestEditFormCancelDiscardsDraft(t *testing.T) {
	m := loadedModel(t, newFakeAPI())

	m, _ = press(t, m, "e")
	m.FormState.Name = "edited away"
	m, _ = press(t, m, "esc")

	if m.FormOpen {
		t.Fatal("form should close on esc")
	}
	if m.Session.State() != sync.SessionClosed {
		t.Fatalf("session state: %v", m.Session.State())
	}
	rec, _ := m.Store.Get("1")
	if rec.Name != "amelie laurent" {
		t.Fatalf("cancel changed the store: %+v", rec)
	}
}

func TestEditFormSave(t *testing.T) {
	api := newFakeAPI()
	m := loadedModel(t, api)

	m, _ = press(t, m, "e")
	m.FormState.Name = "amelie dubois"
	m.FormState.CountryID = "c2"

	m, cmd := press(t, m, "ctrl+s")
	if cmd == nil {
		t.Fatal("submit should produce a save command")
	}
	if m.Session.State() != sync.SessionSaving {
		t.Fatalf("session state: %v", m.Session.State())
	}

	next, _ := m.Update(cmd())
	m = next.(Model)

	if m.FormOpen {
		t.Fatal("form should close on success")
	}
	rec, _ := m.Store.Get("1")
	if rec.Name != "amelie dubois" || rec.Country != "Spain" || rec.CountryID != "c2" {
		t.Fatalf("saved record: %+v", rec)
	}
	note := m.Notifier.Current()
	if note == nil || note.Kind != sync.NoteToast {
		t.Fatalf("success toast missing: %+v", note)
	}
}

func TestEditFormSaveFailureKeepsDraft(t *testing.T) {
	api := newFakeAPI()
	api.updateErr = errors.New("save refused")
	m := loadedModel(t, api)

	m, _ = press(t, m, "e")
	m.FormState.Name = "amelie dubois"
	m, cmd := press(t, m, "ctrl+s")
	next, _ := m.Update(cmd())
	m = next.(Model)

	if !m.FormOpen {
		t.Fatal("form must stay open on failure")
	}
	if m.Session.State() != sync.SessionOpen {
		t.Fatalf("session state: %v", m.Session.State())
	}
	if m.Session.Draft().Name != "amelie dubois" {
		t.Fatalf("draft lost: %+v", m.Session.Draft())
	}
	rec, _ := m.Store.Get("1")
	if rec.Name != "amelie laurent" {
		t.Fatalf("failed save changed the store: %+v", rec)
	}
	if !strings.Contains(m.View(), "Failed to save. Please try again.") {
		t.Error("save error not rendered in the form")
	}
}

func TestEditBlockedWhileSaving(t *testing.T) {
	m := loadedModel(t, newFakeAPI())

	m, _ = press(t, m, "e")
	m.FormState.Name = "edited"
	m, _ = press(t, m, "ctrl+s")

	// Esc is ignored while the write is in flight.
	m, _ = press(t, m, "esc")
	if !m.FormOpen || m.Session.State() != sync.SessionSaving {
		t.Fatalf("saving form dismissed: open=%v state=%v", m.FormOpen, m.Session.State())
	}
	// So is a second submit.
	if _, cmd := press(t, m, "ctrl+s"); cmd != nil {
		t.Fatal("re-entrant submit should be refused")
	}
}

func TestHelpModal(t *testing.T) {
	m := loadedModel(t, newFakeAPI())

	m, _ = press(t, m, "?")
	if !m.HelpOpen {
		t.Fatal("help did not open")
	}
	m, _ = press(t, m, "esc")
	if m.HelpOpen {
		t.Fatal("help did not close")
	}
}

func TestQuit(t *testing.T) {
	m := loadedModel(t, newFakeAPI())
	_, cmd := press(t, m, "q")
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if msg := cmd(); msg != tea.Quit() {
		t.Fatalf("got %v, want quit", msg)
	}
}
