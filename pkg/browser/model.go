// Package browser is the interactive record browser: a table over the
// remote record store with country filtering, inline country changes, and
// a modal edit form. It is a thin shell; all state reconciliation lives
// in internal/sync and internal/store.
package browser

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taxdesk/internal/filter"
	"taxdesk/internal/models"
	"taxdesk/internal/store"
	"taxdesk/internal/sync"
	"taxdesk/internal/version"
)

// RemoteAPI is the remote store surface the browser consumes: the joint
// load reads plus the record write.
type RemoteAPI interface {
	sync.Reader
	sync.Writer
}

// Model is the main Bubble Tea model for the record browser.
type Model struct {
	API      RemoteAPI
	Store    *store.Store
	Manager  *sync.Manager
	Notifier *sync.Notifier
	Session  *sync.EditSession

	// Window dimensions
	Width  int
	Height int

	// Load cycle state
	Loading bool
	LoadErr error

	// Table state
	Cursor int // index into the visible rows

	// Country filter state
	Selected     map[string]bool // active category-id selection
	FilterOpen   bool
	FilterCursor int

	// Inline country select state
	InlineOpen     bool
	InlineCursor   int
	InlineRecordID string

	// Name search state
	SearchMode  bool
	SearchQuery string
	SearchInput textinput.Model

	// Edit modal state
	FormOpen  bool
	FormState *FormState

	// Help modal state
	HelpOpen bool
	helpView string

	// Release check state
	Version      string
	UpdateNotice string
}

// New creates a browser model over the given API client.
func New(api RemoteAPI) Model {
	st := store.New()
	notifier := sync.NewNotifier()

	input := textinput.New()
	input.Placeholder = "search by name..."
	input.Prompt = "/ "
	input.CharLimit = 80

	return Model{
		API:      api,
		Store:    st,
		Manager:  sync.NewManager(st, api, notifier),
		Notifier: notifier,
		Session:  &sync.EditSession{},
		Loading:  true,
		Selected: make(map[string]bool),

		SearchInput: input,
	}
}

// Init starts the initial load and a background release check.
func (m Model) Init() tea.Cmd {
	if m.Version != "" {
		return tea.Batch(loadCmd(m.API), version.CheckAsync(m.Version))
	}
	return loadCmd(m.API)
}

// visibleRecords derives the rows the table shows: the country filter
// first, then the name query. Both passes are pure and order-preserving.
func (m Model) visibleRecords() []models.Record {
	rows := filter.Visible(m.Store.Records(), m.Store.Categories(), m.Selected)
	return filter.MatchName(rows, m.SearchQuery)
}

// clampCursor keeps the cursor on a valid visible row.
func (m *Model) clampCursor() {
	n := len(m.visibleRecords())
	if m.Cursor >= n {
		m.Cursor = n - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

// cursorRecord returns the record under the cursor.
func (m Model) cursorRecord() (models.Record, bool) {
	rows := m.visibleRecords()
	if m.Cursor < 0 || m.Cursor >= len(rows) {
		return models.Record{}, false
	}
	return rows[m.Cursor], true
}

// clearFilters drops the country selection and the name query.
func (m *Model) clearFilters() {
	m.Selected = make(map[string]bool)
	m.SearchQuery = ""
	m.SearchInput.SetValue("")
	m.clampCursor()
}
