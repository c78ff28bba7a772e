package browser

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"taxdesk/internal/sync"
	"taxdesk/internal/version"
)

// Update routes messages by UI context: modals first, then the main table.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		if m.FormOpen && m.FormState != nil {
			m.FormState.Form = m.FormState.Form.WithWidth(formWidth(m.Width))
		}
		return m, nil

	case loadedMsg:
		m.Loading = false
		if msg.err != nil {
			m.LoadErr = msg.err
			return m, nil
		}
		if err := m.Store.Initialize(msg.records, msg.categories); err != nil {
			m.LoadErr = &sync.LoadError{Err: err}
			return m, nil
		}
		m.LoadErr = nil
		m.clampCursor()
		return m, nil

	case inlineResolvedMsg:
		// Rollback (if due) and notification land together here, before
		// the next render can observe either alone.
		m.Manager.Resolve(msg.res)
		return m, nil

	case saveResolvedMsg:
		m.Manager.ResolveEdit(m.Session, msg.res)
		if msg.res.Err != nil {
			// Session is back in its editable state with the draft
			// intact; make the form interactive again around the same
			// bound values.
			if m.FormState != nil {
				m.FormState.Rebuild(m.Store.Categories(), formWidth(m.Width))
			}
			return m, nil
		}
		m.closeForm()
		return m, toastTickCmd()

	case toastTickMsg:
		// Render pass drops the expired toast via Notifier.Current.
		return m, nil

	case version.UpdateAvailableMsg:
		m.UpdateNotice = "update available: " + msg.LatestVersion
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		return m.handleKey(msg)
	}

	if m.FormOpen && m.FormState != nil {
		return m.updateForm(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case m.HelpOpen:
		return m.handleHelpKey(msg)
	case m.FormOpen:
		return m.handleFormKey(msg)
	case m.FilterOpen:
		return m.handleFilterKey(msg)
	case m.InlineOpen:
		return m.handleInlineKey(msg)
	case m.SearchMode:
		return m.handleSearchKey(msg)
	case m.LoadErr != nil:
		return m.handleLoadErrKey(msg)
	case m.Loading:
		if msg.String() == "q" {
			return m, tea.Quit
		}
		return m, nil
	default:
		return m.handleMainKey(msg)
	}
}

func (m Model) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "?", "q":
		m.HelpOpen = false
	}
	return m, nil
}

func (m Model) handleLoadErrKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "r":
		return m.reload()
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) reload() (tea.Model, tea.Cmd) {
	m.Store.Reset()
	m.Loading = true
	m.LoadErr = nil
	m.Notifier.Clear()
	m.Cursor = 0
	return m, loadCmd(m.API)
}

func (m Model) handleMainKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		m.Cursor--
		m.clampCursor()
	case "down", "j":
		m.Cursor++
		m.clampCursor()
	case "f":
		m.FilterOpen = true
		m.FilterCursor = 0
	case "/":
		m.SearchMode = true
		m.SearchInput.SetValue(m.SearchQuery)
		m.SearchInput.Focus()
	case "C":
		m.clearFilters()
	case "c":
		if rec, ok := m.cursorRecord(); ok {
			m.InlineOpen = true
			m.InlineRecordID = rec.ID
			m.InlineCursor = m.inlineCursorFor(rec.CountryID)
		}
	case "e", "enter":
		if rec, ok := m.cursorRecord(); ok {
			if m.Session.Begin(rec, m.Store.Categories()) {
				m.openForm()
			}
		}
	case "r":
		return m.reload()
	case "?":
		m.HelpOpen = true
		m.helpView = renderHelp(m.Width)
	}
	return m, nil
}

// inlineCursorFor seeds the inline select cursor on the record's current
// country.
func (m Model) inlineCursorFor(countryID string) int {
	for i, c := range m.Store.Categories() {
		if c.ID == countryID {
			return i
		}
	}
	return 0
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	categories := m.Store.Categories()
	switch msg.String() {
	case "esc", "f", "q":
		m.FilterOpen = false
		m.clampCursor()
	case "up", "k":
		if m.FilterCursor > 0 {
			m.FilterCursor--
		}
	case "down", "j":
		if m.FilterCursor < len(categories)-1 {
			m.FilterCursor++
		}
	case " ", "enter":
		if m.FilterCursor < len(categories) {
			id := categories[m.FilterCursor].ID
			if m.Selected[id] {
				delete(m.Selected, id)
			} else {
				m.Selected[id] = true
			}
			m.clampCursor()
		}
	case "c":
		m.Selected = make(map[string]bool)
		m.clampCursor()
	}
	return m, nil
}

func (m Model) handleInlineKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	categories := m.Store.Categories()
	switch msg.String() {
	case "esc", "q":
		m.InlineOpen = false
	case "up", "k":
		if m.InlineCursor > 0 {
			m.InlineCursor--
		}
	case "down", "j":
		if m.InlineCursor < len(categories)-1 {
			m.InlineCursor++
		}
	case " ", "enter":
		if m.InlineCursor >= len(categories) {
			return m, nil
		}
		chosen := categories[m.InlineCursor]
		recordID := m.InlineRecordID
		m.InlineOpen = false
		if rec, ok := m.Store.Get(recordID); ok && rec.CountryID == chosen.ID {
			// Selecting the current country is nothing to do.
			return m, nil
		}
		commit, ok := m.Manager.ApplyCountryChange(recordID, chosen.ID)
		if !ok {
			return m, nil
		}
		return m, commitCmd(commit)
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.SearchMode = false
		m.SearchInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.SearchInput, cmd = m.SearchInput.Update(msg)
	m.SearchQuery = m.SearchInput.Value()
	m.clampCursor()
	return m, cmd
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	saving := m.Session.State() == sync.SessionSaving

	switch msg.Type {
	case tea.KeyEsc:
		if saving {
			// The write runs to completion; there is no abort path.
			return m, nil
		}
		m.Session.Cancel()
		m.closeForm()
		return m, nil
	case tea.KeyCtrlS:
		if saving {
			return m, nil
		}
		return m.submitForm()
	}

	if saving {
		return m, nil
	}
	return m.updateForm(msg)
}

// updateForm forwards a message to the huh form and submits on completion.
func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.FormState.Form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.FormState.Form = f
	}
	if m.FormState.Form.State == huh.StateCompleted {
		return m.submitForm()
	}
	return m, cmd
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	m.Session.SetName(m.FormState.Name)
	m.Session.SetCountry(m.FormState.CountryID)

	commit, ok := m.Manager.CommitEdit(m.Session)
	if !ok {
		// Blank name: commit is simply unavailable. Rebuild the form so
		// it is interactive again after huh marked it completed.
		m.FormState.Rebuild(m.Store.Categories(), formWidth(m.Width))
		return m, nil
	}
	return m, saveCmd(commit)
}
