package sync

import (
	"strings"

	"taxdesk/internal/models"
)

// SessionState is the edit session's position in its lifecycle.
type SessionState int

const (
	SessionClosed SessionState = iota
	SessionOpen
	SessionSaving
)

// String returns a display name for the state.
func (s SessionState) String() string {
	switch s {
	case SessionOpen:
		return "open"
	case SessionSaving:
		return "saving"
	default:
		return "closed"
	}
}

// Draft is the staged field values of an open edit session.
type Draft struct {
	Name      string
	CountryID string
}

// EditSession stages a full-record edit behind an explicit commit,
// independent of the inline optimistic path. At most one is meaningful at
// a time; Begin refuses to open over an active session. The zero value is
// a closed session.
type EditSession struct {
	state      SessionState
	base       models.Record
	draft      Draft
	categories []models.Category
}

// State returns the session's current lifecycle state.
func (s *EditSession) State() SessionState { return s.state }

// Base returns the record the session was opened on.
func (s *EditSession) Base() models.Record { return s.base }

// Draft returns the staged field values.
func (s *EditSession) Draft() Draft { return s.draft }

// Begin opens the session on a record. Only valid from the closed state;
// opening while open or saving changes nothing and returns false. The
// draft country id prefers the record's own CountryID, falls back to a
// lookup by display name, and stays unset when neither resolves.
func (s *EditSession) Begin(rec models.Record, categories []models.Category) bool {
	if s.state != SessionClosed {
		return false
	}

	countryID := rec.CountryID
	if countryID == "" && rec.Country != "" {
		if c, ok := models.FindCategoryByName(categories, rec.Country); ok {
			countryID = c.ID
		}
	}

	s.state = SessionOpen
	s.base = rec
	s.draft = Draft{Name: rec.Name, CountryID: countryID}
	s.categories = categories
	return true
}

// SetName stages a new name. Draft-only; valid while open.
func (s *EditSession) SetName(name string) bool {
	if s.state != SessionOpen {
		return false
	}
	s.draft.Name = name
	return true
}

// SetCountry stages a new country selection. Draft-only; valid while open.
func (s *EditSession) SetCountry(categoryID string) bool {
	if s.state != SessionOpen {
		return false
	}
	s.draft.CountryID = categoryID
	return true
}

// CanCommit reports whether commit is currently permitted: the session is
// open and the staged name is non-blank. Validation happens here at the
// boundary, not as a server round trip.
func (s *EditSession) CanCommit() bool {
	return s.state == SessionOpen && strings.TrimSpace(s.draft.Name) != ""
}

// Commit transitions to saving and returns the full-record patch to send.
// Re-entrant commits and commits with a blank name are refused.
func (s *EditSession) Commit() (models.Record, bool) {
	if !s.CanCommit() {
		return models.Record{}, false
	}

	patch := s.base
	patch.Name = s.draft.Name
	if resolved, ok := models.FindCategory(s.categories, s.draft.CountryID); ok {
		patch.Country = resolved.Name
		patch.CountryID = resolved.ID
	}

	s.state = SessionSaving
	return patch, true
}

// ResolveSave applies the save outcome. Success closes the session and
// discards the draft; failure returns to the open state with the draft
// intact so typed input survives a transient failure.
func (s *EditSession) ResolveSave(saved models.Record, err error) {
	if s.state != SessionSaving {
		return
	}
	if err != nil {
		s.state = SessionOpen
		return
	}
	s.state = SessionClosed
	s.base = models.Record{}
	s.draft = Draft{}
	s.categories = nil
}

// Cancel discards the draft and closes the session. Valid from the open
// state only; a save in flight runs to completion.
func (s *EditSession) Cancel() bool {
	if s.state != SessionOpen {
		return false
	}
	s.state = SessionClosed
	s.base = models.Record{}
	s.draft = Draft{}
	s.categories = nil
	return true
}
