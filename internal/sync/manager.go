// Package sync reconciles local optimistic state with the remote
// authoritative store. The manager applies speculative changes to the
// record store immediately, issues the corresponding remote write, and
// confirms or compensates based on the outcome. All store mutation
// happens synchronously on the caller's flow of control; only the commit
// closures returned here suspend on the network.
package sync

import (
	"taxdesk/internal/models"
	"taxdesk/internal/store"
)

// Writer is the remote store surface the manager writes through.
type Writer interface {
	UpdateRecord(id string, rec models.Record) (models.Record, error)
}

// Manager is the optimistic mutation manager.
type Manager struct {
	store    *store.Store
	remote   Writer
	notifier *Notifier
}

// NewManager creates a manager over the given store and remote writer.
func NewManager(st *store.Store, remote Writer, notifier *Notifier) *Manager {
	return &Manager{store: st, remote: remote, notifier: notifier}
}

// Store returns the record store the manager mutates.
func (m *Manager) Store() *store.Store { return m.store }

// Notifier returns the manager's notification stream.
func (m *Manager) Notifier() *Notifier { return m.notifier }

// Resolution is the outcome of one inline write, carrying the snapshot
// its own invocation captured. Rollback uses this snapshot, never a
// shared "current previous": an earlier failure must not revert a change
// it had nothing to do with.
type Resolution struct {
	RecordID   string
	Previous   models.Record
	Optimistic models.Record
	Err        error
}

// Commit performs the remote write for one optimistic mutation and
// returns its resolution. It is the only suspending part of the inline
// workflow; feed the result back through Resolve.
type Commit func() Resolution

// ApplyCountryChange starts the inline country-change workflow: the store
// reflects the new country immediately, and the returned commit sends the
// write. Unknown record or category ids are a silent no-op (the editing
// UI never offers unknown ids), reported via ok=false with no state
// change.
func (m *Manager) ApplyCountryChange(recordID, categoryID string) (Commit, bool) {
	category, ok := m.store.Category(categoryID)
	if !ok {
		return nil, false
	}
	previous, ok := m.store.Get(recordID)
	if !ok {
		return nil, false
	}

	optimistic := previous
	optimistic.Country = category.Name
	optimistic.CountryID = category.ID

	// Replace cannot fail here: Get just found the id and nothing else
	// runs between the two calls.
	_ = m.store.Replace(recordID, optimistic)

	// A new action supersedes a stale error.
	m.notifier.ClearError()

	remote := m.remote
	return func() Resolution {
		_, err := remote.UpdateRecord(recordID, optimistic)
		return Resolution{
			RecordID:   recordID,
			Previous:   previous,
			Optimistic: optimistic,
			Err:        err,
		}
	}, true
}

// Resolve applies the outcome of an inline write. On success the store
// already holds the confirmed value and nothing further happens. On
// failure the mutation's own delta is compensated: the country fields
// revert to the captured snapshot only if the store still holds this
// mutation's optimistic values. A later write to the same record wins and
// is left untouched, but the failure is still surfaced. Rollback and
// notification land in one synchronous step.
func (m *Manager) Resolve(res Resolution) {
	if res.Err == nil {
		return
	}

	cur, ok := m.store.Get(res.RecordID)
	if ok && cur.Country == res.Optimistic.Country && cur.CountryID == res.Optimistic.CountryID {
		cur.Country = res.Previous.Country
		cur.CountryID = res.Previous.CountryID
		_ = m.store.Replace(res.RecordID, cur)
	}

	m.notifier.SetError(
		&UpdateFailedError{RecordID: res.RecordID, Err: res.Err},
		"Failed to update country, reverted.",
	)
}

// SetCountry runs the full inline workflow synchronously: apply, commit,
// resolve. Used by the one-shot CLI path. ok=false means the record or
// category id was unknown and nothing changed.
func (m *Manager) SetCountry(recordID, categoryID string) (err error, ok bool) {
	commit, ok := m.ApplyCountryChange(recordID, categoryID)
	if !ok {
		return nil, false
	}
	res := commit()
	m.Resolve(res)
	if res.Err != nil {
		return &UpdateFailedError{RecordID: recordID, Err: res.Err}, true
	}
	return nil, true
}

// SaveResolution is the outcome of one modal commit.
type SaveResolution struct {
	RecordID string
	Saved    models.Record
	Err      error
}

// SaveCommit performs the remote write for a staged modal edit.
type SaveCommit func() SaveResolution

// CommitEdit transitions the session to its saving state and returns the
// commit that sends the patch. ok=false when the session refuses the
// commit (not open, or the draft name is blank).
func (m *Manager) CommitEdit(sess *EditSession) (SaveCommit, bool) {
	patch, ok := sess.Commit()
	if !ok {
		return nil, false
	}
	m.notifier.ClearError()

	remote := m.remote
	return func() SaveResolution {
		saved, err := remote.UpdateRecord(patch.ID, patch)
		return SaveResolution{RecordID: patch.ID, Saved: saved, Err: err}
	}, true
}

// ResolveEdit applies the outcome of a modal commit. Success installs the
// server-confirmed record, closes the session, and shows the success
// toast. Failure returns the session to its editable state with the draft
// intact so the operator loses nothing typed.
func (m *Manager) ResolveEdit(sess *EditSession, res SaveResolution) {
	if res.Err != nil {
		sess.ResolveSave(models.Record{}, res.Err)
		m.notifier.SetError(
			&SaveFailedError{RecordID: res.RecordID, Err: res.Err},
			"Failed to save. Please try again.",
		)
		return
	}

	sess.ResolveSave(res.Saved, nil)
	_ = m.store.Replace(res.RecordID, res.Saved)
	m.notifier.ShowToast("Customer updated successfully.")
}
