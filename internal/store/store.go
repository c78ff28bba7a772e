// Package store holds the client-side authoritative cache of records and
// categories. It is the single mutable shared resource of the app: every
// mutation goes through it, always as a full replace-by-id, and always
// from the one event-driven flow of control, so it needs no locking.
package store

import (
	"errors"
	"fmt"

	"taxdesk/internal/models"
)

var (
	// ErrAlreadyLoaded is returned when Initialize is called twice in
	// one load cycle.
	ErrAlreadyLoaded = errors.New("store already initialized")
	// ErrNotFound is returned by Replace for an unknown record id.
	ErrNotFound = errors.New("record not found")
)

// Store is the in-memory record/category cache. Records keep their
// insertion order from the initial load; byID indexes into the slice.
type Store struct {
	records    []models.Record
	byID       map[string]int
	categories []models.Category
	catByID    map[string]int
	loaded     bool
	revision   uint64
}

// New creates an empty, uninitialized store.
func New() *Store {
	return &Store{}
}

// Initialize replaces the store contents wholesale. It is callable exactly
// once per load cycle; the load result arrives as a joint success, so nil
// records or nil categories means the load failed upstream and the store
// must stay untouched.
func (s *Store) Initialize(records []models.Record, categories []models.Category) error {
	if s.loaded {
		return ErrAlreadyLoaded
	}
	if records == nil || categories == nil {
		return errors.New("initialize: records and categories are both required")
	}

	s.records = make([]models.Record, len(records))
	copy(s.records, records)
	s.byID = make(map[string]int, len(records))
	for i, r := range s.records {
		s.byID[r.ID] = i
	}

	s.categories = make([]models.Category, len(categories))
	copy(s.categories, categories)
	s.catByID = make(map[string]int, len(categories))
	for i, c := range s.categories {
		s.catByID[c.ID] = i
	}

	s.loaded = true
	s.revision++
	return nil
}

// Reset clears the store so a new load cycle may Initialize it again.
func (s *Store) Reset() {
	s.records = nil
	s.byID = nil
	s.categories = nil
	s.catByID = nil
	s.loaded = false
	s.revision++
}

// Loaded reports whether the store holds a completed load.
func (s *Store) Loaded() bool {
	return s.loaded
}

// Replace swaps the record with matching id for newRecord atomically.
func (s *Store) Replace(id string, newRecord models.Record) error {
	i, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("replace %q: %w", id, ErrNotFound)
	}
	if newRecord.ID != id {
		return fmt.Errorf("replace %q: record carries id %q", id, newRecord.ID)
	}
	s.records[i] = newRecord
	s.revision++
	return nil
}

// Get returns the record with the given id.
func (s *Store) Get(id string) (models.Record, bool) {
	i, ok := s.byID[id]
	if !ok {
		return models.Record{}, false
	}
	return s.records[i], true
}

// Records returns the records in insertion order. The returned slice is a
// copy; callers may not mutate store state except through Replace.
func (s *Store) Records() []models.Record {
	out := make([]models.Record, len(s.records))
	copy(out, s.records)
	return out
}

// Categories returns the categories in load order as a copy.
func (s *Store) Categories() []models.Category {
	out := make([]models.Category, len(s.categories))
	copy(out, s.categories)
	return out
}

// Category returns the category with the given id.
func (s *Store) Category(id string) (models.Category, bool) {
	i, ok := s.catByID[id]
	if !ok {
		return models.Category{}, false
	}
	return s.categories[i], true
}

// CategoryByName returns the first category with the given display name.
func (s *Store) CategoryByName(name string) (models.Category, bool) {
	return models.FindCategoryByName(s.categories, name)
}

// Revision increments on every mutation; views use it to know when to
// recompute derived data.
func (s *Store) Revision() uint64 {
	return s.revision
}

// Len returns the number of records held.
func (s *Store) Len() int {
	return len(s.records)
}
