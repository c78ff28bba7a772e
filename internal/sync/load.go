package sync

import (
	"taxdesk/internal/models"
	"taxdesk/internal/store"
)

// Reader is the remote store surface the initial load consumes.
type Reader interface {
	ListRecords() ([]models.Record, error)
	ListCategories() ([]models.Category, error)
}

// FetchAll performs the two reads of the joint load without touching any
// local state. Records and categories arrive together or not at all: any
// failure yields a LoadError and discards whatever did arrive. Callers
// that run fetches off the main flow of control use this and install the
// result themselves.
func FetchAll(api Reader) ([]models.Record, []models.Category, error) {
	records, err := api.ListRecords()
	if err != nil {
		return nil, nil, &LoadError{Err: err}
	}
	categories, err := api.ListCategories()
	if err != nil {
		return nil, nil, &LoadError{Err: err}
	}
	return records, categories, nil
}

// LoadAll performs the joint initial fetch and installs it in the store.
// Any failure leaves the store untouched and returns a LoadError, so no
// partial UI can ever render.
func LoadAll(api Reader, st *store.Store) error {
	records, categories, err := FetchAll(api)
	if err != nil {
		return err
	}
	if err := st.Initialize(records, categories); err != nil {
		return &LoadError{Err: err}
	}
	return nil
}
