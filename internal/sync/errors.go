package sync

import "fmt"

// LoadError marks a failed initial fetch of records or categories. It is
// fatal to the load cycle: no partial state is ever installed behind it.
type LoadError struct {
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load failed: %v", e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// UpdateFailedError marks a failed inline optimistic write. The store has
// already been rolled back by the time this surfaces.
type UpdateFailedError struct {
	RecordID string
	Err      error
}

func (e *UpdateFailedError) Error() string {
	return fmt.Sprintf("update record %s: %v", e.RecordID, e.Err)
}

func (e *UpdateFailedError) Unwrap() error { return e.Err }

// SaveFailedError marks a failed modal commit. The edit session is back in
// its editable state with the draft intact when this surfaces.
type SaveFailedError struct {
	RecordID string
	Err      error
}

func (e *SaveFailedError) Error() string {
	return fmt.Sprintf("save record %s: %v", e.RecordID, e.Err)
}

func (e *SaveFailedError) Unwrap() error { return e.Err }
