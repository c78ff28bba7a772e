package browser

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"

	"taxdesk/internal/models"
	"taxdesk/internal/sync"
)

var errNameRequired = errors.New("name is required")

// FormState holds the edit modal's huh form and its bound values. It
// mirrors the edit session's draft; the session stays authoritative and
// receives the values back on submit.
type FormState struct {
	Form      *huh.Form
	Name      string
	CountryID string
}

// NewFormState creates a form seeded from the session draft.
func NewFormState(draft sync.Draft, categories []models.Category, width int) *FormState {
	fs := &FormState{Name: draft.Name, CountryID: draft.CountryID}
	fs.buildForm(categories, width)
	return fs
}

// Rebuild recreates the form around the current bound values. Used after
// a failed save, so typed input survives while the form becomes
// interactive again.
func (fs *FormState) Rebuild(categories []models.Category, width int) {
	fs.buildForm(categories, width)
}

func (fs *FormState) buildForm(categories []models.Category, width int) {
	countryOptions := make([]huh.Option[string], 0, len(categories))
	for _, c := range categories {
		countryOptions = append(countryOptions, huh.NewOption(c.Name, c.ID))
	}

	fs.Form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&fs.Name).
				Placeholder("Customer name...").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errNameRequired
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Country").
				Options(countryOptions...).
				Value(&fs.CountryID),
		),
	).WithWidth(width).WithShowHelp(false)
}

// formWidth sizes the modal form to the window.
func formWidth(windowWidth int) int {
	w := windowWidth - 12
	if w > 60 {
		w = 60
	}
	if w < 30 {
		w = 30
	}
	return w
}

// openForm opens the edit modal over the session's current draft.
func (m *Model) openForm() {
	m.FormState = NewFormState(m.Session.Draft(), m.Store.Categories(), formWidth(m.Width))
	m.FormOpen = true
}

// closeForm tears the modal down.
func (m *Model) closeForm() {
	m.FormOpen = false
	m.FormState = nil
}
