package models

import (
	"time"
)

// Gender represents a record's gender field
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Record is a customer/tax entry as held client-side. Country and
// CountryID are deliberately denormalized: CountryID is the foreign key
// into the category set, Country is the matching display name kept
// alongside so legacy display paths never need a lookup. Every write path
// must set both together.
type Record struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Gender      Gender    `json:"gender"`
	Country     string    `json:"country"`
	CountryID   string    `json:"countryId"`
	RequestDate time.Time `json:"requestDate"`
}

// Category is a country reference entity. Categories are immutable once
// loaded; ids are unique per the remote store.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FindCategory returns the category with the given id, or false.
func FindCategory(categories []Category, id string) (Category, bool) {
	for _, c := range categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// FindCategoryByName returns the first category whose display name equals
// name, or false.
func FindCategoryByName(categories []Category, name string) (Category, bool) {
	for _, c := range categories {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}
