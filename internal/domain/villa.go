package domain

import "time"

type Villa struct {
	ID          int64
	Name        string
	Details     string
	Rate        float64
	Sqft        int
	Occupancy   int
	ImageURL    string
	Amenity     string
	CreatedDate time.Time // set by the store on create
	UpdatedDate time.Time // set by the store on create and update
}

// Filter narrows repository reads. A nil Filter (or one with no fields set) matches
// every record; when both fields are set they are ANDed.
type Filter struct {
	ID   *int64
	Name *string // case-insensitive equality
}

func ByID(id int64) *Filter { return &Filter{ID: &id} }

func ByName(name string) *Filter { return &Filter{Name: &name} }

func (f *Filter) Empty() bool { return f == nil || (f.ID == nil && f.Name == nil) }
