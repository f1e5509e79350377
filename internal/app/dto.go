package app

// VillaDTO is the read shape returned to clients.
type VillaDTO struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Details   string  `json:"details"`
	Rate      float64 `json:"rate"`
	Sqft      int     `json:"sqft"`
	Occupancy int     `json:"occupancy"`
	ImageURL  string  `json:"imageUrl"`
	Amenity   string  `json:"amenity"`
}

type VillaCreateDTO struct {
	Name      string  `json:"name" validate:"required,notblank,max=30"`
	Details   string  `json:"details"`
	Rate      float64 `json:"rate" validate:"gte=0"`
	Sqft      int     `json:"sqft" validate:"gte=0"`
	Occupancy int     `json:"occupancy" validate:"gte=0"`
	ImageURL  string  `json:"imageUrl"`
	Amenity   string  `json:"amenity"`
}

// VillaUpdateDTO is the full-replace shape, and the projection JSON Patch documents
// are applied to.
type VillaUpdateDTO struct {
	ID        int64   `json:"id" validate:"required,gt=0"`
	Name      string  `json:"name" validate:"required,notblank,max=30"`
	Details   string  `json:"details"`
	Rate      float64 `json:"rate" validate:"gte=0"`
	Sqft      int     `json:"sqft" validate:"gte=0"`
	Occupancy int     `json:"occupancy" validate:"gte=0"`
	ImageURL  string  `json:"imageUrl"`
	Amenity   string  `json:"amenity"`
}
