package app

import "magic_villa/internal/domain"

/********** entity <-> transfer shapes, field by field **********/

func ToDTO(v domain.Villa) VillaDTO {
	return VillaDTO{
		ID:        v.ID,
		Name:      v.Name,
		Details:   v.Details,
		Rate:      v.Rate,
		Sqft:      v.Sqft,
		Occupancy: v.Occupancy,
		ImageURL:  v.ImageURL,
		Amenity:   v.Amenity,
	}
}

func ToDTOs(vs []domain.Villa) []VillaDTO {
	out := make([]VillaDTO, 0, len(vs))
	for _, v := range vs {
		out = append(out, ToDTO(v))
	}
	return out
}

func ToUpdateDTO(v domain.Villa) VillaUpdateDTO {
	return VillaUpdateDTO{
		ID:        v.ID,
		Name:      v.Name,
		Details:   v.Details,
		Rate:      v.Rate,
		Sqft:      v.Sqft,
		Occupancy: v.Occupancy,
		ImageURL:  v.ImageURL,
		Amenity:   v.Amenity,
	}
}

// FromCreate leaves ID and timestamps for the store to assign.
func FromCreate(c VillaCreateDTO) domain.Villa {
	return domain.Villa{
		Name:      c.Name,
		Details:   c.Details,
		Rate:      c.Rate,
		Sqft:      c.Sqft,
		Occupancy: c.Occupancy,
		ImageURL:  c.ImageURL,
		Amenity:   c.Amenity,
	}
}

func FromUpdate(u VillaUpdateDTO) domain.Villa {
	return domain.Villa{
		ID:        u.ID,
		Name:      u.Name,
		Details:   u.Details,
		Rate:      u.Rate,
		Sqft:      u.Sqft,
		Occupancy: u.Occupancy,
		ImageURL:  u.ImageURL,
		Amenity:   u.Amenity,
	}
}
