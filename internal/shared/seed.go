package shared

import "magic_villa/internal/domain"

// SeedVillas is the starter catalogue loaded by the seeder and the in-memory store.
var SeedVillas = []domain.Villa{
	{ID: 1, Name: "Pool View", Occupancy: 4, Sqft: 100},
	{ID: 2, Name: "Beach View", Occupancy: 3, Sqft: 100},
}
