package history

import (
	"time"

	"github.com/ADEB21/weather-app/pkg/db/models"
)

// EntryDTO is the public shape of a search history row.
type EntryDTO struct {
	ID         int64     `json:"id"`
	City       *string   `json:"city"`
	Country    *string   `json:"country"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	SearchedAt time.Time `json:"searchedAt"`
}

// ListParams selects which history rows are returned.
type ListParams struct {
	Limit int
	// Unique keeps only the latest row per exact (latitude, longitude).
	Unique bool
}

func toDTO(m models.SearchHistory) EntryDTO {
	return EntryDTO{
		ID:         m.ID,
		City:       m.City,
		Country:    m.Country,
		Latitude:   m.Latitude,
		Longitude:  m.Longitude,
		SearchedAt: m.SearchedAt.UTC(),
	}
}
