package favorites

import (
	"time"

	"github.com/ADEB21/weather-app/pkg/db/models"
)

// FavoriteDTO is the public shape of a saved location.
type FavoriteDTO struct {
	ID        int64     `json:"id"`
	City      *string   `json:"city"`
	Country   *string   `json:"country"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	AddedAt   time.Time `json:"addedAt"`
}

// CheckResultDTO answers whether a location is already saved.
type CheckResultDTO struct {
	IsFavorite bool   `json:"isFavorite"`
	FavoriteID *int64 `json:"favoriteId"`
}

func toDTO(m models.Favorite) FavoriteDTO {
	return FavoriteDTO{
		ID:        m.ID,
		City:      m.City,
		Country:   m.Country,
		Latitude:  m.Latitude,
		Longitude: m.Longitude,
		AddedAt:   m.AddedAt.UTC(),
	}
}
