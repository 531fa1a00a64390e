package favorites

import (
	"context"
	"time"

	"github.com/ADEB21/weather-app/pkg/db"
	"github.com/ADEB21/weather-app/pkg/db/models"
	pkgerrors "github.com/ADEB21/weather-app/pkg/errors"
	"github.com/ADEB21/weather-app/pkg/types"
)

const (
	msgCoordinatesRequired      = "latitude and longitude are required"
	msgCoordinateParamsRequired = "latitude and longitude parameters are required"
	msgAlreadyFavorite          = "This location is already in favorites"
	msgNotFound                 = "Favorite not found"
)

type repository interface {
	List(ctx context.Context) ([]models.Favorite, error)
	FindByCoordinates(ctx context.Context, latitude, longitude float64) (*models.Favorite, error)
	Create(ctx context.Context, fav *models.Favorite) error
	Delete(ctx context.Context, id int64) (bool, error)
}

// ServiceParams groups dependencies for the favorites service.
type ServiceParams struct {
	Repo repository
	// Now defaults to time.Now.
	Now func() time.Time
}

// Service exposes business rules for saved locations.
type Service interface {
	List(ctx context.Context) ([]FavoriteDTO, error)
	Create(ctx context.Context, input types.LocationInput) (FavoriteDTO, error)
	Check(ctx context.Context, latitude, longitude *float64) (CheckResultDTO, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo repository
	now  func() time.Time
}

// NewService builds a favorites service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "favorites repo is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{repo: params.Repo, now: now}, nil
}

func (s *service) List(ctx context.Context) ([]FavoriteDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list favorites")
	}
	out := make([]FavoriteDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDTO(row))
	}
	return out, nil
}

// Create saves a new location. The lookup before insert is best effort; the
// unique index on (latitude, longitude) settles concurrent creates.
func (s *service) Create(ctx context.Context, input types.LocationInput) (FavoriteDTO, error) {
	if !input.HasCoordinates() {
		return FavoriteDTO{}, pkgerrors.New(pkgerrors.CodeValidation, msgCoordinatesRequired)
	}
	lat, lon := *input.Latitude, *input.Longitude

	existing, err := s.repo.FindByCoordinates(ctx, lat, lon)
	if err != nil {
		return FavoriteDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup favorite")
	}
	if existing != nil {
		return FavoriteDTO{}, pkgerrors.New(pkgerrors.CodeConflict, msgAlreadyFavorite).WithData(toDTO(*existing))
	}

	fav := models.Favorite{
		City:      input.City,
		Country:   input.Country,
		Latitude:  lat,
		Longitude: lon,
		AddedAt:   s.now().UTC(),
	}
	if err := s.repo.Create(ctx, &fav); err != nil {
		if db.IsUniqueViolation(err, "") {
			conflict := pkgerrors.Wrap(pkgerrors.CodeConflict, err, msgAlreadyFavorite)
			if winner, findErr := s.repo.FindByCoordinates(ctx, lat, lon); findErr == nil && winner != nil {
				conflict.WithData(toDTO(*winner))
			}
			return FavoriteDTO{}, conflict
		}
		return FavoriteDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create favorite")
	}
	return toDTO(fav), nil
}

func (s *service) Check(ctx context.Context, latitude, longitude *float64) (CheckResultDTO, error) {
	if latitude == nil || longitude == nil {
		return CheckResultDTO{}, pkgerrors.New(pkgerrors.CodeValidation, msgCoordinateParamsRequired)
	}
	existing, err := s.repo.FindByCoordinates(ctx, *latitude, *longitude)
	if err != nil {
		return CheckResultDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check favorite")
	}
	if existing == nil {
		return CheckResultDTO{IsFavorite: false}, nil
	}
	id := existing.ID
	return CheckResultDTO{IsFavorite: true, FavoriteID: &id}, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete favorite")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, msgNotFound)
	}
	return nil
}
