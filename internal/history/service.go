package history

import (
	"context"
	"time"

	"github.com/ADEB21/weather-app/pkg/db/models"
	pkgerrors "github.com/ADEB21/weather-app/pkg/errors"
	"github.com/ADEB21/weather-app/pkg/types"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100

	msgCoordinatesRequired = "latitude and longitude are required"
	msgNotFound            = "Search history not found"
)

type repository interface {
	ListRecent(ctx context.Context, limit int) ([]models.SearchHistory, error)
	ListLatestPerLocation(ctx context.Context, limit int) ([]models.SearchHistory, error)
	Create(ctx context.Context, entry *models.SearchHistory) error
	Delete(ctx context.Context, id int64) (bool, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// ServiceParams groups dependencies for the history service.
type ServiceParams struct {
	Repo repository
	// Now defaults to time.Now.
	Now func() time.Time
}

// Service exposes the search history operations.
type Service interface {
	List(ctx context.Context, params ListParams) ([]EntryDTO, error)
	Create(ctx context.Context, input types.LocationInput) (EntryDTO, error)
	Delete(ctx context.Context, id int64) error
	Clear(ctx context.Context) (int64, error)
}

type service struct {
	repo repository
	now  func() time.Time
}

// NewService builds a history service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "history repo is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{repo: params.Repo, now: now}, nil
}

func (s *service) List(ctx context.Context, params ListParams) ([]EntryDTO, error) {
	limit := params.Limit
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit < 1 || limit > MaxLimit {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "limit out of range").
			WithDetails(map[string]any{"field": "limit", "min": 1, "max": MaxLimit})
	}

	var (
		rows []models.SearchHistory
		err  error
	)
	if params.Unique {
		rows, err = s.repo.ListLatestPerLocation(ctx, limit)
	} else {
		rows, err = s.repo.ListRecent(ctx, limit)
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list search history")
	}

	out := make([]EntryDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDTO(row))
	}
	return out, nil
}

// Create always inserts; repeated searches for one location are kept.
func (s *service) Create(ctx context.Context, input types.LocationInput) (EntryDTO, error) {
	if !input.HasCoordinates() {
		return EntryDTO{}, pkgerrors.New(pkgerrors.CodeValidation, msgCoordinatesRequired)
	}

	entry := models.SearchHistory{
		City:       input.City,
		Country:    input.Country,
		Latitude:   *input.Latitude,
		Longitude:  *input.Longitude,
		SearchedAt: s.now().UTC(),
	}
	if err := s.repo.Create(ctx, &entry); err != nil {
		return EntryDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create search history")
	}
	return toDTO(entry), nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete search history")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, msgNotFound)
	}
	return nil
}

// Clear is idempotent; clearing an empty table removes zero rows.
func (s *service) Clear(ctx context.Context) (int64, error) {
	removed, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear search history")
	}
	return removed, nil
}
