package history

import (
	"context"

	"github.com/ADEB21/weather-app/pkg/db/models"
	"gorm.io/gorm"
)

const latestPerLocation = "ROW_NUMBER() OVER (PARTITION BY latitude, longitude ORDER BY searched_at DESC, id DESC) AS rn"

// Repository encapsulates search history persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a history repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListRecent returns the newest rows, duplicates included.
func (r *Repository) ListRecent(ctx context.Context, limit int) ([]models.SearchHistory, error) {
	var rows []models.SearchHistory
	if err := r.db.WithContext(ctx).
		Order("searched_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListLatestPerLocation returns, for each exact coordinate pair, the row with
// the greatest searched_at, ordered newest first.
func (r *Repository) ListLatestPerLocation(ctx context.Context, limit int) ([]models.SearchHistory, error) {
	ranked := r.db.WithContext(ctx).
		Model(&models.SearchHistory{}).
		Select("id, searched_at, " + latestPerLocation)

	var ids []int64
	if err := r.db.WithContext(ctx).
		Table("(?) AS ranked", ranked).
		Where("rn = 1").
		Order("searched_at DESC").
		Order("id DESC").
		Limit(limit).
		Pluck("id", &ids).
		Error; err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []models.SearchHistory{}, nil
	}

	var rows []models.SearchHistory
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("searched_at DESC").
		Order("id DESC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Create inserts entry and fills its generated id.
func (r *Repository) Create(ctx context.Context, entry *models.SearchHistory) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// Delete removes one row by id and reports whether it existed.
func (r *Repository) Delete(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.SearchHistory{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// DeleteAll empties the table and returns the number of removed rows.
func (r *Repository) DeleteAll(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.SearchHistory{})
	return res.RowsAffected, res.Error
}
