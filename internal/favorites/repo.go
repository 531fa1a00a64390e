package favorites

import (
	"context"
	"errors"

	"github.com/ADEB21/weather-app/pkg/db/models"
	"gorm.io/gorm"
)

// Repository encapsulates favorite persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a favorites repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns every favorite, newest first.
func (r *Repository) List(ctx context.Context) ([]models.Favorite, error) {
	var rows []models.Favorite
	if err := r.db.WithContext(ctx).
		Order("added_at DESC").
		Order("id DESC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByCoordinates matches both coordinates exactly. A miss returns (nil, nil).
func (r *Repository) FindByCoordinates(ctx context.Context, latitude, longitude float64) (*models.Favorite, error) {
	var fav models.Favorite
	err := r.db.WithContext(ctx).
		Where("latitude = ? AND longitude = ?", latitude, longitude).
		Take(&fav).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &fav, nil
}

// Create inserts fav and fills its generated id.
func (r *Repository) Create(ctx context.Context, fav *models.Favorite) error {
	return r.db.WithContext(ctx).Create(fav).Error
}

// Delete removes a favorite by id and reports whether a row was removed.
func (r *Repository) Delete(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Favorite{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
