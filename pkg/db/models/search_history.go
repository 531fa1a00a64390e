package models

import "time"

// SearchHistory records one location lookup. Duplicates are expected.
type SearchHistory struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement"`
	City       *string   `gorm:"column:city;type:varchar(255)"`
	Country    *string   `gorm:"column:country;type:varchar(2)"`
	Latitude   float64   `gorm:"column:latitude;not null;index:idx_location_date,priority:1"`
	Longitude  float64   `gorm:"column:longitude;not null;index:idx_location_date,priority:2"`
	SearchedAt time.Time `gorm:"column:searched_at;not null;index:idx_location_date,priority:3"`
}

func (SearchHistory) TableName() string {
	return "search_history"
}
