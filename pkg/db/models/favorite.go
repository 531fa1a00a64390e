package models

import "time"

// Favorite is a saved location. Coordinates are unique as a pair and compared
// exactly, without rounding.
type Favorite struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	City      *string   `gorm:"column:city;type:varchar(255)"`
	Country   *string   `gorm:"column:country;type:varchar(2)"`
	Latitude  float64   `gorm:"column:latitude;not null;uniqueIndex:unique_location,priority:1"`
	Longitude float64   `gorm:"column:longitude;not null;uniqueIndex:unique_location,priority:2"`
	AddedAt   time.Time `gorm:"column:added_at;not null"`
}

func (Favorite) TableName() string {
	return "favorite"
}
