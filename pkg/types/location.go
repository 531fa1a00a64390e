package types

// LocationInput is the request body for saving a favorite or a history entry.
// Coordinates are pointers so an absent value can be told apart from 0.
type LocationInput struct {
	Latitude  *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	City      *string  `json:"city" validate:"omitempty,max=255"`
	Country   *string  `json:"country" validate:"omitempty,max=2"`
}

// HasCoordinates reports whether both latitude and longitude were supplied.
func (l LocationInput) HasCoordinates() bool {
	return l.Latitude != nil && l.Longitude != nil
}
