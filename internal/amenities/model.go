package amenities

import "time"

// Amenity is a bookable feature a place can offer (wifi, parking, ...).
type Amenity struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
