package reviews

import "time"

// Review is a rating and comment a user leaves on a place.
type Review struct {
	ID        string    `json:"id" db:"id"`
	Text      string    `json:"text" db:"text"`
	Rating    int       `json:"rating" db:"rating"`
	PlaceID   string    `json:"place_id" db:"place_id"`
	UserID    string    `json:"user_id" db:"user_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
