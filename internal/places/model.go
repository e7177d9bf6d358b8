package places

import "time"

// Place is a lodging listing owned by a user.
type Place struct {
	ID          string    `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Price       float64   `json:"price" db:"price"`
	Latitude    float64   `json:"latitude" db:"latitude"`
	Longitude   float64   `json:"longitude" db:"longitude"`
	OwnerID     string    `json:"owner_id" db:"owner_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// OwnerSummary is the owner projection embedded in a place detail.
type OwnerSummary struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// AmenityRef is the amenity projection embedded in a place detail.
type AmenityRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ReviewSummary is the review projection embedded in a place detail.
type ReviewSummary struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Rating int    `json:"rating"`
	UserID string `json:"user_id"`
}

// PlaceDetail is the full by-id view: the place plus its resolved owner,
// amenities and reviews.
type PlaceDetail struct {
	Place
	Owner     OwnerSummary    `json:"owner"`
	Amenities []AmenityRef    `json:"amenities"`
	Reviews   []ReviewSummary `json:"reviews"`
}
