package places

type CreatePlaceRequest struct {
	Title       string   `json:"title" validate:"required,max=100"`
	Description string   `json:"description"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	Latitude    float64  `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude   float64  `json:"longitude" validate:"gte=-180,lte=180"`
	// OwnerID defaults to the authenticated caller; only admins may create
	// a place on behalf of someone else.
	OwnerID   string   `json:"owner_id,omitempty"`
	Amenities []string `json:"amenities,omitempty"`
}

type UpdatePlaceRequest struct {
	Title       *string  `json:"title,omitempty" validate:"omitempty,min=1,max=100"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	Latitude    *float64 `json:"latitude,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Longitude   *float64 `json:"longitude,omitempty" validate:"omitempty,gte=-180,lte=180"`
	OwnerID     *string  `json:"owner_id,omitempty"`
	// Amenities, when present, replaces the full association set.
	Amenities *[]string `json:"amenities,omitempty"`
}
