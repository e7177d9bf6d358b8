package amenities

type CreateAmenityRequest struct {
	Name string `json:"name" validate:"required,max=50"`
}

type UpdateAmenityRequest struct {
	Name *string `json:"name,omitempty" validate:"omitempty,min=1,max=50"`
}
