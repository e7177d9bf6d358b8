package reviews

type CreateReviewRequest struct {
	Text    string `json:"text" validate:"required"`
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	PlaceID string `json:"place_id" validate:"required"`
}

type UpdateReviewRequest struct {
	Text   *string `json:"text,omitempty" validate:"omitempty,min=1"`
	Rating *int    `json:"rating,omitempty" validate:"omitempty,gte=1,lte=5"`
}
