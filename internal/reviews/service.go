package reviews

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/hbnb-stays/hbnb/internal/shared"
)

// Service enforces the review rules: the place must exist, an owner may
// not review their own place, and a user gets at most one review per place.
type Service struct {
	repo Repository
}

// NewService builds a Service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create posts a review authored by the caller.
func (s *Service) Create(ctx context.Context, req CreateReviewRequest, caller shared.Claims) (*Review, error) {
	ownerID, err := s.repo.PlaceOwner(ctx, req.PlaceID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, fmt.Errorf("%w: Place not found", shared.ErrNotFound)
		}
		return nil, err
	}
	if ownerID == caller.UserID {
		return nil, fmt.Errorf("%w: You cannot review your own place.", shared.ErrPolicy)
	}

	already, err := s.repo.HasUserReview(ctx, caller.UserID, req.PlaceID)
	if err != nil {
		return nil, err
	}
	if already {
		return nil, fmt.Errorf("%w: You have already reviewed this place.", shared.ErrPolicy)
	}

	review := Review{
		ID:      uuid.NewString(),
		Text:    req.Text,
		Rating:  req.Rating,
		PlaceID: req.PlaceID,
		UserID:  caller.UserID,
	}
	return s.repo.Create(ctx, review)
}

// Get fetches a review by id.
func (s *Service) Get(ctx context.Context, id string) (*Review, error) {
	return s.repo.Get(ctx, id)
}

// List returns all reviews.
func (s *Service) List(ctx context.Context) ([]Review, error) {
	return s.repo.List(ctx)
}

// ListByPlace returns the reviews for one place, or NotFound when the
// place itself does not exist.
func (s *Service) ListByPlace(ctx context.Context, placeID string) ([]Review, error) {
	if _, err := s.repo.PlaceOwner(ctx, placeID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, fmt.Errorf("%w: Place not found", shared.ErrNotFound)
		}
		return nil, err
	}
	return s.repo.ListByPlace(ctx, placeID)
}

// Update patches the text or rating of a review. Only the author or an
// admin may update.
func (s *Service) Update(ctx context.Context, id string, req UpdateReviewRequest, caller shared.Claims) (*Review, error) {
	review, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if review.UserID != caller.UserID && !caller.IsAdmin {
		return nil, fmt.Errorf("%w: Unauthorized action", shared.ErrForbidden)
	}

	updates := make(map[string]any)
	if req.Text != nil {
		updates["text"] = *req.Text
	}
	if req.Rating != nil {
		updates["rating"] = *req.Rating
	}
	return s.repo.Update(ctx, id, updates)
}

// Delete removes a review. Only the author or an admin may delete.
func (s *Service) Delete(ctx context.Context, id string, caller shared.Claims) error {
	review, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if review.UserID != caller.UserID && !caller.IsAdmin {
		return fmt.Errorf("%w: Unauthorized action", shared.ErrForbidden)
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return shared.ErrNotFound
	}
	return nil
}
