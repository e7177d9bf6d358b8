package places

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hbnb-stays/hbnb/internal/shared"
)

// Service enforces the cross-entity rules for places: every owner and
// amenity reference must resolve, only the owner or an admin may mutate a
// listing, and a place row always commits together with its amenity links.
type Service struct {
	repo Repository
}

// NewService builds a Service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create adds a listing. The owner defaults to the caller; only admins may
// create a place for another user.
func (s *Service) Create(ctx context.Context, req CreatePlaceRequest, caller shared.Claims) (*PlaceDetail, error) {
	ownerID := req.OwnerID
	if ownerID == "" {
		ownerID = caller.UserID
	}
	if ownerID != caller.UserID && !caller.IsAdmin {
		return nil, fmt.Errorf("%w: cannot create a place for another user", shared.ErrForbidden)
	}

	if err := s.checkReferences(ctx, &ownerID, req.Amenities); err != nil {
		return nil, err
	}

	place := Place{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		OwnerID:     ownerID,
	}

	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		if err := repo.Create(ctx, place); err != nil {
			return err
		}
		return repo.ReplaceAmenityLinks(ctx, place.ID, req.Amenities)
	})
	if err != nil {
		return nil, fmt.Errorf("create place: %w", err)
	}
	return s.repo.GetDetail(ctx, place.ID)
}

// Get fetches the full detail view of a place.
func (s *Service) Get(ctx context.Context, id string) (*PlaceDetail, error) {
	return s.repo.GetDetail(ctx, id)
}

// List returns all places.
func (s *Service) List(ctx context.Context) ([]Place, error) {
	return s.repo.List(ctx)
}

// Update applies a partial patch. Only the owner or an admin may update;
// when the amenity set is present it replaces the associations atomically
// with the field patch.
func (s *Service) Update(ctx context.Context, id string, req UpdatePlaceRequest, caller shared.Claims) (*PlaceDetail, error) {
	place, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if place.OwnerID != caller.UserID && !caller.IsAdmin {
		return nil, fmt.Errorf("%w: Unauthorized action", shared.ErrForbidden)
	}

	var amenityIDs []string
	if req.Amenities != nil {
		amenityIDs = *req.Amenities
	}
	if err := s.checkReferences(ctx, req.OwnerID, amenityIDs); err != nil {
		return nil, err
	}
	if req.OwnerID != nil && *req.OwnerID != place.OwnerID && !caller.IsAdmin {
		return nil, fmt.Errorf("%w: cannot transfer ownership", shared.ErrForbidden)
	}

	updates := make(map[string]any)
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Latitude != nil {
		updates["latitude"] = *req.Latitude
	}
	if req.Longitude != nil {
		updates["longitude"] = *req.Longitude
	}
	if req.OwnerID != nil {
		updates["owner_id"] = *req.OwnerID
	}

	err = s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		if err := repo.Update(ctx, id, updates); err != nil {
			return err
		}
		if req.Amenities != nil {
			return repo.ReplaceAmenityLinks(ctx, id, *req.Amenities)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.repo.GetDetail(ctx, id)
}

// Delete removes a place together with its reviews and amenity links.
// Only the owner or an admin may delete.
func (s *Service) Delete(ctx context.Context, id string, caller shared.Claims) error {
	place, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if place.OwnerID != caller.UserID && !caller.IsAdmin {
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

// checkReferences rejects dangling owner or amenity ids before anything is
// written. ownerID may be nil when the patch does not touch ownership.
func (s *Service) checkReferences(ctx context.Context, ownerID *string, amenityIDs []string) error {
	if ownerID != nil && *ownerID != "" {
		exists, err := s.repo.OwnerExists(ctx, *ownerID)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("%w: Owner not found", shared.ErrBadReference)
		}
	}
	if len(amenityIDs) > 0 {
		missing, err := s.repo.MissingAmenities(ctx, amenityIDs)
		if err != nil {
			return err
		}
		if len(missing) > 0 {
			return fmt.Errorf("%w: Amenity not found: %s", shared.ErrBadReference, missing[0])
		}
	}
	return nil
}
