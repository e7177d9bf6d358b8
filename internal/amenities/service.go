package amenities

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/text/cases"

	"github.com/hbnb-stays/hbnb/internal/shared"
)

// Service handles amenity business logic. Amenity names are unique
// case-insensitively, using Unicode case folding so "WiFi" and "wifi"
// collide.
type Service struct {
	repo   Repository
	folder cases.Caser
}

// NewService builds a Service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, folder: cases.Fold()}
}

// NameKey returns the canonical uniqueness key for an amenity name.
func (s *Service) NameKey(name string) string {
	return s.folder.String(name)
}

// Create adds a new amenity with a unique name.
func (s *Service) Create(ctx context.Context, req CreateAmenityRequest) (*Amenity, error) {
	key := s.NameKey(req.Name)
	existing, err := s.repo.GetByNameKey(ctx, key)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("check existing amenity: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: amenity already exists", shared.ErrConflict)
	}

	amenity := Amenity{ID: uuid.NewString(), Name: req.Name}
	return s.repo.Create(ctx, amenity, key)
}

// Get fetches an amenity by id.
func (s *Service) Get(ctx context.Context, id string) (*Amenity, error) {
	return s.repo.Get(ctx, id)
}

// List returns all amenities.
func (s *Service) List(ctx context.Context) ([]Amenity, error) {
	return s.repo.List(ctx)
}

// Update renames an amenity, keeping the uniqueness invariant.
func (s *Service) Update(ctx context.Context, id string, req UpdateAmenityRequest) (*Amenity, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name == nil {
		return current, nil
	}

	key := s.NameKey(*req.Name)
	if key != s.NameKey(current.Name) {
		other, err := s.repo.GetByNameKey(ctx, key)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, fmt.Errorf("check existing amenity: %w", err)
		}
		if other != nil {
			return nil, fmt.Errorf("%w: amenity already exists", shared.ErrConflict)
		}
	}
	return s.repo.Update(ctx, id, *req.Name, key)
}

// Delete removes an amenity and detaches it from any places.
func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return shared.ErrNotFound
	}
	return nil
}
