package reviews

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hbnb-stays/hbnb/internal/shared"
)

type mockRepository struct {
	reviews     map[string]*Review
	placeOwners map[string]string
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		reviews:     make(map[string]*Review),
		placeOwners: make(map[string]string),
	}
}

func (m *mockRepository) Create(ctx context.Context, review Review) (*Review, error) {
	if _, ok := m.placeOwners[review.PlaceID]; !ok {
		return nil, fmt.Errorf("%w: Place not found", shared.ErrBadReference)
	}
	for _, existing := range m.reviews {
		if existing.UserID == review.UserID && existing.PlaceID == review.PlaceID {
			return nil, fmt.Errorf("%w: You have already reviewed this place.", shared.ErrPolicy)
		}
	}
	now := time.Now()
	review.CreatedAt = now
	review.UpdatedAt = now
	stored := review
	m.reviews[review.ID] = &stored
	return &stored, nil
}

func (m *mockRepository) Get(ctx context.Context, id string) (*Review, error) {
	r, ok := m.reviews[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return r, nil
}

func (m *mockRepository) List(ctx context.Context) ([]Review, error) {
	var result []Review
	for _, r := range m.reviews {
		result = append(result, *r)
	}
	return result, nil
}

func (m *mockRepository) ListByPlace(ctx context.Context, placeID string) ([]Review, error) {
	var result []Review
	for _, r := range m.reviews {
		if r.PlaceID == placeID {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockRepository) Update(ctx context.Context, id string, updates map[string]any) (*Review, error) {
	r, ok := m.reviews[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	if v, ok := updates["text"]; ok {
		r.Text = v.(string)
	}
	if v, ok := updates["rating"]; ok {
		r.Rating = v.(int)
	}
	r.UpdatedAt = time.Now()
	return r, nil
}

func (m *mockRepository) Delete(ctx context.Context, id string) (bool, error) {
	if _, ok := m.reviews[id]; !ok {
		return false, nil
	}
	delete(m.reviews, id)
	return true, nil
}

func (m *mockRepository) PlaceOwner(ctx context.Context, placeID string) (string, error) {
	owner, ok := m.placeOwners[placeID]
	if !ok {
		return "", shared.ErrNotFound
	}
	return owner, nil
}

func (m *mockRepository) HasUserReview(ctx context.Context, userID, placeID string) (bool, error) {
	for _, r := range m.reviews {
		if r.UserID == userID && r.PlaceID == placeID {
			return true, nil
		}
	}
	return false, nil
}

var _ Repository = (*mockRepository)(nil)

func reviewReq(placeID string) CreateReviewRequest {
	return CreateReviewRequest{Text: "Great stay!", Rating: 5, PlaceID: placeID}
}

func TestCreateReview(t *testing.T) {
	repo := newMockRepository()
	repo.placeOwners["place-1"] = "owner-1"
	service := NewService(repo)

	review, err := service.Create(context.Background(), reviewReq("place-1"), shared.Claims{UserID: "guest-1"})
	require.NoError(t, err)
	assert.NotEmpty(t, review.ID)
	assert.Equal(t, "guest-1", review.UserID)
	assert.Equal(t, 5, review.Rating)
}

func TestCreateReviewPlaceMissing(t *testing.T) {
	service := NewService(newMockRepository())

	_, err := service.Create(context.Background(), reviewReq("place-ghost"), shared.Claims{UserID: "guest-1"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrNotFound))
	assert.Contains(t, err.Error(), "Place not found")
}

func TestCreateReviewSelfReviewRejected(t *testing.T) {
	repo := newMockRepository()
	repo.placeOwners["place-1"] = "owner-1"
	service := NewService(repo)

	_, err := service.Create(context.Background(), reviewReq("place-1"), shared.Claims{UserID: "owner-1"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrPolicy))
	assert.Contains(t, err.Error(), "You cannot review your own place.")
}

func TestCreateReviewDuplicateRejected(t *testing.T) {
	repo := newMockRepository()
	repo.placeOwners["place-1"] = "owner-1"
	service := NewService(repo)

	_, err := service.Create(context.Background(), reviewReq("place-1"), shared.Claims{UserID: "guest-1"})
	require.NoError(t, err)

	_, err = service.Create(context.Background(), reviewReq("place-1"), shared.Claims{UserID: "guest-1"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrPolicy))
	assert.Contains(t, err.Error(), "You have already reviewed this place.")
}

func TestListByPlace(t *testing.T) {
	repo := newMockRepository()
	repo.placeOwners["place-1"] = "owner-1"
	repo.placeOwners["place-2"] = "owner-2"
	service := NewService(repo)

	_, err := service.Create(context.Background(), reviewReq("place-1"), shared.Claims{UserID: "guest-1"})
	require.NoError(t, err)
	_, err = service.Create(context.Background(), reviewReq("place-2"), shared.Claims{UserID: "guest-1"})
	require.NoError(t, err)

	result, err := service.ListByPlace(context.Background(), "place-1")
	require.NoError(t, err)
	assert.Len(t, result, 1)

	_, err = service.ListByPlace(context.Background(), "place-ghost")
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestUpdateReviewAuthorOrAdmin(t *testing.T) {
	repo := newMockRepository()
	repo.placeOwners["place-1"] = "owner-1"
	service := NewService(repo)

	review, err := service.Create(context.Background(), reviewReq("place-1"), shared.Claims{UserID: "guest-1"})
	require.NoError(t, err)

	rating := 2
	_, err = service.Update(context.Background(), review.ID,
		UpdateReviewRequest{Rating: &rating}, shared.Claims{UserID: "intruder"})
	assert.True(t, errors.Is(err, shared.ErrForbidden))

	updated, err := service.Update(context.Background(), review.ID,
		UpdateReviewRequest{Rating: &rating}, shared.Claims{UserID: "guest-1"})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Rating)

	text := "Moderated."
	updated, err = service.Update(context.Background(), review.ID,
		UpdateReviewRequest{Text: &text}, shared.Claims{UserID: "admin-1", IsAdmin: true})
	require.NoError(t, err)
	assert.Equal(t, "Moderated.", updated.Text)
}

func TestDeleteReviewAuthorOrAdmin(t *testing.T) {
	repo := newMockRepository()
	repo.placeOwners["place-1"] = "owner-1"
	service := NewService(repo)

	review, err := service.Create(context.Background(), reviewReq("place-1"), shared.Claims{UserID: "guest-1"})
	require.NoError(t, err)

	err = service.Delete(context.Background(), review.ID, shared.Claims{UserID: "intruder"})
	assert.True(t, errors.Is(err, shared.ErrForbidden))

	require.NoError(t, service.Delete(context.Background(), review.ID, shared.Claims{UserID: "guest-1"}))
	assert.True(t, errors.Is(
		service.Delete(context.Background(), review.ID, shared.Claims{UserID: "guest-1"}),
		shared.ErrNotFound))
}
