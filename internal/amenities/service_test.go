package amenities

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
	byID  map[string]*Amenity
	byKey map[string]*Amenity
	keys  map[string]string
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		byID:  make(map[string]*Amenity),
		byKey: make(map[string]*Amenity),
		keys:  make(map[string]string),
	}
}

func (m *mockRepository) Create(ctx context.Context, amenity Amenity, nameKey string) (*Amenity, error) {
	if _, ok := m.byKey[nameKey]; ok {
		return nil, fmt.Errorf("%w: amenity already exists", shared.ErrConflict)
	}
	now := time.Now()
	amenity.CreatedAt = now
	amenity.UpdatedAt = now
	stored := amenity
	m.byID[amenity.ID] = &stored
	m.byKey[nameKey] = &stored
	m.keys[amenity.ID] = nameKey
	return &stored, nil
}

func (m *mockRepository) Get(ctx context.Context, id string) (*Amenity, error) {
	a, ok := m.byID[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return a, nil
}

func (m *mockRepository) GetByNameKey(ctx context.Context, nameKey string) (*Amenity, error) {
	a, ok := m.byKey[nameKey]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return a, nil
}

func (m *mockRepository) List(ctx context.Context) ([]Amenity, error) {
	var result []Amenity
	for _, a := range m.byID {
		result = append(result, *a)
	}
	return result, nil
}

func (m *mockRepository) Update(ctx context.Context, id, name, nameKey string) (*Amenity, error) {
	a, ok := m.byID[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	if other, ok := m.byKey[nameKey]; ok && other.ID != id {
		return nil, fmt.Errorf("%w: amenity already exists", shared.ErrConflict)
	}
	delete(m.byKey, m.keys[id])
	a.Name = name
	a.UpdatedAt = time.Now()
	m.byKey[nameKey] = a
	m.keys[id] = nameKey
	return a, nil
}

func (m *mockRepository) Delete(ctx context.Context, id string) (bool, error) {
	if _, ok := m.byID[id]; !ok {
		return false, nil
	}
	delete(m.byKey, m.keys[id])
	delete(m.keys, id)
	delete(m.byID, id)
	return true, nil
}

var _ Repository = (*mockRepository)(nil)

func seedAmenity(t *testing.T, service *Service, name string) *Amenity {
	t.Helper()
	a, err := service.Create(context.Background(), CreateAmenityRequest{Name: name})
	require.NoError(t, err)
	return a
}

func TestCreateAmenity(t *testing.T) {
	service := NewService(newMockRepository())
	a := seedAmenity(t, service, "WiFi")

	assert.NotEmpty(t, a.ID)
	assert.Equal(t, "WiFi", a.Name)
}

func TestCreateAmenityCaseInsensitiveDuplicate(t *testing.T) {
	service := NewService(newMockRepository())
	seedAmenity(t, service, "WiFi")

	for _, name := range []string{"WiFi", "wifi", "WIFI"} {
		_, err := service.Create(context.Background(), CreateAmenityRequest{Name: name})
		require.Error(t, err, name)
		assert.True(t, errors.Is(err, shared.ErrConflict), name)
	}
}

func TestUpdateAmenityRename(t *testing.T) {
	service := NewService(newMockRepository())
	a := seedAmenity(t, service, "Pool")

	name := "Heated Pool"
	updated, err := service.Update(context.Background(), a.ID, UpdateAmenityRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Heated Pool", updated.Name)

	// old name is free again
	_, err = service.Create(context.Background(), CreateAmenityRequest{Name: "pool"})
	assert.NoError(t, err)
}

func TestUpdateAmenityCaseOnlyRename(t *testing.T) {
	service := NewService(newMockRepository())
	a := seedAmenity(t, service, "wifi")

	name := "WiFi"
	updated, err := service.Update(context.Background(), a.ID, UpdateAmenityRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "WiFi", updated.Name)
}

func TestUpdateAmenityConflict(t *testing.T) {
	service := NewService(newMockRepository())
	seedAmenity(t, service, "WiFi")
	pool := seedAmenity(t, service, "Pool")

	name := "wifi"
	_, err := service.Update(context.Background(), pool.ID, UpdateAmenityRequest{Name: &name})
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrConflict))
}

func TestUpdateAmenityNotFound(t *testing.T) {
	service := NewService(newMockRepository())

	name := "WiFi"
	_, err := service.Update(context.Background(), "missing-id", UpdateAmenityRequest{Name: &name})
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestDeleteAmenity(t *testing.T) {
	service := NewService(newMockRepository())
	a := seedAmenity(t, service, "Parking")

	require.NoError(t, service.Delete(context.Background(), a.ID))
	assert.True(t, errors.Is(service.Delete(context.Background(), a.ID), shared.ErrNotFound))
}
