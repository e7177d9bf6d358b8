package amenities

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hbnb-stays/hbnb/internal/shared"
)

// Repository defines data access methods for amenities.
type Repository interface {
	Create(ctx context.Context, amenity Amenity, nameKey string) (*Amenity, error)
	Get(ctx context.Context, id string) (*Amenity, error)
	GetByNameKey(ctx context.Context, nameKey string) (*Amenity, error)
	List(ctx context.Context) ([]Amenity, error)
	Update(ctx context.Context, id, name, nameKey string) (*Amenity, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const amenityColumns = `id, name, created_at, updated_at`

func scanAmenity(row pgx.Row) (*Amenity, error) {
	var a Amenity
	if err := row.Scan(&a.ID, &a.Name, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// Create inserts a new amenity. name_key holds the case-folded name; its
// unique index is the race-safe guard behind the service-level pre-check.
func (r *repository) Create(ctx context.Context, amenity Amenity, nameKey string) (*Amenity, error) {
	const query = `
		INSERT INTO amenities (id, name, name_key)
		VALUES ($1, $2, $3)
		RETURNING ` + amenityColumns
	created, err := scanAmenity(r.pool.QueryRow(ctx, query, amenity.ID, amenity.Name, nameKey))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: amenity already exists", shared.ErrConflict)
		}
		return nil, fmt.Errorf("amenities: create: %w", err)
	}
	return created, nil
}

func (r *repository) Get(ctx context.Context, id string) (*Amenity, error) {
	const query = `SELECT ` + amenityColumns + ` FROM amenities WHERE id = $1`
	a, err := scanAmenity(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("amenities: get: %w", err)
	}
	return a, nil
}

func (r *repository) GetByNameKey(ctx context.Context, nameKey string) (*Amenity, error) {
	const query = `SELECT ` + amenityColumns + ` FROM amenities WHERE name_key = $1`
	a, err := scanAmenity(r.pool.QueryRow(ctx, query, nameKey))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("amenities: get by name: %w", err)
	}
	return a, nil
}

func (r *repository) List(ctx context.Context) ([]Amenity, error) {
	const query = `SELECT ` + amenityColumns + ` FROM amenities ORDER BY name`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("amenities: list: %w", err)
	}
	defer rows.Close()

	var result []Amenity
	for rows.Next() {
		var a Amenity
		if err := rows.Scan(&a.ID, &a.Name, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("amenities: list scan: %w", err)
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

func (r *repository) Update(ctx context.Context, id, name, nameKey string) (*Amenity, error) {
	const query = `
		UPDATE amenities SET name = $1, name_key = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING ` + amenityColumns
	a, err := scanAmenity(r.pool.QueryRow(ctx, query, name, nameKey, id))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: amenity already exists", shared.ErrConflict)
		}
		return nil, fmt.Errorf("amenities: update: %w", err)
	}
	return a, nil
}

// Delete removes an amenity; its place associations cascade away while the
// places themselves stay untouched.
func (r *repository) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM amenities WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("amenities: delete: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
