package reviews

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hbnb-stays/hbnb/internal/shared"
)

// Repository defines data access methods for reviews.
type Repository interface {
	Create(ctx context.Context, review Review) (*Review, error)
	Get(ctx context.Context, id string) (*Review, error)
	List(ctx context.Context) ([]Review, error)
	ListByPlace(ctx context.Context, placeID string) ([]Review, error)
	Update(ctx context.Context, id string, updates map[string]any) (*Review, error)
	Delete(ctx context.Context, id string) (bool, error)
	// PlaceOwner returns the owning user of a place, or shared.ErrNotFound
	// when the place does not exist.
	PlaceOwner(ctx context.Context, placeID string) (string, error)
	HasUserReview(ctx context.Context, userID, placeID string) (bool, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const reviewColumns = `id, text, rating, place_id, user_id, created_at, updated_at`

func scanReview(row pgx.Row) (*Review, error) {
	var rv Review
	err := row.Scan(&rv.ID, &rv.Text, &rv.Rating, &rv.PlaceID, &rv.UserID, &rv.CreatedAt, &rv.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &rv, nil
}

// Create inserts a review. The unique index on (user_id, place_id) backs
// the one-review-per-user-per-place rule against concurrent writers.
func (r *repository) Create(ctx context.Context, review Review) (*Review, error) {
	const query = `
		INSERT INTO reviews (id, text, rating, place_id, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + reviewColumns
	created, err := scanReview(r.pool.QueryRow(ctx, query,
		review.ID, review.Text, review.Rating, review.PlaceID, review.UserID))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return nil, fmt.Errorf("%w: You have already reviewed this place.", shared.ErrPolicy)
			case "23503":
				return nil, fmt.Errorf("%w: Place not found", shared.ErrBadReference)
			}
		}
		return nil, fmt.Errorf("reviews: create: %w", err)
	}
	return created, nil
}

func (r *repository) Get(ctx context.Context, id string) (*Review, error) {
	const query = `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`
	rv, err := scanReview(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("reviews: get: %w", err)
	}
	return rv, nil
}

func (r *repository) List(ctx context.Context) ([]Review, error) {
	return r.query(ctx, `SELECT `+reviewColumns+` FROM reviews ORDER BY created_at`)
}

func (r *repository) ListByPlace(ctx context.Context, placeID string) ([]Review, error) {
	return r.query(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE place_id = $1 ORDER BY created_at`, placeID)
}

func (r *repository) query(ctx context.Context, sql string, args ...any) ([]Review, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("reviews: query: %w", err)
	}
	defer rows.Close()

	var result []Review
	for rows.Next() {
		var rv Review
		if err := rows.Scan(&rv.ID, &rv.Text, &rv.Rating, &rv.PlaceID, &rv.UserID, &rv.CreatedAt, &rv.UpdatedAt); err != nil {
			return nil, fmt.Errorf("reviews: scan: %w", err)
		}
		result = append(result, rv)
	}
	return result, rows.Err()
}

func (r *repository) Update(ctx context.Context, id string, updates map[string]any) (*Review, error) {
	if len(updates) == 0 {
		return r.Get(ctx, id)
	}
	query := "UPDATE reviews SET updated_at = NOW()"
	var args []any
	argPos := 1
	for _, col := range []string{"text", "rating"} {
		if v, ok := updates[col]; ok {
			query += fmt.Sprintf(", %s = $%d", col, argPos)
			args = append(args, v)
			argPos++
		}
	}
	query += fmt.Sprintf(" WHERE id = $%d RETURNING ", argPos) + reviewColumns
	args = append(args, id)

	rv, err := scanReview(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("reviews: update: %w", err)
	}
	return rv, nil
}

func (r *repository) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("reviews: delete: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *repository) PlaceOwner(ctx context.Context, placeID string) (string, error) {
	var ownerID string
	err := r.pool.QueryRow(ctx, `SELECT owner_id FROM places WHERE id = $1`, placeID).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", shared.ErrNotFound
		}
		return "", fmt.Errorf("reviews: place owner: %w", err)
	}
	return ownerID, nil
}

func (r *repository) HasUserReview(ctx context.Context, userID, placeID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM reviews WHERE user_id = $1 AND place_id = $2)`,
		userID, placeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("reviews: has user review: %w", err)
	}
	return exists, nil
}
