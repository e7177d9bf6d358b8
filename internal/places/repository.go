package places

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hbnb-stays/hbnb/internal/platform/db"
	"github.com/hbnb-stays/hbnb/internal/shared"
)

// Repository defines data access methods for places and their amenity links.
type Repository interface {
	// WithTx runs fn against a transactional view of the repository so a
	// place row and its association rows commit or roll back together.
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
	Create(ctx context.Context, place Place) error
	Get(ctx context.Context, id string) (*Place, error)
	GetDetail(ctx context.Context, id string) (*PlaceDetail, error)
	List(ctx context.Context) ([]Place, error)
	Update(ctx context.Context, id string, updates map[string]any) error
	Delete(ctx context.Context, id string) (bool, error)
	ReplaceAmenityLinks(ctx context.Context, placeID string, amenityIDs []string) error
	OwnerExists(ctx context.Context, ownerID string) (bool, error)
	MissingAmenities(ctx context.Context, amenityIDs []string) ([]string, error)
}

type repository struct {
	q    querier
	pool *pgxpool.Pool
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (commandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type commandTag interface {
	RowsAffected() int64
}

type poolQuerier struct{ pool *pgxpool.Pool }

func (p poolQuerier) Exec(ctx context.Context, sql string, args ...any) (commandTag, error) {
	return p.pool.Exec(ctx, sql, args...)
}
func (p poolQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return p.pool.Query(ctx, sql, args...)
}
func (p poolQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return p.pool.QueryRow(ctx, sql, args...)
}

type txQuerier struct{ tx pgx.Tx }

func (t txQuerier) Exec(ctx context.Context, sql string, args ...any) (commandTag, error) {
	return t.tx.Exec(ctx, sql, args...)
}
func (t txQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return t.tx.Query(ctx, sql, args...)
}
func (t txQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return t.tx.QueryRow(ctx, sql, args...)
}

// NewRepository constructs a PostgreSQL backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{q: poolQuerier{pool: pool}, pool: pool}
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &repository{q: txQuerier{tx: tx}, pool: r.pool})
	})
}

const placeColumns = `id, title, description, price, latitude, longitude, owner_id, created_at, updated_at`

func scanPlace(row pgx.Row) (*Place, error) {
	var p Place
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Price, &p.Latitude, &p.Longitude, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *repository) Create(ctx context.Context, place Place) error {
	const query = `
		INSERT INTO places (id, title, description, price, latitude, longitude, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		place.ID, place.Title, place.Description, place.Price, place.Latitude, place.Longitude, place.OwnerID)
	if err != nil {
		return fmt.Errorf("places: create: %w", err)
	}
	return nil
}

func (r *repository) Get(ctx context.Context, id string) (*Place, error) {
	const query = `SELECT ` + placeColumns + ` FROM places WHERE id = $1`
	p, err := scanPlace(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("places: get: %w", err)
	}
	return p, nil
}

func (r *repository) GetDetail(ctx context.Context, id string) (*PlaceDetail, error) {
	const query = `
		SELECT p.id, p.title, p.description, p.price, p.latitude, p.longitude,
		       p.owner_id, p.created_at, p.updated_at,
		       u.id, u.first_name, u.last_name, u.email
		FROM places p
		JOIN users u ON u.id = p.owner_id
		WHERE p.id = $1`
	var d PlaceDetail
	err := r.q.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.Title, &d.Description, &d.Price, &d.Latitude, &d.Longitude,
		&d.OwnerID, &d.CreatedAt, &d.UpdatedAt,
		&d.Owner.ID, &d.Owner.FirstName, &d.Owner.LastName, &d.Owner.Email,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("places: get detail: %w", err)
	}

	d.Amenities = []AmenityRef{}
	amenityRows, err := r.q.Query(ctx, `
		SELECT a.id, a.name
		FROM amenities a
		JOIN place_amenities pa ON pa.amenity_id = a.id
		WHERE pa.place_id = $1
		ORDER BY a.name`, id)
	if err != nil {
		return nil, fmt.Errorf("places: detail amenities: %w", err)
	}
	defer amenityRows.Close()
	for amenityRows.Next() {
		var a AmenityRef
		if err := amenityRows.Scan(&a.ID, &a.Name); err != nil {
			return nil, fmt.Errorf("places: detail amenities scan: %w", err)
		}
		d.Amenities = append(d.Amenities, a)
	}
	if err := amenityRows.Err(); err != nil {
		return nil, err
	}

	d.Reviews = []ReviewSummary{}
	reviewRows, err := r.q.Query(ctx, `
		SELECT id, text, rating, user_id
		FROM reviews
		WHERE place_id = $1
		ORDER BY created_at`, id)
	if err != nil {
		return nil, fmt.Errorf("places: detail reviews: %w", err)
	}
	defer reviewRows.Close()
	for reviewRows.Next() {
		var rv ReviewSummary
		if err := reviewRows.Scan(&rv.ID, &rv.Text, &rv.Rating, &rv.UserID); err != nil {
			return nil, fmt.Errorf("places: detail reviews scan: %w", err)
		}
		d.Reviews = append(d.Reviews, rv)
	}
	return &d, reviewRows.Err()
}

func (r *repository) List(ctx context.Context) ([]Place, error) {
	const query = `SELECT ` + placeColumns + ` FROM places ORDER BY created_at`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("places: list: %w", err)
	}
	defer rows.Close()

	var result []Place
	for rows.Next() {
		var p Place
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Price, &p.Latitude, &p.Longitude, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("places: list scan: %w", err)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func (r *repository) Update(ctx context.Context, id string, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	query := "UPDATE places SET updated_at = NOW()"
	var args []any
	argPos := 1
	for _, col := range []string{"title", "description", "price", "latitude", "longitude", "owner_id"} {
		if v, ok := updates[col]; ok {
			query += fmt.Sprintf(", %s = $%d", col, argPos)
			args = append(args, v)
			argPos++
		}
	}
	query += fmt.Sprintf(" WHERE id = $%d", argPos)
	args = append(args, id)

	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("places: update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a place; its reviews and amenity links cascade at the
// storage boundary. Users and amenities are never touched.
func (r *repository) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM places WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("places: delete: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *repository) ReplaceAmenityLinks(ctx context.Context, placeID string, amenityIDs []string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM place_amenities WHERE place_id = $1`, placeID); err != nil {
		return fmt.Errorf("places: clear amenity links: %w", err)
	}
	for _, amenityID := range amenityIDs {
		_, err := r.q.Exec(ctx, `
			INSERT INTO place_amenities (place_id, amenity_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING`, placeID, amenityID)
		if err != nil {
			return fmt.Errorf("places: link amenity %s: %w", amenityID, err)
		}
	}
	return nil
}

func (r *repository) OwnerExists(ctx context.Context, ownerID string) (bool, error) {
	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, ownerID).Scan(&exists); err != nil {
		return false, fmt.Errorf("places: owner exists: %w", err)
	}
	return exists, nil
}

func (r *repository) MissingAmenities(ctx context.Context, amenityIDs []string) ([]string, error) {
	var missing []string
	for _, id := range amenityIDs {
		var exists bool
		if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM amenities WHERE id = $1)`, id).Scan(&exists); err != nil {
			return nil, fmt.Errorf("places: amenity exists: %w", err)
		}
		if !exists {
			missing = append(missing, id)
		}
	}
	return missing, nil
}
