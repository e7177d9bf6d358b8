package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hbnb-stays/hbnb/internal/shared"
)

const uniqueViolation = "23505"

// Repository defines data access methods for users.
type Repository interface {
	Create(ctx context.Context, user User) (*User, error)
	Get(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, id string, updates map[string]any) (*User, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const userColumns = `id, first_name, last_name, email, password_hash, is_admin, created_at, updated_at`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user. The unique index on email is the authoritative
// guard against concurrent duplicate registration; the service-level
// pre-check only produces a friendlier common-case error.
func (r *repository) Create(ctx context.Context, user User) (*User, error) {
	const query = `
		INSERT INTO users (id, first_name, last_name, email, password_hash, is_admin)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + userColumns
	created, err := scanUser(r.pool.QueryRow(ctx, query,
		user.ID, user.FirstName, user.LastName, user.Email, user.PasswordHash, user.IsAdmin))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: email already registered", shared.ErrConflict)
		}
		return nil, fmt.Errorf("users: create: %w", err)
	}
	return created, nil
}

func (r *repository) Get(ctx context.Context, id string) (*User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("users: get: %w", err)
	}
	return u, nil
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	u, err := scanUser(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("users: get by email: %w", err)
	}
	return u, nil
}

func (r *repository) List(ctx context.Context) ([]User, error) {
	const query = `SELECT ` + userColumns + ` FROM users ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("users: list: %w", err)
	}
	defer rows.Close()

	var result []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("users: list scan: %w", err)
		}
		result = append(result, u)
	}
	return result, rows.Err()
}

func (r *repository) Update(ctx context.Context, id string, updates map[string]any) (*User, error) {
	if len(updates) == 0 {
		return r.Get(ctx, id)
	}

	query := "UPDATE users SET updated_at = NOW()"
	var args []any
	argPos := 1
	for _, col := range []string{"first_name", "last_name", "email", "password_hash"} {
		if v, ok := updates[col]; ok {
			query += fmt.Sprintf(", %s = $%d", col, argPos)
			args = append(args, v)
			argPos++
		}
	}
	query += fmt.Sprintf(" WHERE id = $%d RETURNING ", argPos) + userColumns
	args = append(args, id)

	u, err := scanUser(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: email already registered", shared.ErrConflict)
		}
		return nil, fmt.Errorf("users: update: %w", err)
	}
	return u, nil
}

func (r *repository) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("users: delete: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
