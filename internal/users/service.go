package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/hbnb-stays/hbnb/internal/shared"
)

// Policy carries the configurable authorization decisions for the users
// module. Source variants of this API disagree on both points, so they are
// explicit switches instead of hard-coded behavior.
type Policy struct {
	// AllowSelfCredentialChange permits non-admin callers to change their
	// own email/password through the generic update path.
	AllowSelfCredentialChange bool
	// LookupSelfOnly restricts single-user fetch to the user themself or an
	// admin.
	LookupSelfOnly bool
}

// Service handles user business logic.
type Service struct {
	repo   Repository
	policy Policy
}

// NewService builds a Service instance.
func NewService(repo Repository, policy Policy) *Service {
	return &Service{repo: repo, policy: policy}
}

// Create registers a new user. The email must not already be registered;
// the password is stored only as a bcrypt hash.
func (s *Service) Create(ctx context.Context, req CreateUserRequest) (*User, error) {
	existing, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("check existing email: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: email already registered", shared.ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := User{
		ID:           uuid.NewString(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	return s.repo.Create(ctx, user)
}

// Get fetches a user by id, honoring the lookup policy for the caller.
func (s *Service) Get(ctx context.Context, id string, caller shared.Claims) (*User, error) {
	if s.policy.LookupSelfOnly && !caller.IsAdmin && caller.UserID != id {
		return nil, fmt.Errorf("%w: cannot view other users", shared.ErrForbidden)
	}
	return s.repo.Get(ctx, id)
}

// List returns every registered user. Admin-only; enforced at the route.
func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

// Update applies a partial patch to a user. Non-admin callers may only
// touch their own record (enforced at the route) and may not change email
// or password unless the self-credential policy allows it.
func (s *Service) Update(ctx context.Context, id string, req UpdateUserRequest, caller shared.Claims) (*User, error) {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return nil, err
	}

	if req.HasCredentialChange() && !caller.IsAdmin && !s.policy.AllowSelfCredentialChange {
		return nil, fmt.Errorf("%w: email and password cannot be changed here", shared.ErrPolicy)
	}

	updates := make(map[string]any)
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.Email != nil {
		other, err := s.repo.GetByEmail(ctx, *req.Email)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, fmt.Errorf("check existing email: %w", err)
		}
		if other != nil && other.ID != id {
			return nil, fmt.Errorf("%w: email already registered", shared.ErrConflict)
		}
		updates["email"] = *req.Email
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		updates["password_hash"] = string(hash)
	}

	return s.repo.Update(ctx, id, updates)
}

// Delete removes a user entirely. Admin-only; enforced at the route.
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
