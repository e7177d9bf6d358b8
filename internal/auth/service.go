package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/hbnb-stays/hbnb/internal/shared"
)

// Service wraps authentication business rules.
type Service struct {
	repo   Repository
	tokens *TokenManager
}

// NewService constructs a new Service.
func NewService(repo Repository, tokens *TokenManager) *Service {
	return &Service{repo: repo, tokens: tokens}
}

// Authenticate validates email/password credentials and issues an access
// token. Unknown email and wrong password fail identically so the response
// leaks nothing about account existence.
func (s *Service) Authenticate(ctx context.Context, email, password string) (string, error) {
	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return "", shared.ErrInvalidCredentials
	}
	return s.tokens.Issue(account.ID, account.IsAdmin)
}
