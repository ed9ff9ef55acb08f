package bloglist

import (
	"context"

	"github.com/goliatone/go-errors"
)

// IdentityStore is the slice of the credential store the authenticator
// needs.
type IdentityStore interface {
	GetByUsername(ctx context.Context, username string) (*User, error)
}

// Auther verifies credentials against the store and mints identity tokens.
type Auther struct {
	users  IdentityStore
	tokens TokenService
	logger Logger
}

// NewAuthenticator returns a new Authenticator
func NewAuthenticator(users IdentityStore, tokens TokenService) *Auther {
	return &Auther{
		users:  users,
		tokens: tokens,
		logger: defLogger{},
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// TokenService returns the TokenService instance used by this Authenticator
func (s *Auther) TokenService() TokenService {
	return s.tokens
}

// Login verifies the credential pair and returns a signed token plus the
// matched user. Unknown usernames and wrong passwords collapse into the same
// ErrInvalidCredentials.
func (s *Auther) Login(ctx context.Context, username, password string) (string, *User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.IsNotFound(err) {
			return "", nil, ErrInvalidCredentials
		}
		s.logger.Error("Login user lookup error", "error", err)
		return "", nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user during login")
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		if errors.Is(err, ErrMismatchedHashAndPassword) {
			return "", nil, ErrInvalidCredentials
		}
		s.logger.Error("Login password comparison error", "error", err)
		return "", nil, errors.Wrap(err, errors.CategoryInternal, "failed to compare password hash")
	}

	token, err := s.tokens.Generate(user.ID.String())
	if err != nil {
		s.logger.Error("Login token generation error", "error", err)
		return "", nil, err
	}

	return token, user, nil
}
