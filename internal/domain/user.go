package domain

import (
	"context"
	"strings"
	"time"
)

// User represents a registered user
type User struct {
	ID           int64
	Email        string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// UsernameFromEmail returns the local part of an email address.
func UsernameFromEmail(email string) string {
	if i := strings.IndexByte(email, '@'); i >= 0 {
		return email[:i]
	}
	return email
}

// PasswordHasher hashes and verifies passwords. Implementations embed their
// own salt in the hash.
type PasswordHasher interface {
	Hash(password string) (hash string, err error)
	Compare(hash, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID int64) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated user ID.
type TokenVerifier interface {
	Verify(token string) (userID int64, err error)
}

// UserRepository defines the interface for user storage.
// Create returns ErrUserExists on a duplicate email; GetByEmail returns
// ErrUserNotFound when no row matches.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
}

// AuthResult is returned by a successful register or login.
type AuthResult struct {
	Token string
	User  *User
}

// AuthService registers users and exchanges credentials for tokens.
type AuthService interface {
	Register(ctx context.Context, email, password string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
}
