package auth

import (
	"fmt"
	"time"

	"geoevents/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

type jwtClaims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"userId"`
}

type jwtIssuer struct {
	secret []byte
	expiry time.Duration
}

// NewJWTIssuer returns a TokenIssuer that signs JWTs with HS256 using the given secret.
// Every token expires after expiry.
func NewJWTIssuer(secret string, expiry time.Duration) domain.TokenIssuer {
	return &jwtIssuer{secret: []byte(secret), expiry: expiry}
}

func (i *jwtIssuer) Issue(userID int64) (string, error) {
	now := time.Now()
	claims := jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.expiry)),
		},
		UserID: userID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

type jwtVerifier struct {
	secret []byte
}

// NewJWTVerifier returns a TokenVerifier for tokens produced by NewJWTIssuer
// with the same secret.
func NewJWTVerifier(secret string) domain.TokenVerifier {
	return &jwtVerifier{secret: []byte(secret)}
}

func (v *jwtVerifier) Verify(tokenString string) (int64, error) {
	claims := &jwtClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrUnauthorized, err)
	}
	if claims.UserID <= 0 {
		return 0, fmt.Errorf("%w: token has no user", domain.ErrUnauthorized)
	}
	return claims.UserID, nil
}
