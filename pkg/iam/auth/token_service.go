package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/incluempleo/vinculo/pkg/errx"
	"github.com/incluempleo/vinculo/pkg/kernel"
)

// TokenClaims is the validated content of an access token.
type TokenClaims struct {
	UserID    kernel.UserID
	Role      Role
	Email     kernel.Email
	ExpiresAt time.Time
}

// TokenService issues and validates access tokens.
type TokenService interface {
	GenerateAccessToken(userID kernel.UserID, role Role, email kernel.Email) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
}

// JWTService implements TokenService with HMAC-signed JWTs.
type JWTService struct {
	secretKey []byte
	ttl       time.Duration
	issuer    string
}

// NewJWTService creates a JWT token service.
func NewJWTService(secretKey string, ttl time.Duration, issuer string) *JWTService {
	return &JWTService{
		secretKey: []byte(secretKey),
		ttl:       ttl,
		issuer:    issuer,
	}
}

type accessClaims struct {
	Role  string `json:"role"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// GenerateAccessToken signs a token for the user.
func (s *JWTService) GenerateAccessToken(userID kernel.UserID, role Role, email kernel.Email) (string, error) {
	now := time.Now()
	claims := accessClaims{
		Role:  string(role),
		Email: string(email),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", errx.Wrap(err, "failed to sign access token", errx.TypeInternal)
	}
	return signed, nil
}

// ValidateAccessToken parses and verifies a token.
func (s *JWTService) ValidateAccessToken(tokenString string) (*TokenClaims, error) {
	var claims accessClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken()
	}

	role, err := ParseRole(claims.Role)
	if err != nil {
		return nil, ErrInvalidToken().WithDetail("role", claims.Role)
	}

	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	return &TokenClaims{
		UserID:    kernel.UserID(claims.Subject),
		Role:      role,
		Email:     kernel.Email(claims.Email),
		ExpiresAt: expiresAt,
	}, nil
}
