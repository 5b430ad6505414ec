package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/incluempleo/vinculo/pkg/kernel"
)

const authContextKey = "auth_context"

// AuthContext is the authenticated identity stored on the request.
type AuthContext struct {
	UserID kernel.UserID
	Role   Role
	Email  kernel.Email
	Scopes []string
}

// HasAnyScope reports whether the context holds at least one of the scopes.
func (a *AuthContext) HasAnyScope(scopes ...string) bool {
	for _, s := range scopes {
		if HasScope(a.Scopes, s) {
			return true
		}
	}
	return false
}

// Middleware authenticates bearer tokens and gates routes by role. It is the
// single authorization guard for the whole API; per-module role decorators
// do not exist.
type Middleware struct {
	tokenService TokenService
}

// NewMiddleware creates the auth middleware.
func NewMiddleware(tokenService TokenService) *Middleware {
	return &Middleware{tokenService: tokenService}
}

// Authenticate validates the Authorization header and stores the auth
// context on the request.
func (m *Middleware) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return ErrMissingToken()
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return ErrInvalidToken().WithDetail("header", "expected Bearer token")
		}

		claims, err := m.tokenService.ValidateAccessToken(parts[1])
		if err != nil {
			return err
		}

		c.Locals(authContextKey, &AuthContext{
			UserID: claims.UserID,
			Role:   claims.Role,
			Email:  claims.Email,
			Scopes: claims.Role.Scopes(),
		})
		return c.Next()
	}
}

// RequireRoles rejects requests whose authenticated role is not in the set.
// Runs after Authenticate.
func (m *Middleware) RequireRoles(roles ...Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authCtx, ok := GetAuthContext(c)
		if !ok {
			return ErrMissingToken()
		}
		for _, r := range roles {
			if authCtx.Role == r {
				return c.Next()
			}
		}
		return ErrForbiddenRole().WithDetail("role", authCtx.Role)
	}
}

// RequireScope rejects requests whose role does not grant the scope.
func (m *Middleware) RequireScope(scope string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authCtx, ok := GetAuthContext(c)
		if !ok {
			return ErrMissingToken()
		}
		if !HasScope(authCtx.Scopes, scope) {
			return ErrForbiddenRole().WithDetail("required_scope", scope)
		}
		return c.Next()
	}
}

// GetAuthContext extracts the auth context stored by Authenticate.
func GetAuthContext(c *fiber.Ctx) (*AuthContext, bool) {
	authCtx, ok := c.Locals(authContextKey).(*AuthContext)
	return authCtx, ok
}
