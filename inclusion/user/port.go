package user

import (
	"context"

	"github.com/incluempleo/vinculo/pkg/iam/auth"
	"github.com/incluempleo/vinculo/pkg/kernel"
)

type Repository interface {
	// Create persists a new account
	Create(ctx context.Context, user *User) error

	// Update persists changes to an existing account
	Update(ctx context.Context, id kernel.UserID, user *User) error

	// GetByID retrieves an account by ID
	GetByID(ctx context.Context, id kernel.UserID) (*User, error)

	// GetByEmail retrieves an account by email
	GetByEmail(ctx context.Context, email kernel.Email) (*User, error)

	// ExistsByEmail checks whether an email is already registered
	ExistsByEmail(ctx context.Context, email kernel.Email) (bool, error)

	// List retrieves accounts with pagination, optionally filtered by role
	List(ctx context.Context, role *auth.Role, pagination kernel.PaginationOptions) (*kernel.Paginated[User], error)

	// CountByRole counts accounts per role
	CountByRole(ctx context.Context, role auth.Role) (int64, error)
}
