package userinfra

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/incluempleo/vinculo/inclusion/user"
	"github.com/incluempleo/vinculo/pkg/iam/auth"
	"github.com/incluempleo/vinculo/pkg/kernel"
)

// PostgresUserRepository implements user.Repository using PostgreSQL
type PostgresUserRepository struct {
	db *sqlx.DB
}

// NewPostgresUserRepository creates a new PostgreSQL user repository
func NewPostgresUserRepository(db *sqlx.DB) *PostgresUserRepository {
	return &PostgresUserRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type userModel struct {
	ID                   string    `db:"id"`
	Email                string    `db:"email"`
	PasswordHash         string    `db:"password_hash"`
	Role                 string    `db:"role"`
	FirstName            string    `db:"first_name"`
	LastName             string    `db:"last_name"`
	Phone                string    `db:"phone"`
	CompanyName          string    `db:"company_name"`
	CompanyNIT           string    `db:"company_nit"`
	DisabilityType       string    `db:"disability_type"`
	RequiresScreenReader bool      `db:"requires_screen_reader"`
	HighContrastMode     bool      `db:"high_contrast_mode"`
	LargeTextMode        bool      `db:"large_text_mode"`
	Status               string    `db:"status"`
	EmailVerified        bool      `db:"email_verified"`
	CreatedAt            time.Time `db:"created_at"`
	UpdatedAt            time.Time `db:"updated_at"`
}

const userColumns = `
	id, email, password_hash, role, first_name, last_name, phone,
	company_name, company_nit, disability_type,
	requires_screen_reader, high_contrast_mode, large_text_mode,
	status, email_verified, created_at, updated_at
`

// toEntity converts database model to domain entity
func (m *userModel) toEntity() *user.User {
	return &user.User{
		ID:             kernel.UserID(m.ID),
		Email:          kernel.Email(m.Email),
		PasswordHash:   m.PasswordHash,
		Role:           auth.Role(m.Role),
		FirstName:      kernel.FirstName(m.FirstName),
		LastName:       kernel.LastName(m.LastName),
		Phone:          kernel.Phone(m.Phone),
		CompanyName:    m.CompanyName,
		CompanyNIT:     kernel.NIT(m.CompanyNIT),
		DisabilityType: kernel.DisabilityCategory(m.DisabilityType),
		Accessibility: user.AccessibilityPreferences{
			RequiresScreenReader: m.RequiresScreenReader,
			HighContrastMode:     m.HighContrastMode,
			LargeTextMode:        m.LargeTextMode,
		},
		Status:        user.UserStatus(m.Status),
		EmailVerified: m.EmailVerified,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// fromEntity converts domain entity to database model
func fromEntity(u *user.User) *userModel {
	return &userModel{
		ID:                   string(u.ID),
		Email:                string(u.Email),
		PasswordHash:         u.PasswordHash,
		Role:                 string(u.Role),
		FirstName:            string(u.FirstName),
		LastName:             string(u.LastName),
		Phone:                string(u.Phone),
		CompanyName:          u.CompanyName,
		CompanyNIT:           string(u.CompanyNIT),
		DisabilityType:       string(u.DisabilityType),
		RequiresScreenReader: u.Accessibility.RequiresScreenReader,
		HighContrastMode:     u.Accessibility.HighContrastMode,
		LargeTextMode:        u.Accessibility.LargeTextMode,
		Status:               string(u.Status),
		EmailVerified:        u.EmailVerified,
		CreatedAt:            u.CreatedAt,
		UpdatedAt:            u.UpdatedAt,
	}
}

// ============================================================================
// Repository Implementation
// ============================================================================

// Create persists a new account
func (r *PostgresUserRepository) Create(ctx context.Context, u *user.User) error {
	model := fromEntity(u)

	query := `
		INSERT INTO users (
			id, email, password_hash, role, first_name, last_name, phone,
			company_name, company_nit, disability_type,
			requires_screen_reader, high_contrast_mode, large_text_mode,
			status, email_verified, created_at, updated_at
		) VALUES (
			:id, :email, :password_hash, :role, :first_name, :last_name, :phone,
			:company_name, :company_nit, :disability_type,
			:requires_screen_reader, :high_contrast_mode, :large_text_mode,
			:status, :email_verified, :created_at, :updated_at
		)
	`

	_, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" { // unique_violation
			return user.ErrUserAlreadyExists()
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// Update persists changes to an existing account
func (r *PostgresUserRepository) Update(ctx context.Context, id kernel.UserID, u *user.User) error {
	model := fromEntity(u)
	model.ID = string(id)

	query := `
		UPDATE users SET
			email = :email,
			password_hash = :password_hash,
			first_name = :first_name,
			last_name = :last_name,
			phone = :phone,
			company_name = :company_name,
			company_nit = :company_nit,
			disability_type = :disability_type,
			requires_screen_reader = :requires_screen_reader,
			high_contrast_mode = :high_contrast_mode,
			large_text_mode = :large_text_mode,
			status = :status,
			email_verified = :email_verified,
			updated_at = :updated_at
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return user.ErrUserNotFound()
	}

	return nil
}

// GetByID retrieves an account by ID
func (r *PostgresUserRepository) GetByID(ctx context.Context, id kernel.UserID) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var model userModel
	err := r.db.GetContext(ctx, &model, query, string(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, user.ErrUserNotFound()
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return model.toEntity(), nil
}

// GetByEmail retrieves an account by email
func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email kernel.Email) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	var model userModel
	err := r.db.GetContext(ctx, &model, query, string(email))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, user.ErrUserNotFound()
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return model.toEntity(), nil
}

// ExistsByEmail checks whether an email is already registered
func (r *PostgresUserRepository) ExistsByEmail(ctx context.Context, email kernel.Email) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`
	if err := r.db.GetContext(ctx, &exists, query, string(email)); err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return exists, nil
}

// List retrieves accounts with pagination, optionally filtered by role
func (r *PostgresUserRepository) List(ctx context.Context, role *auth.Role, pagination kernel.PaginationOptions) (*kernel.Paginated[user.User], error) {
	where := ""
	args := []any{}
	if role != nil {
		where = ` WHERE role = $1`
		args = append(args, string(*role))
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM users` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	offset := (pagination.Page - 1) * pagination.PageSize
	totalPages := (total + pagination.PageSize - 1) / pagination.PageSize

	query := fmt.Sprintf(`
		SELECT %s FROM users%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, userColumns, where, len(args)+1, len(args)+2)
	args = append(args, pagination.PageSize, offset)

	var models []userModel
	if err := r.db.SelectContext(ctx, &models, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	entities := make([]user.User, 0, len(models))
	for _, model := range models {
		entities = append(entities, *model.toEntity())
	}

	return &kernel.Paginated[user.User]{
		Items: entities,
		Page: kernel.Page{
			Number: pagination.Page,
			Size:   pagination.PageSize,
			Total:  total,
			Pages:  totalPages,
		},
		Empty: len(entities) == 0,
	}, nil
}

// CountByRole counts accounts per role
func (r *PostgresUserRepository) CountByRole(ctx context.Context, role auth.Role) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM users WHERE role = $1`
	if err := r.db.GetContext(ctx, &count, query, string(role)); err != nil {
		return 0, fmt.Errorf("failed to count users by role: %w", err)
	}
	return count, nil
}
