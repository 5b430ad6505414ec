package user

import (
	"time"

	"github.com/incluempleo/vinculo/pkg/iam/auth"
	"github.com/incluempleo/vinculo/pkg/kernel"
)

// RegisterRequest - DTO for creating a new account
type RegisterRequest struct {
	Email          kernel.Email              `json:"email" validate:"required"`
	Password       string                    `json:"password" validate:"required"`
	Role           auth.Role                 `json:"role" validate:"required"`
	FirstName      kernel.FirstName          `json:"first_name,omitempty"`
	LastName       kernel.LastName           `json:"last_name,omitempty"`
	Phone          kernel.Phone              `json:"phone,omitempty"`
	CompanyName    string                    `json:"company_name,omitempty"`
	CompanyNIT     kernel.NIT                `json:"company_nit,omitempty"`
	DisabilityType kernel.DisabilityCategory `json:"disability_type,omitempty"`
}

// LoginRequest - DTO for authenticating
type LoginRequest struct {
	Email    kernel.Email `json:"email" validate:"required"`
	Password string       `json:"password" validate:"required"`
}

// UpdateProfileRequest - DTO for profile updates
type UpdateProfileRequest struct {
	FirstName   *kernel.FirstName `json:"first_name,omitempty"`
	LastName    *kernel.LastName  `json:"last_name,omitempty"`
	Phone       *kernel.Phone     `json:"phone,omitempty"`
	CompanyName *string           `json:"company_name,omitempty"`
	CompanyNIT  *kernel.NIT       `json:"company_nit,omitempty"`
}

// UpdateAccessibilityRequest - DTO for accessibility preference updates
type UpdateAccessibilityRequest struct {
	RequiresScreenReader bool `json:"requires_screen_reader"`
	HighContrastMode     bool `json:"high_contrast_mode"`
	LargeTextMode        bool `json:"large_text_mode"`
}

// SessionResponse - DTO returned on successful login or registration
type SessionResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	User      *UserResponse `json:"user"`
}

// UserResponse - DTO for returning account data (never the password hash)
type UserResponse struct {
	ID             kernel.UserID             `json:"id"`
	Email          kernel.Email              `json:"email"`
	Role           auth.Role                 `json:"role"`
	FirstName      kernel.FirstName          `json:"first_name,omitempty"`
	LastName       kernel.LastName           `json:"last_name,omitempty"`
	Phone          kernel.Phone              `json:"phone,omitempty"`
	CompanyName    string                    `json:"company_name,omitempty"`
	CompanyNIT     kernel.NIT                `json:"company_nit,omitempty"`
	DisabilityType kernel.DisabilityCategory `json:"disability_type,omitempty"`
	Accessibility  AccessibilityPreferences  `json:"accessibility"`
	Status         UserStatus                `json:"status"`
	EmailVerified  bool                      `json:"email_verified"`
	CreatedAt      time.Time                 `json:"created_at"`
}

// ToResponse converts a User entity to its response DTO
func ToResponse(u *User) *UserResponse {
	return &UserResponse{
		ID:             u.ID,
		Email:          u.Email,
		Role:           u.Role,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Phone:          u.Phone,
		CompanyName:    u.CompanyName,
		CompanyNIT:     u.CompanyNIT,
		DisabilityType: u.DisabilityType,
		Accessibility:  u.Accessibility,
		Status:         u.Status,
		EmailVerified:  u.EmailVerified,
		CreatedAt:      u.CreatedAt,
	}
}
