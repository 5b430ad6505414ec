package user

import (
	"fmt"
	"strings"
	"time"

	"github.com/incluempleo/vinculo/pkg/iam/auth"
	"github.com/incluempleo/vinculo/pkg/kernel"
)

// UserStatus represents the status of an account
type UserStatus string

const (
	UserStatusActive   UserStatus = "ACTIVE"   // Can log in and operate
	UserStatusInactive UserStatus = "INACTIVE" // Deactivated by an admin
)

// AccessibilityPreferences are the per-account UI accommodations. They are
// returned on login so clients can apply them before rendering anything.
type AccessibilityPreferences struct {
	RequiresScreenReader bool `db:"requires_screen_reader" json:"requires_screen_reader"`
	HighContrastMode     bool `db:"high_contrast_mode" json:"high_contrast_mode"`
	LargeTextMode        bool `db:"large_text_mode" json:"large_text_mode"`
}

type User struct {
	ID           kernel.UserID    `db:"id" json:"id"`
	Email        kernel.Email     `db:"email" json:"email"`
	PasswordHash string           `db:"password_hash" json:"-"`
	Role         auth.Role        `db:"role" json:"role"`
	FirstName    kernel.FirstName `db:"first_name" json:"first_name"`
	LastName     kernel.LastName  `db:"last_name" json:"last_name"`
	Phone        kernel.Phone     `db:"phone" json:"phone"`

	// Company accounts only
	CompanyName string     `db:"company_name" json:"company_name,omitempty"`
	CompanyNIT  kernel.NIT `db:"company_nit" json:"company_nit,omitempty"`

	// Candidate accounts only; public taxonomy, never the coded report enum
	DisabilityType kernel.DisabilityCategory `db:"disability_type" json:"disability_type,omitempty"`

	Accessibility AccessibilityPreferences `db:"accessibility" json:"accessibility"`

	Status        UserStatus `db:"status" json:"status"`
	EmailVerified bool       `db:"email_verified" json:"email_verified"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsActive checks if the account can operate
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// IsCandidate checks the account role
func (u *User) IsCandidate() bool {
	return u.Role == auth.RoleCandidate
}

// IsCompany checks the account role
func (u *User) IsCompany() bool {
	return u.Role == auth.RoleCompany
}

// IsAdmin checks the account role
func (u *User) IsAdmin() bool {
	return u.Role == auth.RoleAdmin
}

// GetFullName returns the display name; company accounts show their legal
// name when personal names are blank.
func (u *User) GetFullName() string {
	full := strings.TrimSpace(fmt.Sprintf("%s %s", u.FirstName, u.LastName))
	if full == "" && u.IsCompany() {
		return u.CompanyName
	}
	return full
}

// Deactivate marks the account as inactive
func (u *User) Deactivate() {
	u.Status = UserStatusInactive
	u.UpdatedAt = time.Now()
}

// Activate marks the account as active
func (u *User) Activate() {
	u.Status = UserStatusActive
	u.UpdatedAt = time.Now()
}

// UpdateContactInfo updates phone and names, keeping blanks untouched
func (u *User) UpdateContactInfo(firstName kernel.FirstName, lastName kernel.LastName, phone kernel.Phone) {
	if firstName != "" {
		u.FirstName = firstName
	}
	if lastName != "" {
		u.LastName = lastName
	}
	if phone != "" {
		u.Phone = phone
	}
	u.UpdatedAt = time.Now()
}

// UpdateAccessibility replaces the accessibility preferences
func (u *User) UpdateAccessibility(prefs AccessibilityPreferences) {
	u.Accessibility = prefs
	u.UpdatedAt = time.Now()
}

// UpdateCompanyInfo updates the legal identity of a company account
func (u *User) UpdateCompanyInfo(name string, nit kernel.NIT) error {
	if !u.IsCompany() {
		return ErrNotACompany()
	}
	if nit != "" && !nit.IsValid() {
		return ErrInvalidNIT().WithDetail("nit", nit.String())
	}
	if name != "" {
		u.CompanyName = name
	}
	if nit != "" {
		u.CompanyNIT = nit
	}
	u.UpdatedAt = time.Now()
	return nil
}
