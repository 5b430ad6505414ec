package usersrv

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/incluempleo/vinculo/inclusion/user"
	"github.com/incluempleo/vinculo/pkg/iam/auth"
	"github.com/incluempleo/vinculo/pkg/kernel"
	"github.com/incluempleo/vinculo/pkg/logx"
)

// Service handles account business logic
type Service struct {
	repo       user.Repository
	passwords  auth.PasswordService
	tokens     auth.TokenService
	sessionTTL time.Duration
}

// NewService creates a new account service
func NewService(repo user.Repository, passwords auth.PasswordService, tokens auth.TokenService, sessionTTL time.Duration) *Service {
	return &Service{
		repo:       repo,
		passwords:  passwords,
		tokens:     tokens,
		sessionTTL: sessionTTL,
	}
}

// Register creates a new account and opens a session for it
func (s *Service) Register(ctx context.Context, req user.RegisterRequest) (*user.SessionResponse, error) {
	if !req.Email.IsValid() {
		return nil, user.ErrInvalidEmail().WithDetail("email", req.Email.String())
	}
	if len(req.Password) < 8 {
		return nil, user.ErrWeakPassword()
	}
	if req.Role != auth.RoleCandidate && req.Role != auth.RoleCompany {
		// Admin accounts are provisioned out of band, never self-registered
		return nil, user.ErrInvalidRole().WithDetail("role", string(req.Role))
	}
	if req.Role == auth.RoleCompany && req.CompanyNIT != "" && !req.CompanyNIT.IsValid() {
		return nil, user.ErrInvalidNIT().WithDetail("nit", req.CompanyNIT.String())
	}
	if req.DisabilityType != "" && !req.DisabilityType.IsValid() {
		return nil, user.ErrInvalidDisability().WithDetail("disability_type", string(req.DisabilityType))
	}

	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, user.ErrUserAlreadyExists().WithDetail("email", req.Email.String())
	}

	hash, err := s.passwords.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	u := &user.User{
		ID:             kernel.NewUserID(uuid.NewString()),
		Email:          req.Email,
		PasswordHash:   hash,
		Role:           req.Role,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Phone:          req.Phone,
		CompanyName:    req.CompanyName,
		CompanyNIT:     req.CompanyNIT,
		DisabilityType: req.DisabilityType,
		Status:         user.UserStatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	logx.Infof("Registered %s account %s", u.Role, u.ID.String())

	return s.openSession(u)
}

// Login authenticates credentials and opens a session
func (s *Service) Login(ctx context.Context, req user.LoginRequest) (*user.SessionResponse, error) {
	u, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		// Do not reveal whether the email is registered
		return nil, auth.ErrInvalidCredentials()
	}

	if !s.passwords.Verify(u.PasswordHash, req.Password) {
		return nil, auth.ErrInvalidCredentials()
	}

	if !u.IsActive() {
		return nil, user.ErrUserInactive()
	}

	return s.openSession(u)
}

func (s *Service) openSession(u *user.User) (*user.SessionResponse, error) {
	token, err := s.tokens.GenerateAccessToken(u.ID, u.Role, u.Email)
	if err != nil {
		return nil, err
	}

	return &user.SessionResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(s.sessionTTL),
		User:      user.ToResponse(u),
	}, nil
}

// GetByID retrieves an account
func (s *Service) GetByID(ctx context.Context, id kernel.UserID) (*user.User, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateProfile applies a partial profile update
func (s *Service) UpdateProfile(ctx context.Context, id kernel.UserID, req user.UpdateProfileRequest) (*user.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	firstName := u.FirstName
	if req.FirstName != nil {
		firstName = *req.FirstName
	}
	lastName := u.LastName
	if req.LastName != nil {
		lastName = *req.LastName
	}
	phone := u.Phone
	if req.Phone != nil {
		phone = *req.Phone
	}
	u.FirstName = firstName
	u.LastName = lastName
	u.Phone = phone
	u.UpdatedAt = time.Now()

	if req.CompanyName != nil || req.CompanyNIT != nil {
		name := u.CompanyName
		if req.CompanyName != nil {
			name = *req.CompanyName
		}
		nit := u.CompanyNIT
		if req.CompanyNIT != nil {
			nit = *req.CompanyNIT
		}
		if err := u.UpdateCompanyInfo(name, nit); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, id, u); err != nil {
		return nil, err
	}
	return u, nil
}

// UpdateAccessibility replaces the accessibility preferences of an account
func (s *Service) UpdateAccessibility(ctx context.Context, id kernel.UserID, req user.UpdateAccessibilityRequest) (*user.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	u.UpdateAccessibility(user.AccessibilityPreferences{
		RequiresScreenReader: req.RequiresScreenReader,
		HighContrastMode:     req.HighContrastMode,
		LargeTextMode:        req.LargeTextMode,
	})

	if err := s.repo.Update(ctx, id, u); err != nil {
		return nil, err
	}
	return u, nil
}

// SetActive activates or deactivates an account. Admin operation.
func (s *Service) SetActive(ctx context.Context, id kernel.UserID, active bool) (*user.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if active {
		u.Activate()
	} else {
		u.Deactivate()
	}

	if err := s.repo.Update(ctx, id, u); err != nil {
		return nil, err
	}

	logx.Infof("Account %s set active=%t", id.String(), active)
	return u, nil
}

// List retrieves accounts with pagination, optionally filtered by role
func (s *Service) List(ctx context.Context, role *auth.Role, pagination kernel.PaginationOptions) (*kernel.Paginated[user.User], error) {
	return s.repo.List(ctx, role, pagination)
}
