package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/thugozi/foodtruck-api/internal/core/domain"
	"github.com/thugozi/foodtruck-api/internal/core/ports"
)

const defaultTokenTTL = 30 * 24 * time.Hour

// Bootstrap credentials accepted only while no admin record exists; the
// first login stores a hashed copy and the fallback stops matching.
const (
	bootstrapAdminUsername = "admin"
	bootstrapAdminPassword = "admin@123"
)

type authService struct {
	users     ports.UserRepository
	admins    ports.AdminRepository
	ledger    *PointsLedger
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAuthService returns the identity service for customers and admins.
func NewAuthService(
	users ports.UserRepository,
	admins ports.AdminRepository,
	ledger *PointsLedger,
	jwtSecret string,
	tokenTTL time.Duration,
	logger zerolog.Logger,
) ports.AuthService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &authService{
		users:     users,
		admins:    admins,
		ledger:    ledger,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
		now:       time.Now,
	}
}

// Register creates a user for a new phone number or logs the existing one
// in. Each authentication re-checks loyalty eligibility, runs the points
// decay check against the previous visit, then stamps last_visit.
func (s *authService) Register(ctx context.Context, phone, name string) (*ports.AuthResult, error) {
	if phone == "" || name == "" {
		return nil, domain.Validationf("phone number and name are required")
	}

	now := s.now().UTC()

	user, err := s.users.FindByPhone(ctx, phone)
	if err == nil {
		if err := s.onAuthenticated(ctx, user, now); err != nil {
			return nil, err
		}
		token, err := s.generateToken(user.ID, domain.RoleUser)
		if err != nil {
			return nil, err
		}
		return &ports.AuthResult{Token: token, User: user}, nil
	}
	if !domain.IsNotFound(err) {
		return nil, err
	}

	user = &domain.User{
		ID:                 uuid.NewString(),
		PhoneNumber:        phone,
		Name:               name,
		VerificationStatus: domain.VerificationNotApplied,
		LastVisit:          &now,
		CreatedAt:          now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.generateToken(user.ID, domain.RoleUser)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user registered")
	return &ports.AuthResult{Token: token, User: user, IsNewUser: true}, nil
}

// onAuthenticated applies the per-login loyalty housekeeping in order:
// single-user expiry re-check, decay walk against the prior last_visit, then
// the new visit stamp.
func (s *authService) onAuthenticated(ctx context.Context, user *domain.User, now time.Time) error {
	if user.IsStudent && user.DOB != "" && user.LoyaltyActive && !IsEligible(user.DOB, now) {
		if err := s.users.SetLoyaltyActive(ctx, user.ID, false); err != nil {
			return err
		}
		user.LoyaltyActive = false
		s.logger.Info().Str("user_id", user.ID).Msg("loyalty disabled on login, user aged out")
	}

	if err := s.ledger.DecayCheck(ctx, user, now); err != nil {
		return err
	}

	if err := s.users.SetLastVisit(ctx, user.ID, now); err != nil {
		return err
	}
	user.LastVisit = &now
	return nil
}

func (s *authService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *authService) AdminLogin(ctx context.Context, username, password string) (string, error) {
	admin, err := s.admins.FindByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, domain.ErrAdminNotFound) {
			return "", err
		}
		return s.bootstrapAdmin(ctx, username, password)
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return "", domain.ErrInvalidCredentials
	}
	return s.generateToken(admin.ID, domain.RoleAdmin)
}

// bootstrapAdmin performs first-time setup: the default credentials create a
// stored admin record with a hashed password.
func (s *authService) bootstrapAdmin(ctx context.Context, username, password string) (string, error) {
	if username != bootstrapAdminUsername || password != bootstrapAdminPassword {
		return "", domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	admin := &domain.AdminUser{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		return "", err
	}

	s.logger.Warn().Msg("default admin created, change the password immediately")
	return s.generateToken(admin.ID, domain.RoleAdmin)
}

func (s *authService) ChangeAdminPassword(ctx context.Context, adminID, current, next string) error {
	admin, err := s.admins.FindByID(ctx, adminID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(current)) != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.admins.UpdatePassword(ctx, adminID, string(hash))
}

func (s *authService) ChangeAdminUsername(ctx context.Context, adminID, username, password string) error {
	admin, err := s.admins.FindByID(ctx, adminID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return domain.ErrInvalidCredentials
	}

	if _, err := s.admins.FindByUsername(ctx, username); err == nil {
		return domain.ErrUsernameTaken
	} else if !errors.Is(err, domain.ErrAdminNotFound) {
		return err
	}

	return s.admins.UpdateUsername(ctx, adminID, username)
}

func (s *authService) generateToken(subjectID, role string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": subjectID,
		"role":    role,
		"exp":     s.now().Add(s.tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
