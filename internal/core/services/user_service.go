package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/timekeep-hq/timekeep_app/internal/apperrors"
	"github.com/timekeep-hq/timekeep_app/internal/core/domain"
	portsrepo "github.com/timekeep-hq/timekeep_app/internal/core/ports/repositories"
	portssvc "github.com/timekeep-hq/timekeep_app/internal/core/ports/services"
	"github.com/timekeep-hq/timekeep_app/internal/dto"
	"github.com/timekeep-hq/timekeep_app/internal/utils"
)

// userService implements the UserSvcFacade interface.
type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new user service with the provided dependencies.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{
		userRepo: userRepo,
	}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// RegisterUser registers a new local user with a bcrypt-hashed password.
func (s *userService) RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error) {
	if existing, err := s.userRepo.FindUserByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, apperrors.NewConflictError("a user with this email already exists")
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, err
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		AuthProvider: domain.ProviderLocal,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	user.CreatedBy = user.UserID
	user.LastUpdatedBy = user.UserID

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to save user",
			slog.String("email", req.Email))
		return nil, err
	}

	s.LogInfo(ctx, "User registered successfully",
		slog.String("user_id", user.UserID))
	return &user, nil
}

// AuthenticateUser verifies email and password for a local login.
func (s *userService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}
	if user.AuthProvider != domain.ProviderLocal || user.PasswordHash == "" {
		return nil, apperrors.ErrUnauthorized
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}

// GetUserByID retrieves a user by their ID.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find user by ID",
				slog.String("user_id", userID))
		}
		return nil, err
	}
	return user, nil
}

// FindOrCreateGoogleUser resolves the local user for a verified Google
// identity, creating one on first login.
func (s *userService) FindOrCreateGoogleUser(ctx context.Context, info *domain.GoogleUserInfo) (*domain.User, error) {
	if info == nil || info.Email == "" {
		return nil, apperrors.NewValidationFailedError("google user info is missing an email")
	}

	user, err := s.userRepo.FindUserByEmail(ctx, info.Email)
	if err == nil {
		// Existing local account logging in via Google for the first time
		// gets linked to the provider identity.
		if user.AuthProvider == domain.ProviderLocal && user.ProviderUserID == nil {
			providerID := info.ID
			user.AuthProvider = domain.ProviderGoogle
			user.ProviderUserID = &providerID
			user.LastUpdatedAt = time.Now()
			user.LastUpdatedBy = user.UserID
			if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
				s.LogError(ctx, err, "Failed to link google identity to existing user",
					slog.String("user_id", user.UserID))
				return nil, err
			}
		}
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	providerID := info.ID
	now := time.Now()
	newUser := domain.User{
		UserID:         uuid.NewString(),
		Name:           info.Name,
		Email:          info.Email,
		AuthProvider:   domain.ProviderGoogle,
		ProviderUserID: &providerID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	newUser.CreatedBy = newUser.UserID
	newUser.LastUpdatedBy = newUser.UserID

	if err := s.userRepo.SaveUser(ctx, newUser); err != nil {
		s.LogError(ctx, err, "Failed to create user from google identity",
			slog.String("email", info.Email))
		return nil, err
	}
	s.LogInfo(ctx, "User created from google login",
		slog.String("user_id", newUser.UserID))
	return &newUser, nil
}

// StoreRefreshTokenHash persists the hash of the rotating refresh token.
func (s *userService) StoreRefreshTokenHash(ctx context.Context, userID, tokenHash string, expiry time.Time) error {
	if err := s.userRepo.UpdateRefreshToken(ctx, userID, tokenHash, &expiry); err != nil {
		s.LogError(ctx, err, "Failed to store refresh token hash",
			slog.String("user_id", userID))
		return err
	}
	return nil
}

// ClearRefreshToken invalidates the stored refresh token (logout).
func (s *userService) ClearRefreshToken(ctx context.Context, userID string) error {
	if err := s.userRepo.UpdateRefreshToken(ctx, userID, "", nil); err != nil {
		s.LogError(ctx, err, "Failed to clear refresh token",
			slog.String("user_id", userID))
		return err
	}
	return nil
}
