package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/quizapi/internal/app/models"
	"github.com/yigit/quizapi/internal/app/models/dto"
	"github.com/yigit/quizapi/internal/app/repositories"
	"github.com/yigit/quizapi/internal/pkg/apperrors"
	"github.com/yigit/quizapi/internal/pkg/auth"
	"github.com/yigit/quizapi/internal/pkg/validation"
)

// AuthService defines registration and login operations
type AuthService interface {
	// Register creates an account. requesterRole is the role of an authenticated caller, or empty.
	Register(ctx context.Context, req *dto.RegisterUserRequest, requesterRole models.RoleType) (int64, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

// authServiceImpl implements AuthService
type authServiceImpl struct {
	userRepo   repositories.IUserRepository
	hasher     *auth.PasswordHasher
	jwtService *auth.JWTService
	logger     zerolog.Logger

	// restrictAdminSignup limits ADMIN accounts to callers that already hold the ADMIN role
	restrictAdminSignup bool
}

// NewAuthService creates a new AuthService.
// With restrictAdminSignup set, only an ADMIN caller may register another ADMIN.
func NewAuthService(
	userRepo repositories.IUserRepository,
	hasher *auth.PasswordHasher,
	jwtService *auth.JWTService,
	restrictAdminSignup bool,
	logger zerolog.Logger,
) AuthService {
	return &authServiceImpl{
		userRepo:            userRepo,
		hasher:              hasher,
		jwtService:          jwtService,
		logger:              logger,
		restrictAdminSignup: restrictAdminSignup,
	}
}

// validateRegistration checks the fields binding tags cannot express
func (s *authServiceImpl) validateRegistration(req *dto.RegisterUserRequest) error {
	username := validation.NewStringValidation(req.Username).
		WithMinLength(validation.UsernameMinLength).
		WithMaxLength(validation.UsernameMaxLength).
		WithPattern(validation.CompiledPatterns.Username)
	if !username.Validate() {
		return apperrors.NewValidationError("username may only contain letters, digits, '.', '_' and '-'")
	}

	name := validation.NewStringValidation(req.Name).WithRequired(false).WithMaxLength(validation.NameMaxLength)
	if !name.Validate() {
		return apperrors.NewValidationError(fmt.Sprintf("name must not exceed %d characters", validation.NameMaxLength))
	}

	email := validation.NewStringValidation(req.Email).WithPattern(validation.CompiledPatterns.Email)
	if !email.Validate() {
		return apperrors.NewValidationError("email must be a valid email address")
	}

	if len(req.Password) < validation.PasswordMinLength || len(req.Password) > validation.PasswordMaxLength {
		return apperrors.NewValidationError(fmt.Sprintf("password must be between %d and %d characters",
			validation.PasswordMinLength, validation.PasswordMaxLength))
	}

	return nil
}

// Register hashes the password and stores a new user.
// An empty role defaults to STUDENT; the name defaults to the username.
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterUserRequest, requesterRole models.RoleType) (int64, error) {
	if err := s.validateRegistration(req); err != nil {
		return 0, err
	}

	role, ok := models.ParseRole(req.Role)
	if !ok {
		return 0, apperrors.NewValidationError("role must be STUDENT or ADMIN")
	}

	if role == models.RoleAdmin && s.restrictAdminSignup && requesterRole != models.RoleAdmin {
		s.logger.Warn().Str("username", req.Username).Msg("Rejected ADMIN registration from a non-admin caller")
		return 0, apperrors.NewForbiddenError("only an administrator can create ADMIN accounts")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = strings.TrimSpace(req.Username)
	}

	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		return 0, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Name:     name,
		Username: strings.TrimSpace(req.Username),
		Password: hashed,
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Role:     role,
	}

	id, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return 0, fmt.Errorf("user creation error: %w", err)
	}

	s.logger.Info().Int64("userID", id).Str("role", string(role)).Msg("User registered")
	return id, nil
}

// Login verifies the credentials and issues an access token.
// Unknown usernames and wrong passwords are indistinguishable to the caller.
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	match, err := s.hasher.Compare(user.Password, req.Password)
	if err != nil {
		s.logger.Warn().Err(err).Int64("userID", user.ID).Msg("Stored password hash could not be compared")
		return nil, apperrors.ErrInvalidCredentials
	}
	if !match {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwtService.GenerateAccessToken(user.ID, user.Username, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("error generating access token: %w", err)
	}

	return &dto.LoginResponse{
		Message:     "Login successful",
		UserID:      user.ID,
		Username:    user.Username,
		Role:        string(user.Role),
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
	}, nil
}
