package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockflowhq/stockflow-api/internal/domain/entity"
	"github.com/stockflowhq/stockflow-api/internal/domain/repository"
	"github.com/stockflowhq/stockflow-api/pkg/apperror"
	"github.com/stockflowhq/stockflow-api/pkg/utils"
)

// AuthService handles authentication-related operations
type AuthService struct {
	userRepo   repository.UserRepository
	jwtManager *utils.JWTManager
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, jwtManager *utils.JWTManager) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
	}
}

// RegisterInput represents the register input
type RegisterInput struct {
	Name      string
	Email     string
	Password  string
	StoreName string
}

// LoginInput represents the login input
type LoginInput struct {
	Email    string
	Password string
}

// AuthOutput represents a successful authentication result
type AuthOutput struct {
	User         *entity.User
	AccessToken  string
	RefreshToken string
}

// Register creates a new store owner account and returns tokens
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error) {
	existing, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("An account with this email already exists")
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Name:      input.Name,
		Email:     input.Email,
		Password:  hashedPassword,
		StoreName: input.StoreName,
		Role:      "owner",
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.issueTokens(user)
}

// Login authenticates a user and returns tokens
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthOutput, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(input.Password, user.Password) {
		return nil, apperror.ErrInvalidCredentials
	}
	return s.issueTokens(user)
}

// RefreshToken exchanges a valid refresh token for a new token pair
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*AuthOutput, error) {
	userID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrInvalidToken
	}
	return s.issueTokens(user)
}

// GetProfile retrieves the authenticated user's profile
func (s *AuthService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// UpdateProfileInput represents the update profile input
type UpdateProfileInput struct {
	UserID    uuid.UUID
	Name      *string
	StoreName *string
}

// UpdateProfile updates the authenticated user's profile
func (s *AuthService) UpdateProfile(ctx context.Context, input *UpdateProfileInput) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.StoreName != nil {
		user.StoreName = *input.StoreName
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword changes the authenticated user's password
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, current, updated string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NewNotFoundError("User")
	}
	if !utils.CheckPasswordHash(current, user.Password) {
		return apperror.ErrInvalidCredentials
	}

	hashedPassword, err := utils.HashPassword(updated)
	if err != nil {
		return err
	}
	user.Password = hashedPassword
	return s.userRepo.Update(ctx, user)
}

func (s *AuthService) issueTokens(user *entity.User) (*AuthOutput, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthOutput{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
