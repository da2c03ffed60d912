package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	domain "github.com/nexhr/worktime-backend-go/internal/domain/auth"
	"github.com/nexhr/worktime-backend-go/internal/domain/user"
	"github.com/nexhr/worktime-backend-go/internal/pkg/jwt"
)

type AuthServiceImpl struct {
	userRepo   user.UserRepository
	jwtService jwt.Service
}

func NewAuthService(userRepo user.UserRepository, jwtService jwt.Service) domain.Service {
	return &AuthServiceImpl{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Login implements auth.Service.
func (s *AuthServiceImpl) Login(ctx context.Context, req domain.LoginRequest) (domain.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return domain.TokenResponse{}, err
	}

	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return domain.TokenResponse{}, domain.ErrInvalidCredentials
		}
		return domain.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return domain.TokenResponse{}, domain.ErrInvalidCredentials
	}

	return s.issueTokens(u)
}

// Refresh implements auth.Service.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (domain.TokenResponse, error) {
	if s.jwtService.IsTokenRevoked(refreshToken) {
		return domain.TokenResponse{}, domain.ErrRefreshTokenRevoked
	}

	userID, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return domain.TokenResponse{}, domain.ErrTokenExpired
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return domain.TokenResponse{}, domain.ErrInvalidCredentials
		}
		return domain.TokenResponse{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	// Rotate: the presented refresh token is single-use.
	s.jwtService.RevokeToken(refreshToken)

	return s.issueTokens(u)
}

// Logout implements auth.Service.
func (s *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken != "" {
		s.jwtService.RevokeToken(refreshToken)
	}
	return nil
}

func (s *AuthServiceImpl) issueTokens(u user.User) (domain.TokenResponse, error) {
	accessToken, accessExp, err := s.jwtService.GenerateAccessToken(u.ID, u.Email, u.Role)
	if err != nil {
		return domain.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, refreshExp, err := s.jwtService.GenerateRefreshToken(u.ID)
	if err != nil {
		return domain.TokenResponse{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return domain.TokenResponse{
		AccessToken:  accessToken,
		ExpiresAt:    accessExp,
		RefreshToken: refreshToken,
		RefreshExp:   refreshExp,
		UserID:       u.ID,
		Email:        u.Email,
		Role:         string(u.Role),
		FullName:     u.FullName,
	}, nil
}
