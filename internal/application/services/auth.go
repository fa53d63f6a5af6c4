package services

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"chart-insight-api/internal/application/ports"
	"chart-insight-api/internal/domain/user"
	"chart-insight-api/internal/infrastructure/jwt"
)

var (
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrFailedToGenerateToken = errors.New("failed to generate token")
)

type AuthService struct {
	jwtService     *jwt.Service
	userRepository user.Repository
}

func NewAuthService(
	jwtService *jwt.Service,
	userRepository user.Repository,
) ports.Auth {
	return &AuthService{
		jwtService:     jwtService,
		userRepository: userRepository,
	}
}

func (as *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

func (as *AuthService) GenerateToken(u *user.User, requestPassword string) (string, error) {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(requestPassword))
	if err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := as.jwtService.Issue(u.ID, 0)
	if err != nil {
		return "", ErrFailedToGenerateToken
	}

	return token, nil
}

// CurrentUser verifies the token and resolves its subject against the
// user store. A verified token for a since-deleted user reads as an
// invalid token, never as a lookup miss.
func (as *AuthService) CurrentUser(ctx context.Context, token string) (*user.User, error) {
	id, err := as.jwtService.Verify(token)
	if err != nil {
		return nil, err
	}

	u, err := as.userRepository.FetchUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, jwt.ErrInvalidToken
	}

	return u, nil
}
