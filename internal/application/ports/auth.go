package ports

import (
	"context"

	"chart-insight-api/internal/domain/user"
)

type Auth interface {
	HashPassword(password string) (string, error)
	GenerateToken(u *user.User, requestPassword string) (string, error)
	// CurrentUser resolves a bearer token to a live user record. A valid
	// token whose user no longer exists is a credentials failure.
	CurrentUser(ctx context.Context, token string) (*user.User, error)
}
