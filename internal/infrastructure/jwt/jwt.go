package jwt

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"chart-insight-api/internal/domain/user"
)

// DefaultTTL bounds a token's lifetime when the caller does not pick one.
const DefaultTTL = 30 * time.Minute

// ErrInvalidToken covers every verification failure: bad signature,
// expired, malformed, missing or non-numeric subject. Callers must not
// distinguish the reasons to the end user.
var ErrInvalidToken = errors.New("invalid token")

type Service struct {
	jwtSecret string
}

func New(jwtSecret string) *Service { return &Service{jwtSecret: jwtSecret} }

type Claims struct {
	jwt.RegisteredClaims
}

// Issue mints a signed token whose subject is the user id in decimal
// string form, expiring after ttl (DefaultTTL when ttl <= 0).
func (s *Service) Issue(userID user.ID, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(s.jwtSecret))
}

// Verify checks the signature and expiry and resolves the subject claim
// back into a user id. It does not confirm the user still exists.
func (s *Service) Verify(tokenStr string) (user.ID, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.Subject == "" {
		return 0, ErrInvalidToken
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}

	return user.ID(id), nil
}
