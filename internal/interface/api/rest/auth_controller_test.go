package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"chart-insight-api/internal/application/ports"
	"chart-insight-api/internal/application/services"
	domain "chart-insight-api/internal/domain/user"
	userDB "chart-insight-api/internal/infrastructure/db/postgres/user"
	"chart-insight-api/internal/infrastructure/jwt"
	"chart-insight-api/internal/interface/api/rest/dto/auth"
	"chart-insight-api/internal/interface/api/rest/middleware"
)

type FakeAuth struct {
	HashPasswordFunc  func(password string) (string, error)
	GenerateTokenFunc func(u *domain.User, password string) (string, error)
	CurrentUserFunc   func(ctx context.Context, token string) (*domain.User, error)
}

func (f *FakeAuth) HashPassword(password string) (string, error) {
	if f.HashPasswordFunc == nil {
		return "hashed:" + password, nil
	}
	return f.HashPasswordFunc(password)
}

func (f *FakeAuth) GenerateToken(u *domain.User, password string) (string, error) {
	if f.GenerateTokenFunc == nil {
		return "", errors.New("not used")
	}
	return f.GenerateTokenFunc(u, password)
}

func (f *FakeAuth) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	if f.CurrentUserFunc == nil {
		return nil, jwt.ErrInvalidToken
	}
	return f.CurrentUserFunc(ctx, token)
}

// authAs accepts any bearer token as the given user.
func authAs(u *domain.User) *FakeAuth {
	return &FakeAuth{
		CurrentUserFunc: func(ctx context.Context, token string) (*domain.User, error) {
			return u, nil
		},
	}
}

func bearer() map[string]string {
	return map[string]string{"Authorization": "Bearer some-token"}
}

func newAuthRouter(t *testing.T, us ports.UserService, as ports.Auth) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	ac := &AuthController{
		logger:      zap.NewNop(),
		userService: us,
		authService: as,
	}
	r.POST(RouteRegister, ac.RegisterHandler)
	r.POST(RouteLogin, ac.LoginHandler)
	r.GET(RouteMe, middleware.AuthMiddleware(as), ac.MeHandler)

	return r
}

func validRegister() auth.RegisterRequest {
	return auth.RegisterRequest{
		Email:    "trader@example.com",
		Password: "pw123",
	}
}

func TestAuthController_RegisterHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		mockUS     func() ports.UserService
		mockAuth   func() ports.Auth
		wantStatus int
		wantErr    string
	}{
		{
			name:       "400 invalid JSON",
			body:       "{bad json",
			mockUS:     func() ports.UserService { return &FakeUserService{} },
			mockAuth:   func() ports.Auth { return &FakeAuth{} },
			wantStatus: http.StatusBadRequest,
			wantErr:    "invalid json",
		},
		{
			name:       "400 validation error",
			body:       auth.RegisterRequest{Email: "not-an-email", Password: "pw"},
			mockUS:     func() ports.UserService { return &FakeUserService{} },
			mockAuth:   func() ports.Auth { return &FakeAuth{} },
			wantStatus: http.StatusBadRequest,
			wantErr:    "invalid request body",
		},
		{
			name: "409 duplicate email",
			body: validRegister(),
			mockUS: func() ports.UserService {
				return &FakeUserService{
					CreateUserFunc: func(ctx context.Context, u domain.User) (*domain.User, error) {
						return nil, userDB.ErrEmailAlreadyExists
					},
				}
			},
			mockAuth:   func() ports.Auth { return &FakeAuth{} },
			wantStatus: http.StatusConflict,
		},
		{
			name: "500 service error",
			body: validRegister(),
			mockUS: func() ports.UserService {
				return &FakeUserService{
					CreateUserFunc: func(ctx context.Context, u domain.User) (*domain.User, error) {
						return nil, errors.New("db error")
					},
				}
			},
			mockAuth:   func() ports.Auth { return &FakeAuth{} },
			wantStatus: http.StatusInternalServerError,
			wantErr:    "failed to register",
		},
		{
			name: "201 created with hashed password",
			body: validRegister(),
			mockUS: func() ports.UserService {
				return &FakeUserService{
					CreateUserFunc: func(ctx context.Context, u domain.User) (*domain.User, error) {
						assert.Equal(t, "trader@example.com", u.Email)
						assert.Equal(t, "hashed:pw123", u.PasswordHash)
						u.ID = 1
						return &u, nil
					},
				}
			},
			mockAuth:   func() ports.Auth { return &FakeAuth{} },
			wantStatus: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			r := newAuthRouter(t, tt.mockUS(), tt.mockAuth())
			rr := doReq(t, r, http.MethodPost, RouteRegister, tt.body, nil)
			require.Equal(t, tt.wantStatus, rr.Code)

			if tt.wantErr != "" {
				var resp map[string]any
				_ = json.Unmarshal(rr.Body.Bytes(), &resp)
				assert.Equal(t, tt.wantErr, resp["error"])
			}

			if tt.wantStatus == http.StatusCreated {
				var resp map[string]any
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, "trader@example.com", resp["email"])
				// the hash never leaves the service
				assert.NotContains(t, rr.Body.String(), "hashed:")
			}
		})
	}
}

func TestAuthController_LoginHandler(t *testing.T) {
	someUser := &domain.User{ID: 1, Email: "trader@example.com", PasswordHash: "hash"}

	tests := []struct {
		name       string
		body       any
		mockUS     func() ports.UserService
		mockAuth   func() ports.Auth
		wantStatus int
		wantErr    string
	}{
		{
			name:       "400 invalid JSON",
			body:       "{bad json",
			mockUS:     func() ports.UserService { return &FakeUserService{} },
			mockAuth:   func() ports.Auth { return &FakeAuth{} },
			wantStatus: http.StatusBadRequest,
			wantErr:    "invalid json",
		},
		{
			name: "401 unknown email",
			body: auth.LoginRequest{Email: "trader@example.com", Password: "pw123"},
			mockUS: func() ports.UserService {
				return &FakeUserService{
					FindByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
						return nil, nil
					},
				}
			},
			mockAuth:   func() ports.Auth { return &FakeAuth{} },
			wantStatus: http.StatusUnauthorized,
			wantErr:    "incorrect email or password",
		},
		{
			name: "401 wrong password",
			body: auth.LoginRequest{Email: "trader@example.com", Password: "wrong"},
			mockUS: func() ports.UserService {
				return &FakeUserService{
					FindByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
						return someUser, nil
					},
				}
			},
			mockAuth: func() ports.Auth {
				return &FakeAuth{
					GenerateTokenFunc: func(u *domain.User, password string) (string, error) {
						return "", services.ErrInvalidCredentials
					},
				}
			},
			wantStatus: http.StatusUnauthorized,
			wantErr:    "incorrect email or password",
		},
		{
			name: "500 lookup failure",
			body: auth.LoginRequest{Email: "trader@example.com", Password: "pw123"},
			mockUS: func() ports.UserService {
				return &FakeUserService{
					FindByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
						return nil, errors.New("db error")
					},
				}
			},
			mockAuth:   func() ports.Auth { return &FakeAuth{} },
			wantStatus: http.StatusInternalServerError,
			wantErr:    "failed to get a user",
		},
		{
			name: "200 bearer token",
			body: auth.LoginRequest{Email: "trader@example.com", Password: "pw123"},
			mockUS: func() ports.UserService {
				return &FakeUserService{
					FindByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
						return someUser, nil
					},
				}
			},
			mockAuth: func() ports.Auth {
				return &FakeAuth{
					GenerateTokenFunc: func(u *domain.User, password string) (string, error) {
						assert.Equal(t, someUser.ID, u.ID)
						assert.Equal(t, "pw123", password)
						return "signed-token", nil
					},
				}
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			r := newAuthRouter(t, tt.mockUS(), tt.mockAuth())
			rr := doReq(t, r, http.MethodPost, RouteLogin, tt.body, nil)
			require.Equal(t, tt.wantStatus, rr.Code)

			if tt.wantErr != "" {
				var resp map[string]any
				_ = json.Unmarshal(rr.Body.Bytes(), &resp)
				assert.Equal(t, tt.wantErr, resp["error"])
			}

			if tt.wantStatus == http.StatusOK {
				var tok auth.Token
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &tok))
				assert.Equal(t, "signed-token", tok.AccessToken)
				assert.Equal(t, "Bearer", tok.TokenType)
			}
		})
	}
}

func TestAuthController_MeHandler(t *testing.T) {
	someUser := &domain.User{ID: 1, Email: "trader@example.com"}

	t.Run("401 without a token", func(t *testing.T) {
		r := newAuthRouter(t, &FakeUserService{}, &FakeAuth{})
		rr := doReq(t, r, http.MethodGet, RouteMe, nil, nil)
		require.Equal(t, http.StatusUnauthorized, rr.Code)

		var resp map[string]any
		_ = json.Unmarshal(rr.Body.Bytes(), &resp)
		assert.Equal(t, middleware.MsgCouldNotValidate, resp["error"])
	})

	t.Run("401 when the account is gone", func(t *testing.T) {
		us := &FakeUserService{
			FindUserByIDFunc: func(ctx context.Context, id domain.ID) (*domain.User, error) {
				return nil, nil
			},
		}
		r := newAuthRouter(t, us, authAs(someUser))
		rr := doReq(t, r, http.MethodGet, RouteMe, nil, bearer())
		require.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("200 current user", func(t *testing.T) {
		us := &FakeUserService{
			FindUserByIDFunc: func(ctx context.Context, id domain.ID) (*domain.User, error) {
				require.Equal(t, someUser.ID, id)
				return someUser, nil
			},
		}
		r := newAuthRouter(t, us, authAs(someUser))
		rr := doReq(t, r, http.MethodGet, RouteMe, nil, bearer())
		require.Equal(t, http.StatusOK, rr.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "trader@example.com", resp["email"])
	})
}
