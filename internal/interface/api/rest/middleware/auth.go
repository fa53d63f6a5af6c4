package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"chart-insight-api/internal/application/ports"
)

const (
	CtxUserID    = "userID"
	CtxUserEmail = "userEmail"

	// one message for every token failure so nothing leaks about why
	MsgCouldNotValidate = "could not validate credentials"
)

func AuthMiddleware(authService ports.Auth) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Header("WWW-Authenticate", "Bearer")
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": MsgCouldNotValidate},
			)
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == authHeader {
			c.Header("WWW-Authenticate", "Bearer")
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": MsgCouldNotValidate},
			)
			return
		}

		u, err := authService.CurrentUser(c.Request.Context(), tokenStr)
		if err != nil {
			c.Header("WWW-Authenticate", "Bearer")
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": MsgCouldNotValidate},
			)
			return
		}

		c.Set(CtxUserID, u.ID)
		c.Set(CtxUserEmail, u.Email)

		c.Next()
	}
}
