package middlewares

import (
	"context"
	"net/http"
	"strings"

	"github.com/aiotlab/webserver_backend/utils"
	"github.com/gin-gonic/gin"
)

type authString string

// AuthMiddleware parses a bearer token when one is present and stashes the
// claims in the request context. Requests without a token pass through;
// RequireAuth decides which routes demand one.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := strings.TrimSpace(c.Request.Header.Get("Authorization"))

		if auth == "" {
			c.Next()
			return
		}

		if !strings.HasPrefix(strings.ToLower(auth), "bearer ") {
			c.Next()
			return
		}
		token := strings.TrimSpace(auth[len("bearer "):])

		validated, err := utils.JwtValidate(token)
		if err != nil || !validated.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		claims, _ := validated.Claims.(*utils.JwtCustomClaim)

		ctx := context.WithValue(c.Request.Context(), authString("auth"), claims)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireAuth aborts with 401 unless AuthMiddleware stored valid claims.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CtxValue(c.Request.Context()) == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func CtxValue(ctx context.Context) *utils.JwtCustomClaim {
	raw, _ := ctx.Value(authString("auth")).(*utils.JwtCustomClaim)
	return raw
}
