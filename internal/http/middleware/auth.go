// README: Bearer-token auth middleware with role resolution.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ayishathul-rinsha/Binnit/internal/infra"
	"github.com/ayishathul-rinsha/Binnit/internal/modules/identity"
	"github.com/ayishathul-rinsha/Binnit/internal/types"
)

const (
	ctxUID   = "uid"
	ctxEmail = "email"
	ctxRole  = "role"
)

// RoleLookup resolves a caller's role from the identity module.
type RoleLookup interface {
	Role(ctx context.Context, uid types.ID) (identity.Role, error)
}

// Auth verifies the Authorization bearer token and stores the caller's uid,
// email, and resolved role in the request context. Missing or invalid tokens
// abort with 401.
func Auth(verifier infra.TokenVerifier, roles RoleLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "missing authorization header"})
			return
		}
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "authorization header must be a bearer token"})
			return
		}

		token, err := verifier.VerifyIDToken(c.Request.Context(), raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid or expired token"})
			return
		}

		role, err := roles.Role(c.Request.Context(), types.ID(token.UID))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "error": "role lookup failed"})
			return
		}

		c.Set(ctxUID, token.UID)
		c.Set(ctxEmail, token.Email)
		c.Set(ctxRole, string(role))
		c.Next()
	}
}

// RequireRole gates a route group to the named roles. Runs after Auth.
func RequireRole(allowed ...identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := identity.Role(CallerRole(c))
		for _, a := range allowed {
			if role == a {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "error": "insufficient role"})
	}
}

func CallerUID(c *gin.Context) types.ID {
	return types.ID(c.GetString(ctxUID))
}

func CallerEmail(c *gin.Context) string {
	return c.GetString(ctxEmail)
}

func CallerRole(c *gin.Context) string {
	return c.GetString(ctxRole)
}
