package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/interviewprep/internal/domain/errors"
)

const (
	// UserIDContextKey is a gin context key for authenticated user identifier.
	UserIDContextKey = "userID"
	authCookieName   = "interviewprep_token"
)

// AdminAuthorizer resolves a token to an admin user id.
type AdminAuthorizer interface {
	Authorize(ctx context.Context, token string) (string, error)
}

// AdminRequired lets admins through and redirects everyone else to signInPath.
func AdminRequired(authorizer AdminAuthorizer, signInPath string, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ExtractToken(c)
		if token == "" {
			redirectToSignIn(c, signInPath)
			return
		}

		userID, err := authorizer.Authorize(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, domainErrors.ErrUnauthorized) || errors.Is(err, domainErrors.ErrForbidden) {
				redirectToSignIn(c, signInPath)
				return
			}
			logger.Error("authorize admin failed", slog.String("error", err.Error()))
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		c.Set(UserIDContextKey, userID)
		c.Next()
	}
}

func redirectToSignIn(c *gin.Context, signInPath string) {
	c.Redirect(http.StatusSeeOther, signInPath)
	c.Abort()
}

// ExtractToken reads the bearer token or falls back to the auth cookie.
func ExtractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}

	if cookie, err := c.Cookie(authCookieName); err == nil {
		return cookie
	}
	return ""
}

// SetAuthCookie writes auth token cookie to response.
func SetAuthCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(authCookieName, token, 0, "/", "", false, true)
	c.Header("Authorization", "Bearer "+token)
}
