package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-management-api/internal/constants"
	apierrors "github.com/yukikurage/project-management-api/internal/errors"
	"github.com/yukikurage/project-management-api/internal/logging"
	"github.com/yukikurage/project-management-api/internal/services"
)

// TokenValidator validates bearer tokens
type TokenValidator interface {
	Validate(token string) (*services.Claims, error)
}

// Route identifies an endpoint by method and path
type Route struct {
	Method string
	Path   string
}

// PublicRoutes are reachable without a token
var PublicRoutes = []Route{
	{Method: http.MethodPost, Path: "/auth/login"},
	{Method: http.MethodPost, Path: "/auth/register"},
	{Method: http.MethodGet, Path: "/health"},
	{Method: http.MethodGet, Path: "/metrics"},
}

// RequireAuth checks the bearer token of every request except the exempt routes
func RequireAuth(tokens TokenValidator, exempt ...Route) gin.HandlerFunc {
	public := make(map[Route]bool, len(exempt))
	for _, r := range exempt {
		public[r] = true
	}

	return func(c *gin.Context) {
		if public[Route{Method: c.Request.Method, Path: c.Request.URL.Path}] {
			c.Next()
			return
		}

		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			apierrors.Unauthorized(c, "missing or invalid token")
			return
		}

		claims, err := tokens.Validate(token)
		if err != nil {
			logging.FromContext(c).Debug("token rejected", "error", err)
			apierrors.Unauthorized(c, "invalid or expired token")
			return
		}

		// Store identity in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, claims.UserID)
		c.Set(constants.ContextKeyUserEmail, claims.Email)
		c.Set(constants.ContextKeyClaims, claims)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}

// GetClaims retrieves the validated token claims from context
func GetClaims(c *gin.Context) (*services.Claims, bool) {
	v, exists := c.Get(constants.ContextKeyClaims)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*services.Claims)
	return claims, ok
}
