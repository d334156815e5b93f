package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pathfinderhq/pathfinder/internal/domain"
	"github.com/pathfinderhq/pathfinder/internal/models"
)

// Gin context keys set by AuthMiddleware.
const (
	UserKey     = "user"
	UsernameKey = "username"
)

// authTimingFloor is the minimum response time for a rejected token so that
// malformed, expired and unknown-user tokens are indistinguishable by latency.
const authTimingFloor = 50 * time.Millisecond

// TokenParser resolves a bearer token to the user it was issued for.
type TokenParser interface {
	ParseToken(ctx context.Context, token string) (*models.User, error)
}

func enforceTimingFloor(start time.Time) {
	if elapsed := time.Since(start); elapsed < authTimingFloor {
		time.Sleep(authTimingFloor - elapsed)
	}
}

// AuthMiddleware authenticates requests via an HS-signed bearer token and
// stores the user in the gin context and the request context.
func AuthMiddleware(parser TokenParser, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		defer func() {
			if c.Writer.Status() == http.StatusUnauthorized {
				enforceTimingFloor(start)
			}
		}()

		token := ExtractBearerToken(c)
		if token == "" {
			unauthorized(c, "missing or invalid authorization header")
			return
		}

		user, err := parser.ParseToken(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, models.ErrInvalidToken) {
				logAuthFailure(log, c, err)
				unauthorized(c, "could not validate credentials")
				return
			}

			log.WithError(err).Error("token user lookup failed")
			respondError(c, http.StatusInternalServerError, "internal_error", "internal server error")
			return
		}

		c.Set(UserKey, user)
		c.Set(UsernameKey, user.Username)
		c.Request = c.Request.WithContext(domain.WithActor(c.Request.Context(), user.Username))
		c.Next()
	}
}

// CurrentUser returns the user set by AuthMiddleware.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(UserKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*models.User)
	return u, ok
}

// ExtractBearerToken returns the token from an "Authorization: Bearer <token>"
// header. The scheme is matched case-insensitively.
func ExtractBearerToken(c *gin.Context) string {
	scheme, token, ok := strings.Cut(c.GetHeader("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func unauthorized(c *gin.Context, message string) {
	c.Header("WWW-Authenticate", "Bearer")
	respondError(c, http.StatusUnauthorized, "unauthorized", message)
}

func logAuthFailure(log *logrus.Logger, c *gin.Context, err error) {
	log.WithFields(logrus.Fields{
		"client_ip":  c.ClientIP(),
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"user_agent": c.Request.UserAgent(),
		"request_id": c.GetString(RequestIDKey),
		"reason":     err.Error(),
	}).Warn("authentication failed")
}
