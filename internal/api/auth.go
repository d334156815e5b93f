package api

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pathfinderhq/pathfinder/internal/metrics"
	"github.com/pathfinderhq/pathfinder/internal/middleware"
	"github.com/pathfinderhq/pathfinder/internal/models"
)

// LoginGuard tracks failed logins per username.
type LoginGuard interface {
	RetryAfter(username string) time.Duration
	RecordFailure(username string)
	Reset(username string)
}

// AuthHandler serves account registration, login and identity endpoints.
type AuthHandler struct {
	svc   AuthService
	guard LoginGuard
	log   *logrus.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(svc AuthService, guard LoginGuard, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, guard: guard, log: log}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())
		return
	}

	user, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, models.ErrDuplicateKey) {
			respondError(c, http.StatusConflict, ErrCodeConflict, "username already registered")
			return
		}

		respondInternal(c, h.log, err, "registering user")
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Login handles POST /auth/login. Credentials bind from JSON or from an
// OAuth2 password-grant style form.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())
		return
	}

	if wait := h.guard.RetryAfter(req.Username); wait > 0 {
		c.Header("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
		respondError(c, http.StatusTooManyRequests, ErrCodeRateLimited, "too many failed login attempts")
		return
	}

	tok, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			h.guard.RecordFailure(req.Username)
			metrics.LoginFailures.Inc()
			c.Header("WWW-Authenticate", "Bearer")
			respondError(c, http.StatusUnauthorized, ErrCodeUnauthorized, "incorrect username or password")
			return
		}

		respondInternal(c, h.log, err, "login")
		return
	}

	h.guard.Reset(req.Username)

	c.JSON(http.StatusOK, tok)
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, ErrCodeUnauthorized, "not authenticated")
		return
	}

	c.JSON(http.StatusOK, user)
}
