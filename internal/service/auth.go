package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/pathfinderhq/pathfinder/internal/domain"
	"github.com/pathfinderhq/pathfinder/internal/models"
)

// UserStore is the data-access interface AuthService depends on.
type UserStore interface {
	CreateUser(ctx context.Context, username, passwordHash string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// Compile-time check: *AuthService must satisfy domain.AuthService.
var _ domain.AuthService = (*AuthService)(nil)

// AuthConfig holds token signing parameters.
type AuthConfig struct {
	Secret     []byte
	Algorithm  string // HS256, HS384 or HS512
	TokenTTL   time.Duration
	BcryptCost int // 0 means bcrypt.DefaultCost
}

// AuthService registers users, verifies passwords and issues access tokens.
type AuthService struct {
	store       UserStore
	cfg         AuthConfig
	method      jwt.SigningMethod
	dummyHash   []byte
	auditWorker AuditEnqueuer
	log         *logrus.Logger
}

// NewAuthService creates an AuthService. It fails if cfg.Algorithm is not an HMAC method.
func NewAuthService(store UserStore, cfg AuthConfig, auditWorker AuditEnqueuer, log *logrus.Logger) (*AuthService, error) {
	method, ok := jwt.GetSigningMethod(cfg.Algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported token algorithm %q", cfg.Algorithm)
	}

	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}

	// Compared against when the username is unknown so both paths cost one bcrypt check.
	dummy, err := bcrypt.GenerateFromPassword([]byte("pathfinder-timing-equalizer"), cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("generating dummy hash: %w", err)
	}

	return &AuthService{
		store:       store,
		cfg:         cfg,
		method:      method,
		dummyHash:   dummy,
		auditWorker: auditWorker,
		log:         log,
	}, nil
}

// Register validates req, hashes the password and creates the user.
// A taken username returns models.ErrDuplicateKey.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user, err := s.store.CreateUser(ctx, req.Username, string(hash))
	if err != nil {
		return nil, err
	}

	auditAsync(domain.WithActor(ctx, user.Username), s.auditWorker, "user.register", "user", user.ID, nil)

	return user, nil
}

// Login verifies credentials and returns a signed access token. Unknown
// usernames and wrong passwords both return models.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			bcrypt.CompareHashAndPassword(s.dummyHash, []byte(req.Password)) //nolint:errcheck // timing only.
			return nil, models.ErrInvalidCredentials
		}

		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, models.ErrInvalidCredentials
	}

	token, err := s.issueToken(user.Username, time.Now())
	if err != nil {
		return nil, err
	}

	s.log.WithField("username", user.Username).Debug("auth.login")

	return &models.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(s.cfg.TokenTTL.Seconds()),
	}, nil
}

func (s *AuthService) issueToken(username string, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
	}

	signed, err := jwt.NewWithClaims(s.method, claims).SignedString(s.cfg.Secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return signed, nil
}

// ParseToken verifies the signature, algorithm and expiry of a bearer token
// and returns the user it names. Every rejection wraps models.ErrInvalidToken.
func (s *AuthService) ParseToken(ctx context.Context, token string) (*models.User, error) {
	var claims jwt.RegisteredClaims

	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok || t.Method.Alg() != s.method.Alg() {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.cfg.Secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidToken, err)
	}

	if claims.Subject == "" || claims.ExpiresAt == nil {
		return nil, fmt.Errorf("%w: missing sub or exp claim", models.ErrInvalidToken)
	}

	user, err := s.store.GetUserByUsername(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: unknown user", models.ErrInvalidToken)
		}

		return nil, err
	}

	return user, nil
}
