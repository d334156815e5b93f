package models

import (
	"strings"
	"time"
)

// Credential length limits.
const (
	minUsernameLength = 3
	maxUsernameLength = 64
	minPasswordLength = 8
	maxPasswordLength = 72 // bcrypt ignores bytes beyond 72
)

// User is a registered account allowed to call the graph API.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// RegisterRequest is the payload for creating a new user.
type RegisterRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// Validate checks username and password lengths.
func (r *RegisterRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)

	if r.Username == "" {
		return ErrMissingUsername
	}

	if len(r.Username) < minUsernameLength {
		return ErrFieldTooShort("username", minUsernameLength)
	}

	if len(r.Username) > maxUsernameLength {
		return ErrFieldTooLong("username", maxUsernameLength)
	}

	if r.Password == "" {
		return ErrMissingPassword
	}

	if len(r.Password) < minPasswordLength {
		return ErrFieldTooShort("password", minPasswordLength)
	}

	if len(r.Password) > maxPasswordLength {
		return ErrFieldTooLong("password", maxPasswordLength)
	}

	return nil
}

// LoginRequest carries credentials for token issuance. It binds from JSON
// or from an OAuth2 password-grant style form.
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// Validate checks that both credentials are present.
func (r *LoginRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)

	if r.Username == "" {
		return ErrMissingUsername
	}

	if r.Password == "" {
		return ErrMissingPassword
	}

	return nil
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}
