package client

import "context"

// AuthService handles registration, login and identity.
type AuthService struct {
	c *Client
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register creates a new account.
func (s *AuthService) Register(ctx context.Context, username, password string) (*User, error) {
	var u User
	if err := s.c.post(ctx, "/auth/register", credentials{username, password}, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Login exchanges credentials for an access token and stores it on the client.
func (s *AuthService) Login(ctx context.Context, username, password string) (*TokenResponse, error) {
	var tok TokenResponse
	if err := s.c.post(ctx, "/auth/login", credentials{username, password}, &tok); err != nil {
		return nil, err
	}
	s.c.SetToken(tok.AccessToken)
	return &tok, nil
}

// Me returns the user the current token belongs to.
func (s *AuthService) Me(ctx context.Context) (*User, error) {
	var u User
	if err := s.c.get(ctx, "/auth/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
