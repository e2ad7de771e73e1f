package api

import (
	"context"

	"github.com/kaung-htet-hein-dev/ivy-admin/internal/models"
)

// AuthClient handles session bootstrap against /api/v1/user/login and
// /api/v1/user/logout.
type AuthClient struct {
	c *Client
}

func NewAuthClient(c *Client) *AuthClient {
	return &AuthClient{c: c}
}

type loginData struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a bearer token.
func (ac *AuthClient) Login(ctx context.Context, payload models.LoginPayload) (string, error) {
	var out loginData
	if err := ac.c.post(ctx, epLogin, payload, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

// Logout invalidates the server-side session. Best effort: a failure
// here never blocks clearing the local session.
func (ac *AuthClient) Logout(ctx context.Context) error {
	return ac.c.post(ctx, epLogout, nil, nil)
}
