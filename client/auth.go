package client

import (
	"net/http"

	"eventgallery/types"
)

func (c *Client) Login(req types.LoginRequest) (*types.AuthResponse, error) {
	var resp types.AuthResponse
	if err := c.sendJSON(http.MethodPost, "/auth/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Register(req types.RegisterRequest) (*types.AuthResponse, error) {
	var resp types.AuthResponse
	if err := c.sendJSON(http.MethodPost, "/auth/register", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Logout() error {
	return c.sendJSON(http.MethodPost, "/auth/logout", nil, nil)
}

// Me returns the user behind the current credential.
func (c *Client) Me() (*types.User, error) {
	var user types.User
	if err := c.getJSON("/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) ValidateSession() (*types.SessionCheck, error) {
	var check types.SessionCheck
	if err := c.getJSON("/auth/validate-session", nil, &check); err != nil {
		return nil, err
	}
	return &check, nil
}
