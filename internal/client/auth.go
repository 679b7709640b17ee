package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"catalogctl/internal/models"
)

type signInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type signUpRequest struct {
	Username string      `json:"username"`
	Password string      `json:"password"`
	Role     models.Role `json:"role"`
}

// SignIn exchanges credentials for a session user carrying a JWT.
func (c *Client) SignIn(ctx context.Context, username, password string) (*models.User, error) {
	var out models.User
	if err := c.post(ctx, "/auth/signin", signInRequest{Username: username, Password: password}, &out); err != nil {
		return nil, fmt.Errorf("signing in: %w", err)
	}
	return &out, nil
}

// SignUp registers a new account. ADMIN accounts start unapproved and wait
// for an existing admin's decision.
func (c *Client) SignUp(ctx context.Context, username, password string, role models.Role) (*models.User, error) {
	var out models.User
	if err := c.post(ctx, "/auth/signup", signUpRequest{Username: username, Password: password, Role: role}, &out); err != nil {
		return nil, fmt.Errorf("signing up: %w", err)
	}
	return &out, nil
}

// PendingAdmins lists accounts waiting for admin approval.
func (c *Client) PendingAdmins(ctx context.Context) ([]models.User, error) {
	var out []models.User
	if err := c.get(ctx, "/auth/pendingAdmins", nil, &out); err != nil {
		return nil, fmt.Errorf("fetching pending admins: %w", err)
	}
	return out, nil
}

// Approve resolves a pending admin request either way.
func (c *Client) Approve(ctx context.Context, id int64, approve bool) error {
	query := url.Values{"approve": {strconv.FormatBool(approve)}}
	if err := c.put(ctx, fmt.Sprintf("/auth/%d/approve", id), query, nil, nil); err != nil {
		return fmt.Errorf("approving user %d: %w", id, err)
	}
	return nil
}
