package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/citefix/citefix-cli/internal/domain"
)

const usersCacheKey = "users:list"

// SignupRequest is the POST /users payload. The backend expects the nested
// verification and adresse blocks even when empty.
type SignupRequest struct {
	Email     string        `json:"email"`
	Password  string        `json:"password"`
	LastName  string        `json:"nom"`
	FirstName string        `json:"prenom"`
	Phone     string        `json:"telephone"`
	Role      domain.Role   `json:"role"`
	Verif     signupVerif   `json:"verification"`
	Address   signupAddress `json:"adresse"`
}

type signupVerif struct {
	EmailVerified bool `json:"emailVerifie"`
	PhoneVerified bool `json:"telephoneVerifie"`
	DocsVerified  bool `json:"documentsVerifies"`
}

type signupAddress struct {
	Street      string          `json:"rue"`
	District    string          `json:"quartier"`
	City        string          `json:"ville"`
	Commune     string          `json:"commune"`
	Coordinates domain.GeoPoint `json:"coordonnees"`
}

// Signup creates a new citizen account.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (*domain.User, error) {
	if req.Role == "" {
		req.Role = domain.RoleUser
	}
	var user domain.User
	if err := c.do(ctx, http.MethodPost, "/users", req, &user); err != nil {
		return nil, err
	}
	user.Normalize()
	c.users.Delete(usersCacheKey)
	return &user, nil
}

// ListUsers fetches the full account list (admin only). The response must be
// a {data: [...]} envelope; anything else is rejected at this boundary.
func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	if users, ok := c.users.Get(usersCacheKey); ok {
		return users, nil
	}

	var envelope listEnvelope[domain.User]
	if err := c.do(ctx, http.MethodGet, "/users", nil, &envelope); err != nil {
		return nil, err
	}
	if envelope.Data == nil {
		return nil, fmt.Errorf("list users: %w", ErrInvalidResponse)
	}
	for i := range envelope.Data {
		envelope.Data[i].Normalize()
	}
	c.users.Set(usersCacheKey, envelope.Data, c.cacheTTL)
	return envelope.Data, nil
}

// GetUser fetches a single account.
func (c *Client) GetUser(ctx context.Context, id string) (*domain.User, error) {
	var envelope docEnvelope[domain.User]
	if err := c.do(ctx, http.MethodGet, "/users/"+id, nil, &envelope); err != nil {
		return nil, err
	}
	if envelope.Data == nil {
		return nil, fmt.Errorf("get user %s: %w", id, ErrInvalidResponse)
	}
	envelope.Data.Normalize()
	return envelope.Data, nil
}

// UserUpdate carries the profile fields an account owner may change.
type UserUpdate struct {
	LastName  string `json:"nom,omitempty"`
	FirstName string `json:"prenom,omitempty"`
	Phone     string `json:"telephone,omitempty"`
	Email     string `json:"email,omitempty"`
}

// UpdateUser saves profile changes and returns the updated account.
func (c *Client) UpdateUser(ctx context.Context, id string, update UserUpdate) (*domain.User, error) {
	var envelope docEnvelope[domain.User]
	if err := c.do(ctx, http.MethodPut, "/users/"+id, update, &envelope); err != nil {
		return nil, err
	}
	if envelope.Data == nil {
		return nil, fmt.Errorf("update user %s: %w", id, ErrInvalidResponse)
	}
	envelope.Data.Normalize()
	c.users.Delete(usersCacheKey)
	return envelope.Data, nil
}

// DeleteUser removes an account (admin only).
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/users/"+id, nil, nil); err != nil {
		return err
	}
	c.users.Delete(usersCacheKey)
	return nil
}

// ChangeUserRole patches an account's role (admin only).
func (c *Client) ChangeUserRole(ctx context.Context, id string, role domain.Role) error {
	body := map[string]domain.Role{"role": role}
	if err := c.do(ctx, http.MethodPatch, "/users/"+id+"/role", body, nil); err != nil {
		return err
	}
	c.users.Delete(usersCacheKey)
	return nil
}

// ChangeUserStatus patches an account's status (admin only).
func (c *Client) ChangeUserStatus(ctx context.Context, id, status string) error {
	body := map[string]string{"status": status}
	if err := c.do(ctx, http.MethodPatch, "/users/"+id+"/status", body, nil); err != nil {
		return err
	}
	c.users.Delete(usersCacheKey)
	return nil
}
