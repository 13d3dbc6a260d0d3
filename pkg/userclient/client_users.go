package userclient

import (
	"context"
	"net/http"
	"net/url"
)

// ListUsers returns every stored user.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/users", nil)
	if err != nil {
		return nil, err
	}

	var users []User
	if err := decodeJSON(resp, &users); err != nil {
		return nil, err
	}
	if users == nil {
		users = []User{}
	}
	return users, nil
}

// ListUsersOrDemo behaves like ListUsers, but when the server cannot be
// reached it returns DemoUsers together with the *NetworkError so callers can
// show the fallback and say why.
func (c *Client) ListUsersOrDemo(ctx context.Context) ([]User, error) {
	users, err := c.ListUsers(ctx)
	if err != nil && IsNetworkError(err) {
		return DemoUsers(), err
	}
	return users, err
}

// CreateUser stores a new user with role "user".
func (c *Client) CreateUser(ctx context.Context, lastname, firstname string) (*User, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/users", namesRequest{Lastname: lastname, Firstname: firstname})
	if err != nil {
		return nil, err
	}

	var out createUserResponse
	if err := decodeJSON(resp, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// UpdateUser replaces the names of the user with the given id.
func (c *Client) UpdateUser(ctx context.Context, id, lastname, firstname string) error {
	resp, err := c.doRequest(ctx, http.MethodPut, "/api/users/"+url.PathEscape(id), namesRequest{Lastname: lastname, Firstname: firstname})
	if err != nil {
		return err
	}
	return decodeJSON(resp, &successResponse{})
}

// UpdateUserRole sets the role of the user with the given id.
func (c *Client) UpdateUserRole(ctx context.Context, id string, role Role) error {
	resp, err := c.doRequest(ctx, http.MethodPut, "/api/users/"+url.PathEscape(id)+"/role", roleRequest{Role: role})
	if err != nil {
		return err
	}
	return decodeJSON(resp, &successResponse{})
}

// DeleteUser removes the user with the given id.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, "/api/users/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	return decodeJSON(resp, &successResponse{})
}

// IssueSession asks the server to resolve the names and, when it signs
// sessions, to return a token.
func (c *Client) IssueSession(ctx context.Context, lastname, firstname string) (*SessionResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/session", namesRequest{Lastname: lastname, Firstname: firstname})
	if err != nil {
		return nil, err
	}

	var out SessionResponse
	if err := decodeJSON(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
