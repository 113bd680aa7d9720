package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// Login authenticates an existing account. The response's identity id field
// varies by role; the adapter resolves it (see authFromPayload).
func (c *Client) Login(ctx context.Context, email, password string) (AuthResult, error) {
	body := map[string]string{"email": email, "password": password}
	data, err := c.doJSON(ctx, http.MethodPost, "/auth/login", nil, body)
	if err != nil {
		return AuthResult{}, err
	}
	p, err := decodePayload(data)
	if err != nil {
		return AuthResult{}, decodeError(err)
	}
	result := authFromPayload(p, email)
	if result.ID == "" {
		return AuthResult{}, &Error{Kind: KindUnknown, Message: "login response carried no identity id"}
	}
	return result, nil
}

// SignUp registers a new account under the given role. The role-specific
// body field is company_name for recruiters and telegram_username for
// candidates; the backend is not guaranteed to echo the role back, so the
// returned result always carries the caller's role.
func (c *Client) SignUp(ctx context.Context, role Role, req SignUpRequest) (AuthResult, error) {
	path := fmt.Sprintf("/auth/%s/signup", role)
	body := map[string]string{
		"email":    req.Email,
		"password": req.Password,
	}
	switch role {
	case RoleRecruiter:
		if strings.TrimSpace(req.CompanyName) == "" {
			return AuthResult{}, validationError("company name is required")
		}
		body["company_name"] = req.CompanyName
	case RoleCandidate:
		if strings.TrimSpace(req.TelegramUsername) == "" {
			return AuthResult{}, validationError("telegram username is required")
		}
		body["telegram_username"] = strings.TrimPrefix(req.TelegramUsername, "@")
	default:
		return AuthResult{}, validationError(fmt.Sprintf("unknown role %q", role))
	}

	data, err := c.doJSON(ctx, http.MethodPost, path, nil, body)
	if err != nil {
		return AuthResult{}, err
	}
	p, err := decodePayload(data)
	if err != nil {
		return AuthResult{}, decodeError(err)
	}
	result := authFromPayload(p, req.Email)
	result.Role = role
	result.RoleExplicit = true
	if result.ID == "" {
		return AuthResult{}, &Error{Kind: KindUnknown, Message: "signup response carried no identity id"}
	}
	return result, nil
}
