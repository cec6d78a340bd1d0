package session

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

// FailureKind classifies login failures.
type FailureKind uint8

const (
	// AuthenticationRejected means the backend declined the credentials.
	AuthenticationRejected FailureKind = iota
	// AuthenticationTransportFailure means the backend could not be reached
	// or returned something unusable.
	AuthenticationTransportFailure
)

// AuthError is a login failure, carrying the backend's human-readable
// message when one was available.
type AuthError struct {
	Kind    FailureKind
	Message string
	cause   error
}

func (e *AuthError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Kind == AuthenticationTransportFailure {
		return "authentication transport failure"
	}
	return "authentication rejected"
}

func (e *AuthError) Unwrap() error { return e.cause }

// Client calls the backend's authentication endpoint.
type Client struct {
	baseURL string
	http    *http.Client
}

var _ AuthClient = (*Client)(nil)

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

type (
	loginRequest struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	// the backend returns the token and the identity fields flattened into
	// one object
	loginResponse struct {
		Token string `json:"token"`
		Identity
	}

	errorResponse struct {
		Error string `json:"error"`
	}
)

// Login issues one authentication request. A non-2xx response becomes an
// AuthenticationRejected error with the backend's message when parseable;
// network and decoding problems become AuthenticationTransportFailure.
func (c *Client) Login(ctx context.Context, username, password string) (Identity, string, error) {
	body, err := json.Marshal(loginRequest{Username: username, Password: password})
	if err != nil {
		return Identity{}, "", errors.Wrap(err, "encoding login request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/login", bytes.NewReader(body))
	if err != nil {
		return Identity{}, "", errors.Wrap(err, "building login request")
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return Identity{}, "", &AuthError{
			Kind:    AuthenticationTransportFailure,
			Message: "Could not reach the server",
			cause:   err,
		}
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		aerr := &AuthError{Kind: AuthenticationRejected}
		var payload errorResponse
		if err = json.NewDecoder(res.Body).Decode(&payload); err == nil {
			aerr.Message = payload.Error
		}
		return Identity{}, "", aerr
	}

	var payload loginResponse
	if err = json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return Identity{}, "", &AuthError{
			Kind:    AuthenticationTransportFailure,
			Message: "Malformed server response",
			cause:   err,
		}
	}
	if payload.Token == "" {
		return Identity{}, "", &AuthError{
			Kind:    AuthenticationTransportFailure,
			Message: "Malformed server response",
		}
	}
	return payload.Identity, payload.Token, nil
}
