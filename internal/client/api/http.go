package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/sweetshop/internal/client/models"
)

// HTTPClient talks JSON to the backend over HTTP. The bearer token is held
// on the client and attached to authenticated requests; the session store
// installs it after login/restore and clears it on logout.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	token   string
}

// NewHTTPClient builds a client for the given base URL (e.g.
// "http://127.0.0.1:8000/api"). timeout bounds every request.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// do issues a single JSON request. Every request carries an X-Request-Id so
// failures can be correlated with backend logs. Transport-level failures map
// to ErrUnavailable; HTTP status handling is left to the caller.
func (c *HTTPClient) do(ctx context.Context, method, path string, body any, authed bool) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if authed && c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return resp, nil
}

// errorMessage extracts a human-readable message from an error response
// body. The backend uses {"error": ...}; auth endpoints use {"detail": ...}.
func errorMessage(resp *http.Response) string {
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return ""
	}

	var body struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	if body.Error != "" {
		return body.Error
	}
	return body.Detail
}

func decodeSweet(resp *http.Response) (models.Sweet, error) {
	defer resp.Body.Close()

	var s models.Sweet
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return models.Sweet{}, fmt.Errorf("decode response: %w", err)
	}
	return s, nil
}

func ok(resp *http.Response) bool {
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

// Login posts credentials and returns the access token. Any non-2xx
// response signals bad credentials.
func (c *HTTPClient) Login(ctx context.Context, username, password string) (string, error) {
	payload := map[string]string{"username": username, "password": password}

	resp, err := c.do(ctx, http.MethodPost, "/auth/login", payload, false)
	if err != nil {
		return "", err
	}
	if !ok(resp) {
		resp.Body.Close()
		return "", ErrInvalidCredentials
	}

	defer resp.Body.Close()
	var body struct {
		Access string `json:"access"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode login response: %w", err)
	}
	if body.Access == "" {
		return "", ErrInvalidCredentials
	}
	return body.Access, nil
}

// Register creates a new account. The server message (e.g. "username
// already taken") is preserved when the backend provides one.
func (c *HTTPClient) Register(ctx context.Context, username, email, password string) error {
	payload := map[string]string{"username": username, "email": email, "password": password}

	resp, err := c.do(ctx, http.MethodPost, "/auth/register", payload, false)
	if err != nil {
		return err
	}
	if !ok(resp) {
		if msg := errorMessage(resp); msg != "" {
			return fmt.Errorf("%w: %s", ErrRegistrationRejected, msg)
		}
		return ErrRegistrationRejected
	}
	resp.Body.Close()
	return nil
}

// ListSweets fetches the whole catalog. All failures wrap ErrFetch so the
// catalog layer can treat them uniformly.
func (c *HTTPClient) ListSweets(ctx context.Context) ([]models.Sweet, error) {
	resp, err := c.do(ctx, http.MethodGet, "/sweets", nil, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	if !ok(resp) {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: status %d", ErrFetch, resp.StatusCode)
	}

	defer resp.Body.Close()
	var sweets []models.Sweet
	if err := json.NewDecoder(resp.Body).Decode(&sweets); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	return sweets, nil
}

func (c *HTTPClient) Purchase(ctx context.Context, id models.ID) (models.Sweet, error) {
	resp, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/sweets/%s/purchase", id), nil, true)
	if err != nil {
		return models.Sweet{}, err
	}
	if !ok(resp) {
		return models.Sweet{}, &APIError{Status: resp.StatusCode, Message: errorMessage(resp)}
	}
	return decodeSweet(resp)
}

func (c *HTTPClient) CreateSweet(ctx context.Context, sweet models.Sweet) (models.Sweet, error) {
	resp, err := c.do(ctx, http.MethodPost, "/sweets", sweet, true)
	if err != nil {
		return models.Sweet{}, err
	}
	if !ok(resp) {
		return models.Sweet{}, &APIError{Status: resp.StatusCode, Message: errorMessage(resp)}
	}
	return decodeSweet(resp)
}

func (c *HTTPClient) UpdateSweet(ctx context.Context, id models.ID, sweet models.Sweet) (models.Sweet, error) {
	resp, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/sweets/%s", id), sweet, true)
	if err != nil {
		return models.Sweet{}, err
	}
	if !ok(resp) {
		return models.Sweet{}, &APIError{Status: resp.StatusCode, Message: errorMessage(resp)}
	}
	return decodeSweet(resp)
}

func (c *HTTPClient) DeleteSweet(ctx context.Context, id models.ID) error {
	resp, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/sweets/%s", id), nil, true)
	if err != nil {
		return err
	}
	if !ok(resp) {
		return &APIError{Status: resp.StatusCode, Message: errorMessage(resp)}
	}
	resp.Body.Close()
	return nil
}

// Restock increases stock by amount. The backend expects the amount in a
// "quantity" field.
func (c *HTTPClient) Restock(ctx context.Context, id models.ID, amount int) (models.Sweet, error) {
	payload := map[string]int{"quantity": amount}

	resp, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/sweets/%s/restock", id), payload, true)
	if err != nil {
		return models.Sweet{}, err
	}
	if !ok(resp) {
		return models.Sweet{}, &APIError{Status: resp.StatusCode, Message: errorMessage(resp)}
	}
	return decodeSweet(resp)
}
