// Package catalog is the Go client of the catalog HTTP API.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/composersite/catalog/internal/service"
)

var (
	ErrPasswordRequired      = service.ErrPasswordRequired
	ErrIncorrectPassword     = service.ErrIncorrectPassword
	ErrPasswordNotConfigured = service.ErrPasswordNotConfigured
)

// Client talks to a catalog server. It keeps cookies, so a successful
// VerifyPassword authenticates later calls.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Jar: jar, Timeout: 30 * time.Second},
	}, nil
}

type verifyResponse struct {
	Success       bool   `json:"success"`
	Authenticated bool   `json:"authenticated"`
	Error         string `json:"error"`
}

// VerifyPassword submits a download password, optionally for a work.
func (c *Client) VerifyPassword(ctx context.Context, password, workID string) error {
	body, err := json.Marshal(map[string]string{"password": password, "workId": workID})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/verify-password", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, status, err := c.do(req)
	if err != nil {
		return err
	}

	switch {
	case status == http.StatusOK && res.Success:
		return nil
	case status == http.StatusBadRequest:
		return ErrPasswordRequired
	case status == http.StatusUnauthorized:
		return ErrIncorrectPassword
	case res.Error == "Password protection is not configured":
		return ErrPasswordNotConfigured
	default:
		return fmt.Errorf("verify password: %d %s", status, res.Error)
	}
}

// Authenticated reports whether the server sees the download cookie.
func (c *Client) Authenticated(ctx context.Context) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/verify-password", nil)
	if err != nil {
		return false, err
	}

	res, status, err := c.do(req)
	if err != nil {
		return false, err
	}
	if status != http.StatusOK {
		return false, fmt.Errorf("auth status: %d", status)
	}
	return res.Authenticated, nil
}

func (c *Client) do(req *http.Request) (*verifyResponse, int, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	var res verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, resp.StatusCode, err
	}
	return &res, resp.StatusCode, nil
}
