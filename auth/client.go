// Package auth talks to the recipe site's auth backend and the job portal.
// Every call is preceded by a short availability probe; when the backend is
// unreachable or fails with a server error the caller gets a canned response
// tagged as demo data instead of an error.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"foodpath"
)

const (
	signinPath = "/auth/signin"
	signupPath = "/auth/signup"
	probePath  = "/test/hello"
)

const (
	messageUnavailable      = "Backend server is not available. Using mock data for demonstration."
	messageConnectionFailed = "Backend connection failed. Using mock data for demonstration."
)

// HTTPError is a non-server-error failure answered by the backend, e.g. a 401.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

type Client struct {
	rest         *resty.Client
	baseURL      string
	jobPortalURL string
	probeTimeout time.Duration
}

// NewClient builds a client from cfg. A nil httpClient uses resty's default transport.
func NewClient(cfg foodpath.BackendConfig, httpClient *http.Client) *Client {
	rest := resty.New()
	if httpClient != nil {
		rest = resty.NewWithClient(httpClient)
	}
	rest.SetHeader("Accept", "application/json")

	timeout := cfg.ProbeTimeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}

	return &Client{
		rest:         rest,
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		jobPortalURL: strings.TrimRight(cfg.JobPortalURL, "/"),
		probeTimeout: timeout,
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Available probes the backend health endpoint within the probe timeout.
func (c *Client) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, c.probeTimeout)
	defer cancel()

	resp, err := c.rest.R().SetContext(ctx).Get(c.baseURL + probePath)
	if err != nil {
		slog.Warn("AUTH: Backend not available", "url", c.baseURL, "error", err)
		return false
	}
	return resp.IsSuccess()
}

// Call sends body as JSON to url once the backend answers the probe.
//
// An unavailable backend or a transport failure yields a Degraded result and
// a 5xx yields a ServerError result, both carrying the mock body. Any other
// non-2xx status is returned as an *HTTPError.
func (c *Client) Call(ctx context.Context, method, url string, body any) (Result, error) {
	if !c.Available(ctx) {
		slog.Warn("AUTH: Using mock data", "url", url)
		return Result{Status: Degraded, Body: c.mock(url, body)}, nil
	}

	resp, err := c.rest.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Execute(method, url)
	if err != nil {
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
		slog.Warn("AUTH: Network error, using mock data", "url", url, "error", err)
		return Result{Status: Degraded, Body: c.mock(url, body)}, nil
	}

	if resp.StatusCode() >= http.StatusInternalServerError {
		details := map[string]any{}
		if err := json.Unmarshal(resp.Body(), &details); err != nil {
			details = map[string]any{"error": "Internal Server Error"}
		}
		slog.Error("AUTH: Server error, falling back to mock data", "url", url, "status", resp.StatusCode(), "details", details)
		return Result{Status: ServerError, Body: c.mock(url, body), ErrorDetails: details}, nil
	}

	if !resp.IsSuccess() {
		msg := resp.String()
		if msg == "" {
			msg = fmt.Sprintf("HTTP error! status: %d", resp.StatusCode())
		}
		return Result{}, &HTTPError{StatusCode: resp.StatusCode(), Message: msg}
	}

	decoded, err := decodeBody(resp.Body())
	if err != nil {
		return Result{}, fmt.Errorf("decode response from %s: %w", url, err)
	}
	return Result{Status: Live, Body: decoded}, nil
}

// decodeBody accepts an object, or a bare string which becomes the message.
func decodeBody(b []byte) (map[string]any, error) {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, err
	}
	switch v := v.(type) {
	case map[string]any:
		return v, nil
	case string:
		return map[string]any{"message": v}, nil
	default:
		return map[string]any{"data": v}, nil
	}
}

func (c *Client) Login(ctx context.Context, creds Credentials) (Result, error) {
	return c.Call(ctx, http.MethodPost, c.baseURL+signinPath, creds)
}

func (c *Client) Register(ctx context.Context, form SignupForm) (Result, error) {
	if err := form.Validate(); err != nil {
		return Result{}, err
	}
	return c.Call(ctx, http.MethodPost, c.baseURL+signupPath, form)
}

// JobSignup registers with the job portal. The portal's answer is checked
// with ClassifyMessage.
func (c *Client) JobSignup(ctx context.Context, form JobSignupForm) (Result, error) {
	if err := form.Validate(); err != nil {
		return Result{}, err
	}
	res, err := c.Call(ctx, http.MethodPost, c.jobPortalURL+"/users/signup", form)
	if err != nil {
		return Result{}, err
	}
	return res, ClassifyMessage(res.Message())
}

func (c *Client) JobLogin(ctx context.Context, creds Credentials) (Result, error) {
	res, err := c.Call(ctx, http.MethodPost, c.jobPortalURL+"/users/login", creds)
	if err != nil {
		return Result{}, err
	}
	return res, ClassifyMessage(res.Message())
}

// ConnectionStatus is what the connection tester shows.
type ConnectionStatus struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// UsingMock reports whether the message announces demo data.
func (s ConnectionStatus) UsingMock() bool {
	return strings.Contains(s.Message, "mock") || strings.Contains(s.Message, "demonstration")
}

func (c *Client) TestConnection(ctx context.Context) ConnectionStatus {
	if !c.Available(ctx) {
		return ConnectionStatus{Message: messageUnavailable}
	}

	var data struct {
		Message string `json:"message"`
	}
	resp, err := c.rest.R().SetContext(ctx).Get(c.baseURL + probePath)
	if err == nil && !resp.IsSuccess() {
		err = fmt.Errorf("HTTP error! status: %d", resp.StatusCode())
	}
	if err == nil {
		err = json.Unmarshal(resp.Body(), &data)
	}
	if err != nil {
		slog.Error("AUTH: Backend connection test failed", "error", err)
		return ConnectionStatus{Message: messageConnectionFailed}
	}
	return ConnectionStatus{Success: true, Message: data.Message}
}

// IsHTTPError reports whether err is a 4xx-style answer from the backend.
func IsHTTPError(err error) bool {
	var he *HTTPError
	return errors.As(err, &he)
}
