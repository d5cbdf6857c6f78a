package auth

import (
	"encoding/json"
	"strings"
)

// Status tags where a Result came from.
type Status int

const (
	// Live is a real backend answer.
	Live Status = iota
	// Degraded is mock data used because the backend could not be reached.
	Degraded
	// ServerError is mock data used because the backend failed with a 5xx.
	ServerError
)

func (s Status) String() string {
	switch s {
	case Live:
		return "live"
	case Degraded:
		return "degraded"
	case ServerError:
		return "server_error"
	default:
		return "unknown"
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

type Result struct {
	Status       Status         `json:"status"`
	Body         map[string]any `json:"body"`
	ErrorDetails map[string]any `json:"errorDetails,omitempty"`
}

// Demo reports whether the body is mock data.
func (r Result) Demo() bool {
	return r.Status != Live
}

func (r Result) Message() string {
	msg, _ := r.Body["message"].(string)
	return msg
}

// Notice is the banner shown for a demo result, or "" for a live one.
func (r Result) Notice() string {
	switch r.Status {
	case ServerError:
		return "The server encountered an error. Using demo mode instead."
	case Degraded:
		return "Using demo mode as backend is not available. You can still explore the app."
	default:
		return ""
	}
}

// mock builds the canned body for url, keyed by the endpoint path.
func (c *Client) mock(url string, body any) map[string]any {
	path := strings.TrimPrefix(url, c.baseURL)

	switch {
	case strings.Contains(path, signinPath):
		email := emailOf(body)
		name, _, _ := strings.Cut(email, "@")
		return map[string]any{
			"id":      1,
			"name":    name,
			"email":   email,
			"message": "Mock login successful",
		}
	case strings.Contains(path, signupPath):
		return map[string]any{"message": "Mock registration successful"}
	default:
		return map[string]any{"message": "Mock response", "success": true}
	}
}

func emailOf(body any) string {
	b, err := json.Marshal(body)
	if err != nil {
		return ""
	}
	var v struct {
		Email string `json:"email"`
	}
	_ = json.Unmarshal(b, &v)
	return v.Email
}
