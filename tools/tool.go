// Package tools exposes catalog search and per-session cart operations as
// self-describing tools, dispatched by name from JSON input.
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"

	"foodpath/store"
)

var (
	ErrSessionRequired = errors.New("session is required")
	ErrInvalidSession  = errors.New("session must be 1-64 letters, digits, '-' or '_'")
)

type Tool interface {
	Name() string
	Title() string
	Description() string
	InputSchema() *jsonschema.Schema
	OutputSchema() *jsonschema.Schema
	Run(ctx context.Context, input map[string]any) (output map[string]any, err error)
}

// Call is one tool invocation, as received by the lambda handler.
type Call struct {
	Tool  string         `json:"tool"`
	Input map[string]any `json:"input"`
}

// Run looks the tool up and runs it.
func (c Call) Run(ctx context.Context, r Registry) (map[string]any, error) {
	tool, err := r.GetTool(c.Tool)
	if err != nil {
		return nil, err
	}
	input := c.Input
	if input == nil {
		input = map[string]any{}
	}
	return tool.Run(ctx, input)
}

func stringArg(input map[string]any, key string) string {
	s, _ := input[key].(string)
	return strings.TrimSpace(s)
}

// intArg accepts JSON numbers, Go ints and numeric strings.
func intArg(input map[string]any, key string) (int, error) {
	switch v := input[key].(type) {
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("%s: %v is not a whole number", key, v)
		}
		return int(v), nil
	case int:
		return v, nil
	case json.Number:
		n, err := v.Int64()
		return int(n), err
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		return n, nil
	case nil:
		return 0, fmt.Errorf("%s is required", key)
	default:
		return 0, fmt.Errorf("%s: unexpected type %T", key, v)
	}
}

func sessionArg(input map[string]any) (string, error) {
	s := stringArg(input, "session")
	if s == "" {
		return "", ErrSessionRequired
	}
	if !store.ValidSession(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidSession, s)
	}
	return s, nil
}

func objectSchema(props map[string]*jsonschema.Schema, required ...string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "object", Properties: props, Required: required}
}
