package foodpath

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileActivityLoggerFlush(t *testing.T) {
	var buf bytes.Buffer
	logger := NewFileActivityLogger(&buf)

	at := time.Date(2024, 5, 6, 10, 30, 0, 0, time.UTC)
	require.NoError(t, logger.LogActivity(Activity{Kind: "cart_add", Session: "s1", Timestamp: at, Detail: map[string]any{"product_id": 81}}))
	require.NoError(t, logger.LogActivity(Activity{Kind: "checkout", Session: "s1", Timestamp: at}))
	require.NoError(t, logger.Flush())

	var doc struct {
		Session struct {
			Activities []Activity `json:"activities"`
		} `json:"activity_session"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Session.Activities, 2)
	assert.Equal(t, "cart_add", doc.Session.Activities[0].Kind)
	assert.Equal(t, float64(81), doc.Session.Activities[0].Detail["product_id"])
	assert.Equal(t, "checkout", doc.Session.Activities[1].Kind)

	buf.Reset()
	require.NoError(t, logger.Flush())
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Empty(t, doc.Session.Activities)
}

func TestFileActivityLoggerNilWriter(t *testing.T) {
	logger := NewFileActivityLogger(nil)
	require.NoError(t, logger.LogActivity(Activity{Kind: "checkout"}))
	assert.NoError(t, logger.Flush())
}

func TestStdoutActivityLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := &StdoutActivityLogger{out: &buf}

	require.NoError(t, logger.LogActivity(Activity{Kind: "recipe_toggle", Session: "s2"}))
	require.NoError(t, logger.LogActivity(Activity{Kind: "cart_remove", Error: "boom"}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var got Activity
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &got))
	assert.Equal(t, "cart_remove", got.Kind)
	assert.Equal(t, "boom", got.Error)
	assert.NotContains(t, lines[1], `"session"`)
}

func TestNoOpActivityLogger(t *testing.T) {
	var logger ActivityLogger = NewNoOpActivityLogger()
	assert.NoError(t, logger.LogActivity(Activity{Kind: "checkout"}))
}

func TestNewActivityLogFilePath(t *testing.T) {
	path := NewActivityLogFilePath("web")
	assert.True(t, strings.HasPrefix(path, "./logs/"))
	assert.True(t, strings.HasSuffix(path, ".web.json"))
}
