package foodpath

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// ActivityLogger records user-visible store activity.
type ActivityLogger interface {
	LogActivity(activity Activity) error
}

// NewActivityLogFilePath returns a timestamped file path for an activity log.
func NewActivityLogFilePath(name string) string {
	return fmt.Sprintf("./logs/%d.%s.json", time.Now().Unix(), name)
}

// Activity is a single store event, e.g. a cart mutation or a checkout.
type Activity struct {
	Kind      string         `json:"kind"`
	Session   string         `json:"session,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
	Detail    map[string]any `json:"detail,omitempty"`
	Error     string         `json:"error,omitempty"`
}

// FileActivityLogger accumulates activities and writes them on Flush
type FileActivityLogger struct {
	mu         sync.Mutex
	activities []Activity
	writer     io.Writer
}

func NewFileActivityLogger(writer io.Writer) *FileActivityLogger {
	return &FileActivityLogger{
		activities: make([]Activity, 0),
		writer:     writer,
	}
}

func (l *FileActivityLogger) LogActivity(activity Activity) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.activities = append(l.activities, activity)
	return nil
}

// Flush writes all buffered activities as one JSON document and clears the buffer.
func (l *FileActivityLogger) Flush() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.writer == nil {
		return nil
	}

	data, err := json.MarshalIndent(map[string]any{
		"activity_session": map[string]any{
			"timestamp":  time.Now(),
			"activities": l.activities,
		},
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal activity log: %w", err)
	}

	if _, err := l.writer.Write(data); err != nil {
		return fmt.Errorf("failed to write activity log: %w", err)
	}

	l.activities = l.activities[:0]
	return nil
}

type NoOpActivityLogger struct{}

func NewNoOpActivityLogger() *NoOpActivityLogger {
	return &NoOpActivityLogger{}
}

func (nop *NoOpActivityLogger) LogActivity(activity Activity) error {
	return nil
}

// StdoutActivityLogger writes each activity as a JSON line (Lambda/CloudWatch friendly)
type StdoutActivityLogger struct {
	out io.Writer
}

func NewStdoutActivityLogger() *StdoutActivityLogger {
	return &StdoutActivityLogger{out: os.Stdout}
}

func (l *StdoutActivityLogger) LogActivity(activity Activity) error {
	data, err := json.Marshal(activity)
	if err != nil {
		return err
	}
	fmt.Fprintln(l.out, string(data))
	return nil
}
