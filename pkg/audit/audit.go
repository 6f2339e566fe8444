// Package audit records what each sbolgen run did to which document or
// artifact, as a hash-chained JSON Lines journal.
package audit

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/sbolgraph/pkg/masking"
)

// Action types for audit events
type Action string

const (
	ActionBuild    Action = "build"
	ActionValidate Action = "validate"
	ActionConvert  Action = "convert"
	ActionRead     Action = "read"
	ActionWrite    Action = "write"
)

// ResourceType represents the type of resource being touched
type ResourceType string

const (
	ResourceDocument ResourceType = "document"
	ResourceArtifact ResourceType = "artifact"
)

// Status represents the outcome of an action
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// Event represents a single audit entry
type Event struct {
	ID           string         `json:"id"`
	Timestamp    time.Time      `json:"timestamp"`
	RunID        string         `json:"run_id,omitempty"`
	Action       Action         `json:"action"`
	ResourceType ResourceType   `json:"resource_type"`
	ResourceID   string         `json:"resource_id,omitempty"` // path, s3:// URL or namespace
	Status       Status         `json:"status"`
	ErrorMessage string         `json:"error_message,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}

// NewEvent creates an event for the outcome of action on resourceID. A
// non-nil err marks it failed.
func NewEvent(runID string, action Action, resourceType ResourceType, resourceID string, err error) *Event {
	e := &Event{
		ID:           uuid.New().String(),
		Timestamp:    time.Now().UTC(),
		RunID:        runID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Status:       StatusSuccess,
	}
	if err != nil {
		e.Status = StatusFailure
		e.ErrorMessage = err.Error()
	}
	return e
}

// metadataMasker hides credentials passed as event metadata.
var metadataMasker = masking.NewMasker(masking.DefaultConfig())

// With adds a metadata entry and returns e.
func (e *Event) With(key string, value any) *Event {
	return e.WithMetadata(map[string]any{key: value})
}

// WithMetadata merges meta into the event's metadata and returns e. String
// values under credential-like keys are masked at any depth.
func (e *Event) WithMetadata(meta map[string]any) *Event {
	if len(meta) == 0 {
		return e
	}
	if e.Metadata == nil {
		e.Metadata = make(map[string]any, len(meta))
	}
	for k, v := range metadataMasker.MaskMap(meta) {
		e.Metadata[k] = v
	}
	return e
}

func (e *Event) String() string {
	s := fmt.Sprintf("[%s] %s %s %s: %s",
		e.Timestamp.Format(time.RFC3339), e.Action, e.ResourceType, e.ResourceID, e.Status)
	if e.ErrorMessage != "" {
		s += " (" + e.ErrorMessage + ")"
	}
	return s
}

// Logger is implemented by every event sink.
type Logger interface {
	// Log records an audit event
	Log(event *Event) error

	// GetEventCount returns the number of events logged
	GetEventCount() int64
}

// Filter represents filtering criteria for audit events
type Filter struct {
	RunID        string
	Action       Action
	ResourceType ResourceType
	Status       Status
}

func (f *Filter) matches(e *Event) bool {
	if f == nil {
		return true
	}
	return (f.RunID == "" || e.RunID == f.RunID) &&
		(f.Action == "" || e.Action == f.Action) &&
		(f.ResourceType == "" || e.ResourceType == f.ResourceType) &&
		(f.Status == "" || e.Status == f.Status)
}

// AuditLogger keeps the most recent events in a circular buffer.
type AuditLogger struct {
	events     []*Event
	bufferSize int
	index      int
	count      int
	total      int64
	mu         sync.RWMutex
}

// NewAuditLogger creates a new audit logger with specified buffer size
func NewAuditLogger(bufferSize int) *AuditLogger {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &AuditLogger{
		events:     make([]*Event, bufferSize),
		bufferSize: bufferSize,
	}
}

// Log records an audit event
func (l *AuditLogger) Log(event *Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if event.ID == "" {
		event.ID = uuid.New().String()
	}

	l.events[l.index] = event
	l.index = (l.index + 1) % l.bufferSize
	if l.count < l.bufferSize {
		l.count++
	}
	l.total++
	return nil
}

// GetEvents returns buffered events matching filter, oldest first.
func (l *AuditLogger) GetEvents(filter *Filter) []*Event {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make([]*Event, 0, l.count)
	start := (l.index - l.count + l.bufferSize) % l.bufferSize
	for i := 0; i < l.count; i++ {
		e := l.events[(start+i)%l.bufferSize]
		if filter.matches(e) {
			result = append(result, e)
		}
	}
	return result
}

// GetEventCount returns the number of events logged, including those
// evicted from the buffer.
func (l *AuditLogger) GetEventCount() int64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.total
}

// Multi fans events out to several loggers and returns the first error.
type Multi []Logger

// Log records event in every logger.
func (m Multi) Log(event *Event) error {
	var first error
	for _, l := range m {
		if err := l.Log(event); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// GetEventCount returns the count of the first logger.
func (m Multi) GetEventCount() int64 {
	if len(m) == 0 {
		return 0
	}
	return m[0].GetEventCount()
}
