package provisioning

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
)

// Logger is the minimal logging interface phases depend on.
type Logger interface {
	Printf(format string, v ...interface{})
}

// Observer defines the interface for structured observability during deployment.
type Observer interface {
	Logger

	// Event emits a structured event
	Event(event Event)

	// Progress reports progress for a phase
	Progress(phase string, current, total int)

	// WithFields returns a new Observer with additional context fields
	WithFields(fields map[string]string) Observer
}

// Event represents a structured deployment event.
type Event struct {
	Type      EventType         // Type of event
	Phase     string            // Phase name (e.g., "hostprep", "compute")
	Message   string            // Human-readable message
	Resource  string            // Resource name/ID if applicable
	Timestamp time.Time         // When the event occurred
	Fields    map[string]string // Additional contextual fields
}

// EventType represents the type of deployment event.
type EventType string

const (
	// EventPhaseStarted indicates a deployment phase has started.
	EventPhaseStarted EventType = "phase.started"
	// EventPhaseCompleted indicates a deployment phase completed successfully.
	EventPhaseCompleted EventType = "phase.completed"
	// EventPhaseFailed indicates a deployment phase failed.
	EventPhaseFailed EventType = "phase.failed"

	// EventResourceCreating indicates a resource is being created.
	EventResourceCreating EventType = "resource.creating"
	// EventResourceCreated indicates a resource was created successfully.
	EventResourceCreated EventType = "resource.created"
	// EventResourceExists indicates a resource already exists.
	EventResourceExists EventType = "resource.exists"
	// EventResourceFailed indicates resource creation failed.
	EventResourceFailed EventType = "resource.failed"

	// EventProgress indicates progress in a long-running operation.
	EventProgress EventType = "progress"
)

// ConsoleObserver implements Observer on top of a logr.Logger.
type ConsoleObserver struct {
	logger        logr.Logger
	contextFields map[string]string
}

// NewConsoleObserver creates an observer that writes to the standard logger.
func NewConsoleObserver() *ConsoleObserver {
	logger := funcr.New(func(prefix, args string) {
		if prefix != "" {
			log.Printf("%s %s", prefix, args)
			return
		}
		log.Print(args)
	}, funcr.Options{})
	return NewObserverWithLogger(logger)
}

// NewObserverWithLogger creates an observer backed by the given logger.
func NewObserverWithLogger(logger logr.Logger) *ConsoleObserver {
	return &ConsoleObserver{
		logger:        logger,
		contextFields: make(map[string]string),
	}
}

// Printf implements the Logger interface.
func (o *ConsoleObserver) Printf(format string, v ...interface{}) {
	o.logger.Info(fmt.Sprintf(format, v...))
}

// Event implements Observer interface.
func (o *ConsoleObserver) Event(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	// Merge context fields
	if event.Fields == nil {
		event.Fields = make(map[string]string)
	}
	for k, v := range o.contextFields {
		if _, exists := event.Fields[k]; !exists {
			event.Fields[k] = v
		}
	}

	o.logger.Info(o.formatEvent(event))
}

// Progress implements Observer interface.
func (o *ConsoleObserver) Progress(phase string, current, total int) {
	if total == 0 {
		o.logger.Info(fmt.Sprintf("[%s] Progress: %d/%d", phase, current, total))
		return
	}
	percentage := (current * 100) / total
	o.logger.Info(fmt.Sprintf("[%s] Progress: %d/%d (%d%%)", phase, current, total, percentage))
}

// WithFields implements Observer interface.
func (o *ConsoleObserver) WithFields(fields map[string]string) Observer {
	newFields := make(map[string]string)
	for k, v := range o.contextFields {
		newFields[k] = v
	}
	for k, v := range fields {
		newFields[k] = v
	}

	return &ConsoleObserver{
		logger:        o.logger,
		contextFields: newFields,
	}
}

// formatEvent formats an event for console output.
func (o *ConsoleObserver) formatEvent(event Event) string {
	var parts []string

	parts = append(parts, string(event.Type))

	if event.Phase != "" {
		parts = append(parts, fmt.Sprintf("[%s]", event.Phase))
	}

	if event.Resource != "" {
		parts = append(parts, fmt.Sprintf("resource=%s", event.Resource))
	}

	parts = append(parts, event.Message)

	if len(event.Fields) > 0 {
		var fieldParts []string
		for k, v := range event.Fields {
			fieldParts = append(fieldParts, fmt.Sprintf("%s=%s", k, v))
		}
		parts = append(parts, fmt.Sprintf("(%s)", strings.Join(fieldParts, ", ")))
	}

	return strings.Join(parts, " ")
}

// Helper functions for common events

// LogPhaseStart logs a phase start event.
func LogPhaseStart(observer Observer, phase string) {
	observer.Event(Event{
		Type:    EventPhaseStarted,
		Phase:   phase,
		Message: "starting",
	})
}

// LogPhaseComplete logs a phase completion event.
func LogPhaseComplete(observer Observer, phase string, duration time.Duration) {
	observer.Event(Event{
		Type:    EventPhaseCompleted,
		Phase:   phase,
		Message: fmt.Sprintf("completed in %v", duration.Round(time.Millisecond)),
	})
}

// LogPhaseFailed logs a phase failure event.
func LogPhaseFailed(observer Observer, phase string, err error) {
	observer.Event(Event{
		Type:    EventPhaseFailed,
		Phase:   phase,
		Message: fmt.Sprintf("failed: %v", err),
	})
}

// LogResourceCreating logs a resource creation start event.
func LogResourceCreating(observer Observer, phase, resourceType, resourceName string) {
	observer.Event(Event{
		Type:     EventResourceCreating,
		Phase:    phase,
		Resource: resourceName,
		Message:  fmt.Sprintf("creating %s", resourceType),
		Fields: map[string]string{
			"type": resourceType,
		},
	})
}

// LogResourceCreated logs a successful resource creation event.
func LogResourceCreated(observer Observer, phase, resourceType, resourceName, resourceID string) {
	observer.Event(Event{
		Type:     EventResourceCreated,
		Phase:    phase,
		Resource: resourceName,
		Message:  fmt.Sprintf("%s created", resourceType),
		Fields: map[string]string{
			"type": resourceType,
			"id":   resourceID,
		},
	})
}

// LogResourceExists logs when a resource already exists.
func LogResourceExists(observer Observer, phase, resourceType, resourceName, resourceID string) {
	observer.Event(Event{
		Type:     EventResourceExists,
		Phase:    phase,
		Resource: resourceName,
		Message:  fmt.Sprintf("%s already exists", resourceType),
		Fields: map[string]string{
			"type": resourceType,
			"id":   resourceID,
		},
	})
}
