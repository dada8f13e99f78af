// Package stream provides a minimal, purpose-built consumer for the
// SSE-style byte streams produced by the LLM Practice API's /chat/stream
// endpoint. It turns a raw response body into a sequence of typed events
// and dispatches each to at most one registered handler.
//
// This package intentionally does NOT provide SSE writer or server
// capabilities.
package stream

// EventType tags a stream event. The backend emits exactly four types;
// anything else is dropped by the dispatcher.
type EventType string

const (
	// EventStart opens a stream. Informational only; it carries the model
	// the backend selected but causes no state change.
	EventStart EventType = "start"

	// EventContent carries one incremental text fragment.
	EventContent EventType = "content"

	// EventEnd closes a stream successfully. Its FullResponse is the
	// authoritative complete text.
	EventEnd EventType = "end"

	// EventError closes a stream with a user-visible error message.
	EventError EventType = "error"
)

// Event is the parsed payload of a single "data: <json>" frame.
// Events are transient: constructed per frame and discarded after dispatch.
type Event struct {
	Type EventType `json:"type"`

	// Content is the incremental text fragment on "content" events.
	Content string `json:"content,omitempty"`

	// Model is the model announced on "start" events.
	Model string `json:"model,omitempty"`

	// FullResponse is the complete assistant text, present only on "end"
	// events. It supersedes any locally accumulated fragments.
	FullResponse string `json:"full_response,omitempty"`

	// ModelUsed is the model that generated the response, present on "end"
	// events.
	ModelUsed string `json:"model_used,omitempty"`

	// Timestamp is the backend's ISO-8601 timestamp, when provided.
	Timestamp string `json:"timestamp,omitempty"`

	// Error is the human-readable message on "error" events.
	Error string `json:"error,omitempty"`
}

// Terminal reports whether the event closes the stream. At most one
// terminal event is delivered per stream.
func (e *Event) Terminal() bool {
	return e.Type == EventEnd || e.Type == EventError
}
