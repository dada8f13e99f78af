// Package conversation owns the ordered message transcript for a single
// chat session. The transcript is append-only except for the one in-flight
// assistant message, which is mutated in place while a stream is active.
//
// All methods are intended to be called from a single sequential path (one
// goroutine per stream), so no internal locking is performed.
package conversation

import "time"

// Role identifies the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single entry in the transcript. A message is immutable once
// superseded by a newer one; only the in-flight assistant message has its
// Content and ModelUsed mutated during streaming.
type Message struct {
	ID        int64  `json:"id"`
	Role      Role   `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
	ModelUsed string `json:"model_used,omitempty"`
}

// Conversation is the ordered message sequence. Insertion order is
// chronological order. IDs are strictly increasing across the sequence and
// are never reused, even across Clear.
type Conversation struct {
	messages []Message
	lastID   int64
}

// New returns an empty conversation.
func New() *Conversation {
	return &Conversation{}
}

// AppendUser appends a user message with a fresh id and returns it.
func (c *Conversation) AppendUser(text string) Message {
	msg := Message{
		ID:        c.issueID(),
		Role:      RoleUser,
		Content:   text,
		Timestamp: now(),
	}
	c.messages = append(c.messages, msg)
	return msg
}

// BeginAssistant appends an empty-content assistant placeholder and returns
// its id for correlating subsequent stream callbacks. The model hint is
// provisional; Finalize overwrites it with the model the backend reports.
func (c *Conversation) BeginAssistant(modelHint string) int64 {
	msg := Message{
		ID:        c.issueID(),
		Role:      RoleAssistant,
		Timestamp: now(),
		ModelUsed: modelHint,
	}
	c.messages = append(c.messages, msg)
	return msg.ID
}

// AppendContent concatenates fragment onto the message with the given id.
// A missing id is a silent no-op: the stream's own invariants make it
// unreachable, but a stale callback must not corrupt the transcript.
func (c *Conversation) AppendContent(id int64, fragment string) {
	i := c.index(id)
	if i < 0 {
		return
	}
	c.messages[i].Content += fragment
}

// Finalize overwrites the message's content with fullText and sets the
// model when provided. The backend's final aggregate is authoritative over
// locally accumulated fragments, which may have raced or been reordered at
// the edges.
func (c *Conversation) Finalize(id int64, fullText, modelUsed string) {
	i := c.index(id)
	if i < 0 {
		return
	}
	c.messages[i].Content = fullText
	if modelUsed != "" {
		c.messages[i].ModelUsed = modelUsed
	}
}

// Remove deletes the message with the given id. Used on stream failure to
// retract the placeholder so no empty or partial assistant message is left
// visible. A missing id is a no-op.
func (c *Conversation) Remove(id int64) {
	i := c.index(id)
	if i < 0 {
		return
	}
	c.messages = append(c.messages[:i], c.messages[i+1:]...)
}

// Clear resets the transcript to empty. The id sequence keeps counting so
// a stale stream writing after a Clear can never collide with a new
// message.
func (c *Conversation) Clear() {
	c.messages = nil
}

// Messages returns a copy of the transcript in chronological order.
func (c *Conversation) Messages() []Message {
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len returns the number of messages in the transcript.
func (c *Conversation) Len() int {
	return len(c.messages)
}

func (c *Conversation) issueID() int64 {
	c.lastID++
	return c.lastID
}

// index locates a message by id, scanning from the end since the in-flight
// message is almost always last.
func (c *Conversation) index(id int64) int {
	for i := len(c.messages) - 1; i >= 0; i-- {
		if c.messages[i].ID == id {
			return i
		}
	}
	return -1
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
