package engine

import "time"

// DefaultMessageTimeout is how long a message stays at the front of the queue
const DefaultMessageTimeout = 3 * time.Second

// Message is a transient notice shown to the user
type Message struct {
	Text      string
	CreatedAt time.Time
}

// MessageQueue holds notices in arrival order. Only the front message is
// ever checked for expiry, so each waits its turn.
type MessageQueue struct {
	items []Message
}

// NewMessageQueue returns an empty queue
func NewMessageQueue() *MessageQueue {
	return &MessageQueue{}
}

// Push appends text stamped with now
func (q *MessageQueue) Push(text string, now time.Time) {
	q.items = append(q.items, Message{Text: text, CreatedAt: now})
}

// ExpireIfDue pops the front message if it is at least timeout old and
// reports whether it did
func (q *MessageQueue) ExpireIfDue(now time.Time, timeout time.Duration) bool {
	if len(q.items) == 0 {
		return false
	}
	if now.Sub(q.items[0].CreatedAt) < timeout {
		return false
	}
	q.items[0] = Message{}
	q.items = q.items[1:]
	return true
}

// Snapshot returns the message texts, oldest first
func (q *MessageQueue) Snapshot() []string {
	out := make([]string, len(q.items))
	for i, m := range q.items {
		out[i] = m.Text
	}
	return out
}

// Clear drops every message
func (q *MessageQueue) Clear() {
	q.items = nil
}

// Len returns the number of pending messages
func (q *MessageQueue) Len() int {
	return len(q.items)
}
