// Package queue carries frontend activity events over RabbitMQ: the
// publisher used by the web server and the consumer that writes them to
// logs/activity.log.
package queue

import "time"

// ActivityQueueName is the durable queue both sides declare.
const ActivityQueueName = "limpopo.activity"

// Kinds of activity.
const (
	UserRegistered = "user.registered"
	UserLoggedIn   = "user.logged_in"
	UserLoggedOut  = "user.logged_out"
	AdPosted       = "ad.posted"
	AdUpdated      = "ad.updated"
	AdDeleted      = "ad.deleted"
)

// ActivityEvent is published after the backend has confirmed a user action.
// It carries enough context for the log line; no credentials are included.
type ActivityEvent struct {
	Kind       string `json:"kind"`
	UserID     string `json:"user_id,omitempty"`
	UserEmail  string `json:"user_email,omitempty"`
	AdID       string `json:"ad_id,omitempty"`
	AdTitle    string `json:"ad_title,omitempty"`
	Category   string `json:"category,omitempty"`
	RequestID  string `json:"request_id,omitempty"`
	OccurredAt string `json:"occurred_at"`
}

// NewEvent stamps an event of kind with the current UTC time.
func NewEvent(kind string) ActivityEvent {
	return ActivityEvent{Kind: kind, OccurredAt: time.Now().UTC().Format(time.RFC3339)}
}
