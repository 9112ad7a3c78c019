// Package queue defines the account-activity events exchanged over the
// message broker, their publisher and the background consumer.
package queue

const activityQueueName = "customer.activity"

// Activity kinds carried in ActivityEvent.Kind.
const (
	KindRegistered   = "registered"
	KindSubscribed   = "subscribed"
	KindUnsubscribed = "unsubscribed"
)

// ActivityEvent is published after a successful registration or
// entitlement change. It carries enough for downstream consumers to log or
// notify without querying the primary database. Movie fields are zero for
// registration events.
type ActivityEvent struct {
	Kind       string `json:"kind"`
	CustomerID uint64 `json:"customer_id"`
	Email      string `json:"email"`
	MovieID    uint64 `json:"movie_id,omitempty"`
	MovieName  string `json:"movie_name,omitempty"`
	OccurredAt string `json:"occurred_at"`
}
