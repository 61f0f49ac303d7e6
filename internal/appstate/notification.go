package appstate

import "time"

// NotificationKind classifies a toast.
type NotificationKind string

const (
	KindSuccess NotificationKind = "success"
	KindError   NotificationKind = "error"
	KindInfo    NotificationKind = "info"
)

// Notification is one entry in a session's transient toast queue. Entries
// live until their expiry timer fires or the user dismisses them, whichever
// comes first.
type Notification struct {
	ID        string           `json:"id"`
	Kind      NotificationKind `json:"kind"`
	Message   string           `json:"message"`
	CreatedAt time.Time        `json:"created_at"`
}

// ToastEvent is emitted when the queue changes, so connected dashboards can
// mirror it in real time.
type ToastEvent struct {
	Type         string        `json:"type"` // "enqueued" or "removed"
	UserID       uint          `json:"-"`
	Notification *Notification `json:"notification,omitempty"`
	ID           string        `json:"id,omitempty"`
}

const (
	EventEnqueued = "enqueued"
	EventRemoved  = "removed"
)
