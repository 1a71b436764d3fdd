package testsupport

import "sync"

// Notification is a single recorded NotifyError call.
type Notification struct {
	Message    string
	Detail     string
	UserFacing bool
}

// Recorder is a notify.Reporter that keeps every notification.
type Recorder struct {
	mu            sync.Mutex
	notifications []Notification
}

// NotifyError records the notification.
func (r *Recorder) NotifyError(message, detail string, userFacing bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append(r.notifications, Notification{
		Message:    message,
		Detail:     detail,
		UserFacing: userFacing,
	})
}

// Notifications returns a copy of the recorded notifications.
func (r *Recorder) Notifications() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.notifications...)
}
