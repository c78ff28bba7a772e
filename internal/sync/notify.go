package sync

import "time"

// ToastLifetime is the fixed display duration for success toasts.
const ToastLifetime = 2 * time.Second

// NotificationKind distinguishes persistent errors from transient toasts.
type NotificationKind int

const (
	NoteError NotificationKind = iota
	NoteToast
)

// Notification is a transient user-facing message. Error notifications
// persist until cleared or superseded; toasts carry an expiry instant and
// auto-clear when it passes.
type Notification struct {
	Kind      NotificationKind
	Message   string
	Err       error     // underlying cause, error notifications only
	ExpiresAt time.Time // zero for error notifications
}

// Notifier holds at most one current notification. Pushing a new one
// supersedes whatever is showing; an expired toast is dropped on read, so
// polling Current on render is enough to honor the lifetime.
type Notifier struct {
	current *Notification
	now     func() time.Time
}

// NewNotifier creates a notifier using the wall clock.
func NewNotifier() *Notifier {
	return &Notifier{now: time.Now}
}

// SetError shows a persistent error notification, superseding anything
// currently displayed.
func (n *Notifier) SetError(err error, message string) {
	n.current = &Notification{Kind: NoteError, Message: message, Err: err}
}

// ShowToast shows a success toast with the fixed auto-clear lifetime.
func (n *Notifier) ShowToast(message string) {
	n.current = &Notification{
		Kind:      NoteToast,
		Message:   message,
		ExpiresAt: n.now().Add(ToastLifetime),
	}
}

// ClearError removes a standing error notification. A showing toast is
// left alone; a new user action only invalidates stale errors.
func (n *Notifier) ClearError() {
	if n.current != nil && n.current.Kind == NoteError {
		n.current = nil
	}
}

// Clear removes any current notification.
func (n *Notifier) Clear() {
	n.current = nil
}

// Current returns the showing notification, dropping an expired toast.
func (n *Notifier) Current() *Notification {
	if n.current != nil && n.current.Kind == NoteToast && n.now().After(n.current.ExpiresAt) {
		n.current = nil
	}
	return n.current
}
