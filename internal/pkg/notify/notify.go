// internal/pkg/notify/notify.go
package notify

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Level classifies a user-visible notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notification is one transient user-visible message (the toast of the
// web UI). Aggregate operations emit at most one notification per
// level, never one per item.
type Notification struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Notifier receives user-visible notifications.
type Notifier interface {
	Success(message string)
	Warning(message string)
	Error(message string)
}

// Recorder collects notifications so a request handler can return them
// to the client (and tests can assert on them).
type Recorder struct {
	mu            sync.Mutex
	notifications []Notification
}

// NewRecorder creates an empty notification recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) add(level Level, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append(r.notifications, Notification{Level: level, Message: message})
}

// Success records a success notification
func (r *Recorder) Success(message string) { r.add(LevelSuccess, message) }

// Warning records a warning notification
func (r *Recorder) Warning(message string) { r.add(LevelWarning, message) }

// Error records an error notification
func (r *Recorder) Error(message string) { r.add(LevelError, message) }

// Notifications returns the recorded notifications in emission order.
func (r *Recorder) Notifications() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.notifications))
	copy(out, r.notifications)
	return out
}

// LogNotifier writes notifications to the application log. Used where
// no client is waiting for them (background refreshes).
type LogNotifier struct {
	logger *logrus.Logger
}

// NewLogNotifier creates a logrus-backed notifier
func NewLogNotifier(logger *logrus.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Success logs a success notification
func (n *LogNotifier) Success(message string) {
	n.logger.WithField("notification", LevelSuccess).Info(message)
}

// Warning logs a warning notification
func (n *LogNotifier) Warning(message string) {
	n.logger.WithField("notification", LevelWarning).Warn(message)
}

// Error logs an error notification
func (n *LogNotifier) Error(message string) {
	n.logger.WithField("notification", LevelError).Error(message)
}
