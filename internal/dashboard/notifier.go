package dashboard

import (
	"fmt"
	"io"
	"sync"
)

// Level is the kind of a notification.
type Level string

// Notification levels.
const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

var levelIcons = map[Level]string{
	LevelInfo:    "ℹ️",
	LevelSuccess: "✅",
	LevelError:   "❌",
}

// Notifier writes transient, human readable notifications. The zero value is disabled.
type Notifier struct {
	mu      sync.Mutex
	w       io.Writer
	enabled bool
}

// NewNotifier returns a Notifier writing to w. A disabled Notifier drops every message.
func NewNotifier(w io.Writer, enabled bool) *Notifier {
	return &Notifier{w: w, enabled: enabled && w != nil}
}

// Notify writes message with the icon of level.
func (n *Notifier) Notify(level Level, message string) {
	if n == nil || !n.enabled {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	_, _ = fmt.Fprintf(n.w, "%s %s\n", levelIcons[level], message)
}

// Info notifies an informational message.
func (n *Notifier) Info(message string) { n.Notify(LevelInfo, message) }

// Success notifies a successful operation.
func (n *Notifier) Success(message string) { n.Notify(LevelSuccess, message) }

// Error notifies a failure.
func (n *Notifier) Error(message string) { n.Notify(LevelError, message) }
