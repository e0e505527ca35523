// Package notify delivers user-visible notifications, the side channel the
// engine uses to tell the user about failures they must fix themselves.
package notify

import (
	"sync"

	"github.com/gen2brain/beeep"

	"github.com/kbukum/scribe/logger"
)

// DefaultAppName is used as the notification title.
const DefaultAppName = "Scribe"

// maxMessageLen bounds notification bodies; desktop daemons truncate anyway.
const maxMessageLen = 200

// Notifier shows a message to the user.
type Notifier interface {
	Notify(message string)
}

// Config controls desktop notifications. Enabled defaults to true when the
// config is loaded from file or environment.
type Config struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	AppName string `yaml:"app_name" mapstructure:"app_name"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.AppName == "" {
		c.AppName = DefaultAppName
	}
}

// Sender delivers one desktop notification.
type Sender func(title, message, icon string) error

// DesktopOption configures a Desktop notifier.
type DesktopOption func(*Desktop)

// WithSender replaces the beeep delivery, e.g. to capture notifications.
func WithSender(send Sender) DesktopOption {
	return func(d *Desktop) {
		if send != nil {
			d.send = send
		}
	}
}

// Desktop sends notifications through the OS notification daemon.
type Desktop struct {
	mu      sync.RWMutex
	enabled bool
	appName string
	log     *logger.Logger
	send    Sender
}

// NewDesktop creates a desktop notifier. Delivery failures are logged at
// debug level and otherwise ignored.
func NewDesktop(cfg Config, log *logger.Logger, opts ...DesktopOption) *Desktop {
	cfg.ApplyDefaults()
	if log == nil {
		log = logger.Nop()
	}
	d := &Desktop{
		enabled: cfg.Enabled,
		appName: cfg.AppName,
		log:     log.WithComponent("notify"),
		send:    desktopSend,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// SetEnabled turns delivery on or off.
func (d *Desktop) SetEnabled(enabled bool) {
	d.mu.Lock()
	d.enabled = enabled
	d.mu.Unlock()
}

// Notify shows message under the application title.
func (d *Desktop) Notify(message string) {
	d.mu.RLock()
	enabled := d.enabled
	d.mu.RUnlock()
	if !enabled {
		return
	}
	if err := d.send(d.appName, truncate(message), ""); err != nil {
		d.log.Debug("notification not delivered", logger.ErrorFields("notify", err))
	}
}

func desktopSend(title, message, icon string) error {
	return beeep.Notify(title, message, icon)
}

func truncate(msg string) string {
	r := []rune(msg)
	if len(r) <= maxMessageLen {
		return msg
	}
	return string(r[:maxMessageLen]) + "..."
}

// Nop discards notifications.
type Nop struct{}

// Notify implements Notifier.
func (Nop) Notify(string) {}

// Func adapts a function to Notifier.
type Func func(message string)

// Notify implements Notifier.
func (f Func) Notify(message string) { f(message) }

// Recorder keeps every message it is asked to show. Safe for concurrent use.
type Recorder struct {
	mu       sync.Mutex
	messages []string
}

// Notify implements Notifier.
func (r *Recorder) Notify(message string) {
	r.mu.Lock()
	r.messages = append(r.messages, message)
	r.mu.Unlock()
}

// Messages returns a copy of the recorded messages in order.
func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.messages...)
}

// Reset drops recorded messages.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.messages = nil
	r.mu.Unlock()
}
