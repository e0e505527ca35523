package app

import (
	"io"
	"net/http"
	"os"
	"time"

	"github.com/kbukum/scribe/engine"
	"github.com/kbukum/scribe/logger"
	"github.com/kbukum/scribe/notify"
)

// Option configures the App during creation.
type Option func(*appOptions)

type appOptions struct {
	logger          *logger.Logger
	notifier        notify.Notifier
	desktopOpts     []notify.DesktopOption
	dispatcher      engine.Dispatcher
	settings        engine.SettingsSource
	transport       http.RoundTripper
	gracefulTimeout time.Duration
	summaryOut      io.Writer
}

func resolveOptions(opts []Option) *appOptions {
	o := &appOptions{gracefulTimeout: 15 * time.Second, summaryOut: os.Stdout}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets a custom logger. By default the logger is initialized
// from the config's logging section.
func WithLogger(l *logger.Logger) Option {
	return func(o *appOptions) { o.logger = l }
}

// WithNotifier replaces the desktop notifier.
func WithNotifier(n notify.Notifier) Option {
	return func(o *appOptions) { o.notifier = n }
}

// WithDesktopOptions configures the default desktop notifier. It has no
// effect together with WithNotifier.
func WithDesktopOptions(opts ...notify.DesktopOption) Option {
	return func(o *appOptions) { o.desktopOpts = append(o.desktopOpts, opts...) }
}

// WithDispatcher sets where recognized phrases go. The default logs them.
func WithDispatcher(d engine.Dispatcher) Option {
	return func(o *appOptions) { o.dispatcher = d }
}

// WithSettings sets the source of the per-utterance API key and language.
// The default reads them once from the scribe config section.
func WithSettings(s engine.SettingsSource) Option {
	return func(o *appOptions) { o.settings = s }
}

// WithTransport sets the HTTP transport of the Scribe client.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *appOptions) { o.transport = rt }
}

// WithGracefulTimeout bounds shutdown.
func WithGracefulTimeout(d time.Duration) Option {
	return func(o *appOptions) { o.gracefulTimeout = d }
}

// WithSummaryOutput sets where the startup summary is printed. Pass
// io.Discard to silence it.
func WithSummaryOutput(w io.Writer) Option {
	return func(o *appOptions) { o.summaryOut = w }
}
