package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kbukum/scribe/component"
	"github.com/kbukum/scribe/engine"
	"github.com/kbukum/scribe/logger"
	"github.com/kbukum/scribe/notify"
	"github.com/kbukum/scribe/observability"
	"github.com/kbukum/scribe/provider"
	"github.com/kbukum/scribe/server"
	"github.com/kbukum/scribe/transcription"
	"github.com/kbukum/scribe/transcription/scribe"
	"github.com/kbukum/scribe/version"
)

// App holds the wired engine and manages its lifecycle.
type App struct {
	Name    string
	Version string
	Cfg     *Config

	Logger     *logger.Logger
	Components *component.Registry
	Providers  *provider.Manager[transcription.Provider]
	Client     *scribe.Client
	Engine     *engine.Engine
	Notifier   notify.Notifier
	// Server is nil unless the bridge is enabled.
	Server  *server.Server
	Summary *Summary

	gracefulTimeout time.Duration
	summaryOut      io.Writer
	onStart         []Hook
	onReady         []Hook
	onStop          []Hook
}

// New validates cfg and builds every collaborator. Nothing is started.
func New(cfg *Config, opts ...Option) (*App, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	o := resolveOptions(opts)

	ver := cfg.Version
	if ver == "" {
		ver = version.Get().Version
	}
	a := &App{
		Name:            cfg.Name,
		Version:         ver,
		Cfg:             cfg,
		gracefulTimeout: o.gracefulTimeout,
		summaryOut:      o.summaryOut,
	}

	if o.logger != nil {
		a.Logger = o.logger
	} else {
		logger.Init(&cfg.Logging)
		a.Logger = logger.GetGlobalLogger()
	}
	a.Components = component.NewRegistry(a.Logger)

	a.Notifier = o.notifier
	if a.Notifier == nil {
		a.Notifier = notify.NewDesktop(cfg.Notify, a.Logger, o.desktopOpts...)
	}

	if err := a.buildClient(o); err != nil {
		return nil, err
	}

	settings := o.settings
	if settings == nil {
		settings = engine.StaticSettings{APIKey: cfg.Scribe.APIKey, Language: cfg.Scribe.Language}
	}
	dispatcher := o.dispatcher
	if dispatcher == nil {
		dispatcher = engine.LogDispatcher{Log: a.Logger.WithComponent("dispatch")}
	}
	a.Engine = engine.New(
		engine.ClientConverter{Client: a.Client, Settings: settings},
		dispatcher,
		engine.WithNotifier(a.Notifier),
		engine.WithLogger(a.Logger),
	)

	if cfg.Server.Enabled {
		a.Server = server.New(cfg.Server, a.Logger)
		a.Server.RegisterBridge(a.Engine)
		a.Server.RegisterDefaultEndpoints(a.Name, a.Health)
		if err := a.Components.Register(server.NewComponent(a.Server)); err != nil {
			return nil, err
		}
	}

	a.OnStart(a.setupTelemetry)
	a.Summary = NewSummary(a.Name, a.Version)
	return a, nil
}

// buildClient creates the Scribe client through the provider manager so
// provider health is reported the same way for any backend.
func (a *App) buildClient(o *appOptions) error {
	metrics, err := observability.NewMetrics(observability.Meter(ServiceName))
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	clientOpts := []scribe.Option{
		scribe.WithNotifier(a.Notifier),
		scribe.WithLogger(a.Logger),
		scribe.WithMetrics(metrics),
	}
	if o.transport != nil {
		clientOpts = append(clientOpts, scribe.WithTransport(o.transport))
	}

	a.Providers = transcription.NewManager(a.Logger, transcription.WithPriority(scribe.ProviderName))
	a.Providers.Register(scribe.ProviderName, scribe.NewFactory(a.Cfg.Scribe, clientOpts...))
	if err := a.Providers.Initialize(scribe.ProviderName, nil); err != nil {
		return fmt.Errorf("scribe provider: %w", err)
	}
	p, err := a.Providers.GetByName(scribe.ProviderName)
	if err != nil {
		return err
	}
	client, ok := p.(*scribe.Client)
	if !ok {
		return fmt.Errorf("scribe provider: unexpected type %T", p)
	}
	a.Client = client
	return nil
}

// setupTelemetry installs the OTLP providers when enabled and flushes them
// on stop.
func (a *App) setupTelemetry(ctx context.Context) error {
	shutdown, err := observability.Setup(ctx, a.Cfg.Observability, a.Name, a.Version, a.Cfg.Environment)
	if err != nil {
		return fmt.Errorf("observability: %w", err)
	}
	a.OnStop(func(ctx context.Context) error { return shutdown(ctx) })
	return nil
}

// Health returns component, provider and engine health for /health.
func (a *App) Health(ctx context.Context) []observability.Health {
	results := a.Components.HealthAll(ctx)
	for name, hs := range a.Providers.Health(ctx) {
		results = append(results, observability.ProviderHealth(name, hs))
	}
	eh := observability.Health{Name: "engine", Status: observability.HealthStatusUp}
	if !a.Engine.Status().Ready {
		eh.Status = observability.HealthStatusDown
	}
	return append(results, eh)
}

// Run starts everything, blocks until SIGINT, SIGTERM or ctx is done, then
// shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	if err := a.startup(ctx); err != nil {
		_ = a.stop()
		return err
	}
	a.Logger.Info("Ready, waiting for shutdown signal")
	a.WaitForSignal(ctx)
	return a.stop()
}

// RunTask runs a finite task under the same lifecycle. The task's context
// is canceled on SIGINT or SIGTERM.
func (a *App) RunTask(ctx context.Context, task func(ctx context.Context) error) error {
	if err := a.startup(ctx); err != nil {
		_ = a.stop()
		return err
	}

	taskCtx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	taskErr := task(taskCtx)
	stopSignals()

	if stopErr := a.stop(); stopErr != nil && taskErr == nil {
		return stopErr
	}
	return taskErr
}

func (a *App) startup(ctx context.Context) error {
	start := time.Now()
	a.Logger.Info("Starting", logger.Fields("name", a.Name, "version", a.Version))

	if err := a.Components.StartAll(ctx); err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}
	if err := runHooks(ctx, a.onStart); err != nil {
		return fmt.Errorf("onStart hook failed: %w", err)
	}
	if err := runHooks(ctx, a.onReady); err != nil {
		return fmt.Errorf("onReady hook failed: %w", err)
	}

	a.Summary.SetStartupDuration(time.Since(start))
	a.Summary.Collect(ctx, a)
	a.Summary.Write(a.summaryOut)
	return nil
}

// WaitForSignal blocks until an interrupt or terminate signal, or until
// ctx is done.
func (a *App) WaitForSignal(ctx context.Context) os.Signal {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		a.Logger.Info("Received shutdown signal", logger.Fields("signal", sig.String()))
		return sig
	case <-ctx.Done():
		a.Logger.Info("Context canceled, shutting down")
		return nil
	}
}

// Shutdown stops hooks and components. Use it when managing the lifecycle
// yourself.
func (a *App) Shutdown() error {
	return a.stop()
}

func (a *App) stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()

	var shutdownErr error
	if err := runHooks(ctx, a.onStop); err != nil {
		a.Logger.Error("OnStop hook error", logger.Fields(logger.FieldError, err.Error()))
		shutdownErr = err
	}
	if err := a.Components.StopAll(ctx); err != nil {
		a.Logger.Error("Shutdown completed with errors", logger.Fields(logger.FieldError, err.Error()))
		shutdownErr = err
	}
	if err := a.Engine.Close(); err != nil && shutdownErr == nil {
		shutdownErr = err
	}
	a.onStop = nil
	a.Logger.Info("Shutdown complete")
	return shutdownErr
}
