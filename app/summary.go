package app

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/kbukum/scribe/component"
	"github.com/kbukum/scribe/observability"
	"github.com/kbukum/scribe/util"
)

// Summary is the startup banner: what is wired, where it listens and how
// healthy it is.
type Summary struct {
	serviceName     string
	version         string
	startupDuration time.Duration

	settings []setting
	infra    []component.Description
	routes   []component.Route
	health   []observability.Health
}

type setting struct {
	name, value string
}

// NewSummary creates an empty summary.
func NewSummary(serviceName, version string) *Summary {
	return &Summary{serviceName: serviceName, version: version}
}

// SetStartupDuration records the total startup time.
func (s *Summary) SetStartupDuration(d time.Duration) {
	s.startupDuration = d
}

// Collect snapshots the app's configuration, components, routes and health.
func (s *Summary) Collect(ctx context.Context, a *App) {
	sc := a.Client.Config()
	language := sc.Language
	if language == "" {
		language = "auto"
	}
	s.settings = []setting{
		{"endpoint", sc.Endpoint},
		{"model", sc.Model},
		{"language", language},
		{"api key", util.MaskSecret(sc.APIKey, 4)},
		{"timeout", sc.Timeout.String()},
		{"notifications", enabled(a.Cfg.Notify.Enabled)},
		{"telemetry", enabled(a.Cfg.Observability.Enabled)},
	}

	s.infra = s.infra[:0]
	s.routes = s.routes[:0]
	for _, c := range a.Components.All() {
		if d, ok := c.(component.Describable); ok {
			s.infra = append(s.infra, d.Describe())
		}
		if rp, ok := c.(component.RouteProvider); ok {
			s.routes = append(s.routes, rp.Routes()...)
		}
	}
	s.health = a.Health(ctx)
}

// Write prints the summary to w. A nil w prints nothing.
func (s *Summary) Write(w io.Writer) {
	if w == nil {
		return
	}
	fmt.Fprintf(w, "\n🎙️  %s %s started in %.2fs\n\n", s.serviceName, s.version, s.startupDuration.Seconds())

	fmt.Fprintf(w, "⚙️  Scribe\n")
	for i, st := range s.settings {
		fmt.Fprintf(w, "   %s %-13s %s\n", branch(i, len(s.settings)), st.name, st.value)
	}

	if len(s.infra) > 0 {
		fmt.Fprintf(w, "\n📊 Infrastructure\n")
		for i, d := range s.infra {
			fmt.Fprintf(w, "   %s %s: %s\n", branch(i, len(s.infra)), d.Name, d.Details)
		}
	}

	if len(s.routes) > 0 {
		fmt.Fprintf(w, "\n🌐 Routes (%d)\n", len(s.routes))
		for i, r := range s.routes {
			fmt.Fprintf(w, "   %s %-6s %s → %s\n", branch(i, len(s.routes)), r.Method, r.Path, r.Handler)
		}
	}

	if len(s.health) > 0 {
		fmt.Fprintf(w, "\n🏥 Health\n")
		for i, h := range s.health {
			msg := ""
			if h.Message != "" {
				msg = " (" + h.Message + ")"
			}
			fmt.Fprintf(w, "   %s %s %s: %s%s\n", branch(i, len(s.health)), healthIcon(h.Status), h.Name, strings.ToLower(string(h.Status)), msg)
		}
	}
	fmt.Fprintln(w)
}

func branch(i, n int) string {
	if i == n-1 {
		return "└──"
	}
	return "├──"
}

func enabled(b bool) string {
	if b {
		return "enabled"
	}
	return "disabled"
}

func healthIcon(status observability.HealthStatus) string {
	switch status {
	case observability.HealthStatusUp:
		return "✅"
	case observability.HealthStatusDegraded:
		return "⚠️"
	default:
		return "❌"
	}
}
