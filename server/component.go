package server

import (
	"context"
	"sort"
	"strings"

	"github.com/kbukum/scribe/component"
	"github.com/kbukum/scribe/observability"
)

const componentName = "http-bridge"

var (
	_ component.Component     = (*Component)(nil)
	_ component.Describable   = (*Component)(nil)
	_ component.RouteProvider = (*Component)(nil)
)

// Component wraps Server to implement component.Component.
type Component struct {
	server *Server
}

// NewComponent returns a component.Component backed by s.
func NewComponent(s *Server) *Component {
	return &Component{server: s}
}

// Name returns the component name used for registration.
func (sc *Component) Name() string { return componentName }

// Start starts the underlying HTTP server.
func (sc *Component) Start(ctx context.Context) error {
	return sc.server.Start(ctx)
}

// Stop gracefully shuts down the underlying HTTP server.
func (sc *Component) Stop(ctx context.Context) error {
	return sc.server.Stop(ctx)
}

// Health reports the server as up once it is listening.
func (sc *Component) Health(context.Context) observability.Health {
	sc.server.mu.Lock()
	listening := sc.server.listener != nil
	sc.server.mu.Unlock()
	if !listening {
		return observability.Health{
			Name:    componentName,
			Status:  observability.HealthStatusDown,
			Message: "not listening",
		}
	}
	return observability.Health{Name: componentName, Status: observability.HealthStatusUp}
}

// Describe returns the startup summary line.
func (sc *Component) Describe() component.Description {
	return component.Description{
		Name:    "HTTP Bridge",
		Type:    "server",
		Details: sc.server.Addr() + " (h2c)",
		Port:    sc.server.config.Port,
	}
}

// Routes returns the registered routes, bridge routes first.
func (sc *Component) Routes() []component.Route {
	ginRoutes := sc.server.engine.Routes()
	sort.Slice(ginRoutes, func(i, j int) bool {
		iSys, jSys := !strings.HasPrefix(ginRoutes[i].Path, "/v1/"), !strings.HasPrefix(ginRoutes[j].Path, "/v1/")
		if iSys != jSys {
			return !iSys
		}
		return ginRoutes[i].Path < ginRoutes[j].Path
	})

	routes := make([]component.Route, 0, len(ginRoutes))
	for _, r := range ginRoutes {
		routes = append(routes, component.Route{
			Method:  r.Method,
			Path:    r.Path,
			Handler: handlerName(r.Handler),
		})
	}
	return routes
}

// handlerName trims Gin's handler path to the function name:
// "github.com/kbukum/scribe/server.utterances.func1" becomes "utterances".
func handlerName(full string) string {
	name := strings.TrimSuffix(full, "-fm")
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	parts := strings.Split(name, ".")
	for i := len(parts) - 1; i >= 0; i-- {
		if !strings.HasPrefix(parts[i], "func") {
			return parts[i]
		}
	}
	return name
}
