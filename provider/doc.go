// Package provider implements a small generic framework for swappable
// backends: a factory registry, a manager holding initialized instances and
// selectors that choose among them at call time.
//
// Backends implement Provider (Name and IsAvailable). Backends that can
// describe their health in more detail also implement HealthChecker.
//
// # Usage
//
//	reg := provider.NewRegistry[transcription.Provider]()
//	mgr := provider.NewManager(reg, &provider.PrioritySelector[transcription.Provider]{
//	    Priority: []string{"scribe"},
//	}, log)
//	mgr.Register("scribe", scribe.NewFactory(cfg))
//	_ = mgr.Initialize("scribe", nil)
//	p, err := mgr.Get(ctx)
package provider
