package scribe

import (
	"context"
	"testing"
	"time"

	"github.com/kbukum/scribe/transcription"
)

func TestFactory_Overrides(t *testing.T) {
	f := NewFactory(Config{APIKey: "base"})
	p, err := f(map[string]any{"model": "scribe_v2", "timeout": "5s", "language": "de"})
	if err != nil {
		t.Fatalf("factory: %v", err)
	}
	cfg := p.(*Client).Config()
	if cfg.Model != "scribe_v2" || cfg.Timeout != 5*time.Second || cfg.Language != "de" || cfg.APIKey != "base" {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestFactory_BadOverrides(t *testing.T) {
	f := NewFactory(Config{})
	for _, o := range []map[string]any{
		{"model": 3},
		{"timeout": "soon"},
		{"timeout": 5},
		{"colour": "blue"},
	} {
		if _, err := f(o); err == nil {
			t.Errorf("expected error for %v", o)
		}
	}
}

func TestFactory_ThroughManager(t *testing.T) {
	mgr := transcription.NewManager(nil, transcription.WithPriority(ProviderName))
	mgr.Register(ProviderName, NewFactory(Config{APIKey: "k"}))
	if err := mgr.Initialize(ProviderName, map[string]any{"timeout": 2 * time.Second}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	p, err := mgr.Get(context.Background())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p.Name() != ProviderName {
		t.Errorf("Name = %q", p.Name())
	}
}
