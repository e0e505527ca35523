package scribe

import (
	"fmt"
	"time"

	"github.com/kbukum/scribe/provider"
	"github.com/kbukum/scribe/transcription"
)

// NewFactory returns a provider factory building Clients from cfg.
// Overrides may replace api_key, endpoint, model and language (strings)
// and timeout (a time.Duration or a duration string).
func NewFactory(cfg Config, opts ...Option) provider.Factory[transcription.Provider] {
	return func(overrides map[string]any) (transcription.Provider, error) {
		c := cfg
		if err := applyOverrides(&c, overrides); err != nil {
			return nil, err
		}
		return New(c, opts...)
	}
}

func applyOverrides(cfg *Config, overrides map[string]any) error {
	for key, value := range overrides {
		switch key {
		case "api_key", "endpoint", "model", "language":
			s, ok := value.(string)
			if !ok {
				return fmt.Errorf("scribe: override %q must be a string, got %T", key, value)
			}
			switch key {
			case "api_key":
				cfg.APIKey = s
			case "endpoint":
				cfg.Endpoint = s
			case "model":
				cfg.Model = s
			case "language":
				cfg.Language = s
			}
		case "timeout":
			switch v := value.(type) {
			case time.Duration:
				cfg.Timeout = v
			case string:
				d, err := time.ParseDuration(v)
				if err != nil {
					return fmt.Errorf("scribe: override timeout: %w", err)
				}
				cfg.Timeout = d
			default:
				return fmt.Errorf("scribe: override timeout must be a duration, got %T", value)
			}
		default:
			return fmt.Errorf("scribe: unknown override %q", key)
		}
	}
	return nil
}
