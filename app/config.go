package app

import (
	"fmt"

	"github.com/kbukum/scribe/config"
	"github.com/kbukum/scribe/notify"
	"github.com/kbukum/scribe/observability"
	"github.com/kbukum/scribe/server"
	"github.com/kbukum/scribe/transcription/scribe"
	"github.com/kbukum/scribe/validation"
)

// ServiceName is used for config lookup, logging and telemetry.
const ServiceName = "scribe"

// Config is the full scribe configuration.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Scribe        scribe.Config        `yaml:"scribe" mapstructure:"scribe"`
	Server        server.Config        `yaml:"server" mapstructure:"server"`
	Notify        notify.Config        `yaml:"notify" mapstructure:"notify"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`

	// ElevenLabsAPIKey picks up ELEVENLABS_API_KEY when scribe.api_key is unset.
	ElevenLabsAPIKey string `yaml:"-" mapstructure:"elevenlabs_api_key"`
}

// ApplyDefaults fills in zero-value fields of every section.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = ServiceName
	}
	c.ServiceConfig.ApplyDefaults()
	if c.Scribe.APIKey == "" {
		c.Scribe.APIKey = c.ElevenLabsAPIKey
	}
	c.Scribe.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Notify.ApplyDefaults()
	c.Observability.ApplyDefaults()
}

// Validate checks every section. A missing API key is not an error here.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Scribe.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := validation.Validate(&c.Observability); err != nil {
		return fmt.Errorf("config.observability: %w", err)
	}
	return nil
}

// loaderDefaults are the keys whose default is not the zero value.
var loaderDefaults = map[string]any{
	"notify.enabled": true,
}

// LoadConfig reads config.yml, .env and the environment, then applies
// defaults and validates.
func LoadConfig(opts ...config.LoaderOption) (*Config, error) {
	var cfg Config
	opts = append([]config.LoaderOption{config.WithDefaults(loaderDefaults)}, opts...)
	if err := config.LoadConfig(ServiceName, &cfg, opts...); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return &cfg, nil
}
