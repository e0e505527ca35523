package scribe

import (
	"time"

	"github.com/kbukum/scribe/errors"
	"github.com/kbukum/scribe/transcription"
	"github.com/kbukum/scribe/validation"
)

const (
	// ProviderName is the registered name for the Scribe provider.
	ProviderName = "scribe"

	// DefaultEndpoint is the ElevenLabs API base URL.
	DefaultEndpoint = "https://api.elevenlabs.io"
	// DefaultModel is the Scribe model identifier.
	DefaultModel = "scribe_v1"

	defaultTimeout = 30 * time.Second
)

// Config configures the Scribe client.
type Config struct {
	// APIKey is the default credential used by Transcribe. Convert always
	// takes the key from its caller.
	APIKey   string `yaml:"api_key" mapstructure:"api_key"`
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint" validate:"required,url"`
	Model    string `yaml:"model" mapstructure:"model" validate:"required"`
	// Language is the default language hint; empty lets the service detect it.
	Language string `yaml:"language" mapstructure:"language" validate:"langcode"`
	// SampleRate of the host's utterance buffers in Hz.
	SampleRate int           `yaml:"sample_rate" mapstructure:"sample_rate" validate:"gt=0,lte=655350"`
	Timeout    time.Duration `yaml:"timeout" mapstructure:"timeout" validate:"gt=0"`

	TagAudioEvents bool `yaml:"tag_audio_events" mapstructure:"tag_audio_events"`
	Diarize        bool `yaml:"diarize" mapstructure:"diarize"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = DefaultEndpoint
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.SampleRate == 0 {
		c.SampleRate = transcription.DefaultSampleRate
	}
	if c.Timeout == 0 {
		c.Timeout = defaultTimeout
	}
}

// Validate checks the configuration. An empty APIKey is valid here; it is
// reported when a conversion is attempted.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return errors.Configuration("invalid scribe config: " + err.Error()).WithCause(err)
	}
	return nil
}
