package validation

import (
	"strings"
	"testing"

	"github.com/kbukum/scribe/errors"
)

type engineSettings struct {
	Endpoint   string  `mapstructure:"endpoint" validate:"required,url"`
	Language   string  `mapstructure:"language" validate:"langcode"`
	SampleRate int     `mapstructure:"sample_rate" validate:"gt=0"`
	Format     string  `json:"format" validate:"omitempty,oneof=json console"`
	Gain       float64 `validate:"gte=0,lte=1"`
}

type utterance struct {
	Samples []float64 `json:"samples" validate:"required,min=1"`
}

func TestValidate_Valid(t *testing.T) {
	s := engineSettings{Endpoint: "https://api.elevenlabs.io/v1/speech-to-text", Language: "eng", SampleRate: 16000}
	if err := Validate(s); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestValidate_FieldNamesFromTags(t *testing.T) {
	err := Validate(engineSettings{Endpoint: "not a url", Language: "English", Format: "xml", Gain: 2})
	if err == nil {
		t.Fatal("expected validation error")
	}
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.Code != errors.ErrCodeInvalidInput {
		t.Fatalf("expected INVALID_INPUT AppError, got %v", err)
	}
	for _, want := range []string{
		"endpoint: must be a valid URL",
		"language: must be a two or three letter language code",
		"sample_rate: must be greater than 0",
		"format: must be one of: json console",
		"gain: must be at most 1",
	} {
		if !strings.Contains(appErr.Message, want) {
			t.Errorf("message %q missing %q", appErr.Message, want)
		}
	}
	fields, ok := appErr.Details["fields"].([]FieldError)
	if !ok || len(fields) != 5 {
		t.Errorf("expected 5 field errors, got %v", appErr.Details["fields"])
	}
}

func TestValidate_EmptySlice(t *testing.T) {
	err := Validate(utterance{Samples: []float64{}})
	if err == nil || !strings.Contains(err.Error(), "samples: must contain at least 1 items") {
		t.Errorf("expected min error for empty slice, got %v", err)
	}
	err = Validate(utterance{})
	if err == nil || !strings.Contains(err.Error(), "samples: is required") {
		t.Errorf("expected required error for nil slice, got %v", err)
	}
}

func TestValidate_LangCodeAllowsEmpty(t *testing.T) {
	s := engineSettings{Endpoint: "http://localhost", SampleRate: 8000}
	if err := Validate(s); err != nil {
		t.Errorf("empty language should be accepted, got %v", err)
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := map[string]string{
		"SampleRate": "sample_rate",
		"Gain":       "gain",
		"apiKey":     "api_key",
	}
	for in, want := range tests {
		if got := toSnakeCase(in); got != want {
			t.Errorf("toSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}
