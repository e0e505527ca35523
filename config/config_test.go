package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"
)

type testSection struct {
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
	Enabled bool          `mapstructure:"enabled"`
}

type testConfig struct {
	ServiceConfig `mapstructure:",squash"`
	Scribe        testSection `mapstructure:"scribe"`
}

type mockFS struct {
	files     map[string]bool
	configDir string
	loaded    []string
}

func (m *mockFS) Exists(path string) bool { return m.files[path] }
func (m *mockFS) LoadEnv(path string) error {
	m.loaded = append(m.loaded, path)
	return nil
}
func (m *mockFS) UserConfigDir() (string, error) { return m.configDir, nil }

func TestServiceConfig_ApplyDefaults(t *testing.T) {
	cfg := ServiceConfig{Name: "scribe"}
	cfg.ApplyDefaults()
	if cfg.Environment != "development" {
		t.Errorf("expected 'development', got %q", cfg.Environment)
	}
	if cfg.Logging.ServiceName != "scribe" {
		t.Errorf("expected logging service name to follow Name, got %q", cfg.Logging.ServiceName)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected info level, got %q", cfg.Logging.Level)
	}

	debug := ServiceConfig{Name: "scribe", Debug: true}
	debug.ApplyDefaults()
	if debug.Logging.Level != "debug" {
		t.Errorf("expected debug level when Debug is set, got %q", debug.Logging.Level)
	}
}

func TestServiceConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ServiceConfig
		wantErr string
	}{
		{"valid", ServiceConfig{Name: "scribe"}, ""},
		{"missing name", ServiceConfig{}, "config.name is required"},
		{"bad environment", ServiceConfig{Name: "scribe", Environment: "qa"}, "config.environment must be one of"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := tc.cfg
			cfg.ApplyDefaults()
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestLoadConfig_YAMLAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	content := `
name: scribe
environment: staging
logging:
  level: warn
scribe:
  api_key: from-file
  timeout: 10s
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("SCRIBE_API_KEY", "from-env")
	t.Setenv("SCRIBE_ENABLED", "true")

	var cfg testConfig
	if err := LoadConfig("scribe", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Name != "scribe" || cfg.Environment != "staging" {
		t.Errorf("unexpected base config %+v", cfg.ServiceConfig)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected nested logging level, got %q", cfg.Logging.Level)
	}
	if cfg.Scribe.APIKey != "from-env" {
		t.Errorf("expected env override, got %q", cfg.Scribe.APIKey)
	}
	if cfg.Scribe.Timeout != 10*time.Second {
		t.Errorf("expected 10s timeout, got %s", cfg.Scribe.Timeout)
	}
	if !cfg.Scribe.Enabled {
		t.Error("expected string env to decode into bool")
	}
}

func TestLoadConfig_MissingFileIsNotAnError(t *testing.T) {
	var cfg testConfig
	fs := &mockFS{files: map[string]bool{}}
	if err := LoadConfig("scribe", &cfg, WithFileSystem(fs)); err != nil {
		t.Fatalf("expected no error without files, got %v", err)
	}
}

func TestLoadConfig_EnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("SCRIBE_TEST_DOTENV_KEY=dotenv\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	defer os.Unsetenv("SCRIBE_TEST_DOTENV_KEY")

	var cfg testConfig
	if err := LoadConfig("scribe", &cfg, WithEnvFile(envPath), WithConfigFile(filepath.Join(dir, "missing.yml"))); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if os.Getenv("SCRIBE_TEST_DOTENV_KEY") != "dotenv" {
		t.Error("expected .env file to be loaded into the environment")
	}
}

func TestResolver_SearchOrder(t *testing.T) {
	fs := &mockFS{
		configDir: "/home/u/.config",
		files: map[string]bool{
			"/home/u/.config/scribe/config.yml": true,
			"./config/config.yml":               true,
			".env":                              true,
		},
	}
	r := &Resolver{FileSystem: fs}
	got := r.ResolveFiles("scribe", LoaderConfig{})
	if got.ConfigFile != "./config/config.yml" {
		t.Errorf("expected local config to win, got %q", got.ConfigFile)
	}
	if got.EnvFile != ".env" {
		t.Errorf("expected .env, got %q", got.EnvFile)
	}

	explicit := r.ResolveFiles("scribe", LoaderConfig{ConfigFile: "/etc/scribe.yml"})
	if explicit.ConfigFile != "/etc/scribe.yml" {
		t.Errorf("explicit path should be kept, got %q", explicit.ConfigFile)
	}
}

func TestResolver_UserConfigDir(t *testing.T) {
	fs := &mockFS{
		configDir: "/home/u/.config",
		files:     map[string]bool{filepath.Join("/home/u/.config", "scribe", "config.yml"): true},
	}
	got := (&Resolver{FileSystem: fs}).ResolveFiles("scribe", LoaderConfig{})
	if got.ConfigFile != filepath.Join("/home/u/.config", "scribe", "config.yml") {
		t.Errorf("expected user config dir file, got %q", got.ConfigFile)
	}
}

func TestGenerateEnvKeyVariants(t *testing.T) {
	got := generateEnvKeyVariants("SCRIBE_API_KEY")
	for _, want := range []string{"scribe_api_key", "scribe.api_key"} {
		if !slices.Contains(got, want) {
			t.Errorf("expected variant %q in %v", want, got)
		}
	}
	if got := generateEnvKeyVariants("DEBUG"); len(got) != 1 || got[0] != "debug" {
		t.Errorf("single-part key variants = %v", got)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(path, []byte("name: scribe\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var cfg testConfig
	defaults := WithDefaults(map[string]any{"scribe.enabled": true, "scribe.timeout": "3s"})
	if err := LoadConfig("scribe", &cfg, WithConfigFile(path), defaults); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !cfg.Scribe.Enabled {
		t.Error("expected default to apply when the file has no scribe section")
	}
	if cfg.Scribe.Timeout != 3*time.Second {
		t.Errorf("expected default timeout, got %s", cfg.Scribe.Timeout)
	}

	if err := os.WriteFile(path, []byte("name: scribe\nscribe:\n  enabled: false\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg = testConfig{}
	if err := LoadConfig("scribe", &cfg, WithConfigFile(path), defaults); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Scribe.Enabled {
		t.Error("file value must win over the default")
	}
}
