package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/kbukum/scribe/config"
	"github.com/kbukum/scribe/engine"
	"github.com/kbukum/scribe/errors"
	"github.com/kbukum/scribe/logger"
	"github.com/kbukum/scribe/notify"
	"github.com/kbukum/scribe/observability"
	"github.com/kbukum/scribe/testutil"
	"github.com/kbukum/scribe/transcription/scribe"
)

type noFiles struct{}

func (noFiles) Exists(string) bool             { return false }
func (noFiles) LoadEnv(string) error           { return nil }
func (noFiles) UserConfigDir() (string, error) { return "", nil }

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func testOptions(n notify.Notifier, extra ...Option) []Option {
	return append([]Option{
		WithLogger(logger.Nop()),
		WithNotifier(n),
		WithSummaryOutput(io.Discard),
		WithGracefulTimeout(2 * time.Second),
	}, extra...)
}

func TestNew_Defaults(t *testing.T) {
	a, err := New(&Config{}, testOptions(&notify.Recorder{})...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if a.Name != ServiceName {
		t.Errorf("Name = %q", a.Name)
	}
	if a.Server != nil {
		t.Error("bridge must be off unless enabled")
	}
	sc := a.Client.Config()
	if sc.Endpoint != scribe.DefaultEndpoint || sc.Model != scribe.DefaultModel {
		t.Errorf("client config = %+v", sc)
	}
	if a.Engine.Name() != "scribe" {
		t.Errorf("engine name = %q", a.Engine.Name())
	}
	if got := a.Providers.Available(); len(got) != 1 || got[0] != scribe.ProviderName {
		t.Errorf("providers = %v", got)
	}
}

func TestConfig_APIKeyAlias(t *testing.T) {
	cfg := Config{ElevenLabsAPIKey: "from-alias"}
	cfg.ApplyDefaults()
	if cfg.Scribe.APIKey != "from-alias" {
		t.Errorf("APIKey = %q", cfg.Scribe.APIKey)
	}

	cfg = Config{ElevenLabsAPIKey: "from-alias"}
	cfg.Scribe.APIKey = "explicit"
	cfg.ApplyDefaults()
	if cfg.Scribe.APIKey != "explicit" {
		t.Errorf("explicit key must win, got %q", cfg.Scribe.APIKey)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad language", func(c *Config) { c.Scribe.Language = "english" }},
		{"bad endpoint", func(c *Config) { c.Scribe.Endpoint = "not a url" }},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }},
		{"bad sample ratio", func(c *Config) { c.Observability.SampleRate = 2 }},
		{"bad environment", func(c *Config) { c.Environment = "qa" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.ApplyDefaults()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
			if _, err := New(cfg, testOptions(&notify.Recorder{})...); err == nil {
				t.Error("New must reject an invalid config")
			}
		})
	}
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("SCRIBE_API_KEY", "")
	t.Setenv("ELEVENLABS_API_KEY", "env-key")
	t.Setenv("SCRIBE_LANGUAGE", "de")
	t.Setenv("SCRIBE_TIMEOUT", "5s")

	cfg, err := LoadConfig(config.WithFileSystem(noFiles{}))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Scribe.APIKey != "env-key" {
		t.Errorf("APIKey = %q", cfg.Scribe.APIKey)
	}
	if cfg.Scribe.Language != "de" || cfg.Scribe.Timeout != 5*time.Second {
		t.Errorf("scribe config = %+v", cfg.Scribe)
	}
	if cfg.Server.Addr() != "127.0.0.1:8765" {
		t.Errorf("server addr = %q", cfg.Server.Addr())
	}
}

func newBridgeApp(t *testing.T, fake *testutil.ScribeServer, apiKey string, opts ...Option) (*App, *notify.Recorder) {
	t.Helper()
	cfg := &Config{}
	cfg.Scribe.Endpoint = fake.URL()
	cfg.Scribe.APIKey = apiKey
	cfg.Server.Enabled = true
	cfg.Server.Port = freePort(t)

	rec := &notify.Recorder{}
	a, err := New(cfg, testOptions(rec, opts...)...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return a, rec
}

func TestRunTask_BridgeEndToEnd(t *testing.T) {
	fake := testutil.NewScribeServer()
	testutil.T(t).Setup(fake)
	fake.Respond(testutil.TextReply("Hello World.", "eng"))

	dispatched := &engine.Recorder{}
	a, rec := newBridgeApp(t, fake, "k-123", WithDispatcher(dispatched))

	var ready, stopped bool
	a.OnReady(func(context.Context) error { ready = true; return nil })
	a.OnStop(func(context.Context) error { stopped = true; return nil })

	err := a.RunTask(context.Background(), func(ctx context.Context) error {
		base := "http://" + a.Server.Addr()

		resp, err := http.Post(base+"/v1/utterances", "application/json",
			strings.NewReader(`{"samples":[0.1,0.2,-0.1],"ts":1.5,"pad":false}`))
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("utterance status = %d", resp.StatusCode)
		}
		var body struct {
			Phrase []string `json:"phrase"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return err
		}
		if strings.Join(body.Phrase, " ") != "hello world" {
			t.Errorf("phrase = %v", body.Phrase)
		}

		hresp, err := http.Get(base + "/health")
		if err != nil {
			return err
		}
		defer hresp.Body.Close()
		var sh observability.ServiceHealth
		if err := json.NewDecoder(hresp.Body).Decode(&sh); err != nil {
			return err
		}
		if sh.Status != observability.HealthStatusUp {
			t.Errorf("health = %+v", sh)
		}
		names := map[string]bool{}
		for _, c := range sh.Components {
			names[c.Name] = true
		}
		for _, want := range []string{"http-bridge", scribe.ProviderName, "engine"} {
			if !names[want] {
				t.Errorf("health is missing component %q: %+v", want, sh.Components)
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("RunTask: %v", err)
	}

	if !ready || !stopped {
		t.Errorf("hooks: ready=%v stopped=%v", ready, stopped)
	}
	if fake.Calls() != 1 {
		t.Fatalf("fake calls = %d, want 1", fake.Calls())
	}
	if got := fake.Requests()[0].APIKey; got != "k-123" {
		t.Errorf("api key sent = %q", got)
	}
	events := dispatched.Events()
	if len(events) != 1 || events[0].Timestamp != 1.5 {
		t.Errorf("dispatched = %+v", events)
	}
	if len(rec.Messages()) != 0 {
		t.Errorf("unexpected notifications %v", rec.Messages())
	}
}

func TestRunTask_MissingKeyNotifiesOnce(t *testing.T) {
	fake := testutil.NewScribeServer()
	testutil.T(t).Setup(fake)

	a, rec := newBridgeApp(t, fake, "")
	err := a.RunTask(context.Background(), func(ctx context.Context) error {
		_, err := a.Engine.OnAudioFrame(ctx, []float64{0.1}, 0, false)
		if !errors.IsConfiguration(err) {
			t.Errorf("expected configuration error, got %v", err)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("RunTask: %v", err)
	}
	if fake.Calls() != 0 {
		t.Errorf("fake calls = %d, want 0", fake.Calls())
	}
	msgs := rec.Messages()
	if len(msgs) != 1 || msgs[0] != scribe.MissingKeyMessage {
		t.Errorf("notifications = %v", msgs)
	}
}

func TestRunTask_ReturnsTaskError(t *testing.T) {
	a, err := New(&Config{}, testOptions(&notify.Recorder{})...)
	if err != nil {
		t.Fatal(err)
	}
	want := errors.Validation("bad input")
	if got := a.RunTask(context.Background(), func(context.Context) error { return want }); got != want {
		t.Errorf("RunTask = %v, want %v", got, want)
	}
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	a, err := New(&Config{}, testOptions(&notify.Recorder{})...)
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestSummary_Write(t *testing.T) {
	fake := testutil.NewScribeServer()
	testutil.T(t).Setup(fake)

	var out bytes.Buffer
	a, _ := newBridgeApp(t, fake, "sk_0123456789", WithSummaryOutput(&out))
	if err := a.RunTask(context.Background(), func(context.Context) error { return nil }); err != nil {
		t.Fatal(err)
	}
	s := out.String()
	for _, want := range []string{"sk_0***", "POST", "/v1/utterances", "HTTP Bridge", "language", "auto"} {
		if !strings.Contains(s, want) {
			t.Errorf("summary is missing %q:\n%s", want, s)
		}
	}
	if strings.Contains(s, "sk_0123456789") {
		t.Error("summary must not print the API key")
	}
}

type switchingSettings struct{ calls int }

func (s *switchingSettings) Settings() engine.Settings {
	s.calls++
	if s.calls == 1 {
		return engine.Settings{APIKey: "first", Language: "eng"}
	}
	return engine.Settings{APIKey: "second"}
}

func TestWithSettings_ReadPerUtterance(t *testing.T) {
	fake := testutil.NewScribeServer()
	testutil.T(t).Setup(fake)

	cfg := &Config{}
	cfg.Scribe.Endpoint = fake.URL()
	src := &switchingSettings{}
	a, err := New(cfg, testOptions(&notify.Recorder{}, WithSettings(src))...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	err = a.RunTask(context.Background(), func(ctx context.Context) error {
		for range 2 {
			if _, err := a.Engine.OnAudioFrame(ctx, []float64{0.1, -0.1}, 0, false); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("RunTask: %v", err)
	}

	reqs := fake.Requests()
	if len(reqs) != 2 {
		t.Fatalf("fake calls = %d, want 2", len(reqs))
	}
	if reqs[0].APIKey != "first" || reqs[1].APIKey != "second" {
		t.Errorf("api keys = %q, %q", reqs[0].APIKey, reqs[1].APIKey)
	}
	if v, ok := reqs[0].Field("language_code"); !ok || v != "eng" {
		t.Errorf("first language_code = %q, %v", v, ok)
	}
	if _, ok := reqs[1].Field("language_code"); ok {
		t.Error("second request must not carry a language_code")
	}
}

func TestLoadConfig_DesktopNotificationsOnByDefault(t *testing.T) {
	t.Setenv("SCRIBE_API_KEY", "")
	t.Setenv("ELEVENLABS_API_KEY", "")
	fake := testutil.NewScribeServer()
	testutil.T(t).Setup(fake)

	path := filepath.Join(t.TempDir(), "config.yml")
	content := "name: scribe\nscribe:\n  endpoint: " + fake.URL() + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(config.WithConfigFile(path))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !cfg.Notify.Enabled {
		t.Fatal("notifications must be enabled when the config has no notify section")
	}

	var (
		mu    sync.Mutex
		shown []string
	)
	capture := notify.WithSender(func(_, message, _ string) error {
		mu.Lock()
		shown = append(shown, message)
		mu.Unlock()
		return nil
	})
	a, err := New(cfg,
		WithLogger(logger.Nop()),
		WithDesktopOptions(capture),
		WithSummaryOutput(io.Discard),
		WithGracefulTimeout(2*time.Second),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	err = a.RunTask(context.Background(), func(ctx context.Context) error {
		_, err := a.Engine.OnAudioFrame(ctx, []float64{0.1}, 0, false)
		if !errors.IsConfiguration(err) {
			t.Errorf("expected configuration error, got %v", err)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("RunTask: %v", err)
	}
	if fake.Calls() != 0 {
		t.Errorf("fake calls = %d, want 0", fake.Calls())
	}
	mu.Lock()
	defer mu.Unlock()
	if len(shown) != 1 || shown[0] != scribe.MissingKeyMessage {
		t.Errorf("desktop notifications = %v", shown)
	}
}
