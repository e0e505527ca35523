package engine

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/kbukum/scribe/errors"
	"github.com/kbukum/scribe/notify"
	"github.com/kbukum/scribe/transcription"
)

func fixedConverter(p transcription.Phrase, err error) ConverterFunc {
	return func(context.Context, []float64) (transcription.Phrase, error) { return p, err }
}

func TestEngine_Identity(t *testing.T) {
	e := New(fixedConverter(nil, nil), &Recorder{})
	if e.Name() != "scribe" {
		t.Errorf("Name() = %q", e.Name())
	}
	if !e.NeedVAD() {
		t.Error("NeedVAD() = false, want true")
	}
	if !e.Status().Ready {
		t.Error("Status().Ready = false")
	}
	if err := e.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
}

func TestEngine_OnAudioFrame_DispatchesPhrase(t *testing.T) {
	rec := &Recorder{}
	e := New(fixedConverter(transcription.Phrase{"hello", "world"}, nil), rec)
	samples := []float64{0.1, -0.1}

	phrase, err := e.OnAudioFrame(context.Background(), samples, 12.5, false)
	if err != nil {
		t.Fatalf("OnAudioFrame: %v", err)
	}
	if len(phrase) != 2 {
		t.Fatalf("phrase = %v", phrase)
	}
	events := rec.Events()
	if len(events) != 1 {
		t.Fatalf("dispatched %d events, want 1", len(events))
	}
	ev := events[0]
	if ev.Type != EventPhrase || ev.Timestamp != 12.5 || len(ev.Samples) != 2 {
		t.Errorf("unexpected event %+v", ev)
	}
	if ev.Phrase[0] != "hello" || ev.Phrase[1] != "world" {
		t.Errorf("event phrase = %v", ev.Phrase)
	}
}

func TestEngine_OnAudioFrame_EmptyPhraseNotDispatched(t *testing.T) {
	rec := &Recorder{}
	e := New(fixedConverter(transcription.Phrase{}, nil), rec)
	if _, err := e.OnAudioFrame(context.Background(), []float64{0}, 0, true); err != nil {
		t.Fatalf("OnAudioFrame: %v", err)
	}
	if n := len(rec.Events()); n != 0 {
		t.Errorf("dispatched %d events, want 0", n)
	}
}

func TestEngine_OnAudioFrame_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantNotify bool
	}{
		{"service", errors.TranscriptionService(http.StatusTooManyRequests, "rate limited"), true},
		{"network", errors.Network(context.DeadlineExceeded), true},
		{"configuration already notified", errors.Configuration("no elevenlabs api key!"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &Recorder{}
			n := &notify.Recorder{}
			e := New(fixedConverter(nil, tt.err), rec, WithNotifier(n))

			phrase, err := e.OnAudioFrame(context.Background(), []float64{0.2}, 1, false)
			if err == nil {
				t.Fatal("expected error")
			}
			if phrase != nil {
				t.Errorf("phrase = %v, want nil", phrase)
			}
			if len(rec.Events()) != 0 {
				t.Error("failed utterance must not be dispatched")
			}
			if got := len(n.Messages()) > 0; got != tt.wantNotify {
				t.Errorf("notified = %v, want %v", got, tt.wantNotify)
			}
		})
	}
}

func TestEngine_Mimic(t *testing.T) {
	rec := &Recorder{}
	e := New(fixedConverter(nil, nil), rec)
	e.Mimic(context.Background(), transcription.Phrase{"open", "file"})
	events := rec.Events()
	if len(events) != 1 || events[0].Type != EventPhrase || len(events[0].Phrase) != 2 {
		t.Errorf("unexpected events %+v", events)
	}
}

func TestEngine_NoOpHooks(t *testing.T) {
	e := New(fixedConverter(nil, nil), &Recorder{})
	e.Enable()
	e.Disable()
	e.SetMicrophone("default")
	e.SyncGrammar(nil)
	e.UnloadGrammar(nil)
	e.SetVocab([]string{"a"})
	if !e.Status().Ready {
		t.Error("hooks must not change readiness")
	}
}

type fakeClient struct {
	apiKey, lang string
}

func (f *fakeClient) Convert(_ context.Context, _ []float64, apiKey, lang string) (transcription.Phrase, error) {
	f.apiKey, f.lang = apiKey, lang
	return transcription.Phrase{"ok"}, nil
}

type mutableSettings struct{ s Settings }

func (m *mutableSettings) Settings() Settings { return m.s }

func TestClientConverter_ReadsSettingsPerCall(t *testing.T) {
	client := &fakeClient{}
	src := &mutableSettings{s: Settings{APIKey: "k1", Language: "en"}}
	c := ClientConverter{Client: client, Settings: src}

	if _, err := c.Convert(context.Background(), nil); err != nil {
		t.Fatal(err)
	}
	if client.apiKey != "k1" || client.lang != "en" {
		t.Errorf("got %q/%q", client.apiKey, client.lang)
	}

	src.s = Settings{APIKey: "k2"}
	_, _ = c.Convert(context.Background(), nil)
	if client.apiKey != "k2" || client.lang != "" {
		t.Errorf("settings change not picked up: %q/%q", client.apiKey, client.lang)
	}
}

func TestStaticSettings(t *testing.T) {
	s := StaticSettings{APIKey: "k", Language: "de"}.Settings()
	if s.APIKey != "k" || s.Language != "de" {
		t.Errorf("unexpected settings %+v", s)
	}
}

func TestChannelDispatcher(t *testing.T) {
	d := NewChannelDispatcher(1)
	d.Dispatch(context.Background(), Event{Type: EventPhrase, Phrase: transcription.Phrase{"a"}})
	select {
	case ev := <-d.C:
		if ev.Phrase[0] != "a" {
			t.Errorf("event = %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}

	// Full buffer and a cancelled context must not block.
	d.Dispatch(context.Background(), Event{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	done := make(chan struct{})
	go func() {
		d.Dispatch(ctx, Event{})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Dispatch blocked on a cancelled context")
	}
}

func TestFuncDispatcher(t *testing.T) {
	var got Event
	d := FuncDispatcher(func(_ context.Context, ev Event) { got = ev })
	d.Dispatch(context.Background(), Event{Type: EventPhrase, Timestamp: 3})
	if got.Timestamp != 3 {
		t.Errorf("got %+v", got)
	}
}

func TestLogDispatcher_NilLogger(t *testing.T) {
	LogDispatcher{}.Dispatch(context.Background(), Event{Type: EventPhrase})
}
