package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/kbukum/scribe/component"
	"github.com/kbukum/scribe/observability"
)

// ScribeServerPath is the route the fake answers on.
const ScribeServerPath = "/v1/speech-to-text"

// Reply is one scripted answer.
type Reply struct {
	Status int
	Body   string
	// Delay holds the answer back, for timeout tests.
	Delay time.Duration
}

// TextReply answers 200 with a recognition result.
func TextReply(text, languageCode string) Reply {
	body, _ := json.Marshal(map[string]any{
		"text":                 text,
		"language_code":        languageCode,
		"language_probability": 0.98,
	})
	return Reply{Status: http.StatusOK, Body: string(body)}
}

// ErrorReply answers with status and a raw body.
func ErrorReply(status int, body string) Reply {
	return Reply{Status: status, Body: body}
}

// FormField is one recorded multipart text field.
type FormField struct {
	Name  string
	Value string
}

// RecordedRequest is what the fake saw for one call.
type RecordedRequest struct {
	Method   string
	Path     string
	RawQuery string
	APIKey   string
	Fields   []FormField
	// File part.
	FileField       string
	FileName        string
	FileContentType string
	Audio           []byte
}

// Field returns the value of the named form field.
func (r RecordedRequest) Field(name string) (string, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

type scribeState struct {
	requests []RecordedRequest
	queue    []Reply
	fallback Reply
}

func (s scribeState) clone() scribeState {
	return scribeState{
		requests: append([]RecordedRequest(nil), s.requests...),
		queue:    append([]Reply(nil), s.queue...),
		fallback: s.fallback,
	}
}

// ScribeServer is a fake transcription service. Safe for concurrent use.
type ScribeServer struct {
	mu    sync.Mutex
	srv   *httptest.Server
	state scribeState
}

var _ TestComponent = (*ScribeServer)(nil)

// NewScribeServer creates a stopped fake whose default answer recognizes
// "Hello World.".
func NewScribeServer() *ScribeServer {
	return &ScribeServer{state: initialState()}
}

func initialState() scribeState {
	return scribeState{fallback: TextReply("Hello World.", "eng")}
}

// Name implements component.Component.
func (s *ScribeServer) Name() string { return "fake-scribe" }

// Start implements component.Component.
func (s *ScribeServer) Start(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.srv != nil {
		return fmt.Errorf("fake-scribe already started")
	}
	s.srv = httptest.NewServer(http.HandlerFunc(s.handle))
	return nil
}

// Stop implements component.Component.
func (s *ScribeServer) Stop(context.Context) error {
	s.mu.Lock()
	srv := s.srv
	s.srv = nil
	s.mu.Unlock()
	if srv != nil {
		srv.Close()
	}
	return nil
}

// Health implements component.Component.
func (s *ScribeServer) Health(context.Context) observability.Health {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.srv == nil {
		return observability.Health{Name: s.Name(), Status: observability.HealthStatusDown, Message: "not started"}
	}
	return observability.Health{Name: s.Name(), Status: observability.HealthStatusUp}
}

// Describe implements component.Describable.
func (s *ScribeServer) Describe() component.Description {
	return component.Description{Name: "Fake Scribe", Type: "fake", Details: s.URL()}
}

// URL returns the base URL, or "" when stopped.
func (s *ScribeServer) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.srv == nil {
		return ""
	}
	return s.srv.URL
}

// Respond sets the answer used when the queue is empty.
func (s *ScribeServer) Respond(r Reply) {
	s.mu.Lock()
	s.state.fallback = r
	s.mu.Unlock()
}

// Enqueue adds one-shot answers consumed in order.
func (s *ScribeServer) Enqueue(replies ...Reply) {
	s.mu.Lock()
	s.state.queue = append(s.state.queue, replies...)
	s.mu.Unlock()
}

// Requests returns the recorded requests in arrival order.
func (s *ScribeServer) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]RecordedRequest(nil), s.state.requests...)
}

// Calls returns the number of requests received.
func (s *ScribeServer) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.state.requests)
}

// Reset implements TestComponent.
func (s *ScribeServer) Reset(context.Context) error {
	s.mu.Lock()
	s.state = initialState()
	s.mu.Unlock()
	return nil
}

// Snapshot implements TestComponent.
func (s *ScribeServer) Snapshot(context.Context) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone(), nil
}

// Restore implements TestComponent.
func (s *ScribeServer) Restore(_ context.Context, snapshot any) error {
	st, ok := snapshot.(scribeState)
	if !ok {
		return fmt.Errorf("fake-scribe: unexpected snapshot type %T", snapshot)
	}
	s.mu.Lock()
	s.state = st.clone()
	s.mu.Unlock()
	return nil
}

func (s *ScribeServer) handle(w http.ResponseWriter, r *http.Request) {
	rec, err := record(r)

	s.mu.Lock()
	s.state.requests = append(s.state.requests, rec)
	reply := s.state.fallback
	if len(s.state.queue) > 0 {
		reply = s.state.queue[0]
		s.state.queue = s.state.queue[1:]
	}
	s.mu.Unlock()

	if r.Method != http.MethodPost || r.URL.Path != ScribeServerPath {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = fmt.Fprintf(w, `{"detail":{"status":"invalid_request","message":%q}}`, err.Error())
		return
	}

	if reply.Delay > 0 {
		select {
		case <-time.After(reply.Delay):
		case <-r.Context().Done():
			return
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(reply.Status)
	_, _ = io.WriteString(w, reply.Body)
}

// record reads the multipart body keeping the field order.
func record(r *http.Request) (RecordedRequest, error) {
	rec := RecordedRequest{
		Method:   r.Method,
		Path:     r.URL.Path,
		RawQuery: r.URL.RawQuery,
		APIKey:   r.Header.Get("xi-api-key"),
	}
	mediaType, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "multipart/form-data" {
		return rec, fmt.Errorf("expected multipart/form-data body")
	}
	mr := multipart.NewReader(r.Body, params["boundary"])
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			return rec, nil
		}
		if err != nil {
			return rec, err
		}
		data, err := io.ReadAll(part)
		if err != nil {
			return rec, err
		}
		if part.FileName() != "" {
			rec.FileField = part.FormName()
			rec.FileName = part.FileName()
			rec.FileContentType = part.Header.Get("Content-Type")
			rec.Audio = data
			continue
		}
		rec.Fields = append(rec.Fields, FormField{Name: part.FormName(), Value: string(data)})
	}
}
