package scribe

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/kbukum/scribe/audio"
	"github.com/kbukum/scribe/errors"
	"github.com/kbukum/scribe/httpclient"
	"github.com/kbukum/scribe/transcription"
)

const (
	speechToTextPath = "/v1/speech-to-text"
	apiKeyHeader     = "xi-api-key"
	audioFieldName   = "file"
	audioFileName    = "a.flac"
)

// multipart form field names.
const (
	fieldModelID        = "model_id"
	fieldTagAudioEvents = "tag_audio_events"
	fieldDiarize        = "diarize"
	fieldLanguageCode   = "language_code"
)

// errorBody is the service's error envelope. detail is usually an object
// with a message but may be a bare string.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

type errorDetail struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// buildForm assembles the multipart body for one utterance.
func (c *Client) buildForm(flacData []byte, model, language string) *httpclient.MultipartBody {
	form := &httpclient.MultipartBody{}
	form.AddField(fieldModelID, model).
		AddField(fieldTagAudioEvents, strconv.FormatBool(c.cfg.TagAudioEvents)).
		AddField(fieldDiarize, strconv.FormatBool(c.cfg.Diarize))
	if language != "" {
		form.AddField(fieldLanguageCode, language)
	}
	form.Files = []httpclient.FileField{{
		FieldName:   audioFieldName,
		FileName:    audioFileName,
		ContentType: audio.FLACContentType,
		Data:        flacData,
	}}
	return form
}

// serviceError builds the error for a non-2xx answer, preferring the
// service's detail message over the raw body.
func serviceError(statusCode int, body []byte) *errors.AppError {
	msg := detailMessage(body)
	if msg == "" {
		msg = strings.TrimSpace(string(body))
	}
	if msg == "" {
		msg = http.StatusText(statusCode)
	}
	return errors.TranscriptionService(statusCode, msg)
}

func detailMessage(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil || len(eb.Detail) == 0 {
		return ""
	}
	var d errorDetail
	if err := json.Unmarshal(eb.Detail, &d); err == nil {
		return d.Message
	}
	var s string
	if err := json.Unmarshal(eb.Detail, &s); err == nil {
		return s
	}
	return ""
}

// decodeResponse parses a 2xx body.
func decodeResponse(statusCode int, body []byte) (*transcription.Response, error) {
	var resp transcription.Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errors.TranscriptionService(statusCode, "unparseable response body").
			WithCause(err).
			WithDetail("body", truncateBody(body))
	}
	return &resp, nil
}

func truncateBody(body []byte) string {
	const maxLen = 512
	if len(body) > maxLen {
		return string(body[:maxLen]) + "..."
	}
	return string(body)
}
