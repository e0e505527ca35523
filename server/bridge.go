package server

import (
	"context"
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/scribe/engine"
	"github.com/kbukum/scribe/errors"
	"github.com/kbukum/scribe/transcription"
	"github.com/kbukum/scribe/validation"
)

// Engine is the part of the speech engine the bridge drives.
type Engine interface {
	OnAudioFrame(ctx context.Context, samples []float64, ts float64, pad bool) (transcription.Phrase, error)
	Mimic(ctx context.Context, phrase transcription.Phrase)
	Status() engine.Status
}

// UtteranceRequest is one VAD-delimited utterance from the host shim.
type UtteranceRequest struct {
	Samples []float64 `json:"samples" validate:"required,min=1"`
	TS      float64   `json:"ts"`
	Pad     bool      `json:"pad"`
}

// PhraseResponse carries the recognized words. An empty phrase is "[]".
type PhraseResponse struct {
	Phrase []string `json:"phrase"`
}

// MimicRequest asks the engine to dispatch a phrase as if spoken.
type MimicRequest struct {
	Phrase []string `json:"phrase" validate:"required,min=1"`
}

// RegisterBridge mounts the utterance and mimic routes backed by eng.
func (s *Server) RegisterBridge(eng Engine) {
	v1 := s.engine.Group("/v1")
	v1.POST("/utterances", utterances(eng))
	v1.POST("/mimic", mimic(eng))
}

func utterances(eng Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UtteranceRequest
		if err := bind(c, &req); err != nil {
			RespondWithError(c, err)
			return
		}
		phrase, err := eng.OnAudioFrame(c.Request.Context(), req.Samples, req.TS, req.Pad)
		if err != nil {
			RespondWithError(c, err)
			return
		}
		if phrase == nil {
			phrase = transcription.Phrase{}
		}
		c.JSON(http.StatusOK, PhraseResponse{Phrase: phrase})
	}
}

func mimic(eng Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req MimicRequest
		if err := bind(c, &req); err != nil {
			RespondWithError(c, err)
			return
		}
		eng.Mimic(c.Request.Context(), transcription.Phrase(req.Phrase))
		c.Status(http.StatusAccepted)
	}
}

// bind decodes the JSON body into v and validates it.
func bind(c *gin.Context, v any) error {
	if err := c.ShouldBindJSON(v); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return errors.New(errors.ErrCodeInvalidInput, "request body too large", http.StatusRequestEntityTooLarge)
		}
		return errors.Validation("invalid JSON body").WithCause(err)
	}
	return validation.Validate(v)
}
