package endpoint

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/nativebridge/transcription"
	"github.com/kbukum/nativebridge/transcription/whisper"
)

// Transcriber is the speech service as seen by the HTTP layer.
type Transcriber interface {
	Load(ctx context.Context, modelPath string) (string, error)
	Transcribe(ctx context.Context, req transcription.TranscriptionRequest) (*transcription.TranscriptionResponse, error)
}

// WhisperHandler serves the /whisper routes.
type WhisperHandler struct {
	svc    Transcriber
	verify func(string) error
}

// NewWhisperHandler creates a WhisperHandler.
func NewWhisperHandler(svc Transcriber) *WhisperHandler {
	return &WhisperHandler{svc: svc, verify: whisper.VerifyModelPath}
}

type modelRequest struct {
	ModelPath string `json:"model_path"`
}

type transcribeRequest struct {
	Path     string `json:"path"`
	Lang     string `json:"lang"`
	Detailed bool   `json:"detailed"`
}

// Init loads a model and returns a confirmation string.
func (h *WhisperHandler) Init(c *gin.Context) {
	var req modelRequest
	if err := bindJSON(c, &req); err != nil {
		RespondWithError(c, err)
		return
	}
	msg, err := h.svc.Load(c.Request.Context(), req.ModelPath)
	if err != nil {
		RespondWithError(c, err)
		return
	}
	RespondOK(c, msg)
}

// Transcribe returns the transcript, or the full result with segments when
// "detailed" is set.
func (h *WhisperHandler) Transcribe(c *gin.Context) {
	var req transcribeRequest
	if err := bindJSON(c, &req); err != nil {
		RespondWithError(c, err)
		return
	}
	resp, err := h.svc.Transcribe(c.Request.Context(), transcription.TranscriptionRequest{
		AudioPath: req.Path,
		Language:  req.Lang,
	})
	if err != nil {
		RespondWithError(c, err)
		return
	}
	if req.Detailed {
		RespondOK(c, resp)
		return
	}
	RespondOK(c, resp.Text)
}

// Verify checks that a model file looks usable without loading it.
func (h *WhisperHandler) Verify(c *gin.Context) {
	var req modelRequest
	if err := bindJSON(c, &req); err != nil {
		RespondWithError(c, err)
		return
	}
	if err := h.verify(req.ModelPath); err != nil {
		RespondWithError(c, err)
		return
	}
	RespondOK(c, nil)
}
