// Package api exposes the TrueScan HTTP endpoints.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Atharva080324/TrueScan/internal/domain"
	"github.com/Atharva080324/TrueScan/internal/logger"
	"github.com/Atharva080324/TrueScan/internal/pipeline"
)

// downloadName is the attachment filename for generated broadcasts.
const downloadName = "news-summary.mp3"

// Generator produces broadcasts. Satisfied by pipeline.Pipeline.
type Generator interface {
	Generate(ctx context.Context, req domain.GenerateRequest) (*pipeline.Result, error)
}

// ClipStore lists and resolves stored audio clips. Satisfied by tts.Store.
type ClipStore interface {
	List() ([]domain.Clip, error)
	Path(id string) (string, error)
}

// Handler holds HTTP request handlers.
type Handler struct {
	generator       Generator
	clips           ClipStore
	logger          logger.Logger
	generateTimeout time.Duration
}

// NewHandler creates a new handler instance.
func NewHandler(generator Generator, clips ClipStore, generateTimeout time.Duration, log logger.Logger) *Handler {
	if generateTimeout <= 0 {
		generateTimeout = 5 * time.Minute
	}
	return &Handler{
		generator:       generator,
		clips:           clips,
		logger:          log,
		generateTimeout: generateTimeout,
	}
}

// Root handles GET / status requests.
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"message": "TrueScan broadcast generator is running",
	})
}

// Generate handles POST /generate-news-audio requests: it runs the full
// pipeline and streams the resulting MP3 back as an attachment.
func (h *Handler) Generate(c *gin.Context) {
	var req domain.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid generate request body",
			logger.Error(err),
		)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:     "Invalid request body: " + err.Error(),
			Code:      "INVALID_REQUEST",
			Timestamp: time.Now(),
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.generateTimeout)
	defer cancel()

	result, err := h.generator.Generate(ctx, req)
	if err != nil {
		h.logger.Error("Broadcast generation failed",
			logger.Error(err),
			logger.Strings("topics", req.Topics),
			logger.String("source_type", string(req.SourceType)),
		)

		statusCode, errorCode := classifyError(err)
		c.JSON(statusCode, ErrorResponse{
			Error:     err.Error(),
			Code:      errorCode,
			Timestamp: time.Now(),
		})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+downloadName+`"`)
	c.Data(http.StatusOK, "audio/mpeg", result.Audio)
}

// ListClips handles GET /api/v1/clips requests.
func (h *Handler) ListClips(c *gin.Context) {
	clips, err := h.clips.List()
	if err != nil {
		h.logger.Error("Clip listing failed", logger.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:     err.Error(),
			Code:      "CLIP_LIST_ERROR",
			Timestamp: time.Now(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"clips": clips,
		"count": len(clips),
	})
}

// GetClip handles GET /api/v1/clips/:id requests.
func (h *Handler) GetClip(c *gin.Context) {
	id := c.Param("id")

	path, err := h.clips.Path(id)
	if err != nil {
		if errors.Is(err, domain.ErrClipNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:     "clip not found",
				Code:      "CLIP_NOT_FOUND",
				Timestamp: time.Now(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:     err.Error(),
			Code:      "CLIP_ERROR",
			Timestamp: time.Now(),
		})
		return
	}

	c.Header("Content-Type", "audio/mpeg")
	c.FileAttachment(path, id)
}

// classifyError maps pipeline errors onto HTTP status and error codes.
func classifyError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrNoTopics),
		errors.Is(err, domain.ErrTooManyTopics),
		errors.Is(err, domain.ErrInvalidSourceType):
		return http.StatusBadRequest, "VALIDATION_ERROR"
	case errors.Is(err, pipeline.ErrRedditUnavailable):
		return http.StatusServiceUnavailable, "REDDIT_UNAVAILABLE"
	case errors.Is(err, domain.ErrOverloaded):
		return http.StatusServiceUnavailable, "UPSTREAM_OVERLOADED"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "GENERATION_TIMEOUT"
	default:
		return http.StatusInternalServerError, "GENERATION_ERROR"
	}
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error     string    `json:"error"`
	Code      string    `json:"code"`
	Timestamp time.Time `json:"timestamp"`
}
