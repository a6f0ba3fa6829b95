package embedhandler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"shoprec-server/internal/infrastructure/embedscript"
	"shoprec-server/internal/infrastructure/metrics"
	"shoprec-server/internal/interfaces/httpserver/responses"
)

// EmbedHandler serves the widget loader script.
type EmbedHandler struct {
	generator *embedscript.Generator
	log       zerolog.Logger
}

// NewEmbedHandler creates a new embed script handler
func NewEmbedHandler(generator *embedscript.Generator, log zerolog.Logger) *EmbedHandler {
	return &EmbedHandler{
		generator: generator,
		log:       log.With().Str("handler", "embed").Logger(),
	}
}

// Script handles GET /widget.js.
func (h *EmbedHandler) Script(c *gin.Context) {
	script, err := h.generator.Script()
	if err != nil {
		h.log.Error().Err(err).Msg("embed script render failed")
		c.JSON(http.StatusInternalServerError, responses.NewError("embed script unavailable"))
		return
	}

	metrics.EmbedScriptRequestsTotal.Inc()
	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, "application/javascript", script)
}
