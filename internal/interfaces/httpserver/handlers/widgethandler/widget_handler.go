package widgethandler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"shoprec-server/internal/domain/widgetfeed"
	"shoprec-server/internal/infrastructure/metrics"
	"shoprec-server/internal/interfaces/httpserver/responses"
)

// WidgetHandler serves the product feed consumed by embedded widgets.
type WidgetHandler struct {
	service *widgetfeed.Service
	log     zerolog.Logger
}

// NewWidgetHandler creates a new widget feed handler
func NewWidgetHandler(service *widgetfeed.Service, log zerolog.Logger) *WidgetHandler {
	return &WidgetHandler{
		service: service,
		log:     log.With().Str("handler", "widget").Logger(),
	}
}

// Feed handles GET /api/widget.
func (h *WidgetHandler) Feed(c *gin.Context) {
	params := widgetfeed.Params{
		Client: c.Query("client"),
		Type:   c.Query("type"),
		Style:  c.Query("style"),
	}
	// Unparsable limits fall back to the service default.
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil {
		params.Limit = limit
	}

	result, err := h.service.Query(params)
	if err != nil {
		if errors.Is(err, widgetfeed.ErrClientRequired) {
			metrics.RecordWidgetFeedRequest(params.Type, params.Style, "rejected")
			c.JSON(http.StatusBadRequest, responses.NewError("Client ID is required"))
			return
		}
		h.log.Error().Err(err).Msg("widget feed query failed")
		metrics.RecordWidgetFeedRequest(params.Type, params.Style, "error")
		c.JSON(http.StatusInternalServerError, responses.NewError("widget feed unavailable"))
		return
	}

	metrics.RecordWidgetFeedRequest(result.Type, result.Style, "ok")
	c.JSON(http.StatusOK, result)
}
