package chathandler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"

	"shoprec-server/internal/config"
	catalogdomain "shoprec-server/internal/domain/catalog"
	"shoprec-server/internal/domain/recommendation"
	"shoprec-server/internal/infrastructure/completion"
	"shoprec-server/internal/infrastructure/metrics"
	"shoprec-server/internal/interfaces/httpserver/middlewares"
	"shoprec-server/internal/interfaces/httpserver/requests"
	"shoprec-server/internal/interfaces/httpserver/responses"
)

// CompletionClient is the upstream surface the handler needs. Satisfied by
// completion.Client.
type CompletionClient interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (*openai.ChatCompletionResponse, error)
	StreamToContext(reqCtx *gin.Context, request openai.ChatCompletionRequest, beforeDone completion.BeforeDoneCallback) (string, error)
}

// ChatHandler handles chat completion requests and derives a product
// recommendation from every assistant reply.
type ChatHandler struct {
	cfg         *config.Config
	client      CompletionClient
	prompts     *completion.PromptBuilder
	interpreter *recommendation.Interpreter
	repo        catalogdomain.Repository
	log         zerolog.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(
	cfg *config.Config,
	client CompletionClient,
	prompts *completion.PromptBuilder,
	interpreter *recommendation.Interpreter,
	repo catalogdomain.Repository,
	log zerolog.Logger,
) *ChatHandler {
	return &ChatHandler{
		cfg:         cfg,
		client:      client,
		prompts:     prompts,
		interpreter: interpreter,
		repo:        repo,
		log:         log.With().Str("handler", "chat").Logger(),
	}
}

// CreateChat handles POST /api/chat in both streaming and non-streaming
// mode.
func (h *ChatHandler) CreateChat(c *gin.Context) {
	var req requests.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.NewError(err.Error()))
		return
	}

	requestID := middlewares.RequestIDFromContext(c)
	criteria := catalogdomain.ExtractCriteria(req.LastUserContent())

	completionRequest := openai.ChatCompletionRequest{
		Model:       h.cfg.CompletionModel,
		Temperature: h.cfg.CompletionTemperature,
		MaxTokens:   h.cfg.CompletionMaxTokens,
		Messages:    h.buildMessages(req),
	}

	log := h.log.With().Str("request_id", requestID).Logger()
	log.Info().
		Int("messages", len(req.Messages)).
		Bool("stream", req.WantsStream()).
		Msg("chat request")

	if req.WantsStream() {
		h.streamChat(c, log, completionRequest, criteria)
		return
	}
	h.completeChat(c, log, completionRequest, criteria)
}

func (h *ChatHandler) streamChat(c *gin.Context, log zerolog.Logger, completionRequest openai.ChatCompletionRequest, criteria catalogdomain.Criteria) {
	start := time.Now()

	fullText, err := h.client.StreamToContext(c, completionRequest, func(reqCtx *gin.Context, fullText string) error {
		rec := h.interpreter.Interpret(fullText, criteria)
		metrics.RecordInterpreterRule(rec.Rule)

		payload, err := json.Marshal(gin.H{"recommendation": rec})
		if err != nil {
			return fmt.Errorf("encode recommendation event: %w", err)
		}
		if _, err := reqCtx.Writer.Write([]byte("data: " + string(payload) + "\n\n")); err != nil {
			return fmt.Errorf("write recommendation event: %w", err)
		}
		reqCtx.Writer.Flush()
		return nil
	})
	metrics.RecordCompletion("stream", time.Since(start).Seconds(), err)

	if err != nil {
		// Once bytes have gone out the failure policy no longer applies.
		if c.Writer.Written() {
			log.Error().Err(err).Msg("stream aborted mid-flight")
			return
		}
		log.Error().Err(err).Msg("streaming completion failed")
		h.respondFailure(c, err)
		return
	}

	log.Info().Int("response_chars", len(fullText)).Msg("stream complete")
}

func (h *ChatHandler) completeChat(c *gin.Context, log zerolog.Logger, completionRequest openai.ChatCompletionRequest, criteria catalogdomain.Criteria) {
	start := time.Now()
	resp, err := h.client.CreateChatCompletion(c.Request.Context(), completionRequest)
	metrics.RecordCompletion("blocking", time.Since(start).Seconds(), err)

	if err != nil {
		log.Error().Err(err).Msg("chat completion failed")
		h.respondFailure(c, err)
		return
	}

	content := resp.Choices[0].Message.Content
	rec := h.interpreter.Interpret(content, criteria)
	metrics.RecordInterpreterRule(rec.Rule)

	c.JSON(http.StatusOK, responses.ChatResponse{
		Message:        content,
		Recommendation: rec,
	})
}

// Analyze handles POST /api/chat/analyze: the interpreter applied to an
// already-complete assistant reply.
func (h *ChatHandler) Analyze(c *gin.Context) {
	var req requests.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.NewError(err.Error()))
		return
	}

	rec := h.interpreter.Interpret(req.Content, catalogdomain.ExtractCriteria(req.Content))
	metrics.RecordInterpreterRule(rec.Rule)
	c.JSON(http.StatusOK, rec)
}

func (h *ChatHandler) respondFailure(c *gin.Context, err error) {
	if h.cfg.ChatFailurePolicy == config.FailurePolicyError {
		c.JSON(http.StatusInternalServerError, responses.NewError("chat completion failed"))
		return
	}
	c.JSON(http.StatusOK, responses.FallbackResponse{
		Messages: []responses.ChatMessage{
			{Role: "assistant", Content: BuildFallbackMessage(h.repo.First(3))},
		},
	})
}

func (h *ChatHandler) buildMessages(req requests.ChatRequest) []openai.ChatCompletionMessage {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: h.prompts.SystemPrompt(req.Language),
	})
	for _, m := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}
	return messages
}

// BuildFallbackMessage renders the degraded-mode assistant reply from the
// given products. The first entry is presented as the best match.
func BuildFallbackMessage(products []catalogdomain.Product) string {
	var sb strings.Builder
	sb.WriteString("<h1>⚠️ System Notice</h1>\n")
	sb.WriteString("<p>I'm having temporary difficulties. Here are some recommendations:</p>\n\n")

	if len(products) == 0 {
		return sb.String()
	}

	primary := products[0]
	sb.WriteString("<h2>Best Match For Your Needs</h2>\n")
	sb.WriteString(fmt.Sprintf("<p><strong>%s</strong> - $%g</p>\n", primary.Title, primary.Price))
	sb.WriteString(fmt.Sprintf("<p>%s</p>\n\n", primary.ShortDescription))

	sb.WriteString("<h2>Alternative Options</h2>\n<ul>\n")
	for _, alt := range products[1:] {
		sb.WriteString(fmt.Sprintf("<li><strong>%s</strong> - $%g</li>\n", alt.Title, alt.Price))
	}
	sb.WriteString("</ul>")
	return sb.String()
}
