package handlers

import (
	"github.com/rs/zerolog"

	"shoprec-server/internal/config"
	catalogdomain "shoprec-server/internal/domain/catalog"
	"shoprec-server/internal/domain/recommendation"
	"shoprec-server/internal/domain/widgetfeed"
	"shoprec-server/internal/infrastructure/completion"
	"shoprec-server/internal/infrastructure/embedscript"
	"shoprec-server/internal/interfaces/httpserver/handlers/chathandler"
	"shoprec-server/internal/interfaces/httpserver/handlers/embedhandler"
	"shoprec-server/internal/interfaces/httpserver/handlers/recommendationhandler"
	"shoprec-server/internal/interfaces/httpserver/handlers/widgethandler"
)

// Provider wires all HTTP handlers for dependency injection.
type Provider struct {
	Chat           *chathandler.ChatHandler
	Recommendation *recommendationhandler.RecommendationHandler
	Widget         *widgethandler.WidgetHandler
	Embed          *embedhandler.EmbedHandler
}

// NewProvider constructs the handler provider with domain services.
func NewProvider(
	cfg *config.Config,
	client chathandler.CompletionClient,
	prompts *completion.PromptBuilder,
	interpreter *recommendation.Interpreter,
	catalogRepo catalogdomain.Repository,
	feedService *widgetfeed.Service,
	generator *embedscript.Generator,
	log zerolog.Logger,
) *Provider {
	return &Provider{
		Chat:           chathandler.NewChatHandler(cfg, client, prompts, interpreter, catalogRepo, log),
		Recommendation: recommendationhandler.NewRecommendationHandler(catalogRepo, cfg.DefaultRecommendations, log),
		Widget:         widgethandler.NewWidgetHandler(feedService, log),
		Embed:          embedhandler.NewEmbedHandler(generator, log),
	}
}
