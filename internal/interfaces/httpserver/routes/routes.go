package routes

import (
	"github.com/gin-gonic/gin"

	"shoprec-server/internal/interfaces/httpserver/handlers"
)

// Provider encapsulates route registration.
type Provider struct {
	handlers *handlers.Provider
}

// NewProvider builds the route registrar.
func NewProvider(handlerProvider *handlers.Provider) *Provider {
	return &Provider{
		handlers: handlerProvider,
	}
}

// Register attaches the API and embed routes.
func (p *Provider) Register(engine *gin.Engine) {
	api := engine.Group("/api")
	api.POST("/chat", p.handlers.Chat.CreateChat)
	api.POST("/chat/analyze", p.handlers.Chat.Analyze)
	api.POST("/recommendations/rerank", p.handlers.Recommendation.Rerank)
	api.GET("/recommendations/default", p.handlers.Recommendation.Default)
	api.GET("/widget", p.handlers.Widget.Feed)

	engine.GET("/widget.js", p.handlers.Embed.Script)
}
