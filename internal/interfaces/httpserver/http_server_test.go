package httpserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoprec-server/internal/config"
	catalogdomain "shoprec-server/internal/domain/catalog"
	"shoprec-server/internal/domain/recommendation"
	"shoprec-server/internal/domain/widgetfeed"
	"shoprec-server/internal/infrastructure/completion"
	"shoprec-server/internal/infrastructure/embedscript"
	"shoprec-server/internal/interfaces/httpserver/handlers"
)

type stubCatalog struct {
	products []catalogdomain.Product
}

func (r *stubCatalog) All() []catalogdomain.Product { return r.products }

func (r *stubCatalog) ByID(id string) (catalogdomain.Product, bool) {
	for _, p := range r.products {
		if p.ID == id {
			return p, true
		}
	}
	return catalogdomain.Product{}, false
}

func (r *stubCatalog) First(n int) []catalogdomain.Product {
	if n > len(r.products) {
		n = len(r.products)
	}
	return r.products[:n]
}

type stubFeed struct{}

func (stubFeed) All() []widgetfeed.Item {
	return []widgetfeed.Item{{ID: "1", Name: "Lamp", Price: 59.99}}
}

type stubCompletion struct{}

func (stubCompletion) CreateChatCompletion(context.Context, openai.ChatCompletionRequest) (*openai.ChatCompletionResponse, error) {
	return &openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: "ok"}}},
	}, nil
}

func (stubCompletion) StreamToContext(*gin.Context, openai.ChatCompletionRequest, completion.BeforeDoneCallback) (string, error) {
	return "", nil
}

func newTestServer(t *testing.T) *HttpServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		ServiceName:            "recommend-api",
		Environment:            "test",
		ChatFailurePolicy:      config.FailurePolicyFallback,
		DefaultRecommendations: 3,
		WidgetDomain:           "http://localhost:8080",
	}

	repo := &stubCatalog{products: []catalogdomain.Product{{ID: "tv-alpha", Title: "Alpha"}}}
	prompts, err := completion.NewPromptBuilder(repo)
	require.NoError(t, err)

	provider := handlers.NewProvider(
		cfg,
		stubCompletion{},
		prompts,
		recommendation.NewInterpreter(repo, zerolog.Nop()),
		repo,
		widgetfeed.NewService(stubFeed{}, zerolog.Nop()),
		embedscript.NewGenerator(cfg.WidgetDomain),
		zerolog.Nop(),
	)
	return New(cfg, zerolog.Nop(), provider)
}

func TestCoreRoutes(t *testing.T) {
	server := newTestServer(t)

	tests := []struct {
		path string
		want int
	}{
		{path: "/", want: http.StatusOK},
		{path: "/healthz", want: http.StatusOK},
		{path: "/readyz", want: http.StatusOK},
		{path: "/metrics", want: http.StatusOK},
		{path: "/widget.js", want: http.StatusOK},
		{path: "/api/recommendations/default", want: http.StatusOK},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		server.engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
		assert.Equal(t, tt.want, rec.Code, "GET %s", tt.path)
	}
}

func TestCORSAllowsAnyOrigin(t *testing.T) {
	server := newTestServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/widget?client=acme", nil)
	req.Header.Set("Origin", "https://partner.example.com")
	server.engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestIDHeader(t *testing.T) {
	server := newTestServer(t)

	rec := httptest.NewRecorder()
	server.engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}
