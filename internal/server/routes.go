package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/aicockpit/aicockpit/internal/agent"
	"github.com/aicockpit/aicockpit/internal/chart"
	"github.com/aicockpit/aicockpit/internal/handler"
	"github.com/aicockpit/aicockpit/internal/insight"
	"github.com/aicockpit/aicockpit/internal/llm"
	"github.com/aicockpit/aicockpit/internal/middleware"
	"github.com/aicockpit/aicockpit/internal/security"
	"github.com/aicockpit/aicockpit/internal/service"
	"github.com/aicockpit/aicockpit/internal/sqlgen"
	"github.com/aicockpit/aicockpit/internal/training"
)

// noWarehouse stands in when BigQuery is not configured: every execute
// fails, which the pipeline degrades to an empty data set.
type noWarehouse struct{}

func (noWarehouse) Execute(context.Context, string) (*service.QueryResult, *service.QueryStats, error) {
	return nil, nil, errors.New("warehouse not configured")
}

func (s *Server) setupRoutes() (http.Handler, error) {
	cfg := s.cfg
	ctx := context.Background()

	// ─── Collaborators ──────────────────────────────────────────────────────────
	var warehouse agent.Warehouse = noWarehouse{}
	if cfg.GCPProjectID != "" {
		bqSvc, err := service.NewBigQueryService(ctx, cfg.GCPProjectID, cfg.GoogleApplicationCredentials, cfg.BigQueryLocation, cfg.QueryTimeout)
		if err != nil {
			log.Warn().Err(err).Msg("BigQuery service unavailable")
		} else {
			s.bqSvc = bqSvc
			warehouse = bqSvc
		}
	} else {
		log.Warn().Msg("GCP_PROJECT_ID not set - warehouse queries will return empty results")
	}

	var trainCtx training.ContextSource
	var builder *training.ContextBuilder
	if cfg.PostgresURL != "" {
		store, err := training.NewStore(ctx, cfg.PostgresURL)
		if err != nil {
			log.Warn().Err(err).Msg("training store unavailable")
		} else {
			s.store = store
			builder = training.NewContextBuilder(store)
			trainCtx = builder
		}
	}

	var llmClient llm.Client
	switch cfg.LLMProvider {
	case "ollama":
		llmClient = llm.NewOllamaClient(cfg.OllamaHost, cfg.OllamaModel)
	default:
		if cfg.AnthropicAPIKey == "" {
			log.Warn().Msg("ANTHROPIC_API_KEY not set - SQL generation will fail")
		}
		llmClient = llm.NewAnthropicClient(cfg.AnthropicAPIKey, cfg.AnthropicModel, cfg.AnthropicBaseURL)
	}

	log.Info().
		Bool("warehouse_enabled", s.bqSvc != nil).
		Bool("training_store_enabled", s.store != nil).
		Str("llm_provider", llmClient.Name()).
		Str("insight_mode", cfg.InsightMode).
		Bool("auth_enabled", cfg.EnableAuth && len(cfg.APIKeys) > 0).
		Bool("audit_logging", cfg.EnableAuditLogging).
		Msg("service configuration")

	if cfg.EnableAuth && len(cfg.APIKeys) == 0 {
		log.Warn().Msg("WARNING: auth enabled but no API keys configured - all API requests will be rejected")
	}

	// ─── Pipeline ───────────────────────────────────────────────────────────────
	audit := security.NewAuditLogger(cfg.EnableAuditLogging)
	generator := sqlgen.NewGenerator(llmClient, trainCtx)
	chartBuilder := chart.NewBuilder(llmClient)
	insightSynth := insight.NewSynthesizer(cfg.InsightMode, llmClient)

	pipeline := agent.NewPipeline(generator, warehouse, chartBuilder, insightSynth, audit, cfg.EnrichmentTimeout)

	// ─── Handlers ───────────────────────────────────────────────────────────────
	healthH := handler.NewHealthHandler(s.bqSvc, s.store)
	chatH := handler.NewChatHandler(pipeline)

	var trainH *handler.TrainHandler
	if s.store != nil && builder != nil {
		trainH = handler.NewTrainHandler(s.store, builder, audit)
	}

	// ─── Router ─────────────────────────────────────────────────────────────────
	r := chi.NewRouter()

	r.Use(middleware.Recovery)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.CORSOrigins)))
	r.Use(chiMiddleware.RealIP)

	r.Get("/health", healthH.Health)
	r.Get("/", healthH.Health)

	apiMiddleware := []func(http.Handler) http.Handler{
		middleware.RateLimit(cfg.RateLimitPerMinute),
	}
	if cfg.EnableAuth && len(cfg.APIKeys) > 0 {
		apiMiddleware = append(apiMiddleware, middleware.Auth(cfg.APIKeys, cfg.APIKeyHeader))
	}

	r.Group(func(r chi.Router) {
		for _, m := range apiMiddleware {
			r.Use(m)
		}

		r.Route(cfg.APIPrefix, func(r chi.Router) {
			r.Post("/chat", chatH.Ask)

			if trainH != nil {
				r.Post("/train", trainH.Train)
				r.Get("/training_data", trainH.List)
			}
		})
	})

	return r, nil
}
