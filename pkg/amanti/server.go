package amanti

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/NethermindEth/amanti/pkg/amanti/card"
	"github.com/NethermindEth/amanti/pkg/amanti/note"
	"github.com/NethermindEth/amanti/pkg/amanti/session"
	"github.com/NethermindEth/amanti/pkg/amanti/setup"
)

type Server struct {
	store     *session.Store
	pool      pond.ResultPool[string]
	apiRouter *gin.Engine

	apiIpPort          string
	corsAllowedOrigins []string
	secureCookies      bool
}

type ServerConfig struct {
	NoteClient session.NoteClient
	Renderer   session.CardRenderer

	GenerationWorkers  int
	SessionCacheSize   int
	SessionTtl         time.Duration
	ApiIpPort          string
	CorsAllowedOrigins []string
	SecureCookies      bool
}

const (
	defaultGenerationWorkers = 16
	shutdownTimeout          = 10 * time.Second
)

func NewServer(ctx context.Context, config *ServerConfig) (*Server, error) {
	if config == nil {
		return nil, errors.New("config is nil")
	}

	workers := config.GenerationWorkers
	if workers <= 0 {
		workers = defaultGenerationWorkers
	}
	pool := pond.NewResultPool[string](workers, pond.WithContext(ctx))

	store, err := session.NewStore(&session.StoreConfig{
		Client:    config.NoteClient,
		Renderer:  config.Renderer,
		Pool:      pool,
		CacheSize: config.SessionCacheSize,
		TTL:       config.SessionTtl,
	})
	if err != nil {
		pool.StopAndWait()
		return nil, fmt.Errorf("failed to create session store: %w", err)
	}

	server := &Server{
		store:     store,
		pool:      pool,
		apiRouter: nil,

		apiIpPort:          config.ApiIpPort,
		corsAllowedOrigins: config.CorsAllowedOrigins,
		secureCookies:      config.SecureCookies,
	}

	server.apiRouter = server.generateRouter()

	return server, nil
}

func NewServerConfigFromSetupResult(setupResult *setup.SetupResult) (*ServerConfig, error) {
	if setupResult == nil {
		return nil, errors.New("setup result is nil")
	}

	renderer, err := card.NewRenderer(card.DefaultScale)
	if err != nil {
		return nil, fmt.Errorf("failed to create card renderer: %w", err)
	}

	generator := note.NewOpenAiGenerator(setupResult.GeminiApiKey, setupResult.GeminiModel, setupResult.GeminiBaseUrl)

	return &ServerConfig{
		NoteClient: note.NewClient(generator, setupResult.PromptVariant),
		Renderer:   renderer,

		GenerationWorkers:  setupResult.GenerationWorkers,
		SessionCacheSize:   setupResult.SessionCacheSize,
		SessionTtl:         setupResult.SessionTtl,
		ApiIpPort:          setupResult.ApiIpPort,
		CorsAllowedOrigins: setupResult.CorsAllowedOrigins,
		SecureCookies:      setupResult.SecureCookies,
	}, nil
}

// Start serves until ctx is cancelled, then shuts the listener down and waits
// for in-flight generations.
func (s *Server) Start(ctx context.Context) error {
	defer s.pool.StopAndWait()

	if s.apiIpPort == "" {
		slog.Info("api ip port is empty, skipping server")
		<-ctx.Done()
		return ctx.Err()
	}

	server := &http.Server{
		Addr:    s.apiIpPort,
		Handler: s.apiRouter,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting server", "port", s.apiIpPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "error", err)
			return err
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	return ctx.Err()
}

func (s *Server) GetRouter() *gin.Engine {
	return s.apiRouter
}

func (s *Server) Sessions() *session.Store {
	return s.store
}
