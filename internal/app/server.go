package app

import (
	"context"
	"fmt"

	"github.com/despensa-hq/despensa/internal/config"
	"github.com/despensa-hq/despensa/internal/llm"
	"github.com/despensa-hq/despensa/internal/logger"
	"github.com/despensa-hq/despensa/internal/prompt"
	"github.com/despensa-hq/despensa/internal/server"
	"github.com/despensa-hq/despensa/internal/storage"
)

// ServerRuntime wires the generator, cache, and HTTP server together and
// manages their lifecycles.
type ServerRuntime struct {
	cfg       *config.Config
	srv       *server.Server
	generator llm.TextGenerator
	store     storage.Store
	log       logger.Logger
}

// NewServerRuntime builds the server runtime from config.
func NewServerRuntime(ctx context.Context, cfg *config.Config, log logger.Logger) (*ServerRuntime, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	tpl, err := prompt.Load(cfg.PromptFile)
	if err != nil {
		return nil, fmt.Errorf("load prompt template: %w", err)
	}

	storeOpts := storage.Options{
		ListTTL:         cfg.CacheTTL,
		CleanupInterval: cfg.CacheCleanupInterval,
	}
	store, err := storage.NewStore(cfg.StorageType, cfg.BBoltPath, storeOpts)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	log.InfoObj("storage initialized", "storage_config", map[string]any{
		"type":                     cfg.StorageType,
		"path":                     cfg.BBoltPath,
		"list_ttl_seconds":         int(cfg.CacheTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.CacheCleanupInterval.Seconds()),
	})

	generator, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("init generator: %w", err)
	}

	return &ServerRuntime{
		cfg:       cfg,
		srv:       server.New(generator, store, tpl, log),
		generator: generator,
		store:     store,
		log:       log,
	}, nil
}

// Run serves until the context is cancelled.
func (r *ServerRuntime) Run(ctx context.Context) error {
	if r == nil || r.srv == nil {
		return fmt.Errorf("server runtime is not initialized")
	}
	defer r.close()

	r.log.InfoObj("server starting", "server_state", map[string]any{
		"listen_addr": r.cfg.ListenAddr,
		"model":       r.cfg.GeminiModel,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- r.srv.Listen(r.cfg.ListenAddr)
	}()

	select {
	case <-ctx.Done():
		r.log.InfoObj("server shutting down", "reason", ctx.Err())
		if err := r.srv.Shutdown(); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server listen: %w", err)
		}
		return nil
	}
}

// close releases the cache and generator, logging any errors encountered.
func (r *ServerRuntime) close() {
	if r == nil {
		return
	}
	if r.store != nil {
		if err := r.store.Close(); err != nil {
			r.log.ErrorObj("storage close failed", "error", err)
		}
	}
	if r.generator != nil {
		if err := r.generator.Close(); err != nil {
			r.log.ErrorObj("generator close failed", "error", err)
		}
	}
}
