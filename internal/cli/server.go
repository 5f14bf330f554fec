package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"kickoff-hq/internal/app"
	"kickoff-hq/internal/config"
	"kickoff-hq/internal/decks"
	"kickoff-hq/internal/infra/memory"
	pginfra "kickoff-hq/internal/infra/postgres"
	redisinfra "kickoff-hq/internal/infra/redis"
	transport "kickoff-hq/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the game server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, log, err := bootstrap(configPath)
	if err != nil {
		return err
	}
	defer log.Sync()

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg, log); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	service, cleanup, err := buildService(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", transport.NewWSHandler(service, log).ServeWS)
	transport.NewHubHandler(service, log).Register(mux)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info("starting game server", zap.String("port", finalPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("failed to start server", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Info("shutting down server")
	case <-ctx.Done():
		log.Info("context canceled, shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// buildService picks backends from config: Postgres for decks and player
// storage when configured, Redis for caching and storage otherwise, and
// memory when neither is set.
func buildService(ctx context.Context, cfg config.Config, log *zap.Logger) (*app.GameService, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		closers = append(closers, func() { _ = redisClient.Close() })
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		var err error
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		closers = append(closers, pool.Close)
	}

	var loader memory.DeckLoader = memory.NewStaticDeckLoader(decks.All())
	if pool != nil {
		loader = memory.ChainDeckLoader{pginfra.NewDeckLoader(pool), loader}
	}

	deckTTL := config.TTLDuration(cfg.Decks.TTL, 10*time.Minute)
	var deckRepo app.DeckRepository
	if redisClient != nil {
		deckRepo = redisinfra.NewDeckRepository(redisClient, loader, deckTTL)
	} else {
		deckRepo = memory.NewDeckRepository(loader, deckTTL)
	}

	var storages app.StorageFactory
	switch {
	case pool != nil:
		storages = pginfra.Storages(pool)
	case redisClient != nil:
		storages = redisinfra.Storages(redisClient)
	default:
		log.Warn("no persistent storage configured; progress is kept in memory")
		storages = memory.NewStorages().For
	}

	var sessions app.SessionRepository
	if redisClient != nil {
		sessions = redisinfra.NewSessionStore(redisClient, config.TTLDuration(cfg.Redis.TTL, 30*time.Minute))
	} else {
		sessions = memory.NewSessionStore()
	}

	service := app.NewGameService(sessions, deckRepo, storages, decks.Catalog(), app.DefaultSoundAssets(cfg.SoundBaseURL()), log)
	return service, cleanup, nil
}
