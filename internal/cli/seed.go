package cli

import (
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"kickoff-hq/internal/decks"
	"kickoff-hq/internal/infra/postgres"
	redisinfra "kickoff-hq/internal/infra/redis"
)

// NewSeedCmd writes the built-in decks to Postgres and drops stale cached copies.
func NewSeedCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the built-in scenario decks into Postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, log, err := bootstrap(*configPath)
			if err != nil {
				return err
			}
			defer log.Sync()
			if cfg.Postgres.URL == "" {
				return fmt.Errorf("postgres url not configured")
			}
			if err := runMigrationsWithConfig(ctx, cfg, log); err != nil {
				return err
			}

			db := postgres.OpenBun(cfg.Postgres.URL)
			defer db.Close()
			all := decks.All()
			if err := postgres.SeedDecks(ctx, db, all); err != nil {
				return err
			}

			if cfg.Redis.Addr != "" {
				client := redis.NewClient(&redis.Options{
					Addr:     cfg.Redis.Addr,
					Password: cfg.Redis.Password,
					DB:       cfg.Redis.DB,
				})
				defer client.Close()
				cache := redisinfra.NewDeckRepository(client, nil, 0)
				for _, deck := range all {
					if err := cache.Invalidate(ctx, deck.GameID); err != nil {
						log.Warn("deck cache not invalidated", zap.String("game_id", deck.GameID), zap.Error(err))
					}
				}
			}
			log.Info("decks seeded", zap.Int("count", len(all)))
			return nil
		},
	}
}
