package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"kickoff-hq/internal/domain"
)

// DeckRow is the bun model of the decks table.
type DeckRow struct {
	bun.BaseModel `bun:"table:decks"`

	GameID    string    `bun:"game_id,pk"`
	Title     string    `bun:"title,notnull"`
	Data      string    `bun:"data,type:jsonb,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

// OpenBun opens a bun handle over the pgdriver connector.
func OpenBun(dsn string) *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	return bun.NewDB(sqldb, pgdialect.New())
}

// SeedDecks upserts decks after validating each one.
func SeedDecks(ctx context.Context, db *bun.DB, decks []domain.Deck) error {
	rows := make([]DeckRow, 0, len(decks))
	now := time.Now().UTC()
	for _, deck := range decks {
		if err := deck.Validate(); err != nil {
			return err
		}
		raw, err := json.Marshal(deck)
		if err != nil {
			return fmt.Errorf("marshal deck %s: %w", deck.GameID, err)
		}
		rows = append(rows, DeckRow{GameID: deck.GameID, Title: deck.Title, Data: string(raw), UpdatedAt: now})
	}
	if len(rows) == 0 {
		return nil
	}
	_, err := db.NewInsert().
		Model(&rows).
		On("CONFLICT (game_id) DO UPDATE").
		Set("title = EXCLUDED.title").
		Set("data = EXCLUDED.data").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("seed decks: %w", err)
	}
	return nil
}
