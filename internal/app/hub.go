package app

import "kickoff-hq/internal/domain"

// ProgressReader is the read side of the progress store consumed by the hub.
type ProgressReader interface {
	IsLoaded() bool
	Get(gameID string) (domain.ProgressRecord, bool)
}

// BuildHub decorates each catalog game with its completion state. It
// refuses to render before the first load so stale defaults never show.
func BuildHub(catalog []domain.GameInfo, progress ProgressReader) (domain.HubView, error) {
	if !progress.IsLoaded() {
		return domain.HubView{}, domain.ErrProgressNotLoaded
	}

	view := domain.HubView{
		Tiles: make([]domain.HubTile, 0, len(catalog)),
		Stats: domain.HubStats{TotalGames: len(catalog)},
	}
	for _, game := range catalog {
		tile := domain.HubTile{Game: game, Action: domain.ActionPlayNow}
		rec, ok := progress.Get(game.ID)
		if ok && rec.Completed {
			score := rec.Score
			tile.Completed = true
			tile.Score = &score
			tile.Action = domain.ActionCompleted
			view.Stats.Completed++
			view.Stats.TotalScore += rec.Score
		}
		view.Tiles = append(view.Tiles, tile)
	}
	return view, nil
}

// CountPerfect fills PerfectGames using deck lengths, which the progress
// records do not carry.
func CountPerfect(view *domain.HubView, deckLengths map[string]int) {
	view.Stats.PerfectGames = 0
	for _, tile := range view.Tiles {
		if !tile.Completed || tile.Score == nil {
			continue
		}
		if n, ok := deckLengths[tile.Game.ID]; ok && n > 0 && *tile.Score == n {
			view.Stats.PerfectGames++
		}
	}
}
