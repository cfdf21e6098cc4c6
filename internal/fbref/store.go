package fbref

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"acl-research/internal/db"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
)

var (
	ErrNoLink  = errors.New("player has no fbref link or id")
	ErrNoStats = errors.New("player has no fbref stats")
)

var meter = otel.Meter("acl.internal.fbref")
var fetchCounter, _ = meter.Int64Counter("fbref_fetches")

// Store keeps one scraped stats record per player.
type Store struct {
	db      *sql.DB
	qry     *db.Queries
	fetcher Fetcher
	now     func() time.Time
}

// NewStore creates a store, `fetcher` may be nil when only cached stats
// are needed.
func NewStore(database *sql.DB, fetcher Fetcher) Store {
	return Store{
		db:      database,
		qry:     db.New(database),
		fetcher: fetcher,
		now:     time.Now,
	}
}

// Dedupe keeps the oldest stats record of a player and deletes the rest.
// It returns the kept record, or ErrNoStats if there is none.
func (s Store) Dedupe(ctx context.Context, playerID int64) (db.FbrefPlayerStat, error) {
	records, err := s.qry.ListFbrefPlayerStats(ctx, playerID)
	if err != nil {
		return db.FbrefPlayerStat{}, err
	}
	if len(records) == 0 {
		return db.FbrefPlayerStat{}, ErrNoStats
	}
	if len(records) > 1 {
		deleted, err := s.qry.DeleteFbrefPlayerStatsExcept(ctx, db.DeleteFbrefPlayerStatsExceptParams{
			PlayerID: playerID,
			KeepID:   records[0].ID,
		})
		if err != nil {
			return db.FbrefPlayerStat{}, err
		}
		slog.DebugContext(ctx, "removed duplicate fbref stats", "player_id", playerID, "deleted", deleted)
	}
	return records[0], nil
}

// FetchPlayer downloads and parses a player's stats page. If the stored
// link fails the url built from the player's fbref id is tried once.
func (s Store) FetchPlayer(ctx context.Context, player db.Player) (Tables, error) {
	ctx, span := tracer.Start(ctx, "FetchPlayer")
	defer span.End()
	span.SetAttributes(attribute.String("player", player.Name))

	if s.fetcher == nil {
		return Tables{}, fmt.Errorf("fetch %s: no fetcher configured", player.Name)
	}

	var candidates []string
	if player.FbrefLink.Valid && player.FbrefLink.String != "" {
		candidates = append(candidates, player.FbrefLink.String)
	}
	if player.UniqueID.Valid && player.UniqueID.String != "" {
		constructed := PlayerURL(player.UniqueID.String, player.Name)
		if len(candidates) == 0 || candidates[0] != constructed {
			candidates = append(candidates, constructed)
		}
	}
	if len(candidates) == 0 {
		return Tables{}, ErrNoLink
	}

	var errs []error
	for _, link := range candidates {
		page, err := s.fetcher.Fetch(ctx, link)
		if err != nil {
			fetchCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("result", "error")))
			slog.WarnContext(ctx, "failed to fetch fbref page", "player", player.Name, "url", link, "err", err)
			errs = append(errs, err)
			continue
		}
		fetchCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("result", "ok")))
		return ParsePlayerPage(ctx, page)
	}

	err := errors.Join(errs...)
	span.RecordError(err)
	span.SetStatus(codes.Error, "failed to fetch player page")
	return Tables{}, err
}

// Save stores the tables as a new stats record.
func (s Store) Save(ctx context.Context, playerID int64, tables Tables) (db.FbrefPlayerStat, error) {
	playingTime, shooting, err := Encode(tables)
	if err != nil {
		return db.FbrefPlayerStat{}, err
	}
	now := s.now().Unix()
	id, err := s.qry.CreateFbrefPlayerStats(ctx, db.CreateFbrefPlayerStatsParams{
		PlayerID:         playerID,
		CreatedAt:        now,
		UpdatedAt:        now,
		PlayingTimeStats: playingTime,
		ShootingStats:    shooting,
	})
	if err != nil {
		return db.FbrefPlayerStat{}, err
	}
	return db.FbrefPlayerStat{
		ID:               id,
		PlayerID:         playerID,
		CreatedAt:        now,
		UpdatedAt:        now,
		PlayingTimeStats: playingTime,
		ShootingStats:    shooting,
	}, nil
}

// Ensure returns the stats record of a player, scraping it first when the
// player has none and `offline` is false. `fetched` reports whether the
// network was used.
func (s Store) Ensure(ctx context.Context, player db.Player, offline bool) (record db.FbrefPlayerStat, fetched bool, err error) {
	record, err = s.Dedupe(ctx, player.ID)
	if err == nil {
		return record, false, nil
	}
	if !errors.Is(err, ErrNoStats) || offline {
		return db.FbrefPlayerStat{}, false, err
	}

	tables, err := s.FetchPlayer(ctx, player)
	if err != nil {
		return db.FbrefPlayerStat{}, true, err
	}
	record, err = s.Save(ctx, player.ID, tables)
	return record, true, err
}

type SyncSummary struct {
	Cached  int
	Fetched int
	Failed  int
}

// Sync makes sure every player has exactly one stats record. Failures are
// logged and counted, only context cancellation stops the run.
func (s Store) Sync(ctx context.Context, players []db.Player) (SyncSummary, error) {
	ctx, span := tracer.Start(ctx, "Sync")
	defer span.End()

	var summary SyncSummary
	for _, player := range players {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		_, fetched, err := s.Ensure(ctx, player, false)
		switch {
		case err != nil && ctx.Err() != nil:
			return summary, ctx.Err()
		case err != nil:
			summary.Failed++
			slog.WarnContext(ctx, "failed to sync fbref stats", "player", player.Name, "err", err)
		case fetched:
			summary.Fetched++
			slog.InfoContext(ctx, "stored fbref stats", "player", player.Name)
		default:
			summary.Cached++
		}
	}

	span.SetAttributes(
		attribute.Int("cached", summary.Cached),
		attribute.Int("fetched", summary.Fetched),
		attribute.Int("failed", summary.Failed),
	)
	return summary, nil
}
