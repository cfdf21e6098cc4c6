// Package dbtest builds roster fixtures for tests.
package dbtest

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"acl-research/internal/db"
	"acl-research/lib/testutil"
)

type Builder struct {
	t   testing.TB
	ctx context.Context
	DB  *sql.DB
	Qry *db.Queries
}

// New opens an in-memory database with the schema applied.
func New(t testing.TB, name string) (Builder, func()) {
	res, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     name,
		DbSchema: db.Schema,
	})
	return Builder{
		t:   t,
		ctx: context.Background(),
		DB:  res.DB,
		Qry: db.New(res.DB),
	}, cleanup
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (b Builder) Player(name, uniqueID string) db.Player {
	b.t.Helper()
	p, err := b.Qry.CreatePlayer(b.ctx, db.CreatePlayerParams{
		Name:     name,
		UniqueID: nullString(uniqueID),
	})
	if err != nil {
		b.t.Fatal(err)
	}
	return p
}

// Line is a compact season stat line, zero fields are stored as NULL.
type Line struct {
	Gls, Mp, Min, Starts, Subs, Ast, GA, GPk int64
	N90s                                     float64
}

func orNull(v int64) sql.NullInt64 {
	return sql.NullInt64{Int64: v, Valid: v != 0}
}

func (b Builder) Season(playerID int64, year int64, team string, line Line) int64 {
	b.t.Helper()
	err := b.Qry.CreateSeason(b.ctx, db.CreateSeasonParams{Year: year, Team: team, Comp: "NWSL"})
	if err != nil {
		b.t.Fatal(err)
	}
	seasonID, err := b.Qry.GetSeasonID(b.ctx, db.GetSeasonIDParams{Year: year, Team: team, Comp: "NWSL"})
	if err != nil {
		b.t.Fatal(err)
	}
	id, err := b.Qry.CreatePlayerSeason(b.ctx, db.CreatePlayerSeasonParams{
		PlayerID: playerID,
		SeasonID: seasonID,
		Gls:      orNull(line.Gls),
		Mp:       orNull(line.Mp),
		Min:      orNull(line.Min),
		N90s:     sql.NullFloat64{Float64: line.N90s, Valid: line.N90s != 0},
		Starts:   orNull(line.Starts),
		Subs:     orNull(line.Subs),
		Ast:      orNull(line.Ast),
		GA:       orNull(line.GA),
		GPk:      orNull(line.GPk),
	})
	if err != nil {
		b.t.Fatal(err)
	}
	return id
}

// Injury records an injury on `date` (YYYY-MM-DD, empty for unknown).
func (b Builder) Injury(playerID int64, date string) {
	b.t.Helper()
	_, err := b.Qry.CreatePlayerInjury(b.ctx, db.CreatePlayerInjuryParams{
		PlayerID:     playerID,
		DateOfInjury: nullString(date),
		Injury:       nullString("ACL"),
	})
	if err != nil {
		b.t.Fatal(err)
	}
}

// Stats stores scraped rows, each row must carry a "season" key.
func (b Builder) Stats(playerID int64, playingTime, shooting []map[string]string) {
	b.t.Helper()
	if playingTime == nil {
		playingTime = []map[string]string{}
	}
	if shooting == nil {
		shooting = []map[string]string{}
	}
	pt, err := json.Marshal(playingTime)
	if err != nil {
		b.t.Fatal(err)
	}
	sh, err := json.Marshal(shooting)
	if err != nil {
		b.t.Fatal(err)
	}
	_, err = b.Qry.CreateFbrefPlayerStats(b.ctx, db.CreateFbrefPlayerStatsParams{
		PlayerID:         playerID,
		PlayingTimeStats: string(pt),
		ShootingStats:    string(sh),
	})
	if err != nil {
		b.t.Fatal(err)
	}
}
