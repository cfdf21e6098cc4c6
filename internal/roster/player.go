package roster

import (
	"context"
	"errors"
	"fmt"
	"time"

	"acl-research/internal/aggregate"
	"acl-research/internal/db"
	"acl-research/internal/fbref"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("acl.internal.roster")

var (
	ErrPlayerNotFound     = errors.New("player not found")
	ErrNoPreInjurySeasons = errors.New("player has no seasons before their injury")
)

// DateLayout is the storage layout of injury dates.
const DateLayout = "2006-01-02"

// Season is a player's stat line for one season along with the season's
// year, competition and team.
type Season struct {
	db.PlayerSeason
	Year int
	Comp string
	Team string
}

// Player is a player together with every season, injury and scraped stats
// record stored for them.
type Player struct {
	db.Player
	// ordered by year
	Seasons  []Season
	Injuries []db.PlayerInjury
	Stats    []db.FbrefPlayerStat
}

// Load reads a player and all of their related records.
func Load(ctx context.Context, qry *db.Queries, id int64) (Player, error) {
	ctx, span := tracer.Start(ctx, "Load")
	defer span.End()

	record, err := qry.GetPlayer(ctx, id)
	if err != nil {
		return Player{}, fmt.Errorf("load player %d: %w", id, err)
	}
	return expand(ctx, qry, record)
}

// LoadInjured loads every player with at least one injury.
func LoadInjured(ctx context.Context, qry *db.Queries) ([]Player, error) {
	records, err := qry.ListInjuredPlayers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list injured players: %w", err)
	}
	players := make([]Player, 0, len(records))
	for _, r := range records {
		p, err := expand(ctx, qry, r)
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, nil
}

func expand(ctx context.Context, qry *db.Queries, record db.Player) (Player, error) {
	rows, err := qry.ListPlayerSeasons(ctx, record.ID)
	if err != nil {
		return Player{}, fmt.Errorf("load seasons of %s: %w", record.Name, err)
	}
	injuries, err := qry.ListPlayerInjuries(ctx, record.ID)
	if err != nil {
		return Player{}, fmt.Errorf("load injuries of %s: %w", record.Name, err)
	}
	stats, err := qry.ListFbrefPlayerStats(ctx, record.ID)
	if err != nil {
		return Player{}, fmt.Errorf("load fbref stats of %s: %w", record.Name, err)
	}

	seasons := make([]Season, len(rows))
	for i, r := range rows {
		seasons[i] = Season{
			PlayerSeason: r.PlayerSeason,
			Year:         int(r.Year),
			Comp:         r.Comp,
			Team:         r.Team,
		}
	}
	return Player{
		Player:   record,
		Seasons:  seasons,
		Injuries: injuries,
		Stats:    stats,
	}, nil
}

// FirstInjuryDate is the earliest known injury date of the player.
func (p Player) FirstInjuryDate() (time.Time, bool) {
	var first time.Time
	found := false
	for _, injury := range p.Injuries {
		if !injury.DateOfInjury.Valid {
			continue
		}
		date, err := time.Parse(DateLayout, injury.DateOfInjury.String)
		if err != nil {
			continue
		}
		if !found || date.Before(first) {
			first = date
			found = true
		}
	}
	return first, found
}

func (p Player) seasonsWhere(keep func(year int) bool) []Season {
	var out []Season
	for _, s := range p.Seasons {
		if keep(s.Year) {
			out = append(out, s)
		}
	}
	return out
}

// PreInjurySeasons are the seasons before the year of the first injury.
func (p Player) PreInjurySeasons() []Season {
	date, ok := p.FirstInjuryDate()
	if !ok {
		return nil
	}
	return p.seasonsWhere(func(year int) bool { return year < date.Year() })
}

// PostInjurySeasons are the seasons from the year of the first injury on.
func (p Player) PostInjurySeasons() []Season {
	date, ok := p.FirstInjuryDate()
	if !ok {
		return nil
	}
	return p.seasonsWhere(func(year int) bool { return year >= date.Year() })
}

// LastPreInjurySeason is the most recent season before the first injury.
func (p Player) LastPreInjurySeason() (Season, error) {
	pre := p.PreInjurySeasons()
	if len(pre) == 0 {
		return Season{}, ErrNoPreInjurySeasons
	}
	return pre[len(pre)-1], nil
}

// SeasonsBefore are the player's seasons strictly before `anchor`.
func (p Player) SeasonsBefore(anchor Season) []Season {
	return p.seasonsWhere(func(year int) bool { return year < anchor.Year })
}

// SeasonsAfter are the player's seasons strictly after `anchor`.
func (p Player) SeasonsAfter(anchor Season) []Season {
	return p.seasonsWhere(func(year int) bool { return year > anchor.Year })
}

// ControlPreSeasons averages the scraped stats of the seasons before
// `anchor`. The window is empty if there are no such seasons or no stats.
func (p Player) ControlPreSeasons(anchor Season) (aggregate.Window, error) {
	return p.window(p.SeasonsBefore(anchor))
}

// ControlPostSeasons averages the scraped stats of the seasons after
// `anchor`.
func (p Player) ControlPostSeasons(anchor Season) (aggregate.Window, error) {
	return p.window(p.SeasonsAfter(anchor))
}

func (p Player) window(seasons []Season) (aggregate.Window, error) {
	if len(seasons) == 0 || len(p.Stats) == 0 {
		return aggregate.Window{}, nil
	}
	tables, err := fbref.Decode(p.Stats[0])
	if err != nil {
		return aggregate.Window{}, fmt.Errorf("stats of %s: %w", p.Name, err)
	}
	years := make([]int, len(seasons))
	for i, s := range seasons {
		years[i] = s.Year
	}
	return aggregate.CollectWindow(tables, years), nil
}
