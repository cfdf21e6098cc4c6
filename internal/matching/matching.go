// Package matching pairs injured players with uninjured control players of a
// similar season.
package matching

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"acl-research/internal/db"
	"acl-research/internal/roster"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gonum.org/v1/gonum/floats"
)

var tracer = otel.Tracer("acl.internal.matching")

var ErrNoControlMatch = errors.New("no eligible control player")

const DefaultTopN = 5

// DefaultColumns are the player_seasons columns a season is compared on.
var DefaultColumns = []string{"gls", "mp", "min", "n90s", "starts", "subs", "ast", "g_a", "g_pk"}

func nullInt(v sql.NullInt64) float64 {
	if !v.Valid {
		return 0
	}
	return float64(v.Int64)
}

func columnValue(s db.PlayerSeason, column string) (float64, error) {
	switch column {
	case "gls":
		return nullInt(s.Gls), nil
	case "mp":
		return nullInt(s.Mp), nil
	case "min":
		return nullInt(s.Min), nil
	case "n90s":
		if !s.N90s.Valid {
			return 0, nil
		}
		return s.N90s.Float64, nil
	case "starts":
		return nullInt(s.Starts), nil
	case "subs":
		return nullInt(s.Subs), nil
	case "unsub":
		return nullInt(s.Unsub), nil
	case "ast":
		return nullInt(s.Ast), nil
	case "g_a":
		return nullInt(s.GA), nil
	case "g_pk":
		return nullInt(s.GPk), nil
	case "pk":
		return nullInt(s.Pk), nil
	case "pk_att":
		return nullInt(s.PkAtt), nil
	case "pk_m":
		return nullInt(s.PkM), nil
	case "age":
		return nullInt(s.Age), nil
	}
	return 0, fmt.Errorf("unknown stat column '%s'", column)
}

// Vector returns the values of `columns` for a season, nulls become 0.
func Vector(s db.PlayerSeason, columns []string) ([]float64, error) {
	out := make([]float64, len(columns))
	for i, col := range columns {
		v, err := columnValue(s, col)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

type Options struct {
	// defaults to DefaultTopN
	TopN int
	// defaults to DefaultColumns
	Columns []string
}

func (o Options) withDefaults() Options {
	if o.TopN <= 0 {
		o.TopN = DefaultTopN
	}
	if len(o.Columns) == 0 {
		o.Columns = DefaultColumns
	}
	return o
}

// Match is a candidate control season and its distance to the anchor.
type Match struct {
	db.ListCandidateSeasonsRow
	Distance float64
}

type Matcher struct {
	qry  *db.Queries
	opts Options
}

func NewMatcher(qry *db.Queries, opts Options) Matcher {
	return Matcher{qry: qry, opts: opts.withDefaults()}
}

// FindControlMatches ranks every season of other players by euclidean
// distance to `anchor` and returns the closest ones. Equal distances keep
// the order of the candidate ids.
func (m Matcher) FindControlMatches(ctx context.Context, player db.Player, anchor roster.Season) ([]Match, error) {
	ctx, span := tracer.Start(ctx, "FindControlMatches")
	defer span.End()
	span.SetAttributes(attribute.Int64("player_id", player.ID))

	target, err := Vector(anchor.PlayerSeason, m.opts.Columns)
	if err != nil {
		return nil, err
	}

	candidates, err := m.qry.ListCandidateSeasons(ctx, db.ListCandidateSeasonsParams{
		ExcludeSeasonID: anchor.ID,
		ExcludePlayerID: player.ID,
		ExcludeUniqueID: player.UniqueID.String,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list candidates")
		return nil, fmt.Errorf("list candidate seasons: %w", err)
	}

	matches := make([]Match, 0, len(candidates))
	for _, c := range candidates {
		vec, err := Vector(c.PlayerSeason, m.opts.Columns)
		if err != nil {
			return nil, err
		}
		matches = append(matches, Match{
			ListCandidateSeasonsRow: c,
			Distance:                floats.Distance(target, vec, 2),
		})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Distance != matches[j].Distance {
			return matches[i].Distance < matches[j].Distance
		}
		return matches[i].PlayerSeason.ID < matches[j].PlayerSeason.ID
	})

	if len(matches) > m.opts.TopN {
		matches = matches[:m.opts.TopN]
	}
	span.SetAttributes(attribute.Int("matches", len(matches)))
	return matches, nil
}

// EligibleControls drops candidates who were ever injured or who have no
// season after the matched one.
func (m Matcher) EligibleControls(ctx context.Context, matches []Match) ([]Match, error) {
	var out []Match
	for _, match := range matches {
		injuries, err := m.qry.CountPlayerInjuries(ctx, match.PlayerSeason.PlayerID)
		if err != nil {
			return nil, fmt.Errorf("count injuries: %w", err)
		}
		if injuries > 0 {
			continue
		}
		later, err := m.qry.HasSeasonAfter(ctx, db.HasSeasonAfterParams{
			PlayerID: match.PlayerSeason.PlayerID,
			Year:     match.Year,
		})
		if err != nil {
			return nil, fmt.Errorf("check later seasons: %w", err)
		}
		if !later {
			continue
		}
		out = append(out, match)
	}
	return out, nil
}

// FindControl picks the closest eligible control for an injured player,
// anchored on their last season before the injury.
func (m Matcher) FindControl(ctx context.Context, injured roster.Player) (Match, roster.Season, error) {
	ctx, span := tracer.Start(ctx, "FindControl")
	defer span.End()

	anchor, err := injured.LastPreInjurySeason()
	if err != nil {
		return Match{}, roster.Season{}, err
	}

	matches, err := m.FindControlMatches(ctx, injured.Player, anchor)
	if err != nil {
		return Match{}, anchor, err
	}
	eligible, err := m.EligibleControls(ctx, matches)
	if err != nil {
		return Match{}, anchor, err
	}
	if len(eligible) == 0 {
		slog.InfoContext(ctx, "no control found", "player", injured.Name)
		return Match{}, anchor, fmt.Errorf("%w: %s", ErrNoControlMatch, injured.Name)
	}

	control := eligible[0]
	slog.InfoContext(ctx, "control found",
		"player", injured.Name,
		"control", control.PlayerName,
		"distance", control.Distance,
	)
	return control, anchor, nil
}
