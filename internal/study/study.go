// Package study runs the injured versus control comparison over the whole
// database.
package study

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"acl-research/internal/aggregate"
	"acl-research/internal/db"
	"acl-research/internal/diffindiff"
	"acl-research/internal/fbref"
	"acl-research/internal/matching"
	"acl-research/internal/roster"

	"github.com/mazen160/go-random"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("acl.internal.study")

// Pair is an injured player and the control matched to them.
type Pair struct {
	Injured     string
	InjuredID   int64
	AnchorYear  int
	Control     string
	ControlID   int64
	ControlYear int
	Distance    float64
}

// Skip is a player left out of the comparison and why.
type Skip struct {
	Player string
	Reason string
}

type Report struct {
	Mode    diffindiff.Mode
	Pairs   []Pair
	Skips   []Skip
	Groups  diffindiff.Groups
	Results []diffindiff.Result
}

type Options struct {
	Mode diffindiff.Mode
	// only use stats that are already stored
	Offline bool
}

type Study struct {
	db      *sql.DB
	qry     *db.Queries
	store   fbref.Store
	matcher matching.Matcher
	now     func() time.Time
}

func New(database *sql.DB, store fbref.Store, matcher matching.Matcher) Study {
	return Study{
		db:      database,
		qry:     db.New(database),
		store:   store,
		matcher: matcher,
		now:     time.Now,
	}
}

// windows holds the pre and post window of every player in a group, keyed by
// player name.
type windows struct {
	names []string
	pre   map[string]aggregate.Window
	post  map[string]aggregate.Window
}

func newWindows() *windows {
	return &windows{
		pre:  map[string]aggregate.Window{},
		post: map[string]aggregate.Window{},
	}
}

// put records a player's windows, a later player with the same name
// replaces the earlier one.
func (w *windows) put(name string, pre, post aggregate.Window) {
	if _, ok := w.pre[name]; !ok {
		w.names = append(w.names, name)
	}
	w.pre[name] = pre
	w.post[name] = post
}

func (w *windows) combine() (pre, post aggregate.GroupStats) {
	preList := make([]aggregate.Window, len(w.names))
	postList := make([]aggregate.Window, len(w.names))
	for i, name := range w.names {
		preList[i] = w.pre[name]
		postList[i] = w.post[name]
	}
	return aggregate.Combine(preList), aggregate.Combine(postList)
}

// ensureStats loads the single stats record of a player into p.Stats,
// scraping it unless `offline`.
func (s Study) ensureStats(ctx context.Context, p *roster.Player, offline bool) error {
	record, fetched, err := s.store.Ensure(ctx, p.Player, offline)
	if err != nil {
		return err
	}
	if fetched {
		slog.InfoContext(ctx, "fetched fbref stats", "player", p.Name)
	}
	p.Stats = []db.FbrefPlayerStat{record}
	return nil
}

// Run pairs every injured player with a control, collects the four stat
// windows and analyzes them. Players that can't be paired are reported as
// skips, only database errors and cancellation fail the run.
func (s Study) Run(ctx context.Context, opts Options) (Report, error) {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()

	if opts.Mode == "" {
		opts.Mode = diffindiff.ModeDiffInDiff
	}
	report := Report{Mode: opts.Mode}

	injured, err := roster.LoadInjured(ctx, s.qry)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load injured")
		return Report{}, err
	}

	injuredWindows := newWindows()
	controlWindows := newWindows()
	skip := func(name, reason string) {
		slog.InfoContext(ctx, "skipping player", "player", name, "reason", reason)
		report.Skips = append(report.Skips, Skip{Player: name, Reason: reason})
	}

	for _, player := range injured {
		if err := ctx.Err(); err != nil {
			return Report{}, err
		}

		err := s.ensureStats(ctx, &player, opts.Offline)
		if ctx.Err() != nil {
			return Report{}, ctx.Err()
		}
		if err != nil {
			skip(player.Name, fmt.Sprintf("no fbref stats: %v", err))
			continue
		}

		anchor, err := player.LastPreInjurySeason()
		if err != nil {
			skip(player.Name, "no pre-injury seasons")
			continue
		}
		pre, err := player.ControlPreSeasons(anchor)
		if err != nil {
			skip(player.Name, err.Error())
			continue
		}
		post, err := player.ControlPostSeasons(anchor)
		if err != nil {
			skip(player.Name, err.Error())
			continue
		}

		match, _, err := s.matcher.FindControl(ctx, player)
		if errors.Is(err, matching.ErrNoControlMatch) {
			skip(player.Name, "no eligible control")
			continue
		}
		if err != nil {
			return Report{}, err
		}

		control, err := roster.Load(ctx, s.qry, match.PlayerSeason.PlayerID)
		if err != nil {
			return Report{}, err
		}
		err = s.ensureStats(ctx, &control, opts.Offline)
		if ctx.Err() != nil {
			return Report{}, ctx.Err()
		}
		if err != nil {
			skip(player.Name, fmt.Sprintf("no fbref stats for control %s: %v", control.Name, err))
			continue
		}

		controlAnchor := roster.Season{
			PlayerSeason: match.PlayerSeason,
			Year:         int(match.Year),
			Comp:         match.Comp,
			Team:         match.Team,
		}
		controlPre, err := control.ControlPreSeasons(controlAnchor)
		if err != nil {
			skip(player.Name, err.Error())
			continue
		}
		controlPost, err := control.ControlPostSeasons(controlAnchor)
		if err != nil {
			skip(player.Name, err.Error())
			continue
		}

		injuredWindows.put(player.Name, pre, post)
		controlWindows.put(control.Name, controlPre, controlPost)
		report.Pairs = append(report.Pairs, Pair{
			Injured:     player.Name,
			InjuredID:   player.ID,
			AnchorYear:  anchor.Year,
			Control:     control.Name,
			ControlID:   control.ID,
			ControlYear: controlAnchor.Year,
			Distance:    match.Distance,
		})
	}

	report.Groups.InjuredPre, report.Groups.InjuredPost = injuredWindows.combine()
	report.Groups.ControlPre, report.Groups.ControlPost = controlWindows.combine()
	report.Results = diffindiff.Analyze(report.Groups, opts.Mode)

	span.SetAttributes(
		attribute.Int("pairs", len(report.Pairs)),
		attribute.Int("skips", len(report.Skips)),
	)
	return report, nil
}

// storedResult is the json layout of a comparison_runs row.
type storedResult struct {
	Pairs   []Pair              `json:"pairs"`
	Skips   []Skip              `json:"skips"`
	Results []diffindiff.Result `json:"results"`
}

// Save stores a report under a new random id and returns it.
func (s Study) Save(ctx context.Context, report Report, normalized bool) (string, error) {
	id, err := random.String(8)
	if err != nil {
		return "", err
	}
	results, err := json.Marshal(storedResult{
		Pairs:   report.Pairs,
		Skips:   report.Skips,
		Results: report.Results,
	})
	if err != nil {
		return "", err
	}

	err = s.qry.CreateComparisonRun(ctx, db.CreateComparisonRunParams{
		ID:         id,
		CreatedAt:  s.now().Unix(),
		Mode:       string(report.Mode),
		Normalized: normalized,
		Players:    int64(len(report.Pairs)),
		Results:    string(results),
	})
	if err != nil {
		return "", fmt.Errorf("save comparison run: %w", err)
	}
	return id, nil
}

// SavedRun is a stored report.
type SavedRun struct {
	ID         string
	CreatedAt  time.Time
	Mode       diffindiff.Mode
	Normalized bool
	Pairs      []Pair
	Skips      []Skip
	Results    []diffindiff.Result
}

func decodeRun(row db.ComparisonRun) (SavedRun, error) {
	var stored storedResult
	err := json.Unmarshal([]byte(row.Results), &stored)
	if err != nil {
		return SavedRun{}, fmt.Errorf("decode run %s: %w", row.ID, err)
	}
	return SavedRun{
		ID:         row.ID,
		CreatedAt:  time.Unix(row.CreatedAt, 0),
		Mode:       diffindiff.Mode(row.Mode),
		Normalized: row.Normalized,
		Pairs:      stored.Pairs,
		Skips:      stored.Skips,
		Results:    stored.Results,
	}, nil
}

// Load reads a saved run.
func (s Study) Load(ctx context.Context, id string) (SavedRun, error) {
	row, err := s.qry.GetComparisonRun(ctx, id)
	if err != nil {
		return SavedRun{}, err
	}
	return decodeRun(row)
}

// List returns the most recent saved runs, newest first.
func (s Study) List(ctx context.Context, limit int) ([]SavedRun, error) {
	rows, err := s.qry.ListComparisonRuns(ctx, int64(limit))
	if err != nil {
		return nil, err
	}
	out := make([]SavedRun, 0, len(rows))
	for _, row := range rows {
		run, err := decodeRun(row)
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, nil
}
