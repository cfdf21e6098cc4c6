// Package prepost compares each injured player's own averages before and
// after a given season, straight from their fbref pages.
package prepost

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"acl-research/internal/aggregate"
	"acl-research/internal/fbref"
	"acl-research/lib/csvutil"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("acl.internal.prepost")

// goalkeepers have a different stats page layout
const keeperSuffix = "all_stats_keeper"

// Entry is one row of the input spreadsheet.
type Entry struct {
	Player       string
	StatsLink    string
	DateOfInjury string
	YearPrior    int
	YearAfter    int
}

// Averages holds the per table means of one window.
type Averages struct {
	PlayingTime map[string]float64 `json:"playing_time"`
	Shooting    map[string]float64 `json:"shooting"`
}

// Flatten merges both tables into one map, shooting wins on conflicts.
func (a Averages) Flatten() map[string]float64 {
	out := make(map[string]float64, len(a.PlayingTime)+len(a.Shooting))
	for k, v := range a.PlayingTime {
		out[k] = v
	}
	for k, v := range a.Shooting {
		out[k] = v
	}
	return out
}

type PlayerResult struct {
	Player string   `json:"player"`
	Pre    Averages `json:"pre"`
	Post   Averages `json:"post"`
}

// ReadEntries parses the input csv. Rows without a link, with a goalkeeper
// link or without both years are skipped.
func ReadEntries(r io.Reader) ([]Entry, error) {
	records, err := csvutil.Read(r, "Player", "Stats Link", "Year Prior?", "Year After?")
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for _, row := range records {
		name := row.Get("Player")
		link := row.Get("Stats Link")
		if link == "" || strings.HasSuffix(link, keeperSuffix) {
			continue
		}
		prior, errPrior := parseYear(row.Get("Year Prior?"))
		after, errAfter := parseYear(row.Get("Year After?"))
		if errPrior != nil || errAfter != nil {
			slog.Info("skipping player without year prior or after", "player", name)
			continue
		}
		entries = append(entries, Entry{
			Player:       name,
			StatsLink:    link,
			DateOfInjury: row.Get("Date of Injury"),
			YearPrior:    prior,
			YearAfter:    after,
		})
	}
	return entries, nil
}

// spreadsheets export whole numbers as "2019.0"
func parseYear(s string) (int, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

// seasonYear is the leading year of a season such as "2019" or "2019-2020".
func seasonYear(season string) (int, bool) {
	season = strings.TrimSpace(season)
	if len(season) < 4 {
		return 0, false
	}
	year, err := strconv.Atoi(season[:4])
	if err != nil {
		return 0, false
	}
	return year, true
}

// Split divides the rows of a table at `yearPrior`: rows of that season and
// earlier are pre, later rows are post. Rows without a year are dropped.
func Split(rows []fbref.Row, yearPrior int) (pre []fbref.Row, post []fbref.Row) {
	for _, row := range rows {
		year, ok := seasonYear(row.Season())
		if !ok {
			continue
		}
		if year <= yearPrior {
			pre = append(pre, row)
		} else {
			post = append(post, row)
		}
	}
	return pre, post
}

// Mean averages every stat over the rows where it parses as a number.
func Mean(rows []fbref.Row) map[string]float64 {
	return aggregate.MeanValues(rows)
}

// Compute splits a player's tables and averages both windows.
func Compute(player string, tables fbref.Tables, yearPrior int) PlayerResult {
	prePT, postPT := Split(tables.PlayingTime, yearPrior)
	preSh, postSh := Split(tables.Shooting, yearPrior)
	return PlayerResult{
		Player: player,
		Pre:    Averages{PlayingTime: Mean(prePT), Shooting: Mean(preSh)},
		Post:   Averages{PlayingTime: Mean(postPT), Shooting: Mean(postSh)},
	}
}

// Load reads a progress file. It reports false if the file is missing or
// empty.
func Load(path string) ([]PlayerResult, bool, error) {
	buf, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) || (err == nil && len(strings.TrimSpace(string(buf))) == 0) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var results []PlayerResult
	err = json.Unmarshal(buf, &results)
	if err != nil {
		return nil, false, fmt.Errorf("decode %s: %w", path, err)
	}
	return results, true, nil
}

func save(path string, results []PlayerResult) error {
	if results == nil {
		results = []PlayerResult{}
	}
	buf, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	err = os.WriteFile(path, buf, 0644)
	if err != nil {
		return err
	}
	slog.Info("progress saved", "path", path, "players", len(results))
	return nil
}

type Options struct {
	// where progress is written, an existing non-empty file is reused as is
	OutputPath string
	Fetcher    fbref.Fetcher
}

// Run fetches and averages every entry, saving progress after each failure
// and at the end. `reused` reports that OutputPath already held results and
// nothing was fetched.
func Run(ctx context.Context, entries []Entry, opts Options) (results []PlayerResult, reused bool, err error) {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()

	results, reused, err = Load(opts.OutputPath)
	if err != nil || reused {
		return results, reused, err
	}

	results = []PlayerResult{}
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return results, false, err
		}

		slog.InfoContext(ctx, "fetching player", "player", entry.Player, "url", entry.StatsLink)
		tables, err := fetch(ctx, opts.Fetcher, entry.StatsLink)
		if err != nil {
			slog.WarnContext(ctx, "failed to fetch player", "player", entry.Player, "err", err)
			if saveErr := save(opts.OutputPath, results); saveErr != nil {
				return results, false, saveErr
			}
			continue
		}
		results = append(results, Compute(entry.Player, tables, entry.YearPrior))
	}

	span.SetAttributes(attribute.Int("players", len(results)))
	return results, false, save(opts.OutputPath, results)
}

func fetch(ctx context.Context, fetcher fbref.Fetcher, url string) (fbref.Tables, error) {
	page, err := fetcher.Fetch(ctx, url)
	if err != nil {
		return fbref.Tables{}, err
	}
	return fbref.ParsePlayerPage(ctx, page)
}
