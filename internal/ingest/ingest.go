// Package ingest loads the research spreadsheets into the database.
package ingest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"acl-research/internal/db"
	"acl-research/internal/roster"
	"acl-research/lib/csvutil"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("acl.internal.ingest")

const (
	activityTypePrefix = "Activity Type"
	mechanismPrefix    = "Mechanism"
)

// Summary counts what an import did. Unmatched holds the spreadsheet names
// that could not be resolved to a stored player.
type Summary struct {
	Rows      int
	Imported  int
	Skipped   int
	Unmatched []string
}

type Importer struct {
	makeTx db.MakeTx
	search roster.SearchOptions
}

func NewImporter(database *sql.DB, search roster.SearchOptions) Importer {
	return Importer{
		makeTx: db.NewMakeTx(database),
		search: search,
	}
}

func (i Importer) inTx(ctx context.Context, fn func(txqry *db.Queries) error) error {
	txqry, discard, commit, err := i.makeTx(ctx)
	if err != nil {
		return err
	}
	defer discard()

	err = fn(txqry)
	if err != nil {
		return err
	}
	return commit()
}

func getOrCreatePlayer(ctx context.Context, qry *db.Queries, name, nation, uniqueID string) (db.Player, error) {
	var (
		player db.Player
		err    error
	)
	if uniqueID != "" {
		player, err = qry.GetPlayerByUniqueID(ctx, uniqueID)
	} else {
		player, err = qry.GetPlayerWithoutUniqueID(ctx, name)
	}
	if err == nil {
		return player, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return db.Player{}, err
	}
	return qry.CreatePlayer(ctx, db.CreatePlayerParams{
		Name:     name,
		Nation:   nullString(nation),
		UniqueID: nullString(uniqueID),
	})
}

func getOrCreateSeason(ctx context.Context, qry *db.Queries, year int64, team, comp string) (int64, error) {
	err := qry.CreateSeason(ctx, db.CreateSeasonParams{Year: year, Team: team, Comp: comp})
	if err != nil {
		return 0, err
	}
	return qry.GetSeasonID(ctx, db.GetSeasonIDParams{Year: year, Team: team, Comp: comp})
}

// ImportSeasons loads a per season stats export. Rows without a numeric
// season are skipped, any database error rolls back the whole import.
func (i Importer) ImportSeasons(ctx context.Context, r io.Reader) (Summary, error) {
	ctx, span := tracer.Start(ctx, "ImportSeasons")
	defer span.End()

	records, err := csvutil.Read(r, "Player", "Season")
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{Rows: len(records)}
	err = i.inTx(ctx, func(txqry *db.Queries) error {
		for _, row := range records {
			name := row.Get("Player")
			year, err := strconv.ParseInt(row.Get("Season"), 10, 64)
			if name == "" || err != nil {
				slog.WarnContext(ctx, "skipping season row", "line", row.Line, "player", name, "season", row.Get("Season"))
				summary.Skipped++
				continue
			}

			uniqueID := row.Get("-9999")
			player, err := getOrCreatePlayer(ctx, txqry, name, row.Get("Nation"), uniqueID)
			if err != nil {
				return fmt.Errorf("line %d: player %s: %w", row.Line, name, err)
			}
			seasonID, err := getOrCreateSeason(ctx, txqry, year, row.Get("Team"), row.Get("Comp"))
			if err != nil {
				return fmt.Errorf("line %d: season %d: %w", row.Line, year, err)
			}

			_, err = txqry.CreatePlayerSeason(ctx, db.CreatePlayerSeasonParams{
				PlayerID:   player.ID,
				SeasonID:   seasonID,
				Age:        nullInt(row.Get("Age")),
				Gls:        nullInt(row.Get("Gls")),
				Mp:         nullInt(row.Get("MP")),
				Min:        nullInt(row.Get("Min")),
				N90s:       nullFloat(row.Get("90s")),
				Starts:     nullInt(row.Get("Starts")),
				Subs:       nullInt(row.Get("Subs")),
				Unsub:      nullInt(row.Get("unSub")),
				Ast:        nullInt(row.Get("Ast")),
				GA:         nullInt(row.Get("G+A")),
				GPk:        nullInt(row.Get("G-PK")),
				Pk:         nullInt(row.Get("PK")),
				PkAtt:      nullInt(row.Get("PKatt")),
				PkM:        nullInt(row.Get("PKm")),
				Pos:        nullString(row.Get("Pos")),
				PlayerCode: nullString(uniqueID),
			})
			if err != nil {
				return fmt.Errorf("line %d: player season: %w", row.Line, err)
			}
			summary.Imported++
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "import seasons")
		return Summary{}, err
	}

	span.SetAttributes(attribute.Int("imported", summary.Imported))
	return summary, nil
}

// storedDate converts a spreadsheet date into the storage layout.
func storedDate(s string) sql.NullString {
	date, ok := roster.ParseDate(s)
	if !ok {
		return sql.NullString{}
	}
	return sql.NullString{String: date.Format(roster.DateLayout), Valid: true}
}

func intOrZero(ctx context.Context, row csvutil.Record, column, value string) int64 {
	if value == "" {
		return 0
	}
	v := nullInt(value)
	if !v.Valid {
		slog.WarnContext(ctx, "invalid integer", "line", row.Line, "column", column, "value", value)
		return 0
	}
	return v.Int64
}

// resolve finds the player named in a row, reporting false for unknown or
// ambiguous names.
func (i Importer) resolve(ctx context.Context, qry *db.Queries, name string) (db.Player, bool, error) {
	player, err := roster.Search(ctx, qry, name, i.search)
	if errors.Is(err, roster.ErrPlayerNotFound) || errors.Is(err, roster.ErrEmptyName) {
		slog.InfoContext(ctx, "no player matched, skipping", "name", name)
		return db.Player{}, false, nil
	}
	if err != nil {
		return db.Player{}, false, err
	}
	return player, true, nil
}

// ImportInjuries loads the injury spreadsheet, attaching every row to the
// player it names.
func (i Importer) ImportInjuries(ctx context.Context, r io.Reader) (Summary, error) {
	ctx, span := tracer.Start(ctx, "ImportInjuries")
	defer span.End()

	records, err := csvutil.Read(r, "Player", "Date of Injury")
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{Rows: len(records)}
	err = i.inTx(ctx, func(txqry *db.Queries) error {
		for _, row := range records {
			name := row.Get("Player")
			player, ok, err := i.resolve(ctx, txqry, name)
			if err != nil {
				return fmt.Errorf("line %d: %w", row.Line, err)
			}
			if !ok {
				summary.Skipped++
				summary.Unmatched = append(summary.Unmatched, name)
				continue
			}

			if link := row.Get("Link"); link != "" {
				_, err = txqry.UpdatePlayerLink(ctx, db.UpdatePlayerLinkParams{
					ID:        player.ID,
					FbrefLink: nullString(link),
				})
				if err != nil {
					return fmt.Errorf("line %d: update link: %w", row.Line, err)
				}
			}

			_, err = txqry.CreatePlayerInjury(ctx, db.CreatePlayerInjuryParams{
				PlayerID:           player.ID,
				DateOfInjury:       storedDate(row.Get("Date of Injury")),
				Venue:              nullString(row.Get("Venue")),
				InjurySurface:      nullString(row.Get("Injury Surface")),
				HomeInjurySurface:  nullString(row.Get("Home = Injury Surface?")),
				HomeFacility:       nullString(row.Get("Home Facility?")),
				GameInInjurySeason: nullString(row.Get("Game in Injury Season")),
				Position:           nullString(row.Get("Position")),
				Injury:             nullString(row.Get("Injury")),
				Laterality:         nullString(row.Get("Laterality")),
				Footedness:         nullString(row.Get("Footedness")),
				ConcomitantInjury:  nullString(row.Get("Concomitant injury")),
				ActivityType:       intOrZero(ctx, row, activityTypePrefix, row.GetPrefix(activityTypePrefix)),
				Mechanism:          intOrZero(ctx, row, mechanismPrefix, row.GetPrefix(mechanismPrefix)),
				MinutesPlayed:      intOrZero(ctx, row, "Minutes Played", row.Get("Minutes Played")),
				ActiveNwsl:         nullString(row.Get("Active NWSL player?")),
				Notes:              nullString(row.Get("Notes")),
				ReturnDate:         storedDate(row.Get("Return Date")),
			})
			if err != nil {
				return fmt.Errorf("line %d: create injury: %w", row.Line, err)
			}
			summary.Imported++
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "import injuries")
		return Summary{}, err
	}
	return summary, nil
}

// NameLink pairs a spreadsheet player name with their fbref page.
type NameLink struct {
	Name string
	Link string
}

// AddLinks sets the fbref link of every named player. Rows with an empty
// link are skipped.
func (i Importer) AddLinks(ctx context.Context, links []NameLink) (Summary, error) {
	ctx, span := tracer.Start(ctx, "AddLinks")
	defer span.End()

	summary := Summary{Rows: len(links)}
	err := i.inTx(ctx, func(txqry *db.Queries) error {
		for _, l := range links {
			player, ok, err := i.resolve(ctx, txqry, l.Name)
			if err != nil {
				return fmt.Errorf("%s: %w", l.Name, err)
			}
			if !ok {
				summary.Skipped++
				summary.Unmatched = append(summary.Unmatched, l.Name)
				continue
			}
			if l.Link == "" {
				summary.Skipped++
				continue
			}
			_, err = txqry.UpdatePlayerLink(ctx, db.UpdatePlayerLinkParams{
				ID:        player.ID,
				FbrefLink: nullString(l.Link),
			})
			if err != nil {
				return fmt.Errorf("%s: update link: %w", l.Name, err)
			}
			slog.DebugContext(ctx, "updated link", "name", l.Name, "player", player.Name, "link", l.Link)
			summary.Imported++
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "add links")
		return Summary{}, err
	}
	return summary, nil
}

// ImportLinks reads a `Player, Stats Link` csv and applies it with AddLinks.
func (i Importer) ImportLinks(ctx context.Context, r io.Reader) (Summary, error) {
	records, err := csvutil.Read(r, "Player", "Stats Link")
	if err != nil {
		return Summary{}, err
	}
	links := make([]NameLink, len(records))
	for idx, row := range records {
		links[idx] = NameLink{Name: row.Get("Player"), Link: row.Get("Stats Link")}
	}
	return i.AddLinks(ctx, links)
}

// ClearInjuries deletes every stored injury.
func (i Importer) ClearInjuries(ctx context.Context) (int64, error) {
	var deleted int64
	err := i.inTx(ctx, func(txqry *db.Queries) error {
		var err error
		deleted, err = txqry.DeleteAllPlayerInjuries(ctx)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("delete injuries: %w", err)
	}
	slog.InfoContext(ctx, "deleted all player injuries", "count", deleted)
	return deleted, nil
}
