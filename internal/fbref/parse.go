package fbref

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"acl-research/internal/db"
	"acl-research/lib/htmlutil"
	"acl-research/lib/textutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	PlayingTimeTableID = "stats_playing_time_dom_lg"
	ShootingTableID    = "stats_shooting_dom_lg"

	// SeasonKey holds the year_id header cell of every row.
	SeasonKey = "season"
)

var ErrNoStatsTables = errors.New("no playing time or shooting table on page")

// Row maps the data-stat attribute of every cell in a table row to its text.
type Row map[string]string

func (r Row) Season() string {
	return r[SeasonKey]
}

type Tables struct {
	PlayingTime []Row
	Shooting    []Row
}

func (t Tables) Empty() bool {
	return len(t.PlayingTime) == 0 && len(t.Shooting) == 0
}

// PlayerURL builds the stats page url of a player from their fbref id.
func PlayerURL(uniqueID, name string) string {
	return fmt.Sprintf(
		"https://fbref.com/en/players/%s/%s#all_stats_standard",
		url.PathEscape(uniqueID),
		textutil.Slug(name),
	)
}

// ParsePlayerPage extracts the domestic league playing time and shooting
// tables from a player page. A missing table yields an empty list, if both
// are missing ErrNoStatsTables is returned.
func ParsePlayerPage(ctx context.Context, page []byte) (Tables, error) {
	ctx, span := tracer.Start(ctx, "ParsePlayerPage")
	defer span.End()

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(page))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse html")
		return Tables{}, err
	}

	playingTime, foundPlayingTime := findTable(doc, PlayingTimeTableID)
	shooting, foundShooting := findTable(doc, ShootingTableID)
	if !foundPlayingTime && !foundShooting {
		span.SetStatus(codes.Error, ErrNoStatsTables.Error())
		return Tables{}, ErrNoStatsTables
	}

	tables := Tables{
		PlayingTime: []Row{},
		Shooting:    []Row{},
	}
	if foundPlayingTime {
		tables.PlayingTime = parseTable(playingTime)
	}
	if foundShooting {
		tables.Shooting = parseTable(shooting)
	}
	span.SetAttributes(
		attribute.Int("playing_time_rows", len(tables.PlayingTime)),
		attribute.Int("shooting_rows", len(tables.Shooting)),
	)
	return tables, nil
}

func findTable(doc *goquery.Document, id string) (*goquery.Selection, bool) {
	sel := doc.Find("table#" + id)
	if sel.Length() > 0 {
		return sel.First(), true
	}

	// fbref ships most secondary tables inside html comments
	for _, fragment := range htmlutil.Comments(doc.Selection, id) {
		commented, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
		if err != nil {
			continue
		}
		sel := commented.Find("table#" + id)
		if sel.Length() > 0 {
			return sel.First(), true
		}
	}
	return nil, false
}

func parseTable(table *goquery.Selection) []Row {
	rows := []Row{}
	table.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		// repeated header rows in long tables
		if tr.HasClass("thead") || tr.HasClass("spacer") {
			return
		}

		row := Row{}
		tr.Find("td").Each(func(_ int, td *goquery.Selection) {
			key, ok := td.Attr("data-stat")
			if !ok {
				return
			}
			row[key] = htmlutil.SelectionText(td)
		})
		row[SeasonKey] = htmlutil.SelectionText(tr.Find(`th[data-stat="year_id"]`).First())
		rows = append(rows, row)
	})
	return rows
}

// Encode serializes both tables as json arrays of row objects.
func Encode(t Tables) (playingTime string, shooting string, err error) {
	pt := t.PlayingTime
	if pt == nil {
		pt = []Row{}
	}
	sh := t.Shooting
	if sh == nil {
		sh = []Row{}
	}

	ptJson, err := json.Marshal(pt)
	if err != nil {
		return "", "", err
	}
	shJson, err := json.Marshal(sh)
	if err != nil {
		return "", "", err
	}
	return string(ptJson), string(shJson), nil
}

// Decode reads back tables stored by Encode.
func Decode(record db.FbrefPlayerStat) (Tables, error) {
	var t Tables
	if record.PlayingTimeStats != "" {
		err := json.Unmarshal([]byte(record.PlayingTimeStats), &t.PlayingTime)
		if err != nil {
			return Tables{}, fmt.Errorf("decode playing time stats: %w", err)
		}
	}
	if record.ShootingStats != "" {
		err := json.Unmarshal([]byte(record.ShootingStats), &t.Shooting)
		if err != nil {
			return Tables{}, fmt.Errorf("decode shooting stats: %w", err)
		}
	}
	return t, nil
}
