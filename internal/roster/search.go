package roster

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"acl-research/internal/db"
	"acl-research/lib/textutil"

	"github.com/antzucaro/matchr"
	"go.opentelemetry.io/otel/attribute"
)

var ErrEmptyName = errors.New("empty player name")

const DefaultMinSimilarity = 0.9

type SearchOptions struct {
	// fall back to Jaro-Winkler similarity when the sql searches fail
	Fuzzy bool
	// defaults to DefaultMinSimilarity
	MinSimilarity float64
}

func unique(players []db.Player, err error) (db.Player, bool, error) {
	if err != nil {
		return db.Player{}, false, err
	}
	if len(players) != 1 {
		return db.Player{}, false, nil
	}
	return players[0], true, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer("%", "", "_", "").Replace(s)
}

// Search resolves a name from a spreadsheet to a stored player. In order:
//  1. an exact name match
//  2. a unique match on the first name
//  3. a unique match on the first name followed by the last initial
//  4. if enabled, the unique most similar name above a threshold
//
// ErrPlayerNotFound is returned if every stage is empty or ambiguous.
func Search(ctx context.Context, qry *db.Queries, name string, opts SearchOptions) (db.Player, error) {
	ctx, span := tracer.Start(ctx, "Search")
	defer span.End()
	span.SetAttributes(attribute.String("name", name))

	name = strings.TrimSpace(name)
	if name == "" {
		return db.Player{}, ErrEmptyName
	}

	player, ok, err := unique(qry.ListPlayersByName(ctx, name))
	if err != nil || ok {
		return player, err
	}

	first, lastInitial := textutil.NameParts(name)
	player, ok, err = unique(qry.ListPlayersNameLike(ctx, "%"+escapeLike(first)+"%"))
	if err != nil || ok {
		return player, err
	}

	if lastInitial != "" {
		pattern := fmt.Sprintf("%%%s %s%%", escapeLike(first), escapeLike(lastInitial))
		player, ok, err = unique(qry.ListPlayersNameLike(ctx, pattern))
		if err != nil || ok {
			return player, err
		}
	}

	if opts.Fuzzy {
		player, ok, err = fuzzySearch(ctx, qry, name, opts.MinSimilarity)
		if err != nil || ok {
			return player, err
		}
	}

	return db.Player{}, fmt.Errorf("%w: %s", ErrPlayerNotFound, name)
}

func fuzzySearch(ctx context.Context, qry *db.Queries, name string, minSimilarity float64) (db.Player, bool, error) {
	if minSimilarity <= 0 {
		minSimilarity = DefaultMinSimilarity
	}
	players, err := qry.ListPlayers(ctx)
	if err != nil {
		return db.Player{}, false, err
	}

	target := textutil.NormalizeName(name)
	var best db.Player
	bestSimilarity := 0.0
	ties := 0
	for _, p := range players {
		similarity := matchr.JaroWinkler(target, textutil.NormalizeName(p.Name), false)
		switch {
		case similarity > bestSimilarity:
			best = p
			bestSimilarity = similarity
			ties = 1
		case similarity == bestSimilarity:
			ties++
		}
	}

	if bestSimilarity < minSimilarity || ties != 1 {
		return db.Player{}, false, nil
	}
	slog.DebugContext(ctx, "fuzzy matched player", "name", name, "match", best.Name, "similarity", bestSimilarity)
	return best, true, nil
}
