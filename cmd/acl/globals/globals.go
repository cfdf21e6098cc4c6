package globals

import (
	"context"
	"database/sql"
	"log/slog"

	"acl-research/internal/db"
	"acl-research/internal/fbref"
	"acl-research/internal/matching"
	"acl-research/internal/report"
	"acl-research/internal/roster"
	"acl-research/lib/restyutil"
)

type ctxKey struct{}

type Value struct {
	Config Config
	DB     *sql.DB
	Qry    *db.Queries
	// output format of every table
	Format report.Format
}

func Set(ctx context.Context, value *Value) context.Context {
	return context.WithValue(ctx, ctxKey{}, value)
}

func Get(ctx context.Context) *Value {
	return ctx.Value(ctxKey{}).(*Value)
}

func (v *Value) SearchOptions(fuzzy bool) roster.SearchOptions {
	return roster.SearchOptions{Fuzzy: fuzzy || v.Config.Matching.FuzzyNames}
}

func (v *Value) Matcher() matching.Matcher {
	return matching.NewMatcher(v.Qry, matching.Options{
		TopN:    v.Config.Matching.TopN,
		Columns: v.Config.Matching.Columns,
	})
}

// Fetcher builds the configured page fetcher, the returned function
// releases it.
func (v *Value) Fetcher(ctx context.Context, useBrowser bool) (fbref.Fetcher, func(), error) {
	cfg := v.Config.Fbref

	if useBrowser || cfg.UseBrowser {
		browser, err := fbref.NewBrowserFetcher(ctx, fbref.BrowserOptions{
			Headless:   true,
			Timeout:    cfg.Timeout(),
			Delay:      cfg.Delay(),
			ControlURL: cfg.BrowserURL,
		})
		if err != nil {
			return nil, nil, err
		}
		return browser, func() {
			err := browser.Close()
			if err != nil {
				slog.Warn("failed to close browser", "err", err)
			}
		}, nil
	}

	opts := fbref.ClientOptions{
		UserAgent: cfg.UserAgent,
		Timeout:   cfg.Timeout(),
		Delay:     cfg.Delay(),
	}
	if cfg.DebugDir != "" {
		output, err := restyutil.NewFilesystemOutput(cfg.DebugDir)
		if err != nil {
			return nil, nil, err
		}
		opts.Output = output
	}
	client, err := fbref.NewClient(opts)
	if err != nil {
		return nil, nil, err
	}
	return client, func() {}, nil
}

// Store returns a stats store, it only reads cached stats when `offline`.
func (v *Value) Store(ctx context.Context, offline, useBrowser bool) (fbref.Store, func(), error) {
	if offline {
		return fbref.NewStore(v.DB, nil), func() {}, nil
	}
	fetcher, release, err := v.Fetcher(ctx, useBrowser)
	if err != nil {
		return fbref.Store{}, nil, err
	}
	return fbref.NewStore(v.DB, fetcher), release, nil
}
