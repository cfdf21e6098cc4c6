package globals

import (
	"os"
	"time"

	"acl-research/internal/fbref"
	"acl-research/internal/matching"
	"acl-research/lib/configutil"
	"acl-research/lib/mailer"
	"acl-research/lib/sqliteutil"
)

type FbrefConfig struct {
	// pause between two page requests, fbref bans clients that go faster
	// than 10 requests a minute
	DelayMs   int    `json:"delay_ms"`
	TimeoutMs int    `json:"timeout_ms"`
	UserAgent string `json:"user_agent"`
	// load pages in headless chromium instead of over plain http
	UseBrowser bool `json:"use_browser"`
	// existing devtools endpoint to drive instead of launching chromium
	BrowserURL string `json:"browser_url"`
	// dumps every request and response pair here, may start with <dev_state>
	DebugDir string `json:"debug_dir"`
}

func (c FbrefConfig) Delay() time.Duration {
	return time.Duration(c.DelayMs) * time.Millisecond
}

func (c FbrefConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

type MatchingConfig struct {
	TopN    int      `json:"top_n"`
	Columns []string `json:"columns"`
	// fall back to fuzzy name matching when importing spreadsheets
	FuzzyNames bool `json:"fuzzy_names"`
}

type Config struct {
	Database sqliteutil.Config `json:"database"`
	Fbref    FbrefConfig       `json:"fbref"`
	Matching MatchingConfig    `json:"matching"`
	Smtp     mailer.Config     `json:"smtp"`
}

func Defaults() Config {
	return Config{
		Database: sqliteutil.Config{
			File: "<dev_state>/soccer_acl.db",
		},
		Fbref: FbrefConfig{
			DelayMs:   int(fbref.DefaultDelay / time.Millisecond),
			TimeoutMs: 30_000,
		},
		Matching: MatchingConfig{
			TopN:    matching.DefaultTopN,
			Columns: matching.DefaultColumns,
		},
	}
}

// LoadConfig reads `path`, or when it is empty searches upwards for
// config.json5. A missing config.json5 leaves every value at its default.
func LoadConfig(path string) (Config, error) {
	var (
		cfg Config
		err error
	)
	if path != "" {
		cfg, err = configutil.ReadConfig[Config](path)
	} else {
		cfg, err = configutil.ReadRecursively[Config]("config.json5")
		if os.IsNotExist(err) {
			err = nil
		}
	}
	if err != nil {
		return Config{}, err
	}
	return configutil.WithDefaults(cfg, Defaults())
}
