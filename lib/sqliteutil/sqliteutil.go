package sqliteutil

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	devenv "acl-research/dev/env"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

func wrapOpenDB(err error) error {
	return fmt.Errorf("open db: %w", err)
}

// OpenDB opens (creating if needed) a local sqlite database and applies
// the given schema. `schema` must be idempotent (`create ... if not exists`).
func OpenDB(schema, path string) (*sql.DB, error) {
	if path != ":memory:" {
		err := os.MkdirAll(filepath.Dir(path), 0777)
		if err != nil {
			return nil, wrapOpenDB(err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, wrapOpenDB(err)
	}

	// sqlite only allows a single writer, so pin the pool to one connection
	// (this also keeps `:memory:` databases from splitting across connections)
	db.SetMaxOpenConns(1)
	if path != ":memory:" {
		_, err = db.Exec("PRAGMA journal_mode=WAL")
		if err != nil {
			db.Close()
			return nil, wrapOpenDB(err)
		}
	}
	_, err = db.Exec("PRAGMA foreign_keys=ON")
	if err != nil {
		db.Close()
		return nil, wrapOpenDB(err)
	}

	if schema != "" {
		_, err = db.Exec(schema)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("apply schema: %w", err)
		}
	}
	return db, nil
}

// Config selects between a local sqlite file and a remote libsql database.
type Config struct {
	File      string `json:"file"`
	Url       string `json:"url"`
	AuthToken string `json:"auth_token"`
}

func (c Config) dsn() (string, error) {
	u, err := url.Parse(c.Url)
	if err != nil {
		return "", err
	}
	if c.AuthToken != "" {
		q := u.Query()
		q.Set("authToken", c.AuthToken)
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

func (c Config) Remote() bool {
	return strings.TrimSpace(c.Url) != ""
}

// OpenDB opens the configured database and applies the schema.
func (c Config) OpenDB(schema string) (*sql.DB, error) {
	if !c.Remote() {
		if c.File == "" {
			return nil, wrapOpenDB(fmt.Errorf("a database file or url was not specified"))
		}
		path, err := devenv.ResolvePath(c.File)
		if err != nil {
			return nil, wrapOpenDB(err)
		}
		return OpenDB(schema, path)
	}

	dsn, err := c.dsn()
	if err != nil {
		return nil, wrapOpenDB(err)
	}
	db, err := sql.Open("libsql", dsn)
	if err != nil {
		return nil, wrapOpenDB(err)
	}
	if schema != "" {
		_, err = db.Exec(schema)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("apply schema: %w", err)
		}
	}
	return db, nil
}
