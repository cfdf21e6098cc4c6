package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	devenv "acl-research/dev/env"
	"acl-research/internal/db"
	"acl-research/lib/sqliteutil"
)

const defaultConfig = `{
  // a local file, or a libsql url with an auth token
  database: {
    file: "<dev_state>/soccer_acl.db",
  },
  fbref: {
    delay_ms: 6100,
    timeout_ms: 30000,
    use_browser: false,
    // debug_dir: "<dev_state>/fbref_http",
  },
  matching: {
    top_n: 5,
    columns: ["gls", "mp", "min", "n90s", "starts", "subs", "ast", "g_a", "g_pk"],
  },
  // required by 'acl compare --mail-to', keep credentials in config.local.json5
  smtp: {},
}
`

func createDb(filename string) error {
	path, err := devenv.ResolvePath("<dev_state>/" + filename)
	if err != nil {
		return err
	}

	_, err = os.Stat(path)
	if err == nil {
		fmt.Println("database already created at", path)
		return nil
	}

	fmt.Println("creating database at", path)
	database, err := sqliteutil.OpenDB(db.Schema, path)
	if err != nil {
		return err
	}
	return database.Close()
}

func writeConfig() error {
	_, err := os.Stat("config.json5")
	if err == nil {
		fmt.Println("config.json5 already exists")
		return nil
	}
	fmt.Println("writing default config.json5")
	return os.WriteFile("config.json5", []byte(defaultConfig), 0644)
}

func create(recreate bool) error {
	_, err := os.Stat("go.mod")
	if os.IsNotExist(err) {
		return fmt.Errorf("the dev environment must be created in the repository root (the same directory as the 'go.mod' file)")
	}

	if recreate {
		err = os.RemoveAll("dev/.state")
		if err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	err = os.MkdirAll("dev/.state", 0777)
	if err != nil {
		return err
	}

	err = createDb("soccer_acl.db")
	if err != nil {
		return err
	}
	return writeConfig()
}

func main() {
	recreate := flag.Bool("recreate", false, "recreate the dev environment from scratch")
	flag.Parse()

	err := create(*recreate)
	if err != nil {
		slog.Error("failed to create dev environment", "err", err.Error())
		os.Exit(1)
	}

	slog.Info("dev environment created sucessfully!")
}
