package restyutil

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	devenv "acl-research/dev/env"
)

// FilesystemOutput dumps every message into its own file under a directory,
// useful when a scraper starts failing on a page layout change.
type FilesystemOutput struct {
	directory string
}

// NewFilesystemOutput clears and recreates `dir`, which may start with
// <dev_state>.
func NewFilesystemOutput(dir string) (FilesystemOutput, error) {
	dir, err := devenv.ResolvePath(dir)
	if err != nil {
		return FilesystemOutput{}, err
	}
	err = os.RemoveAll(dir)
	if err != nil {
		return FilesystemOutput{}, err
	}
	err = os.MkdirAll(dir, 0777)
	if err != nil {
		return FilesystemOutput{}, err
	}
	return FilesystemOutput{directory: dir}, nil
}

func (o FilesystemOutput) Write(id string, contents string) {
	name := fmt.Sprintf("%s.http", id)
	err := os.WriteFile(filepath.Join(o.directory, name), []byte(contents), 0600)
	if err != nil {
		slog.Warn("failed to write http message dump", "id", id, "err", err)
	}
}
