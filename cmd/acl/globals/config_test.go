package globals

import (
	"os"
	"path/filepath"
	"testing"

	"acl-research/internal/fbref"
	"acl-research/internal/matching"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "acl.json5")
	require.NoError(t, os.WriteFile(path, []byte(`{
		database: { file: "/tmp/acl.db" },
		matching: { top_n: 3 },
		smtp: { server: "smtp.example.com", port: 587, email_address: "bot@example.com" },
	}`), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "/tmp/acl.db", cfg.Database.File)
	require.Equal(t, 3, cfg.Matching.TopN)
	require.Equal(t, matching.DefaultColumns, cfg.Matching.Columns)
	require.Equal(t, fbref.DefaultDelay, cfg.Fbref.Delay())
	require.True(t, cfg.Smtp.Configured())

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.json5"))
	require.Error(t, err)
}
