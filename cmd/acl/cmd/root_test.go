package cmd

import (
	"context"
	"path/filepath"
	"testing"

	"acl-research/internal/roster"

	"github.com/stretchr/testify/require"
)

func TestRunClosesDatabase(t *testing.T) {
	testCases := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{name: "success", args: []string{"init-db"}},
		{name: "failed command", args: []string{"controls", "Nobody Here"}, wantErr: roster.ErrPlayerNotFound},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			dbPath := filepath.Join(t.TempDir(), "acl.db")
			args := append([]string{"--db", dbPath}, test.args...)

			err := run(context.Background(), args)
			if test.wantErr != nil {
				require.ErrorIs(t, err, test.wantErr)
			} else {
				require.NoError(t, err)
			}

			require.NotNil(t, database)
			require.ErrorContains(t, database.Ping(), "closed")
		})
	}
}
