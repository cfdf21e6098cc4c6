package testutil

import (
	"database/sql"
	"fmt"
	"math/rand"
	"testing"

	"acl-research/lib/sqliteutil"
	"acl-research/lib/telemetry"
)

type ServiceParams struct {
	Name string
	// if unspecified, it will skip applying a schema
	DbSchema string
	// if unspecified, it will use `:memory:`
	DbPath string
}

type ServiceResult struct {
	DB *sql.DB
}

// SetupService sets up telemetry and a fresh sqlite database for a test.
func SetupService(t testing.TB, params ServiceParams) (ServiceResult, func()) {
	cleanupTelemetry := telemetry.SetupForTesting(t, fmt.Sprintf("test:%s", params.Name))

	dbpath := ":memory:"
	if params.DbPath != "" {
		dbpath = params.DbPath
	}
	db, err := sqliteutil.OpenDB(params.DbSchema, dbpath)
	if err != nil {
		t.Fatal(err)
	}

	return ServiceResult{DB: db}, func() {
		db.Close()
		cleanupTelemetry()
	}
}

const letters = "abcdefghijklmnopqrstuvwxyz"

// RandomString returns a lowercase string of length n using `r`.
func RandomString(r *rand.Rand, n int) string {
	out := make([]byte, n)
	for i := range out {
		out[i] = letters[r.Intn(len(letters))]
	}
	return string(out)
}

// RandomSwitch returns true with probability p.
func RandomSwitch(r *rand.Rand, p float64) bool {
	return r.Float64() < p
}
