package ingest

import (
	"database/sql"
	"strconv"
	"strings"
)

func cleanNumber(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), ",", "")
}

// nullInt parses an integer cell, empty or malformed cells are NULL.
func nullInt(s string) sql.NullInt64 {
	v, err := strconv.ParseInt(cleanNumber(s), 10, 64)
	if err != nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: v, Valid: true}
}

func nullFloat(s string) sql.NullFloat64 {
	v, err := strconv.ParseFloat(cleanNumber(s), 64)
	if err != nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}

func nullString(s string) sql.NullString {
	s = strings.TrimSpace(s)
	return sql.NullString{String: s, Valid: s != ""}
}
