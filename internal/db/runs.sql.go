package db

import (
	"context"
)

const createComparisonRun = `-- name: CreateComparisonRun :exec
insert into comparison_runs (id, created_at, mode, normalized, players, results)
values (?, ?, ?, ?, ?, ?)`

type CreateComparisonRunParams struct {
	ID         string
	CreatedAt  int64
	Mode       string
	Normalized bool
	Players    int64
	Results    string
}

func (q *Queries) CreateComparisonRun(ctx context.Context, arg CreateComparisonRunParams) error {
	_, err := q.db.ExecContext(ctx, createComparisonRun,
		arg.ID,
		arg.CreatedAt,
		arg.Mode,
		arg.Normalized,
		arg.Players,
		arg.Results,
	)
	return err
}

const comparisonRunColumns = `id, created_at, mode, normalized, players, results`

const getComparisonRun = `-- name: GetComparisonRun :one
select ` + comparisonRunColumns + ` from comparison_runs where id = ?`

func (q *Queries) GetComparisonRun(ctx context.Context, id string) (ComparisonRun, error) {
	row := q.db.QueryRowContext(ctx, getComparisonRun, id)
	var i ComparisonRun
	err := row.Scan(&i.ID, &i.CreatedAt, &i.Mode, &i.Normalized, &i.Players, &i.Results)
	return i, err
}

const listComparisonRuns = `-- name: ListComparisonRuns :many
select ` + comparisonRunColumns + ` from comparison_runs
order by created_at desc, id
limit ?`

func (q *Queries) ListComparisonRuns(ctx context.Context, limit int64) ([]ComparisonRun, error) {
	rows, err := q.db.QueryContext(ctx, listComparisonRuns, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ComparisonRun
	for rows.Next() {
		var i ComparisonRun
		if err := rows.Scan(&i.ID, &i.CreatedAt, &i.Mode, &i.Normalized, &i.Players, &i.Results); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
