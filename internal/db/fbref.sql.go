package db

import (
	"context"
)

const createFbrefPlayerStats = `-- name: CreateFbrefPlayerStats :one
insert into fbref_player_stats (
    player_id, created_at, updated_at, playing_time_stats, shooting_stats
) values (?, ?, ?, ?, ?)
returning id`

type CreateFbrefPlayerStatsParams struct {
	PlayerID         int64
	CreatedAt        int64
	UpdatedAt        int64
	PlayingTimeStats string
	ShootingStats    string
}

func (q *Queries) CreateFbrefPlayerStats(ctx context.Context, arg CreateFbrefPlayerStatsParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, createFbrefPlayerStats,
		arg.PlayerID,
		arg.CreatedAt,
		arg.UpdatedAt,
		arg.PlayingTimeStats,
		arg.ShootingStats,
	)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const listFbrefPlayerStats = `-- name: ListFbrefPlayerStats :many
select id, player_id, created_at, updated_at, playing_time_stats, shooting_stats
from fbref_player_stats
where player_id = ?
order by id`

func (q *Queries) ListFbrefPlayerStats(ctx context.Context, playerID int64) ([]FbrefPlayerStat, error) {
	rows, err := q.db.QueryContext(ctx, listFbrefPlayerStats, playerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []FbrefPlayerStat
	for rows.Next() {
		var i FbrefPlayerStat
		if err := rows.Scan(
			&i.ID,
			&i.PlayerID,
			&i.CreatedAt,
			&i.UpdatedAt,
			&i.PlayingTimeStats,
			&i.ShootingStats,
		); err != nil {
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

const deleteFbrefPlayerStatsExcept = `-- name: DeleteFbrefPlayerStatsExcept :execrows
delete from fbref_player_stats where player_id = ? and id != ?`

type DeleteFbrefPlayerStatsExceptParams struct {
	PlayerID int64
	KeepID   int64
}

func (q *Queries) DeleteFbrefPlayerStatsExcept(ctx context.Context, arg DeleteFbrefPlayerStatsExceptParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteFbrefPlayerStatsExcept, arg.PlayerID, arg.KeepID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
