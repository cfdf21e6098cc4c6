package db

import (
	"context"
	"database/sql"
)

const createSeason = `-- name: CreateSeason :exec
insert into seasons (year, team, comp) values (?, ?, ?)
on conflict (year, team, comp) do nothing`

type CreateSeasonParams struct {
	Year int64
	Team string
	Comp string
}

func (q *Queries) CreateSeason(ctx context.Context, arg CreateSeasonParams) error {
	_, err := q.db.ExecContext(ctx, createSeason, arg.Year, arg.Team, arg.Comp)
	return err
}

const getSeasonID = `-- name: GetSeasonID :one
select id from seasons where year = ? and team = ? and comp = ?`

type GetSeasonIDParams struct {
	Year int64
	Team string
	Comp string
}

func (q *Queries) GetSeasonID(ctx context.Context, arg GetSeasonIDParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, getSeasonID, arg.Year, arg.Team, arg.Comp)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const createPlayerSeason = `-- name: CreatePlayerSeason :one
insert into player_seasons (
    player_id, season_id, age, gls, mp, min, n90s, starts, subs, unsub,
    ast, g_a, g_pk, pk, pk_att, pk_m, pos, player_code
) values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
returning id`

type CreatePlayerSeasonParams struct {
	PlayerID   int64
	SeasonID   int64
	Age        sql.NullInt64
	Gls        sql.NullInt64
	Mp         sql.NullInt64
	Min        sql.NullInt64
	N90s       sql.NullFloat64
	Starts     sql.NullInt64
	Subs       sql.NullInt64
	Unsub      sql.NullInt64
	Ast        sql.NullInt64
	GA         sql.NullInt64
	GPk        sql.NullInt64
	Pk         sql.NullInt64
	PkAtt      sql.NullInt64
	PkM        sql.NullInt64
	Pos        sql.NullString
	PlayerCode sql.NullString
}

func (q *Queries) CreatePlayerSeason(ctx context.Context, arg CreatePlayerSeasonParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, createPlayerSeason,
		arg.PlayerID,
		arg.SeasonID,
		arg.Age,
		arg.Gls,
		arg.Mp,
		arg.Min,
		arg.N90s,
		arg.Starts,
		arg.Subs,
		arg.Unsub,
		arg.Ast,
		arg.GA,
		arg.GPk,
		arg.Pk,
		arg.PkAtt,
		arg.PkM,
		arg.Pos,
		arg.PlayerCode,
	)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const playerSeasonColumns = `ps.id, ps.player_id, ps.season_id, ps.age, ps.gls, ps.mp, ps.min,
    ps.n90s, ps.starts, ps.subs, ps.unsub, ps.ast, ps.g_a, ps.g_pk, ps.pk, ps.pk_att,
    ps.pk_m, ps.pos, ps.player_code`

func playerSeasonFields(i *PlayerSeason) []any {
	return []any{
		&i.ID, &i.PlayerID, &i.SeasonID, &i.Age, &i.Gls, &i.Mp, &i.Min,
		&i.N90s, &i.Starts, &i.Subs, &i.Unsub, &i.Ast, &i.GA, &i.GPk, &i.Pk, &i.PkAtt,
		&i.PkM, &i.Pos, &i.PlayerCode,
	}
}

const listPlayerSeasons = `-- name: ListPlayerSeasons :many
select ` + playerSeasonColumns + `, s.year, s.comp, s.team
from player_seasons ps
join seasons s on s.id = ps.season_id
where ps.player_id = ?
order by s.year, ps.id`

type ListPlayerSeasonsRow struct {
	PlayerSeason PlayerSeason
	Year         int64
	Comp         string
	Team         string
}

func (q *Queries) ListPlayerSeasons(ctx context.Context, playerID int64) ([]ListPlayerSeasonsRow, error) {
	rows, err := q.db.QueryContext(ctx, listPlayerSeasons, playerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListPlayerSeasonsRow
	for rows.Next() {
		var i ListPlayerSeasonsRow
		fields := append(playerSeasonFields(&i.PlayerSeason), &i.Year, &i.Comp, &i.Team)
		if err := rows.Scan(fields...); err != nil {
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

const listCandidateSeasons = `-- name: ListCandidateSeasons :many
select ` + playerSeasonColumns + `, s.year, s.comp, s.team, p.name, p.unique_id
from player_seasons ps
join seasons s on s.id = ps.season_id
join players p on p.id = ps.player_id
where ps.id != ?
  and ps.player_id != ?
  and (? = '' or p.unique_id is null or p.unique_id != ?)
order by ps.id`

type ListCandidateSeasonsParams struct {
	ExcludeSeasonID int64
	ExcludePlayerID int64
	// empty disables the unique id filter
	ExcludeUniqueID string
}

type ListCandidateSeasonsRow struct {
	PlayerSeason PlayerSeason
	Year         int64
	Comp         string
	Team         string
	PlayerName   string
	UniqueID     sql.NullString
}

func (q *Queries) ListCandidateSeasons(ctx context.Context, arg ListCandidateSeasonsParams) ([]ListCandidateSeasonsRow, error) {
	rows, err := q.db.QueryContext(ctx, listCandidateSeasons,
		arg.ExcludeSeasonID,
		arg.ExcludePlayerID,
		arg.ExcludeUniqueID,
		arg.ExcludeUniqueID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListCandidateSeasonsRow
	for rows.Next() {
		var i ListCandidateSeasonsRow
		fields := append(
			playerSeasonFields(&i.PlayerSeason),
			&i.Year, &i.Comp, &i.Team, &i.PlayerName, &i.UniqueID,
		)
		if err := rows.Scan(fields...); err != nil {
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

const hasSeasonAfter = `-- name: HasSeasonAfter :one
select exists (
    select 1 from player_seasons ps
    join seasons s on s.id = ps.season_id
    where ps.player_id = ? and s.year > ?
)`

type HasSeasonAfterParams struct {
	PlayerID int64
	Year     int64
}

func (q *Queries) HasSeasonAfter(ctx context.Context, arg HasSeasonAfterParams) (bool, error) {
	row := q.db.QueryRowContext(ctx, hasSeasonAfter, arg.PlayerID, arg.Year)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}
