package db

import (
	"context"
	"database/sql"
)

const playerColumns = `id, name, nation, unique_id, fbref_link`

func scanPlayer(row interface{ Scan(...any) error }, i *Player) error {
	return row.Scan(&i.ID, &i.Name, &i.Nation, &i.UniqueID, &i.FbrefLink)
}

func collectPlayers(rows *sql.Rows) ([]Player, error) {
	defer rows.Close()
	var items []Player
	for rows.Next() {
		var i Player
		if err := scanPlayer(rows, &i); err != nil {
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

const createPlayer = `-- name: CreatePlayer :one
insert into players (name, nation, unique_id, fbref_link)
values (?, ?, ?, ?)
returning ` + playerColumns

type CreatePlayerParams struct {
	Name      string
	Nation    sql.NullString
	UniqueID  sql.NullString
	FbrefLink sql.NullString
}

func (q *Queries) CreatePlayer(ctx context.Context, arg CreatePlayerParams) (Player, error) {
	row := q.db.QueryRowContext(ctx, createPlayer,
		arg.Name,
		arg.Nation,
		arg.UniqueID,
		arg.FbrefLink,
	)
	var i Player
	err := scanPlayer(row, &i)
	return i, err
}

const getPlayer = `-- name: GetPlayer :one
select ` + playerColumns + ` from players where id = ?`

func (q *Queries) GetPlayer(ctx context.Context, id int64) (Player, error) {
	row := q.db.QueryRowContext(ctx, getPlayer, id)
	var i Player
	err := scanPlayer(row, &i)
	return i, err
}

const getPlayerByUniqueID = `-- name: GetPlayerByUniqueID :one
select ` + playerColumns + ` from players where unique_id = ?`

func (q *Queries) GetPlayerByUniqueID(ctx context.Context, uniqueID string) (Player, error) {
	row := q.db.QueryRowContext(ctx, getPlayerByUniqueID, uniqueID)
	var i Player
	err := scanPlayer(row, &i)
	return i, err
}

const getPlayerWithoutUniqueID = `-- name: GetPlayerWithoutUniqueID :one
select ` + playerColumns + ` from players
where name = ? and unique_id is null
order by id
limit 1`

func (q *Queries) GetPlayerWithoutUniqueID(ctx context.Context, name string) (Player, error) {
	row := q.db.QueryRowContext(ctx, getPlayerWithoutUniqueID, name)
	var i Player
	err := scanPlayer(row, &i)
	return i, err
}

const listPlayers = `-- name: ListPlayers :many
select ` + playerColumns + ` from players order by id`

func (q *Queries) ListPlayers(ctx context.Context) ([]Player, error) {
	rows, err := q.db.QueryContext(ctx, listPlayers)
	if err != nil {
		return nil, err
	}
	return collectPlayers(rows)
}

const listPlayersByName = `-- name: ListPlayersByName :many
select ` + playerColumns + ` from players where name = ? order by id`

func (q *Queries) ListPlayersByName(ctx context.Context, name string) ([]Player, error) {
	rows, err := q.db.QueryContext(ctx, listPlayersByName, name)
	if err != nil {
		return nil, err
	}
	return collectPlayers(rows)
}

const listPlayersNameLike = `-- name: ListPlayersNameLike :many
select ` + playerColumns + ` from players where name like ? order by id`

// ListPlayersNameLike matches `pattern` with sqlite's case insensitive LIKE.
func (q *Queries) ListPlayersNameLike(ctx context.Context, pattern string) ([]Player, error) {
	rows, err := q.db.QueryContext(ctx, listPlayersNameLike, pattern)
	if err != nil {
		return nil, err
	}
	return collectPlayers(rows)
}

const listInjuredPlayers = `-- name: ListInjuredPlayers :many
select ` + playerColumns + ` from players
where exists (
    select 1 from player_injuries where player_injuries.player_id = players.id
)
order by id`

func (q *Queries) ListInjuredPlayers(ctx context.Context) ([]Player, error) {
	rows, err := q.db.QueryContext(ctx, listInjuredPlayers)
	if err != nil {
		return nil, err
	}
	return collectPlayers(rows)
}

const updatePlayerLink = `-- name: UpdatePlayerLink :execrows
update players set fbref_link = ? where id = ?`

type UpdatePlayerLinkParams struct {
	FbrefLink sql.NullString
	ID        int64
}

func (q *Queries) UpdatePlayerLink(ctx context.Context, arg UpdatePlayerLinkParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updatePlayerLink, arg.FbrefLink, arg.ID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
