package db

import (
	"context"
	"database/sql"
)

const createPlayerInjury = `-- name: CreatePlayerInjury :one
insert into player_injuries (
    player_id, date_of_injury, venue, injury_surface, home_injury_surface,
    home_facility, game_in_injury_season, position, injury, laterality,
    footedness, concomitant_injury, activity_type, mechanism, minutes_played,
    active_nwsl, notes, return_date
) values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
returning id`

type CreatePlayerInjuryParams struct {
	PlayerID           int64
	DateOfInjury       sql.NullString
	Venue              sql.NullString
	InjurySurface      sql.NullString
	HomeInjurySurface  sql.NullString
	HomeFacility       sql.NullString
	GameInInjurySeason sql.NullString
	Position           sql.NullString
	Injury             sql.NullString
	Laterality         sql.NullString
	Footedness         sql.NullString
	ConcomitantInjury  sql.NullString
	ActivityType       int64
	Mechanism          int64
	MinutesPlayed      int64
	ActiveNwsl         sql.NullString
	Notes              sql.NullString
	ReturnDate         sql.NullString
}

func (q *Queries) CreatePlayerInjury(ctx context.Context, arg CreatePlayerInjuryParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, createPlayerInjury,
		arg.PlayerID,
		arg.DateOfInjury,
		arg.Venue,
		arg.InjurySurface,
		arg.HomeInjurySurface,
		arg.HomeFacility,
		arg.GameInInjurySeason,
		arg.Position,
		arg.Injury,
		arg.Laterality,
		arg.Footedness,
		arg.ConcomitantInjury,
		arg.ActivityType,
		arg.Mechanism,
		arg.MinutesPlayed,
		arg.ActiveNwsl,
		arg.Notes,
		arg.ReturnDate,
	)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const listPlayerInjuries = `-- name: ListPlayerInjuries :many
select id, player_id, date_of_injury, venue, injury_surface, home_injury_surface,
    home_facility, game_in_injury_season, position, injury, laterality,
    footedness, concomitant_injury, activity_type, mechanism, minutes_played,
    active_nwsl, notes, return_date
from player_injuries
where player_id = ?
order by id`

func (q *Queries) ListPlayerInjuries(ctx context.Context, playerID int64) ([]PlayerInjury, error) {
	rows, err := q.db.QueryContext(ctx, listPlayerInjuries, playerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []PlayerInjury
	for rows.Next() {
		var i PlayerInjury
		if err := rows.Scan(
			&i.ID,
			&i.PlayerID,
			&i.DateOfInjury,
			&i.Venue,
			&i.InjurySurface,
			&i.HomeInjurySurface,
			&i.HomeFacility,
			&i.GameInInjurySeason,
			&i.Position,
			&i.Injury,
			&i.Laterality,
			&i.Footedness,
			&i.ConcomitantInjury,
			&i.ActivityType,
			&i.Mechanism,
			&i.MinutesPlayed,
			&i.ActiveNwsl,
			&i.Notes,
			&i.ReturnDate,
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

const countPlayerInjuries = `-- name: CountPlayerInjuries :one
select count(*) from player_injuries where player_id = ?`

func (q *Queries) CountPlayerInjuries(ctx context.Context, playerID int64) (int64, error) {
	row := q.db.QueryRowContext(ctx, countPlayerInjuries, playerID)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const deleteAllPlayerInjuries = `-- name: DeleteAllPlayerInjuries :execrows
delete from player_injuries`

func (q *Queries) DeleteAllPlayerInjuries(ctx context.Context) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteAllPlayerInjuries)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
