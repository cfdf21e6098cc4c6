package db

import (
	"database/sql"
)

type Player struct {
	ID        int64
	Name      string
	Nation    sql.NullString
	UniqueID  sql.NullString
	FbrefLink sql.NullString
}

type Season struct {
	ID   int64
	Year int64
	Comp string
	Team string
}

type PlayerSeason struct {
	ID         int64
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

type PlayerInjury struct {
	ID                 int64
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

type FbrefPlayerStat struct {
	ID               int64
	PlayerID         int64
	CreatedAt        int64
	UpdatedAt        int64
	PlayingTimeStats string
	ShootingStats    string
}

type ComparisonRun struct {
	ID         string
	CreatedAt  int64
	Mode       string
	Normalized bool
	Players    int64
	Results    string
}
