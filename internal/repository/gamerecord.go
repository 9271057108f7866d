package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

var ErrDuplicateRecord = errors.New("game record already exists")

type GameRecord struct {
	GameRecordId int64              `db:"game_record_id"`
	SessionId    pgtype.UUID        `db:"session_id"`
	PlayerId     *int64             `db:"player_id"`
	Username     *string            `db:"username"`
	Height       int                `db:"height"`
	Width        int                `db:"width"`
	MineCount    int                `db:"mine_count"`
	Status       string             `db:"status"`
	Opened       int                `db:"opened"`
	StartedAt    pgtype.Timestamptz `db:"started_at"`
	EndedAt      pgtype.Timestamptz `db:"ended_at"`
	CreatedAt    pgtype.Timestamptz `db:"created_at"`
}

type CreateGameRecordParams struct {
	SessionId uuid.UUID
	PlayerId  *int64
	Username  *string
	Height    int
	Width     int
	MineCount int
	Status    string
	Opened    int
	StartedAt time.Time
	EndedAt   time.Time
}

func (p CreateGameRecordParams) Args() pgx.NamedArgs {
	args := pgx.NamedArgs{
		"session_id": p.SessionId,
		"player_id":  nil,
		"username":   nil,
		"height":     p.Height,
		"width":      p.Width,
		"mine_count": p.MineCount,
		"status":     p.Status,
		"opened":     p.Opened,
		"started_at": p.StartedAt,
		"ended_at":   p.EndedAt,
	}
	if p.PlayerId != nil {
		args["player_id"] = *p.PlayerId
	}
	if p.Username != nil {
		args["username"] = *p.Username
	}
	return args
}

func (q Queries) CreateGameRecord(
	ctx context.Context, params CreateGameRecordParams,
) (*GameRecord, error) {
	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO game_record (
			session_id, player_id, username, height, width, mine_count,
			status, opened, started_at, ended_at
		)
		VALUES (
			@session_id, @player_id, @username, @height, @width, @mine_count,
			@status, @opened, @started_at, @ended_at
		)
		RETURNING *;`,
		params.Args(),
	)
	record, err := pgx.CollectExactlyOneRow(
		rows, pgx.RowToAddrOfStructByName[GameRecord],
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return nil, ErrDuplicateRecord
	}
	return record, err
}

func (q Queries) FetchGameRecord(ctx context.Context, sessionId uuid.UUID) (*GameRecord, error) {
	rows, _ := q.db.Query(
		ctx,
		"SELECT * FROM game_record WHERE session_id = $1",
		sessionId,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[GameRecord])
}
