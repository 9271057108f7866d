package repository

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/vancomm/minesweeper/internal/mines"
)

const (
	defaultHighscoreLimit = 50
	maxHighscoreLimit     = 500
)

type Highscore struct {
	SessionId  string    `json:"session_id" db:"session_id"`
	Username   *string   `json:"username" db:"username"`
	Height     int       `json:"height" db:"height"`
	Width      int       `json:"width" db:"width"`
	MineCount  int       `json:"mine_count" db:"mine_count"`
	PlaytimeMs float64   `json:"playtime_ms" db:"playtime_ms"`
	EndedAt    time.Time `json:"ended_at" db:"ended_at"`
}

type HighscoreFilter struct {
	Username   *string
	GameParams *mines.GameParams
	Limit      int
}

func (f HighscoreFilter) WhereClause() (string, pgx.NamedArgs) {
	clauses := make([]string, 0)
	args := pgx.NamedArgs{}
	if f.Username != nil {
		clauses = append(clauses, "username = @username")
		args["username"] = *f.Username
	}
	if f.GameParams != nil {
		clauses = append(
			clauses,
			"height = @height",
			"width = @width",
			"mine_count = @mine_count",
		)
		args["height"] = f.GameParams.Height
		args["width"] = f.GameParams.Width
		args["mine_count"] = f.GameParams.MineCount
	}
	return strings.Join(clauses, " AND "), args
}

func (f HighscoreFilter) limit() int {
	if f.Limit <= 0 {
		return defaultHighscoreLimit
	}
	return min(f.Limit, maxHighscoreLimit)
}

func (q Queries) GetHighscores(
	ctx context.Context, filter HighscoreFilter,
) ([]Highscore, error) {
	query := `
	SELECT
		session_id::text AS session_id,
		username,
		height,
		width,
		mine_count,
		(
			extract('epoch' from ended_at) -
			extract('epoch' from started_at)
		) * 1000 AS playtime_ms,
		ended_at
	FROM game_record
	WHERE status = 'won'
	`

	whereClause, args := filter.WhereClause()
	if whereClause != "" {
		query += " AND " + whereClause
	}

	query += " ORDER BY playtime_ms LIMIT " + strconv.Itoa(filter.limit()) + ";"

	rows, err := q.db.Query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[Highscore])
}
