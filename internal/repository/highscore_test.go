package repository

import (
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"

	"github.com/vancomm/minesweeper/internal/mines"
)

func TestHighscoreFilterWhereClause(t *testing.T) {
	username := "alice"
	params := mines.GameParams{Height: 16, Width: 30, MineCount: 99}

	tests := []struct {
		name   string
		filter HighscoreFilter
		clause string
		args   pgx.NamedArgs
	}{
		{"empty", HighscoreFilter{}, "", pgx.NamedArgs{}},
		{
			"username",
			HighscoreFilter{Username: &username},
			"username = @username",
			pgx.NamedArgs{"username": "alice"},
		},
		{
			"params and username",
			HighscoreFilter{Username: &username, GameParams: &params},
			"username = @username AND height = @height AND width = @width AND mine_count = @mine_count",
			pgx.NamedArgs{"username": "alice", "height": 16, "width": 30, "mine_count": 99},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			clause, args := test.filter.WhereClause()
			assert.Equal(t, test.clause, clause)
			assert.Equal(t, test.args, args)
		})
	}
}

func TestHighscoreFilterLimit(t *testing.T) {
	assert.Equal(t, defaultHighscoreLimit, HighscoreFilter{}.limit())
	assert.Equal(t, 10, HighscoreFilter{Limit: 10}.limit())
	assert.Equal(t, maxHighscoreLimit, HighscoreFilter{Limit: maxHighscoreLimit}.limit())
	assert.Equal(t, maxHighscoreLimit, HighscoreFilter{Limit: 100000000}.limit())
}
