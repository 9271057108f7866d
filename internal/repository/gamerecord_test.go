package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCreateGameRecordArgs(t *testing.T) {
	id := uuid.New()
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	params := CreateGameRecordParams{
		SessionId: id,
		Height:    9,
		Width:     9,
		MineCount: 10,
		Status:    "won",
		Opened:    71,
		StartedAt: start,
		EndedAt:   start.Add(time.Minute),
	}

	args := params.Args()
	assert.Equal(t, id, args["session_id"])
	assert.Nil(t, args["player_id"])
	assert.Nil(t, args["username"])
	assert.Equal(t, "won", args["status"])

	playerId, username := int64(7), "bob"
	params.PlayerId, params.Username = &playerId, &username
	args = params.Args()
	assert.Equal(t, int64(7), args["player_id"])
	assert.Equal(t, "bob", args["username"])
}
