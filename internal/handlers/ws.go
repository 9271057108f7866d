package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/vancomm/minesweeper/internal/session"
)

// command is one line of the websocket protocol:
//
//	g          fetch the game
//	o ROW COL  open
//	f ROW COL  toggle a flag
//	c ROW COL  chord
//	r          forfeit
type command struct {
	name     string
	row, col int
}

// commandNargs maps known commands to number of arguments
var commandNargs = map[string]int{
	"g": 0,
	"o": 2,
	"f": 2,
	"c": 2,
	"r": 0,
}

func parseCommand(line string) (command, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return command{}, errors.New("empty command")
	}
	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return command{}, fmt.Errorf("unknown command %q", parts[0])
	}
	if nargs != len(parts)-1 {
		return command{}, fmt.Errorf("command %q takes %d arguments", parts[0], nargs)
	}
	cmd := command{name: parts[0]}
	if nargs == 2 {
		var err error
		if cmd.row, err = strconv.Atoi(parts[1]); err != nil {
			return command{}, errors.New("row must be an int")
		}
		if cmd.col, err = strconv.Atoi(parts[2]); err != nil {
			return command{}, errors.New("col must be an int")
		}
	}
	return cmd, nil
}

func (g *GameHandler) execute(
	ctx context.Context, s *session.Session, cmd command,
) (*MoveResultDTO, error) {
	switch cmd.name {
	case "g":
		return &MoveResultDTO{Game: g.view(s)}, nil
	case "r":
		return g.forfeit(ctx, s), nil
	}
	move, err := ParseGameMove(cmd.name)
	if err != nil {
		return nil, err
	}
	return g.apply(ctx, s, move, cmd.row, cmd.col)
}

// ConnectWS streams moves over a websocket. Every text message may hold
// several newline separated commands; the reply is the result of the last one.
func (g *GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	s, ok := g.lookup(w, r)
	if !ok {
		return
	}

	c, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Error("unable to upgrade connection", slog.Any("error", err))
		return
	}
	defer c.Close()

	logger := g.logger.With(slog.String("session", s.Id.String()))
	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("read", slog.Any("error", err))
			}
			return
		}
		if mt != websocket.TextMessage {
			logger.Warn("unexpected message type", slog.Int("type", mt))
			return
		}

		var (
			reply any
			res   *MoveResultDTO
		)
		for _, line := range strings.Split(strings.TrimSpace(string(message)), "\n") {
			logger.Debug("> " + line)
			cmd, err := parseCommand(line)
			if err == nil {
				res, err = g.execute(r.Context(), s, cmd)
			}
			if err != nil {
				reply = wrapError(err)
				break
			}
			reply = res
		}

		if err := c.WriteJSON(reply); err != nil {
			logger.Error("write", slog.Any("error", err))
			return
		}
	}
}
