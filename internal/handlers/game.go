package handlers

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"sync"
	"time"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/metrics"
	"github.com/vancomm/minesweeper/internal/middleware"
	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/repository"
	"github.com/vancomm/minesweeper/internal/session"
)

const recordTimeout = 5 * time.Second

type GameHandler struct {
	logger   *slog.Logger
	sessions *session.Store
	repo     *repository.Queries
	ws       *config.WebSocket
	maxCells int

	rndMu sync.Mutex
	rnd   *rand.Rand
}

// NewGameHandler takes a nil repo when no database is configured; finished
// games are then not recorded and highscores are unavailable. A maxCells
// below 1 falls back to [config.DefaultMaxCells].
func NewGameHandler(
	logger *slog.Logger,
	sessions *session.Store,
	repo *repository.Queries,
	ws *config.WebSocket,
	rnd *rand.Rand,
	maxCells int,
) *GameHandler {
	if maxCells < 1 {
		maxCells = config.DefaultMaxCells
	}
	return &GameHandler{
		logger:   logger,
		sessions: sessions,
		repo:     repo,
		ws:       ws,
		maxCells: maxCells,
		rnd:      rnd,
	}
}

func (g *GameHandler) newBoard(params mines.GameParams) (*mines.Board, error) {
	g.rndMu.Lock()
	defer g.rndMu.Unlock()
	return mines.NewFromParams(params, g.rnd)
}

func (g *GameHandler) lookup(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	s, err := g.sessions.Lookup(r.PathValue("id"))
	if err != nil {
		sendErrorOrLog(w, g.logger, http.StatusNotFound, err)
		return nil, false
	}
	return s, true
}

func (g *GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseCreateNewGameDTO(r.URL.Query())
	if err != nil {
		sendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}

	params, err := dto.Params(g.maxCells)
	if err != nil {
		sendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}

	board, err := g.newBoard(params)
	if err != nil {
		sendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}

	var (
		playerId *int64
		username *string
	)
	if claims, loggedIn := middleware.PlayerClaims(r.Context()); loggedIn {
		g.logger.Debug("creating player session", slog.Any("claims", claims))
		playerId, username = &claims.PlayerId, &claims.Username
	} else {
		g.logger.Debug("creating anonymous session")
	}

	s := g.sessions.Create(board, playerId, username)
	metrics.GamesStarted.WithLabelValues(config.PresetName(params)).Inc()
	metrics.Sessions.Set(float64(g.sessions.Len()))

	sendStatusJSONOrLog(w, g.logger, http.StatusCreated, g.view(s))
}

// view snapshots the session under its lock.
func (g *GameHandler) view(s *session.Session) *GameSessionDTO {
	var dto *GameSessionDTO
	s.Do(func(b *mines.Board) {
		dto = NewGameSessionDTO(s, b)
	})
	dto.setEndedAt(s.EndedAt())
	return dto
}

func (g *GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	s, ok := g.lookup(w, r)
	if !ok {
		return
	}
	sendJSONOrLog(w, g.logger, g.view(s))
}

// apply runs one move against the session board and records the game if the
// move ended it.
func (g *GameHandler) apply(
	ctx context.Context, s *session.Session, move GameMove, row, col int,
) (*MoveResultDTO, error) {
	var (
		res MoveResultDTO
		err error
	)
	s.Do(func(b *mines.Board) {
		switch move {
		case Open, Chord:
			var out mines.Outcome
			if move == Open {
				out, err = b.Reveal(row, col)
			} else {
				out, err = b.Chord(row, col)
			}
			res.Outcome = &out
		case Flag:
			var out mines.ToggleOutcome
			out, err = b.ToggleFlag(row, col)
			res.Toggle = &out
		}
		if err == nil {
			res.Game = NewGameSessionDTO(s, b)
		}
	})
	if err != nil {
		return nil, err
	}
	res.Game.setEndedAt(s.EndedAt())

	label := mines.NoChange.String()
	switch {
	case res.Outcome != nil:
		label = res.Outcome.Kind.String()
	case res.Toggle.Changed:
		label = res.Toggle.State.String()
	}
	metrics.Moves.WithLabelValues(move.String(), label).Inc()

	g.finish(ctx, s, res.Game)
	return &res, nil
}

func (g *GameHandler) forfeit(ctx context.Context, s *session.Session) *MoveResultDTO {
	var res MoveResultDTO
	s.Do(func(b *mines.Board) {
		out := b.Forfeit()
		res.Outcome = &out
		res.Game = NewGameSessionDTO(s, b)
	})
	res.Game.setEndedAt(s.EndedAt())
	metrics.Moves.WithLabelValues("forfeit", res.Outcome.Kind.String()).Inc()
	g.finish(ctx, s, res.Game)
	return &res
}

// finish counts and stores a game the first time it is seen over.
func (g *GameHandler) finish(ctx context.Context, s *session.Session, dto *GameSessionDTO) {
	if dto.EndedAt == nil || !s.MarkRecorded() {
		return
	}
	metrics.GamesFinished.WithLabelValues(dto.Status.String()).Inc()
	if g.repo == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()

	record, err := g.repo.CreateGameRecord(ctx, repository.CreateGameRecordParams{
		SessionId: s.Id,
		PlayerId:  s.PlayerId,
		Username:  s.Username,
		Height:    dto.Height,
		Width:     dto.Width,
		MineCount: dto.MineCount,
		Status:    dto.Status.String(),
		Opened:    dto.Opened,
		StartedAt: s.StartedAt,
		EndedAt:   *s.EndedAt(),
	})
	if errors.Is(err, repository.ErrDuplicateRecord) {
		g.logger.Warn("game already recorded", slog.String("session", s.Id.String()))
		return
	}
	if err != nil {
		g.logger.Error("unable to record game", slog.Any("error", err))
		return
	}
	g.logger.Debug(
		"game recorded",
		slog.Int64("game_record_id", record.GameRecordId),
		slog.String("status", record.Status),
	)
}

func (g *GameHandler) MakeAMove(w http.ResponseWriter, r *http.Request) {
	dto, move, err := ParseMoveDTO(r.URL.Query())
	if err != nil {
		sendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}

	s, ok := g.lookup(w, r)
	if !ok {
		return
	}

	res, err := g.apply(r.Context(), s, move, dto.Row, dto.Col)
	if errors.Is(err, mines.ErrOutOfBounds) {
		sendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to apply move", slog.Any("error", err))
		return
	}

	sendJSONOrLog(w, g.logger, res)
}

func (g *GameHandler) Forfeit(w http.ResponseWriter, r *http.Request) {
	s, ok := g.lookup(w, r)
	if !ok {
		return
	}
	sendJSONOrLog(w, g.logger, g.forfeit(r.Context(), s))
}
