package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gorilla/schema"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/session"
)

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}

type CreateNewGameDTO struct {
	Preset    string `schema:"preset"`
	Height    int    `schema:"height"`
	Width     int    `schema:"width"`
	MineCount int    `schema:"mine_count"`
}

var (
	errMissingParams = errors.New("either preset or height, width and mine_count are required")
	errBoardTooLarge = errors.New("board too large")
)

// Params resolves a preset name or explicit dimensions and validates them.
// Boards with more than maxCells cells are rejected.
func (dto CreateNewGameDTO) Params(maxCells int) (mines.GameParams, error) {
	if dto.Preset != "" {
		return config.Preset(dto.Preset)
	}
	if dto.Height == 0 && dto.Width == 0 && dto.MineCount == 0 {
		return mines.GameParams{}, errMissingParams
	}
	params := mines.GameParams{
		Height: dto.Height, Width: dto.Width, MineCount: dto.MineCount,
	}
	if err := params.Validate(); err != nil {
		return mines.GameParams{}, err
	}
	if params.CellCount() > maxCells {
		return mines.GameParams{}, fmt.Errorf(
			"%w (cells = %d, max = %d)", errBoardTooLarge, params.CellCount(), maxCells,
		)
	}
	return params, nil
}

func ParseCreateNewGameDTO(src map[string][]string) (CreateNewGameDTO, error) {
	var dto CreateNewGameDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

type GameMove int8

const (
	Open GameMove = iota
	Flag
	Chord
)

func (m GameMove) String() string {
	switch m {
	case Open:
		return "open"
	case Flag:
		return "flag"
	case Chord:
		return "chord"
	default:
		return fmt.Sprintf("GameMove(%d)", m)
	}
}

func ParseGameMove(s string) (GameMove, error) {
	switch s {
	case "open", "o":
		return Open, nil
	case "flag", "f":
		return Flag, nil
	case "chord", "c":
		return Chord, nil
	default:
		return 0, fmt.Errorf("move must be one of 'open', 'flag', 'chord'")
	}
}

type MoveDTO struct {
	Move string `schema:"move,required"`
	Row  int    `schema:"row,required"`
	Col  int    `schema:"col,required"`
}

func ParseMoveDTO(src map[string][]string) (MoveDTO, GameMove, error) {
	var dto MoveDTO
	if err := decoder.Decode(&dto, src); err != nil {
		return dto, 0, err
	}
	move, err := ParseGameMove(dto.Move)
	return dto, move, err
}

type HighscoresDTO struct {
	Preset   string `schema:"preset"`
	Username string `schema:"username"`
	Limit    int    `schema:"limit"`
}

func ParseHighscoresDTO(src map[string][]string) (HighscoresDTO, error) {
	var dto HighscoresDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

type GameSessionDTO struct {
	GameSessionId string             `json:"game_session_id"`
	Height        int                `json:"height"`
	Width         int                `json:"width"`
	MineCount     int                `json:"mine_count"`
	Status        mines.GameStatus   `json:"status"`
	FlagsLeft     int                `json:"flags_left"`
	Opened        int                `json:"opened"`
	Cells         [][]mines.CellView `json:"cells"`
	StartedAt     int64              `json:"started_at"`
	EndedAt       *int64             `json:"ended_at,omitempty"`
}

func NewGameSessionDTO(s *session.Session, b *mines.Board) *GameSessionDTO {
	return &GameSessionDTO{
		GameSessionId: s.Id.String(),
		Height:        b.Height,
		Width:         b.Width,
		MineCount:     b.MineCount,
		Status:        b.Status(),
		FlagsLeft:     b.FlagsLeft(),
		Opened:        b.Opened(),
		Cells:         b.Rows(),
		StartedAt:     s.StartedAt.UnixMilli(),
	}
}

func (dto *GameSessionDTO) setEndedAt(endedAt *time.Time) {
	if endedAt != nil {
		e := endedAt.UnixMilli()
		dto.EndedAt = &e
	}
}

type MoveResultDTO struct {
	Game    *GameSessionDTO      `json:"game"`
	Outcome *mines.Outcome       `json:"outcome,omitempty"`
	Toggle  *mines.ToggleOutcome `json:"toggle,omitempty"`
}
