package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/repository"
)

var errRecordsDisabled = errors.New("game records are disabled")

func (g *GameHandler) Highscores(w http.ResponseWriter, r *http.Request) {
	if g.repo == nil {
		sendErrorOrLog(w, g.logger, http.StatusServiceUnavailable, errRecordsDisabled)
		return
	}

	dto, err := ParseHighscoresDTO(r.URL.Query())
	if err != nil {
		sendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}

	filter := repository.HighscoreFilter{Limit: dto.Limit}
	if dto.Preset != "" {
		params, err := config.Preset(dto.Preset)
		if err != nil {
			sendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
			return
		}
		filter.GameParams = &params
	}
	if dto.Username != "" {
		filter.Username = &dto.Username
	}

	highscores, err := g.repo.GetHighscores(r.Context(), filter)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to fetch highscores", slog.Any("error", err))
		return
	}

	sendJSONOrLog(w, g.logger, highscores)
}
