package handlers

import (
	"fmt"
	"net/http"

	"github.com/gorilla/schema"
	"github.com/sirupsen/logrus"

	"github.com/cEvolve05/minesweeper/internal/config"
	"github.com/cEvolve05/minesweeper/internal/game"
	"github.com/cEvolve05/minesweeper/internal/scoreboard"
)

type ScoreboardQuery struct {
	Difficulty string `schema:"difficulty"`
	Limit      int    `schema:"limit"`
}

type ScoreboardDTO struct {
	Difficulty config.Difficulty `json:"difficulty"`
	Results    []game.Result     `json:"results"`
	Stats      scoreboard.Stats  `json:"stats"`
}

type ScoreboardHandler struct {
	log   logrus.FieldLogger
	board *scoreboard.Board
	dec   *schema.Decoder
}

func NewScoreboardHandler(log logrus.FieldLogger, board *scoreboard.Board) *ScoreboardHandler {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)

	return &ScoreboardHandler{
		log:   log,
		board: board,
		dec:   dec,
	}
}

func (h ScoreboardHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	var query ScoreboardQuery
	if err := h.dec.Decode(&query, r.URL.Query()); err != nil {
		sendErrorOrLog(w, h.log, http.StatusBadRequest, err)
		return
	}
	if query.Limit < 0 {
		sendErrorOrLog(w, h.log, http.StatusBadRequest,
			fmt.Errorf("limit must not be negative, got %d", query.Limit))
		return
	}

	d := config.Easy
	if query.Difficulty != "" {
		var err error
		if d, err = config.ParseDifficulty(query.Difficulty); err != nil {
			sendErrorOrLog(w, h.log, http.StatusBadRequest, err)
			return
		}
	}

	results := h.board.Top(d, query.Limit)
	if results == nil {
		results = []game.Result{}
	}
	sendJSONOrLog(w, h.log, ScoreboardDTO{
		Difficulty: d,
		Results:    results,
		Stats:      h.board.Stats(d),
	})
}
