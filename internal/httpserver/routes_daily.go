// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily board" mode.
// Exposes one endpoint under /daily:
//   - POST /daily/new → deal today's board on the caller's table
//
// Every player gets the same deal for a given UTC date: the shuffle seed is
// derived from the date and a server-side salt, and the full deck is used.

package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/pairs/internal/daily"
	"github.com/robalobadob/pairs/internal/deck"
	"github.com/robalobadob/pairs/internal/game"
	"github.com/robalobadob/pairs/internal/settings"
)

// dailyReq/Res payloads for POST /daily/new.
type dailyReq struct {
	Columns        string `json:"columns"`
	ColorSensitive bool   `json:"colorSensitive"`
}
type dailyRes struct {
	Date string    `json:"date"`
	View game.View `json:"view"`
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", s.handleDailyNew)
	})
}

// handleDailyNew starts today's board.
func (s *Server) handleDailyNew(w http.ResponseWriter, r *http.Request) {
	var req dailyReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	now := s.clk.Now()
	seed := daily.Seed(now, s.salt)
	f := settings.Form{
		Columns:        req.Columns,
		MaxRank:        deck.MaxRank,
		ColorSensitive: req.ColorSensitive,
		Seed:           &seed,
	}
	if v, ok := s.startGame(w, r, f); ok {
		writeJSON(w, http.StatusOK, dailyRes{Date: daily.DateKey(now), View: v})
	}
}
