package api

import (
	"net/http"

	"github.com/radieske/footy-predictor/internal/api/dto"
	"github.com/radieske/footy-predictor/internal/footballdata"
)

func (s *Server) listMatches(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := footballdata.MatchFilter{
		Status:   q.Get("status"),
		Matchday: queryInt(r, "matchday", 0),
		DateFrom: q.Get("dateFrom"),
		DateTo:   q.Get("dateTo"),
	}

	res, err := s.Provider.Matches(r.Context(), s.Competition, filter)
	if err != nil {
		s.providerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"matches": dto.FromProviderMatches(res.Matches)})
}

func (s *Server) upcomingMatches(w http.ResponseWriter, r *http.Request) {
	s.matchesByStatus(w, r, "SCHEDULED")
}

func (s *Server) finishedMatches(w http.ResponseWriter, r *http.Request) {
	s.matchesByStatus(w, r, "FINISHED")
}

func (s *Server) matchesByStatus(w http.ResponseWriter, r *http.Request, status string) {
	res, err := s.Provider.Matches(r.Context(), s.Competition, footballdata.MatchFilter{Status: status})
	if err != nil {
		s.providerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"matches": dto.FromProviderMatches(res.Matches)})
}

func (s *Server) getMatch(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid match id")
		return
	}

	m, err := s.Provider.Match(r.Context(), id)
	if err != nil {
		s.providerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"match": dto.FromProviderMatch(m)})
}

// listFixtures devolve as próximas partidas agendadas, limitadas por ?limit (default 10).
func (s *Server) listFixtures(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 10)

	res, err := s.Provider.Matches(r.Context(), s.Competition, footballdata.MatchFilter{Status: "SCHEDULED"})
	if err != nil {
		s.providerError(w, err)
		return
	}

	matches := res.Matches
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	writeJSON(w, http.StatusOK, map[string]any{"matches": dto.FromProviderMatches(matches)})
}

func (s *Server) standings(w http.ResponseWriter, r *http.Request) {
	res, err := s.Provider.Standings(r.Context(), s.Competition)
	if err != nil {
		s.providerError(w, err)
		return
	}

	table := res.Table()
	rows := make([]dto.StandingRow, 0, len(table))
	for _, row := range table {
		rows = append(rows, dto.FromTableRow(row))
	}

	writeJSON(w, http.StatusOK, map[string]any{"standings": rows})
}

func (s *Server) scorers(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 10)

	res, err := s.Provider.Scorers(r.Context(), s.Competition, limit)
	if err != nil {
		s.providerError(w, err)
		return
	}

	scorers := make([]dto.Scorer, 0, len(res.Scorers))
	for _, sc := range res.Scorers {
		scorers = append(scorers, dto.Scorer{
			Player:    dto.Player{ID: sc.Player.ID, Name: sc.Player.Name, Nationality: sc.Player.Nationality},
			Team:      dto.Team{ID: sc.Team.ID, Name: sc.Team.Name, Crest: sc.Team.Crest},
			Goals:     sc.Goals,
			Assists:   sc.Assists,
			Penalties: sc.Penalties,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"scorers": scorers})
}
