package api

import (
	"net/http"

	"github.com/radieske/footy-predictor/internal/api/dto"
	"github.com/radieske/footy-predictor/internal/footballdata"
	"github.com/radieske/footy-predictor/internal/predictor"
)

func (s *Server) listTeams(w http.ResponseWriter, r *http.Request) {
	res, err := s.Provider.Teams(r.Context(), s.Competition)
	if err != nil {
		s.providerError(w, err)
		return
	}

	teams := make([]dto.TeamDetail, 0, len(res.Teams))
	for _, t := range res.Teams {
		teams = append(teams, dto.TeamDetail{
			ID:        t.ID,
			Name:      t.Name,
			ShortName: t.ShortName,
			Crest:     t.Crest,
			Venue:     t.Venue,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"teams": teams})
}

func (s *Server) getTeam(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid team id")
		return
	}

	t, err := s.Provider.Team(r.Context(), id)
	if err != nil {
		s.providerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"team": dto.TeamDetail{
		ID:        t.ID,
		Name:      t.Name,
		ShortName: t.ShortName,
		Crest:     t.Crest,
		Venue:     t.Venue,
	}})
}

// teamStats combina a linha da classificação com a forma recente do time.
func (s *Server) teamStats(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid team id")
		return
	}

	standings, err := s.Provider.Standings(r.Context(), s.Competition)
	if err != nil {
		s.providerError(w, err)
		return
	}

	var found *footballdata.TableRow
	for _, row := range standings.Table() {
		if row.Team.ID == id {
			row := row
			found = &row
			break
		}
	}
	if found == nil {
		writeError(w, http.StatusNotFound, "team not found in standings")
		return
	}

	// Forma recente é melhor-esforço; sem dados fica neutra
	form := 50.0
	if recent, err := s.Provider.TeamMatches(r.Context(), id, footballdata.MatchFilter{Status: "FINISHED", Limit: 5}); err == nil {
		form = predictor.Form(recent.Matches, id)
	}

	writeJSON(w, http.StatusOK, map[string]any{"stats": dto.TeamStats{
		Team:         dto.Team{ID: found.Team.ID, Name: found.Team.Name, Crest: found.Team.Crest},
		Position:     found.Position,
		Points:       found.Points,
		Played:       found.PlayedGames,
		Won:          found.Won,
		Drawn:        found.Draw,
		Lost:         found.Lost,
		GoalsFor:     found.GoalsFor,
		GoalsAgainst: found.GoalsAgainst,
		GoalDiff:     found.GoalDifference,
		Form:         form,
	}})
}

func (s *Server) teamMatches(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid team id")
		return
	}

	filter := footballdata.MatchFilter{
		Status: r.URL.Query().Get("status"),
		Limit:  queryInt(r, "limit", 10),
	}

	res, err := s.Provider.TeamMatches(r.Context(), id, filter)
	if err != nil {
		s.providerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"matches": dto.FromProviderMatches(res.Matches)})
}
