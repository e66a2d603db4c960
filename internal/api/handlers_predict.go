package api

import (
	"encoding/json"
	"net/http"

	"github.com/radieske/footy-predictor/internal/api/dto"
)

func (s *Server) predict(w http.ResponseWriter, r *http.Request) {
	var req dto.PredictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if req.HomeTeamID == 0 || req.AwayTeamID == 0 {
		writeError(w, http.StatusBadRequest, "missing team IDs")
		return
	}

	prediction, err := s.Engine.PredictMatch(r.Context(), req.HomeTeamID, req.AwayTeamID)
	if err != nil {
		s.providerError(w, err)
		return
	}

	predictionsServed.Inc()
	writeJSON(w, http.StatusOK, map[string]any{"prediction": prediction})
}

func (s *Server) predictUpcoming(w http.ResponseWriter, r *http.Request) {
	preds, err := s.Engine.PredictUpcoming(r.Context())
	if err != nil {
		s.providerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"predictions": preds})
}
