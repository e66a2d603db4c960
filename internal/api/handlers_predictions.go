package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/radieske/footy-predictor/internal/api/dto"
	"github.com/radieske/footy-predictor/internal/identity"
	"github.com/radieske/footy-predictor/internal/predictions"
)

func (s *Server) savePrediction(w http.ResponseWriter, r *http.Request) {
	userID, _ := identity.UserID(r.Context())

	var req dto.SavePredictionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if req.MatchID == 0 || req.HomeTeam == "" || req.AwayTeam == "" || req.UserPrediction == "" {
		writeError(w, http.StatusBadRequest, "missing required fields")
		return
	}
	if !predictions.ValidPick(req.UserPrediction) {
		writeError(w, http.StatusBadRequest, predictions.ErrInvalidPick.Error())
		return
	}

	saved, err := s.Preds.Save(r.Context(), predictions.UserPrediction{
		UserID:          userID,
		FixtureID:       req.MatchID,
		HomeTeam:        req.HomeTeam,
		AwayTeam:        req.AwayTeam,
		ModelPrediction: req.ModelPrediction,
		UserPick:        req.UserPrediction,
	})
	if err != nil {
		if errors.Is(err, predictions.ErrAlreadyPredicted) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.Log.Error("save prediction failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not save prediction")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message":    "Prediction saved",
		"prediction": saved,
	})
}

func (s *Server) myPredictions(w http.ResponseWriter, r *http.Request) {
	userID, _ := identity.UserID(r.Context())
	limit := queryInt(r, "limit", 20)

	preds, err := s.Preds.ListByUser(r.Context(), userID, limit)
	if err != nil {
		s.Log.Error("list predictions failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not list predictions")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"predictions": preds})
}

func (s *Server) checkPrediction(w http.ResponseWriter, r *http.Request) {
	userID, _ := identity.UserID(r.Context())

	fixtureID, err := strconv.ParseInt(chi.URLParam(r, "fixtureId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid fixture id")
		return
	}

	pred, err := s.Preds.GetByFixture(r.Context(), userID, fixtureID)
	if errors.Is(err, predictions.ErrNotFound) {
		writeJSON(w, http.StatusOK, map[string]any{"has_predicted": false, "prediction": nil})
		return
	}
	if err != nil {
		s.Log.Error("check prediction failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not check prediction")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"has_predicted": true, "prediction": pred})
}

func (s *Server) leaderboard(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 10)

	leaders, err := s.Preds.Leaderboard(r.Context(), limit)
	if err != nil {
		s.Log.Error("leaderboard failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not load leaderboard")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"leaderboard": leaders})
}
