package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/radieske/footy-predictor/internal/footballdata"
	"github.com/radieske/footy-predictor/internal/identity"
	"github.com/radieske/footy-predictor/internal/predictions"
	"github.com/radieske/footy-predictor/internal/predictor"
)

// Provider é o recorte do cliente football-data usado pelos handlers.
type Provider interface {
	Standings(ctx context.Context, competition string) (footballdata.StandingsResponse, error)
	Matches(ctx context.Context, competition string, f footballdata.MatchFilter) (footballdata.MatchesResponse, error)
	Match(ctx context.Context, matchID int64) (footballdata.Match, error)
	Teams(ctx context.Context, competition string) (footballdata.TeamsResponse, error)
	Team(ctx context.Context, teamID int64) (footballdata.Team, error)
	TeamMatches(ctx context.Context, teamID int64, f footballdata.MatchFilter) (footballdata.MatchesResponse, error)
	Scorers(ctx context.Context, competition string, limit int) (footballdata.ScorersResponse, error)
}

// Engine é o recorte do modelo de previsão usado pelos handlers.
type Engine interface {
	PredictMatch(ctx context.Context, homeTeamID, awayTeamID int64) (predictor.Prediction, error)
	PredictUpcoming(ctx context.Context) ([]predictor.MatchPrediction, error)
}

// PredictionStore é o recorte de persistência de palpites.
type PredictionStore interface {
	Save(ctx context.Context, up predictions.UserPrediction) (predictions.UserPrediction, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]predictions.UserPrediction, error)
	GetByFixture(ctx context.Context, userID string, fixtureID int64) (predictions.UserPrediction, error)
	Leaderboard(ctx context.Context, limit int) ([]predictions.LeaderboardEntry, error)
}

// Server é a API pública do footy-predictor (base path /api).
type Server struct {
	Log         *zap.Logger
	Provider    Provider
	Engine      Engine
	Identity    *identity.Service
	Preds       PredictionStore
	Tokens      *identity.Issuer
	Competition string
}

func NewServer(log *zap.Logger, provider Provider, engine Engine, ident *identity.Service, preds PredictionStore, tokens *identity.Issuer, competition string) *Server {
	return &Server{
		Log:         log,
		Provider:    provider,
		Engine:      engine,
		Identity:    ident,
		Preds:       preds,
		Tokens:      tokens,
		Competition: competition,
	}
}

// Router monta todas as rotas sob /api.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(countRequests)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.health)

		r.Post("/auth/register", s.register)
		r.Post("/auth/login", s.login)

		r.Get("/matches", s.listMatches)
		r.Get("/matches/upcoming", s.upcomingMatches)
		r.Get("/matches/finished", s.finishedMatches)
		r.Get("/matches/{id}", s.getMatch)
		r.Get("/fixtures", s.listFixtures)
		r.Get("/standings", s.standings)
		r.Get("/teams", s.listTeams)
		r.Get("/teams/{id}", s.getTeam)
		r.Get("/teams/{id}/stats", s.teamStats)
		r.Get("/teams/{id}/matches", s.teamMatches)
		r.Get("/scorers", s.scorers)
		r.Get("/leaderboard", s.leaderboard)

		r.Post("/predict", s.predict)
		r.Get("/predict/upcoming", s.predictUpcoming)

		// Rotas que exigem usuário autenticado
		r.Group(func(r chi.Router) {
			r.Use(identity.RequireAuth(s.Tokens))
			r.Get("/auth/me", s.me)
			r.Post("/predictions", s.savePrediction)
			r.Get("/predictions", s.myPredictions)
			r.Get("/predictions/check/{fixtureId}", s.checkPrediction)
		})
	})

	return r
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "healthy",
		"message": "Footy Predictor API is running",
	})
}

// writeJSON serializa a resposta em JSON e define o status HTTP
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// providerError mapeia falhas do provedor: cota estourada vira 429, o resto 502.
func (s *Server) providerError(w http.ResponseWriter, err error) {
	if errors.Is(err, footballdata.ErrQuotaExceeded) {
		writeError(w, http.StatusTooManyRequests, "provider quota exceeded, try again shortly")
		return
	}
	s.Log.Warn("provider call failed", zap.Error(err))
	writeError(w, http.StatusBadGateway, "football data provider unavailable")
}

// queryInt lê um parâmetro inteiro da query com default.
func queryInt(r *http.Request, key string, def int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func pathID(r *http.Request, key string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, key), 10, 64)
}
