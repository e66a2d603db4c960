package webapp

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/radieske/footy-predictor/internal/matchview"
)

// Server serve a tela de partidas renderizada no servidor.
type Server struct {
	Log  *zap.Logger
	View *matchview.View
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", s.index)
	r.Post("/matches/{id}/predict", s.predict)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return r
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := matchview.Render(w, s.View.Snapshot()); err != nil {
		s.Log.Error("render failed", zap.Error(err))
	}
}

// predict dispara a previsão em background e volta pra home; a página
// mostra o botão como pendente até a resposta chegar.
func (s *Server) predict(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid match id", http.StatusBadRequest)
		return
	}

	s.View.RequestPrediction(context.Background(), id)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
