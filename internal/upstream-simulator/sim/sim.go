package sim

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/radieske/footy-predictor/internal/footballdata"
)

// Simulator serve um recorte da API football-data.org v4 com uma
// competição fixa em memória. Partidas agendadas viram FINISHED
// conforme o ticker avança, com placares aleatórios.
type Simulator struct {
	Log         *zap.Logger
	Competition string

	mu       sync.RWMutex
	teams    []footballdata.Team
	matches  []footballdata.Match
	table    []footballdata.TableRow
	scorers  []footballdata.Scorer
	rng      *rand.Rand
	finished func() // callback de métrica
}

func New(log *zap.Logger, competition string, onFinished func()) *Simulator {
	s := &Simulator{
		Log:         log,
		Competition: competition,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		finished:    onFinished,
	}
	s.seed()
	return s
}

// seed monta o catálogo fixo: oito times, tabela e duas rodadas de jogos.
func (s *Simulator) seed() {
	names := []struct {
		id    int64
		name  string
		short string
	}{
		{86, "Real Madrid CF", "Real Madrid"},
		{81, "FC Barcelona", "Barcelona"},
		{78, "Club Atlético de Madrid", "Atleti"},
		{559, "Sevilla FC", "Sevilla"},
		{95, "Valencia CF", "Valencia"},
		{90, "Real Betis Balompié", "Betis"},
		{92, "Real Sociedad de Fútbol", "Real Sociedad"},
		{298, "Girona FC", "Girona"},
	}

	for i, n := range names {
		s.teams = append(s.teams, footballdata.Team{
			ID:        n.id,
			Name:      n.name,
			ShortName: n.short,
			Crest:     "https://crests.football-data.org/" + strconv.FormatInt(n.id, 10) + ".png",
			Venue:     n.short + " Stadium",
		})
		played := 4
		won := 3 - i/3
		s.table = append(s.table, footballdata.TableRow{
			Position:       i + 1,
			Team:           footballdata.TeamRef{ID: n.id, Name: n.name},
			PlayedGames:    played,
			Won:            won,
			Draw:           1,
			Lost:           played - won - 1,
			Points:         won*3 + 1,
			GoalsFor:       10 - i,
			GoalsAgainst:   3 + i/2,
			GoalDifference: 7 - i - i/2,
			Form:           "W,W,D,W,L",
		})
	}

	base := time.Now().UTC().Truncate(time.Hour).Add(24 * time.Hour)
	id := int64(500000)
	for round := 0; round < 2; round++ {
		for i := 0; i+1 < len(names); i += 2 {
			home, away := names[i], names[i+1]
			if round == 1 {
				home, away = away, home
			}
			id++
			s.matches = append(s.matches, footballdata.Match{
				ID:       id,
				UTCDate:  base.Add(time.Duration(round*72+i*3) * time.Hour),
				Status:   "SCHEDULED",
				Matchday: 5 + round,
				HomeTeam: footballdata.TeamRef{ID: home.id, Name: home.name},
				AwayTeam: footballdata.TeamRef{ID: away.id, Name: away.name},
			})
		}
	}

	s.scorers = []footballdata.Scorer{
		{Player: footballdata.Player{ID: 3754, Name: "Kylian Mbappé", Nationality: "France"}, Team: footballdata.TeamRef{ID: 86, Name: "Real Madrid CF"}, Goals: 6},
		{Player: footballdata.Player{ID: 8240, Name: "Robert Lewandowski", Nationality: "Poland"}, Team: footballdata.TeamRef{ID: 81, Name: "FC Barcelona"}, Goals: 5},
		{Player: footballdata.Player{ID: 7881, Name: "Antoine Griezmann", Nationality: "France"}, Team: footballdata.TeamRef{ID: 78, Name: "Club Atlético de Madrid"}, Goals: 4},
	}
}

// Advance finaliza a próxima partida agendada com um placar aleatório.
func (s *Simulator) Advance() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.matches {
		if s.matches[i].Status != "SCHEDULED" {
			continue
		}
		home := s.rng.Intn(4)
		away := s.rng.Intn(4)
		s.matches[i].Status = "FINISHED"
		s.matches[i].Score = footballdata.Score{
			Winner:   winner(home, away),
			FullTime: footballdata.FullTime{Home: &home, Away: &away},
		}
		s.Log.Info("simulated match finished",
			zap.Int64("match_id", s.matches[i].ID),
			zap.Int("home", home),
			zap.Int("away", away))
		if s.finished != nil {
			s.finished()
		}
		return
	}
}

func winner(home, away int) string {
	switch {
	case home > away:
		return "HOME_TEAM"
	case away > home:
		return "AWAY_TEAM"
	default:
		return "DRAW"
	}
}

// Router expõe as rotas no formato da API v4, exigindo X-Auth-Token.
func (s *Simulator) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requireToken)

	r.Get("/v4/competitions/{code}/standings", s.standings)
	r.Get("/v4/competitions/{code}/matches", s.competitionMatches)
	r.Get("/v4/competitions/{code}/teams", s.listTeams)
	r.Get("/v4/competitions/{code}/scorers", s.listScorers)
	r.Get("/v4/matches/{id}", s.getMatch)
	r.Get("/v4/teams/{id}", s.getTeam)
	r.Get("/v4/teams/{id}/matches", s.teamMatches)

	return r
}

func (s *Simulator) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Auth-Token") == "" {
			writeJSON(w, http.StatusForbidden, map[string]any{
				"message":   "The resource you are looking for is restricted.",
				"errorCode": 403,
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Simulator) standings(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	table := append([]footballdata.TableRow(nil), s.table...)
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, footballdata.StandingsResponse{
		Standings: []footballdata.Standing{{Type: "TOTAL", Table: table}},
	})
}

func (s *Simulator) competitionMatches(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, footballdata.MatchesResponse{
		Matches: s.filterMatches(r, nil),
	})
}

func (s *Simulator) teamMatches(w http.ResponseWriter, r *http.Request) {
	teamID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "invalid team id"})
		return
	}
	writeJSON(w, http.StatusOK, footballdata.MatchesResponse{
		Matches: s.filterMatches(r, func(m footballdata.Match) bool {
			return m.HomeTeam.ID == teamID || m.AwayTeam.ID == teamID
		}),
	})
}

// filterMatches aplica status, matchday, janela de datas e limit da query.
func (s *Simulator) filterMatches(r *http.Request, keep func(footballdata.Match) bool) []footballdata.Match {
	q := r.URL.Query()
	status := q.Get("status")
	matchday, _ := strconv.Atoi(q.Get("matchday"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	var from, to time.Time
	if v := q.Get("dateFrom"); v != "" {
		from, _ = time.Parse("2006-01-02", v)
	}
	if v := q.Get("dateTo"); v != "" {
		to, _ = time.Parse("2006-01-02", v)
		to = to.Add(24 * time.Hour)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []footballdata.Match{}
	for _, m := range s.matches {
		if keep != nil && !keep(m) {
			continue
		}
		if status != "" && !strings.EqualFold(m.Status, status) {
			continue
		}
		if matchday != 0 && m.Matchday != matchday {
			continue
		}
		if !from.IsZero() && m.UTCDate.Before(from) {
			continue
		}
		if !to.IsZero() && !m.UTCDate.Before(to) {
			continue
		}
		out = append(out, m)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

func (s *Simulator) getMatch(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "invalid match id"})
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.matches {
		if m.ID == id {
			writeJSON(w, http.StatusOK, m)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]any{"message": "match not found"})
}

func (s *Simulator) listTeams(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	teams := append([]footballdata.Team(nil), s.teams...)
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, footballdata.TeamsResponse{Teams: teams})
}

func (s *Simulator) getTeam(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "invalid team id"})
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.teams {
		if t.ID == id {
			writeJSON(w, http.StatusOK, t)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]any{"message": "team not found"})
}

func (s *Simulator) listScorers(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	s.mu.RLock()
	scorers := append([]footballdata.Scorer(nil), s.scorers...)
	s.mu.RUnlock()

	if limit > 0 && limit < len(scorers) {
		scorers = scorers[:limit]
	}
	writeJSON(w, http.StatusOK, footballdata.ScorersResponse{Scorers: scorers})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
