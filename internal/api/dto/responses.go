package dto

import (
	"github.com/radieske/footy-predictor/internal/footballdata"
)

// Formatos de resposta da API pública. Seguem o contrato consumido
// pelo webapp: envelopes {"matches": [...]}, {"prediction": {...}} etc.

type Team struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Crest string `json:"crest"`
}

type TeamDetail struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
	Crest     string `json:"crest"`
	Venue     string `json:"venue"`
}

type Score struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

type Match struct {
	ID       int64  `json:"id"`
	HomeTeam Team   `json:"home_team"`
	AwayTeam Team   `json:"away_team"`
	Date     string `json:"date"`
	Status   string `json:"status"`
	Matchday int    `json:"matchday"`
	Score    Score  `json:"score"`
}

type StandingRow struct {
	Position     int    `json:"position"`
	Team         Team   `json:"team"`
	Points       int    `json:"points"`
	Played       int    `json:"played"`
	Won          int    `json:"won"`
	Drawn        int    `json:"drawn"`
	Lost         int    `json:"lost"`
	GoalsFor     int    `json:"goals_for"`
	GoalsAgainst int    `json:"goals_against"`
	GoalDiff     int    `json:"goal_diff"`
	Form         string `json:"form"`
}

type Player struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Nationality string `json:"nationality"`
}

type Scorer struct {
	Player    Player `json:"player"`
	Team      Team   `json:"team"`
	Goals     int    `json:"goals"`
	Assists   *int   `json:"assists"`
	Penalties *int   `json:"penalties"`
}

// TeamStats resume a situação de um time: linha da tabela + forma recente.
type TeamStats struct {
	Team         Team    `json:"team"`
	Position     int     `json:"position"`
	Points       int     `json:"points"`
	Played       int     `json:"played"`
	Won          int     `json:"won"`
	Drawn        int     `json:"drawn"`
	Lost         int     `json:"lost"`
	GoalsFor     int     `json:"goals_for"`
	GoalsAgainst int     `json:"goals_against"`
	GoalDiff     int     `json:"goal_diff"`
	Form         float64 `json:"form"`
}

// FromProviderMatch converte a partida do provedor pro formato da API.
func FromProviderMatch(m footballdata.Match) Match {
	return Match{
		ID:       m.ID,
		HomeTeam: Team{ID: m.HomeTeam.ID, Name: m.HomeTeam.Name, Crest: m.HomeTeam.Crest},
		AwayTeam: Team{ID: m.AwayTeam.ID, Name: m.AwayTeam.Name, Crest: m.AwayTeam.Crest},
		Date:     m.UTCDate.UTC().Format("2006-01-02T15:04:05Z"),
		Status:   m.Status,
		Matchday: m.Matchday,
		Score:    Score{Home: m.Score.FullTime.Home, Away: m.Score.FullTime.Away},
	}
}

// FromProviderMatches converte a lista, nunca retornando nil.
func FromProviderMatches(ms []footballdata.Match) []Match {
	out := make([]Match, 0, len(ms))
	for _, m := range ms {
		out = append(out, FromProviderMatch(m))
	}
	return out
}

// FromTableRow converte uma linha da classificação.
func FromTableRow(r footballdata.TableRow) StandingRow {
	return StandingRow{
		Position:     r.Position,
		Team:         Team{ID: r.Team.ID, Name: r.Team.Name, Crest: r.Team.Crest},
		Points:       r.Points,
		Played:       r.PlayedGames,
		Won:          r.Won,
		Drawn:        r.Draw,
		Lost:         r.Lost,
		GoalsFor:     r.GoalsFor,
		GoalsAgainst: r.GoalsAgainst,
		GoalDiff:     r.GoalDifference,
		Form:         r.Form,
	}
}
