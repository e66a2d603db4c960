package footballdata

import "time"

// Tipos de resposta da API football-data.org v4.
// Somente os campos consumidos pelos serviços são mapeados.

type TeamRef struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Crest string `json:"crest"`
}

type Team struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	Crest     string `json:"crest"`
	Venue     string `json:"venue"`
}

type FullTime struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

type Score struct {
	Winner   string   `json:"winner"`
	FullTime FullTime `json:"fullTime"`
}

type Match struct {
	ID       int64     `json:"id"`
	UTCDate  time.Time `json:"utcDate"`
	Status   string    `json:"status"` // SCHEDULED, TIMED, IN_PLAY, PAUSED, FINISHED, ...
	Matchday int       `json:"matchday"`
	HomeTeam TeamRef   `json:"homeTeam"`
	AwayTeam TeamRef   `json:"awayTeam"`
	Score    Score     `json:"score"`
}

type MatchesResponse struct {
	Matches []Match `json:"matches"`
}

type TableRow struct {
	Position       int     `json:"position"`
	Team           TeamRef `json:"team"`
	PlayedGames    int     `json:"playedGames"`
	Won            int     `json:"won"`
	Draw           int     `json:"draw"`
	Lost           int     `json:"lost"`
	Points         int     `json:"points"`
	GoalsFor       int     `json:"goalsFor"`
	GoalsAgainst   int     `json:"goalsAgainst"`
	GoalDifference int     `json:"goalDifference"`
	Form           string  `json:"form"`
}

type Standing struct {
	Type  string     `json:"type"` // TOTAL, HOME, AWAY
	Table []TableRow `json:"table"`
}

type StandingsResponse struct {
	Standings []Standing `json:"standings"`
}

// Table retorna a tabela TOTAL; se ausente, a primeira disponível.
func (r StandingsResponse) Table() []TableRow {
	for _, s := range r.Standings {
		if s.Type == "TOTAL" {
			return s.Table
		}
	}
	if len(r.Standings) > 0 {
		return r.Standings[0].Table
	}
	return nil
}

type TeamsResponse struct {
	Teams []Team `json:"teams"`
}

type Player struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Nationality string `json:"nationality"`
}

type Scorer struct {
	Player    Player  `json:"player"`
	Team      TeamRef `json:"team"`
	Goals     int     `json:"goals"`
	Assists   *int    `json:"assists"`
	Penalties *int    `json:"penalties"`
}

type ScorersResponse struct {
	Scorers []Scorer `json:"scorers"`
}
