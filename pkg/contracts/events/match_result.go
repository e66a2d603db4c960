package events

import "time"

// Evento publicado no tópico "match_results" pelo result-poller
// quando uma partida termina no provedor.
type MatchResult struct {
	FixtureID  int64     `json:"fixture_id"`
	HomeTeam   string    `json:"home_team"`
	AwayTeam   string    `json:"away_team"`
	HomeGoals  int       `json:"home_goals"`
	AwayGoals  int       `json:"away_goals"`
	Status     string    `json:"status"` // "FINISHED"
	FinishedAt time.Time `json:"finished_at"`
	Source     string    `json:"source"` // "result-poller"
}

// Winner retorna "home", "away" ou "draw" conforme o placar final.
func (m MatchResult) Winner() string {
	switch {
	case m.HomeGoals > m.AwayGoals:
		return "home"
	case m.AwayGoals > m.HomeGoals:
		return "away"
	default:
		return "draw"
	}
}
