package predictor

// Resultados possíveis de uma partida.
const (
	OutcomeHomeWin = "HOME_WIN"
	OutcomeAwayWin = "AWAY_WIN"
	OutcomeDraw    = "DRAW"
)

type Probabilities struct {
	HomeWin float64 `json:"home_win"`
	Draw    float64 `json:"draw"`
	AwayWin float64 `json:"away_win"`
}

type Scoreline struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// SideStats resume a situação de um dos lados na tabela, exposta junto da previsão.
type SideStats struct {
	Position     int     `json:"position"`
	Points       int     `json:"points"`
	Form         float64 `json:"form"`
	GoalsFor     int     `json:"goals_for"`
	GoalsAgainst int     `json:"goals_against"`
	GoalDiff     int     `json:"goal_diff"`
}

type TeamStats struct {
	Home SideStats `json:"home"`
	Away SideStats `json:"away"`
}

// Prediction é o resultado do modelo para uma partida.
// As probabilidades somam ~100 (arredondamento em uma casa).
type Prediction struct {
	HomeTeam         string        `json:"home_team"`
	AwayTeam         string        `json:"away_team"`
	Probabilities    Probabilities `json:"probabilities"`
	PredictedOutcome string        `json:"predicted_outcome"`
	Confidence       float64       `json:"confidence"`
	PredictedScore   *Scoreline    `json:"predicted_score"`
	TeamStats        TeamStats     `json:"team_stats"`
}

// MatchPrediction acrescenta os metadados da partida, usado no /predict/upcoming.
type MatchPrediction struct {
	Prediction
	MatchID    int64  `json:"match_id"`
	HomeTeamID int64  `json:"home_team_id"`
	AwayTeamID int64  `json:"away_team_id"`
	MatchDate  string `json:"match_date"`
	Matchday   int    `json:"matchday"`
	Status     string `json:"status"`
}
