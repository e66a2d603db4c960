package client

import (
	"encoding/json"
	"time"
)

// Tipos consumidos da API pública, do ponto de vista do cliente.

type Team struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Crest string `json:"crest"`
}

type Score struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

type Match struct {
	ID       int64     `json:"id"`
	HomeTeam Team      `json:"home_team"`
	AwayTeam Team      `json:"away_team"`
	Date     time.Time `json:"date"`
	Status   string    `json:"status"`
	Matchday int       `json:"matchday"`
	Score    Score     `json:"score"`
}

type Scoreline struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

type Probabilities struct {
	HomeWin float64 `json:"home_win"`
	Draw    float64 `json:"draw"`
	AwayWin float64 `json:"away_win"`
}

type Prediction struct {
	HomeTeam         string        `json:"home_team"`
	AwayTeam         string        `json:"away_team"`
	PredictedOutcome string        `json:"predicted_outcome"` // HOME_WIN | AWAY_WIN | DRAW
	Confidence       float64       `json:"confidence"`
	PredictedScore   *Scoreline    `json:"predicted_score"`
	Probabilities    Probabilities `json:"probabilities"`
}

type StandingRow struct {
	Position int     `json:"position"`
	Team     Team    `json:"team"`
	Points   int     `json:"points"`
	Played   int     `json:"played"`
	Won      int     `json:"won"`
	Drawn    int     `json:"drawn"`
	Lost     int     `json:"lost"`
	GoalDiff int     `json:"goal_diff"`
	Form     string  `json:"form"`
}

type TeamDetail struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
	Crest     string `json:"crest"`
	Venue     string `json:"venue"`
}

type TeamStats struct {
	Team     Team    `json:"team"`
	Position int     `json:"position"`
	Points   int     `json:"points"`
	Played   int     `json:"played"`
	GoalDiff int     `json:"goal_diff"`
	Form     float64 `json:"form"`
}

type LeaderboardEntry struct {
	Username           string  `json:"username"`
	PredictionsCount   int     `json:"predictions_count"`
	CorrectPredictions int     `json:"correct_predictions"`
	Accuracy           float64 `json:"accuracy"`
}

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type AuthResponse struct {
	Message     string `json:"message"`
	User        User   `json:"user"`
	AccessToken string `json:"access_token"`
}

type CheckPrediction struct {
	HasPredicted bool            `json:"has_predicted"`
	Prediction   json.RawMessage `json:"prediction"`
}
