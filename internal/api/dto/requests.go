package dto

import "encoding/json"

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type PredictRequest struct {
	HomeTeamID int64 `json:"home_team_id"`
	AwayTeamID int64 `json:"away_team_id"`
}

type SavePredictionRequest struct {
	MatchID         int64           `json:"match_id"`
	HomeTeam        string          `json:"home_team"`
	AwayTeam        string          `json:"away_team"`
	ModelPrediction json.RawMessage `json:"model_prediction"`
	UserPrediction  string          `json:"user_prediction"` // "home" | "draw" | "away"
}
