package predictions

import (
	"encoding/json"
	"errors"
	"time"
)

var (
	ErrAlreadyPredicted = errors.New("already predicted this match")
	ErrInvalidPick      = errors.New("invalid prediction value")
	ErrNotFound         = errors.New("prediction not found")
)

// Palpites aceitos do usuário.
const (
	PickHome = "home"
	PickDraw = "draw"
	PickAway = "away"
)

func ValidPick(p string) bool {
	return p == PickHome || p == PickDraw || p == PickAway
}

// ActualScore é o placar final registrado na liquidação.
type ActualScore struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// UserPrediction é o palpite de um usuário para uma partida.
// Os campos de liquidação ficam nulos até a partida terminar.
type UserPrediction struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	FixtureID       int64           `json:"fixture_id"`
	HomeTeam        string          `json:"home_team"`
	AwayTeam        string          `json:"away_team"`
	ModelPrediction json.RawMessage `json:"model_prediction,omitempty"`
	UserPick        string          `json:"user_prediction"`
	ActualResult    *string         `json:"actual_result"`
	ActualScore     *ActualScore    `json:"actual_score,omitempty"`
	IsCorrect       *bool           `json:"is_correct"`
	CreatedAt       time.Time       `json:"created_at"`
}

// LeaderboardEntry é uma linha do ranking de acertos.
type LeaderboardEntry struct {
	Username           string  `json:"username"`
	PredictionsCount   int     `json:"predictions_count"`
	CorrectPredictions int     `json:"correct_predictions"`
	Accuracy           float64 `json:"accuracy"`
}

// Settled descreve um palpite liquidado, usado pra emitir eventos.
type Settled struct {
	PredictionID string
	UserID       string
	FixtureID    int64
	ActualResult string
	IsCorrect    bool
}
