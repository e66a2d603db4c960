package events

import "time"

// Evento emitido pelo settlement-worker após liquidar um palpite de usuário.
type PredictionSettled struct {
	PredictionID string    `json:"predictionId"`
	UserID       string    `json:"userId"`
	FixtureID    int64     `json:"fixtureId"`
	ActualResult string    `json:"actualResult"` // "home" | "draw" | "away"
	IsCorrect    bool      `json:"isCorrect"`
	Ts           time.Time `json:"ts"`
}
