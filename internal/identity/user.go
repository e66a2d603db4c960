package identity

import "time"

// User é o registro público de um usuário (nunca carrega o hash de senha).
type User struct {
	ID                 string    `json:"id"`
	Username           string    `json:"username"`
	Email              string    `json:"email"`
	PredictionsCount   int       `json:"predictions_count"`
	CorrectPredictions int       `json:"correct_predictions"`
	CreatedAt          time.Time `json:"created_at"`
}
