package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"math"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/radieske/footy-predictor/internal/predictions"
	"github.com/radieske/footy-predictor/pkg/contracts/events"
)

// Postgres implementa a persistência de palpites de usuários.
type Postgres struct{ db *sql.DB }

func NewPostgres(db *sql.DB) *Postgres { return &Postgres{db: db} }

// Save insere um palpite; já existir para o mesmo (user, fixture) vira ErrAlreadyPredicted.
func (p *Postgres) Save(ctx context.Context, up predictions.UserPrediction) (predictions.UserPrediction, error) {
	up.ID = uuid.NewString()

	err := p.db.QueryRowContext(ctx, `
		INSERT INTO user_predictions (id, user_id, fixture_id, home_team, away_team, model_prediction, user_pick)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING created_at`,
		up.ID, up.UserID, up.FixtureID, up.HomeTeam, up.AwayTeam, []byte(up.ModelPrediction), up.UserPick,
	).Scan(&up.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return predictions.UserPrediction{}, predictions.ErrAlreadyPredicted
		}
		return predictions.UserPrediction{}, err
	}
	return up, nil
}

const predictionColumns = `id, user_id, fixture_id, home_team, away_team, model_prediction, user_pick,
	actual_result, actual_score, is_correct, created_at`

func scanPrediction(row interface{ Scan(...any) error }) (predictions.UserPrediction, error) {
	var up predictions.UserPrediction
	var model, score []byte
	err := row.Scan(&up.ID, &up.UserID, &up.FixtureID, &up.HomeTeam, &up.AwayTeam, &model,
		&up.UserPick, &up.ActualResult, &score, &up.IsCorrect, &up.CreatedAt)
	if err != nil {
		return predictions.UserPrediction{}, err
	}
	up.ModelPrediction = model
	if len(score) > 0 {
		var s predictions.ActualScore
		if json.Unmarshal(score, &s) == nil {
			up.ActualScore = &s
		}
	}
	return up, nil
}

// ListByUser retorna o histórico do usuário, mais recente primeiro.
func (p *Postgres) ListByUser(ctx context.Context, userID string, limit int) ([]predictions.UserPrediction, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT `+predictionColumns+`
		FROM user_predictions WHERE user_id=$1
		ORDER BY created_at DESC LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []predictions.UserPrediction{}
	for rows.Next() {
		up, err := scanPrediction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, up)
	}
	return out, rows.Err()
}

// GetByFixture retorna o palpite do usuário para uma partida, se houver.
func (p *Postgres) GetByFixture(ctx context.Context, userID string, fixtureID int64) (predictions.UserPrediction, error) {
	row := p.db.QueryRowContext(ctx, `
		SELECT `+predictionColumns+`
		FROM user_predictions WHERE user_id=$1 AND fixture_id=$2`,
		userID, fixtureID)

	up, err := scanPrediction(row)
	if err == sql.ErrNoRows {
		return predictions.UserPrediction{}, predictions.ErrNotFound
	}
	return up, err
}

// Leaderboard retorna o ranking por acurácia e, em empate, por volume de palpites.
func (p *Postgres) Leaderboard(ctx context.Context, limit int) ([]predictions.LeaderboardEntry, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT username, predictions_count, correct_predictions,
		       correct_predictions::float / predictions_count * 100 AS accuracy
		FROM users
		WHERE predictions_count > 0
		ORDER BY accuracy DESC, predictions_count DESC
		LIMIT $1`,
		limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []predictions.LeaderboardEntry{}
	for rows.Next() {
		var e predictions.LeaderboardEntry
		if err := rows.Scan(&e.Username, &e.PredictionsCount, &e.CorrectPredictions, &e.Accuracy); err != nil {
			return nil, err
		}
		e.Accuracy = math.Round(e.Accuracy*10) / 10
		out = append(out, e)
	}
	return out, rows.Err()
}

// SettleFixture aplica o resultado final a todos os palpites pendentes da partida
// e atualiza os contadores dos usuários, tudo na mesma transação.
func (p *Postgres) SettleFixture(ctx context.Context, res events.MatchResult) ([]predictions.Settled, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	actual := res.Winner()
	score, _ := json.Marshal(predictions.ActualScore{Home: res.HomeGoals, Away: res.AwayGoals})

	rows, err := tx.QueryContext(ctx, `
		SELECT id, user_id, user_pick
		FROM user_predictions
		WHERE fixture_id=$1 AND actual_result IS NULL
		FOR UPDATE`,
		res.FixtureID)
	if err != nil {
		return nil, err
	}

	var pending []predictions.Settled
	for rows.Next() {
		var s predictions.Settled
		var pick string
		if err := rows.Scan(&s.PredictionID, &s.UserID, &pick); err != nil {
			rows.Close()
			return nil, err
		}
		s.FixtureID = res.FixtureID
		s.ActualResult = actual
		s.IsCorrect = pick == actual
		pending = append(pending, s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, s := range pending {
		if _, err := tx.ExecContext(ctx, `
			UPDATE user_predictions
			SET actual_result=$1, actual_score=$2, is_correct=$3
			WHERE id=$4`,
			actual, score, s.IsCorrect, s.PredictionID); err != nil {
			return nil, err
		}

		correct := 0
		if s.IsCorrect {
			correct = 1
		}
		if _, err := tx.ExecContext(ctx, `
			UPDATE users
			SET predictions_count = predictions_count + 1,
			    correct_predictions = correct_predictions + $1
			WHERE id=$2`,
			correct, s.UserID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return pending, nil
}
