package repo

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/radieske/footy-predictor/internal/identity"
)

// Postgres implementa a persistência de usuários.
type Postgres struct{ db *sql.DB }

func NewPostgres(db *sql.DB) *Postgres { return &Postgres{db: db} }

const userColumns = `id, username, email, predictions_count, correct_predictions, created_at`

// Create insere o usuário; username/email duplicados viram ErrUserExists.
func (p *Postgres) Create(ctx context.Context, username, email, passwordHash string) (identity.User, error) {
	id := uuid.NewString()

	var u identity.User
	err := p.db.QueryRowContext(ctx, `
		INSERT INTO users (id, username, email, password_hash)
		VALUES ($1,$2,$3,$4)
		RETURNING `+userColumns,
		id, username, email, passwordHash,
	).Scan(&u.ID, &u.Username, &u.Email, &u.PredictionsCount, &u.CorrectPredictions, &u.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return identity.User{}, identity.ErrUserExists
		}
		return identity.User{}, err
	}
	return u, nil
}

// GetByUsername retorna o usuário e o hash de senha para autenticação.
func (p *Postgres) GetByUsername(ctx context.Context, username string) (identity.User, string, error) {
	var u identity.User
	var hash string
	err := p.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`, password_hash FROM users WHERE username=$1`,
		username,
	).Scan(&u.ID, &u.Username, &u.Email, &u.PredictionsCount, &u.CorrectPredictions, &u.CreatedAt, &hash)
	if err == sql.ErrNoRows {
		return identity.User{}, "", identity.ErrUserNotFound
	}
	if err != nil {
		return identity.User{}, "", err
	}
	return u, hash, nil
}

// GetByID retorna o usuário pelo id.
func (p *Postgres) GetByID(ctx context.Context, id string) (identity.User, error) {
	var u identity.User
	err := p.db.QueryRowContext(ctx, `
		SELECT `+userColumns+` FROM users WHERE id=$1`,
		id,
	).Scan(&u.ID, &u.Username, &u.Email, &u.PredictionsCount, &u.CorrectPredictions, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return identity.User{}, identity.ErrUserNotFound
	}
	return u, err
}
