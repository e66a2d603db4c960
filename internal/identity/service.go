package identity

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrMissingFields      = errors.New("missing required fields")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
	ErrUserExists         = errors.New("username or email already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
)

// Store é o recorte de persistência que o serviço de identidade usa.
// Implementado por *repo.Postgres.
type Store interface {
	Create(ctx context.Context, username, email, passwordHash string) (User, error)
	GetByUsername(ctx context.Context, username string) (User, string, error)
	GetByID(ctx context.Context, id string) (User, error)
}

// Service concentra registro, login e consulta do usuário corrente.
type Service struct {
	Store  Store
	Tokens *Issuer
}

func NewService(store Store, tokens *Issuer) *Service {
	return &Service{Store: store, Tokens: tokens}
}

// Register cria o usuário e devolve o token de acesso inicial.
func (s *Service) Register(ctx context.Context, username, email, password string) (User, string, error) {
	if username == "" || email == "" || password == "" {
		return User{}, "", ErrMissingFields
	}
	if len(password) < 6 {
		return User{}, "", ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, "", err
	}

	user, err := s.Store.Create(ctx, username, email, string(hash))
	if err != nil {
		return User{}, "", err
	}

	token, err := s.Tokens.Issue(user.ID)
	if err != nil {
		return User{}, "", err
	}
	return user, token, nil
}

// Login autentica por usuário e senha.
// Usuário inexistente e senha errada retornam o mesmo erro.
func (s *Service) Login(ctx context.Context, username, password string) (User, string, error) {
	if username == "" || password == "" {
		return User{}, "", ErrMissingFields
	}

	user, hash, err := s.Store.GetByUsername(ctx, username)
	if err != nil {
		return User{}, "", ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return User{}, "", ErrInvalidCredentials
	}

	token, err := s.Tokens.Issue(user.ID)
	if err != nil {
		return User{}, "", err
	}
	return user, token, nil
}

// Me retorna o usuário identificado pelo token corrente.
func (s *Service) Me(ctx context.Context, userID string) (User, error) {
	return s.Store.GetByID(ctx, userID)
}
