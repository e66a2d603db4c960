package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// TokenSource fornece a credencial corrente do usuário.
// nil (ou token vazio) significa chamada sem autenticação; o cliente
// não valida presença nem expiração, só repassa.
type TokenSource interface {
	Token() string
}

// StaticToken é um TokenSource fixo, útil em testes e scripts.
type StaticToken string

func (s StaticToken) Token() string { return string(s) }

// Client consome a API pública do footy-predictor.
// Um método por endpoint; falhas de rede e status não-2xx sobem
// pro chamador sem tradução.
type Client struct {
	BaseURL string // ex: "http://localhost:8080/api"
	HTTP    *http.Client
	Creds   TokenSource
}

func New(baseURL string, creds TokenSource) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
		Creds:   creds,
	}
}

// Matches retorna a lista de partidas. Campo ausente vira lista vazia, não erro.
func (c *Client) Matches(ctx context.Context) ([]Match, error) {
	var out struct {
		Matches []Match `json:"matches"`
	}
	if err := c.get(ctx, "/matches", &out); err != nil {
		return nil, err
	}
	if out.Matches == nil {
		return []Match{}, nil
	}
	return out.Matches, nil
}

// Fixtures retorna as próximas partidas, limitadas por limit (0 = default do servidor).
func (c *Client) Fixtures(ctx context.Context, limit int) ([]Match, error) {
	path := "/fixtures"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var out struct {
		Matches []Match `json:"matches"`
	}
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out.Matches, nil
}

func (c *Client) Standings(ctx context.Context) ([]StandingRow, error) {
	var out struct {
		Standings []StandingRow `json:"standings"`
	}
	err := c.get(ctx, "/standings", &out)
	return out.Standings, err
}

func (c *Client) Teams(ctx context.Context) ([]TeamDetail, error) {
	var out struct {
		Teams []TeamDetail `json:"teams"`
	}
	err := c.get(ctx, "/teams", &out)
	return out.Teams, err
}

func (c *Client) TeamStats(ctx context.Context, teamID int64) (TeamStats, error) {
	var out struct {
		Stats TeamStats `json:"stats"`
	}
	err := c.get(ctx, fmt.Sprintf("/teams/%d/stats", teamID), &out)
	return out.Stats, err
}

// Predict pede ao modelo a previsão pro confronto informado.
func (c *Client) Predict(ctx context.Context, homeTeamID, awayTeamID int64) (Prediction, error) {
	body := map[string]int64{
		"home_team_id": homeTeamID,
		"away_team_id": awayTeamID,
	}
	var out struct {
		Prediction Prediction `json:"prediction"`
	}
	err := c.post(ctx, "/predict", body, &out)
	return out.Prediction, err
}

// SavePrediction registra o palpite do usuário (requer credencial).
// O corpo é repassado como veio do chamador.
func (c *Client) SavePrediction(ctx context.Context, body any) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.post(ctx, "/predictions", body, &out)
	return out, err
}

func (c *Client) MyPredictions(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.get(ctx, "/predictions", &out)
	return out, err
}

func (c *Client) CheckPrediction(ctx context.Context, fixtureID int64) (CheckPrediction, error) {
	var out CheckPrediction
	err := c.get(ctx, fmt.Sprintf("/predictions/check/%d", fixtureID), &out)
	return out, err
}

func (c *Client) Leaderboard(ctx context.Context) ([]LeaderboardEntry, error) {
	var out struct {
		Leaderboard []LeaderboardEntry `json:"leaderboard"`
	}
	err := c.get(ctx, "/leaderboard", &out)
	return out.Leaderboard, err
}

func (c *Client) Register(ctx context.Context, username, email, password string) (AuthResponse, error) {
	body := map[string]string{"username": username, "email": email, "password": password}
	var out AuthResponse
	err := c.post(ctx, "/auth/register", body, &out)
	return out, err
}

func (c *Client) Login(ctx context.Context, username, password string) (AuthResponse, error) {
	body := map[string]string{"username": username, "password": password}
	var out AuthResponse
	err := c.post(ctx, "/auth/login", body, &out)
	return out, err
}

func (c *Client) Me(ctx context.Context) (User, error) {
	var out struct {
		User User `json:"user"`
	}
	err := c.get(ctx, "/auth/me", &out)
	return out.User, err
}

func (c *Client) Health(ctx context.Context) error {
	return c.get(ctx, "/health", &json.RawMessage{})
}

func (c *Client) get(ctx context.Context, path string, dst any) error {
	return c.do(ctx, http.MethodGet, path, nil, dst)
}

func (c *Client) post(ctx context.Context, path string, body any, dst any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, b, dst)
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, dst any) error {
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	// Credencial é lida a cada chamada; fonte ausente ou vazia segue sem header
	if c.Creds != nil {
		if token := c.Creds.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	res, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		return fmt.Errorf("api %s: http %d", path, res.StatusCode)
	}

	return json.NewDecoder(res.Body).Decode(dst)
}
