package footballdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client consome a API pública football-data.org v4.
// Autenticação via header X-Auth-Token; a cota do free tier é
// controlada externamente pelo Quota (opcional).
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
	Quota   *Quota // nil = sem controle de cota
}

func New(baseURL, token string) *Client {
	return &Client{
		BaseURL: baseURL,
		Token:   token,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

// MatchFilter agrupa os filtros aceitos pelos endpoints de partidas.
type MatchFilter struct {
	Matchday int
	Status   string // SCHEDULED, FINISHED, IN_PLAY, ...
	DateFrom string // YYYY-MM-DD
	DateTo   string
	Limit    int
}

func (f MatchFilter) query() url.Values {
	q := url.Values{}
	if f.Matchday > 0 {
		q.Set("matchday", strconv.Itoa(f.Matchday))
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.DateFrom != "" {
		q.Set("dateFrom", f.DateFrom)
	}
	if f.DateTo != "" {
		q.Set("dateTo", f.DateTo)
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	return q
}

// Standings retorna a classificação da competição (ex: "PD").
func (c *Client) Standings(ctx context.Context, competition string) (StandingsResponse, error) {
	var out StandingsResponse
	err := c.get(ctx, "/competitions/"+competition+"/standings", nil, &out)
	return out, err
}

// Matches retorna as partidas da competição, com filtros opcionais.
func (c *Client) Matches(ctx context.Context, competition string, f MatchFilter) (MatchesResponse, error) {
	var out MatchesResponse
	err := c.get(ctx, "/competitions/"+competition+"/matches", f.query(), &out)
	return out, err
}

// Match retorna uma partida específica.
func (c *Client) Match(ctx context.Context, matchID int64) (Match, error) {
	var out Match
	err := c.get(ctx, fmt.Sprintf("/matches/%d", matchID), nil, &out)
	return out, err
}

// Teams retorna os times da competição.
func (c *Client) Teams(ctx context.Context, competition string) (TeamsResponse, error) {
	var out TeamsResponse
	err := c.get(ctx, "/competitions/"+competition+"/teams", nil, &out)
	return out, err
}

// Team retorna os detalhes de um time.
func (c *Client) Team(ctx context.Context, teamID int64) (Team, error) {
	var out Team
	err := c.get(ctx, fmt.Sprintf("/teams/%d", teamID), nil, &out)
	return out, err
}

// TeamMatches retorna as partidas de um time, com filtros opcionais.
func (c *Client) TeamMatches(ctx context.Context, teamID int64, f MatchFilter) (MatchesResponse, error) {
	var out MatchesResponse
	err := c.get(ctx, fmt.Sprintf("/teams/%d/matches", teamID), f.query(), &out)
	return out, err
}

// Scorers retorna os artilheiros da competição.
func (c *Client) Scorers(ctx context.Context, competition string, limit int) (ScorersResponse, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var out ScorersResponse
	err := c.get(ctx, "/competitions/"+competition+"/scorers", q, &out)
	return out, err
}

func (c *Client) get(ctx context.Context, path string, q url.Values, dst any) error {
	if c.Quota != nil {
		if err := c.Quota.Allow(ctx); err != nil {
			return err
		}
	}

	u := c.BaseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("X-Auth-Token", c.Token)

	res, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		return fmt.Errorf("football-data %s: http %d", path, res.StatusCode)
	}

	return json.NewDecoder(res.Body).Decode(dst)
}
