package predictor

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/radieske/footy-predictor/internal/footballdata"
)

// Datasource é o recorte do provedor que o modelo precisa.
// Implementado por *footballdata.Client.
type Datasource interface {
	Standings(ctx context.Context, competition string) (footballdata.StandingsResponse, error)
	Matches(ctx context.Context, competition string, f footballdata.MatchFilter) (footballdata.MatchesResponse, error)
	TeamMatches(ctx context.Context, teamID int64, f footballdata.MatchFilter) (footballdata.MatchesResponse, error)
}

// Engine calcula previsões a partir da classificação e da forma recente.
type Engine struct {
	Data        Datasource
	Competition string // ex: "PD"
	Log         *zap.Logger
}

func NewEngine(data Datasource, competition string, log *zap.Logger) *Engine {
	return &Engine{Data: data, Competition: competition, Log: log}
}

// teamData agrupa os fatores usados no cálculo de força.
type teamData struct {
	name         string
	position     int
	points       int
	played       int
	goalsFor     int
	goalsAgainst int
	goalDiff     int
	form         float64
}

// PredictMatch gera a previsão para um confronto entre dois times da competição.
func (e *Engine) PredictMatch(ctx context.Context, homeTeamID, awayTeamID int64) (Prediction, error) {
	standings, err := e.Data.Standings(ctx, e.Competition)
	if err != nil {
		return Prediction{}, err
	}
	table := standings.Table()

	home := teamFromTable(table, homeTeamID)
	away := teamFromTable(table, awayTeamID)

	// Forma recente: últimas 5 partidas encerradas. Falha do provedor
	// não impede a previsão; cai no valor neutro.
	home.form = e.recentForm(ctx, homeTeamID)
	away.form = e.recentForm(ctx, awayTeamID)

	return calculate(home, away), nil
}

// PredictUpcoming gera previsões para todas as partidas agendadas da competição.
// Usa forma neutra pra não estourar a cota do provedor com uma chamada por time.
func (e *Engine) PredictUpcoming(ctx context.Context) ([]MatchPrediction, error) {
	standings, err := e.Data.Standings(ctx, e.Competition)
	if err != nil {
		return nil, err
	}
	table := standings.Table()

	matches, err := e.Data.Matches(ctx, e.Competition, footballdata.MatchFilter{Status: "SCHEDULED"})
	if err != nil {
		return nil, err
	}

	out := make([]MatchPrediction, 0, len(matches.Matches))
	for _, m := range matches.Matches {
		if m.HomeTeam.ID == 0 || m.AwayTeam.ID == 0 {
			continue
		}

		home := teamFromTable(table, m.HomeTeam.ID)
		away := teamFromTable(table, m.AwayTeam.ID)
		home.form, away.form = 50, 50

		p := calculate(home, away)
		out = append(out, MatchPrediction{
			Prediction: p,
			MatchID:    m.ID,
			HomeTeamID: m.HomeTeam.ID,
			AwayTeamID: m.AwayTeam.ID,
			MatchDate:  m.UTCDate.Format(time.RFC3339),
			Matchday:   m.Matchday,
			Status:     m.Status,
		})
	}

	return out, nil
}

func (e *Engine) recentForm(ctx context.Context, teamID int64) float64 {
	res, err := e.Data.TeamMatches(ctx, teamID, footballdata.MatchFilter{Status: "FINISHED", Limit: 5})
	if err != nil {
		if e.Log != nil {
			e.Log.Warn("recent form unavailable, using neutral", zap.Int64("team_id", teamID), zap.Error(err))
		}
		return 50
	}
	return Form(res.Matches, teamID)
}

// teamFromTable procura o time na tabela; ausente, assume meio de tabela sem pontos.
func teamFromTable(table []footballdata.TableRow, teamID int64) teamData {
	for _, row := range table {
		if row.Team.ID == teamID {
			return teamData{
				name:         row.Team.Name,
				position:     row.Position,
				points:       row.Points,
				played:       row.PlayedGames,
				goalsFor:     row.GoalsFor,
				goalsAgainst: row.GoalsAgainst,
				goalDiff:     row.GoalDifference,
			}
		}
	}
	return teamData{name: "Unknown", position: 10}
}

// calculate combina força dos dois lados em probabilidades, resultado e placar.
func calculate(home, away teamData) Prediction {
	homeStrength := strength(home, true)
	awayStrength := strength(away, false)

	drawFactor := 0.25
	if math.Abs(homeStrength-awayStrength) < 0.15 {
		drawFactor += 0.1
	}
	total := homeStrength + awayStrength + drawFactor

	homeWin := round1(homeStrength / total * 100)
	awayWin := round1(awayStrength / total * 100)
	draw := round1(100 - homeWin - awayWin)

	var outcome string
	var confidence float64
	switch {
	case homeWin > awayWin && homeWin > draw:
		outcome, confidence = OutcomeHomeWin, homeWin
	case awayWin > homeWin && awayWin > draw:
		outcome, confidence = OutcomeAwayWin, awayWin
	default:
		outcome, confidence = OutcomeDraw, draw
	}

	score := scoreline(home, away, outcome)

	return Prediction{
		HomeTeam:         home.name,
		AwayTeam:         away.name,
		Probabilities:    Probabilities{HomeWin: homeWin, Draw: draw, AwayWin: awayWin},
		PredictedOutcome: outcome,
		Confidence:       confidence,
		PredictedScore:   &score,
		TeamStats: TeamStats{
			Home: sideStats(home),
			Away: sideStats(away),
		},
	}
}

func sideStats(d teamData) SideStats {
	return SideStats{
		Position:     d.position,
		Points:       d.points,
		Form:         round1(d.form),
		GoalsFor:     d.goalsFor,
		GoalsAgainst: d.goalsAgainst,
		GoalDiff:     d.goalDiff,
	}
}

// strength pondera posição, aproveitamento, saldo de gols e forma.
// Mandante leva o bônus clássico de 15%.
func strength(d teamData, isHome bool) float64 {
	base := 1.0

	positionFactor := float64(21-d.position) / 20
	base *= 0.6 + 0.8*positionFactor

	played := d.played
	if played == 0 {
		played = 1
	}
	ppg := float64(d.points) / float64(played)
	base *= 0.7 + 0.6*(ppg/3.0)

	gd := (float64(d.goalDiff) + 40) / 80
	gd = math.Max(0.2, math.Min(1.0, gd))
	base *= 0.8 + 0.4*gd

	base *= 0.8 + 0.4*(d.form/100)

	if isHome {
		base *= 1.15
	}

	return base
}

// scoreline estima um placar coerente com o resultado previsto,
// partindo da média de gols marcados de cada lado.
func scoreline(home, away teamData, outcome string) Scoreline {
	playedHome := home.played
	if playedHome == 0 {
		playedHome = 1
	}
	playedAway := away.played
	if playedAway == 0 {
		playedAway = 1
	}

	homeExpected := float64(home.goalsFor) / float64(playedHome) * 1.1
	awayExpected := float64(away.goalsFor) / float64(playedAway) * 0.9

	homeGoals := int(math.Max(0, math.Round(homeExpected)))
	awayGoals := int(math.Max(0, math.Round(awayExpected)))

	switch outcome {
	case OutcomeHomeWin:
		if homeGoals <= awayGoals {
			homeGoals = awayGoals + 1
		}
	case OutcomeAwayWin:
		if awayGoals <= homeGoals {
			awayGoals = homeGoals + 1
		}
	case OutcomeDraw:
		avg := int(math.Round(float64(homeGoals+awayGoals) / 2))
		homeGoals, awayGoals = avg, avg
	}

	// Placar realista: trava em 0..5 e garante coerência depois do corte
	homeGoals = clamp(homeGoals, 0, 5)
	awayGoals = clamp(awayGoals, 0, 5)

	switch {
	case outcome == OutcomeHomeWin && homeGoals <= awayGoals:
		homeGoals = awayGoals + 1
	case outcome == OutcomeAwayWin && awayGoals <= homeGoals:
		awayGoals = homeGoals + 1
	case outcome == OutcomeDraw:
		awayGoals = homeGoals
	}

	return Scoreline{Home: homeGoals, Away: awayGoals}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
