package matchview

import (
	"fmt"
	"html/template"
	"io"
	"strconv"

	"github.com/radieske/footy-predictor/internal/client"
)

const dateLayout = "Mon, Jan 2, 15:04"

// Snapshot é o modelo de renderização da tela de partidas.
type Snapshot struct {
	State    State
	ErrorMsg string
	Cards    []Card
}

// Card é uma partida pronta pra exibir.
type Card struct {
	MatchID    int64
	Date       string
	HomeTeam   string
	AwayTeam   string
	Status     string
	Matchday   int
	HasScore   bool
	Score      string
	Pending    bool
	Prediction *Panel
}

// Panel é o painel de previsão de um card.
type Panel struct {
	Winner     string
	Confidence string
	Score      string
	Probs      string
}

// ButtonLabel é o rótulo do botão de previsão do card.
func (c Card) ButtonLabel() string {
	if c.Pending {
		return "Predicting..."
	}
	return "Get Prediction"
}

func buildCard(m client.Match) Card {
	card := Card{
		MatchID:  m.ID,
		Date:     m.Date.Format(dateLayout),
		HomeTeam: m.HomeTeam.Name,
		AwayTeam: m.AwayTeam.Name,
		Status:   m.Status,
		Matchday: m.Matchday,
	}
	if m.Score.Home != nil {
		away := 0
		if m.Score.Away != nil {
			away = *m.Score.Away
		}
		card.HasScore = true
		card.Score = fmt.Sprintf("%d - %d", *m.Score.Home, away)
	}
	return card
}

func buildPanel(m client.Match, p client.Prediction) *Panel {
	panel := &Panel{
		Confidence: "Confidence: " + formatPercent(p.Confidence) + "%",
		Probs: fmt.Sprintf("H: %s%% D: %s%% A: %s%%",
			formatPercent(p.Probabilities.HomeWin),
			formatPercent(p.Probabilities.Draw),
			formatPercent(p.Probabilities.AwayWin)),
	}

	switch p.PredictedOutcome {
	case "HOME_WIN":
		panel.Winner = m.HomeTeam.Name
	case "AWAY_WIN":
		panel.Winner = m.AwayTeam.Name
	default:
		panel.Winner = "Draw"
	}

	if p.PredictedScore != nil {
		panel.Score = fmt.Sprintf("Predicted: %d - %d", p.PredictedScore.Home, p.PredictedScore.Away)
	}
	return panel
}

// formatPercent imprime 62 como "62" e 62.5 como "62.5".
func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var pageTmpl = template.Must(template.New("matches").Parse(pageHTML))

// Render escreve a página da tela de partidas a partir do snapshot.
func Render(w io.Writer, snap Snapshot) error {
	return pageTmpl.Execute(w, snap)
}

const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>Footy Predictor</title>
  <style>
    body { font-family: sans-serif; background: #f4f4f4; margin: 0; padding: 1.5rem; }
    h1 { margin-top: 0; }
    .grid { display: grid; grid-template-columns: repeat(auto-fill, minmax(280px, 1fr)); gap: 1rem; }
    .card { background: #fff; border-radius: 8px; padding: 1rem; box-shadow: 0 1px 3px rgba(0,0,0,.15); }
    .date { color: #666; font-size: .85rem; }
    .teams { font-weight: bold; margin: .5rem 0; }
    .score { font-size: 1.2rem; }
    .panel { margin-top: .75rem; padding: .5rem; background: #eef6ee; border-radius: 6px; font-size: .9rem; }
    .error { color: #a00; }
    button { margin-top: .5rem; }
  </style>
</head>
<body>
  <h1>Footy Predictor</h1>
{{- if eq .State 0}}
  <p>Loading matches...</p>
{{- else if eq .State 1}}
  <p class="error">{{.ErrorMsg}}</p>
{{- else}}
  <div class="grid">
  {{- range .Cards}}
    <div class="card">
      <div class="date">{{.Date}} &middot; Matchday {{.Matchday}}</div>
      <div class="teams">{{.HomeTeam}} vs {{.AwayTeam}}</div>
      {{- if .HasScore}}
      <div class="score">{{.Score}}</div>
      {{- end}}
      <div class="status">{{.Status}}</div>
      {{- with .Prediction}}
      <div class="panel">
        <div>{{.Winner}}</div>
        <div>{{.Confidence}}</div>
        {{- if .Score}}
        <div>{{.Score}}</div>
        {{- end}}
        <div>{{.Probs}}</div>
      </div>
      {{- end}}
      <form method="post" action="/matches/{{.MatchID}}/predict">
        <button type="submit"{{if .Pending}} disabled{{end}}>{{.ButtonLabel}}</button>
      </form>
    </div>
  {{- end}}
  </div>
{{- end}}
</body>
</html>
`
