package matchview

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/radieske/footy-predictor/internal/client"
)

// API é o recorte do cliente da API que a view usa.
type API interface {
	Matches(ctx context.Context) ([]client.Match, error)
	Predict(ctx context.Context, homeTeamID, awayTeamID int64) (client.Prediction, error)
}

// State é o estado grosso da tela de partidas.
type State int

const (
	StateLoading State = iota
	StateError
	StateReady
)

// Mensagem fixa mostrada quando a carga inicial falha.
const loadErrorMessage = "Failed to load matches. Please try again later."

// View mantém o estado da tela de partidas: lista, previsões por partida,
// requisições em voo e geração por partida. Uma resposta atrasada de uma
// geração antiga nunca sobrescreve a previsão de uma requisição mais nova.
type View struct {
	api API
	log *zap.Logger

	mu          sync.Mutex
	state       State
	errMsg      string
	matches     []client.Match
	predictions map[int64]client.Prediction
	pending     map[int64]struct{}
	generation  map[int64]uint64
}

func New(api API, log *zap.Logger) *View {
	if log == nil {
		log = zap.NewNop()
	}
	return &View{
		api:         api,
		log:         log,
		state:       StateLoading,
		predictions: map[int64]client.Prediction{},
		pending:     map[int64]struct{}{},
		generation:  map[int64]uint64{},
	}
}

// Load busca a lista de partidas. Sucesso leva pra ready (lista vazia
// é válida); falha leva pro estado de erro com mensagem fixa, sem retry.
func (v *View) Load(ctx context.Context) {
	matches, err := v.api.Matches(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()

	if err != nil {
		v.log.Error("load matches failed", zap.Error(err))
		v.state = StateError
		v.errMsg = loadErrorMessage
		v.matches = nil
		return
	}

	if matches == nil {
		matches = []client.Match{}
	}
	v.state = StateReady
	v.errMsg = ""
	v.matches = matches
}

// RequestPrediction dispara a previsão pra partida, sem bloquear.
// Partida desconhecida ou já com requisição em voo é ignorada.
func (v *View) RequestPrediction(ctx context.Context, matchID int64) {
	homeID, awayID, gen, ok := v.begin(matchID)
	if !ok {
		return
	}

	go func() {
		p, err := v.api.Predict(ctx, homeID, awayID)
		v.resolve(matchID, gen, p, err)
	}()
}

// begin marca a partida como pendente e devolve a geração da requisição.
func (v *View) begin(matchID int64) (homeID, awayID int64, gen uint64, ok bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	var match *client.Match
	for i := range v.matches {
		if v.matches[i].ID == matchID {
			match = &v.matches[i]
			break
		}
	}
	if match == nil {
		return 0, 0, 0, false
	}
	if _, inFlight := v.pending[matchID]; inFlight {
		return 0, 0, 0, false
	}

	v.pending[matchID] = struct{}{}
	v.generation[matchID]++
	return match.HomeTeam.ID, match.AwayTeam.ID, v.generation[matchID], true
}

// resolve aplica o resultado de uma requisição de previsão.
// Respostas de gerações antigas são descartadas; falha limpa o pendente
// sem registrar previsão (a tela simplesmente não mostra painel).
func (v *View) resolve(matchID int64, gen uint64, p client.Prediction, err error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.generation[matchID] != gen {
		v.log.Debug("stale prediction response dropped", zap.Int64("match_id", matchID))
		return
	}
	delete(v.pending, matchID)

	if err != nil {
		v.log.Error("prediction request failed", zap.Int64("match_id", matchID), zap.Error(err))
		return
	}
	v.predictions[matchID] = p
}

// Snapshot devolve uma cópia consistente do estado pra renderização.
func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	snap := Snapshot{
		State:    v.state,
		ErrorMsg: v.errMsg,
	}
	for _, m := range v.matches {
		card := buildCard(m)
		if p, ok := v.predictions[m.ID]; ok {
			card.Prediction = buildPanel(m, p)
		}
		_, card.Pending = v.pending[m.ID]
		snap.Cards = append(snap.Cards, card)
	}
	return snap
}
