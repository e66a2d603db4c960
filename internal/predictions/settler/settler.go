package settler

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/radieske/footy-predictor/internal/predictions"
	"github.com/radieske/footy-predictor/pkg/contracts/events"
)

// Store é o recorte de persistência que a liquidação usa.
type Store interface {
	SettleFixture(ctx context.Context, res events.MatchResult) ([]predictions.Settled, error)
}

// Settler consome eventos match_result, liquida palpites pendentes
// e publica prediction_settled. Mensagens indigestas vão pra DLQ.
// Callbacks de métricas podem ser usadas para monitoramento de cada etapa.
type Settler struct {
	Log       *zap.Logger
	Reader    *kafka.Reader
	Store     Store
	Publisher *kafka.Writer // tópico prediction_settled (opcional)
	DLQ       *kafka.Writer // opcional

	OnConsumed func()       // métricas (counter++)
	OnSettled  func(int)    // métricas (quantidade liquidada)
	OnError    func(string) // métricas por fase
}

// Run inicia o loop principal de consumo e liquidação.
func (s *Settler) Run(ctx context.Context) error {
	for {
		m, err := s.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.Log.Warn("kafka read failed", zap.Error(err))
			s.emitError("read")
			time.Sleep(500 * time.Millisecond)
			continue
		}

		if s.OnConsumed != nil {
			s.OnConsumed()
		}

		s.process(ctx, m.Value)
	}
}

// process trata uma mensagem: decodifica, liquida e publica os eventos.
func (s *Settler) process(ctx context.Context, value []byte) {
	var res events.MatchResult
	if err := json.Unmarshal(value, &res); err != nil {
		s.Log.Warn("invalid match_result message", zap.Error(err))
		s.emitError("decode")
		s.toDLQ(ctx, value)
		return
	}

	settled, err := s.Store.SettleFixture(ctx, res)
	if err != nil {
		s.Log.Error("settle failed", zap.Int64("fixture_id", res.FixtureID), zap.Error(err))
		s.emitError("db_settle")
		s.toDLQ(ctx, value)
		return
	}

	if s.OnSettled != nil {
		s.OnSettled(len(settled))
	}
	s.Log.Info("fixture settled",
		zap.Int64("fixture_id", res.FixtureID),
		zap.String("result", res.Winner()),
		zap.Int("predictions", len(settled)),
	)

	s.publishSettled(ctx, settled)
}

func (s *Settler) publishSettled(ctx context.Context, settled []predictions.Settled) {
	if s.Publisher == nil {
		return
	}
	for _, st := range settled {
		b, _ := json.Marshal(events.PredictionSettled{
			PredictionID: st.PredictionID,
			UserID:       st.UserID,
			FixtureID:    st.FixtureID,
			ActualResult: st.ActualResult,
			IsCorrect:    st.IsCorrect,
			Ts:           time.Now().UTC(),
		})
		if err := s.Publisher.WriteMessages(ctx, kafka.Message{Key: []byte(st.UserID), Value: b}); err != nil {
			s.Log.Warn("publish prediction_settled failed", zap.Error(err))
			s.emitError("publish")
		}
	}
}

func (s *Settler) toDLQ(ctx context.Context, value []byte) {
	if s.DLQ == nil {
		return
	}
	if err := s.DLQ.WriteMessages(ctx, kafka.Message{Value: value}); err != nil {
		s.Log.Error("dlq write failed", zap.Error(err))
		s.emitError("dlq")
	}
}

func (s *Settler) emitError(phase string) {
	if s.OnError != nil {
		s.OnError(phase)
	}
}
