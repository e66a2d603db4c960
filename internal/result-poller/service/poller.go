package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/radieske/footy-predictor/internal/footballdata"
	"github.com/radieske/footy-predictor/pkg/contracts/events"
)

// Provider é o recorte do cliente football-data que o poller usa.
type Provider interface {
	Matches(ctx context.Context, competition string, f footballdata.MatchFilter) (footballdata.MatchesResponse, error)
}

// Publisher envia resultados finalizados pro tópico de resultados.
type Publisher interface {
	Publish(ctx context.Context, e events.MatchResult) error
}

// Poller consulta o provedor periodicamente e publica cada partida
// finalizada uma única vez. O estado de deduplicação vive em memória;
// republicar após restart é aceitável porque a liquidação é idempotente.
type Poller struct {
	Provider    Provider
	Publisher   Publisher
	Competition string
	Interval    time.Duration
	Log         *zap.Logger

	OnPublished func()
	OnError     func(phase string)

	published map[int64]struct{}
}

// Run roda o loop de polling até o contexto ser cancelado.
// A primeira varredura acontece imediatamente.
func (p *Poller) Run(ctx context.Context) {
	p.Log.Info("result poller started",
		zap.String("competition", p.Competition),
		zap.Duration("interval", p.Interval))

	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()

	p.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			p.Log.Info("context canceled, stopping poller")
			return
		case <-ticker.C:
			p.sweep(ctx)
		}
	}
}

// sweep busca as partidas finalizadas da janela recente e publica as inéditas.
func (p *Poller) sweep(ctx context.Context) {
	if p.published == nil {
		p.published = map[int64]struct{}{}
	}

	now := time.Now().UTC()
	filter := footballdata.MatchFilter{
		Status:   "FINISHED",
		DateFrom: now.AddDate(0, 0, -7).Format("2006-01-02"),
		DateTo:   now.Format("2006-01-02"),
	}

	resp, err := p.Provider.Matches(ctx, p.Competition, filter)
	if err != nil {
		p.Log.Warn("provider poll failed", zap.Error(err))
		p.emitError("provider")
		return
	}

	for _, m := range resp.Matches {
		if _, done := p.published[m.ID]; done {
			continue
		}
		if m.Score.FullTime.Home == nil || m.Score.FullTime.Away == nil {
			continue
		}

		result := events.MatchResult{
			FixtureID:  m.ID,
			HomeTeam:   m.HomeTeam.Name,
			AwayTeam:   m.AwayTeam.Name,
			HomeGoals:  *m.Score.FullTime.Home,
			AwayGoals:  *m.Score.FullTime.Away,
			Status:     m.Status,
			FinishedAt: m.UTCDate,
			Source:     "result-poller",
		}

		if err := p.Publisher.Publish(ctx, result); err != nil {
			p.emitError("publish")
			continue
		}

		p.published[m.ID] = struct{}{}
		p.Log.Info("match result published",
			zap.Int64("fixture_id", m.ID),
			zap.String("winner", result.Winner()))
		if p.OnPublished != nil {
			p.OnPublished()
		}
	}
}

func (p *Poller) emitError(phase string) {
	if p.OnError != nil {
		p.OnError(phase)
	}
}
