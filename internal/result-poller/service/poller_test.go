package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/radieske/footy-predictor/internal/footballdata"
	"github.com/radieske/footy-predictor/pkg/contracts/events"
)

type fakeProvider struct {
	resp   footballdata.MatchesResponse
	err    error
	filter footballdata.MatchFilter
}

func (f *fakeProvider) Matches(ctx context.Context, competition string, filter footballdata.MatchFilter) (footballdata.MatchesResponse, error) {
	f.filter = filter
	return f.resp, f.err
}

type fakePublisher struct {
	published []events.MatchResult
	err       error
}

func (f *fakePublisher) Publish(ctx context.Context, e events.MatchResult) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, e)
	return nil
}

func intPtr(v int) *int { return &v }

func finishedMatch(id int64, home, away int) footballdata.Match {
	return footballdata.Match{
		ID:       id,
		UTCDate:  time.Date(2026, time.August, 25, 20, 0, 0, 0, time.UTC),
		Status:   "FINISHED",
		HomeTeam: footballdata.TeamRef{ID: 1, Name: "Real Madrid"},
		AwayTeam: footballdata.TeamRef{ID: 2, Name: "Barcelona"},
		Score: footballdata.Score{
			FullTime: footballdata.FullTime{Home: intPtr(home), Away: intPtr(away)},
		},
	}
}

func newPoller(p Provider, pub Publisher) *Poller {
	return &Poller{
		Provider:    p,
		Publisher:   pub,
		Competition: "PD",
		Interval:    time.Minute,
		Log:         zap.NewNop(),
	}
}

func TestSweepPublishesFinishedOnce(t *testing.T) {
	provider := &fakeProvider{resp: footballdata.MatchesResponse{
		Matches: []footballdata.Match{finishedMatch(10, 2, 1)},
	}}
	pub := &fakePublisher{}
	poller := newPoller(provider, pub)

	poller.sweep(context.Background())
	poller.sweep(context.Background())

	if len(pub.published) != 1 {
		t.Fatalf("published = %d, want 1", len(pub.published))
	}
	got := pub.published[0]
	if got.FixtureID != 10 || got.HomeGoals != 2 || got.AwayGoals != 1 {
		t.Fatalf("unexpected result: %+v", got)
	}
	if got.Winner() != "home" {
		t.Fatalf("winner = %q", got.Winner())
	}
	if got.Source != "result-poller" {
		t.Fatalf("source = %q", got.Source)
	}
}

func TestSweepRequestsFinishedWindow(t *testing.T) {
	provider := &fakeProvider{}
	poller := newPoller(provider, &fakePublisher{})

	poller.sweep(context.Background())

	if provider.filter.Status != "FINISHED" {
		t.Fatalf("status filter = %q", provider.filter.Status)
	}
	if provider.filter.DateFrom == "" || provider.filter.DateTo == "" {
		t.Fatalf("date window not set: %+v", provider.filter)
	}
}

func TestSweepSkipsMatchWithoutScore(t *testing.T) {
	m := finishedMatch(11, 0, 0)
	m.Score.FullTime.Home = nil
	provider := &fakeProvider{resp: footballdata.MatchesResponse{Matches: []footballdata.Match{m}}}
	pub := &fakePublisher{}

	newPoller(provider, pub).sweep(context.Background())

	if len(pub.published) != 0 {
		t.Fatalf("published = %d, want 0", len(pub.published))
	}
}

func TestSweepRetriesAfterPublishFailure(t *testing.T) {
	provider := &fakeProvider{resp: footballdata.MatchesResponse{
		Matches: []footballdata.Match{finishedMatch(12, 1, 1)},
	}}
	pub := &fakePublisher{err: errors.New("broker down")}
	poller := newPoller(provider, pub)

	var errPhases []string
	poller.OnError = func(phase string) { errPhases = append(errPhases, phase) }

	poller.sweep(context.Background())
	if len(pub.published) != 0 {
		t.Fatal("failed publish should not record the fixture")
	}
	if len(errPhases) != 1 || errPhases[0] != "publish" {
		t.Fatalf("error phases = %v", errPhases)
	}

	// Broker volta: a mesma partida é publicada na varredura seguinte.
	pub.err = nil
	poller.sweep(context.Background())
	if len(pub.published) != 1 {
		t.Fatalf("published after recovery = %d, want 1", len(pub.published))
	}
}

func TestSweepProviderFailure(t *testing.T) {
	provider := &fakeProvider{err: errors.New("429")}
	poller := newPoller(provider, &fakePublisher{})

	var phase string
	poller.OnError = func(p string) { phase = p }
	published := 0
	poller.OnPublished = func() { published++ }

	poller.sweep(context.Background())

	if phase != "provider" {
		t.Fatalf("phase = %q", phase)
	}
	if published != 0 {
		t.Fatalf("published = %d", published)
	}
}
