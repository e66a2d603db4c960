package matchview

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/radieske/footy-predictor/internal/client"
)

type fakeAPI struct {
	mu       sync.Mutex
	matches  []client.Match
	loadErr  error
	pred     client.Prediction
	predErr  error
	release  chan struct{} // se não-nil, Predict bloqueia até fechar
	predReqs int
}

func (f *fakeAPI) Matches(ctx context.Context) ([]client.Match, error) {
	return f.matches, f.loadErr
}

func (f *fakeAPI) Predict(ctx context.Context, homeID, awayID int64) (client.Prediction, error) {
	f.mu.Lock()
	f.predReqs++
	release := f.release
	f.mu.Unlock()
	if release != nil {
		<-release
	}
	return f.pred, f.predErr
}

func (f *fakeAPI) requests() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.predReqs
}

func intPtr(v int) *int { return &v }

func twoMatches() []client.Match {
	return []client.Match{
		{
			ID:       101,
			HomeTeam: client.Team{ID: 1, Name: "Real Madrid"},
			AwayTeam: client.Team{ID: 2, Name: "Barcelona"},
			Date:     time.Date(2026, time.August, 29, 21, 0, 0, 0, time.UTC),
			Status:   "SCHEDULED",
			Matchday: 3,
		},
		{
			ID:       102,
			HomeTeam: client.Team{ID: 3, Name: "Sevilla"},
			AwayTeam: client.Team{ID: 4, Name: "Valencia"},
			Date:     time.Date(2026, time.August, 30, 18, 30, 0, 0, time.UTC),
			Status:   "FINISHED",
			Matchday: 3,
			Score:    client.Score{Home: intPtr(2), Away: intPtr(1)},
		},
	}
}

func waitUntil(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestLoadSuccess(t *testing.T) {
	v := New(&fakeAPI{matches: twoMatches()}, nil)
	if got := v.Snapshot().State; got != StateLoading {
		t.Fatalf("initial state = %v, want loading", got)
	}

	v.Load(context.Background())

	snap := v.Snapshot()
	if snap.State != StateReady {
		t.Fatalf("state = %v, want ready", snap.State)
	}
	if len(snap.Cards) != 2 {
		t.Fatalf("cards = %d, want 2", len(snap.Cards))
	}
}

func TestLoadEmptyListIsReady(t *testing.T) {
	v := New(&fakeAPI{matches: nil}, nil)
	v.Load(context.Background())

	snap := v.Snapshot()
	if snap.State != StateReady {
		t.Fatalf("state = %v, want ready", snap.State)
	}
	if len(snap.Cards) != 0 {
		t.Fatalf("cards = %d, want 0", len(snap.Cards))
	}
}

func TestLoadFailure(t *testing.T) {
	v := New(&fakeAPI{loadErr: errors.New("boom")}, nil)
	v.Load(context.Background())

	snap := v.Snapshot()
	if snap.State != StateError {
		t.Fatalf("state = %v, want error", snap.State)
	}
	if snap.ErrorMsg != "Failed to load matches. Please try again later." {
		t.Fatalf("error message = %q", snap.ErrorMsg)
	}
}

func TestRequestPredictionStoresResult(t *testing.T) {
	api := &fakeAPI{
		matches: twoMatches(),
		pred: client.Prediction{
			PredictedOutcome: "HOME_WIN",
			Confidence:       62,
			PredictedScore:   &client.Scoreline{Home: 2, Away: 1},
			Probabilities:    client.Probabilities{HomeWin: 62, Draw: 20, AwayWin: 18},
		},
	}
	v := New(api, nil)
	v.Load(context.Background())

	v.RequestPrediction(context.Background(), 101)
	waitUntil(t, func() bool {
		return v.Snapshot().Cards[0].Prediction != nil
	})

	card := v.Snapshot().Cards[0]
	if card.Pending {
		t.Fatal("card still pending after resolution")
	}
	panel := card.Prediction
	if panel.Winner != "Real Madrid" {
		t.Fatalf("winner = %q", panel.Winner)
	}
	if panel.Confidence != "Confidence: 62%" {
		t.Fatalf("confidence = %q", panel.Confidence)
	}
	if panel.Score != "Predicted: 2 - 1" {
		t.Fatalf("score = %q", panel.Score)
	}
	if panel.Probs != "H: 62% D: 20% A: 18%" {
		t.Fatalf("probs = %q", panel.Probs)
	}
}

func TestPendingIsPerMatch(t *testing.T) {
	api := &fakeAPI{matches: twoMatches(), release: make(chan struct{})}
	v := New(api, nil)
	v.Load(context.Background())

	v.RequestPrediction(context.Background(), 101)
	waitUntil(t, func() bool { return api.requests() == 1 })

	snap := v.Snapshot()
	if !snap.Cards[0].Pending {
		t.Fatal("match 101 should be pending")
	}
	if snap.Cards[1].Pending {
		t.Fatal("match 102 should not be pending")
	}

	// Requisição duplicada enquanto pendente é ignorada.
	v.RequestPrediction(context.Background(), 101)
	time.Sleep(20 * time.Millisecond)
	if api.requests() != 1 {
		t.Fatalf("duplicate request went through, total = %d", api.requests())
	}

	close(api.release)
	waitUntil(t, func() bool { return !v.Snapshot().Cards[0].Pending })
}

func TestUnknownMatchIgnored(t *testing.T) {
	api := &fakeAPI{matches: twoMatches()}
	v := New(api, nil)
	v.Load(context.Background())

	v.RequestPrediction(context.Background(), 999)
	time.Sleep(20 * time.Millisecond)
	if api.requests() != 0 {
		t.Fatalf("requests = %d, want 0", api.requests())
	}
}

func TestPredictionFailureLeavesNoPanel(t *testing.T) {
	api := &fakeAPI{matches: twoMatches(), predErr: errors.New("upstream down")}
	v := New(api, nil)
	v.Load(context.Background())

	v.RequestPrediction(context.Background(), 101)
	waitUntil(t, func() bool { return !v.Snapshot().Cards[0].Pending && api.requests() == 1 })

	if v.Snapshot().Cards[0].Prediction != nil {
		t.Fatal("failed request should not leave a prediction")
	}
}

func TestStaleResponseDropped(t *testing.T) {
	api := &fakeAPI{matches: twoMatches()}
	v := New(api, nil)
	v.Load(context.Background())

	_, _, oldGen, ok := v.begin(101)
	if !ok {
		t.Fatal("begin failed")
	}

	// Uma segunda requisição supera a primeira.
	v.mu.Lock()
	delete(v.pending, 101)
	v.mu.Unlock()
	_, _, newGen, ok := v.begin(101)
	if !ok || newGen <= oldGen {
		t.Fatalf("generations: old %d new %d ok %v", oldGen, newGen, ok)
	}

	stale := client.Prediction{PredictedOutcome: "AWAY_WIN", Confidence: 10}
	fresh := client.Prediction{PredictedOutcome: "HOME_WIN", Confidence: 70}

	v.resolve(101, newGen, fresh, nil)
	v.resolve(101, oldGen, stale, nil)

	v.mu.Lock()
	got := v.predictions[101]
	v.mu.Unlock()
	if got.PredictedOutcome != "HOME_WIN" {
		t.Fatalf("stale response overwrote fresh one: %q", got.PredictedOutcome)
	}
}

func TestCardFormatting(t *testing.T) {
	v := New(&fakeAPI{matches: twoMatches()}, nil)
	v.Load(context.Background())

	snap := v.Snapshot()

	scheduled := snap.Cards[0]
	if scheduled.Date != "Sat, Aug 29, 21:00" {
		t.Fatalf("date = %q", scheduled.Date)
	}
	if scheduled.HasScore {
		t.Fatal("scheduled match should not show a score")
	}
	if scheduled.ButtonLabel() != "Get Prediction" {
		t.Fatalf("button = %q", scheduled.ButtonLabel())
	}

	finished := snap.Cards[1]
	if !finished.HasScore || finished.Score != "2 - 1" {
		t.Fatalf("finished score: has=%v score=%q", finished.HasScore, finished.Score)
	}
}

func TestDrawLabelAndFractionalPercent(t *testing.T) {
	m := twoMatches()[0]
	panel := buildPanel(m, client.Prediction{
		PredictedOutcome: "DRAW",
		Confidence:       41.5,
		Probabilities:    client.Probabilities{HomeWin: 30.2, Draw: 41.5, AwayWin: 28.3},
	})
	if panel.Winner != "Draw" {
		t.Fatalf("winner = %q", panel.Winner)
	}
	if panel.Confidence != "Confidence: 41.5%" {
		t.Fatalf("confidence = %q", panel.Confidence)
	}
	if panel.Score != "" {
		t.Fatalf("score = %q, want empty without predicted scoreline", panel.Score)
	}
}

func TestRenderStates(t *testing.T) {
	api := &fakeAPI{matches: twoMatches(), pred: client.Prediction{
		PredictedOutcome: "AWAY_WIN",
		Confidence:       55,
		Probabilities:    client.Probabilities{HomeWin: 25, Draw: 20, AwayWin: 55},
	}}
	v := New(api, nil)

	var b strings.Builder
	if err := Render(&b, v.Snapshot()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(b.String(), "Loading matches...") {
		t.Fatal("loading page missing loading text")
	}

	v.Load(context.Background())
	v.RequestPrediction(context.Background(), 101)
	waitUntil(t, func() bool { return v.Snapshot().Cards[0].Prediction != nil })

	b.Reset()
	if err := Render(&b, v.Snapshot()); err != nil {
		t.Fatal(err)
	}
	html := b.String()
	for _, want := range []string{
		"Real Madrid vs Barcelona",
		"Confidence: 55%",
		"H: 25% D: 20% A: 55%",
		"<div>Barcelona</div>",
		"/matches/101/predict",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("rendered page missing %q", want)
		}
	}
}

func TestRenderError(t *testing.T) {
	v := New(&fakeAPI{loadErr: errors.New("down")}, nil)
	v.Load(context.Background())

	var b strings.Builder
	if err := Render(&b, v.Snapshot()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(b.String(), "Failed to load matches.") {
		t.Fatal("error page missing message")
	}
}
