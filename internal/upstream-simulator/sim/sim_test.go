package sim

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/radieske/footy-predictor/internal/footballdata"
)

func newTestSim(t *testing.T) (*Simulator, *httptest.Server) {
	t.Helper()
	s := New(zap.NewNop(), "PD", nil)
	srv := httptest.NewServer(s.Router())
	t.Cleanup(srv.Close)
	return s, srv
}

func newProviderClient(srv *httptest.Server) *footballdata.Client {
	return &footballdata.Client{
		BaseURL: srv.URL + "/v4",
		Token:   "test-token",
		HTTP:    srv.Client(),
	}
}

func TestRequiresAuthToken(t *testing.T) {
	_, srv := newTestSim(t)

	resp, err := http.Get(srv.URL + "/v4/competitions/PD/standings")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("status = %d, want 403 without token", resp.StatusCode)
	}
}

func TestStandingsRoundTrip(t *testing.T) {
	_, srv := newTestSim(t)
	client := newProviderClient(srv)

	standings, err := client.Standings(context.Background(), "PD")
	if err != nil {
		t.Fatal(err)
	}
	table := standings.Table()
	if len(table) != 8 {
		t.Fatalf("table rows = %d, want 8", len(table))
	}
	if table[0].Position != 1 || table[0].Team.Name == "" {
		t.Fatalf("unexpected first row: %+v", table[0])
	}
}

func TestMatchesStartScheduled(t *testing.T) {
	_, srv := newTestSim(t)
	client := newProviderClient(srv)

	resp, err := client.Matches(context.Background(), "PD", footballdata.MatchFilter{Status: "SCHEDULED"})
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Matches) != 8 {
		t.Fatalf("scheduled matches = %d, want 8", len(resp.Matches))
	}

	finished, err := client.Matches(context.Background(), "PD", footballdata.MatchFilter{Status: "FINISHED"})
	if err != nil {
		t.Fatal(err)
	}
	if len(finished.Matches) != 0 {
		t.Fatalf("finished matches = %d, want 0 before Advance", len(finished.Matches))
	}
}

func TestAdvanceFinishesOneMatch(t *testing.T) {
	var ticks int
	s := New(zap.NewNop(), "PD", func() { ticks++ })
	srv := httptest.NewServer(s.Router())
	defer srv.Close()
	client := newProviderClient(srv)

	s.Advance()
	if ticks != 1 {
		t.Fatalf("finished callback ticks = %d, want 1", ticks)
	}

	resp, err := client.Matches(context.Background(), "PD", footballdata.MatchFilter{Status: "FINISHED"})
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Matches) != 1 {
		t.Fatalf("finished matches = %d, want 1", len(resp.Matches))
	}
	m := resp.Matches[0]
	if m.Score.FullTime.Home == nil || m.Score.FullTime.Away == nil {
		t.Fatal("finished match missing full-time score")
	}
	if m.Score.Winner == "" {
		t.Fatal("finished match missing winner")
	}
}

func TestTeamMatchesFilterByTeam(t *testing.T) {
	_, srv := newTestSim(t)
	client := newProviderClient(srv)

	resp, err := client.TeamMatches(context.Background(), 86, footballdata.MatchFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Matches) == 0 {
		t.Fatal("expected matches for team 86")
	}
	for _, m := range resp.Matches {
		if m.HomeTeam.ID != 86 && m.AwayTeam.ID != 86 {
			t.Fatalf("match %d does not involve team 86", m.ID)
		}
	}
}

func TestScorersLimit(t *testing.T) {
	_, srv := newTestSim(t)
	client := newProviderClient(srv)

	resp, err := client.Scorers(context.Background(), "PD", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Scorers) != 2 {
		t.Fatalf("scorers = %d, want 2", len(resp.Scorers))
	}
}

func TestGetUnknownTeam(t *testing.T) {
	_, srv := newTestSim(t)
	client := newProviderClient(srv)

	if _, err := client.Team(context.Background(), 999999); err == nil {
		t.Fatal("expected error for unknown team")
	}
}
