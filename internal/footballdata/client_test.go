package footballdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_SendsAuthTokenAndQuery(t *testing.T) {
	var gotToken, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("X-Auth-Token")
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"matches":[{"id":1,"status":"SCHEDULED","homeTeam":{"id":10,"name":"A"},"awayTeam":{"id":20,"name":"B"},"score":{"fullTime":{"home":null,"away":null}}}]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "secret-token")
	res, err := c.Matches(context.Background(), "PD", MatchFilter{Status: "SCHEDULED", Matchday: 3})
	if err != nil {
		t.Fatalf("Matches failed: %v", err)
	}

	if gotToken != "secret-token" {
		t.Errorf("expected X-Auth-Token header, got %q", gotToken)
	}
	if gotQuery != "matchday=3&status=SCHEDULED" {
		t.Errorf("unexpected query: %q", gotQuery)
	}
	if len(res.Matches) != 1 || res.Matches[0].ID != 1 {
		t.Fatalf("unexpected matches: %+v", res.Matches)
	}
	if res.Matches[0].Score.FullTime.Home != nil {
		t.Errorf("expected null home score to stay nil")
	}
}

func TestClient_NonSuccessIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	if _, err := c.Standings(context.Background(), "PD"); err == nil {
		t.Fatal("expected error on http 403")
	}
}

func TestStandingsResponse_TablePrefersTotal(t *testing.T) {
	r := StandingsResponse{Standings: []Standing{
		{Type: "HOME", Table: []TableRow{{Position: 99}}},
		{Type: "TOTAL", Table: []TableRow{{Position: 1}}},
	}}
	table := r.Table()
	if len(table) != 1 || table[0].Position != 1 {
		t.Fatalf("expected TOTAL table, got %+v", table)
	}

	onlyHome := StandingsResponse{Standings: []Standing{
		{Type: "HOME", Table: []TableRow{{Position: 7}}},
	}}
	if got := onlyHome.Table(); len(got) != 1 || got[0].Position != 7 {
		t.Fatalf("expected fallback to first standings, got %+v", got)
	}

	if got := (StandingsResponse{}).Table(); got != nil {
		t.Fatalf("expected nil table for empty response, got %+v", got)
	}
}

func TestClient_TeamMatchesLimit(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"matches":[]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "t")
	if _, err := c.TeamMatches(context.Background(), 86, MatchFilter{Status: "FINISHED", Limit: 5}); err != nil {
		t.Fatalf("TeamMatches failed: %v", err)
	}
	if gotPath != "/teams/86/matches" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if gotQuery != "limit=5&status=FINISHED" {
		t.Errorf("unexpected query %q", gotQuery)
	}
}
