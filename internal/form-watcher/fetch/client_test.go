package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/radieske/live-form-tracker-poc/pkg/contracts/events"
)

func TestFormOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/forms/FORM_1" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"form_id": "FORM_1",
			"games": [
				{"game_id": "GAME_A", "home_team": "Flamengo", "away_team": "Palmeiras",
				 "status": "SCHEDULED",
				 "initial_prediction": {"win_probability": 58.5, "confidence": "medium"}}
			]
		}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	form, err := c.Form(context.Background(), "FORM_1")
	if err != nil {
		t.Fatalf("Form: %v", err)
	}
	if form.FormID != "FORM_1" || len(form.Games) != 1 {
		t.Fatalf("unexpected response: %+v", form)
	}
	g := form.Games[0]
	if g.GameID != "GAME_A" || g.Status != events.StatusScheduled || g.InitialPrediction.WinProbability != 58.5 {
		t.Errorf("game decoded wrong: %+v", g)
	}
}

func TestFormNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(srv.URL)
	if _, err := c.Form(context.Background(), "NOPE"); !errors.Is(err, ErrFormNotFound) {
		t.Errorf("got %v, want ErrFormNotFound", err)
	}
}

func TestFormServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL)
	if _, err := c.Form(context.Background(), "FORM_1"); err == nil {
		t.Error("expected error on 500 response")
	}
}

func TestFormUnreachable(t *testing.T) {
	c := New("http://127.0.0.1:1") // porta fechada
	if _, err := c.Form(context.Background(), "FORM_1"); err == nil {
		t.Error("expected error when form-api is unreachable")
	}
}
