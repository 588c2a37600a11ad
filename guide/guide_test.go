package guide

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tabi/models"
)

func testDays() []models.DaySchedule {
	return []models.DaySchedule{
		{Day: 1, Date: "2026-02-03", Items: []models.ItineraryItem{
			{ID: "d1-1", Time: "10:30", Title: "aquarium", Category: "play"},
		}},
	}
}

func TestAskWithoutKeyMakesNoRequest(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := New("")
	c.BaseURL = srv.URL

	got := c.Ask(context.Background(), "where to eat?", testDays())
	if got != MsgNoAPIKey {
		t.Fatalf("expected fixed no-key message, got %q", got)
	}
	if called {
		t.Fatal("no outbound call may happen without a credential")
	}
}

func TestAskReturnsAnswerText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		prompt := req.Contents[0].Parts[0].Text
		if !strings.Contains(prompt, "aquarium") {
			t.Error("itinerary context missing from prompt")
		}
		if !strings.Contains(prompt, "where to eat?") {
			t.Error("question missing from prompt")
		}
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]string{{"text": "try the soba place"}}}},
			},
		})
	}))
	defer srv.Close()

	c := New("test-key")
	c.BaseURL = srv.URL

	got := c.Ask(context.Background(), "where to eat?", testDays())
	if got != "try the soba place" {
		t.Fatalf("got %q", got)
	}
}

func TestAskMapsFailureCauses(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"invalid key", http.StatusBadRequest, `{"error":{"code":400,"message":"API key not valid"}}`, MsgInvalidAPIKey},
		{"rate limited", http.StatusTooManyRequests, `{"error":{"code":429,"message":"quota exceeded"}}`, MsgRateLimited},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			c := New("test-key")
			c.BaseURL = srv.URL

			if got := c.Ask(context.Background(), "q", nil); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestAskGenericFailureEmbedsRawError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"code":500,"message":"backend exploded"}}`))
	}))
	defer srv.Close()

	c := New("test-key")
	c.BaseURL = srv.URL

	got := c.Ask(context.Background(), "q", nil)
	if !strings.Contains(got, "backend exploded") {
		t.Fatalf("raw error missing from generic reply: %q", got)
	}
}
