package chat

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tabi/guide"
	"tabi/models"
)

func TestSendRejectsEmptyText(t *testing.T) {
	Init(guide.New(""))

	for _, body := range []string{``, `{}`, `{"text":"   "}`, `not json`} {
		req := httptest.NewRequest(http.MethodPost, "/api/chat/send", strings.NewReader(body))
		rec := httptest.NewRecorder()
		Send(rec, req, nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %q: got status %d, want 400", body, rec.Code)
		}
	}
}

func TestSendRelaysAnonymously(t *testing.T) {
	var gotPrompt string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Fatalf("decode upstream request: %v", err)
		}
		gotPrompt = in.Contents[0].Parts[0].Text
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"第三天去水族館。"}]}}]}`))
	}))
	defer upstream.Close()

	client := guide.New("test-key")
	client.BaseURL = upstream.URL
	Init(client)

	req := httptest.NewRequest(http.MethodPost, "/api/chat/send", strings.NewReader(`{"text":"第三天去哪裡？"}`))
	rec := httptest.NewRecorder()
	Send(rec, req, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var out struct {
		Question models.ChatMessage `json:"question"`
		Answer   models.ChatMessage `json:"answer"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Question.Sender != "user" || out.Question.Text != "第三天去哪裡？" {
		t.Errorf("unexpected question message: %+v", out.Question)
	}
	if out.Answer.Sender != "ai" || out.Answer.Text != "第三天去水族館。" {
		t.Errorf("unexpected answer message: %+v", out.Answer)
	}
	if out.Answer.Timestamp < out.Question.Timestamp {
		t.Errorf("answer timestamp %d precedes question %d", out.Answer.Timestamp, out.Question.Timestamp)
	}
	if !strings.Contains(gotPrompt, "第三天去哪裡？") {
		t.Error("prompt does not contain the question")
	}
}

func TestSendWithoutKeyStillAnswers(t *testing.T) {
	Init(guide.New(""))

	req := httptest.NewRequest(http.MethodPost, "/api/chat/send", strings.NewReader(`{"text":"hi"}`))
	rec := httptest.NewRecorder()
	Send(rec, req, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rec.Code)
	}
	var out struct {
		Answer models.ChatMessage `json:"answer"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Answer.Text != guide.MsgNoAPIKey {
		t.Errorf("got %q, want the missing-key reply", out.Answer.Text)
	}
}

func TestPreviewTruncatesByRune(t *testing.T) {
	long := strings.Repeat("行", 200)
	got := preview(long)
	if got != strings.Repeat("行", 120) {
		t.Errorf("preview length %d runes, want 120 intact runes", len([]rune(got)))
	}
	if preview("  short  ") != "short" {
		t.Error("preview should trim whitespace")
	}
}
