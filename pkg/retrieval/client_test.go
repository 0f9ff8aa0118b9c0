package retrieval

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ivy-crm-be/internal/pkg/logger"
)

func testLogger(t *testing.T) logger.ILogger {
	t.Helper()
	return logger.NewIsolatedLogger(filepath.Join(t.TempDir(), "test.log"))
}

func TestAskSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ask", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"answer":"Three applicants are at risk.","sources":[],"query_type":"aggregate","confidence":0.82,"session_id":"tok-1"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, testLogger(t))
	resp := client.Ask(context.Background(), AskRequest{Query: "who is at risk?"})

	assert.False(t, resp.Degraded)
	assert.Equal(t, "Three applicants are at risk.", resp.Answer)
	assert.Equal(t, 0.82, resp.Confidence)
	assert.Equal(t, "tok-1", resp.SessionID)
}

func TestAskDegradesOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, testLogger(t))
	resp := client.Ask(context.Background(), AskRequest{Query: "anything", SessionID: "tok-2"})

	assert.True(t, resp.Degraded)
	assert.Equal(t, FallbackAnswer, resp.Answer)
	assert.LessOrEqual(t, resp.Confidence, FallbackConfidence)
	// Continuity token survives a degraded call so retries can replay it.
	assert.Equal(t, "tok-2", resp.SessionID)
}

func TestAskDegradesOnMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"answer": truncated`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, testLogger(t))
	resp := client.Ask(context.Background(), AskRequest{Query: "anything"})

	assert.True(t, resp.Degraded)
	assert.Equal(t, FallbackAnswer, resp.Answer)
}

func TestAskDegradesOnUnreachableBackend(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", 200*time.Millisecond, testLogger(t))
	resp := client.Ask(context.Background(), AskRequest{Query: "anything"})
	assert.True(t, resp.Degraded)
}

func TestAnalyzeConfidenceClamped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"answer":"ok","sources":[],"confidence":3.7}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, testLogger(t))
	resp := client.AnalyzeEntity(context.Background(), AnalyzeRequest{Query: "q", EntityName: "Alex"})

	assert.Equal(t, 1.0, resp.Confidence)
}

func TestRouteCandidateIDs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"answer_markdown": "**Alex Thompson** needs follow-up",
			"actions": [
				{"type": "open_panel", "target": "applicant", "payload": {"entity_id": "alex_id"}},
				{"type": "navigate", "target": "pipeline"}
			]
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, testLogger(t))
	resp := client.Route(context.Background(), RouteRequest{Query: "who needs attention?"})

	assert.Equal(t, []string{"alex_id"}, resp.CandidateIDs())
}
