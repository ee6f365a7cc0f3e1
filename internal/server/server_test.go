package server_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/gzhole/gravilog/internal/assess"
	"github.com/gzhole/gravilog/internal/knowledge"
	"github.com/gzhole/gravilog/internal/logger"
	"github.com/gzhole/gravilog/internal/server"
)

func newTestServer(t *testing.T, log *logger.Logger) *server.Server {
	t.Helper()
	engine := assess.NewEngine(knowledge.Builtin(), nil, nil)
	return server.NewServer(server.Config{ListenAddr: ":0", Logger: log}, engine)
}

func doJSON(t *testing.T, s http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode JSON response: %v (body: %s)", err, rec.Body.String())
	}
}

func TestServer_Health(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)

	rec := doJSON(t, s, "GET", "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var h assess.Health
	decodeJSON(t, rec, &h)
	if h.Status != "healthy" || h.Service != assess.ServiceName || h.Strategy != "phrase" {
		t.Errorf("unexpected health %+v", h)
	}
}

func TestServer_Assess(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)

	rec := doJSON(t, s, "POST", "/assess", `{"symptoms":["severe headaches","vision changes","swelling"],"gestationalWeek":32}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var res map[string]any
	decodeJSON(t, rec, &res)
	if res["riskLevel"] != "high" || res["urgency"] != "immediate" {
		t.Errorf("unexpected result %v", res)
	}
	if recs, ok := res["recommendations"].([]any); !ok || len(recs) == 0 || len(recs) > 5 {
		t.Errorf("unexpected recommendations %v", res["recommendations"])
	}
}

func TestServer_AssessEmptyList(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)

	rec := doJSON(t, s, "POST", "/assess", `{"symptoms":[]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var res assess.Result
	decodeJSON(t, rec, &res)
	if res.RiskLevel != "low" {
		t.Errorf("expected low tier for empty list, got %s", res.RiskLevel)
	}
}

func TestServer_AssessMalformedJSON(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)

	for _, body := range []string{
		`{"symptoms":`,
		`not json`,
		`{"gestationalWeek":"ten"}`,
		`{"symptoms":[]}garbage`,
		`{"symptoms":[]} {"symptoms":["bleeding"]}`,
	} {
		rec := doJSON(t, s, "POST", "/assess", body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %q: expected 400, got %d", body, rec.Code)
		}
		var e map[string]string
		decodeJSON(t, rec, &e)
		if e["error"] == "" {
			t.Errorf("body %q: expected error message", body)
		}
	}
}

func TestServer_AssessTrailingWhitespace(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)

	rec := doJSON(t, s, "POST", "/assess", "{\"symptoms\":[\"mild nausea\"]}\n  ")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestServer_Symptoms(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)

	rec := doJSON(t, s, "GET", "/symptoms", "")
	var list []knowledge.SymptomInfo
	decodeJSON(t, rec, &list)
	if len(list) != 30 {
		t.Errorf("expected 30 symptoms, got %d", len(list))
	}
}

func TestServer_CORS(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)

	rec := doJSON(t, s, "GET", "/health", "")
	if origin := rec.Header().Get("Access-Control-Allow-Origin"); origin != "*" {
		t.Errorf("expected CORS origin *, got %q", origin)
	}

	rec = doJSON(t, s, "OPTIONS", "/assess", "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204 for preflight, got %d", rec.Code)
	}
	if methods := rec.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(methods, "POST") {
		t.Errorf("expected POST in allowed methods, got %q", methods)
	}
}

func TestServer_RequestID(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	s := newTestServer(t, logger.NewWriter(&buf, logger.LevelInfo))

	rec := doJSON(t, s, "GET", "/health", "")
	id := rec.Header().Get(server.RequestIDHeader)
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("expected generated uuid request id, got %q", id)
	}
	if !strings.Contains(buf.String(), id) {
		t.Errorf("expected request id in log line, got %q", buf.String())
	}

	given := uuid.NewString()
	req := httptest.NewRequest("GET", "/health", nil)
	req.Header.Set(server.RequestIDHeader, given)
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if got := rec.Header().Get(server.RequestIDHeader); got != given {
		t.Errorf("expected inbound request id %s to be kept, got %s", given, got)
	}
}

func TestServer_DoesNotLogSymptoms(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	s := newTestServer(t, logger.NewWriter(&buf, logger.LevelDebug))

	doJSON(t, s, "POST", "/assess", `{"symptoms":["unusual-marker-symptom"]}`)
	if strings.Contains(buf.String(), "unusual-marker-symptom") {
		t.Error("symptom text leaked into logs")
	}
}
