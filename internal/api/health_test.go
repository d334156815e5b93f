package api_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/pathfinderhq/pathfinder/internal/api"
	"github.com/pathfinderhq/pathfinder/internal/db"
)

func healthRouter(probe api.DBProbe) *gin.Engine {
	h := api.NewHealthHandler(probe, nil, testLogger(), "test-v1")

	r := gin.New()
	r.GET("/health", h.Liveness)
	r.GET("/ready", h.Readiness)

	return r
}

func TestLiveness_ReturnsOK(t *testing.T) {
	t.Parallel()

	w := doRequest(healthRouter(nil), http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if body["status"] != "ok" || body["version"] != "test-v1" || body["database"] != "not_configured" {
		t.Errorf("unexpected body %v", body)
	}
}

func TestLiveness_DatabaseDown(t *testing.T) {
	t.Parallel()

	w := doRequest(healthRouter(&mockDB{healthErr: errors.New("refused")}), http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("liveness must stay 200, got %d", w.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["database"] != "disconnected" {
		t.Errorf("database = %v", body["database"])
	}
}

func TestReadiness(t *testing.T) {
	t.Parallel()

	expected := int64(db.SchemaVersion())

	tests := []struct {
		name     string
		probe    api.DBProbe
		wantCode int
	}{
		{"ready", &mockDB{version: expected}, http.StatusOK},
		{"no database", nil, http.StatusServiceUnavailable},
		{"database down", &mockDB{healthErr: errors.New("refused")}, http.StatusServiceUnavailable},
		{"schema behind", &mockDB{version: expected - 1}, http.StatusServiceUnavailable},
		{"schema unreadable", &mockDB{schemaErr: errors.New("no table")}, http.StatusServiceUnavailable},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			w := doRequest(healthRouter(tc.probe), http.MethodGet, "/ready", "")
			if w.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d: %s", tc.wantCode, w.Code, w.Body.String())
			}
		})
	}
}
