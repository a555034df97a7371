package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHealthHandler_Liveness(t *testing.T) {
	rec := httptest.NewRecorder()
	c := newEcho().NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)

	if err := NewHealthHandler(nil).Liveness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || decodeBody(t, rec)["status"] != "ok" {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}
}

func TestHealthHandler_Readiness(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	cases := []struct {
		name   string
		probes map[string]Probe
		code   int
		status string
	}{
		{"all up", map[string]Probe{"mongodb": ok, "redis": ok}, http.StatusOK, "ok"},
		{"cache disabled", map[string]Probe{"mongodb": ok}, http.StatusOK, "ok"},
		{"redis down", map[string]Probe{"mongodb": ok, "redis": down}, http.StatusServiceUnavailable, "degraded"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := newEcho().NewContext(httptest.NewRequest(http.MethodGet, "/health/ready", nil), rec)

			if err := NewHealthHandler(tc.probes).Readiness(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			resp := decodeBody(t, rec)
			if resp["status"] != tc.status {
				t.Fatalf("expected %q, got %v", tc.status, resp["status"])
			}
			deps, _ := resp["dependencies"].(map[string]any)
			if len(deps) != len(tc.probes) {
				t.Fatalf("expected %d dependencies, got %+v", len(tc.probes), deps)
			}
		})
	}
}
