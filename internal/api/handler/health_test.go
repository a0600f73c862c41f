package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestHealthHandler_Liveness(t *testing.T) {
	h := NewHealthHandler()
	h.now = func() time.Time { return fixedTime }

	c, rec := newContext(http.MethodGet, "/v1/healthz", nil, "")
	if err := h.Liveness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	resp := decode(t, rec)
	if rec.Code != http.StatusOK || resp["status"] != "success" {
		t.Fatalf("unexpected response %d %+v", rec.Code, resp)
	}
	if resp["timestamp"] != "2024-03-01T12:00:00Z" || resp["message"] == "" {
		t.Errorf("unexpected payload %+v", resp)
	}
}

func TestReadinessHandler(t *testing.T) {
	up := Dependency{Name: "mongodb", Ping: func(context.Context) error { return nil }}
	down := Dependency{Name: "redis", Ping: func(context.Context) error { return errors.New("connection refused") }}

	t.Run("all up", func(t *testing.T) {
		h := NewReadinessHandler(newTestMetrics(), up)
		c, rec := newContext(http.MethodGet, "/v1/healthz/ready", nil, "")
		if err := h.Readiness(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		resp := decode(t, rec)
		if rec.Code != http.StatusOK || resp["status"] != "success" {
			t.Fatalf("unexpected response %d %+v", rec.Code, resp)
		}
	})

	t.Run("degraded", func(t *testing.T) {
		m := newTestMetrics()
		h := NewReadinessHandler(m, up, down)
		c, rec := newContext(http.MethodGet, "/v1/healthz/ready", nil, "")
		if err := h.Readiness(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", rec.Code)
		}
		resp := decode(t, rec)
		deps, _ := resp["dependencies"].(map[string]any)
		redis, _ := deps["redis"].(map[string]any)
		if resp["status"] != "degraded" || redis["status"] != "unhealthy" {
			t.Fatalf("unexpected payload %+v", resp)
		}
		if testutil.ToFloat64(m.DependencyUp.WithLabelValues("redis")) != 0 ||
			testutil.ToFloat64(m.DependencyUp.WithLabelValues("mongodb")) != 1 {
			t.Error("dependency gauges not updated")
		}
	})
}
