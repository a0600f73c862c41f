package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	e := echo.New()
	e.Use(RequestLogger(zerolog.New(&buf)))
	e.GET("/v1/healthz", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/healthz?x=1", nil)
	e.ServeHTTP(httptest.NewRecorder(), req)

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("expected one JSON log line, got %q: %v", buf.String(), err)
	}
	if line["method"] != "GET" || line["uri"] != "/v1/healthz?x=1" {
		t.Errorf("unexpected line %v", line)
	}
	if line["status"] != float64(http.StatusNoContent) {
		t.Errorf("status = %v", line["status"])
	}
	if line["level"] != "info" {
		t.Errorf("level = %v", line["level"])
	}
}
