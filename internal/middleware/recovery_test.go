package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func setupRecoveryRouter(logger *slog.Logger, after *bool) *gin.Engine {
	r := gin.New()
	r.Use(Recovery(logger))
	r.Use(func(c *gin.Context) {
		c.Next()
		if after != nil && !c.IsAborted() {
			*after = true
		}
	})
	r.GET("/panic", func(c *gin.Context) {
		panic("gallery exploded")
	})
	r.GET("/ok", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r
}

func TestRecovery_NoPanicPassesThrough(t *testing.T) {
	var logBuf bytes.Buffer
	r := setupRecoveryRouter(newTestLogger(&logBuf), nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

	if w.Code != http.StatusOK || w.Body.String() != "ok" {
		t.Fatalf("got %d %q", w.Code, w.Body.String())
	}
	if logBuf.Len() != 0 {
		t.Errorf("unexpected log output: %s", logBuf.String())
	}
}

func TestRecovery_PanicRendersEnvelope(t *testing.T) {
	for _, accept := range []string{"", "application/json", "text/html"} {
		t.Run("accept="+accept, func(t *testing.T) {
			var logBuf bytes.Buffer
			r := setupRecoveryRouter(newTestLogger(&logBuf), nil)

			req := httptest.NewRequest(http.MethodGet, "/panic", nil)
			if accept != "" {
				req.Header.Set("Accept", accept)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != http.StatusInternalServerError {
				t.Fatalf("status = %d; want 500", w.Code)
			}
			var body struct {
				Code    int    `json:"code"`
				Message string `json:"message"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("body is not JSON: %q", w.Body.String())
			}
			if body.Code != 500 || body.Message != "internal server error" {
				t.Errorf("body = %+v", body)
			}
		})
	}
}

func TestRecovery_LogsPanicAndStack(t *testing.T) {
	var logBuf bytes.Buffer
	r := setupRecoveryRouter(newTestLogger(&logBuf), nil)
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/panic", nil))

	out := logBuf.String()
	for _, want := range []string{"panic recovered", "gallery exploded", "path=/panic", "stack="} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}
}

func TestRecovery_AbortsChain(t *testing.T) {
	var logBuf bytes.Buffer
	completed := false
	r := setupRecoveryRouter(newTestLogger(&logBuf), &completed)
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/panic", nil))

	if completed {
		t.Error("middleware after the panic saw a completed chain")
	}
}
