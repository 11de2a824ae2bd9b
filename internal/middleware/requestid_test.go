package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/simp-lee/logger"
)

func setupRequestIDRouter(cfg RequestIDConfig) *gin.Engine {
	r := gin.New()
	r.Use(RequestIDWithConfig(cfg))
	r.GET("/id", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})
	r.GET("/ctx", func(c *gin.Context) {
		for _, a := range logger.FromContext(c.Request.Context()) {
			if a.Key == "request_id" {
				c.String(http.StatusOK, a.Value.String())
				return
			}
		}
		c.String(http.StatusOK, "")
	})
	return r
}

func requestID(t *testing.T, r http.Handler, path, upstream string) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if upstream != "" {
		req.Header.Set(requestIDHeader, upstream)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(requestIDHeader); got != w.Body.String() {
		t.Errorf("header %q != context id %q", got, w.Body.String())
	}
	return w.Body.String()
}

func TestRequestID_Upstream(t *testing.T) {
	tests := []struct {
		name     string
		trust    bool
		upstream string
		reused   bool
	}{
		{"untrusted by default", false, "edge-123", false},
		{"trusted", true, "edge-123", true},
		{"boundary length", true, strings.Repeat("a", 64), true},
		{"too long", true, strings.Repeat("a", 65), false},
		{"bad charset", true, "bad_id", false},
		{"absent", true, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := setupRequestIDRouter(RequestIDConfig{TrustUpstream: tt.trust})
			id := requestID(t, r, "/id", tt.upstream)
			if tt.reused {
				if id != tt.upstream {
					t.Errorf("id = %q; want upstream %q", id, tt.upstream)
				}
				return
			}
			if _, err := uuid.Parse(id); err != nil {
				t.Errorf("id = %q; want a generated UUID", id)
			}
		})
	}
}

func TestRequestID_StoredInLogContext(t *testing.T) {
	r := setupRequestIDRouter(RequestIDConfig{TrustUpstream: true})
	if id := requestID(t, r, "/ctx", "ctx-test-456"); id != "ctx-test-456" {
		t.Errorf("context id = %q", id)
	}
}

func TestRequestID_UniquePerRequest(t *testing.T) {
	r := setupRequestIDRouter(RequestIDConfig{})
	seen := make(map[string]bool)
	for range 100 {
		id := requestID(t, r, "/id", "")
		if seen[id] {
			t.Fatalf("duplicate request id %q", id)
		}
		seen[id] = true
	}
}

func TestGetRequestID_WithoutMiddleware(t *testing.T) {
	r := gin.New()
	r.GET("/no-id", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/no-id", nil))
	if w.Body.String() != "" {
		t.Errorf("id = %q; want empty", w.Body.String())
	}
}
