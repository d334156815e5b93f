package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/pathfinderhq/pathfinder/internal/middleware"
)

func TestSecurityHeaders(t *testing.T) {
	for _, hsts := range []bool{false, true} {
		r := gin.New()
		r.Use(middleware.SecurityHeaders(hsts))
		r.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", http.NoBody))

		expected := map[string]string{
			"X-Content-Type-Options":  "nosniff",
			"X-Frame-Options":         "DENY",
			"Referrer-Policy":         "no-referrer",
			"Content-Security-Policy": "default-src 'none'; frame-ancestors 'none'",
			"Cache-Control":           "no-store",
		}

		for header, want := range expected {
			if got := w.Header().Get(header); got != want {
				t.Errorf("hsts=%v: %s = %q, want %q", hsts, header, got, want)
			}
		}

		gotHSTS := w.Header().Get("Strict-Transport-Security") != ""
		if gotHSTS != hsts {
			t.Errorf("hsts=%v: Strict-Transport-Security present = %v", hsts, gotHSTS)
		}
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RequestID(quietLogger()))

	var inHandler, clientID string
	r.GET("/test", func(c *gin.Context) {
		inHandler = c.GetString(middleware.RequestIDKey)
		clientID = c.GetString("client_request_id")
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set(middleware.RequestIDHeader, "client-abc")
	r.ServeHTTP(w, req)

	got := w.Header().Get(middleware.RequestIDHeader)
	if got == "" || got == "client-abc" {
		t.Fatalf("response request id = %q, want a fresh server id", got)
	}
	if inHandler != got {
		t.Errorf("context id %q != header id %q", inHandler, got)
	}
	if clientID != "client-abc" {
		t.Errorf("client_request_id = %q", clientID)
	}
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RequestID(quietLogger()), middleware.Recovery(quietLogger()))
	r.GET("/boom", func(*gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", http.NoBody))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("got %d, want 500", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestMaxBodySize(t *testing.T) {
	r := gin.New()
	r.Use(middleware.MaxBodySize(8))
	r.POST("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/test", http.NoBody)
	req.ContentLength = 64
	r.ServeHTTP(w, req)

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("got %d, want 413", w.Code)
	}
}
