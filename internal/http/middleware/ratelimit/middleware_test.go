package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestMiddleware(t *testing.T) {
	handler := Middleware(WithRate(time.Hour, 2))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	request := func(remoteAddr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/properties", nil)
		req.RemoteAddr = remoteAddr
		res := httptest.NewRecorder()
		handler.ServeHTTP(res, req)
		return res
	}

	for i := range 2 {
		if e, g := http.StatusNoContent, request("192.0.2.1:1234").Code; e != g {
			t.Errorf("request #%d: expected status %d, got %d", i, e, g)
		}
	}

	res := request("192.0.2.1:5678")

	if e, g := http.StatusTooManyRequests, res.Code; e != g {
		t.Errorf("third request: expected status %d, got %d", e, g)
	}

	if res.Header().Get("Retry-After") == "" {
		t.Errorf("third request: expected Retry-After header")
	}

	// Other clients have their own limiter
	if e, g := http.StatusNoContent, request("192.0.2.2:1234").Code; e != g {
		t.Errorf("other client: expected status %d, got %d", e, g)
	}
}

func TestClientAddr(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	req.Header.Set("X-Forwarded-For", "198.51.100.7, 192.0.2.1")

	if e, g := "192.0.2.1", clientAddr(req, false); e != g {
		t.Errorf("clientAddr(req, false): expected '%s', got '%s'", e, g)
	}

	if e, g := "198.51.100.7", clientAddr(req, true); e != g {
		t.Errorf("clientAddr(req, true): expected '%s', got '%s'", e, g)
	}
}
