package setup

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bornholm/saskatoon/internal/config"
	"github.com/pkg/errors"
)

func TestNewHTTPServerFromConfig(t *testing.T) {
	conf := &config.Config{
		Logger: config.Logger{Level: slog.LevelError},
		HTTP: config.HTTP{
			BaseURL:         "/",
			Address:         ":0",
			ShutdownTimeout: time.Second,
			Auth: config.Auth{
				Admin: config.User{Username: "admin", Password: "secret"},
			},
			Session: config.Session{
				Keys: []string{"0123456789abcdef0123456789abcdef"},
				Cookie: config.SessionCookie{
					Name:     "saskatoon_admin",
					Path:     "/admin/",
					MaxAge:   time.Hour,
					HTTPOnly: true,
				},
			},
			CORS: config.CORS{AllowedOrigins: []string{"*"}},
		},
		Storage: config.Storage{
			Database: config.Database{DSN: ":memory:"},
			Cache:    config.Cache{Size: 10, TTL: time.Minute},
		},
		Admin: config.Admin{Title: "Saskatoon administration", PerPage: 100},
	}

	server, err := NewHTTPServerFromConfig(context.Background(), conf)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	handler := server.Handler()

	type testCase struct {
		Name     string
		Path     string
		Auth     bool
		Status   int
		Location string
	}

	testCases := []testCase{
		{Name: "AdminWithoutSlash", Path: "/admin", Status: http.StatusMovedPermanently, Location: "/admin/"},
		{Name: "AdminUnauthorized", Path: "/admin/", Status: http.StatusUnauthorized},
		{Name: "AdminIndex", Path: "/admin/", Auth: true, Status: http.StatusOK},
		{Name: "AdminPropertyList", Path: "/admin/harvest/property/", Auth: true, Status: http.StatusOK},
		{Name: "AdminPersonList", Path: "/admin/member/person/", Auth: true, Status: http.StatusOK},
		{Name: "Properties", Path: "/properties", Status: http.StatusOK},
		{Name: "Harvests", Path: "/harvests", Status: http.StatusOK},
		{Name: "Index", Path: "/", Status: http.StatusOK},
		{Name: "Healthz", Path: "/healthz", Status: http.StatusOK},
		{Name: "Metrics", Path: "/metrics", Status: http.StatusOK},
		{Name: "Unknown", Path: "/unknown", Status: http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.Path, nil)
			if tc.Auth {
				req.SetBasicAuth("admin", "secret")
			}

			res := httptest.NewRecorder()

			handler.ServeHTTP(res, req)

			if e, g := tc.Status, res.Code; e != g {
				t.Errorf("res.Code: expected %d, got %d", e, g)
			}

			if tc.Location == "" {
				return
			}

			if e, g := tc.Location, res.Header().Get("Location"); e != g {
				t.Errorf("Location: expected '%s', got '%s'", e, g)
			}
		})
	}
}
