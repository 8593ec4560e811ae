package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/pkg/errors"
)

func TestParse(t *testing.T) {
	t.Setenv("SASKATOON_LOGGER_LEVEL", "DEBUG")
	t.Setenv("SASKATOON_HTTP_ADDRESS", ":9000")
	t.Setenv("SASKATOON_HTTP_AUTH_ADMIN_USERNAME", "admin")
	t.Setenv("SASKATOON_HTTP_CORS_ALLOWED_ORIGINS", "https://a.example.org,https://b.example.org")
	t.Setenv("SASKATOON_STORAGE_CACHE_TTL", "5m")
	t.Setenv("SASKATOON_ADMIN_PER_PAGE", "25")

	conf, err := Parse()
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := slog.LevelDebug, conf.Logger.Level; e != g {
		t.Errorf("conf.Logger.Level: expected %v, got %v", e, g)
	}

	if e, g := ":9000", conf.HTTP.Address; e != g {
		t.Errorf("conf.HTTP.Address: expected %s, got %s", e, g)
	}

	if e, g := "admin", conf.HTTP.Auth.Admin.Username; e != g {
		t.Errorf("conf.HTTP.Auth.Admin.Username: expected %s, got %s", e, g)
	}

	if e, g := 2, len(conf.HTTP.CORS.AllowedOrigins); e != g {
		t.Errorf("len(conf.HTTP.CORS.AllowedOrigins): expected %d, got %d", e, g)
	}

	if e, g := 5*time.Minute, conf.Storage.Cache.TTL; e != g {
		t.Errorf("conf.Storage.Cache.TTL: expected %v, got %v", e, g)
	}

	if e, g := 25, conf.Admin.PerPage; e != g {
		t.Errorf("conf.Admin.PerPage: expected %d, got %d", e, g)
	}

	if e, g := "data.sqlite", conf.Storage.Database.DSN; e != g {
		t.Errorf("conf.Storage.Database.DSN: expected %s, got %s", e, g)
	}
}
