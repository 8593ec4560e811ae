package setup

import (
	"context"

	"github.com/bornholm/saskatoon/internal/config"
	"github.com/bornholm/saskatoon/internal/http"
	"github.com/bornholm/saskatoon/internal/http/handler/app"
	"github.com/bornholm/saskatoon/internal/http/handler/app/component"
	"github.com/bornholm/saskatoon/internal/http/handler/harvest"
	"github.com/bornholm/saskatoon/internal/http/middleware/ratelimit"
	"github.com/pkg/errors"
)

func NewHTTPServerFromConfig(ctx context.Context, conf *config.Config) (*http.Server, error) {
	site, err := getAdminSiteFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not configure admin site from config")
	}

	store, err := getCachedStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not configure store from config")
	}

	harvestOptions := []harvest.OptionFunc{
		harvest.WithAllowedOrigins(conf.HTTP.CORS.AllowedOrigins...),
	}

	if rl := conf.HTTP.RateLimit; rl.Enabled {
		harvestOptions = append(harvestOptions, harvest.WithMiddlewares(
			ratelimit.Middleware(
				ratelimit.WithTrustHeaders(rl.TrustHeaders),
				ratelimit.WithRate(rl.Interval, rl.Burst),
				ratelimit.WithCache(rl.CacheSize, rl.CacheTTL),
			),
		))
	}

	harvestRoutes := harvest.NewHandler(store, store, harvestOptions...)

	appRoutes := app.NewHandler(
		component.Link{Label: "Administration", URL: site.IndexURL()},
		component.Link{Label: "Properties", URL: "/properties"},
		component.Link{Label: "Harvests", URL: "/harvests"},
	)

	options := []http.OptionFunc{
		http.WithAddress(conf.HTTP.Address),
		http.WithBaseURL(conf.HTTP.BaseURL),
		http.WithShutdownTimeout(conf.HTTP.ShutdownTimeout),
		// Evaluated in order, the first matching route wins
		http.WithRoute(adminPrefix, site),
		http.WithRoute("", harvestRoutes),
		http.WithRoute("", appRoutes),
	}

	if admin := conf.HTTP.Auth.Admin; admin.Username != "" {
		options = append(options, http.WithBasicAuth(admin.Username, admin.Password, adminPrefix))
	}

	server := http.NewServer(options...)

	return server, nil
}
