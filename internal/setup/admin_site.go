package setup

import (
	"context"
	"log/slog"

	"github.com/bornholm/saskatoon/internal/admin"
	"github.com/bornholm/saskatoon/internal/config"
	"github.com/bornholm/saskatoon/internal/harvest"
	"github.com/bornholm/saskatoon/internal/member"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const adminPrefix = "admin/"

var getAdminSiteFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*admin.Site, error) {
	store, err := getStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	cachedStore, err := getCachedStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	sessionStore, err := getSessionStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	site := admin.NewSite(
		func(ctx context.Context) (*gorm.DB, error) {
			return store.Database(ctx)
		},
		admin.WithPrefix("/"+adminPrefix),
		admin.WithTitle(conf.Admin.Title),
		admin.WithPerPage(conf.Admin.PerPage),
		admin.WithSessions(sessionStore, conf.HTTP.Session.Cookie.Name),
		// Records served by the public api may have changed
		admin.WithOnChange(func(ctx context.Context, app string, model string, action string) {
			slog.DebugContext(ctx, "purging store cache", slog.String("app", app), slog.String("model", model), slog.String("action", action))
			cachedStore.Purge()
		}),
	)

	if err := harvest.RegisterAdmin(site); err != nil {
		return nil, errors.Wrap(err, "could not register harvest models")
	}

	if err := member.RegisterAdmin(site); err != nil {
		return nil, errors.Wrap(err, "could not register member models")
	}

	return site, nil
})
