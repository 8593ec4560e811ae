package admin

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"sync"

	"github.com/a-h/templ"
	"github.com/bornholm/go-x/slogx"
	"github.com/bornholm/saskatoon/internal/admin/component"
	"github.com/bornholm/saskatoon/internal/metrics"
	"github.com/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

type Registry interface {
	Register(m *ModelAdmin) error
}

// Site serves the list, add, change and delete pages of the registered
// models.
type Site struct {
	mux         *http.ServeMux
	opts        *Options
	getDatabase func(ctx context.Context) (*gorm.DB, error)

	mutex  sync.RWMutex
	admins map[string]*ModelAdmin
}

// ServeHTTP implements http.Handler. Request paths are relative to the site
// prefix.
func (s *Site) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Register adds a model to the site. Registering the same app and model
// twice fails with ErrAlreadyRegistered.
func (s *Site) Register(m *ModelAdmin) error {
	if err := m.init(); err != nil {
		return errors.WithStack(err)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.admins[m.key()]; exists {
		return errors.Wrapf(ErrAlreadyRegistered, "model '%s' is already registered", m.key())
	}

	s.admins[m.key()] = m

	return nil
}

// IsRegistered reports whether a model is registered under the given app
// label and model name.
func (s *Site) IsRegistered(app string, model string) bool {
	_, exists := s.modelAdmin(app, model)
	return exists
}

func (s *Site) IndexURL() string {
	return s.url()
}

func (s *Site) AppURL(app string) string {
	return s.url(app)
}

func (s *Site) ListURL(app string, model string) string {
	return s.url(app, model)
}

func (s *Site) AddURL(app string, model string) string {
	return s.url(app, model, "add")
}

// ChangeURL returns the path of the change page of a record, ie
// "/admin/member/person/3/".
func (s *Site) ChangeURL(app string, model string, pk any) string {
	return s.url(app, model, fmt.Sprintf("%v", pk))
}

func (s *Site) DeleteURL(app string, model string, pk any) string {
	return s.url(app, model, fmt.Sprintf("%v", pk), "delete")
}

func (s *Site) url(segments ...string) string {
	var sb strings.Builder

	sb.WriteString(strings.TrimSuffix(s.opts.Prefix, "/"))
	sb.WriteString("/")

	for _, seg := range segments {
		sb.WriteString(url.PathEscape(seg))
		sb.WriteString("/")
	}

	return sb.String()
}

func (s *Site) modelAdmin(app string, model string) (*ModelAdmin, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	m, exists := s.admins[app+"."+model]
	return m, exists
}

// apps returns the registered model admins grouped by app, apps and models
// sorted by name.
func (s *Site) apps() map[string][]*ModelAdmin {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	apps := map[string][]*ModelAdmin{}
	for _, m := range s.admins {
		apps[m.App] = append(apps[m.App], m)
	}

	for _, models := range apps {
		slices.SortFunc(models, func(a, b *ModelAdmin) int {
			return strings.Compare(a.VerboseNamePlural, b.VerboseNamePlural)
		})
	}

	return apps
}

func (s *Site) lookup(r *http.Request) (*ModelAdmin, error) {
	m, exists := s.modelAdmin(r.PathValue("app"), r.PathValue("model"))
	if !exists {
		return nil, errors.WithStack(NewHTTPError(http.StatusNotFound))
	}

	return m, nil
}

func (s *Site) getIndexPage(w http.ResponseWriter, r *http.Request) {
	s.renderIndexPage(w, r, "")
}

func (s *Site) getAppIndexPage(w http.ResponseWriter, r *http.Request) {
	s.renderIndexPage(w, r, r.PathValue("app"))
}

func (s *Site) renderIndexPage(w http.ResponseWriter, r *http.Request, only string) {
	apps := s.apps()

	if only != "" {
		if _, exists := apps[only]; !exists {
			s.handleError(w, r, NewHTTPError(http.StatusNotFound))
			return
		}
	}

	title := "Site administration"
	if only != "" {
		title = appLabel(only) + " administration"
	}

	vmodel := component.IndexPageVModel{
		Layout: s.layout(w, r, title),
	}

	if only != "" {
		vmodel.Layout.Breadcrumbs = []component.Link{
			{Label: "Home", URL: s.IndexURL()},
			{Label: appLabel(only)},
		}
	}

	names := make([]string, 0, len(apps))
	for app := range apps {
		if only != "" && app != only {
			continue
		}
		names = append(names, app)
	}
	slices.Sort(names)

	for _, app := range names {
		appVModel := component.AppVModel{
			Label: appLabel(app),
			URL:   s.AppURL(app),
		}

		for _, m := range apps[app] {
			appVModel.Models = append(appVModel.Models, component.ModelLinkVModel{
				Label:   capitalize(m.VerboseNamePlural),
				ListURL: s.ListURL(m.App, m.Name),
				AddURL:  s.AddURL(m.App, m.Name),
			})
		}

		vmodel.Apps = append(vmodel.Apps, appVModel)
	}

	templ.Handler(component.IndexPage(vmodel)).ServeHTTP(w, r)
}

// layout returns the common page view model. It consumes the pending flash
// messages, so it must be called before the response header is written.
func (s *Site) layout(w http.ResponseWriter, r *http.Request, title string) component.LayoutVModel {
	return component.LayoutVModel{
		SiteTitle: s.opts.Title,
		Title:     title,
		IndexURL:  s.IndexURL(),
		Messages:  s.popMessages(w, r),
	}
}

func (s *Site) breadcrumbs(m *ModelAdmin, current string) []component.Link {
	links := []component.Link{
		{Label: "Home", URL: s.IndexURL()},
		{Label: appLabel(m.App), URL: s.AppURL(m.App)},
		{Label: capitalize(m.VerboseNamePlural), URL: s.ListURL(m.App, m.Name)},
	}

	if current != "" {
		links = append(links, component.Link{Label: current})
	}

	return links
}

func (s *Site) addMessage(w http.ResponseWriter, r *http.Request, format string, args ...any) {
	if s.opts.Sessions == nil {
		return
	}

	sess, err := s.opts.Sessions.Get(r, s.opts.SessionName)
	if err != nil {
		slog.WarnContext(r.Context(), "could not retrieve admin session", slogx.Error(err))
		return
	}

	sess.AddFlash(fmt.Sprintf(format, args...))

	if err := sess.Save(r, w); err != nil {
		slog.ErrorContext(r.Context(), "could not save admin session", slogx.Error(errors.WithStack(err)))
	}
}

func (s *Site) popMessages(w http.ResponseWriter, r *http.Request) []string {
	if s.opts.Sessions == nil {
		return nil
	}

	sess, err := s.opts.Sessions.Get(r, s.opts.SessionName)
	if err != nil {
		slog.WarnContext(r.Context(), "could not retrieve admin session", slogx.Error(err))
		return nil
	}

	flashes := sess.Flashes()
	if len(flashes) == 0 {
		return nil
	}

	if err := sess.Save(r, w); err != nil {
		slog.ErrorContext(r.Context(), "could not save admin session", slogx.Error(errors.WithStack(err)))
	}

	messages := make([]string, 0, len(flashes))
	for _, f := range flashes {
		if m, ok := f.(string); ok {
			messages = append(messages, m)
		}
	}

	return messages
}

func (s *Site) notifyChange(ctx context.Context, m *ModelAdmin, action string) {
	metrics.AdminActions.With(map[string]string{
		metrics.LabelApp:    m.App,
		metrics.LabelModel:  m.Name,
		metrics.LabelAction: action,
	}).Inc()

	for _, fn := range s.opts.OnChange {
		fn(ctx, m.App, m.Name, action)
	}
}

func NewSite(getDatabase func(ctx context.Context) (*gorm.DB, error), funcs ...OptionFunc) *Site {
	s := &Site{
		mux:         http.NewServeMux(),
		opts:        NewOptions(funcs...),
		getDatabase: getDatabase,
		admins:      map[string]*ModelAdmin{},
	}

	s.mux.HandleFunc("GET /{$}", s.getIndexPage)
	s.mux.HandleFunc("GET /{app}/{$}", s.getAppIndexPage)
	s.mux.HandleFunc("GET /{app}/{model}/{$}", s.getChangeListPage)
	s.mux.HandleFunc("GET /{app}/{model}/add/{$}", s.getAddPage)
	s.mux.HandleFunc("POST /{app}/{model}/add/{$}", s.postAddPage)
	s.mux.HandleFunc("GET /{app}/{model}/{pk}/{$}", s.getChangePage)
	s.mux.HandleFunc("POST /{app}/{model}/{pk}/{$}", s.postChangePage)
	s.mux.HandleFunc("GET /{app}/{model}/{pk}/delete/{$}", s.getDeletePage)
	s.mux.HandleFunc("POST /{app}/{model}/{pk}/delete/{$}", s.postDeletePage)

	return s
}

var (
	_ http.Handler = &Site{}
	_ Registry     = &Site{}
)

func appLabel(app string) string {
	return cases.Title(language.English).String(humanizeName(app))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}
