package admin

import (
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"strconv"

	"github.com/a-h/templ"
	"github.com/bornholm/saskatoon/internal/admin/component"
	"github.com/bornholm/saskatoon/internal/query"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const (
	paramSearch = "q"
	paramPage   = "p"
)

func (s *Site) getChangeListPage(w http.ResponseWriter, r *http.Request) {
	vmodel, err := s.fillChangeListPageVModel(w, r)
	if err != nil {
		s.handleError(w, r, errors.WithStack(err))
		return
	}

	changeListPage := component.ChangeListPage(*vmodel)
	templ.Handler(changeListPage).ServeHTTP(w, r)
}

func (s *Site) fillChangeListPageVModel(w http.ResponseWriter, r *http.Request) (*component.ChangeListPageVModel, error) {
	ctx := r.Context()

	m, err := s.lookup(r)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	db, err := s.getDatabase(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	sch, err := m.schema(db)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	table := sch.Table
	params := r.URL.Query()

	base := db.WithContext(ctx).Model(m.Model).Table(table)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, errors.WithStack(err)
	}

	tx := base
	for _, f := range m.ListFilter {
		tx, err = f.Apply(r, tx)
		if err != nil {
			return nil, errors.WithStack(err)
		}
	}

	search := params.Get(paramSearch)
	if search != "" && len(m.SearchFields) > 0 {
		for _, j := range m.Joins {
			tx = tx.Joins(j)
		}

		tx = tx.Scopes(query.Search(search, m.searchFields(table)...))
	}

	tx = tx.Session(&gorm.Session{})

	var filteredTotal int64
	if err := tx.Count(&filteredTotal).Error; err != nil {
		return nil, errors.WithStack(err)
	}

	perPage := m.PerPage
	if perPage <= 0 {
		perPage = s.opts.PerPage
	}

	pages := int((filteredTotal + int64(perPage) - 1) / int64(perPage))
	if pages < 1 {
		pages = 1
	}

	page, _ := strconv.Atoi(params.Get(paramPage))
	page = min(max(page, 1), pages)

	find := tx.Select(table + ".*")
	for _, o := range m.ordering(table, sch) {
		find = find.Order(o)
	}
	for _, p := range m.Preloads {
		find = find.Preload(p)
	}

	records := reflect.New(reflect.SliceOf(reflect.TypeOf(m.Model)))
	if err := find.Offset((page - 1) * perPage).Limit(perPage).Find(records.Interface()).Error; err != nil {
		return nil, errors.WithStack(err)
	}

	vmodel := &component.ChangeListPageVModel{
		Layout:        s.layout(w, r, "Select "+m.VerboseName+" to change"),
		AddURL:        s.AddURL(m.App, m.Name),
		SearchEnabled: len(m.SearchFields) > 0,
		Search:        search,
		Total:         total,
		FilteredTotal: filteredTotal,
		Page:          page,
		Pages:         pages,
	}

	vmodel.Layout.Breadcrumbs = s.breadcrumbs(m, "")

	for _, c := range m.ListDisplay {
		vmodel.Columns = append(vmodel.Columns, c.Label)
	}

	slice := records.Elem()
	for i := range slice.Len() {
		record := slice.Index(i).Interface()

		pk, err := primaryKey(ctx, sch, record)
		if err != nil {
			return nil, errors.WithStack(err)
		}

		row := component.ChangeListRowVModel{
			ChangeURL: s.ChangeURL(m.App, m.Name, pk),
			Cells:     make([]templ.Component, 0, len(m.ListDisplay)),
		}

		for _, c := range m.ListDisplay {
			value, err := c.Value(ctx, db.WithContext(ctx), record)
			if err != nil {
				return nil, errors.Wrapf(err, "could not compute column '%s'", c.Name)
			}

			row.Cells = append(row.Cells, DisplayValue(value))
		}

		vmodel.Rows = append(vmodel.Rows, row)
	}

	for _, f := range m.ListFilter {
		choices, err := f.Choices(ctx, db.WithContext(ctx))
		if err != nil {
			return nil, errors.Wrapf(err, "could not retrieve choices of filter '%s'", f.Parameter())
		}

		current := params.Get(f.Parameter())

		fvmodel := component.FilterVModel{
			Title: f.Title(),
			Choices: []component.FilterChoiceVModel{
				{Label: "All", URL: withParam(params, f.Parameter(), ""), Selected: current == ""},
			},
		}

		for _, c := range choices {
			fvmodel.Choices = append(fvmodel.Choices, component.FilterChoiceVModel{
				Label:    c.Label,
				URL:      withParam(params, f.Parameter(), c.Value),
				Selected: current == c.Value,
			})
		}

		vmodel.Filters = append(vmodel.Filters, fvmodel)
	}

	if page > 1 {
		vmodel.PrevURL = withParam(params, paramPage, strconv.Itoa(page-1))
	}

	if page < pages {
		vmodel.NextURL = withParam(params, paramPage, strconv.Itoa(page+1))
	}

	return vmodel, nil
}

// withParam returns a relative URL with the given query parameter set, or
// removed when the value is empty. Changing a filter resets the pagination.
func withParam(params url.Values, name string, value string) string {
	updated := url.Values{}
	for k, v := range params {
		updated[k] = v
	}

	if name != paramPage {
		updated.Del(paramPage)
	}

	if value == "" {
		updated.Del(name)
	} else {
		updated.Set(name, value)
	}

	if len(updated) == 0 {
		return "?"
	}

	return fmt.Sprintf("?%s", updated.Encode())
}
