package admin

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"strconv"

	"github.com/a-h/templ"
	"github.com/bornholm/saskatoon/internal/admin/component"
	"github.com/bornholm/saskatoon/internal/metrics"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

const (
	inputID     = "id"
	inputDelete = "DELETE"
)

// errInvalidForm rolls back the save transaction when the submission is
// rejected.
var errInvalidForm = errors.New("invalid form")

// changeForm holds what is needed to render or save the form of a record.
type changeForm struct {
	admin  *ModelAdmin
	db     *gorm.DB
	schema *schema.Schema
	record any
	pk     any
	adding bool

	// values are the submitted values, nil when the form is rendered from
	// the record
	values url.Values
	errs   ValidationErrors
}

func (s *Site) newChangeForm(r *http.Request, adding bool) (*changeForm, error) {
	ctx := r.Context()

	m, err := s.lookup(r)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	db, err := s.getDatabase(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	db = db.WithContext(ctx)

	sch, err := m.schema(db)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	form := &changeForm{
		admin:  m,
		db:     db,
		schema: sch,
		record: m.newRecord(),
		adding: adding,
		errs:   NewValidationErrors(),
	}

	if adding {
		return form, nil
	}

	if sch.PrioritizedPrimaryField == nil {
		return nil, errors.Errorf("model '%s' has no primary key", sch.Name)
	}

	pk := r.PathValue("pk")

	err = db.Session(&gorm.Session{NewDB: true}).
		Where(sch.Table+"."+sch.PrioritizedPrimaryField.DBName+" = ?", pk).
		First(form.record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.WithStack(NewHTTPError(http.StatusNotFound))
		}

		return nil, errors.WithStack(err)
	}

	form.pk, err = primaryKey(ctx, sch, form.record)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return form, nil
}

func (s *Site) getAddPage(w http.ResponseWriter, r *http.Request) {
	form, err := s.newChangeForm(r, true)
	if err != nil {
		s.handleError(w, r, errors.WithStack(err))
		return
	}

	initial := url.Values{}
	for name, value := range form.admin.Initial {
		initial.Set(name, value)
	}
	for name, values := range r.URL.Query() {
		initial[name] = values
	}

	form.values = initial

	s.renderChangeForm(w, r, form, http.StatusOK)
}

func (s *Site) getChangePage(w http.ResponseWriter, r *http.Request) {
	form, err := s.newChangeForm(r, false)
	if err != nil {
		s.handleError(w, r, errors.WithStack(err))
		return
	}

	s.renderChangeForm(w, r, form, http.StatusOK)
}

func (s *Site) postAddPage(w http.ResponseWriter, r *http.Request) {
	s.handleChangeFormSubmission(w, r, true)
}

func (s *Site) postChangePage(w http.ResponseWriter, r *http.Request) {
	s.handleChangeFormSubmission(w, r, false)
}

func (s *Site) handleChangeFormSubmission(w http.ResponseWriter, r *http.Request, adding bool) {
	ctx := r.Context()

	form, err := s.newChangeForm(r, adding)
	if err != nil {
		s.handleError(w, r, errors.WithStack(err))
		return
	}

	if err := r.ParseForm(); err != nil {
		s.handleError(w, r, errors.WithStack(NewHTTPError(http.StatusBadRequest)))
		return
	}

	form.values = r.PostForm

	err = form.db.Transaction(func(tx *gorm.DB) error {
		return form.save(ctx, tx)
	})
	if err != nil {
		if errors.Is(err, errInvalidForm) {
			if adding {
				form.record = form.admin.newRecord()
				form.pk = nil
			}

			s.renderChangeForm(w, r, form, http.StatusBadRequest)
			return
		}

		s.handleError(w, r, errors.WithStack(err))
		return
	}

	m := form.admin
	label := displayText(form.record)

	action := metrics.ActionChange
	verb := "changed"
	if adding {
		action = metrics.ActionAdd
		verb = "added"
	}

	s.notifyChange(ctx, m, action)

	var redirectURL string

	switch {
	case form.values.Has("_continue"):
		s.addMessage(w, r, "The %s “%s” was %s successfully. You may edit it again below.", m.VerboseName, label, verb)
		redirectURL = s.ChangeURL(m.App, m.Name, form.pk)
	case form.values.Has("_addanother"):
		s.addMessage(w, r, "The %s “%s” was %s successfully. You may add another %s below.", m.VerboseName, label, verb, m.VerboseName)
		redirectURL = s.AddURL(m.App, m.Name)
	default:
		s.addMessage(w, r, "The %s “%s” was %s successfully.", m.VerboseName, label, verb)
		redirectURL = s.ListURL(m.App, m.Name)
	}

	http.Redirect(w, r, redirectURL, http.StatusSeeOther)
}

// save assigns the submitted values to the record and its inline children,
// validates and stores them. It returns errInvalidForm when the submission
// is rejected, the messages being collected in form.errs.
func (f *changeForm) save(ctx context.Context, tx *gorm.DB) error {
	fields := editableFields(f.schema, f.admin.Fields, f.admin.Exclude)

	for _, ef := range fields {
		if msg := ef.assign(ctx, f.record, f.values, ef.Name); msg != "" {
			f.errs.Add(ef.Name, "%s", msg)
		}
	}

	if f.errs.Empty() {
		formErrs, err := cleanRecord(ctx, f.admin.Form, f.record)
		if err != nil {
			return errors.WithStack(err)
		}

		f.errs.Merge("", formErrs)
	}

	if !f.errs.Empty() {
		return errInvalidForm
	}

	if err := tx.Omit(clause.Associations).Save(f.record).Error; err != nil {
		return errors.WithStack(err)
	}

	pk, err := primaryKey(ctx, f.schema, f.record)
	if err != nil {
		return errors.WithStack(err)
	}

	f.pk = pk

	for _, ef := range fields {
		if ef.Kind != kindMultiSelect {
			continue
		}

		if err := replaceAssociation(ctx, tx, f.record, ef.relation, f.values[ef.Name]); err != nil {
			return errors.Wrapf(err, "could not save '%s'", ef.Name)
		}
	}

	for _, inline := range f.admin.Inlines {
		if err := f.saveInline(ctx, tx, inline); err != nil {
			return errors.WithStack(err)
		}
	}

	if !f.errs.Empty() {
		return errInvalidForm
	}

	return nil
}

func (f *changeForm) saveInline(ctx context.Context, tx *gorm.DB, inline *Inline) error {
	sch, err := inline.schema(tx)
	if err != nil {
		return errors.WithStack(err)
	}

	fkField, err := inline.foreignKeyField(sch)
	if err != nil {
		return errors.WithStack(err)
	}

	if sch.PrioritizedPrimaryField == nil {
		return errors.Errorf("inline model '%s' has no primary key", sch.Name)
	}

	fields := inline.fields(sch)

	total, err := strconv.Atoi(f.values.Get(inline.totalFormsName()))
	if err != nil || total < 0 {
		total = 0
	}

	for i := range total {
		prefix := inline.inputPrefix(i)
		id := f.values.Get(prefix + inputID)

		child := inline.newRecord()

		if id != "" {
			err := tx.Session(&gorm.Session{NewDB: true}).
				Where(sch.PrioritizedPrimaryField.DBName+" = ? AND "+fkField.DBName+" = ?", id, f.pk).
				First(child).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					f.errs.Add(prefix+NonFieldErrors, "This %s does not exist anymore.", inline.VerboseName)
					continue
				}

				return errors.WithStack(err)
			}

			if f.values.Get(prefix+inputDelete) != "" {
				if err := tx.Delete(child).Error; err != nil {
					return errors.WithStack(err)
				}

				continue
			}
		} else if isBlank(f.values, prefix, fields) {
			continue
		}

		if err := fkField.Set(ctx, reflect.ValueOf(child), f.pk); err != nil {
			return errors.WithStack(err)
		}

		rowErrs := NewValidationErrors()

		for _, ef := range fields {
			if msg := ef.assign(ctx, child, f.values, prefix+ef.Name); msg != "" {
				rowErrs.Add(ef.Name, "%s", msg)
			}
		}

		if rowErrs.Empty() {
			formErrs, err := cleanRecord(ctx, inline.Form, child)
			if err != nil {
				return errors.WithStack(err)
			}

			rowErrs.Merge("", formErrs)
		}

		if !rowErrs.Empty() {
			f.errs.Merge(prefix, rowErrs)
			continue
		}

		if err := tx.Omit(clause.Associations).Save(child).Error; err != nil {
			return errors.WithStack(err)
		}

		for _, ef := range fields {
			if ef.Kind != kindMultiSelect {
				continue
			}

			if err := replaceAssociation(ctx, tx, child, ef.relation, f.values[prefix+ef.Name]); err != nil {
				return errors.Wrapf(err, "could not save '%s'", prefix+ef.Name)
			}
		}
	}

	return nil
}

func (s *Site) renderChangeForm(w http.ResponseWriter, r *http.Request, form *changeForm, statusCode int) {
	vmodel, err := s.fillChangeFormPageVModel(w, r, form)
	if err != nil {
		s.handleError(w, r, errors.WithStack(err))
		return
	}

	changeFormPage := component.ChangeFormPage(*vmodel)
	templ.Handler(changeFormPage, templ.WithStatus(statusCode)).ServeHTTP(w, r)
}

func (s *Site) fillChangeFormPageVModel(w http.ResponseWriter, r *http.Request, form *changeForm) (*component.ChangeFormPageVModel, error) {
	ctx := r.Context()
	m := form.admin

	var (
		title  string
		action string
		crumb  string
	)

	if form.adding {
		title = "Add " + m.VerboseName
		action = s.AddURL(m.App, m.Name)
		crumb = "Add " + m.VerboseName
	} else {
		title = "Change " + m.VerboseName
		action = s.ChangeURL(m.App, m.Name, form.pk)
		crumb = displayText(form.record)
	}

	vmodel := &component.ChangeFormPageVModel{
		Layout:         s.layout(w, r, title),
		Action:         action,
		NonFieldErrors: form.errs[NonFieldErrors],
	}

	vmodel.Layout.Breadcrumbs = s.breadcrumbs(m, crumb)

	if !form.adding {
		vmodel.DeleteURL = s.DeleteURL(m.App, m.Name, form.pk)
	}

	choices := choiceCache{}

	fields := editableFields(form.schema, m.Fields, m.Exclude)

	fieldVModels, err := fieldVModels(ctx, form.db, choices, fields, form.record, !form.adding, form.values, "", form.errs)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	vmodel.Fields = fieldVModels

	for _, inline := range m.Inlines {
		inlineVModel, err := form.inlineVModel(ctx, choices, inline)
		if err != nil {
			return nil, errors.WithStack(err)
		}

		vmodel.Inlines = append(vmodel.Inlines, *inlineVModel)
	}

	return vmodel, nil
}

func (f *changeForm) inlineVModel(ctx context.Context, choices choiceCache, inline *Inline) (*component.InlineVModel, error) {
	sch, err := inline.schema(f.db)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	fields := inline.fields(sch)

	vmodel := &component.InlineVModel{
		Title:          capitalize(inline.VerboseNamePlural),
		TotalFormsName: inline.totalFormsName(),
	}

	for _, ef := range fields {
		vmodel.Columns = append(vmodel.Columns, ef.Label)
	}

	addRow := func(index int, id string, record any, persisted bool, values url.Values) error {
		prefix := inline.inputPrefix(index)

		rowFields, err := fieldVModels(ctx, f.db, choices, fields, record, persisted, values, prefix, f.errs)
		if err != nil {
			return errors.WithStack(err)
		}

		vmodel.Rows = append(vmodel.Rows, component.InlineRowVModel{
			IDName:     prefix + inputID,
			ID:         id,
			DeleteName: prefix + inputDelete,
			Fields:     rowFields,
			Errors:     f.errs[prefix+NonFieldErrors],
		})

		return nil
	}

	// Re-render of a rejected submission
	if f.values != nil && f.values.Has(inline.totalFormsName()) {
		total, _ := strconv.Atoi(f.values.Get(inline.totalFormsName()))
		for i := range max(total, 0) {
			id := f.values.Get(inline.inputPrefix(i) + inputID)
			if err := addRow(i, id, inline.newRecord(), false, f.values); err != nil {
				return nil, errors.WithStack(err)
			}
		}

		return vmodel, nil
	}

	index := 0

	if f.pk != nil {
		children, err := inline.children(f.db, sch, f.pk)
		if err != nil {
			return nil, errors.WithStack(err)
		}

		for i := range children.Len() {
			child := children.Index(i).Interface()

			pk, err := primaryKey(ctx, sch, child)
			if err != nil {
				return nil, errors.WithStack(err)
			}

			if err := addRow(index, fmt.Sprintf("%v", pk), child, true, nil); err != nil {
				return nil, errors.WithStack(err)
			}

			index++
		}
	}

	for range inline.Extra {
		if err := addRow(index, "", inline.newRecord(), false, url.Values{}); err != nil {
			return nil, errors.WithStack(err)
		}

		index++
	}

	return vmodel, nil
}

type choiceCache map[*schema.Schema][]component.ChoiceVModel

func (c choiceCache) get(ctx context.Context, db *gorm.DB, ef *editField) ([]component.ChoiceVModel, error) {
	if ef.relation == nil {
		return nil, nil
	}

	if cached, exists := c[ef.relation.FieldSchema]; exists {
		return cached, nil
	}

	choices, err := ef.choices(ctx, db)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	vmodels := make([]component.ChoiceVModel, 0, len(choices))
	for _, ch := range choices {
		vmodels = append(vmodels, component.ChoiceVModel{Value: ch.Value, Label: ch.Label})
	}

	c[ef.relation.FieldSchema] = vmodels

	return vmodels, nil
}

// fieldVModels renders the fields of a record. Submitted values take
// precedence over the record ones when given.
func fieldVModels(ctx context.Context, db *gorm.DB, choices choiceCache, fields []*editField, record any, persisted bool, values url.Values, prefix string, errs ValidationErrors) ([]component.FieldVModel, error) {
	vmodels := make([]component.FieldVModel, 0, len(fields))

	for _, ef := range fields {
		name := prefix + ef.Name

		vmodel := component.FieldVModel{
			Name:     name,
			Label:    ef.Label,
			Kind:     string(ef.Kind),
			Required: ef.Required,
			Errors:   errs[name],
		}

		switch {
		case values != nil:
			vmodel.Values = values[name]
		case ef.Kind == kindMultiSelect && !persisted:
			vmodel.Values = nil
		default:
			inputValues, err := ef.inputValues(ctx, db, record)
			if err != nil {
				return nil, errors.Wrapf(err, "could not retrieve value of '%s'", name)
			}

			vmodel.Values = inputValues
		}

		fieldChoices, err := choices.get(ctx, db, ef)
		if err != nil {
			return nil, errors.Wrapf(err, "could not retrieve choices of '%s'", name)
		}

		vmodel.Choices = fieldChoices

		vmodels = append(vmodels, vmodel)
	}

	return vmodels, nil
}
