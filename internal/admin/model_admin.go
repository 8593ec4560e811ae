package admin

import (
	"context"
	"reflect"
	"strings"

	"github.com/bornholm/saskatoon/internal/query"
	"github.com/jinzhu/inflection"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// ModelAdmin describes how a record type is listed and edited in the admin
// site.
type ModelAdmin struct {
	// App is the application label used in URLs, ie "harvest"
	App string
	// Name is the model name used in URLs, ie "property". Defaults to the
	// lowercased type name of Model.
	Name string

	VerboseName       string
	VerboseNamePlural string

	// Model is a pointer to a zero value of the managed record
	Model any

	ListDisplay  []Column
	ListFilter   []Filter
	SearchFields []string

	// Annotations are named SQL expressions usable in SearchFields and
	// Ordering in place of stored columns
	Annotations map[string]query.SearchField

	// Joins are applied to the change list query when searching
	Joins []string

	// Preloads are the associations loaded for the change list rows
	Preloads []string

	// Ordering of the change list, ie "properties.id DESC"
	Ordering []string
	PerPage  int

	// Fields restricts the editable fields, in order. All the editable
	// fields are used when empty.
	Fields  []string
	Exclude []string

	// Initial holds the input values of the add form, overridden by the
	// query string of the request
	Initial map[string]string

	Inlines []*Inline
	Form    Form
}

func (m *ModelAdmin) init() error {
	if m.Model == nil {
		return errors.New("model admin has no model")
	}

	modelType := reflect.TypeOf(m.Model)
	if modelType.Kind() != reflect.Pointer || modelType.Elem().Kind() != reflect.Struct {
		return errors.Errorf("model admin model must be a pointer to a struct, got '%T'", m.Model)
	}

	if m.App == "" {
		return errors.Errorf("model admin for '%T' has no app label", m.Model)
	}

	if m.Name == "" {
		m.Name = strings.ToLower(modelType.Elem().Name())
	}

	if m.VerboseName == "" {
		m.VerboseName = humanizeName(schema.NamingStrategy{}.ColumnName("", modelType.Elem().Name()))
	}

	if m.VerboseNamePlural == "" {
		m.VerboseNamePlural = inflection.Plural(m.VerboseName)
	}

	if len(m.ListDisplay) == 0 {
		m.ListDisplay = []Column{stringColumn("")}
	}

	for i, c := range m.ListDisplay {
		if c.Name == StringColumn && c.Label == "" {
			m.ListDisplay[i].Label = capitalize(m.VerboseName)
		}
	}

	for _, inline := range m.Inlines {
		if err := inline.init(); err != nil {
			return errors.Wrapf(err, "could not initialize inline of '%s.%s'", m.App, m.Name)
		}
	}

	return nil
}

func (m *ModelAdmin) key() string {
	return m.App + "." + m.Name
}

func (m *ModelAdmin) schema(db *gorm.DB) (*schema.Schema, error) {
	return parseSchema(db, m.Model)
}

func (m *ModelAdmin) newRecord() any {
	return reflect.New(reflect.TypeOf(m.Model).Elem()).Interface()
}

// searchFields resolves the search field names, annotations included.
func (m *ModelAdmin) searchFields(table string) []query.SearchField {
	fields := make([]query.SearchField, 0, len(m.SearchFields))
	for _, name := range m.SearchFields {
		if annotation, exists := m.Annotations[name]; exists {
			fields = append(fields, annotation)
			continue
		}

		fields = append(fields, query.SearchField{Expr: m.resolveExpression(table, name)})
	}

	return fields
}

func (m *ModelAdmin) resolveExpression(table string, name string) string {
	if annotation, exists := m.Annotations[name]; exists {
		return annotation.Expr
	}

	if strings.ContainsAny(name, ".( ") {
		return name
	}

	return table + "." + name
}

func (m *ModelAdmin) ordering(table string, sch *schema.Schema) []string {
	if len(m.Ordering) > 0 {
		ordering := make([]string, 0, len(m.Ordering))
		for _, o := range m.Ordering {
			desc := strings.HasPrefix(o, "-")
			expr := m.resolveExpression(table, strings.TrimPrefix(o, "-"))
			if desc {
				expr += " DESC"
			}
			ordering = append(ordering, expr)
		}

		return ordering
	}

	if sch.PrioritizedPrimaryField == nil {
		return nil
	}

	return []string{table + "." + sch.PrioritizedPrimaryField.DBName + " DESC"}
}

func parseSchema(db *gorm.DB, model any) (*schema.Schema, error) {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(model); err != nil {
		return nil, errors.WithStack(err)
	}

	return stmt.Schema, nil
}

func primaryKey(ctx context.Context, sch *schema.Schema, record any) (any, error) {
	if sch.PrioritizedPrimaryField == nil {
		return nil, errors.Errorf("model '%s' has no primary key", sch.Name)
	}

	value, _ := sch.PrioritizedPrimaryField.ValueOf(ctx, reflect.ValueOf(record))

	return value, nil
}

func humanizeName(name string) string {
	name = strings.TrimSuffix(name, "_id")
	return strings.ReplaceAll(name, "_", " ")
}
