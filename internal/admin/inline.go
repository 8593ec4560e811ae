package admin

import (
	"reflect"
	"strconv"

	"github.com/jinzhu/inflection"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Inline is a sub-table of child records edited with their parent.
type Inline struct {
	// Model is a pointer to a zero value of the child record
	Model any
	// ForeignKey is the child column referencing the parent primary key
	ForeignKey string

	// Prefix of the inline form inputs. Defaults to the snake cased plural
	// of the child type name.
	Prefix string

	VerboseName       string
	VerboseNamePlural string

	Fields  []string
	Exclude []string

	// Extra is the number of blank rows offered for new records
	Extra int

	Form Form
}

func (i *Inline) init() error {
	if i.Model == nil {
		return errors.New("inline has no model")
	}

	modelType := reflect.TypeOf(i.Model)
	if modelType.Kind() != reflect.Pointer || modelType.Elem().Kind() != reflect.Struct {
		return errors.Errorf("inline model must be a pointer to a struct, got '%T'", i.Model)
	}

	if i.ForeignKey == "" {
		return errors.Errorf("inline for '%T' has no foreign key", i.Model)
	}

	snake := namer.ColumnName("", modelType.Elem().Name())

	if i.Prefix == "" {
		i.Prefix = inflection.Plural(snake)
	}

	if i.VerboseName == "" {
		i.VerboseName = humanizeName(snake)
	}

	if i.VerboseNamePlural == "" {
		i.VerboseNamePlural = inflection.Plural(i.VerboseName)
	}

	if i.Extra < 0 {
		i.Extra = 0
	}

	return nil
}

func (i *Inline) schema(db *gorm.DB) (*schema.Schema, error) {
	return parseSchema(db, i.Model)
}

func (i *Inline) newRecord() any {
	return reflect.New(reflect.TypeOf(i.Model).Elem()).Interface()
}

// fields returns the editable fields of the child, the foreign key to the
// parent excluded.
func (i *Inline) fields(sch *schema.Schema) []*editField {
	exclude := append([]string{i.ForeignKey}, i.Exclude...)
	return editableFields(sch, i.Fields, exclude)
}

func (i *Inline) foreignKeyField(sch *schema.Schema) (*schema.Field, error) {
	f := sch.LookUpField(i.ForeignKey)
	if f == nil {
		return nil, errors.Errorf("unknown foreign key '%s' on '%s'", i.ForeignKey, sch.Name)
	}

	return f, nil
}

func (i *Inline) children(db *gorm.DB, sch *schema.Schema, parentPK any) (reflect.Value, error) {
	records := reflect.New(reflect.SliceOf(reflect.TypeOf(i.Model)))

	query := db.Session(&gorm.Session{NewDB: true}).Where(i.ForeignKey+" = ?", parentPK)
	if sch.PrioritizedPrimaryField != nil {
		query = query.Order(sch.PrioritizedPrimaryField.DBName + " ASC")
	}

	if err := query.Find(records.Interface()).Error; err != nil {
		return reflect.Value{}, errors.WithStack(err)
	}

	return records.Elem(), nil
}

func (i *Inline) inputPrefix(index int) string {
	return i.Prefix + "-" + strconv.Itoa(index) + "-"
}

func (i *Inline) totalFormsName() string {
	return i.Prefix + "-TOTAL_FORMS"
}
