package admin

import (
	"context"
	"fmt"
	"net/url"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

type fieldKind string

const (
	kindText        fieldKind = "text"
	kindNumber      fieldKind = "number"
	kindCheckbox    fieldKind = "checkbox"
	kindNullBool    fieldKind = "nullbool"
	kindDateTime    fieldKind = "datetime-local"
	kindSelect      fieldKind = "select"
	kindMultiSelect fieldKind = "multiselect"
)

const (
	msgRequired = "This field is required."
	msgInvalid  = "Enter a valid value."
)

const inputTimeLayout = "2006-01-02T15:04"

var inputTimeLayouts = []string{
	inputTimeLayout,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.DateOnly,
}

var timeType = reflect.TypeOf(time.Time{})

// editField is a record attribute editable through a form.
type editField struct {
	Name     string
	Label    string
	Kind     fieldKind
	Required bool

	field    *schema.Field
	relation *schema.Relationship
}

// editableFields returns the fields of the schema editable in a form.
// Primary keys, automatic timestamps, unsupported types and excluded fields
// are left out. When only is not empty, it selects and orders the fields.
func editableFields(sch *schema.Schema, only []string, exclude []string) []*editField {
	isExcluded := func(names ...string) bool {
		for _, n := range names {
			if slices.Contains(exclude, n) {
				return true
			}
		}
		return false
	}

	fields := make([]*editField, 0, len(sch.Fields))

	for _, f := range sch.Fields {
		if f.DBName == "" || f.PrimaryKey || f.AutoCreateTime != 0 || f.AutoUpdateTime != 0 {
			continue
		}

		if !f.Creatable || !f.Updatable {
			continue
		}

		if isExcluded(f.DBName, f.Name, strings.TrimSuffix(f.DBName, "_id")) {
			continue
		}

		ef := &editField{
			Name:  f.DBName,
			Label: columnLabel(f.DBName),
			field: f,
		}

		if rel := belongsTo(sch, f); rel != nil {
			ef.Kind = kindSelect
			ef.relation = rel
			ef.Required = f.FieldType.Kind() != reflect.Pointer
			fields = append(fields, ef)
			continue
		}

		kind, ok := inputKind(f.FieldType)
		if !ok {
			continue
		}

		ef.Kind = kind
		fields = append(fields, ef)
	}

	for _, rel := range sch.Relationships.Many2Many {
		name := namer.ColumnName("", rel.Name)
		if isExcluded(name, rel.Name) {
			continue
		}

		fields = append(fields, &editField{
			Name:     name,
			Label:    columnLabel(name),
			Kind:     kindMultiSelect,
			relation: rel,
		})
	}

	if len(only) == 0 {
		return fields
	}

	selected := make([]*editField, 0, len(only))
	for _, name := range only {
		idx := slices.IndexFunc(fields, func(ef *editField) bool {
			return ef.Name == name || strings.TrimSuffix(ef.Name, "_id") == name
		})
		if idx == -1 {
			continue
		}

		selected = append(selected, fields[idx])
	}

	return selected
}

func belongsTo(sch *schema.Schema, f *schema.Field) *schema.Relationship {
	for _, rel := range sch.Relationships.BelongsTo {
		for _, ref := range rel.References {
			if ref.ForeignKey == f {
				return rel
			}
		}
	}

	return nil
}

func inputKind(t reflect.Type) (fieldKind, bool) {
	pointer := t.Kind() == reflect.Pointer
	if pointer {
		t = t.Elem()
	}

	if t == timeType {
		return kindDateTime, true
	}

	switch t.Kind() {
	case reflect.String:
		return kindText, true
	case reflect.Bool:
		if pointer {
			return kindNullBool, true
		}
		return kindCheckbox, true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return kindNumber, true
	default:
		return "", false
	}
}

// inputValues returns the current values of the field as form input values.
func (ef *editField) inputValues(ctx context.Context, db *gorm.DB, record any) ([]string, error) {
	if ef.Kind == kindMultiSelect {
		return associatedKeys(ctx, db, record, ef.relation)
	}

	value, zero := ef.field.ValueOf(ctx, reflect.ValueOf(record))
	if zero && ef.Kind != kindCheckbox && ef.Kind != kindNumber {
		return []string{""}, nil
	}

	return []string{formatInput(value)}, nil
}

func formatInput(value any) string {
	rv := reflect.ValueOf(value)
	for rv.IsValid() && rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return ""
		}
		rv = rv.Elem()
	}

	if !rv.IsValid() {
		return ""
	}

	switch v := rv.Interface().(type) {
	case time.Time:
		if v.IsZero() {
			return ""
		}
		return v.Format(inputTimeLayout)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// assign parses the submitted value of the field and sets it on the record.
// It returns a validation message when the value is rejected.
func (ef *editField) assign(ctx context.Context, record any, values url.Values, name string) string {
	raw := strings.TrimSpace(values.Get(name))

	var parsed reflect.Value

	switch ef.Kind {
	case kindMultiSelect:
		return ""
	case kindCheckbox:
		parsed = reflect.ValueOf(raw == "on" || raw == "true" || raw == "1").Convert(ef.field.FieldType)
	default:
		if raw == "" && ef.Required {
			return msgRequired
		}

		v, err := parseValue(ef.field.FieldType, raw)
		if err != nil {
			return msgInvalid
		}

		parsed = v
	}

	ef.field.ReflectValueOf(ctx, reflect.ValueOf(record)).Set(parsed)

	return ""
}

// parseValue converts a raw form value to the given type. Empty values give
// nil pointers and zero values.
func parseValue(t reflect.Type, raw string) (reflect.Value, error) {
	if t.Kind() == reflect.Pointer {
		if raw == "" {
			return reflect.Zero(t), nil
		}

		elem, err := parseValue(t.Elem(), raw)
		if err != nil {
			return reflect.Value{}, errors.WithStack(err)
		}

		ptr := reflect.New(t.Elem())
		ptr.Elem().Set(elem)

		return ptr, nil
	}

	value := reflect.New(t).Elem()

	if t == timeType {
		if raw == "" {
			return value, nil
		}

		for _, layout := range inputTimeLayouts {
			if parsed, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
				value.Set(reflect.ValueOf(parsed))
				return value, nil
			}
		}

		return reflect.Value{}, errors.Errorf("invalid time '%s'", raw)
	}

	switch t.Kind() {
	case reflect.String:
		value.SetString(raw)
	case reflect.Bool:
		if raw == "" {
			return value, nil
		}

		b, err := strconv.ParseBool(raw)
		if err != nil {
			return reflect.Value{}, errors.WithStack(err)
		}

		value.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if raw == "" {
			return value, nil
		}

		i, err := strconv.ParseInt(raw, 10, t.Bits())
		if err != nil {
			return reflect.Value{}, errors.WithStack(err)
		}

		value.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if raw == "" {
			return value, nil
		}

		u, err := strconv.ParseUint(raw, 10, t.Bits())
		if err != nil {
			return reflect.Value{}, errors.WithStack(err)
		}

		value.SetUint(u)
	case reflect.Float32, reflect.Float64:
		if raw == "" {
			return value, nil
		}

		f, err := strconv.ParseFloat(raw, t.Bits())
		if err != nil {
			return reflect.Value{}, errors.WithStack(err)
		}

		value.SetFloat(f)
	default:
		return reflect.Value{}, errors.Errorf("unsupported type '%s'", t)
	}

	return value, nil
}

// choices returns the selectable values of a relation field.
func (ef *editField) choices(ctx context.Context, db *gorm.DB) ([]Choice, error) {
	if ef.relation == nil {
		return nil, nil
	}

	model := reflect.New(ef.relation.FieldSchema.ModelType).Interface()

	return recordChoices(ctx, db, model)
}

func associatedKeys(ctx context.Context, db *gorm.DB, record any, rel *schema.Relationship) ([]string, error) {
	related := reflect.New(reflect.SliceOf(reflect.PointerTo(rel.FieldSchema.ModelType)))

	if err := db.WithContext(ctx).Model(record).Association(rel.Name).Find(related.Interface()); err != nil {
		return nil, errors.WithStack(err)
	}

	slice := related.Elem()
	keys := make([]string, 0, slice.Len())
	for i := range slice.Len() {
		pk, err := primaryKey(ctx, rel.FieldSchema, slice.Index(i).Interface())
		if err != nil {
			return nil, errors.WithStack(err)
		}

		keys = append(keys, fmt.Sprintf("%v", pk))
	}

	return keys, nil
}

// replaceAssociation sets the many to many association of the record to the
// related records identified by the given keys.
func replaceAssociation(ctx context.Context, db *gorm.DB, record any, rel *schema.Relationship, keys []string) error {
	association := db.WithContext(ctx).Model(record).Association(rel.Name)

	keys = slices.DeleteFunc(slices.Clone(keys), func(k string) bool { return k == "" })
	if len(keys) == 0 {
		return errors.WithStack(association.Clear())
	}

	related := reflect.New(reflect.SliceOf(reflect.PointerTo(rel.FieldSchema.ModelType)))

	pk := rel.FieldSchema.PrioritizedPrimaryField
	err := db.WithContext(ctx).Session(&gorm.Session{NewDB: true}).
		Where(pk.DBName+" IN ?", keys).
		Find(related.Interface()).Error
	if err != nil {
		return errors.WithStack(err)
	}

	if err := association.Replace(related.Elem().Interface()); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// isBlank reports whether no value was submitted for the given fields.
func isBlank(values url.Values, prefix string, fields []*editField) bool {
	for _, ef := range fields {
		for _, v := range values[prefix+ef.Name] {
			if strings.TrimSpace(v) != "" {
				return false
			}
		}
	}

	return true
}
