package admin

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

type ValueFunc func(ctx context.Context, db *gorm.DB, record any) (any, error)

// Column is a change list column.
type Column struct {
	Name  string
	Label string
	value ValueFunc
}

func (c Column) Value(ctx context.Context, db *gorm.DB, record any) (any, error) {
	if c.value != nil {
		return c.value(ctx, db, record)
	}

	value, exists := attribute(record, c.Name)
	if !exists {
		return nil, errors.Errorf("unknown attribute '%s' on '%T'", c.Name, record)
	}

	return value, nil
}

// Field returns a column displaying a record attribute: a field (by column
// or Go name, relations are displayed through their String method) or a
// method without arguments (ie "short_address" calls ShortAddress()).
func Field(name string) Column {
	if name == StringColumn {
		return stringColumn("")
	}

	return Column{
		Name:  name,
		Label: columnLabel(name),
	}
}

// Fields is a shortcut for multiple Field columns.
func Fields(names ...string) []Column {
	columns := make([]Column, 0, len(names))
	for _, n := range names {
		columns = append(columns, Field(n))
	}
	return columns
}

// Display returns a computed column.
func Display[T any](name string, label string, fn func(ctx context.Context, db *gorm.DB, record *T) (any, error)) Column {
	return Column{
		Name:  name,
		Label: label,
		value: func(ctx context.Context, db *gorm.DB, record any) (any, error) {
			typed, ok := record.(*T)
			if !ok {
				return nil, errors.Errorf("unexpected record type '%T'", record)
			}

			return fn(ctx, db, typed)
		},
	}
}

// StringColumn is the name of the column displaying the record String
// method.
const StringColumn = "__str__"

func stringColumn(label string) Column {
	return Column{
		Name:  StringColumn,
		Label: label,
		value: func(ctx context.Context, db *gorm.DB, record any) (any, error) {
			if stringer, ok := record.(fmt.Stringer); ok {
				return stringer.String(), nil
			}

			return fmt.Sprintf("%v", record), nil
		},
	}
}

func columnLabel(name string) string {
	label := humanizeName(name)
	if name == "id" {
		return "ID"
	}

	if label == "" {
		return label
	}

	return strings.ToUpper(label[:1]) + label[1:]
}

var namer = schema.NamingStrategy{}

// attribute looks up a struct field then a method matching the given name.
func attribute(record any, name string) (any, bool) {
	value := reflect.ValueOf(record)
	if !value.IsValid() {
		return nil, false
	}

	structValue := reflect.Indirect(value)
	if structValue.Kind() == reflect.Struct {
		structType := structValue.Type()
		for i := range structType.NumField() {
			sf := structType.Field(i)
			if !sf.IsExported() {
				continue
			}

			if sf.Name == name || namer.ColumnName("", sf.Name) == name {
				return structValue.Field(i).Interface(), true
			}
		}
	}

	method := value.MethodByName(camelCase(name))
	if method.IsValid() && method.Type().NumIn() == 0 && method.Type().NumOut() == 1 {
		return method.Call(nil)[0].Interface(), true
	}

	return nil, false
}

func camelCase(name string) string {
	var sb strings.Builder
	for _, part := range strings.Split(name, "_") {
		if part == "" {
			continue
		}

		if strings.EqualFold(part, "id") {
			sb.WriteString("ID")
			continue
		}

		sb.WriteString(strings.ToUpper(part[:1]))
		sb.WriteString(part[1:])
	}
	return sb.String()
}
