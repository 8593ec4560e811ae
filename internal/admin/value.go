package admin

import (
	"context"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"time"

	"github.com/a-h/templ"
	"github.com/dustin/go-humanize"
)

const EmptyValueDisplay = "-"

// DisplayValue converts a column value to a renderable component. Components
// are rendered as is, without escaping.
func DisplayValue(value any) templ.Component {
	if c, ok := value.(templ.Component); ok {
		if c == nil {
			return templ.Raw(EmptyValueDisplay)
		}

		return c
	}

	text := displayText(value)

	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, templ.EscapeString(text))
		return err
	})
}

func displayText(value any) string {
	if value == nil {
		return EmptyValueDisplay
	}

	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return EmptyValueDisplay
		}

		if stringer, ok := rv.Interface().(fmt.Stringer); ok {
			return nonEmpty(stringer.String())
		}

		rv = rv.Elem()
	}

	switch v := rv.Interface().(type) {
	case time.Time:
		if v.IsZero() {
			return EmptyValueDisplay
		}

		return formatTime(v)
	case bool:
		if v {
			return "✔"
		}

		return "✘"
	case fmt.Stringer:
		return nonEmpty(v.String())
	case string:
		return nonEmpty(v)
	}

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return humanize.Comma(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return humanize.Ftoa(rv.Float())
	case reflect.Slice:
		if rv.Len() == 0 {
			return EmptyValueDisplay
		}
	}

	return fmt.Sprintf("%v", rv.Interface())
}

func formatTime(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
		return t.Format(time.DateOnly)
	}

	return t.Format("2006-01-02 15:04")
}

func nonEmpty(s string) string {
	if s == "" {
		return EmptyValueDisplay
	}

	return s
}
