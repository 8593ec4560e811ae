package admin

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/pkg/errors"
)

// Form validates a record after the submitted values were assigned to it.
// It returns ValidationErrors to reject the submission.
type Form interface {
	Clean(ctx context.Context, record any) error
}

type FormFunc[T any] func(ctx context.Context, record *T) error

// Clean implements [Form].
func (fn FormFunc[T]) Clean(ctx context.Context, record any) error {
	typed, ok := record.(*T)
	if !ok {
		return errors.Errorf("unexpected record type '%T'", record)
	}

	return fn(ctx, typed)
}

const NonFieldErrors = "__all__"

// ValidationErrors maps field names to their error messages. Errors not
// related to a specific field use the NonFieldErrors key.
type ValidationErrors map[string][]string

func (e ValidationErrors) Add(field string, format string, args ...any) ValidationErrors {
	e[field] = append(e[field], fmt.Sprintf(format, args...))
	return e
}

func (e ValidationErrors) Merge(prefix string, other ValidationErrors) {
	for field, messages := range other {
		e[prefix+field] = append(e[prefix+field], messages...)
	}
}

// Error implements error.
func (e ValidationErrors) Error() string {
	var sb strings.Builder
	for i, field := range slices.Sorted(maps.Keys(e)) {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(field)
		sb.WriteString(": ")
		sb.WriteString(strings.Join(e[field], ", "))
	}
	return sb.String()
}

func (e ValidationErrors) Empty() bool {
	return len(e) == 0
}

func NewValidationErrors() ValidationErrors {
	return ValidationErrors{}
}

// cleanRecord runs the form, if any, and normalizes the returned error to
// ValidationErrors. Other errors are returned as is.
func cleanRecord(ctx context.Context, form Form, record any) (ValidationErrors, error) {
	if form == nil {
		return nil, nil
	}

	err := form.Clean(ctx, record)
	if err == nil {
		return nil, nil
	}

	var validationErrs ValidationErrors
	if errors.As(err, &validationErrs) {
		return validationErrs, nil
	}

	return nil, errors.WithStack(err)
}
