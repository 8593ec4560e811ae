package admin

import (
	"context"
	"fmt"
	"net/http"
	"reflect"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Choice struct {
	Value string
	Label string
}

// Filter narrows a change list query from the request parameters.
type Filter interface {
	Title() string
	// Parameter is the query string parameter read by the filter
	Parameter() string
	// Choices lists the selectable values, the "All" choice excluded
	Choices(ctx context.Context, db *gorm.DB) ([]Choice, error)
	// Apply returns the query narrowed by the request
	Apply(r *http.Request, db *gorm.DB) (*gorm.DB, error)
}

type BoolFilter struct {
	Column   string
	Label    string
	Nullable bool
}

// Title implements [Filter].
func (f *BoolFilter) Title() string {
	if f.Label != "" {
		return f.Label
	}

	return "By " + humanizeName(f.Column)
}

// Parameter implements [Filter].
func (f *BoolFilter) Parameter() string {
	return f.Column
}

// Choices implements [Filter].
func (f *BoolFilter) Choices(ctx context.Context, db *gorm.DB) ([]Choice, error) {
	choices := []Choice{
		{Value: "1", Label: "Yes"},
		{Value: "0", Label: "No"},
	}

	if f.Nullable {
		choices = append(choices, Choice{Value: "null", Label: "Unknown"})
	}

	return choices, nil
}

// Apply implements [Filter].
func (f *BoolFilter) Apply(r *http.Request, db *gorm.DB) (*gorm.DB, error) {
	column := qualify(db, f.Column)

	switch r.URL.Query().Get(f.Parameter()) {
	case "":
		return db, nil
	case "1":
		return db.Where(column+" = ?", true), nil
	case "0":
		return db.Where(column+" = ?", false), nil
	case "null":
		if f.Nullable {
			return db.Where(column + " IS NULL"), nil
		}
	}

	return nil, NewHTTPError(http.StatusBadRequest)
}

func NewBoolFilter(column string, label string) *BoolFilter {
	return &BoolFilter{Column: column, Label: label}
}

var _ Filter = &BoolFilter{}

// RelatedFilter filters on a foreign key column, offering every record of
// the related model as a choice.
type RelatedFilter struct {
	Column string
	Label  string
	// Model is a pointer to a zero value of the related record
	Model any
}

// Title implements [Filter].
func (f *RelatedFilter) Title() string {
	if f.Label != "" {
		return f.Label
	}

	return "By " + humanizeName(f.Column)
}

// Parameter implements [Filter].
func (f *RelatedFilter) Parameter() string {
	return f.Column
}

// Choices implements [Filter].
func (f *RelatedFilter) Choices(ctx context.Context, db *gorm.DB) ([]Choice, error) {
	return recordChoices(ctx, db, f.Model)
}

// Apply implements [Filter].
func (f *RelatedFilter) Apply(r *http.Request, db *gorm.DB) (*gorm.DB, error) {
	value := r.URL.Query().Get(f.Parameter())
	if value == "" {
		return db, nil
	}

	return db.Where(qualify(db, f.Column)+" = ?", value), nil
}

func NewRelatedFilter(column string, label string, model any) *RelatedFilter {
	return &RelatedFilter{Column: column, Label: label, Model: model}
}

var _ Filter = &RelatedFilter{}

// ManyToManyFilter keeps the records associated to the selected related
// record through a join table.
type ManyToManyFilter struct {
	Name  string
	Label string
	// JoinTable is the association table, ie "property_trees"
	JoinTable string
	// ForeignKey references the filtered record in the join table
	ForeignKey string
	// AssociationKey references the related record in the join table
	AssociationKey string
	Model          any
}

// Title implements [Filter].
func (f *ManyToManyFilter) Title() string {
	if f.Label != "" {
		return f.Label
	}

	return "By " + humanizeName(f.Name)
}

// Parameter implements [Filter].
func (f *ManyToManyFilter) Parameter() string {
	return f.Name
}

// Choices implements [Filter].
func (f *ManyToManyFilter) Choices(ctx context.Context, db *gorm.DB) ([]Choice, error) {
	return recordChoices(ctx, db, f.Model)
}

// Apply implements [Filter].
func (f *ManyToManyFilter) Apply(r *http.Request, db *gorm.DB) (*gorm.DB, error) {
	value := r.URL.Query().Get(f.Parameter())
	if value == "" {
		return db, nil
	}

	condition := fmt.Sprintf(
		"EXISTS (SELECT 1 FROM %[1]s WHERE %[1]s.%[2]s = %[3]s AND %[1]s.%[4]s = ?)",
		f.JoinTable, f.ForeignKey, qualify(db, "id"), f.AssociationKey,
	)

	return db.Where(condition, value), nil
}

var _ Filter = &ManyToManyFilter{}

// recordChoices lists every record of the given model, labeled by its
// String method.
func recordChoices(ctx context.Context, db *gorm.DB, model any) ([]Choice, error) {
	sch, err := parseSchema(db, model)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	records := reflect.New(reflect.SliceOf(reflect.TypeOf(model)))

	query := db.WithContext(ctx).Session(&gorm.Session{NewDB: true}).Model(model)
	for _, rel := range sch.Relationships.BelongsTo {
		query = query.Preload(rel.Name)
	}
	for _, rel := range sch.Relationships.HasOne {
		query = query.Preload(rel.Name)
	}

	if err := query.Find(records.Interface()).Error; err != nil {
		return nil, errors.WithStack(err)
	}

	slice := records.Elem()
	choices := make([]Choice, 0, slice.Len())
	for i := range slice.Len() {
		record := slice.Index(i).Interface()

		pk, err := primaryKey(ctx, sch, record)
		if err != nil {
			return nil, errors.WithStack(err)
		}

		choices = append(choices, Choice{
			Value: fmt.Sprintf("%v", pk),
			Label: displayText(record),
		})
	}

	return choices, nil
}

func qualify(db *gorm.DB, column string) string {
	if db.Statement.Table == "" {
		return column
	}

	return db.Statement.Table + "." + column
}
