package harvest

import (
	"context"
	"net/http"

	gormAdapter "github.com/bornholm/saskatoon/internal/adapter/gorm"
	"github.com/bornholm/saskatoon/internal/admin"
	"github.com/bornholm/saskatoon/internal/core/model"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type OwnerTypeFilter struct{}

// Title implements [admin.Filter].
func (f *OwnerTypeFilter) Title() string {
	return "By owner type"
}

// Parameter implements [admin.Filter].
func (f *OwnerTypeFilter) Parameter() string {
	return "owner_type"
}

// Choices implements [admin.Filter].
func (f *OwnerTypeFilter) Choices(ctx context.Context, db *gorm.DB) ([]admin.Choice, error) {
	return []admin.Choice{
		{Value: string(model.OwnerTypePerson), Label: model.OwnerTypePerson.Title()},
		{Value: string(model.OwnerTypeOrganization), Label: model.OwnerTypeOrganization.Title()},
	}, nil
}

// Apply implements [admin.Filter].
func (f *OwnerTypeFilter) Apply(r *http.Request, db *gorm.DB) (*gorm.DB, error) {
	switch model.OwnerType(r.URL.Query().Get(f.Parameter())) {
	case model.OwnerTypeNone:
		return db, nil
	case model.OwnerTypePerson:
		return db.Where(gormAdapter.PropertyOwnerIsPersonCondition), nil
	case model.OwnerTypeOrganization:
		return db.Where(gormAdapter.PropertyOwnerIsOrganizationCondition), nil
	default:
		return nil, errors.WithStack(admin.NewHTTPError(http.StatusBadRequest))
	}
}

var _ admin.Filter = &OwnerTypeFilter{}

type HasHarvestFilter struct{}

// Title implements [admin.Filter].
func (f *HasHarvestFilter) Title() string {
	return "By has harvest"
}

// Parameter implements [admin.Filter].
func (f *HasHarvestFilter) Parameter() string {
	return "has_harvest"
}

// Choices implements [admin.Filter].
func (f *HasHarvestFilter) Choices(ctx context.Context, db *gorm.DB) ([]admin.Choice, error) {
	return []admin.Choice{
		{Value: "1", Label: "Yes"},
		{Value: "0", Label: "No"},
	}, nil
}

// Apply implements [admin.Filter].
func (f *HasHarvestFilter) Apply(r *http.Request, db *gorm.DB) (*gorm.DB, error) {
	switch r.URL.Query().Get(f.Parameter()) {
	case "":
		return db, nil
	case "1":
		return db.Where(gormAdapter.PropertyHasHarvestCondition), nil
	case "0":
		return db.Not(gormAdapter.PropertyHasHarvestCondition), nil
	default:
		return nil, errors.WithStack(admin.NewHTTPError(http.StatusBadRequest))
	}
}

var _ admin.Filter = &HasHarvestFilter{}

type StatusFilter struct{}

// Title implements [admin.Filter].
func (f *StatusFilter) Title() string {
	return "By status"
}

// Parameter implements [admin.Filter].
func (f *StatusFilter) Parameter() string {
	return "status"
}

// Choices implements [admin.Filter].
func (f *StatusFilter) Choices(ctx context.Context, db *gorm.DB) ([]admin.Choice, error) {
	choices := make([]admin.Choice, 0, len(model.HarvestStatuses))
	for _, s := range model.HarvestStatuses {
		choices = append(choices, admin.Choice{Value: string(s), Label: s.Label()})
	}

	return choices, nil
}

// Apply implements [admin.Filter].
func (f *StatusFilter) Apply(r *http.Request, db *gorm.DB) (*gorm.DB, error) {
	status := r.URL.Query().Get(f.Parameter())
	if status == "" {
		return db, nil
	}

	return db.Where("harvests.status = ?", status), nil
}

var _ admin.Filter = &StatusFilter{}
