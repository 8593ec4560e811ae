package port

import (
	"context"

	"github.com/bornholm/saskatoon/internal/core/model"
)

type QueryPropertiesOptions struct {
	Page  *int
	Limit *int

	// Search matches the street number, the street, the postal code (spaces
	// ignored) and the owner family name / email
	Search string

	Authorized *bool
	Pending    *bool
	OwnerType  *model.OwnerType
}

type PropertyStore interface {
	// QueryProperties returns the properties matching the options and the
	// total number of matching properties, ignoring pagination
	QueryProperties(ctx context.Context, opts QueryPropertiesOptions) ([]model.Property, int64, error)

	// GetPropertyByID returns the property or ErrNotFound
	GetPropertyByID(ctx context.Context, id model.PropertyID) (model.Property, error)
}
