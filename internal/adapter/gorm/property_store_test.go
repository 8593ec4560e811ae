package gorm_test

import (
	"context"
	"slices"
	"testing"

	gormAdapter "github.com/bornholm/saskatoon/internal/adapter/gorm"
	"github.com/bornholm/saskatoon/internal/adapter/gorm/testsuite"
	"github.com/bornholm/saskatoon/internal/core/model"
	"github.com/bornholm/saskatoon/internal/core/port"
	"github.com/pkg/errors"
)

func TestPropertyStore(t *testing.T) {
	type testCase struct {
		Name string
		Run  func(t *testing.T, ctx context.Context, store *gormAdapter.Store, fixtures *testsuite.Fixtures) error
	}

	testCases := []testCase{
		{
			Name: "QueryAll",
			Run: func(t *testing.T, ctx context.Context, store *gormAdapter.Store, fixtures *testsuite.Fixtures) error {
				properties, total, err := store.QueryProperties(ctx, port.QueryPropertiesOptions{})
				if err != nil {
					return errors.WithStack(err)
				}

				if e, g := int64(4), total; e != g {
					t.Errorf("total: expected %d, got %d", e, g)
				}

				if e, g := 4, len(properties); e != g {
					t.Errorf("len(properties): expected %d, got %d", e, g)
				}

				return nil
			},
		},
		{
			Name: "SearchPostalCodeIgnoresSpaces",
			Run: func(t *testing.T, ctx context.Context, store *gormAdapter.Store, fixtures *testsuite.Fixtures) error {
				expected := []model.PropertyID{model.PropertyID(fixtures.OrganizationProperty.ID)}

				for _, search := range []string{"H2X 1Y4", "H2X1Y4", "h2x1y4", `"H2X 1Y4"`, `"h2x 1y4"`} {
					properties, _, err := store.QueryProperties(ctx, port.QueryPropertiesOptions{Search: search})
					if err != nil {
						return errors.WithStack(err)
					}

					if e, g := expected, propertyIDs(properties); !slices.Equal(e, g) {
						t.Errorf("search '%s': expected %v, got %v", search, e, g)
					}
				}

				properties, _, err := store.QueryProperties(ctx, port.QueryPropertiesOptions{Search: "H2W 1A1"})
				if err != nil {
					return errors.WithStack(err)
				}

				if e, g := []model.PropertyID{model.PropertyID(fixtures.OwnerlessProperty.ID)}, propertyIDs(properties); !slices.Equal(e, g) {
					t.Errorf("search 'H2W 1A1': expected %v, got %v", e, g)
				}

				return nil
			},
		},
		{
			Name: "SearchOwner",
			Run: func(t *testing.T, ctx context.Context, store *gormAdapter.Store, fixtures *testsuite.Fixtures) error {
				expected := []model.PropertyID{model.PropertyID(fixtures.PersonProperty.ID)}

				for _, search := range []string{"tremblay", "alice@example.org", "4521 saint-denis"} {
					properties, total, err := store.QueryProperties(ctx, port.QueryPropertiesOptions{Search: search})
					if err != nil {
						return errors.WithStack(err)
					}

					if e, g := expected, propertyIDs(properties); !slices.Equal(e, g) {
						t.Errorf("search '%s': expected %v, got %v", search, e, g)
					}

					if e, g := int64(1), total; e != g {
						t.Errorf("search '%s': total: expected %d, got %d", search, e, g)
					}
				}

				return nil
			},
		},
		{
			Name: "FilterOwnerType",
			Run: func(t *testing.T, ctx context.Context, store *gormAdapter.Store, fixtures *testsuite.Fixtures) error {
				type expectation struct {
					OwnerType model.OwnerType
					IDs       []model.PropertyID
				}

				expectations := []expectation{
					{model.OwnerTypePerson, []model.PropertyID{model.PropertyID(fixtures.PersonProperty.ID)}},
					{model.OwnerTypeOrganization, []model.PropertyID{model.PropertyID(fixtures.OrganizationProperty.ID)}},
					{model.OwnerTypeNone, []model.PropertyID{
						model.PropertyID(fixtures.OwnerlessProperty.ID),
						model.PropertyID(fixtures.UnresolvedProperty.ID),
					}},
				}

				for _, exp := range expectations {
					properties, _, err := store.QueryProperties(ctx, port.QueryPropertiesOptions{OwnerType: &exp.OwnerType})
					if err != nil {
						return errors.WithStack(err)
					}

					if e, g := exp.IDs, propertyIDs(properties); !slices.Equal(e, g) {
						t.Errorf("owner type '%s': expected %v, got %v", exp.OwnerType, e, g)
					}
				}

				return nil
			},
		},
		{
			Name: "Paginate",
			Run: func(t *testing.T, ctx context.Context, store *gormAdapter.Store, fixtures *testsuite.Fixtures) error {
				page := 1
				limit := 3

				properties, total, err := store.QueryProperties(ctx, port.QueryPropertiesOptions{Page: &page, Limit: &limit})
				if err != nil {
					return errors.WithStack(err)
				}

				if e, g := int64(4), total; e != g {
					t.Errorf("total: expected %d, got %d", e, g)
				}

				if e, g := []model.PropertyID{model.PropertyID(fixtures.UnresolvedProperty.ID)}, propertyIDs(properties); !slices.Equal(e, g) {
					t.Errorf("properties: expected %v, got %v", e, g)
				}

				return nil
			},
		},
		{
			Name: "GetPropertyByID",
			Run: func(t *testing.T, ctx context.Context, store *gormAdapter.Store, fixtures *testsuite.Fixtures) error {
				property, err := store.GetPropertyByID(ctx, model.PropertyID(fixtures.PersonProperty.ID))
				if err != nil {
					return errors.WithStack(err)
				}

				if e, g := int64(2), property.HarvestCount(); e != g {
					t.Errorf("property.HarvestCount(): expected %d, got %d", e, g)
				}

				owner := property.Owner()
				if owner == nil {
					t.Fatalf("property.Owner(): expected owner, got nil")
				}

				if e, g := model.OwnerTypePerson, owner.Type(); e != g {
					t.Errorf("owner.Type(): expected %s, got %s", e, g)
				}

				if e, g := "alice@example.org", owner.Email(); e != g {
					t.Errorf("owner.Email(): expected %s, got %s", e, g)
				}

				if e, g := "Montréal", property.City(); e != g {
					t.Errorf("property.City(): expected %s, got %s", e, g)
				}

				ownerless, err := store.GetPropertyByID(ctx, model.PropertyID(fixtures.OwnerlessProperty.ID))
				if err != nil {
					return errors.WithStack(err)
				}

				if ownerless.Owner() != nil {
					t.Errorf("ownerless.Owner(): expected nil, got %v", ownerless.Owner())
				}

				if e, g := int64(0), ownerless.HarvestCount(); e != g {
					t.Errorf("ownerless.HarvestCount(): expected %d, got %d", e, g)
				}

				if _, err := store.GetPropertyByID(ctx, 9999); !errors.Is(err, port.ErrNotFound) {
					t.Errorf("GetPropertyByID(9999): expected port.ErrNotFound, got %v", err)
				}

				return nil
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			ctx := context.Background()

			db := testsuite.NewDatabase(t)
			fixtures := testsuite.Seed(t, db)
			store := gormAdapter.NewStore(db)

			if err := tc.Run(t, ctx, store, fixtures); err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}
		})
	}
}

func propertyIDs(properties []model.Property) []model.PropertyID {
	ids := make([]model.PropertyID, 0, len(properties))
	for _, p := range properties {
		ids = append(ids, p.ID())
	}
	return ids
}
