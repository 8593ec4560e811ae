package member

import (
	gormAdapter "github.com/bornholm/saskatoon/internal/adapter/gorm"
	"github.com/bornholm/saskatoon/internal/admin"
	"github.com/pkg/errors"
)

const AppLabel = "member"

// RegisterAdmin registers the member models on the given site. The person
// and organization change pages are the targets of the property owner links.
func RegisterAdmin(site admin.Registry) error {
	admins := []*admin.ModelAdmin{
		{
			App:          AppLabel,
			Name:         "person",
			Model:        &gormAdapter.Person{},
			ListDisplay:  admin.Fields(admin.StringColumn, "phone", "email", "neighborhood", "city", "actor_id"),
			SearchFields: []string{"first_name", "family_name", "phone"},
			Preloads:     []string{"AuthUser", "Neighborhood", "City"},
			ListFilter: []admin.Filter{
				admin.NewRelatedFilter("neighborhood_id", "By neighborhood", &gormAdapter.Neighborhood{}),
				admin.NewRelatedFilter("city_id", "By city", &gormAdapter.City{}),
			},
		},
		{
			App:          AppLabel,
			Name:         "organization",
			Model:        &gormAdapter.Organization{},
			ListDisplay:  admin.Fields(admin.StringColumn, "phone", "email", "neighborhood", "city", "actor_id"),
			SearchFields: []string{"civil_name", "description"},
			Preloads:     []string{"Neighborhood", "City"},
			Inlines: []*admin.Inline{
				{
					Model:      &gormAdapter.Property{},
					ForeignKey: "owner_id",
					Exclude:    []string{"longitude", "latitude"},
					Extra:      0,
				},
			},
		},
		{
			App:          AppLabel,
			Name:         "neighborhood",
			Model:        &gormAdapter.Neighborhood{},
			SearchFields: []string{"name"},
			Ordering:     []string{"name"},
		},
		{
			App:          AppLabel,
			Name:         "city",
			VerboseName:  "city",
			Model:        &gormAdapter.City{},
			SearchFields: []string{"name"},
			Ordering:     []string{"name"},
		},
		{
			App:          AppLabel,
			Name:         "authuser",
			VerboseName:  "user",
			Model:        &gormAdapter.AuthUser{},
			ListDisplay:  admin.Fields("email", "is_staff", "is_active", "created_at"),
			SearchFields: []string{"email"},
			ListFilter: []admin.Filter{
				admin.NewBoolFilter("is_staff", "By staff status"),
				admin.NewBoolFilter("is_active", "By active"),
			},
			Initial: map[string]string{
				"is_active": "true",
			},
		},
	}

	for _, m := range admins {
		if err := site.Register(m); err != nil {
			return errors.WithStack(err)
		}
	}

	return nil
}
