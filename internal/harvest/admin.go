package harvest

import (
	"context"
	"fmt"

	"github.com/a-h/templ"
	gormAdapter "github.com/bornholm/saskatoon/internal/adapter/gorm"
	"github.com/bornholm/saskatoon/internal/admin"
	"github.com/bornholm/saskatoon/internal/query"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const AppLabel = "harvest"

// URLResolver resolves the change page of a registered record.
type URLResolver interface {
	ChangeURL(app string, model string, pk any) string
}

// Site is the admin site the harvest models are registered on.
type Site interface {
	URLResolver
	admin.Registry
}

// OwnerType returns the title cased owner subtype name of the property, or
// an empty string when it has no owner or the subtype is unresolved.
func OwnerType(p *gormAdapter.Property) string {
	return p.Owner.OwnerType().Title()
}

// OwnerEdit returns a link to the change page of the property owner, or nil
// when it has no owner or the subtype is unresolved.
func OwnerEdit(urls URLResolver, p *gormAdapter.Property) templ.Component {
	owner := p.Owner

	var href string
	switch {
	case owner == nil:
		return nil
	case owner.IsPerson():
		href = urls.ChangeURL("member", "person", owner.Person.ActorID)
	case owner.IsOrganization():
		href = urls.ChangeURL("member", "organization", owner.Organization.ActorID)
	default:
		return nil
	}

	return templ.Raw(fmt.Sprintf(`<a href="%s">%s</a>`, templ.EscapeString(href), templ.EscapeString(owner.String())))
}

// Harvests returns the number of harvests of the property.
func Harvests(ctx context.Context, db *gorm.DB, p *gormAdapter.Property) (int64, error) {
	var count int64

	err := db.WithContext(ctx).Model(&gormAdapter.Harvest{}).
		Where("property_id = ?", p.ID).
		Count(&count).Error
	if err != nil {
		return 0, errors.WithStack(err)
	}

	return count, nil
}

func NewPropertyAdmin(urls URLResolver) *admin.ModelAdmin {
	listDisplay := []admin.Column{
		admin.Field("short_address"),
		admin.Display("owner_edit", "Owner", func(ctx context.Context, db *gorm.DB, p *gormAdapter.Property) (any, error) {
			return OwnerEdit(urls, p), nil
		}),
		admin.Display("owner_type", "Owner type", func(ctx context.Context, db *gorm.DB, p *gormAdapter.Property) (any, error) {
			return OwnerType(p), nil
		}),
	}

	listDisplay = append(listDisplay, admin.Fields("owner_phone", "owner_email", "pending")...)

	listDisplay = append(listDisplay, admin.Display("harvests", "Harvests", func(ctx context.Context, db *gorm.DB, p *gormAdapter.Property) (any, error) {
		return Harvests(ctx, db, p)
	}))

	listDisplay = append(listDisplay, admin.Fields("authorized", "approximative_maturity_date", "neighborhood", "city", "postal_code", "id")...)

	return &admin.ModelAdmin{
		App:               AppLabel,
		Name:              "property",
		VerboseName:       "property",
		VerboseNamePlural: "properties",
		Model:             &gormAdapter.Property{},
		ListDisplay:       listDisplay,
		ListFilter: []admin.Filter{
			&OwnerTypeFilter{},
			&HasHarvestFilter{},
			&admin.BoolFilter{Column: "authorized", Label: "By authorized", Nullable: true},
			admin.NewBoolFilter("pending", "By pending"),
			&admin.ManyToManyFilter{
				Name:           "trees",
				Label:          "By trees",
				JoinTable:      "property_trees",
				ForeignKey:     "property_id",
				AssociationKey: "tree_type_id",
				Model:          &gormAdapter.TreeType{},
			},
			admin.NewRelatedFilter("neighborhood_id", "By neighborhood", &gormAdapter.Neighborhood{}),
			admin.NewRelatedFilter("city_id", "By city", &gormAdapter.City{}),
		},
		SearchFields: []string{
			"street_number",
			"street",
			"postal_code_cleaned",
			"owner_people.family_name",
			"owner_auth_users.email",
		},
		Annotations: map[string]query.SearchField{
			"postal_code_cleaned": gormAdapter.PostalCodeCleanedField,
		},
		Joins: gormAdapter.PropertyOwnerJoins,
		Preloads: []string{
			"Owner.Person.AuthUser",
			"Owner.Organization",
			"Neighborhood",
			"City",
		},
		Exclude: []string{"longitude", "latitude"},
		Initial: map[string]string{
			"pending": "true",
		},
		Inlines: []*admin.Inline{
			{
				Model:      &gormAdapter.PropertyImage{},
				ForeignKey: "property_id",
				Extra:      3,
			},
		},
		Form: PropertyForm,
	}
}

func NewHarvestAdmin() *admin.ModelAdmin {
	return &admin.ModelAdmin{
		App:         AppLabel,
		Name:        "harvest",
		Model:       &gormAdapter.Harvest{},
		ListDisplay: admin.Fields("id", "status", "property", "pick_leader", "start_date", "end_date"),
		ListFilter: []admin.Filter{
			&StatusFilter{},
		},
		Preloads: []string{"Property", "PickLeader"},
		Inlines: []*admin.Inline{
			{
				Model:             &gormAdapter.RequestForParticipation{},
				ForeignKey:        "harvest_id",
				VerboseName:       "picker for this harvest",
				VerboseNamePlural: "pickers for this harvest",
				Exclude:           []string{"creation_date", "confirmation_date"},
				Extra:             3,
				Form:              RFPForm,
			},
			{
				Model:      &gormAdapter.HarvestYield{},
				ForeignKey: "harvest_id",
				Extra:      3,
				Form:       HarvestYieldForm,
			},
			{
				Model:      &gormAdapter.HarvestImage{},
				ForeignKey: "harvest_id",
				Extra:      3,
			},
		},
	}
}

// RegisterAdmin registers the harvest models on the given site.
func RegisterAdmin(site Site) error {
	admins := []*admin.ModelAdmin{
		NewPropertyAdmin(site),
		NewHarvestAdmin(),
		{
			App:               AppLabel,
			Name:              "requestforparticipation",
			VerboseName:       "request for participation",
			VerboseNamePlural: "requests for participation",
			Model:             &gormAdapter.RequestForParticipation{},
			ListDisplay:       admin.Fields("id", "person", "harvest", "number_of_people", "is_accepted", "creation_date"),
			Preloads:          []string{"Person", "Harvest.Property"},
			Form:              RFPForm,
		},
		{
			App:          AppLabel,
			Name:         "treetype",
			Model:        &gormAdapter.TreeType{},
			ListDisplay:  admin.Fields("name", "fruit_name", "maturity_start", "maturity_end"),
			SearchFields: []string{"name", "fruit_name"},
			Ordering:     []string{"name"},
		},
		{
			App:         AppLabel,
			Name:        "equipment",
			Model:       &gormAdapter.Equipment{},
			ListDisplay: admin.Fields("__str__", "type", "count", "property", "owner", "shared_with_community"),
			Preloads:    []string{"Type", "Property", "Owner"},
			Form:        EquipmentForm,
		},
		{
			App:          AppLabel,
			Name:         "equipmenttype",
			Model:        &gormAdapter.EquipmentType{},
			SearchFields: []string{"name"},
			Ordering:     []string{"name"},
		},
		{
			App:         AppLabel,
			Name:        "harvestyield",
			Model:       &gormAdapter.HarvestYield{},
			ListDisplay: admin.Fields("id", "harvest", "tree", "total_in_lb", "recipient"),
			Preloads:    []string{"Harvest.Property", "Tree", "Recipient.Person", "Recipient.Organization"},
			Form:        HarvestYieldForm,
		},
		{
			App:          AppLabel,
			Name:         "comment",
			Model:        &gormAdapter.Comment{},
			ListDisplay:  admin.Fields("__str__", "author", "harvest", "created_date"),
			SearchFields: []string{"content"},
			Preloads:     []string{"Author", "Harvest.Property"},
		},
		{
			App:         AppLabel,
			Name:        "propertyimage",
			Model:       &gormAdapter.PropertyImage{},
			ListDisplay: admin.Fields("image", "property", "created_at"),
			Preloads:    []string{"Property"},
		},
	}

	for _, m := range admins {
		if err := site.Register(m); err != nil {
			return errors.WithStack(err)
		}
	}

	return nil
}
