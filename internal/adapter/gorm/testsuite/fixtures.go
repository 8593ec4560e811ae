package testsuite

import (
	"testing"

	gormAdapter "github.com/bornholm/saskatoon/internal/adapter/gorm"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Fixtures are the records created by Seed.
type Fixtures struct {
	Alice       *gormAdapter.Person
	Cooperative *gormAdapter.Organization
	Orphan      *gormAdapter.Actor

	Montreal *gormAdapter.City
	Plateau  *gormAdapter.Neighborhood
	Apple    *gormAdapter.TreeType

	// Owned by Alice, two harvests
	PersonProperty *gormAdapter.Property
	// Owned by the cooperative, one harvest
	OrganizationProperty *gormAdapter.Property
	// No owner, no harvest
	OwnerlessProperty *gormAdapter.Property
	// Owned by an actor which is neither a person nor an organization
	UnresolvedProperty *gormAdapter.Property

	Harvests []*gormAdapter.Harvest
}

// Seed fills the database with a small, known data set.
func Seed(t *testing.T, db *gorm.DB) *Fixtures {
	t.Helper()

	f := &Fixtures{
		Montreal: &gormAdapter.City{Name: "Montréal"},
		Plateau:  &gormAdapter.Neighborhood{Name: "Plateau"},
		Apple:    &gormAdapter.TreeType{Name: "Apple", FruitName: "Apple"},
		Orphan:   &gormAdapter.Actor{},
	}

	authorized := true

	create := func(values ...any) {
		for _, v := range values {
			if err := db.Create(v).Error; err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}
		}
	}

	create(f.Montreal, f.Plateau, f.Apple, f.Orphan)

	f.Alice = &gormAdapter.Person{
		FirstName:  "Alice",
		FamilyName: "Tremblay",
		Phone:      "514-555-0101",
		AuthUser:   &gormAdapter.AuthUser{Email: "alice@example.org", IsActive: true},
		CityID:     &f.Montreal.ID,
	}

	f.Cooperative = &gormAdapter.Organization{
		CivilName:   "Fruit Cooperative",
		Description: "Neighborhood fruit sharing",
		Phone:       "514-555-0202",
		Email:       "contact@coop.example.org",
	}

	create(f.Alice, f.Cooperative)

	f.PersonProperty = &gormAdapter.Property{
		OwnerID:        &f.Alice.ActorID,
		Pending:        false,
		Authorized:     &authorized,
		StreetNumber:   "4521",
		Street:         "Rue Saint-Denis",
		PostalCode:     "H2J 2L3",
		NeighborhoodID: &f.Plateau.ID,
		CityID:         &f.Montreal.ID,
		Trees:          []*gormAdapter.TreeType{f.Apple},
	}

	f.OrganizationProperty = &gormAdapter.Property{
		OwnerID:      &f.Cooperative.ActorID,
		Pending:      true,
		StreetNumber: "120",
		Street:       "Avenue du Mont-Royal",
		PostalCode:   "H2X 1Y4",
		CityID:       &f.Montreal.ID,
	}

	f.OwnerlessProperty = &gormAdapter.Property{
		Pending:      true,
		StreetNumber: "8",
		Street:       "Rue Rachel",
		PostalCode:   "H2W1A1",
	}

	f.UnresolvedProperty = &gormAdapter.Property{
		OwnerID:      &f.Orphan.ID,
		StreetNumber: "77",
		Street:       "Boulevard Saint-Laurent",
	}

	create(f.PersonProperty, f.OrganizationProperty, f.OwnerlessProperty, f.UnresolvedProperty)

	f.Harvests = []*gormAdapter.Harvest{
		{PropertyID: &f.PersonProperty.ID, Status: "succeeded", About: "First pick"},
		{PropertyID: &f.PersonProperty.ID, Status: "date-scheduled", About: "Second pick"},
		{PropertyID: &f.OrganizationProperty.ID, Status: "orphan", About: "Cooperative pick"},
	}

	create(f.Harvests[0], f.Harvests[1], f.Harvests[2])

	accepted := true
	refused := false

	create(
		&gormAdapter.RequestForParticipation{PersonID: f.Alice.ActorID, HarvestID: f.Harvests[0].ID, NumberOfPeople: 2, IsAccepted: &accepted},
		&gormAdapter.RequestForParticipation{PersonID: f.Alice.ActorID, HarvestID: f.Harvests[0].ID, NumberOfPeople: 3, IsAccepted: &refused},
	)

	return f
}
