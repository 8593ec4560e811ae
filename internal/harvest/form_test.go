package harvest_test

import (
	"context"
	"slices"
	"testing"
	"time"

	gormAdapter "github.com/bornholm/saskatoon/internal/adapter/gorm"
	"github.com/bornholm/saskatoon/internal/admin"
	"github.com/bornholm/saskatoon/internal/harvest"
	"github.com/pkg/errors"
)

func TestForms(t *testing.T) {
	ptr := func(v uint) *uint { return &v }
	now := time.Now()

	type testCase struct {
		Name           string
		Form           admin.Form
		Record         any
		ExpectedFields []string
	}

	testCases := []testCase{
		{
			Name:   "RFPValid",
			Form:   harvest.RFPForm,
			Record: &gormAdapter.RequestForParticipation{PersonID: 1, HarvestID: 2, NumberOfPeople: 3},
		},
		{
			Name:           "RFPMissing",
			Form:           harvest.RFPForm,
			Record:         &gormAdapter.RequestForParticipation{},
			ExpectedFields: []string{"harvest_id", "number_of_people", "person_id"},
		},
		{
			Name:           "RFPConfirmedWithoutAnswer",
			Form:           harvest.RFPForm,
			Record:         &gormAdapter.RequestForParticipation{PersonID: 1, HarvestID: 2, NumberOfPeople: 1, ConfirmationDate: &now},
			ExpectedFields: []string{admin.NonFieldErrors},
		},
		{
			Name:           "HarvestYieldInvalid",
			Form:           harvest.HarvestYieldForm,
			Record:         &gormAdapter.HarvestYield{},
			ExpectedFields: []string{"total_in_lb", "tree_id"},
		},
		{
			Name:   "HarvestYieldValid",
			Form:   harvest.HarvestYieldForm,
			Record: &gormAdapter.HarvestYield{TreeID: 1, TotalInLb: 12.5},
		},
		{
			Name:   "EquipmentOnProperty",
			Form:   harvest.EquipmentForm,
			Record: &gormAdapter.Equipment{TypeID: ptr(1), Count: 1, PropertyID: ptr(4)},
		},
		{
			Name:           "EquipmentOnBoth",
			Form:           harvest.EquipmentForm,
			Record:         &gormAdapter.Equipment{TypeID: ptr(1), Count: 1, PropertyID: ptr(4), OwnerID: ptr(7)},
			ExpectedFields: []string{admin.NonFieldErrors},
		},
		{
			Name:           "EquipmentOrphan",
			Form:           harvest.EquipmentForm,
			Record:         &gormAdapter.Equipment{Count: 0},
			ExpectedFields: []string{admin.NonFieldErrors, "count", "type_id"},
		},
		{
			Name:   "PropertyValid",
			Form:   harvest.PropertyForm,
			Record: &gormAdapter.Property{Street: "Rachel", PostalCode: " h2j 2l3 "},
		},
		{
			Name:   "PropertyWithoutPostalCode",
			Form:   harvest.PropertyForm,
			Record: &gormAdapter.Property{Street: "Rachel"},
		},
		{
			Name:           "PropertyInvalid",
			Form:           harvest.PropertyForm,
			Record:         &gormAdapter.Property{Street: " ", PostalCode: "12345"},
			ExpectedFields: []string{"postal_code", "street"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			err := tc.Form.Clean(context.Background(), tc.Record)

			if tc.ExpectedFields == nil {
				if err != nil {
					t.Fatalf("%+v", errors.WithStack(err))
				}
				return
			}

			var validationErrs admin.ValidationErrors
			if !errors.As(err, &validationErrs) {
				t.Fatalf("expected validation errors, got '%v'", err)
			}

			fields := make([]string, 0, len(validationErrs))
			for field := range validationErrs {
				fields = append(fields, field)
			}
			slices.Sort(fields)

			if e, g := tc.ExpectedFields, fields; !slices.Equal(e, g) {
				t.Errorf("fields: expected %v, got %v", e, g)
			}
		})
	}
}

func TestPropertyFormNormalizesPostalCode(t *testing.T) {
	property := &gormAdapter.Property{Street: "Rachel", PostalCode: " h2j 2l3 "}

	if err := harvest.PropertyForm.Clean(context.Background(), property); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := "H2J 2L3", property.PostalCode; e != g {
		t.Errorf("property.PostalCode: expected '%s', got '%s'", e, g)
	}
}
