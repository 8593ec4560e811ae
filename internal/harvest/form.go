package harvest

import (
	"context"
	"regexp"
	"strings"

	gormAdapter "github.com/bornholm/saskatoon/internal/adapter/gorm"
	"github.com/bornholm/saskatoon/internal/admin"
)

var postalCodePattern = regexp.MustCompile(`^[A-Za-z]\d[A-Za-z]\s?\d[A-Za-z]\d$`)

var RFPForm admin.FormFunc[gormAdapter.RequestForParticipation] = func(ctx context.Context, r *gormAdapter.RequestForParticipation) error {
	errs := admin.NewValidationErrors()

	if r.PersonID == 0 {
		errs.Add("person_id", "A picker is required.")
	}

	if r.HarvestID == 0 {
		errs.Add("harvest_id", "A harvest is required.")
	}

	if r.NumberOfPeople < 1 {
		errs.Add("number_of_people", "At least one person must participate.")
	}

	if r.ConfirmationDate != nil && r.IsAccepted == nil {
		errs.Add(admin.NonFieldErrors, "A confirmed request must be accepted or refused.")
	}

	if errs.Empty() {
		return nil
	}

	return errs
}

var HarvestYieldForm admin.FormFunc[gormAdapter.HarvestYield] = func(ctx context.Context, y *gormAdapter.HarvestYield) error {
	errs := admin.NewValidationErrors()

	if y.TreeID == 0 {
		errs.Add("tree_id", "A tree type is required.")
	}

	if y.TotalInLb <= 0 {
		errs.Add("total_in_lb", "The weight must be greater than zero.")
	}

	if errs.Empty() {
		return nil
	}

	return errs
}

var EquipmentForm admin.FormFunc[gormAdapter.Equipment] = func(ctx context.Context, e *gormAdapter.Equipment) error {
	errs := admin.NewValidationErrors()

	if e.TypeID == nil {
		errs.Add("type_id", "An equipment type is required.")
	}

	if e.Count < 1 {
		errs.Add("count", "The count must be at least one.")
	}

	hasProperty := e.PropertyID != nil
	hasOwner := e.OwnerID != nil

	if hasProperty == hasOwner {
		errs.Add(admin.NonFieldErrors, "The equipment must belong either to a property or to an organization.")
	}

	if errs.Empty() {
		return nil
	}

	return errs
}

var PropertyForm admin.FormFunc[gormAdapter.Property] = func(ctx context.Context, p *gormAdapter.Property) error {
	errs := admin.NewValidationErrors()

	if strings.TrimSpace(p.Street) == "" {
		errs.Add("street", "The street is required.")
	}

	p.PostalCode = strings.ToUpper(strings.TrimSpace(p.PostalCode))
	if p.PostalCode != "" && !postalCodePattern.MatchString(p.PostalCode) {
		errs.Add("postal_code", "Enter a valid postal code, ie H2X 1Y4.")
	}

	if errs.Empty() {
		return nil
	}

	return errs
}
