package gorm

import (
	"github.com/bornholm/saskatoon/internal/core/model"
	"github.com/bornholm/saskatoon/internal/query"
)

// SQL fragments shared by the store queries and the admin registrations.
const (
	PostalCodeCleanedExpr = "REPLACE(properties.postal_code, ' ', '')"

	PropertyOwnerIsPersonCondition       = "EXISTS (SELECT 1 FROM people WHERE people.actor_id = properties.owner_id)"
	PropertyOwnerIsOrganizationCondition = "EXISTS (SELECT 1 FROM organizations WHERE organizations.actor_id = properties.owner_id)"
	PropertyHasHarvestCondition          = "EXISTS (SELECT 1 FROM harvests WHERE harvests.property_id = properties.id)"
)

// PropertyOwnerJoins joins the owner person and its authentication account,
// making the owner_people and owner_auth_users aliases available.
var PropertyOwnerJoins = []string{
	"LEFT JOIN people AS owner_people ON owner_people.actor_id = properties.owner_id",
	"LEFT JOIN auth_users AS owner_auth_users ON owner_auth_users.id = owner_people.auth_user_id",
}

// PostalCodeCleanedField matches the postal code without its spaces, so
// "H2X 1Y4" and "H2X1Y4" find the same properties.
var PostalCodeCleanedField = query.SearchField{
	Expr:      PostalCodeCleanedExpr,
	Normalize: model.NormalizePostalCode,
}

// PropertySearchFields lists the fields matched by a property search.
var PropertySearchFields = []query.SearchField{
	{Expr: "properties.street_number"},
	{Expr: "properties.street"},
	PostalCodeCleanedField,
	{Expr: "owner_people.family_name"},
	{Expr: "owner_auth_users.email"},
}
