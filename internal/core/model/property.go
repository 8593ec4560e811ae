package model

import (
	"strings"
	"time"
)

type PropertyID uint

type Property interface {
	WithID[PropertyID]
	WithLifecycle

	// Owner returns nil when the property has no owner
	Owner() Owner

	ShortAddress() string
	PostalCode() string
	Neighborhood() string
	City() string

	Authorized() bool
	Pending() bool

	Latitude() *float64
	Longitude() *float64

	ApproximativeMaturityDate() *time.Time

	HarvestCount() int64
}

// NormalizePostalCode removes every space from a postal code so that
// "H2X 1Y4" and "H2X1Y4" compare equal.
func NormalizePostalCode(postalCode string) string {
	return strings.ReplaceAll(postalCode, " ", "")
}
