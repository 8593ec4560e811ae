package gorm

import (
	"strings"
	"time"

	"github.com/bornholm/saskatoon/internal/core/model"
)

type TreeType struct {
	ID uint `gorm:"primaryKey"`

	Name      string `gorm:"unique"`
	FruitName string

	MaturityStart *time.Time
	MaturityEnd   *time.Time
}

func (t *TreeType) String() string {
	if t.FruitName == "" {
		return t.Name
	}

	return t.Name + " (" + t.FruitName + ")"
}

type Property struct {
	ID uint `gorm:"primaryKey"`

	CreatedAt time.Time
	UpdatedAt time.Time

	OwnerID *uint  `gorm:"index"`
	Owner   *Actor `gorm:"constraint:OnDelete:SET NULL;"`

	Pending    bool
	Authorized *bool

	StreetNumber         string
	Street               string
	ComplementaryAddress string
	PostalCode           string `gorm:"index"`

	NeighborhoodID *uint
	Neighborhood   *Neighborhood `gorm:"constraint:OnDelete:SET NULL;"`

	CityID *uint
	City   *City `gorm:"constraint:OnDelete:SET NULL;"`

	Latitude  *float64
	Longitude *float64

	ApproximativeMaturityDate *time.Time

	AdditionalInfo string

	Trees    []*TreeType      `gorm:"many2many:property_trees;"`
	Harvests []*Harvest       `gorm:"constraint:OnDelete:SET NULL;"`
	Images   []*PropertyImage `gorm:"constraint:OnDelete:CASCADE;"`
}

func (p *Property) ShortAddress() string {
	return strings.TrimSpace(p.StreetNumber + " " + p.Street)
}

func (p *Property) OwnerPhone() string {
	if p.Owner == nil {
		return ""
	}

	return (&wrappedOwner{p.Owner}).Phone()
}

func (p *Property) OwnerEmail() string {
	if p.Owner == nil {
		return ""
	}

	return (&wrappedOwner{p.Owner}).Email()
}

func (p *Property) String() string {
	return p.ShortAddress()
}

type PropertyImage struct {
	ID uint `gorm:"primaryKey"`

	CreatedAt time.Time

	PropertyID uint `gorm:"index"`
	Property   *Property

	Image string
}

func (i *PropertyImage) String() string {
	return i.Image
}

type wrappedProperty struct {
	p            *Property
	harvestCount int64
}

// ID implements [model.Property].
func (w *wrappedProperty) ID() model.PropertyID {
	return model.PropertyID(w.p.ID)
}

// CreatedAt implements [model.Property].
func (w *wrappedProperty) CreatedAt() time.Time {
	return w.p.CreatedAt
}

// UpdatedAt implements [model.Property].
func (w *wrappedProperty) UpdatedAt() time.Time {
	return w.p.UpdatedAt
}

// Owner implements [model.Property].
func (w *wrappedProperty) Owner() model.Owner {
	if w.p.Owner == nil {
		return nil
	}

	return &wrappedOwner{w.p.Owner}
}

// ShortAddress implements [model.Property].
func (w *wrappedProperty) ShortAddress() string {
	return w.p.ShortAddress()
}

// PostalCode implements [model.Property].
func (w *wrappedProperty) PostalCode() string {
	return w.p.PostalCode
}

// Neighborhood implements [model.Property].
func (w *wrappedProperty) Neighborhood() string {
	if w.p.Neighborhood == nil {
		return ""
	}

	return w.p.Neighborhood.Name
}

// City implements [model.Property].
func (w *wrappedProperty) City() string {
	if w.p.City == nil {
		return ""
	}

	return w.p.City.Name
}

// Authorized implements [model.Property].
func (w *wrappedProperty) Authorized() bool {
	return w.p.Authorized != nil && *w.p.Authorized
}

// Pending implements [model.Property].
func (w *wrappedProperty) Pending() bool {
	return w.p.Pending
}

// Latitude implements [model.Property].
func (w *wrappedProperty) Latitude() *float64 {
	return w.p.Latitude
}

// Longitude implements [model.Property].
func (w *wrappedProperty) Longitude() *float64 {
	return w.p.Longitude
}

// ApproximativeMaturityDate implements [model.Property].
func (w *wrappedProperty) ApproximativeMaturityDate() *time.Time {
	return w.p.ApproximativeMaturityDate
}

// HarvestCount implements [model.Property].
func (w *wrappedProperty) HarvestCount() int64 {
	return w.harvestCount
}

var _ model.Property = &wrappedProperty{}
