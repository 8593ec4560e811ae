package gorm

import (
	"fmt"
	"strings"
	"time"

	"github.com/bornholm/saskatoon/internal/core/model"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type AuthUser struct {
	ID uint `gorm:"primaryKey"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Email    string `gorm:"unique"`
	IsStaff  bool
	IsActive bool
}

func (u *AuthUser) String() string {
	return u.Email
}

// Actor is the common ancestor of every record able to own a property.
// Exactly one of Person and Organization is expected to reference it.
type Actor struct {
	ID uint `gorm:"primaryKey"`

	CreatedAt time.Time

	Person       *Person       `gorm:"foreignKey:ActorID;constraint:OnDelete:CASCADE;"`
	Organization *Organization `gorm:"foreignKey:ActorID;constraint:OnDelete:CASCADE;"`
}

func (a *Actor) IsPerson() bool {
	return a != nil && a.Person != nil
}

func (a *Actor) IsOrganization() bool {
	return a != nil && a.Organization != nil
}

// OwnerType resolves the concrete subtype of the actor. It requires the
// Person and Organization associations to be preloaded.
func (a *Actor) OwnerType() model.OwnerType {
	if a == nil {
		return model.OwnerTypeNone
	}

	return model.ResolveOwnerType(a.IsPerson(), a.IsOrganization())
}

func (a *Actor) String() string {
	switch {
	case a == nil:
		return ""
	case a.IsPerson():
		return a.Person.String()
	case a.IsOrganization():
		return a.Organization.String()
	default:
		return fmt.Sprintf("Actor #%d", a.ID)
	}
}

type wrappedOwner struct {
	a *Actor
}

// ID implements [model.Owner].
func (w *wrappedOwner) ID() model.ActorID {
	return model.ActorID(w.a.ID)
}

// Type implements [model.Owner].
func (w *wrappedOwner) Type() model.OwnerType {
	return w.a.OwnerType()
}

// DisplayName implements [model.Owner].
func (w *wrappedOwner) DisplayName() string {
	return w.a.String()
}

// Phone implements [model.Owner].
func (w *wrappedOwner) Phone() string {
	switch {
	case w.a.IsPerson():
		return w.a.Person.Phone
	case w.a.IsOrganization():
		return w.a.Organization.Phone
	default:
		return ""
	}
}

// Email implements [model.Owner].
func (w *wrappedOwner) Email() string {
	switch {
	case w.a.IsPerson():
		return w.a.Person.Email()
	case w.a.IsOrganization():
		return w.a.Organization.Email
	default:
		return ""
	}
}

var _ model.Owner = &wrappedOwner{}

type Person struct {
	ActorID uint `gorm:"primaryKey;autoIncrement:false"`

	CreatedAt time.Time
	UpdatedAt time.Time

	FirstName  string
	FamilyName string `gorm:"index"`
	Phone      string

	AuthUserID *uint
	AuthUser   *AuthUser `gorm:"constraint:OnDelete:SET NULL;"`

	NeighborhoodID *uint
	Neighborhood   *Neighborhood `gorm:"constraint:OnDelete:SET NULL;"`

	CityID *uint
	City   *City `gorm:"constraint:OnDelete:SET NULL;"`
}

// BeforeCreate creates the parent actor when the person does not reference
// one yet.
func (p *Person) BeforeCreate(tx *gorm.DB) error {
	return ensureActor(tx, &p.ActorID)
}

// AfterDelete removes the parent actor, releasing the properties it owned.
func (p *Person) AfterDelete(tx *gorm.DB) error {
	return deleteActor(tx, p.ActorID)
}

func (p *Person) Email() string {
	if p.AuthUser == nil {
		return ""
	}

	return p.AuthUser.Email
}

func (p *Person) String() string {
	return strings.TrimSpace(p.FirstName + " " + p.FamilyName)
}

type Organization struct {
	ActorID uint `gorm:"primaryKey;autoIncrement:false"`

	CreatedAt time.Time
	UpdatedAt time.Time

	CivilName   string `gorm:"index"`
	Description string
	Phone       string
	Email       string

	NeighborhoodID *uint
	Neighborhood   *Neighborhood `gorm:"constraint:OnDelete:SET NULL;"`

	CityID *uint
	City   *City `gorm:"constraint:OnDelete:SET NULL;"`
}

// BeforeCreate creates the parent actor when the organization does not
// reference one yet.
func (o *Organization) BeforeCreate(tx *gorm.DB) error {
	return ensureActor(tx, &o.ActorID)
}

// AfterDelete removes the parent actor, releasing the properties and the
// equipment it owned.
func (o *Organization) AfterDelete(tx *gorm.DB) error {
	return deleteActor(tx, o.ActorID)
}

func (o *Organization) String() string {
	return o.CivilName
}

func ensureActor(tx *gorm.DB, actorID *uint) error {
	if *actorID != 0 {
		return nil
	}

	actor := &Actor{}
	if err := tx.Session(&gorm.Session{NewDB: true}).Create(actor).Error; err != nil {
		return errors.Wrap(err, "could not create actor")
	}

	*actorID = actor.ID

	return nil
}

func deleteActor(tx *gorm.DB, actorID uint) error {
	if actorID == 0 {
		return nil
	}

	if err := tx.Session(&gorm.Session{NewDB: true}).Delete(&Actor{}, actorID).Error; err != nil {
		return errors.Wrapf(err, "could not delete actor %d", actorID)
	}

	return nil
}

type Neighborhood struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"unique"`
}

func (n *Neighborhood) String() string {
	return n.Name
}

type City struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"unique"`
}

func (c *City) String() string {
	return c.Name
}
