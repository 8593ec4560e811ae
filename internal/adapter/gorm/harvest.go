package gorm

import (
	"fmt"
	"time"

	"github.com/bornholm/saskatoon/internal/core/model"
)

type Harvest struct {
	ID uint `gorm:"primaryKey"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Status string `gorm:"index;default:orphan"`

	PropertyID *uint `gorm:"index"`
	Property   *Property

	PickLeaderID *uint
	PickLeader   *Person `gorm:"foreignKey:PickLeaderID;references:ActorID;constraint:OnDelete:SET NULL;"`

	StartDate *time.Time
	EndDate   *time.Time

	NbRequiredPickers int `gorm:"default:3"`
	About             string

	Trees    []*TreeType                `gorm:"many2many:harvest_trees;"`
	Requests []*RequestForParticipation `gorm:"constraint:OnDelete:CASCADE;"`
	Yields   []*HarvestYield            `gorm:"constraint:OnDelete:CASCADE;"`
	Images   []*HarvestImage            `gorm:"constraint:OnDelete:CASCADE;"`
	Comments []*Comment                 `gorm:"constraint:OnDelete:CASCADE;"`
}

func (h *Harvest) String() string {
	if h.Property != nil {
		return fmt.Sprintf("Harvest #%d - %s", h.ID, h.Property.ShortAddress())
	}

	return fmt.Sprintf("Harvest #%d", h.ID)
}

type RequestForParticipation struct {
	ID uint `gorm:"primaryKey"`

	PersonID uint    `gorm:"index"`
	Person   *Person `gorm:"foreignKey:PersonID;references:ActorID;constraint:OnDelete:CASCADE;"`

	HarvestID uint `gorm:"index"`
	Harvest   *Harvest

	NumberOfPeople int `gorm:"default:1"`
	Comment        string
	IsAccepted     *bool

	CreationDate     time.Time `gorm:"autoCreateTime"`
	ConfirmationDate *time.Time
}

func (r *RequestForParticipation) String() string {
	if r.Person != nil {
		return fmt.Sprintf("Request #%d by %s", r.ID, r.Person.String())
	}

	return fmt.Sprintf("Request #%d", r.ID)
}

type HarvestYield struct {
	ID uint `gorm:"primaryKey"`

	HarvestID uint `gorm:"index"`
	Harvest   *Harvest

	TreeID uint
	Tree   *TreeType `gorm:"constraint:OnDelete:CASCADE;"`

	TotalInLb float64

	RecipientID *uint
	Recipient   *Actor `gorm:"constraint:OnDelete:SET NULL;"`
}

func (y *HarvestYield) String() string {
	return fmt.Sprintf("%.2f lb", y.TotalInLb)
}

type HarvestImage struct {
	ID uint `gorm:"primaryKey"`

	CreatedAt time.Time

	HarvestID uint `gorm:"index"`
	Harvest   *Harvest

	Image string
}

func (i *HarvestImage) String() string {
	return i.Image
}

type Comment struct {
	ID uint `gorm:"primaryKey"`

	CreatedDate time.Time `gorm:"autoCreateTime"`

	Content string

	AuthorID *uint
	Author   *Person `gorm:"foreignKey:AuthorID;references:ActorID;constraint:OnDelete:SET NULL;"`

	HarvestID uint `gorm:"index"`
	Harvest   *Harvest
}

func (c *Comment) String() string {
	if len(c.Content) > 32 {
		return c.Content[:32] + "..."
	}

	return c.Content
}

type EquipmentType struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"unique"`
}

func (t *EquipmentType) String() string {
	return t.Name
}

type Equipment struct {
	ID uint `gorm:"primaryKey"`

	TypeID *uint
	Type   *EquipmentType `gorm:"constraint:OnDelete:SET NULL;"`

	Description string
	Count       int `gorm:"default:1"`

	PropertyID *uint
	Property   *Property `gorm:"constraint:OnDelete:CASCADE;"`

	OwnerID *uint
	Owner   *Organization `gorm:"foreignKey:OwnerID;references:ActorID;constraint:OnDelete:CASCADE;"`

	SharedWithCommunity bool
}

func (e *Equipment) String() string {
	if e.Type != nil {
		return fmt.Sprintf("%s (%d)", e.Type.Name, e.Count)
	}

	return e.Description
}

type wrappedHarvest struct {
	h            *Harvest
	participants int64
}

// ID implements [model.Harvest].
func (w *wrappedHarvest) ID() model.HarvestID {
	return model.HarvestID(w.h.ID)
}

// CreatedAt implements [model.Harvest].
func (w *wrappedHarvest) CreatedAt() time.Time {
	return w.h.CreatedAt
}

// UpdatedAt implements [model.Harvest].
func (w *wrappedHarvest) UpdatedAt() time.Time {
	return w.h.UpdatedAt
}

// Status implements [model.Harvest].
func (w *wrappedHarvest) Status() model.HarvestStatus {
	return model.HarvestStatus(w.h.Status)
}

// PropertyID implements [model.Harvest].
func (w *wrappedHarvest) PropertyID() *model.PropertyID {
	if w.h.PropertyID == nil {
		return nil
	}

	id := model.PropertyID(*w.h.PropertyID)

	return &id
}

// StartDate implements [model.Harvest].
func (w *wrappedHarvest) StartDate() *time.Time {
	return w.h.StartDate
}

// EndDate implements [model.Harvest].
func (w *wrappedHarvest) EndDate() *time.Time {
	return w.h.EndDate
}

// About implements [model.Harvest].
func (w *wrappedHarvest) About() string {
	return w.h.About
}

// Participants implements [model.Harvest].
func (w *wrappedHarvest) Participants() int64 {
	return w.participants
}

var _ model.Harvest = &wrappedHarvest{}
