package model

import (
	"slices"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type HarvestID uint

type HarvestStatus string

const (
	HarvestStatusOrphan        HarvestStatus = "orphan"
	HarvestStatusAdopted       HarvestStatus = "adopted"
	HarvestStatusToBeConfirmed HarvestStatus = "to-be-confirmed"
	HarvestStatusScheduled     HarvestStatus = "date-scheduled"
	HarvestStatusReady         HarvestStatus = "ready"
	HarvestStatusSucceeded     HarvestStatus = "succeeded"
	HarvestStatusCancelled     HarvestStatus = "cancelled"
)

var HarvestStatuses = []HarvestStatus{
	HarvestStatusOrphan,
	HarvestStatusAdopted,
	HarvestStatusToBeConfirmed,
	HarvestStatusScheduled,
	HarvestStatusReady,
	HarvestStatusSucceeded,
	HarvestStatusCancelled,
}

// Label returns the human readable status, ie "To be confirmed".
func (s HarvestStatus) Label() string {
	label := strings.ReplaceAll(string(s), "-", " ")
	if label == "" {
		return ""
	}

	return cases.Title(language.English).String(label[:1]) + label[1:]
}

func (s HarvestStatus) Valid() bool {
	return slices.Contains(HarvestStatuses, s)
}

type Harvest interface {
	WithID[HarvestID]
	WithLifecycle

	Status() HarvestStatus
	PropertyID() *PropertyID
	StartDate() *time.Time
	EndDate() *time.Time
	About() string
	Participants() int64
}
