package model

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type OwnerType string

const (
	OwnerTypeNone         OwnerType = ""
	OwnerTypePerson       OwnerType = "person"
	OwnerTypeOrganization OwnerType = "organization"
)

// Title returns the verbose name of the owner type, title cased, or an empty
// string when the type is unresolved.
func (t OwnerType) Title() string {
	if t == OwnerTypeNone {
		return ""
	}

	return cases.Title(language.English).String(string(t))
}

func (t OwnerType) Valid() bool {
	switch t {
	case OwnerTypePerson, OwnerTypeOrganization:
		return true
	default:
		return false
	}
}

// ResolveOwnerType maps the owner capability checks to a concrete subtype.
// A person takes precedence if both checks report true.
func ResolveOwnerType(isPerson, isOrganization bool) OwnerType {
	switch {
	case isPerson:
		return OwnerTypePerson
	case isOrganization:
		return OwnerTypeOrganization
	default:
		return OwnerTypeNone
	}
}

type ActorID uint

type Owner interface {
	WithID[ActorID]
	Type() OwnerType
	DisplayName() string
	Phone() string
	Email() string
}
