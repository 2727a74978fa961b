package domain

import (
	"time"

	"github.com/m04kA/PetCare-BookingService/pkg/types"
)

// PetType is the kind of animal a booking is for
type PetType string

const (
	PetDog    PetType = "dog"
	PetCat    PetType = "cat"
	PetBird   PetType = "bird"
	PetRabbit PetType = "rabbit"
	PetOther  PetType = "other"
)

// PetTypes lists every supported pet type
var PetTypes = []PetType{PetDog, PetCat, PetBird, PetRabbit, PetOther}

// IsValid returns true for a known pet type
func (p PetType) IsValid() bool {
	for _, known := range PetTypes {
		if p == known {
			return true
		}
	}
	return false
}

// WizardStep is the current step of the booking wizard
type WizardStep string

const (
	StepProviderTime WizardStep = "provider_time"
	StepPetDetails   WizardStep = "pet_details"
	StepConfirmation WizardStep = "confirmation"
)

// SubmissionStatus tracks the confirm action of a wizard
type SubmissionStatus string

const (
	SubmissionEditing    SubmissionStatus = "editing"
	SubmissionSubmitting SubmissionStatus = "submitting"
	SubmissionCompleted  SubmissionStatus = "completed"
)

// BookingDraft is the in-memory working state of one booking wizard
// It is owned by exactly one wizard and is never persisted as is
type BookingDraft struct {
	OwnerID int64

	Service   Service
	Providers []Provider
	Packages  []Package

	ProviderID *int64
	Date       *time.Time
	Time       *types.TimeString

	Recurring bool
	Cadence   Cadence
	EndDate   *time.Time

	PackageID *int64

	PetName             string
	PetType             PetType
	SpecialInstructions string

	CustomerName  string
	CustomerEmail string
	CustomerPhone string
}

// SelectedProvider returns the selected provider among candidates
func (d *BookingDraft) SelectedProvider() *Provider {
	if d.ProviderID == nil {
		return nil
	}
	for i := range d.Providers {
		if d.Providers[i].ID == *d.ProviderID {
			return &d.Providers[i]
		}
	}
	return nil
}

// SelectedPackage returns the selected package among offered ones
func (d *BookingDraft) SelectedPackage() *Package {
	if d.PackageID == nil {
		return nil
	}
	for i := range d.Packages {
		if d.Packages[i].ID == *d.PackageID {
			return &d.Packages[i]
		}
	}
	return nil
}
