package domain

import (
	"time"

	"github.com/m04kA/PetCare-BookingService/pkg/types"
)

// Cadence is the step of a recurring booking series
type Cadence string

const (
	CadenceWeekly    Cadence = "weekly"
	CadenceBiweekly  Cadence = "biweekly"
	CadenceMonthly   Cadence = "monthly"
	CadenceQuarterly Cadence = "quarterly"
)

// Cadences lists every supported cadence
var Cadences = []Cadence{CadenceWeekly, CadenceBiweekly, CadenceMonthly, CadenceQuarterly}

// IsValid returns true for a known cadence
func (c Cadence) IsValid() bool {
	for _, known := range Cadences {
		if c == known {
			return true
		}
	}
	return false
}

// RecurrenceRule describes how a series of occurrences is generated
// EndDate is an inclusive upper bound
type RecurrenceRule struct {
	Cadence   Cadence
	StartDate time.Time
	EndDate   time.Time
	BasePrice float64
}

// Occurrence is one concrete visit produced by expanding a rule
type Occurrence struct {
	Date            time.Time
	Time            types.TimeString
	DurationMinutes int
	Price           float64
}

// PricingMode decides how a recurring submission prices each record
type PricingMode string

const (
	// PricingPerOccurrence: every generated booking carries the single-visit price
	PricingPerOccurrence PricingMode = "per_occurrence"
	// PricingSplitTotal: the displayed total is split across generated bookings
	PricingSplitTotal PricingMode = "split_total"
)

// IsValid returns true for a known pricing mode
func (m PricingMode) IsValid() bool {
	return m == PricingPerOccurrence || m == PricingSplitTotal
}
