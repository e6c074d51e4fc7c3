package model

import (
	"strings"
	"time"

	"github.com/dealerlist/dealerlist-backend/pkg/util"
)

// DealerStatus is the verification status of a dealer. Pending is
// represented by the empty string so that equality filters stay simple
// at the storage boundary.
type DealerStatus string

const (
	StatusPending    DealerStatus = ""
	StatusVerified   DealerStatus = "verified"
	StatusUnverified DealerStatus = "unverified"
)

// IsValid reports whether s is one of the three known statuses.
func (s DealerStatus) IsValid() bool {
	return s == StatusPending || s == StatusVerified || s == StatusUnverified
}

// Display renders the status for humans; blank status reads "Pending".
func (s DealerStatus) Display() string {
	if s == StatusPending {
		return "Pending"
	}
	return string(s)
}

// Dealer is the canonical contact record tracked by the registry.
type Dealer struct {
	ID              uint         `gorm:"primarykey" json:"id"`
	Name            string       `gorm:"not null" json:"name"`
	City            string       `gorm:"index;not null" json:"city"`
	ContactNumber   string       `gorm:"type:varchar(10);not null" json:"contact_number"`
	AlternateNumber string       `gorm:"type:varchar(10)" json:"alternate_number"`
	Status          DealerStatus `gorm:"type:varchar(20);default:'';index" json:"status"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

func (Dealer) TableName() string {
	return "dealers"
}

// DealerInput carries the mutable fields of a dealer as submitted by a
// form or an import row, before validation and normalization.
type DealerInput struct {
	Name            string
	City            string
	ContactNumber   string
	AlternateNumber string
	Status          DealerStatus
}

// Validation messages match the ones shown in the entry form.
const (
	MsgNameRequired    = "Name is required"
	MsgCityRequired    = "City is required"
	MsgContactRequired = "Contact number is required"
	MsgInvalidPhone    = "Please enter a valid 10-digit phone number"
)

// ValidateDealerInput checks the registry's field rules and returns
// every violated field, not just the first. It is a pure function of
// the input.
func ValidateDealerInput(input DealerInput) map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(input.Name) == "" {
		errs["name"] = MsgNameRequired
	}
	if strings.TrimSpace(input.City) == "" {
		errs["city"] = MsgCityRequired
	}

	if input.ContactNumber == "" {
		errs["contact_number"] = MsgContactRequired
	} else if !util.IsValidPhone(input.ContactNumber) {
		errs["contact_number"] = MsgInvalidPhone
	}

	if input.AlternateNumber != "" && !util.IsValidPhone(input.AlternateNumber) {
		errs["alternate_number"] = MsgInvalidPhone
	}

	return errs
}

// Normalize rewrites the phone fields to their digit-only form.
// An absent alternate number stays an empty string, never null.
func (in DealerInput) Normalize() DealerInput {
	in.ContactNumber = util.DigitsOnly(in.ContactNumber)
	if in.AlternateNumber != "" {
		in.AlternateNumber = util.DigitsOnly(in.AlternateNumber)
	}
	return in
}

// ToDealer builds a Dealer from a normalized input.
func (in DealerInput) ToDealer() *Dealer {
	return &Dealer{
		Name:            in.Name,
		City:            in.City,
		ContactNumber:   in.ContactNumber,
		AlternateNumber: in.AlternateNumber,
		Status:          in.Status,
	}
}
