// Package model defines domain entities for the application.
package model

import "time"

// Category classifies a utility bill.
type Category string

const (
	CategoryElectricity Category = "Electricity"
	CategoryGas         Category = "Gas"
	CategoryWater       Category = "Water"
	CategoryInternet    Category = "Internet"
)

// IsValid checks if the category is one of the supported kinds.
func (c Category) IsValid() bool {
	switch c {
	case CategoryElectricity, CategoryGas, CategoryWater, CategoryInternet:
		return true
	}
	return false
}

// Bill represents a utility bill available for payment.
type Bill struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Category     Category  `json:"category"`
	Amount       float64   `json:"amount"`
	Location     string    `json:"location"`
	Description  string    `json:"description"`
	ImageURL     string    `json:"image,omitempty"`
	Date         time.Time `json:"date"`
	CreatorEmail string    `json:"creator_email,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsPayable reports whether the bill may be paid at the given instant.
// A bill is payable only while its date falls in the same calendar month
// and year as now. Both operands are compared on UTC calendar fields so
// the rule is immune to host timezone drift.
func (b *Bill) IsPayable(now time.Time) bool {
	by, bm, _ := b.Date.UTC().Date()
	ny, nm, _ := now.UTC().Date()
	return by == ny && bm == nm
}
