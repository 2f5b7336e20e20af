package models

import "time"

// Fee configuration types
const (
	FeeConfigTransaction           = "TRANSACTION_FEE"
	FeeConfigMarketplaceCommission = "MARKETPLACE_COMMISSION"
	FeeConfigCurrencyConversion    = "CURRENCY_CONVERSION"
	FeeConfigCoursePlatform        = "COURSE_PLATFORM_FEE"
)

// Fee calculation modes
const (
	FeeModePercentage = "PERCENTAGE"
	FeeModeFixed      = "FIXED"
	FeeModeTiered     = "TIERED"
)

// AppliesToAll marks a configuration valid for every user tier.
const AppliesToAll = "ALL"

// FeeConfiguration is a named fee rule created by administrators.
// Rules are deactivated rather than deleted; the most recently created
// active rule of a type is authoritative.
type FeeConfiguration struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	Name       string    `gorm:"uniqueIndex;not null" json:"name"`
	Type       string    `gorm:"not null;index" json:"type"`
	FeeType    string    `gorm:"not null" json:"feeType"`
	FeeValue   float64   `gorm:"not null" json:"feeValue"`
	MinFee     *float64  `json:"minFee,omitempty"`
	MaxFee     *float64  `json:"maxFee,omitempty"`
	Currency   string    `gorm:"default:'USD'" json:"currency"`
	Conditions JSON      `gorm:"type:jsonb" json:"conditions,omitempty"`
	IsActive   bool      `gorm:"default:true;index" json:"isActive"`
	AppliesTo  *string   `json:"appliesTo,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ValidFeeConfigType reports whether t names a known configuration type.
func ValidFeeConfigType(t string) bool {
	switch t {
	case FeeConfigTransaction, FeeConfigMarketplaceCommission,
		FeeConfigCurrencyConversion, FeeConfigCoursePlatform:
		return true
	}
	return false
}

// ValidFeeMode reports whether m names a known calculation mode.
func ValidFeeMode(m string) bool {
	switch m {
	case FeeModePercentage, FeeModeFixed, FeeModeTiered:
		return true
	}
	return false
}
