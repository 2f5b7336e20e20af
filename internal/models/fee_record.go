package models

import "time"

// Recorded fee types. Course fees are recorded under their own label
// distinct from the COURSE_PLATFORM_FEE configuration type.
const (
	FeeRecordTransaction = "TRANSACTION_FEE"
	FeeRecordConversion  = "CURRENCY_CONVERSION"
	FeeRecordCommission  = "MARKETPLACE_COMMISSION"
	FeeRecordCourse      = "COURSE_FEE"
)

// ValidFeeRecordType reports whether t names a known recorded fee type.
func ValidFeeRecordType(t string) bool {
	switch t {
	case FeeRecordTransaction, FeeRecordConversion, FeeRecordCommission, FeeRecordCourse:
		return true
	}
	return false
}

// Revenue sources
const (
	RevenueSourceTransactionFee = "TRANSACTION_FEE"
	RevenueSourceCommission     = "MARKETPLACE_COMMISSION"
	RevenueSourceCourseSale     = "COURSE_SALE"
)

// TransactionFee is the immutable audit row written once per applied fee.
// TransactionID carries a uniqueness constraint so duplicate submissions
// for the same logical transaction are rejected.
type TransactionFee struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	TransactionID string    `gorm:"uniqueIndex;not null" json:"transactionId"`
	UserID        uint      `gorm:"not null;index" json:"userId"`
	FeeType       string    `gorm:"not null;index" json:"feeType"`
	BaseAmount    float64   `gorm:"not null" json:"baseAmount"`
	FeeAmount     float64   `gorm:"not null" json:"feeAmount"`
	FeeRate       float64   `gorm:"not null" json:"feeRate"`
	Currency      string    `gorm:"not null" json:"currency"`
	Description   string    `json:"description,omitempty"`
	Metadata      JSON      `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// RevenueRecord captures platform income for reporting. Never updated in place.
type RevenueRecord struct {
	ID          string    `gorm:"primarykey" json:"id"`
	Source      string    `gorm:"not null;index" json:"source"`
	Amount      float64   `gorm:"not null" json:"amount"`
	Currency    string    `gorm:"not null" json:"currency"`
	Description string    `json:"description,omitempty"`
	Metadata    JSON      `gorm:"type:jsonb" json:"metadata,omitempty"`
	Date        time.Time `gorm:"index" json:"date"`
}
