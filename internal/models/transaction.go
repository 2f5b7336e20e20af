package models

import "time"

// Wallet transaction types
const (
	TransactionTypeTopup      = "TOPUP"
	TransactionTypeWithdrawal = "WITHDRAWAL"
	TransactionTypeTransfer   = "TRANSFER"
)

// Transaction statuses
const (
	TransactionStatusPending   = "pending"
	TransactionStatusCompleted = "completed"
	TransactionStatusFailed    = "failed"
)

// Transaction is one wallet ledger movement.
type Transaction struct {
	ID          uint    `gorm:"primarykey"`
	Type        string  `gorm:"not null"`
	SenderID    uint    `gorm:"not null;index"`
	ReceiverID  uint    `gorm:"not null;index"`
	Amount      float64 `gorm:"not null"`
	Fee         float64 `gorm:"default:0"`
	Currency    string  `gorm:"default:'USD'"`
	Status      string  `gorm:"not null;default:'pending'"`
	Description string
	Reference   string `gorm:"uniqueIndex"` // external reference, links the fee audit row
	Metadata    JSON   `gorm:"type:jsonb"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
