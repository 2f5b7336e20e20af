package models

import (
	"time"

	"gorm.io/gorm"
)

// User tiers used by fee adjustment tables.
const (
	UserTypeBasic      = "BASIC"
	UserTypeStandard   = "STANDARD"
	UserTypePremium    = "PREMIUM"
	UserTypeEnterprise = "ENTERPRISE"
)

type User struct {
	gorm.Model
	Email        string  `gorm:"uniqueIndex;not null"`
	Password     string  `gorm:"not null"`
	Name         string  `gorm:"not null"`
	UserType     string  `gorm:"default:'STANDARD'"`
	Role         string  `gorm:"default:'user'"`
	WalletID     *uint   `gorm:"unique;default:null"`
	Wallet       *Wallet `gorm:"foreignKey:WalletID"`
	Status       string  `gorm:"default:'active'"`
	LastLoginAt  time.Time
	TokenVersion int `gorm:"default:1"`
}
