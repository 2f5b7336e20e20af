package models

import "github.com/golang-jwt/jwt/v5"

// Application permissions
const (
	// Admin permissions
	PermissionReadAdmin  = "admin:read"
	PermissionWriteAdmin = "admin:write"

	// Wallet permissions
	PermissionWalletRead  = "wallet:read"
	PermissionWalletWrite = "wallet:write"

	// Monetization permissions
	PermissionFeeQuote    = "fees:quote"
	PermissionFeeRecord   = "fees:record"
	PermissionFeeManage   = "fees:manage"
	PermissionRevenueRead = "revenue:read"

	// User permissions
	PermissionChangePassword = "user:change-password"
)

type UserClaims struct {
	jwt.RegisteredClaims
	UserID       uint     `json:"user_id"`
	Email        string   `json:"email"`
	Role         string   `json:"role"`
	UserType     string   `json:"user_type"`
	Permissions  []string `json:"permissions"`
	TokenVersion int      `json:"token_version"`
}

// HasPermission checks if the claims include a specific permission
func (c *UserClaims) HasPermission(permission string) bool {
	for _, p := range c.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// GetDefaultPermissions returns default permissions based on role
func GetDefaultPermissions(role string) []string {
	switch role {
	case "admin":
		return []string{
			PermissionReadAdmin,
			PermissionWriteAdmin,
			PermissionWalletRead,
			PermissionWalletWrite,
			PermissionFeeQuote,
			PermissionFeeRecord,
			PermissionFeeManage,
			PermissionRevenueRead,
			PermissionChangePassword,
		}
	case "user":
		return []string{
			PermissionWalletRead,
			PermissionWalletWrite,
			PermissionFeeQuote,
			PermissionFeeRecord,
			PermissionChangePassword,
		}
	default:
		return []string{}
	}
}
