// Seed creates the initial admin account and the default fee configurations.
// Safe to run repeatedly; existing rows are left untouched.
package main

import (
	"errors"
	"log"
	"os"

	"bazari/internal/config"
	"bazari/internal/models"
	"bazari/internal/repositories"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	config.LoadEnv()

	if err := repositories.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if repositories.DB != nil {
			sqlDB, err := repositories.DB.DB()
			if err == nil {
				if err := sqlDB.Close(); err != nil {
					log.Printf("⚠️ Failed to close PostgreSQL connection: %v", err)
				}
			}
		}
		if repositories.CacheService != nil {
			if err := repositories.CacheService.Close(); err != nil {
				log.Printf("⚠️ Failed to close Redis connection: %v", err)
			}
		}
	}()

	seedAdmin()
	seedFeeConfigurations()

	log.Println("✅ Seed completed")
}

func seedAdmin() {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD must be set in environment")
	}

	var existing models.User
	if err := repositories.DB.Where("email = ?", adminEmail).First(&existing).Error; err == nil {
		log.Println("Admin user already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatal("Failed to look up admin user:", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	admin := models.User{
		Email:        adminEmail,
		Password:     string(hashedPassword),
		Name:         "Platform Admin",
		Role:         "admin",
		UserType:     models.UserTypeEnterprise,
		TokenVersion: 1,
	}
	if err := repositories.DB.Create(&admin).Error; err != nil {
		log.Fatal("Failed to create admin user:", err)
	}

	wallet := models.Wallet{UserID: admin.ID, Currency: "USD", Status: "active"}
	if err := repositories.DB.Create(&wallet).Error; err != nil {
		log.Fatal("Failed to create admin wallet:", err)
	}
	repositories.DB.Model(&admin).Update("wallet_id", wallet.ID)

	log.Println("✅ Admin account created")
}

func floatPtr(v float64) *float64 { return &v }
func strPtr(s string) *string     { return &s }

func seedFeeConfigurations() {
	configs := []models.FeeConfiguration{
		{
			Name:     "Standard Transaction Fee",
			Type:     models.FeeConfigTransaction,
			FeeType:  models.FeeModePercentage,
			FeeValue: 1.5,
			MinFee:   floatPtr(0.50),
			MaxFee:   floatPtr(25.00),
			Currency: "USD",
			Conditions: models.JSON{
				"minAmount": 0,
				"maxAmount": 10000,
				"userTypes": []string{models.UserTypeStandard, models.UserTypePremium},
			},
			IsActive:  true,
			AppliesTo: strPtr(models.UserTypeStandard),
		},
		{
			Name:     "Premium Transaction Fee",
			Type:     models.FeeConfigTransaction,
			FeeType:  models.FeeModePercentage,
			FeeValue: 0.8,
			MinFee:   floatPtr(0.25),
			MaxFee:   floatPtr(15.00),
			Currency: "USD",
			Conditions: models.JSON{
				"minAmount": 0,
				"maxAmount": 50000,
				"userTypes": []string{models.UserTypePremium, models.UserTypeEnterprise},
			},
			IsActive:  true,
			AppliesTo: strPtr(models.UserTypePremium),
		},
		{
			Name:     "Enterprise Transaction Fee",
			Type:     models.FeeConfigTransaction,
			FeeType:  models.FeeModeTiered,
			FeeValue: 0.5,
			MinFee:   floatPtr(0.10),
			MaxFee:   floatPtr(50.00),
			Currency: "USD",
			Conditions: models.JSON{
				"tiers": []map[string]interface{}{
					{"min": 0, "max": 1000, "rate": 0.8},
					{"min": 1000, "max": 10000, "rate": 0.5},
					{"min": 10000, "max": 100000, "rate": 0.3},
					{"min": 100000, "max": 0, "rate": 0.2},
				},
			},
			IsActive:  true,
			AppliesTo: strPtr(models.UserTypeEnterprise),
		},
		{
			Name:     "Marketplace Commission",
			Type:     models.FeeConfigMarketplaceCommission,
			FeeType:  models.FeeModePercentage,
			FeeValue: 3.0,
			MinFee:   floatPtr(1.00),
			MaxFee:   floatPtr(100.00),
			Currency: "USD",
			Conditions: models.JSON{
				"categoryAdjustments": map[string]interface{}{
					"ELECTRONICS": 1.2,
					"FASHION":     1.0,
					"FOOD":        0.8,
					"BOOKS":       0.7,
					"SERVICES":    0.9,
				},
			},
			IsActive: true,
		},
		{
			Name:     "Course Platform Fee",
			Type:     models.FeeConfigCoursePlatform,
			FeeType:  models.FeeModeTiered,
			FeeValue: 25.0,
			MinFee:   floatPtr(2.99),
			MaxFee:   floatPtr(199.99),
			Currency: "USD",
			Conditions: models.JSON{
				"tiers": []map[string]interface{}{
					{"min": 0, "max": 50, "rate": 30},
					{"min": 50, "max": 200, "rate": 25},
					{"min": 200, "max": 500, "rate": 20},
					{"min": 500, "max": 0, "rate": 15},
				},
				"categoryAdjustments": map[string]interface{}{
					"TECHNOLOGY": 0.9,
					"BUSINESS":   1.0,
					"ARTS":       1.1,
					"LANGUAGE":   0.8,
					"SCIENCE":    0.95,
				},
				"levelAdjustments": map[string]interface{}{
					"BEGINNER":     1.0,
					"INTERMEDIATE": 0.95,
					"ADVANCED":     0.9,
				},
			},
			IsActive: true,
		},
		{
			Name:     "Currency Conversion Fee",
			Type:     models.FeeConfigCurrencyConversion,
			FeeType:  models.FeeModePercentage,
			FeeValue: 0.5,
			MinFee:   floatPtr(0.25),
			MaxFee:   floatPtr(10.00),
			Currency: "USD",
			Conditions: models.JSON{
				"supportedCurrencies": []string{"USD", "CNY", "INR", "BRL", "RUB", "ZAR"},
			},
			IsActive: true,
		},
	}

	for _, cfg := range configs {
		var existing models.FeeConfiguration
		err := repositories.DB.Where("name = ?", cfg.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatal("Failed to look up fee configuration:", err)
		}
		if err := repositories.DB.Create(&cfg).Error; err != nil {
			log.Fatalf("Failed to create fee configuration %q: %v", cfg.Name, err)
		}
		log.Printf("✅ Created fee configuration %q", cfg.Name)
	}
}
