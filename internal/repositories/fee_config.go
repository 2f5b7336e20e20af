package repositories

import (
	"errors"
	"fmt"
	"strings"

	"bazari/internal/models"

	"gorm.io/gorm"
)

var (
	ErrFeeConfigNotFound  = errors.New("fee configuration not found")
	ErrDuplicateFeeConfig = errors.New("fee configuration name already exists")
)

// FeeConfigFilter narrows a configuration listing.
type FeeConfigFilter struct {
	Type     string
	IsActive *bool
}

// FeeConfigRepository defines the interface for fee configuration storage.
type FeeConfigRepository interface {
	Create(cfg *models.FeeConfiguration) error
	Update(cfg *models.FeeConfiguration) error
	GetByID(id uint) (*models.FeeConfiguration, error)
	List(filter FeeConfigFilter) ([]models.FeeConfiguration, error)

	// ActiveByType returns the authoritative active configuration of a type:
	// the most recently created match. For transaction fees the appliesTo
	// audience filter narrows the candidates by user tier.
	ActiveByType(configType, userType string) (*models.FeeConfiguration, error)
}

type feeConfigRepository struct {
	db *gorm.DB
}

func NewFeeConfigRepository(db *gorm.DB) FeeConfigRepository {
	return &feeConfigRepository{db: db}
}

func (r *feeConfigRepository) Create(cfg *models.FeeConfiguration) error {
	if err := r.db.Create(cfg).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "duplicate key") {
			return ErrDuplicateFeeConfig
		}
		return fmt.Errorf("failed to create fee configuration: %w", err)
	}
	return nil
}

func (r *feeConfigRepository) Update(cfg *models.FeeConfiguration) error {
	result := r.db.Save(cfg)
	if result.Error != nil {
		return fmt.Errorf("failed to update fee configuration: %w", result.Error)
	}
	return nil
}

func (r *feeConfigRepository) GetByID(id uint) (*models.FeeConfiguration, error) {
	var cfg models.FeeConfiguration
	if err := r.db.First(&cfg, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFeeConfigNotFound
		}
		return nil, fmt.Errorf("failed to get fee configuration: %w", err)
	}
	return &cfg, nil
}

func (r *feeConfigRepository) List(filter FeeConfigFilter) ([]models.FeeConfiguration, error) {
	query := r.db.Model(&models.FeeConfiguration{})
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	var configs []models.FeeConfiguration
	if err := query.Order("type asc, name asc").Find(&configs).Error; err != nil {
		return nil, fmt.Errorf("failed to list fee configurations: %w", err)
	}
	return configs, nil
}

func (r *feeConfigRepository) ActiveByType(configType, userType string) (*models.FeeConfiguration, error) {
	query := r.db.Where("type = ? AND is_active = ?", configType, true)

	if configType == models.FeeConfigTransaction {
		if userType != "" {
			query = query.Where("applies_to IS NULL OR applies_to = ? OR applies_to = ?",
				models.AppliesToAll, strings.ToUpper(userType))
		} else {
			query = query.Where("applies_to IS NULL OR applies_to = ?", models.AppliesToAll)
		}
	}

	var cfg models.FeeConfiguration
	if err := query.Order("created_at DESC").First(&cfg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFeeConfigNotFound
		}
		return nil, fmt.Errorf("failed to resolve active fee configuration: %w", err)
	}
	return &cfg, nil
}
