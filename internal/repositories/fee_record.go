package repositories

import (
	"errors"
	"fmt"
	"strings"

	"bazari/internal/models"
	"bazari/internal/utils/pagination"

	"gorm.io/gorm"
)

var (
	ErrFeeRecordNotFound  = errors.New("transaction fee not found")
	ErrDuplicateFeeRecord = errors.New("transaction fee already exists for this transaction")
)

// FeeRecordFilter narrows a fee listing.
type FeeRecordFilter struct {
	UserID  uint
	FeeType string
}

// FeeRecordRepository stores the immutable TransactionFee audit rows.
type FeeRecordRepository interface {
	Create(fee *models.TransactionFee) error
	GetByTransactionID(transactionID string) (*models.TransactionFee, error)
	List(filter FeeRecordFilter, p *pagination.Pagination) ([]models.TransactionFee, error)
}

type feeRecordRepository struct {
	db *gorm.DB
}

func NewFeeRecordRepository(db *gorm.DB) FeeRecordRepository {
	return &feeRecordRepository{db: db}
}

func (r *feeRecordRepository) Create(fee *models.TransactionFee) error {
	if err := r.db.Create(fee).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "duplicate key") {
			return ErrDuplicateFeeRecord
		}
		return fmt.Errorf("failed to create transaction fee: %w", err)
	}
	return nil
}

func (r *feeRecordRepository) GetByTransactionID(transactionID string) (*models.TransactionFee, error) {
	var fee models.TransactionFee
	if err := r.db.Where("transaction_id = ?", transactionID).First(&fee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFeeRecordNotFound
		}
		return nil, fmt.Errorf("failed to get transaction fee: %w", err)
	}
	return &fee, nil
}

func (r *feeRecordRepository) List(filter FeeRecordFilter, p *pagination.Pagination) ([]models.TransactionFee, error) {
	query := r.db.Model(&models.TransactionFee{})
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.FeeType != "" {
		query = query.Where("fee_type = ?", filter.FeeType)
	}

	if err := query.Count(&p.Total).Error; err != nil {
		return nil, fmt.Errorf("failed to count transaction fees: %w", err)
	}

	var fees []models.TransactionFee
	err := query.Order("created_at DESC").
		Limit(p.Limit).
		Offset(p.Offset).
		Find(&fees).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list transaction fees: %w", err)
	}
	return fees, nil
}
