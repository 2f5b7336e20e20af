package repositories

import (
	"fmt"
	"time"

	"bazari/internal/models"

	"gorm.io/gorm"
)

// RevenueRepository stores platform revenue records.
type RevenueRepository interface {
	Create(record *models.RevenueRecord) error
	ListBetween(start, end time.Time, source string) ([]models.RevenueRecord, error)
	FeesBetween(start, end time.Time) ([]models.TransactionFee, error)
}

type revenueRepository struct {
	db *gorm.DB
}

func NewRevenueRepository(db *gorm.DB) RevenueRepository {
	return &revenueRepository{db: db}
}

func (r *revenueRepository) Create(record *models.RevenueRecord) error {
	if err := r.db.Create(record).Error; err != nil {
		return fmt.Errorf("failed to create revenue record: %w", err)
	}
	return nil
}

func (r *revenueRepository) ListBetween(start, end time.Time, source string) ([]models.RevenueRecord, error) {
	query := r.db.Where("date >= ? AND date <= ?", start, end)
	if source != "" {
		query = query.Where("source = ?", source)
	}

	var records []models.RevenueRecord
	if err := query.Order("date DESC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list revenue records: %w", err)
	}
	return records, nil
}

func (r *revenueRepository) FeesBetween(start, end time.Time) ([]models.TransactionFee, error) {
	var fees []models.TransactionFee
	err := r.db.Where("created_at >= ? AND created_at <= ?", start, end).
		Order("created_at DESC").
		Find(&fees).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list transaction fees: %w", err)
	}
	return fees, nil
}
