package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bazari/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrWalletNotFound  = errors.New("wallet not found")
	ErrDuplicateWallet = errors.New("wallet already exists")
)

// WalletRepository defines the interface for wallet-related database operations.
type WalletRepository interface {
	Create(wallet *models.Wallet) error
	GetByUserID(userID uint) (*models.Wallet, error)

	// GetByUserIDForUpdate locks the wallet row for the duration of the
	// surrounding transaction. Balance mutations must go through it.
	GetByUserIDForUpdate(tx *gorm.DB, userID uint) (*models.Wallet, error)
	Update(tx *gorm.DB, wallet *models.Wallet) error

	CreateTransaction(tx *gorm.DB, txn *models.Transaction) error
	GetTransactionHistory(ctx context.Context, userID uint, limit, offset int) ([]models.Transaction, error)
	GetDailyTransactionTotal(ctx context.Context, userID uint, day time.Time, txTypes ...string) (float64, error)

	ExecuteInTransaction(fn func(tx *gorm.DB) error) error
}

type walletRepository struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) WalletRepository {
	return &walletRepository{db: db}
}

func (r *walletRepository) Create(wallet *models.Wallet) error {
	if err := r.db.Create(wallet).Error; err != nil {
		return fmt.Errorf("failed to create wallet: %w", err)
	}
	return nil
}

func (r *walletRepository) GetByUserID(userID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := r.db.Where("user_id = ?", userID).First(&wallet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return &wallet, nil
}

func (r *walletRepository) GetByUserIDForUpdate(tx *gorm.DB, userID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&wallet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to lock wallet: %w", err)
	}
	return &wallet, nil
}

func (r *walletRepository) Update(tx *gorm.DB, wallet *models.Wallet) error {
	if tx == nil {
		tx = r.db
	}
	if err := tx.Save(wallet).Error; err != nil {
		return fmt.Errorf("failed to update wallet: %w", err)
	}
	return nil
}

func (r *walletRepository) CreateTransaction(tx *gorm.DB, txn *models.Transaction) error {
	if tx == nil {
		tx = r.db
	}
	if err := tx.Create(txn).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (r *walletRepository) GetTransactionHistory(ctx context.Context, userID uint, limit, offset int) ([]models.Transaction, error) {
	var txns []models.Transaction
	err := r.db.WithContext(ctx).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&txns).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction history: %w", err)
	}
	return txns, nil
}

func (r *walletRepository) GetDailyTransactionTotal(ctx context.Context, userID uint, day time.Time, txTypes ...string) (float64, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)

	var total float64
	err := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("sender_id = ? AND type IN ? AND status = ? AND created_at >= ? AND created_at < ?",
			userID, txTypes, models.TransactionStatusCompleted, start, end).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum daily transactions: %w", err)
	}
	return total, nil
}

func (r *walletRepository) ExecuteInTransaction(fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}
