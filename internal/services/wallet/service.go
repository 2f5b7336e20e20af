// Package wallet implements wallet balances and movements. Withdrawals and
// transfers price their fee through the fee engine instead of a hard-coded
// rate; every movement runs inside a database transaction with the wallet
// row locked.
package wallet

import (
	"context"
	"fmt"
	"log"
	"time"

	"bazari/internal/models"
	"bazari/internal/repositories"
	"bazari/internal/repositories/cache"
	"bazari/internal/services/card"
	"bazari/internal/services/fee"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FeeService is the slice of the fee service the wallet needs.
type FeeService interface {
	Quote(ctx context.Context, configType string, amount float64, fctx fee.Context) (*fee.Result, *models.FeeConfiguration, error)
	Record(ctx context.Context, input fee.RecordInput) (*models.TransactionFee, error)
}

type Service interface {
	GetWallet(ctx context.Context, userID uint) (*models.Wallet, error)
	TopUp(ctx context.Context, userID uint, fundingCard card.Input, amount float64) (*models.Transaction, error)
	Withdraw(ctx context.Context, userID uint, amount float64, userType string) (*models.Transaction, error)
	Transfer(ctx context.Context, senderID, receiverID uint, amount float64, userType string) (*models.Transaction, error)
	GetTransactionHistory(ctx context.Context, userID uint, limit, offset int) ([]models.Transaction, error)
}

type service struct {
	repo   repositories.WalletRepository
	cache  *cache.CacheService
	fees   FeeService
	config Config
}

// NewService creates a new wallet service.
func NewService(
	repo repositories.WalletRepository,
	cacheService *cache.CacheService,
	fees FeeService,
	config Config,
) Service {
	if repo == nil {
		panic("wallet repository is required")
	}
	if fees == nil {
		panic("fee service is required")
	}

	if config.DefaultCurrency == "" {
		config.DefaultCurrency = "USD"
	}
	if config.Limits == nil {
		config.Limits = map[string]TransactionLimits{
			"user": {
				MinTransactionAmount:  1,
				MaxTransactionAmount:  5000,
				DailyTransactionLimit: 10000,
			},
			"admin": {
				MinTransactionAmount:  1,
				MaxTransactionAmount:  50000,
				DailyTransactionLimit: 100000,
			},
		}
	}
	if config.ProcessingTimeout == 0 {
		config.ProcessingTimeout = DefaultTimeout
	}

	return &service{
		repo:   repo,
		cache:  cacheService,
		fees:   fees,
		config: config,
	}
}

func (s *service) GetWallet(ctx context.Context, userID uint) (*models.Wallet, error) {
	key := walletCacheKey(userID)
	if s.cache != nil {
		var cached models.Wallet
		if hit, err := s.cache.Get(ctx, key, &cached); hit {
			return &cached, nil
		} else if err != nil {
			log.Printf("wallet cache error for user %d: %v", userID, err)
		}
	}

	wallet, err := s.repo.GetByUserID(userID)
	if err != nil {
		if err == repositories.ErrWalletNotFound {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, wallet); err != nil {
			log.Printf("failed to cache wallet: %v", err)
		}
	}
	return wallet, nil
}

func (s *service) TopUp(ctx context.Context, userID uint, fundingCard card.Input, amount float64) (*models.Transaction, error) {
	if err := s.checkLimits(amount); err != nil {
		return nil, err
	}

	cardToken, err := card.Tokenize(fundingCard)
	if err != nil {
		return nil, fmt.Errorf("card rejected: %w", err)
	}

	reference := uuid.NewString()
	txn := &models.Transaction{
		Type:        models.TransactionTypeTopup,
		SenderID:    userID,
		ReceiverID:  userID,
		Amount:      amount,
		Currency:    s.config.DefaultCurrency,
		Status:      models.TransactionStatusCompleted,
		Description: fmt.Sprintf("Top up via %s card", cardToken.CardType),
		Reference:   reference,
		Metadata:    models.JSON{"cardToken": cardToken.Token},
	}

	err = s.repo.ExecuteInTransaction(func(tx *gorm.DB) error {
		wallet, err := s.repo.GetByUserIDForUpdate(tx, userID)
		if err != nil {
			return err
		}
		if wallet.Status != "active" {
			return ErrWalletLocked
		}
		wallet.Balance += amount
		if err := s.repo.Update(tx, wallet); err != nil {
			return err
		}
		return s.repo.CreateTransaction(tx, txn)
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, userID)
	return txn, nil
}

// Withdraw debits amount plus the transaction fee resolved by the fee
// engine. The payer covers the fee on top of the withdrawn amount.
func (s *service) Withdraw(ctx context.Context, userID uint, amount float64, userType string) (*models.Transaction, error) {
	if err := s.checkLimits(amount); err != nil {
		return nil, err
	}
	if err := s.checkDailyLimit(ctx, userID, amount); err != nil {
		return nil, err
	}

	quote, cfg, err := s.fees.Quote(ctx, models.FeeConfigTransaction, amount, fee.Context{UserType: userType})
	if err != nil {
		return nil, fmt.Errorf("failed to price withdrawal fee: %w", err)
	}

	reference := uuid.NewString()
	txn := &models.Transaction{
		Type:        models.TransactionTypeWithdrawal,
		SenderID:    userID,
		ReceiverID:  userID,
		Amount:      amount,
		Fee:         quote.FeeAmount,
		Currency:    cfg.Currency,
		Status:      models.TransactionStatusCompleted,
		Description: "Wallet withdrawal",
		Reference:   reference,
	}

	err = s.repo.ExecuteInTransaction(func(tx *gorm.DB) error {
		wallet, err := s.repo.GetByUserIDForUpdate(tx, userID)
		if err != nil {
			return err
		}
		if wallet.Status != "active" {
			return ErrWalletLocked
		}
		if wallet.Balance < quote.TotalAmount {
			return ErrInsufficientBalance
		}
		wallet.Balance -= quote.TotalAmount
		if err := s.repo.Update(tx, wallet); err != nil {
			return err
		}
		return s.repo.CreateTransaction(tx, txn)
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, userID)
	s.recordFee(ctx, "WITHDRAWAL_"+reference, userID, quote)
	return txn, nil
}

// Transfer moves amount between wallets; the sender covers the fee.
func (s *service) Transfer(ctx context.Context, senderID, receiverID uint, amount float64, userType string) (*models.Transaction, error) {
	if senderID == receiverID {
		return nil, ErrSelfTransfer
	}
	if err := s.checkLimits(amount); err != nil {
		return nil, err
	}
	if err := s.checkDailyLimit(ctx, senderID, amount); err != nil {
		return nil, err
	}

	quote, cfg, err := s.fees.Quote(ctx, models.FeeConfigTransaction, amount, fee.Context{UserType: userType})
	if err != nil {
		return nil, fmt.Errorf("failed to price transfer fee: %w", err)
	}

	reference := uuid.NewString()
	txn := &models.Transaction{
		Type:        models.TransactionTypeTransfer,
		SenderID:    senderID,
		ReceiverID:  receiverID,
		Amount:      amount,
		Fee:         quote.FeeAmount,
		Currency:    cfg.Currency,
		Status:      models.TransactionStatusCompleted,
		Description: "Wallet transfer",
		Reference:   reference,
	}

	err = s.repo.ExecuteInTransaction(func(tx *gorm.DB) error {
		sender, err := s.repo.GetByUserIDForUpdate(tx, senderID)
		if err != nil {
			return err
		}
		receiver, err := s.repo.GetByUserIDForUpdate(tx, receiverID)
		if err != nil {
			return err
		}
		if sender.Status != "active" || receiver.Status != "active" {
			return ErrWalletLocked
		}
		if sender.Balance < quote.TotalAmount {
			return ErrInsufficientBalance
		}
		sender.Balance -= quote.TotalAmount
		receiver.Balance += amount
		if err := s.repo.Update(tx, sender); err != nil {
			return err
		}
		if err := s.repo.Update(tx, receiver); err != nil {
			return err
		}
		return s.repo.CreateTransaction(tx, txn)
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, senderID)
	s.invalidate(ctx, receiverID)
	s.recordFee(ctx, "TRANSFER_"+reference, senderID, quote)
	return txn, nil
}

func (s *service) GetTransactionHistory(ctx context.Context, userID uint, limit, offset int) ([]models.Transaction, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repo.GetTransactionHistory(ctx, userID, limit, offset)
}

func (s *service) checkLimits(amount float64) error {
	limits := s.config.Limits["user"]
	if amount <= 0 || amount < limits.MinTransactionAmount {
		return ErrInvalidAmount
	}
	if amount > limits.MaxTransactionAmount {
		return fmt.Errorf("amount exceeds maximum limit of %v", limits.MaxTransactionAmount)
	}
	return nil
}

// checkDailyLimit caps the volume a user can move out of the wallet per
// calendar day. Withdrawals and transfers both debit the sender, so both
// count against the limit.
func (s *service) checkDailyLimit(ctx context.Context, userID uint, amount float64) error {
	limits := s.config.Limits["user"]
	total, err := s.repo.GetDailyTransactionTotal(ctx, userID, time.Now(),
		models.TransactionTypeWithdrawal, models.TransactionTypeTransfer)
	if err != nil {
		return err
	}
	if total+amount > limits.DailyTransactionLimit {
		return ErrDailyLimitExceeded
	}
	return nil
}

func (s *service) recordFee(ctx context.Context, transactionID string, userID uint, quote *fee.Result) {
	if quote.FeeAmount == 0 {
		return
	}
	_, err := s.fees.Record(ctx, fee.RecordInput{
		TransactionID: transactionID,
		UserID:        userID,
		FeeType:       models.FeeRecordTransaction,
		BaseAmount:    quote.BaseAmount,
		FeeAmount:     quote.FeeAmount,
		FeeRate:       quote.FeeRate,
		Currency:      quote.Currency,
		Description:   "Wallet transaction fee",
	})
	if err != nil && err != fee.ErrDuplicateRecord {
		log.Printf("failed to record wallet fee for %s: %v", transactionID, err)
	}
}

func (s *service) invalidate(ctx context.Context, userID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, walletCacheKey(userID)); err != nil {
		log.Printf("failed to invalidate wallet cache: %v", err)
	}
}

func walletCacheKey(userID uint) string {
	return fmt.Sprintf("wallet:user:%d", userID)
}
