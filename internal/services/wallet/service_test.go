package wallet

import (
	"context"
	"strings"
	"testing"
	"time"

	"bazari/internal/models"
	"bazari/internal/repositories"
	"bazari/internal/services/fee"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type MockWalletRepo struct {
	mock.Mock
}

func (m *MockWalletRepo) Create(wallet *models.Wallet) error {
	args := m.Called(wallet)
	return args.Error(0)
}

func (m *MockWalletRepo) GetByUserID(userID uint) (*models.Wallet, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Wallet), args.Error(1)
}

func (m *MockWalletRepo) GetByUserIDForUpdate(tx *gorm.DB, userID uint) (*models.Wallet, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Wallet), args.Error(1)
}

func (m *MockWalletRepo) Update(tx *gorm.DB, wallet *models.Wallet) error {
	args := m.Called(wallet)
	return args.Error(0)
}

func (m *MockWalletRepo) CreateTransaction(tx *gorm.DB, txn *models.Transaction) error {
	args := m.Called(txn)
	return args.Error(0)
}

func (m *MockWalletRepo) GetTransactionHistory(ctx context.Context, userID uint, limit, offset int) ([]models.Transaction, error) {
	args := m.Called(userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Transaction), args.Error(1)
}

func (m *MockWalletRepo) GetDailyTransactionTotal(ctx context.Context, userID uint, day time.Time, txTypes ...string) (float64, error) {
	args := m.Called(userID, txTypes)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockWalletRepo) ExecuteInTransaction(fn func(tx *gorm.DB) error) error {
	m.Called()
	return fn(nil)
}

// debitTypes are the transaction types that count against the daily limit.
var debitTypes = []string{models.TransactionTypeWithdrawal, models.TransactionTypeTransfer}

type MockFeeService struct {
	mock.Mock
}

func (m *MockFeeService) Quote(ctx context.Context, configType string, amount float64, fctx fee.Context) (*fee.Result, *models.FeeConfiguration, error) {
	args := m.Called(configType, amount, fctx)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*fee.Result), args.Get(1).(*models.FeeConfiguration), args.Error(2)
}

func (m *MockFeeService) Record(ctx context.Context, input fee.RecordInput) (*models.TransactionFee, error) {
	args := m.Called(input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TransactionFee), args.Error(1)
}

func transactionFeeQuote(amount, feeAmount float64) (*fee.Result, *models.FeeConfiguration) {
	result := &fee.Result{
		BaseAmount:  amount,
		FeeAmount:   feeAmount,
		FeeRate:     feeAmount / amount * 100,
		NetAmount:   amount - feeAmount,
		TotalAmount: amount + feeAmount,
		Currency:    "USD",
	}
	cfg := &models.FeeConfiguration{
		Name:     "Standard Transaction Fee",
		Type:     models.FeeConfigTransaction,
		FeeType:  models.FeeModePercentage,
		FeeValue: 1.5,
		Currency: "USD",
		IsActive: true,
	}
	return result, cfg
}

func TestWithdraw(t *testing.T) {
	repo := new(MockWalletRepo)
	fees := new(MockFeeService)
	svc := NewService(repo, nil, fees, Config{})

	result, cfg := transactionFeeQuote(100, 1.5)
	fees.On("Quote", models.FeeConfigTransaction, 100.0, fee.Context{UserType: "STANDARD"}).
		Return(result, cfg, nil)
	fees.On("Record", mock.MatchedBy(func(input fee.RecordInput) bool {
		return strings.HasPrefix(input.TransactionID, "WITHDRAWAL_") &&
			input.FeeType == models.FeeRecordTransaction &&
			input.FeeAmount == 1.5
	})).Return(&models.TransactionFee{}, nil)

	repo.On("GetDailyTransactionTotal", uint(1), debitTypes).Return(0.0, nil)
	repo.On("ExecuteInTransaction").Return(nil)
	repo.On("GetByUserIDForUpdate", uint(1)).
		Return(&models.Wallet{UserID: 1, Balance: 500, Status: "active"}, nil)
	repo.On("Update", mock.MatchedBy(func(w *models.Wallet) bool {
		return w.Balance == 398.5 // 500 - (100 + 1.5)
	})).Return(nil)
	repo.On("CreateTransaction", mock.MatchedBy(func(txn *models.Transaction) bool {
		return txn.Type == models.TransactionTypeWithdrawal && txn.Amount == 100 && txn.Fee == 1.5
	})).Return(nil)

	txn, err := svc.Withdraw(context.Background(), 1, 100, "STANDARD")
	require.NoError(t, err)
	assert.Equal(t, 100.0, txn.Amount)
	assert.Equal(t, 1.5, txn.Fee)

	repo.AssertExpectations(t)
	fees.AssertExpectations(t)
}

func TestWithdraw_InsufficientBalance(t *testing.T) {
	repo := new(MockWalletRepo)
	fees := new(MockFeeService)
	svc := NewService(repo, nil, fees, Config{})

	result, cfg := transactionFeeQuote(100, 1.5)
	fees.On("Quote", models.FeeConfigTransaction, 100.0, mock.Anything).Return(result, cfg, nil)

	repo.On("GetDailyTransactionTotal", uint(1), debitTypes).Return(0.0, nil)
	repo.On("ExecuteInTransaction").Return(nil)
	repo.On("GetByUserIDForUpdate", uint(1)).
		Return(&models.Wallet{UserID: 1, Balance: 101, Status: "active"}, nil)

	_, err := svc.Withdraw(context.Background(), 1, 100, "STANDARD")
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	// no fee may be recorded for a failed withdrawal
	fees.AssertNotCalled(t, "Record", mock.Anything)
}

func TestWithdraw_InvalidAmount(t *testing.T) {
	repo := new(MockWalletRepo)
	fees := new(MockFeeService)
	svc := NewService(repo, nil, fees, Config{})

	_, err := svc.Withdraw(context.Background(), 1, 0, "STANDARD")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.Withdraw(context.Background(), 1, -50, "STANDARD")
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestWithdraw_DailyLimitExceeded(t *testing.T) {
	repo := new(MockWalletRepo)
	fees := new(MockFeeService)
	svc := NewService(repo, nil, fees, Config{})

	repo.On("GetDailyTransactionTotal", uint(1), debitTypes).Return(9950.0, nil)

	_, err := svc.Withdraw(context.Background(), 1, 100, "STANDARD")
	assert.ErrorIs(t, err, ErrDailyLimitExceeded)
}

func TestWithdraw_LockedWallet(t *testing.T) {
	repo := new(MockWalletRepo)
	fees := new(MockFeeService)
	svc := NewService(repo, nil, fees, Config{})

	result, cfg := transactionFeeQuote(100, 1.5)
	fees.On("Quote", models.FeeConfigTransaction, 100.0, mock.Anything).Return(result, cfg, nil)

	repo.On("GetDailyTransactionTotal", uint(1), debitTypes).Return(0.0, nil)
	repo.On("ExecuteInTransaction").Return(nil)
	repo.On("GetByUserIDForUpdate", uint(1)).
		Return(&models.Wallet{UserID: 1, Balance: 500, Status: "frozen"}, nil)

	_, err := svc.Withdraw(context.Background(), 1, 100, "STANDARD")
	assert.ErrorIs(t, err, ErrWalletLocked)
}

func TestTransfer(t *testing.T) {
	repo := new(MockWalletRepo)
	fees := new(MockFeeService)
	svc := NewService(repo, nil, fees, Config{})

	result, cfg := transactionFeeQuote(200, 3)
	fees.On("Quote", models.FeeConfigTransaction, 200.0, fee.Context{UserType: "PREMIUM"}).
		Return(result, cfg, nil)
	fees.On("Record", mock.MatchedBy(func(input fee.RecordInput) bool {
		return strings.HasPrefix(input.TransactionID, "TRANSFER_") && input.UserID == 1
	})).Return(&models.TransactionFee{}, nil)

	sender := &models.Wallet{UserID: 1, Balance: 1000, Status: "active"}
	receiver := &models.Wallet{UserID: 2, Balance: 50, Status: "active"}

	repo.On("GetDailyTransactionTotal", uint(1), debitTypes).Return(0.0, nil)
	repo.On("ExecuteInTransaction").Return(nil)
	repo.On("GetByUserIDForUpdate", uint(1)).Return(sender, nil)
	repo.On("GetByUserIDForUpdate", uint(2)).Return(receiver, nil)
	repo.On("Update", mock.Anything).Return(nil)
	repo.On("CreateTransaction", mock.MatchedBy(func(txn *models.Transaction) bool {
		return txn.Type == models.TransactionTypeTransfer &&
			txn.SenderID == 1 && txn.ReceiverID == 2
	})).Return(nil)

	txn, err := svc.Transfer(context.Background(), 1, 2, 200, "PREMIUM")
	require.NoError(t, err)
	assert.Equal(t, 200.0, txn.Amount)
	assert.Equal(t, 3.0, txn.Fee)

	// sender pays amount plus fee, receiver gets the amount only
	assert.Equal(t, 797.0, sender.Balance)
	assert.Equal(t, 250.0, receiver.Balance)

	repo.AssertExpectations(t)
	fees.AssertExpectations(t)
}

func TestTransfer_VolumeCountsTowardDailyLimit(t *testing.T) {
	repo := new(MockWalletRepo)
	fees := new(MockFeeService)
	svc := NewService(repo, nil, fees, Config{})

	// two 5000 transfers exhaust the 10000 daily limit; the third must fail
	repo.On("GetDailyTransactionTotal", uint(1), debitTypes).Return(0.0, nil).Once()
	repo.On("GetDailyTransactionTotal", uint(1), debitTypes).Return(5000.0, nil).Once()
	repo.On("GetDailyTransactionTotal", uint(1), debitTypes).Return(10000.0, nil).Once()

	result, cfg := transactionFeeQuote(5000, 25)
	fees.On("Quote", models.FeeConfigTransaction, 5000.0, mock.Anything).Return(result, cfg, nil)
	fees.On("Record", mock.Anything).Return(&models.TransactionFee{}, nil)

	sender := &models.Wallet{UserID: 1, Balance: 50000, Status: "active"}
	receiver := &models.Wallet{UserID: 2, Balance: 0, Status: "active"}
	repo.On("ExecuteInTransaction").Return(nil)
	repo.On("GetByUserIDForUpdate", uint(1)).Return(sender, nil)
	repo.On("GetByUserIDForUpdate", uint(2)).Return(receiver, nil)
	repo.On("Update", mock.Anything).Return(nil)
	repo.On("CreateTransaction", mock.Anything).Return(nil)

	for i := 0; i < 2; i++ {
		_, err := svc.Transfer(context.Background(), 1, 2, 5000, "STANDARD")
		require.NoError(t, err)
	}

	_, err := svc.Transfer(context.Background(), 1, 2, 5000, "STANDARD")
	assert.ErrorIs(t, err, ErrDailyLimitExceeded)
	repo.AssertExpectations(t)
}

func TestWithdraw_DailyLimitIncludesTransfers(t *testing.T) {
	repo := new(MockWalletRepo)
	fees := new(MockFeeService)
	svc := NewService(repo, nil, fees, Config{})

	// prior transfers alone already sit at the cap
	repo.On("GetDailyTransactionTotal", uint(1), debitTypes).Return(10000.0, nil)

	_, err := svc.Withdraw(context.Background(), 1, 100, "STANDARD")
	assert.ErrorIs(t, err, ErrDailyLimitExceeded)
	fees.AssertNotCalled(t, "Quote", mock.Anything, mock.Anything, mock.Anything)
}

func TestTransfer_SelfTransfer(t *testing.T) {
	repo := new(MockWalletRepo)
	fees := new(MockFeeService)
	svc := NewService(repo, nil, fees, Config{})

	_, err := svc.Transfer(context.Background(), 1, 1, 100, "STANDARD")
	assert.ErrorIs(t, err, ErrSelfTransfer)
}

func TestWithdraw_ZeroFeeSkipsRecording(t *testing.T) {
	repo := new(MockWalletRepo)
	fees := new(MockFeeService)
	svc := NewService(repo, nil, fees, Config{})

	result, cfg := transactionFeeQuote(100, 0)
	result.FeeRate = 0
	fees.On("Quote", models.FeeConfigTransaction, 100.0, mock.Anything).Return(result, cfg, nil)

	repo.On("GetDailyTransactionTotal", uint(1), debitTypes).Return(0.0, nil)
	repo.On("ExecuteInTransaction").Return(nil)
	repo.On("GetByUserIDForUpdate", uint(1)).
		Return(&models.Wallet{UserID: 1, Balance: 500, Status: "active"}, nil)
	repo.On("Update", mock.Anything).Return(nil)
	repo.On("CreateTransaction", mock.Anything).Return(nil)

	_, err := svc.Withdraw(context.Background(), 1, 100, "STANDARD")
	require.NoError(t, err)

	fees.AssertNotCalled(t, "Record", mock.Anything)
}

func TestGetWallet_NotFound(t *testing.T) {
	repo := new(MockWalletRepo)
	fees := new(MockFeeService)
	svc := NewService(repo, nil, fees, Config{})

	repo.On("GetByUserID", uint(9)).Return(nil, repositories.ErrWalletNotFound)

	_, err := svc.GetWallet(context.Background(), 9)
	assert.ErrorIs(t, err, ErrWalletNotFound)
}
