package fee

import (
	"context"
	"testing"
	"time"

	"bazari/internal/models"
	"bazari/internal/repositories"
	"bazari/internal/utils/pagination"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockFeeConfigRepo struct {
	mock.Mock
}

func (m *MockFeeConfigRepo) Create(cfg *models.FeeConfiguration) error {
	args := m.Called(cfg)
	return args.Error(0)
}

func (m *MockFeeConfigRepo) Update(cfg *models.FeeConfiguration) error {
	args := m.Called(cfg)
	return args.Error(0)
}

func (m *MockFeeConfigRepo) GetByID(id uint) (*models.FeeConfiguration, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FeeConfiguration), args.Error(1)
}

func (m *MockFeeConfigRepo) List(filter repositories.FeeConfigFilter) ([]models.FeeConfiguration, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FeeConfiguration), args.Error(1)
}

func (m *MockFeeConfigRepo) ActiveByType(configType, userType string) (*models.FeeConfiguration, error) {
	args := m.Called(configType, userType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FeeConfiguration), args.Error(1)
}

type MockFeeRecordRepo struct {
	mock.Mock
}

func (m *MockFeeRecordRepo) Create(fee *models.TransactionFee) error {
	args := m.Called(fee)
	return args.Error(0)
}

func (m *MockFeeRecordRepo) GetByTransactionID(transactionID string) (*models.TransactionFee, error) {
	args := m.Called(transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TransactionFee), args.Error(1)
}

func (m *MockFeeRecordRepo) List(filter repositories.FeeRecordFilter, p *pagination.Pagination) ([]models.TransactionFee, error) {
	args := m.Called(filter, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TransactionFee), args.Error(1)
}

type MockRevenueRepo struct {
	mock.Mock
}

func (m *MockRevenueRepo) Create(record *models.RevenueRecord) error {
	args := m.Called(record)
	return args.Error(0)
}

func (m *MockRevenueRepo) ListBetween(start, end time.Time, source string) ([]models.RevenueRecord, error) {
	args := m.Called(start, end, source)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RevenueRecord), args.Error(1)
}

func (m *MockRevenueRepo) FeesBetween(start, end time.Time) ([]models.TransactionFee, error) {
	args := m.Called(start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TransactionFee), args.Error(1)
}

func newTestService(t *testing.T) (Service, *MockFeeConfigRepo, *MockFeeRecordRepo, *MockRevenueRepo) {
	t.Helper()
	configs := new(MockFeeConfigRepo)
	records := new(MockFeeRecordRepo)
	revenue := new(MockRevenueRepo)
	return NewService(configs, records, revenue, nil), configs, records, revenue
}

func TestService_Quote(t *testing.T) {
	svc, configs, _, _ := newTestService(t)

	cfg := &models.FeeConfiguration{
		Name:     "Standard Transaction Fee",
		Type:     models.FeeConfigTransaction,
		FeeType:  models.FeeModePercentage,
		FeeValue: 1.5,
		Currency: "USD",
		IsActive: true,
	}
	configs.On("ActiveByType", models.FeeConfigTransaction, "STANDARD").Return(cfg, nil)

	result, resolved, err := svc.Quote(context.Background(), models.FeeConfigTransaction, 1000, Context{UserType: "STANDARD"})
	require.NoError(t, err)

	assert.Equal(t, 15.0, result.FeeAmount)
	assert.Equal(t, 1015.0, result.TotalAmount)
	assert.Equal(t, cfg.Name, resolved.Name)
	configs.AssertExpectations(t)
}

func TestService_Quote_NoConfig(t *testing.T) {
	svc, configs, _, _ := newTestService(t)

	configs.On("ActiveByType", models.FeeConfigCoursePlatform, "").
		Return(nil, repositories.ErrFeeConfigNotFound)

	_, _, err := svc.Quote(context.Background(), models.FeeConfigCoursePlatform, 100, Context{})
	assert.ErrorIs(t, err, ErrConfigNotFound)
	configs.AssertExpectations(t)
}

func TestService_Record(t *testing.T) {
	svc, _, records, revenue := newTestService(t)

	records.On("Create", mock.MatchedBy(func(fee *models.TransactionFee) bool {
		return fee.TransactionID == "ORDER_123" && fee.FeeAmount == 105.0
	})).Return(nil)
	revenue.On("Create", mock.MatchedBy(func(r *models.RevenueRecord) bool {
		return r.Source == models.RevenueSourceCommission && r.Amount == 105.0 && r.ID != ""
	})).Return(nil)

	record, err := svc.Record(context.Background(), RecordInput{
		TransactionID: "ORDER_123",
		UserID:        7,
		FeeType:       models.FeeRecordCommission,
		BaseAmount:    5000,
		FeeAmount:     105,
		FeeRate:       2.1,
		Currency:      "USD",
		Description:   "Marketplace commission for order 123",
	})
	require.NoError(t, err)
	assert.Equal(t, "ORDER_123", record.TransactionID)

	records.AssertExpectations(t)
	revenue.AssertExpectations(t)
}

func TestService_Record_Duplicate(t *testing.T) {
	svc, _, records, revenue := newTestService(t)

	existing := &models.TransactionFee{TransactionID: "ORDER_123", FeeAmount: 105}
	records.On("Create", mock.Anything).Return(repositories.ErrDuplicateFeeRecord)
	records.On("GetByTransactionID", "ORDER_123").Return(existing, nil)

	record, err := svc.Record(context.Background(), RecordInput{
		TransactionID: "ORDER_123",
		UserID:        7,
		FeeType:       models.FeeRecordCommission,
		BaseAmount:    5000,
		FeeAmount:     105,
		Currency:      "USD",
	})
	assert.ErrorIs(t, err, ErrDuplicateRecord)

	// the caller gets the row that was recorded first
	require.NotNil(t, record)
	assert.Equal(t, existing, record)

	// and no second revenue entry is written
	revenue.AssertNotCalled(t, "Create", mock.Anything)
	records.AssertExpectations(t)
}

func TestService_Record_RevenueFailureIsTolerated(t *testing.T) {
	svc, _, records, revenue := newTestService(t)

	records.On("Create", mock.Anything).Return(nil)
	revenue.On("Create", mock.Anything).Return(assert.AnError)

	record, err := svc.Record(context.Background(), RecordInput{
		TransactionID: "ENROLLMENT_42",
		UserID:        3,
		FeeType:       models.FeeRecordCourse,
		BaseAmount:    40,
		FeeAmount:     12,
		FeeRate:       30,
		Currency:      "USD",
	})
	require.NoError(t, err)
	assert.Equal(t, "ENROLLMENT_42", record.TransactionID)
}

func TestService_Record_CourseFeeMapsToCourseSale(t *testing.T) {
	svc, _, records, revenue := newTestService(t)

	records.On("Create", mock.Anything).Return(nil)
	revenue.On("Create", mock.MatchedBy(func(r *models.RevenueRecord) bool {
		return r.Source == models.RevenueSourceCourseSale
	})).Return(nil)

	_, err := svc.Record(context.Background(), RecordInput{
		TransactionID: "ENROLLMENT_7",
		UserID:        3,
		FeeType:       models.FeeRecordCourse,
		BaseAmount:    100,
		FeeAmount:     25,
		Currency:      "USD",
	})
	require.NoError(t, err)
	revenue.AssertExpectations(t)
}

func TestService_DeactivateConfig(t *testing.T) {
	svc, configs, _, _ := newTestService(t)

	cfg := &models.FeeConfiguration{
		ID:       4,
		Name:     "Marketplace Commission",
		Type:     models.FeeConfigMarketplaceCommission,
		FeeType:  models.FeeModePercentage,
		FeeValue: 3,
		IsActive: true,
	}
	configs.On("GetByID", uint(4)).Return(cfg, nil)
	configs.On("Update", mock.MatchedBy(func(c *models.FeeConfiguration) bool {
		return c.ID == 4 && !c.IsActive
	})).Return(nil)

	updated, err := svc.DeactivateConfig(context.Background(), 4)
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	configs.AssertExpectations(t)
}

func TestService_CreateConfig_Validation(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	err := svc.CreateConfig(context.Background(), &models.FeeConfiguration{
		Name:    "bad",
		Type:    "LISTING_FEE",
		FeeType: models.FeeModePercentage,
	})
	assert.Error(t, err)

	err = svc.CreateConfig(context.Background(), &models.FeeConfiguration{
		Name:    "bad mode",
		Type:    models.FeeConfigTransaction,
		FeeType: "SURCHARGE",
	})
	assert.Error(t, err)
}
