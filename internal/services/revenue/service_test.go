package revenue

import (
	"context"
	"testing"
	"time"

	"bazari/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

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

func TestGetReport(t *testing.T) {
	repo := new(MockRevenueRepo)
	svc := NewService(repo)

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)

	records := []models.RevenueRecord{
		{ID: "a", Source: models.RevenueSourceTransactionFee, Amount: 15, Currency: "USD", Date: start.Add(24 * time.Hour)},
		{ID: "b", Source: models.RevenueSourceTransactionFee, Amount: 5, Currency: "USD", Date: start.Add(24 * time.Hour)},
		{ID: "c", Source: models.RevenueSourceCommission, Amount: 105, Currency: "USD", Date: start.Add(48 * time.Hour)},
	}
	fees := []models.TransactionFee{
		{TransactionID: "WITHDRAWAL_1", FeeType: models.FeeRecordTransaction, BaseAmount: 1000, FeeAmount: 15, Currency: "USD"},
		{TransactionID: "ORDER_1", FeeType: models.FeeRecordCommission, BaseAmount: 5000, FeeAmount: 105, Currency: "USD"},
	}

	repo.On("ListBetween", start, end, "").Return(records, nil)
	repo.On("FeesBetween", start, end).Return(fees, nil)

	report, err := svc.GetReport(context.Background(), Query{Start: start, End: end})
	require.NoError(t, err)

	assert.Equal(t, 125.0, report.Summary.TotalRevenue)
	assert.Equal(t, 120.0, report.Summary.TotalFees)
	assert.Equal(t, 2, report.Summary.TotalTransactions)
	assert.Equal(t, "MONTHLY", report.Summary.Period)

	bySource := report.RevenueBySource[models.RevenueSourceTransactionFee]
	assert.Equal(t, 2, bySource.Count)
	assert.Equal(t, 20.0, bySource.TotalAmount)

	byType := report.FeesByType[models.FeeRecordCommission]
	assert.Equal(t, 1, byType.Count)
	assert.Equal(t, 105.0, byType.TotalFees)
	assert.Equal(t, 5000.0, byType.TotalBaseAmount)

	assert.Equal(t, 20.0, report.DailyRevenue["2025-01-02"])
	assert.Equal(t, 105.0, report.DailyRevenue["2025-01-03"])

	repo.AssertExpectations(t)
}

func TestGetReport_DefaultsToLast30Days(t *testing.T) {
	repo := new(MockRevenueRepo)
	svc := NewService(repo)

	repo.On("ListBetween", mock.Anything, mock.Anything, "").Return([]models.RevenueRecord{}, nil)
	repo.On("FeesBetween", mock.Anything, mock.Anything).Return([]models.TransactionFee{}, nil)

	report, err := svc.GetReport(context.Background(), Query{})
	require.NoError(t, err)

	window := report.Summary.EndDate.Sub(report.Summary.StartDate)
	assert.InDelta(t, (30 * 24 * time.Hour).Hours(), window.Hours(), 1)
	assert.Empty(t, report.RevenueBySource)
}
