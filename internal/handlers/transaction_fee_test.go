package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"bazari/internal/models"
	"bazari/internal/repositories"
	"bazari/internal/services/fee"
	"bazari/internal/utils/pagination"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

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

func (m *MockFeeService) ActiveConfig(ctx context.Context, configType, userType string) (*models.FeeConfiguration, error) {
	args := m.Called(configType, userType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FeeConfiguration), args.Error(1)
}

func (m *MockFeeService) ListConfigs(filter repositories.FeeConfigFilter) ([]models.FeeConfiguration, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FeeConfiguration), args.Error(1)
}

func (m *MockFeeService) CreateConfig(ctx context.Context, cfg *models.FeeConfiguration) error {
	args := m.Called(cfg)
	return args.Error(0)
}

func (m *MockFeeService) UpdateConfig(ctx context.Context, cfg *models.FeeConfiguration) error {
	args := m.Called(cfg)
	return args.Error(0)
}

func (m *MockFeeService) DeactivateConfig(ctx context.Context, id uint) (*models.FeeConfiguration, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FeeConfiguration), args.Error(1)
}

type MockFeeRecordRepo struct {
	mock.Mock
}

func (m *MockFeeRecordRepo) Create(record *models.TransactionFee) error {
	args := m.Called(record)
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

func calculateApp(feeService fee.Service) *fiber.App {
	app := fiber.New()
	handler := NewTransactionFeeHandler(feeService, new(MockFeeRecordRepo))
	app.Post("/calculate", handler.Calculate)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) (map[string]interface{}, int) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var parsed map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	return parsed, resp.StatusCode
}

func TestCalculateTransactionFee(t *testing.T) {
	feeService := new(MockFeeService)
	app := calculateApp(feeService)

	result := &fee.Result{
		BaseAmount:  1000,
		FeeAmount:   15,
		FeeRate:     1.5,
		NetAmount:   985,
		TotalAmount: 1015,
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
	feeService.On("Quote", models.FeeConfigTransaction, 1000.0, fee.Context{UserType: "STANDARD"}).
		Return(result, cfg, nil)

	body, status := postJSON(t, app, "/calculate", map[string]interface{}{
		"amount":          1000,
		"currency":        "USD",
		"transactionType": "PAYMENT",
		"userType":        "STANDARD",
	})

	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["success"])

	data := body["data"].(map[string]interface{})
	assert.Equal(t, 15.0, data["feeAmount"])
	assert.Equal(t, 1015.0, data["totalAmount"])
	assert.Equal(t, 1.5, data["feeRate"])

	feeConfig := data["feeConfig"].(map[string]interface{})
	assert.Equal(t, "Standard Transaction Fee", feeConfig["name"])

	feeService.AssertExpectations(t)
}

func TestCalculateTransactionFee_NegativeAmount(t *testing.T) {
	feeService := new(MockFeeService)
	app := calculateApp(feeService)

	body, status := postJSON(t, app, "/calculate", map[string]interface{}{
		"amount":          -5,
		"currency":        "USD",
		"transactionType": "PAYMENT",
	})

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])
	feeService.AssertNotCalled(t, "Quote", mock.Anything, mock.Anything, mock.Anything)
}

func TestCalculateTransactionFee_MissingCurrency(t *testing.T) {
	feeService := new(MockFeeService)
	app := calculateApp(feeService)

	_, status := postJSON(t, app, "/calculate", map[string]interface{}{
		"amount":          100,
		"transactionType": "PAYMENT",
	})

	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestCalculateTransactionFee_NoConfiguration(t *testing.T) {
	feeService := new(MockFeeService)
	app := calculateApp(feeService)

	feeService.On("Quote", models.FeeConfigTransaction, 100.0, mock.Anything).
		Return(nil, nil, fee.ErrConfigNotFound)

	body, status := postJSON(t, app, "/calculate", map[string]interface{}{
		"amount":          100,
		"currency":        "USD",
		"transactionType": "PAYMENT",
	})

	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, false, body["success"])
}
