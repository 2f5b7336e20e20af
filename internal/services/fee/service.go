package fee

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"bazari/internal/models"
	"bazari/internal/repositories"
	"bazari/internal/repositories/cache"

	"github.com/google/uuid"
)

const configCacheTTL = 5 * time.Minute

// Service resolves the authoritative fee configuration, runs the engine and
// persists applied fees together with their revenue records.
type Service interface {
	// Quote calculates the fee a configuration of configType would charge on
	// amount. It never persists anything.
	Quote(ctx context.Context, configType string, amount float64, fctx Context) (*Result, *models.FeeConfiguration, error)

	// Record persists one applied fee as a TransactionFee audit row plus a
	// RevenueRecord. Idempotent on TransactionID: a duplicate submission
	// returns the existing row together with ErrDuplicateRecord.
	Record(ctx context.Context, input RecordInput) (*models.TransactionFee, error)

	ActiveConfig(ctx context.Context, configType, userType string) (*models.FeeConfiguration, error)
	ListConfigs(filter repositories.FeeConfigFilter) ([]models.FeeConfiguration, error)
	CreateConfig(ctx context.Context, cfg *models.FeeConfiguration) error
	UpdateConfig(ctx context.Context, cfg *models.FeeConfiguration) error
	DeactivateConfig(ctx context.Context, id uint) (*models.FeeConfiguration, error)
}

type service struct {
	configs repositories.FeeConfigRepository
	records repositories.FeeRecordRepository
	revenue repositories.RevenueRepository
	cache   *cache.CacheService
}

// NewService creates a new fee service. The cache is optional.
func NewService(
	configs repositories.FeeConfigRepository,
	records repositories.FeeRecordRepository,
	revenue repositories.RevenueRepository,
	cacheService *cache.CacheService,
) Service {
	if configs == nil {
		panic("fee config repository is required")
	}
	if records == nil {
		panic("fee record repository is required")
	}
	if revenue == nil {
		panic("revenue repository is required")
	}
	return &service{
		configs: configs,
		records: records,
		revenue: revenue,
		cache:   cacheService,
	}
}

func (s *service) Quote(ctx context.Context, configType string, amount float64, fctx Context) (*Result, *models.FeeConfiguration, error) {
	cfg, err := s.ActiveConfig(ctx, configType, fctx.UserType)
	if err != nil {
		return nil, nil, err
	}

	result, err := Calculate(amount, cfg, fctx)
	if err != nil {
		return nil, nil, err
	}
	return result, cfg, nil
}

func (s *service) Record(ctx context.Context, input RecordInput) (*models.TransactionFee, error) {
	if input.TransactionID == "" {
		return nil, errors.New("transaction id is required")
	}
	if input.BaseAmount < 0 || input.FeeAmount < 0 {
		return nil, ErrInvalidAmount
	}

	record := &models.TransactionFee{
		TransactionID: input.TransactionID,
		UserID:        input.UserID,
		FeeType:       input.FeeType,
		BaseAmount:    input.BaseAmount,
		FeeAmount:     input.FeeAmount,
		FeeRate:       input.FeeRate,
		Currency:      input.Currency,
		Description:   input.Description,
		Metadata:      models.JSON(input.Metadata),
	}
	if err := s.records.Create(record); err != nil {
		if errors.Is(err, repositories.ErrDuplicateFeeRecord) {
			// return the row that won so callers can see what was recorded
			existing, getErr := s.records.GetByTransactionID(input.TransactionID)
			if getErr != nil {
				return nil, ErrDuplicateRecord
			}
			return existing, ErrDuplicateRecord
		}
		return nil, err
	}

	revenue := &models.RevenueRecord{
		ID:          uuid.NewString(),
		Source:      revenueSource(input.FeeType),
		Amount:      input.FeeAmount,
		Currency:    input.Currency,
		Description: fmt.Sprintf("%s - %s", input.FeeType, input.Description),
		Metadata: models.JSON{
			"transactionId": input.TransactionID,
			"userId":        input.UserID,
			"feeType":       input.FeeType,
		},
		Date: time.Now(),
	}
	if err := s.revenue.Create(revenue); err != nil {
		// the audit row exists; revenue reporting loses one entry but the
		// applied fee stays recorded
		log.Printf("failed to create revenue record for %s: %v", input.TransactionID, err)
	}

	return record, nil
}

func (s *service) ActiveConfig(ctx context.Context, configType, userType string) (*models.FeeConfiguration, error) {
	key := activeConfigCacheKey(configType, userType)
	if s.cache != nil {
		var cached models.FeeConfiguration
		if hit, err := s.cache.Get(ctx, key, &cached); hit {
			return &cached, nil
		} else if err != nil {
			log.Printf("fee config cache error: %v", err)
		}
	}

	cfg, err := s.configs.ActiveByType(configType, userType)
	if err != nil {
		if errors.Is(err, repositories.ErrFeeConfigNotFound) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetWithTTL(ctx, key, cfg, configCacheTTL); err != nil {
			log.Printf("failed to cache fee config: %v", err)
		}
	}
	return cfg, nil
}

func (s *service) ListConfigs(filter repositories.FeeConfigFilter) ([]models.FeeConfiguration, error) {
	return s.configs.List(filter)
}

func (s *service) CreateConfig(ctx context.Context, cfg *models.FeeConfiguration) error {
	if !models.ValidFeeConfigType(cfg.Type) {
		return fmt.Errorf("invalid fee configuration type: %s", cfg.Type)
	}
	if !models.ValidFeeMode(cfg.FeeType) {
		return fmt.Errorf("invalid fee calculation mode: %s", cfg.FeeType)
	}
	if cfg.FeeValue < 0 {
		return ErrInvalidAmount
	}
	if err := s.configs.Create(cfg); err != nil {
		return err
	}
	s.invalidateConfigCache(ctx, cfg.Type)
	return nil
}

func (s *service) UpdateConfig(ctx context.Context, cfg *models.FeeConfiguration) error {
	if !models.ValidFeeConfigType(cfg.Type) {
		return fmt.Errorf("invalid fee configuration type: %s", cfg.Type)
	}
	if !models.ValidFeeMode(cfg.FeeType) {
		return fmt.Errorf("invalid fee calculation mode: %s", cfg.FeeType)
	}
	if _, err := s.configs.GetByID(cfg.ID); err != nil {
		return err
	}
	if err := s.configs.Update(cfg); err != nil {
		return err
	}
	s.invalidateConfigCache(ctx, cfg.Type)
	return nil
}

func (s *service) DeactivateConfig(ctx context.Context, id uint) (*models.FeeConfiguration, error) {
	cfg, err := s.configs.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrFeeConfigNotFound) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	cfg.IsActive = false
	if err := s.configs.Update(cfg); err != nil {
		return nil, err
	}
	s.invalidateConfigCache(ctx, cfg.Type)
	return cfg, nil
}

func (s *service) invalidateConfigCache(ctx context.Context, configType string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteMany(ctx, fmt.Sprintf("feeconfig:active:%s:*", configType)); err != nil {
		log.Printf("failed to invalidate fee config cache: %v", err)
	}
}

func activeConfigCacheKey(configType, userType string) string {
	if userType == "" {
		userType = "-"
	}
	return fmt.Sprintf("feeconfig:active:%s:%s", configType, userType)
}

func revenueSource(feeType string) string {
	switch feeType {
	case models.FeeRecordCourse:
		return models.RevenueSourceCourseSale
	case models.FeeConfigMarketplaceCommission:
		return models.RevenueSourceCommission
	default:
		return models.RevenueSourceTransactionFee
	}
}
