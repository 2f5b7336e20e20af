// Package fee implements the fee calculation engine: a pure, deterministic
// calculator for percentage, fixed and tiered fees with min/max clamping and
// multiplicative contextual adjustments, plus the service that resolves the
// authoritative configuration and records applied fees.
package fee

import (
	"math"

	"bazari/internal/models"
)

// Calculate computes the fee owed on baseAmount under cfg.
//
// Order is fixed: base computation by mode, a single clamp to
// [MinFee, MaxFee], then contextual adjustments (userType, category,
// courseLevel). Adjustments may push the fee back outside the clamp range;
// the clamp is not re-applied. The final fee is rounded to two decimals and
// net/total are derived from the rounded value. cfg is never mutated.
func Calculate(baseAmount float64, cfg *models.FeeConfiguration, ctx Context) (*Result, error) {
	if baseAmount < 0 {
		return nil, ErrInvalidAmount
	}
	if cfg == nil {
		return nil, ErrConfigNotFound
	}
	if !cfg.IsActive {
		return nil, ErrInactiveConfig
	}

	amount, err := baseFee(baseAmount, cfg)
	if err != nil {
		return nil, err
	}
	breakdown := Breakdown{BaseFee: round2(amount)}

	if cfg.MinFee != nil && amount < *cfg.MinFee {
		amount = *cfg.MinFee
	}
	if cfg.MaxFee != nil && amount > *cfg.MaxFee {
		amount = *cfg.MaxFee
	}

	if key, factor, ok := lookupFactor(adjustmentsFor(cfg, "userTypeAdjustments", defaultUserTypeAdjustments), ctx.UserType); ok {
		amount *= factor
		breakdown.UserType = &Adjustment{Key: key, Factor: factor}
	}
	if key, factor, ok := lookupFactor(adjustmentsFor(cfg, "categoryAdjustments", defaultCategoryAdjustments), ctx.Category); ok {
		amount *= factor
		breakdown.Category = &Adjustment{Key: key, Factor: factor}
	}
	if key, factor, ok := lookupFactor(adjustmentsFor(cfg, "levelAdjustments", defaultLevelAdjustments), ctx.CourseLevel); ok {
		amount *= factor
		breakdown.CourseLevel = &Adjustment{Key: key, Factor: factor}
	}

	amount = round2(amount)

	rate := 0.0
	if baseAmount > 0 {
		rate = amount / baseAmount * 100
	}

	return &Result{
		BaseAmount:  baseAmount,
		FeeAmount:   amount,
		FeeRate:     rate,
		NetAmount:   round2(baseAmount - amount),
		TotalAmount: round2(baseAmount + amount),
		Currency:    cfg.Currency,
		Breakdown:   breakdown,
	}, nil
}

func baseFee(baseAmount float64, cfg *models.FeeConfiguration) (float64, error) {
	switch cfg.FeeType {
	case models.FeeModePercentage:
		return baseAmount * (cfg.FeeValue / 100), nil
	case models.FeeModeFixed:
		return cfg.FeeValue, nil
	case models.FeeModeTiered:
		tiers := tiersFor(cfg)
		if len(tiers) == 0 {
			// no table anywhere, fall back to the configured rate
			return baseAmount * (cfg.FeeValue / 100), nil
		}
		for _, t := range tiers {
			if baseAmount >= t.Min && (t.Max <= 0 || baseAmount < t.Max) {
				return baseAmount * (t.Rate / 100), nil
			}
		}
		// above every bounded bracket, the last one applies
		return baseAmount * (tiers[len(tiers)-1].Rate / 100), nil
	default:
		return 0, ErrUnknownFeeMode
	}
}

// round2 rounds to currency minor units.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
