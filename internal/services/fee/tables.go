package fee

import (
	"strings"

	"bazari/internal/models"
)

// Built-in tier tables, used when a tiered configuration carries no tier
// table in its conditions. Rates are percentages of the base amount.
var defaultTiers = map[string][]Tier{
	models.FeeConfigTransaction: {
		{Min: 0, Max: 1000, Rate: 1.0},
		{Min: 1000, Max: 10000, Rate: 0.5},
		{Min: 10000, Rate: 0.2},
	},
	models.FeeConfigMarketplaceCommission: {
		{Min: 0, Max: 100, Rate: 5},
		{Min: 100, Max: 1000, Rate: 3},
		{Min: 1000, Max: 10000, Rate: 2},
		{Min: 10000, Rate: 1},
	},
	models.FeeConfigCoursePlatform: {
		{Min: 0, Max: 50, Rate: 30},
		{Min: 50, Max: 200, Rate: 25},
		{Min: 200, Max: 500, Rate: 20},
		{Min: 500, Rate: 15},
	},
}

// Built-in adjustment tables per configuration type. Transaction and
// conversion fees have none: their tiering is expressed through the
// appliesTo audience filter on the configuration instead.
var defaultUserTypeAdjustments = map[string]map[string]float64{
	models.FeeConfigMarketplaceCommission: {
		models.UserTypePremium:    0.8,
		models.UserTypeEnterprise: 0.7,
		models.UserTypeStandard:   1.0,
		models.UserTypeBasic:      1.1,
	},
	models.FeeConfigCoursePlatform: {
		models.UserTypePremium:    0.8,
		models.UserTypeEnterprise: 0.7,
		models.UserTypeStandard:   1.0,
		models.UserTypeBasic:      1.1,
	},
}

var defaultCategoryAdjustments = map[string]map[string]float64{
	models.FeeConfigMarketplaceCommission: {
		"ELECTRONICS": 1.2,
		"FASHION":     1.0,
		"FOOD":        0.8,
		"BOOKS":       0.7,
		"SERVICES":    0.9,
	},
	models.FeeConfigCoursePlatform: {
		"TECHNOLOGY": 0.9,
		"BUSINESS":   1.0,
		"ARTS":       1.1,
		"LANGUAGE":   0.8,
		"SCIENCE":    0.95,
	},
}

var defaultLevelAdjustments = map[string]map[string]float64{
	models.FeeConfigCoursePlatform: {
		"BEGINNER":     1.0,
		"INTERMEDIATE": 0.95,
		"ADVANCED":     0.9,
	},
}

// tiersFor returns the tier table for cfg: the table from its conditions if
// present, otherwise the built-in table for its type.
func tiersFor(cfg *models.FeeConfiguration) []Tier {
	if raw, ok := cfg.Conditions["tiers"].([]interface{}); ok {
		tiers := make([]Tier, 0, len(raw))
		for _, entry := range raw {
			m, ok := entry.(map[string]interface{})
			if !ok {
				continue
			}
			t := Tier{
				Min:  numberField(m, "min"),
				Max:  numberField(m, "max"),
				Rate: numberField(m, "rate"),
			}
			tiers = append(tiers, t)
		}
		if len(tiers) > 0 {
			return tiers
		}
	}
	return defaultTiers[cfg.Type]
}

// adjustmentsFor returns one adjustment table for cfg, preferring the table
// embedded in its conditions under key over the built-in defaults.
func adjustmentsFor(cfg *models.FeeConfiguration, key string, defaults map[string]map[string]float64) map[string]float64 {
	if raw, ok := cfg.Conditions[key].(map[string]interface{}); ok {
		table := make(map[string]float64, len(raw))
		for k, v := range raw {
			if f, ok := v.(float64); ok {
				table[strings.ToUpper(k)] = f
			}
		}
		if len(table) > 0 {
			return table
		}
	}
	return defaults[cfg.Type]
}

// lookupFactor resolves key in table case-insensitively.
func lookupFactor(table map[string]float64, key string) (string, float64, bool) {
	if key == "" || table == nil {
		return "", 1.0, false
	}
	normalized := strings.ToUpper(key)
	factor, ok := table[normalized]
	if !ok {
		return "", 1.0, false
	}
	return normalized, factor, true
}

func numberField(m map[string]interface{}, key string) float64 {
	if f, ok := m[key].(float64); ok {
		return f
	}
	return 0
}
