package wallet

import "time"

const DefaultTimeout = 30 * time.Second

// TransactionLimits bound wallet movements per role.
type TransactionLimits struct {
	MinTransactionAmount  float64
	MaxTransactionAmount  float64
	DailyTransactionLimit float64
}

// Config tunes the wallet service.
type Config struct {
	DefaultCurrency   string
	Limits            map[string]TransactionLimits
	ProcessingTimeout time.Duration
}
