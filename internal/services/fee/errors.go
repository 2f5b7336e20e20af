package fee

import "errors"

var (
	ErrInvalidAmount   = errors.New("amount must not be negative")
	ErrConfigNotFound  = errors.New("no fee configuration found")
	ErrInactiveConfig  = errors.New("fee configuration is not active")
	ErrUnknownFeeMode  = errors.New("unknown fee calculation mode")
	ErrDuplicateRecord = errors.New("fee already recorded for this transaction")
)
