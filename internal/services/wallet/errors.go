package wallet

import "errors"

var (
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrWalletLocked        = errors.New("wallet is locked")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInsufficientBalance = errors.New("insufficient wallet balance")
	ErrDailyLimitExceeded  = errors.New("daily limit exceeded")
	ErrSelfTransfer        = errors.New("cannot transfer to own wallet")
)
