package handlers

import (
	"errors"

	"bazari/internal/services/card"
	"bazari/internal/services/wallet"
	"bazari/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type WalletHandler struct {
	walletService wallet.Service
}

func NewWalletHandler(walletService wallet.Service) *WalletHandler {
	return &WalletHandler{walletService: walletService}
}

func (h *WalletHandler) GetWallet(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c, "invalid claims")
	}

	w, err := h.walletService.GetWallet(c.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, wallet.ErrWalletNotFound) {
			return response.NotFound(c, "Wallet not found")
		}
		return response.ServerError(c, "Failed to get wallet")
	}
	return response.Success(c, fiber.Map{"wallet": w})
}

func (h *WalletHandler) TopUp(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c, "invalid claims")
	}

	var input struct {
		Amount float64    `json:"amount"`
		Card   card.Input `json:"card"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if input.Amount <= 0 {
		return response.BadRequest(c, "Amount must be greater than 0")
	}

	txn, err := h.walletService.TopUp(c.Context(), claims.UserID, input.Card, input.Amount)
	if err != nil {
		if errors.Is(err, wallet.ErrInvalidAmount) {
			return response.BadRequest(c, err.Error())
		}
		return response.ServerError(c, err.Error())
	}

	return response.Success(c, fiber.Map{
		"message":     "Top up successful",
		"transaction": txn,
	})
}

func (h *WalletHandler) Withdraw(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c, "invalid claims")
	}

	var input struct {
		Amount float64 `json:"amount"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if input.Amount <= 0 {
		return response.BadRequest(c, "Amount must be greater than 0")
	}

	txn, err := h.walletService.Withdraw(c.Context(), claims.UserID, input.Amount, claims.UserType)
	if err != nil {
		switch {
		case errors.Is(err, wallet.ErrInsufficientBalance),
			errors.Is(err, wallet.ErrInvalidAmount),
			errors.Is(err, wallet.ErrDailyLimitExceeded):
			return response.BadRequest(c, err.Error())
		default:
			return response.ServerError(c, err.Error())
		}
	}

	return response.Success(c, fiber.Map{
		"message":        "Withdrawal successful",
		"amount":         txn.Amount,
		"fee":            txn.Fee,
		"total_deducted": txn.Amount + txn.Fee,
	})
}

func (h *WalletHandler) Transfer(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c, "invalid claims")
	}

	var input struct {
		ReceiverID uint    `json:"receiverId"`
		Amount     float64 `json:"amount"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if input.Amount <= 0 {
		return response.BadRequest(c, "Amount must be greater than 0")
	}
	if input.ReceiverID == 0 {
		return response.BadRequest(c, "Receiver is required")
	}

	txn, err := h.walletService.Transfer(c.Context(), claims.UserID, input.ReceiverID, input.Amount, claims.UserType)
	if err != nil {
		switch {
		case errors.Is(err, wallet.ErrInsufficientBalance),
			errors.Is(err, wallet.ErrInvalidAmount),
			errors.Is(err, wallet.ErrSelfTransfer),
			errors.Is(err, wallet.ErrDailyLimitExceeded):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, wallet.ErrWalletNotFound):
			return response.NotFound(c, "Receiver wallet not found")
		default:
			return response.ServerError(c, err.Error())
		}
	}

	return response.Success(c, fiber.Map{
		"message":     "Transfer successful",
		"transaction": txn,
	})
}

func (h *WalletHandler) GetTransactions(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c, "invalid claims")
	}

	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	txns, err := h.walletService.GetTransactionHistory(c.Context(), claims.UserID, limit, offset)
	if err != nil {
		return response.ServerError(c, "Failed to get transactions")
	}
	return response.Success(c, fiber.Map{"transactions": txns})
}
