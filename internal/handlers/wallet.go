package handlers

import (
	"context"
	"fmt"
	"strconv"

	"daswos/internal/models"
	"daswos/internal/services/wallet"
	"daswos/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type WalletHandler struct {
	walletService wallet.Service
	log           logrus.FieldLogger
}

func NewWalletHandler(walletService wallet.Service, log logrus.FieldLogger) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
		log:           log,
	}
}

type setBalanceRequest struct {
	Balance *decimal.Decimal `json:"balance" validate:"required,balance"`
}

type adjustRequest struct {
	Amount    *decimal.Decimal `json:"amount" validate:"required,amount"`
	Reference string           `json:"reference" validate:"max=100"`
}

type transferRequest struct {
	FromUserID  *uint            `json:"fromUserId" validate:"required"`
	ToUserID    *uint            `json:"toUserId" validate:"required"`
	Amount      *decimal.Decimal `json:"amount" validate:"required,amount"`
	Description string           `json:"description" validate:"max=500"`
}

// GetWallet returns the caller's wallet, creating it on first access.
func (h *WalletHandler) GetWallet(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	w, err := h.walletService.GetOrCreateWallet(c.UserContext(), claims.UserID)
	if err != nil {
		return handleError(c, h.log, err)
	}

	return utils.Success(c, fiber.Map{
		"wallet": w,
	})
}

func (h *WalletHandler) ListTransactions(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	p := utils.GetPagination(c, wallet.DefaultHistoryLimit, wallet.MaxHistoryLimit)
	page, err := h.walletService.ListTransactions(c.UserContext(), claims.UserID, p.Limit, p.Offset)
	if err != nil {
		return handleError(c, h.log, err)
	}

	p.SetTotal(page.Total)
	return utils.Success(c, utils.NewPaginatedResponse(page.Transactions, p))
}

func (h *WalletHandler) GetSystemWallet(c *fiber.Ctx) error {
	w, err := h.walletService.GetSystemWallet(c.UserContext())
	if err != nil {
		return handleError(c, h.log, err)
	}

	return utils.Success(c, fiber.Map{
		"wallet": w,
	})
}

// SetBalance overwrites a wallet balance. The body is validated before the
// service is called.
func (h *WalletHandler) SetBalance(c *fiber.Ctx) error {
	userID, err := userIDParam(c)
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	var req setBalanceRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	w, err := h.walletService.UpdateBalance(c.UserContext(), userID, *req.Balance)
	if err != nil {
		return handleError(c, h.log, err)
	}

	return utils.Success(c, fiber.Map{
		"wallet": w,
	})
}

func (h *WalletHandler) Credit(c *fiber.Ctx) error {
	return h.adjust(c, h.walletService.Credit)
}

func (h *WalletHandler) Debit(c *fiber.Ctx) error {
	return h.adjust(c, h.walletService.Debit)
}

func (h *WalletHandler) adjust(c *fiber.Ctx, op func(ctx context.Context, userID uint, amount decimal.Decimal, reference string) (*models.Wallet, error)) error {
	userID, err := userIDParam(c)
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	var req adjustRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	w, err := op(c.UserContext(), userID, *req.Amount, req.Reference)
	if err != nil {
		return handleError(c, h.log, err)
	}

	return utils.Success(c, fiber.Map{
		"wallet": w,
	})
}

func (h *WalletHandler) Transfer(c *fiber.Ctx) error {
	var req transferRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	result, err := h.walletService.Transfer(c.UserContext(), wallet.TransferRequest{
		FromUserID:  *req.FromUserID,
		ToUserID:    *req.ToUserID,
		Amount:      *req.Amount,
		Description: req.Description,
	})
	if err != nil {
		return handleError(c, h.log, err)
	}

	return utils.Success(c, result)
}

func userIDParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("userId"), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid user id %q", c.Params("userId"))
	}
	return uint(id), nil
}
