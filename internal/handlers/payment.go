package handlers

import (
	"daswos/internal/services/payment"
	"daswos/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const stripeSignatureHeader = "Stripe-Signature"

type PaymentHandler struct {
	paymentService payment.Service
	log            logrus.FieldLogger
}

func NewPaymentHandler(paymentService payment.Service, log logrus.FieldLogger) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		log:            log,
	}
}

type purchaseRequest struct {
	Coins *decimal.Decimal `json:"coins" validate:"required,coins"`
}

// StartPurchase creates a payment intent for the caller and returns its
// client secret.
func (h *PaymentHandler) StartPurchase(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var req purchaseRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	session, err := h.paymentService.StartCoinPurchase(c.UserContext(), claims.UserID, req.Coins.IntPart())
	if err != nil {
		return handleError(c, h.log, err)
	}

	return utils.Created(c, session)
}

func (h *PaymentHandler) ConfirmPurchase(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	result, err := h.paymentService.CompleteCoinPurchase(c.UserContext(), claims.UserID, c.Params("intentId"))
	if err != nil {
		return handleError(c, h.log, err)
	}

	return utils.Success(c, result)
}

// Webhook receives provider events. It is unauthenticated; the signature
// header is the proof of origin.
func (h *PaymentHandler) Webhook(c *fiber.Ctx) error {
	result, err := h.paymentService.HandleWebhook(c.UserContext(), c.Body(), c.Get(stripeSignatureHeader))
	if err != nil {
		return handleError(c, h.log, err)
	}

	return utils.Success(c, fiber.Map{
		"received": true,
		"result":   result,
	})
}
