package handlers

import (
	"context"
	"errors"

	apperrors "daswos/internal/errors"
	"daswos/internal/utils"
	"daswos/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

var statusByCode = map[string]int{
	apperrors.CodeWalletNotFound:        fiber.StatusNotFound,
	apperrors.CodeInvalidArgument:       fiber.StatusBadRequest,
	apperrors.CodeInvalidSignature:      fiber.StatusBadRequest,
	apperrors.CodeStoreUnavailable:      fiber.StatusServiceUnavailable,
	apperrors.CodeInsufficientBalance:   fiber.StatusConflict,
	apperrors.CodeDuplicateReference:    fiber.StatusConflict,
	apperrors.CodePaymentNotCompleted:   fiber.StatusPaymentRequired,
	apperrors.CodePaymentProviderFailed: fiber.StatusBadGateway,
}

// handleError writes err as a JSON error response. Only the domain message
// reaches the client; causes are logged.
func handleError(c *fiber.Ctx, log logrus.FieldLogger, err error) error {
	var domainErr *apperrors.DomainError
	if errors.As(err, &domainErr) {
		status, ok := statusByCode[domainErr.Code]
		if !ok {
			status = fiber.StatusInternalServerError
		}
		if status >= fiber.StatusInternalServerError {
			log.WithError(err).WithField("path", c.Path()).Error("Request failed")
		}
		message := domainErr.Message
		if domainErr.Code == apperrors.CodeWalletNotFound {
			message = "wallet not provisioned"
		}
		return utils.Error(c, status, domainErr.Code, message)
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		log.WithError(err).WithField("path", c.Path()).Warn("Request aborted")
		return utils.Error(c, fiber.StatusServiceUnavailable, apperrors.CodeStoreUnavailable, "request aborted")
	}

	log.WithError(err).WithField("path", c.Path()).Error("Unexpected error")
	return utils.InternalError(c, "internal server error")
}

// parseBody decodes the JSON body into dst and runs its validate tags.
// It writes the 400 response itself and returns ok=false when the body is
// rejected.
func parseBody(c *fiber.Ctx, dst interface{}) (bool, error) {
	if err := c.BodyParser(dst); err != nil {
		return false, utils.BadRequest(c, "invalid request format")
	}

	v := validation.New()
	v.Struct(dst)
	if !v.Valid() {
		return false, utils.ValidationFailed(c, v.Errors)
	}
	return true, nil
}
