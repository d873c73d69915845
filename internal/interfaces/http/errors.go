package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/pkg/logger"
)

type errorMapping struct {
	target error
	status int
	code   string
}

// El orden importa solo si un error envolviera a dos sentinels; hoy ninguno lo hace.
var errorTable = []errorMapping{
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrProtectedField, fiber.StatusUnauthorized, "PROTECTED_FIELD"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrInvalidCredentials, fiber.StatusForbidden, "INVALID_CREDENTIALS"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrAccountNotFound, fiber.StatusNotFound, "ACCOUNT_NOT_FOUND"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS"},
	{domain.ErrTaxIDAlreadyExists, fiber.StatusConflict, "CNPJ_EXISTS"},
	{domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
	{domain.ErrInUse, fiber.StatusConflict, "IN_USE"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrInvalidID, fiber.StatusBadRequest, "INVALID_ID"},
	{domain.ErrOwnershipTamper, fiber.StatusBadRequest, "OWNERSHIP_TAMPER"},
	{domain.ErrAlreadyDeactivated, fiber.StatusBadRequest, "ALREADY_DEACTIVATED"},
}

// writeError traduce un error de dominio a status + ErrorResponse. Los errores no reconocidos se
// devuelven a Fiber para que ErrorHandler los registre y responda 500.
func writeError(c *fiber.Ctx, err error) error {
	for _, m := range errorTable {
		if errors.Is(err, m.target) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: err.Error()})
		}
	}
	return err
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// ErrorHandler responde los errores que llegan a Fiber sin mapear. Los *fiber.Error conservan su
// status; el resto es 500 con mensaje genérico y la causa en el log.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: "HTTP_ERROR", Message: fe.Message})
		}
		log.Request(requestID(c), GetIdentity(c).AccountID).Error().Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("error interno")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"})
	}
}
