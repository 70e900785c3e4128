package response

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "insuro/internal/errors"
	"insuro/internal/validation"
)

const CodeInternal = "INTERNAL_ERROR"

func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(fiber.Map{
		"message": message,
		"data":    data,
	})
}

func Created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": message,
		"data":    data,
	})
}

func Error(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
		"code":  code,
	})
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, apperrors.CodeValidationFailed, message)
}

func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, "UNAUTHORIZED", message)
}

func Forbidden(c *fiber.Ctx) error {
	return Error(c, fiber.StatusForbidden, "FORBIDDEN", "Insufficient permissions")
}

// StatusFor maps an error kind onto its HTTP status.
func StatusFor(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindValidation:
		return fiber.StatusBadRequest
	case apperrors.KindNotFound:
		return fiber.StatusNotFound
	case apperrors.KindInvalidTransition:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// FromError writes err as an error envelope. Validation failures also list
// the offending fields. Unclassified errors are logged and hidden.
func FromError(c *fiber.Ctx, err error) error {
	var de *apperrors.DomainError
	if !errors.As(err, &de) {
		zap.L().Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
		return Error(c, fiber.StatusInternalServerError, CodeInternal, "Internal server error")
	}

	status := StatusFor(de.Kind)
	if status >= fiber.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("path", c.Path()),
			zap.String("code", de.Code),
			zap.Error(err),
		)
	}

	body := fiber.Map{"error": de.Message, "code": de.Code}
	var fields validation.FieldErrors
	if errors.As(err, &fields) {
		body["fields"] = fields
	}
	return c.Status(status).JSON(body)
}
