package serverutils

import (
	"errors"

	"photostudio-be/internal/pkg/apperror"
	"photostudio-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler renders any error that escapes a handler as a BaseResponse.
func ErrorHandler(ctx *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return ctx.Status(fe.Code).JSON(ErrorResponse(fe.Code, fe.Message))
	}

	status := apperror.Status(err)
	message := err.Error()
	if status == fiber.StatusInternalServerError {
		message = "Internal server error"
	}
	return ctx.Status(status).JSON(ErrorResponse(status, message, apperror.Details(err)...))
}

// ErrorHandlerMiddleware logs unexpected failures before ErrorHandler renders them.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fe *fiber.Error
		if !errors.As(err, &fe) && apperror.Status(err) == fiber.StatusInternalServerError {
			log.Error("HTTP", "Unhandled error", map[string]interface{}{
				"method": ctx.Method(),
				"path":   ctx.Path(),
				"error":  err,
			})
		}
		return ErrorHandler(ctx, err)
	}
}
