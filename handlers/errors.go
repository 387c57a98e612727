package handlers

import (
	"errors"
	"strconv"

	"talent-hub/services"
	"talent-hub/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorHandler turns errors returned by handlers into the {errors: ...} envelope.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var (
			re *services.ResponseError
			ve *validation.Error
			fe *fiber.Error
		)
		switch {
		case errors.As(err, &re):
			return c.Status(re.Status).JSON(fiber.Map{"errors": re.Message})
		case errors.As(err, &ve):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": ve.Issues})
		case errors.As(err, &fe):
			return c.Status(fe.Code).JSON(fiber.Map{"errors": fe.Message})
		}

		log.Error("unhandled error",
			zap.Error(err),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"errors": "Internal server error"})
	}
}

func data(c *fiber.Ctx, status int, v interface{}) error {
	return c.Status(status).JSON(fiber.Map{"data": v})
}

func message(c *fiber.Ctx, msg string) error {
	return c.JSON(fiber.Map{"message": msg})
}

// idParam reads a positive numeric path parameter.
func idParam(c *fiber.Ctx, name string) (uint, error) {
	return parseID(name, c.Params(name))
}

// idQuery reads a required positive numeric query parameter.
func idQuery(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, &validation.Error{Issues: []validation.Issue{{Field: name, Rule: "required", Message: "is required"}}}
	}
	return parseID(name, raw)
}

func parseID(name, raw string) (uint, error) {
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		return 0, &validation.Error{Issues: []validation.Issue{{
			Field:   name,
			Rule:    "number",
			Message: "must be a positive integer",
		}}}
	}
	return uint(v), nil
}
