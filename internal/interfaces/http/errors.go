package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/supplychain-pro/internal/application/dto"
	"github.com/tu-usuario/supplychain-pro/internal/domain"
)

// respondError mapea la taxonomía de errores de dominio a HTTP:
// entrada inválida → 400, no encontrado → 404, invariantes → 409, resto → 500.
// El mensaje envuelto (p. ej. la suma calculada de un mapa inválido) viaja al
// cliente tal cual.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrSiteNotFound),
		errors.Is(err, domain.ErrRuleNotFound),
		errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidMap):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_MAP", Message: err.Error()})
	case errors.Is(err, domain.ErrRuleOverlap):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "RULE_OVERLAP", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
