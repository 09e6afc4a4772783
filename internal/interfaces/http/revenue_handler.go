package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/supplychain-pro/internal/application/dto"
	"github.com/tu-usuario/supplychain-pro/internal/application/usecase"
)

// RevenueHandler maneja las peticiones HTTP del motor de ingresos (protegido).
type RevenueHandler struct {
	uc *usecase.RevenueUseCase
}

// NewRevenueHandler construye el handler.
func NewRevenueHandler(uc *usecase.RevenueUseCase) *RevenueHandler {
	return &RevenueHandler{uc: uc}
}

// Simulate godoc
// @Summary      Simular cálculo de ingresos y reparto
// @Tags         revenue
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SimulateRevenueRequest  true  "Producto, cantidad, sede y overrides opcionales"
// @Success      200   {object}  dto.SimulateRevenueResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/revenue/simulate [post]
func (h *RevenueHandler) Simulate(c *fiber.Ctx) error {
	var in dto.SimulateRevenueRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Simulate(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Record godoc
// @Summary      Registrar un asiento en el libro de ingresos
// @Tags         revenue
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordTransactionRequest  true  "Cifras unitarias y regla opcional"
// @Success      201   {object}  dto.RecordTransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/revenue/transactions [post]
func (h *RevenueHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Record(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar el libro de ingresos
// @Tags         revenue
// @Security     Bearer
// @Produce      json
// @Param        product_id        query  string  false  "Filtrar por producto"
// @Param        site_id           query  string  false  "Filtrar por sede"
// @Param        transaction_type  query  string  false  "Filtrar por tipo"
// @Param        start_date        query  string  false  "YYYY-MM-DD"
// @Param        end_date          query  string  false  "YYYY-MM-DD"
// @Param        limit             query  int     false  "Límite"  default(20)
// @Param        offset            query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.TransactionListResponse
// @Router       /api/revenue/transactions [get]
func (h *RevenueHandler) List(c *fiber.Ctx) error {
	var in dto.TransactionListRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	out, err := h.uc.List(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Resumen de ingresos por período
// @Tags         revenue
// @Security     Bearer
// @Produce      json
// @Param        bucket      query  string  false  "day|week|month"  default(day)
// @Param        start_date  query  string  false  "YYYY-MM-DD; por defecto primer día del mes"
// @Param        end_date    query  string  false  "YYYY-MM-DD; por defecto hoy"
// @Success      200  {object}  dto.SummaryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/revenue/summary [get]
func (h *RevenueHandler) Summary(c *fiber.Ctx) error {
	var in dto.SummaryRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	out, err := h.uc.Summary(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
