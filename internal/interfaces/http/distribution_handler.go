package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/supplychain-pro/internal/application/dto"
	"github.com/tu-usuario/supplychain-pro/internal/application/usecase"
)

// DistributionHandler maneja las peticiones HTTP de reglas de distribución
// (protegido; las mutaciones requieren rol admin).
type DistributionHandler struct {
	uc *usecase.DistributionRuleUseCase
}

// NewDistributionHandler construye el handler.
func NewDistributionHandler(uc *usecase.DistributionRuleUseCase) *DistributionHandler {
	return &DistributionHandler{uc: uc}
}

// Create godoc
// @Summary      Crear regla de distribución
// @Tags         distribution
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRuleRequest  true  "Regla (fracciones 0–1, deben sumar 1.0)"
// @Success      201   {object}  dto.RuleDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/distribution/rules [post]
func (h *DistributionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRuleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar regla de distribución
// @Tags         distribution
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la regla"
// @Param        body  body  dto.UpdateRuleRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.RuleDTO
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/distribution/rules/{id} [put]
func (h *DistributionHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.UpdateRuleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), GetUserID(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Deactivate godoc
// @Summary      Desactivar regla de distribución (baja lógica)
// @Tags         distribution
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la regla"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/distribution/rules/{id} [delete]
func (h *DistributionHandler) Deactivate(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.Deactivate(c.Context(), GetUserID(c), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetByID godoc
// @Summary      Obtener regla por ID
// @Tags         distribution
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la regla"
// @Success      200  {object}  dto.RuleDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/distribution/rules/{id} [get]
func (h *DistributionHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar reglas de distribución
// @Tags         distribution
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Param        site_type   query  string  false  "Filtrar por tipo de sede"
// @Param        active      query  bool    false  "Solo activas"
// @Param        limit       query  int     false  "Límite"  default(20)
// @Param        offset      query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.RuleListResponse
// @Router       /api/distribution/rules [get]
func (h *DistributionHandler) List(c *fiber.Ctx) error {
	var in dto.RuleListRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	out, err := h.uc.List(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ResolveActive godoc
// @Summary      Resolver la regla aplicable por especificidad
// @Tags         distribution
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "Producto"
// @Param        site_type   query  string  false  "Tipo de sede"
// @Param        on_date     query  string  false  "YYYY-MM-DD; por defecto hoy"
// @Success      200  {object}  dto.ResolveActiveResponse
// @Router       /api/distribution/active [get]
func (h *DistributionHandler) ResolveActive(c *fiber.Ctx) error {
	var in dto.ResolveActiveRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	out, err := h.uc.ResolveActive(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Simulate godoc
// @Summary      Simular un reparto ad-hoc (what-if)
// @Tags         distribution
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SimulateSplitRequest  true  "Margen bruto y mapa de fracciones"
// @Success      200   {object}  dto.SimulateSplitResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/distribution/simulate [post]
func (h *DistributionHandler) Simulate(c *fiber.Ctx) error {
	var in dto.SimulateSplitRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.SimulateSplit(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
