package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/facil-uno/facil-api/internal/application/dto"
	"github.com/facil-uno/facil-api/internal/application/usecase"
)

// HistorialHandler maneja las consultas del historial propio del usuario.
type HistorialHandler struct {
	uc *usecase.HistorialUseCase
}

// NewHistorialHandler construye el handler de historial.
func NewHistorialHandler(uc *usecase.HistorialUseCase) *HistorialHandler {
	return &HistorialHandler{uc: uc}
}

// Actividades godoc
// @Summary      Historial de actividades del usuario
// @Tags         historial
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query  int  false  "máximo de filas (default 20)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}  dto.ActividadResponse
// @Router       /api/historial/actividades [get]
func (h *HistorialHandler) Actividades(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginación inválida"})
	}
	out, err := h.uc.Actividades(c.Context(), GetUserID(c), page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Despachos godoc
// @Summary      Productos despachados del usuario
// @Tags         historial
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query  int  false  "máximo de filas (default 20)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}  dto.DespachoResponse
// @Router       /api/historial/despachos [get]
func (h *HistorialHandler) Despachos(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginación inválida"})
	}
	out, err := h.uc.Despachos(c.Context(), GetUserID(c), page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Stats godoc
// @Summary      Totales de actividad del usuario
// @Tags         historial
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  entity.UserStats
// @Router       /api/historial/stats [get]
func (h *HistorialHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.Context(), GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
