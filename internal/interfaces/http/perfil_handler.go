package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/facil-uno/facil-api/internal/application/dto"
	"github.com/facil-uno/facil-api/internal/application/usecase"
	"github.com/facil-uno/facil-api/internal/domain"
)

// PerfilHandler maneja las consultas del usuario autenticado.
type PerfilHandler struct {
	uc *usecase.PerfilUseCase
}

// NewPerfilHandler construye el handler de perfil.
func NewPerfilHandler(uc *usecase.PerfilUseCase) *PerfilHandler {
	return &PerfilHandler{uc: uc}
}

// Me godoc
// @Summary      Perfil del usuario autenticado, con trial y secciones
// @Tags         perfil
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.MeResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/me [get]
func (h *PerfilHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.Me(c.Context(), GetUserID(c))
	if err != nil {
		return perfilError(c, err)
	}
	return c.JSON(out)
}

// Trial godoc
// @Summary      Estado del período de prueba
// @Tags         perfil
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.TrialInfoResponse
// @Router       /api/me/trial [get]
func (h *PerfilHandler) Trial(c *fiber.Ctx) error {
	out, err := h.uc.TrialInfo(c.Context(), GetUserID(c))
	if err != nil {
		return perfilError(c, err)
	}
	return c.JSON(out)
}

// Secciones godoc
// @Summary      Catálogo de secciones con el acceso del usuario
// @Tags         perfil
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.SeccionResponse
// @Router       /api/secciones [get]
func (h *PerfilHandler) Secciones(c *fiber.Ctx) error {
	out, err := h.uc.Secciones(c.Context(), GetUserID(c))
	if err != nil {
		return perfilError(c, err)
	}
	return c.JSON(out)
}

func perfilError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrUserNotFound) {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "el usuario ya no existe"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
