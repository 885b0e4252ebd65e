package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/facil-uno/facil-api/internal/application/dto"
	"github.com/facil-uno/facil-api/internal/application/usecase"
	"github.com/facil-uno/facil-api/internal/domain"
)

// AdminHandler maneja el panel de administración. Todas las rutas van detrás
// de RequireDios.
type AdminHandler struct {
	uc        *usecase.AdminUseCase
	historial *usecase.HistorialUseCase
}

// NewAdminHandler construye el handler de administración.
func NewAdminHandler(uc *usecase.AdminUseCase, historial *usecase.HistorialUseCase) *AdminHandler {
	return &AdminHandler{uc: uc, historial: historial}
}

// List godoc
// @Summary      Listar usuarios, con búsqueda opcional
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        q  query  string  false  "filtro por username o email (sin acentos ni mayúsculas)"
// @Success      200  {array}  dto.ProfileResponse
// @Router       /api/admin/usuarios [get]
func (h *AdminHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), c.Query("q"))
	if err != nil {
		return adminError(c, err)
	}
	return c.JSON(out)
}

// Stats godoc
// @Summary      Estadísticas de usuarios
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.UserStatsResponse
// @Router       /api/admin/stats [get]
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.Context())
	if err != nil {
		return adminError(c, err)
	}
	return c.JSON(out)
}

// StatsActividad godoc
// @Summary      Totales de actividad de todos los usuarios
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  entity.UserStats
// @Router       /api/admin/actividad [get]
func (h *AdminHandler) StatsActividad(c *fiber.Ctx) error {
	out, err := h.historial.StatsTodos(c.Context())
	if err != nil {
		return adminError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear un usuario con nivel arbitrario
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateUserRequest  true  "datos del usuario"
// @Success      201  {object}  dto.ProfileResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/admin/usuarios [post]
func (h *AdminHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Email == "" || in.Password == "" || in.Username == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email, password y username son requeridos"})
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return adminError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualización parcial de un usuario
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                 true  "ID del usuario"
// @Param        body  body  dto.UpdateUserRequest  true  "campos a modificar"
// @Success      200  {object}  dto.ProfileResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/usuarios/{id} [patch]
func (h *AdminHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return adminError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar un usuario y su historial
// @Tags         admin
// @Security     BearerAuth
// @Param        id  path  string  true  "ID del usuario"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/usuarios/{id} [delete]
func (h *AdminHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return adminError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ExtenderTrial godoc
// @Summary      Extender el trial de un usuario
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                    true  "ID del usuario"
// @Param        body  body  dto.ExtenderTrialRequest  true  "días a sumar"
// @Success      200  {object}  dto.ProfileResponse
// @Router       /api/admin/usuarios/{id}/extender-trial [post]
func (h *AdminHandler) ExtenderTrial(c *fiber.Ctx) error {
	var in dto.ExtenderTrialRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.ExtenderTrial(c.Context(), c.Params("id"), in.Dias)
	if err != nil {
		return adminError(c, err)
	}
	return c.JSON(out)
}

// ExpirarVencidos godoc
// @Summary      Degradar a nivel 0 los trials vencidos sin pago
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.ExpirarResponse
// @Router       /api/admin/expirar-vencidos [post]
func (h *AdminHandler) ExpirarVencidos(c *fiber.Ctx) error {
	out, err := h.uc.ExpirarVencidos(c.Context())
	if err != nil {
		return adminError(c, err)
	}
	return c.JSON(out)
}

func adminError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el usuario no existe"})
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: "el email ya está registrado"})
	case errors.Is(err, domain.ErrNivelInvalido), errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
