package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/facil-uno/facil-api/internal/application/dto"
	"github.com/facil-uno/facil-api/internal/domain/entity"
	"github.com/facil-uno/facil-api/internal/domain/nivel"
)

// perfilLector es el contrato mínimo que necesitan los gates de nivel: releer
// el perfil actual del usuario. Lo implementa el repositorio de perfiles; usar
// la interfaz chica evita acoplar el middleware a toda la persistencia.
type perfilLector interface {
	GetByID(ctx context.Context, id string) (*entity.UserProfile, error)
}

// RequireSeccion devuelve un middleware Fiber que verifica el acceso del
// usuario a una sección del catálogo. Debe usarse DESPUÉS de AuthMiddleware.
//
// El nivel se relee de la base de datos en cada request: un cambio de nivel
// hecho por un admin aplica de inmediato, sin esperar a que venza el token.
//
// Comportamiento:
//   - 403 Forbidden → nivel insuficiente (o plan no pagado en secciones pagas).
//   - 503 Service Unavailable → fallo de infraestructura al leer el perfil.
//   - 401 si no hay user_id en el contexto o el perfil ya no existe.
func RequireSeccion(clave string, perfiles perfilLector) fiber.Handler {
	seccion, ok := nivel.BuscarSeccion(clave)
	if !ok {
		// Clave desconocida en el wiring: negar todo antes que abrir de más.
		return func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "SECCION_DESCONOCIDA",
				Message: "la sección '" + clave + "' no existe",
			})
		}
	}
	return func(c *fiber.Ctx) error {
		p, err := leerPerfil(c, perfiles)
		if p == nil {
			return err
		}
		acceso := nivel.TieneAccesoPerfil(p, seccion)
		if seccion.Clave == "admin" {
			acceso = nivel.EsAdmin(p.Nivel)
		}
		if !acceso {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "NIVEL_INSUFICIENTE",
				Message: "tu nivel no tiene acceso a la sección '" + seccion.Clave + "'",
			})
		}
		return c.Next()
	}
}

// RequireDios gate del back-office: solo el nivel Dios exacto pasa. Niveles
// superiores hipotéticos no heredan admin (igualdad, no orden).
func RequireDios(perfiles perfilLector) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := leerPerfil(c, perfiles)
		if p == nil {
			return err
		}
		if !nivel.EsAdmin(p.Nivel) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "ADMIN_ONLY",
				Message: "solo administradores",
			})
		}
		return c.Next()
	}
}

// leerPerfil relee el perfil del usuario autenticado. Si el perfil es nil, la
// respuesta HTTP ya quedó escrita y el caller debe devolver el error tal cual.
func leerPerfil(c *fiber.Ctx, perfiles perfilLector) (*entity.UserProfile, error) {
	userID := GetUserID(c)
	if userID == "" {
		return nil, c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Code:    "UNAUTHORIZED",
			Message: "user_id no encontrado en el token",
		})
	}
	p, err := perfiles.GetByID(c.Context(), userID)
	if err != nil {
		return nil, c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Code:    "NIVEL_CHECK_FAILED",
			Message: "no se pudo verificar el nivel, intente más tarde",
		})
	}
	if p == nil {
		return nil, c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Code:    "UNAUTHORIZED",
			Message: "el usuario ya no existe",
		})
	}
	return p, nil
}
