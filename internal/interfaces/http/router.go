package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/facil-uno/facil-api/internal/application/auth"
	approtulos "github.com/facil-uno/facil-api/internal/application/rotulos"
	"github.com/facil-uno/facil-api/internal/application/usecase"
	"github.com/facil-uno/facil-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	PerfilUC    *usecase.PerfilUseCase
	AdminUC     *usecase.AdminUseCase
	HistorialUC *usecase.HistorialUseCase
	RotulosUC   *approtulos.UseCase
	Perfiles    repository.UserProfileRepository
	JWTSecret   string
}

// Router registra las rutas de la API. Cada grupo protegido se gatea por la
// sección correspondiente del catálogo; el gate relee el nivel desde la DB.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Perfil del usuario autenticado
	perfilHandler := NewPerfilHandler(deps.PerfilUC)
	protected.Get("/me", perfilHandler.Me)
	protected.Get("/me/trial", perfilHandler.Trial)
	protected.Get("/secciones", perfilHandler.Secciones)

	// Calculadoras: rentabilidad es libre (nivel 0), breakeven requiere Starter
	calc := protected.Group("/calculadoras")
	calcHandler := NewCalculadoraHandler()
	calc.Post("/rentabilidad", RequireSeccion("rentabilidad", deps.Perfiles), calcHandler.Rentabilidad)
	calc.Post("/breakeven-roas", RequireSeccion("breakeven-roas", deps.Perfiles), calcHandler.Breakeven)

	// Rótulos (sección pdf-generator, nivel Pro)
	rot := protected.Group("/rotulos", RequireSeccion("pdf-generator", deps.Perfiles))
	rotulosHandler := NewRotulosHandler(deps.RotulosUC)
	rot.Post("/analizar-pdf", rotulosHandler.AnalizarPDF)
	rot.Post("/analizar-csv", rotulosHandler.AnalizarCSV)
	rot.Post("/generar", rotulosHandler.Generar)

	// Historial (sección historial, nivel Basic)
	hist := protected.Group("/historial", RequireSeccion("historial", deps.Perfiles))
	historialHandler := NewHistorialHandler(deps.HistorialUC)
	hist.Get("/actividades", historialHandler.Actividades)
	hist.Get("/despachos", historialHandler.Despachos)
	hist.Get("/stats", historialHandler.Stats)

	// Admin (solo nivel Dios exacto)
	admin := protected.Group("/admin", RequireDios(deps.Perfiles))
	adminHandler := NewAdminHandler(deps.AdminUC, deps.HistorialUC)
	admin.Get("/usuarios", adminHandler.List)
	admin.Post("/usuarios", adminHandler.Create)
	admin.Patch("/usuarios/:id", adminHandler.Update)
	admin.Delete("/usuarios/:id", adminHandler.Delete)
	admin.Post("/usuarios/:id/extender-trial", adminHandler.ExtenderTrial)
	admin.Get("/stats", adminHandler.Stats)
	admin.Get("/actividad", adminHandler.StatsActividad)
	admin.Post("/expirar-vencidos", adminHandler.ExpirarVencidos)
}
