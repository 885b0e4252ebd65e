package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/facil-uno/facil-api/internal/application/auth"
	approtulos "github.com/facil-uno/facil-api/internal/application/rotulos"
	"github.com/facil-uno/facil-api/internal/application/usecase"
	"github.com/facil-uno/facil-api/internal/infrastructure/csvx"
	infrapdf "github.com/facil-uno/facil-api/internal/infrastructure/pdf"
	"github.com/facil-uno/facil-api/internal/infrastructure/postgres"
	httpRouter "github.com/facil-uno/facil-api/internal/interfaces/http"
	"github.com/facil-uno/facil-api/pkg/config"
	"github.com/facil-uno/facil-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	perfilRepo := postgres.NewUserProfileRepository(pool)
	actividadRepo := postgres.NewActividadRepository(pool)
	despachoRepo := postgres.NewDespachoRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(perfilRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	perfilUC := usecase.NewPerfilUseCase(perfilRepo)
	adminUC := usecase.NewAdminUseCase(perfilRepo, txRunner, log)
	historialUC := usecase.NewHistorialUseCase(actividadRepo, despachoRepo)

	rotulosUC := approtulos.NewUseCase(
		infrapdf.NewExtractor(),
		infrapdf.NewEstampador(),
		infrapdf.NewGeneradorResumen(),
		csvx.NewLector(),
		txRunner,
		cfg.Rotulos,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    50 << 20, // uploads de PDF + planilla
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "FACIL.UNO API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		PerfilUC:    perfilUC,
		AdminUC:     adminUC,
		HistorialUC: historialUC,
		RotulosUC:   rotulosUC,
		Perfiles:    perfilRepo,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
