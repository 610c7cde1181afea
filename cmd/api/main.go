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
	"github.com/logiandes/ms-inventario/internal/application/importer"
	"github.com/logiandes/ms-inventario/internal/infrastructure/postgres"
	"github.com/logiandes/ms-inventario/internal/infrastructure/security"
	httpRouter "github.com/logiandes/ms-inventario/internal/interfaces/http"
	"github.com/logiandes/ms-inventario/pkg/config"
	"github.com/logiandes/ms-inventario/pkg/logger"
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

	txRunner := postgres.NewTxRunner(pool)

	securityTimeout := time.Duration(cfg.Security.TimeoutSeconds) * time.Second
	userClient := security.NewUserClient(cfg.Security.BaseURL, securityTimeout)
	roleClient := security.NewRoleClient(cfg.Security.BaseURL, securityTimeout)

	importOpts := importer.Options{
		GroupSize:       cfg.Import.GroupSize,
		MaxGroups:       cfg.Import.MaxGroups,
		ManagerRole:     cfg.Import.ManagerRole,
		DefaultPassword: cfg.Import.DefaultPassword,
	}
	geoUC := importer.NewGeoUseCase(txRunner, log)
	storeUC := importer.NewStoreImportUseCase(txRunner, userClient, roleClient, importOpts, log)
	productUC := importer.NewProductImportUseCase(txRunner, importOpts, log)

	app := fiber.New(fiber.Config{
		AppName: cfg.App.Name,
		// Los CSV de productos pueden pesar varios MB.
		BodyLimit:    32 * 1024 * 1024,
		ReadTimeout:  time.Second * 60,
		WriteTimeout: time.Second * 60,
		IdleTimeout:  time.Second * 120,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "ms-inventario API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		GeoUC:     geoUC,
		StoreUC:   storeUC,
		ProductUC: productUC,
		JWTSecret: cfg.JWT.Secret,
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
