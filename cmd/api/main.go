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
	"github.com/jhortiz/bodega-scan-api/internal/application/auth"
	"github.com/jhortiz/bodega-scan-api/internal/application/binding"
	"github.com/jhortiz/bodega-scan-api/internal/application/labels"
	"github.com/jhortiz/bodega-scan-api/internal/application/scan"
	"github.com/jhortiz/bodega-scan-api/internal/application/slots"
	"github.com/jhortiz/bodega-scan-api/internal/infrastructure/notify"
	infrapdf "github.com/jhortiz/bodega-scan-api/internal/infrastructure/pdf"
	"github.com/jhortiz/bodega-scan-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhortiz/bodega-scan-api/internal/interfaces/http"
	"github.com/jhortiz/bodega-scan-api/pkg/config"
	"github.com/jhortiz/bodega-scan-api/pkg/logger"
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

	slotRepo := postgres.NewSlotRepository(pool)
	containerRepo := postgres.NewContainerRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	operatorRepo := postgres.NewOperatorRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Notificador de movimientos: fire-and-forget tras el commit.
	// Con NOTIFY_WEBHOOK_URL vacío queda deshabilitado.
	var notifier binding.Notifier = binding.NopNotifier{}
	if cfg.Notify.WebhookURL != "" {
		notifier = notify.New(cfg.Notify, log)
	}

	engine := binding.NewEngine(txRunner, containerRepo, itemRepo, notifier)
	scanUC := scan.NewUseCase(engine, slotRepo, containerRepo, itemRepo, movementRepo)
	slotUC := slots.NewUseCase(slotRepo)
	labelsUC := labels.NewUseCase(containerRepo, itemRepo, infrapdf.NewMarotoLabelRenderer())
	authUC := auth.NewUseCase(operatorRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Bodega Scan API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ScanUC:    scanUC,
		SlotUC:    slotUC,
		LabelsUC:  labelsUC,
		AuthUC:    authUC,
		JWTSecret: cfg.JWT.Secret,
		Log:       log,
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
