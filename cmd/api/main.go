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
	"github.com/jhoicas/Provisor-api/internal/application/auth"
	"github.com/jhoicas/Provisor-api/internal/application/limits"
	"github.com/jhoicas/Provisor-api/internal/application/provisioning"
	"github.com/jhoicas/Provisor-api/internal/application/usecase"
	"github.com/jhoicas/Provisor-api/internal/infrastructure/cache"
	"github.com/jhoicas/Provisor-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Provisor-api/internal/infrastructure/siteconfig"
	httpRouter "github.com/jhoicas/Provisor-api/internal/interfaces/http"
	"github.com/jhoicas/Provisor-api/pkg/config"
	"github.com/jhoicas/Provisor-api/pkg/logger"
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
		Msg("iniciando servicio de aprovisionamiento")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.RunMigrations(ctx, pool, log.Zerolog()); err != nil {
			log.Fatal().Err(err).Msg("migraciones del esquema")
		}
	}

	siteCache, err := cache.New(cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, log.Zerolog())
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a Redis")
	}
	defer func() { _ = siteCache.Close() }()

	site := siteconfig.New(cfg.Site.ConfigPath)

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	warehouseTypeRepo := postgres.NewWarehouseTypeRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	limitsStore := limits.NewStore(siteCache, site, log.Zerolog())
	enforcer := limits.NewEnforcer(limitsStore, userRepo, customerRepo, supplierRepo, companyRepo, invoiceRepo)

	setupCompanySvc := provisioning.NewSetupCompanyService(
		txRunner, companyRepo, settingsRepo, enforcer, siteCache, site,
		provisioning.Defaults{
			Language: cfg.Provision.Language,
			TimeZone: cfg.Provision.TimeZone,
		},
		log.Zerolog(),
	)
	createUserSvc := provisioning.NewCreateUserService(txRunner, userRepo, enforcer, log.Zerolog())
	statusSvc := provisioning.NewStatusService(site, companyRepo, settingsRepo, log.Zerolog())

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	userUC := usecase.NewUserUseCase(userRepo, enforcer)
	companyUC := usecase.NewCompanyUseCase(companyRepo, enforcer)
	customerUC := usecase.NewCustomerUseCase(customerRepo, enforcer)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo, enforcer)
	invoiceUC := usecase.NewInvoiceUseCase(invoiceRepo, customerRepo, enforcer)
	warehouseTypeUC := usecase.NewWarehouseTypeUseCase(warehouseTypeRepo)

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
		Title:    "Provisor API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		SetupCompany:    setupCompanySvc,
		CreateUser:      createUserSvc,
		ProvisionStatus: statusSvc,
		LimitsStore:     limitsStore,
		AuthUC:          authUC,
		UserUC:          userUC,
		CompanyUC:       companyUC,
		CustomerUC:      customerUC,
		SupplierUC:      supplierUC,
		InvoiceUC:       invoiceUC,
		WarehouseTypeUC: warehouseTypeUC,
		JWTSecret:       cfg.JWT.Secret,
		ProvisionKey:    cfg.Provision.APIKey,
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

	log.Info().Msg("servicio detenido")
}
