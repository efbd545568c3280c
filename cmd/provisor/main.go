// provisor ejecuta operaciones de aprovisionamiento contra el sitio del
// tenant desde la línea de comandos, para cuando el controlador SaaS entra
// por SSH en lugar de llamar a la API HTTP.
//
// Uso: go run ./cmd/provisor <setup-company|create-user> <config_b64|->
// Con "-" el config_b64 se lee de stdin. La configuración del sitio (DB,
// Redis, site_config.json) se toma del entorno, igual que en el servidor.
//
// Escribe en stdout únicamente el resultado {"success": ..., "message": ...}
// en JSON; los logs van a stderr. Sale con código 1 si la operación falla.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jhoicas/Provisor-api/internal/application/dto"
	"github.com/jhoicas/Provisor-api/internal/application/limits"
	"github.com/jhoicas/Provisor-api/internal/application/provisioning"
	"github.com/jhoicas/Provisor-api/internal/infrastructure/cache"
	"github.com/jhoicas/Provisor-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Provisor-api/internal/infrastructure/siteconfig"
	"github.com/jhoicas/Provisor-api/pkg/config"
	"github.com/jhoicas/Provisor-api/pkg/logger"
)

func main() {
	if len(os.Args) < 3 {
		usage()
		os.Exit(1)
	}
	operation := os.Args[1]
	configB64 := os.Args[2]
	if configB64 == "-" {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Leer stdin: %v\n", err)
			os.Exit(1)
		}
		configB64 = strings.TrimSpace(string(raw))
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	// stdout queda reservado para el resultado JSON.
	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
		Out:   os.Stderr,
	})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.RunMigrations(ctx, pool, log.Zerolog()); err != nil {
			fmt.Fprintf(os.Stderr, "Migraciones del esquema: %v\n", err)
			os.Exit(1)
		}
	}

	siteCache, err := cache.New(cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, log.Zerolog())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a Redis: %v\n", err)
		os.Exit(1)
	}
	defer siteCache.Close()

	site := siteconfig.New(cfg.Site.ConfigPath)

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	limitsStore := limits.NewStore(siteCache, site, log.Zerolog())
	enforcer := limits.NewEnforcer(limitsStore, userRepo, customerRepo, supplierRepo, companyRepo, invoiceRepo)

	var result dto.ProvisionResult
	switch operation {
	case "setup-company":
		svc := provisioning.NewSetupCompanyService(
			txRunner, companyRepo, settingsRepo, enforcer, siteCache, site,
			provisioning.Defaults{
				Language: cfg.Provision.Language,
				TimeZone: cfg.Provision.TimeZone,
			},
			log.Zerolog(),
		)
		result = svc.ExecuteEncoded(ctx, configB64)
	case "create-user":
		svc := provisioning.NewCreateUserService(txRunner, userRepo, enforcer, log.Zerolog())
		result = svc.ExecuteEncoded(ctx, configB64)
	default:
		fmt.Fprintf(os.Stderr, "Operación desconocida: %s\n\n", operation)
		usage()
		os.Exit(1)
	}

	if err := json.NewEncoder(os.Stdout).Encode(result); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir resultado: %v\n", err)
		os.Exit(1)
	}
	if !result.Success {
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Uso: provisor <setup-company|create-user> <config_b64|->")
	fmt.Fprintln(os.Stderr, "  setup-company  crea la empresa inicial del sitio y marca el setup como completo")
	fmt.Fprintln(os.Stderr, "  create-user    crea o actualiza un usuario del sitio con sus roles")
	fmt.Fprintln(os.Stderr, "  con \"-\" como segundo argumento el config_b64 se lee de stdin")
}
