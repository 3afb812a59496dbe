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
	"github.com/jhoicas/Cotizador-api/internal/application/quotation"
	"github.com/jhoicas/Cotizador-api/internal/application/storage"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
	"github.com/jhoicas/Cotizador-api/internal/infrastructure/gdrive"
	"github.com/jhoicas/Cotizador-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Cotizador-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Cotizador-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/Cotizador-api/internal/infrastructure/redis"
	"github.com/jhoicas/Cotizador-api/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/Cotizador-api/internal/interfaces/http"
	"github.com/jhoicas/Cotizador-api/pkg/config"
	"github.com/jhoicas/Cotizador-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Borradores: Redis si está configurado, si no memoria del proceso.
	var draftRepo repository.DraftRepository
	if cfg.Redis.Addr != "" {
		client, err := infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer client.Close()
		draftRepo = infraredis.NewDraftRepository(client, cfg.Redis.DraftTTL)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("borradores en Redis")
	} else {
		draftRepo = memory.NewDraftRepository(cfg.Redis.DraftTTL)
		log.Warn().Msg("REDIS_ADDR vacío: borradores en memoria")
	}

	// Listado de cotizaciones: PostgreSQL o datos de ejemplo.
	var quotationRepo repository.QuotationRepository
	if cfg.DB.Enabled() {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("esquema de cotizaciones")
		}
		quotationRepo = postgres.NewQuotationRepository(pool)
	} else {
		quotationRepo = memory.NewSampleQuotationRepository()
		log.Warn().Msg("sin base de datos: listado con cotizaciones de ejemplo")
	}

	header, err := infrapdf.LoadLetterhead(cfg.Letterhead.HeaderPath)
	if err != nil {
		log.Fatal().Err(err).Msg("membrete superior")
	}
	footer, err := infrapdf.LoadLetterhead(cfg.Letterhead.FooterPath)
	if err != nil {
		log.Fatal().Err(err).Msg("membrete inferior")
	}
	renderer := infrapdf.NewMarotoRenderer(infrapdf.Options{
		Sender: entity.Sender{
			Name:         cfg.Company.Name,
			AddressLine1: cfg.Company.AddressLine1,
			AddressLine2: cfg.Company.AddressLine2,
			Phone:        cfg.Company.Phone,
			Email:        cfg.Company.Email,
		},
		Header: header,
		Footer: footer,
	})

	draftUC := quotation.NewDraftUseCase(draftRepo)
	exportUC := quotation.NewExportUseCase(draftUC, renderer, xlsx.NewExcelExporter(), quotationRepo, log)
	listUC := quotation.NewListUseCase(quotationRepo)

	driveSession := gdrive.NewSession(cfg.Drive)
	if !driveSession.Ready() {
		log.Warn().Msg("GOOGLE_CLIENT_ID/SECRET vacíos: subida a Drive deshabilitada")
	}
	uploadUC := storage.NewUploadUseCase(driveSession, gdrive.NewFileStore(driveSession), exportUC, cfg.Drive.FolderName, log)
	draftUC.OnDiscard(uploadUC.Forget)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Cotizador API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AppName:  cfg.App.Name,
		DraftUC:  draftUC,
		ExportUC: exportUC,
		ListUC:   listUC,
		UploadUC: uploadUC,
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
