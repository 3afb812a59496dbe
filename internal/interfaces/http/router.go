package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cotizador-api/internal/application/quotation"
	"github.com/jhoicas/Cotizador-api/internal/application/storage"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName  string
	DraftUC  *quotation.DraftUseCase
	ExportUC *quotation.ExportUseCase
	ListUC   *quotation.ListUseCase
	UploadUC *storage.UploadUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	api := app.Group("/api")

	// Listado de cotizaciones
	quotationHandler := NewQuotationHandler(deps.ListUC)
	api.Get("/quotations", quotationHandler.List)

	// Borradores (cotización / factura proforma)
	drafts := api.Group("/drafts")
	draftHandler := NewDraftHandler(deps.DraftUC, deps.ExportUC)
	drafts.Post("/", draftHandler.Create)
	drafts.Get("/:id", draftHandler.Get)
	drafts.Patch("/:id", draftHandler.UpdateHeader)
	drafts.Delete("/:id", draftHandler.Discard)
	drafts.Post("/:id/convert", draftHandler.Convert)
	drafts.Post("/:id/rows", draftHandler.AddRow)
	drafts.Patch("/:id/rows/:rowId", draftHandler.UpdateCell)
	drafts.Delete("/:id/rows/:rowId", draftHandler.RemoveRow)
	drafts.Post("/:id/columns", draftHandler.AddColumn)
	drafts.Delete("/:id/columns/:columnId", draftHandler.RemoveColumn)
	drafts.Get("/:id/pdf", draftHandler.PDF)
	drafts.Get("/:id/xlsx", draftHandler.XLSX)

	// Google Drive
	driveHandler := NewDriveHandler(deps.UploadUC)
	drafts.Post("/:id/drive", driveHandler.Upload)
	drafts.Get("/:id/drive", driveHandler.Status)
	drive := api.Group("/drive")
	drive.Get("/session", driveHandler.Session)
	drive.Get("/login", driveHandler.Login)
	drive.Get("/callback", driveHandler.Callback)
	drive.Post("/logout", driveHandler.Logout)
}
