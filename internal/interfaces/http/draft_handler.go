package http

import (
	"fmt"
	"mime"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cotizador-api/internal/application/dto"
	"github.com/jhoicas/Cotizador-api/internal/application/quotation"
	qdomain "github.com/jhoicas/Cotizador-api/internal/domain/quotation"
)

// DraftHandler edición de borradores y exportaciones.
type DraftHandler struct {
	uc     *quotation.DraftUseCase
	export *quotation.ExportUseCase
}

// NewDraftHandler construye el handler.
func NewDraftHandler(uc *quotation.DraftUseCase, export *quotation.ExportUseCase) *DraftHandler {
	return &DraftHandler{uc: uc, export: export}
}

// Create abre un borrador.
// POST /api/drafts
func (h *DraftHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDraftRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get devuelve el borrador.
// GET /api/drafts/:id
func (h *DraftHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateHeader cambia cabecera, cliente, notas, términos o tasa de GST.
// PATCH /api/drafts/:id
func (h *DraftHandler) UpdateHeader(c *fiber.Ctx) error {
	var in dto.UpdateHeaderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateHeader(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Discard descarta el borrador.
// DELETE /api/drafts/:id
func (h *DraftHandler) Discard(c *fiber.Ctx) error {
	if err := h.uc.Discard(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Convert crea una factura proforma a partir de la cotización.
// POST /api/drafts/:id/convert
func (h *DraftHandler) Convert(c *fiber.Ctx) error {
	out, err := h.uc.Convert(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// AddRow agrega una fila.
// POST /api/drafts/:id/rows
func (h *DraftHandler) AddRow(c *fiber.Ctx) error {
	out, err := h.uc.AddRow(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateCell cambia una celda.
// PATCH /api/drafts/:id/rows/:rowId
func (h *DraftHandler) UpdateCell(c *fiber.Ctx) error {
	var in dto.UpdateCellRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateCell(c.UserContext(), c.Params("id"), c.Params("rowId"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RemoveRow elimina una fila.
// DELETE /api/drafts/:id/rows/:rowId
func (h *DraftHandler) RemoveRow(c *fiber.Ctx) error {
	out, err := h.uc.RemoveRow(c.UserContext(), c.Params("id"), c.Params("rowId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AddColumn agrega una columna personalizada. 409 si ya existe, 400 si el nombre está vacío.
// POST /api/drafts/:id/columns
func (h *DraftHandler) AddColumn(c *fiber.Ctx) error {
	var in dto.AddColumnRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AddColumn(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	switch qdomain.AddColumnResult(out.Result) {
	case qdomain.ColumnAlreadyExists:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: "COLUMN_EXISTS", Message: fmt.Sprintf("la columna %q ya existe", in.Name),
		})
	case qdomain.ColumnInvalidName:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "nombre de columna requerido",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RemoveColumn elimina una columna personalizada.
// DELETE /api/drafts/:id/columns/:columnId
func (h *DraftHandler) RemoveColumn(c *fiber.Ctx) error {
	out, err := h.uc.RemoveColumn(c.UserContext(), c.Params("id"), c.Params("columnId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PDF vista previa; ?download=1 la devuelve como adjunto.
// GET /api/drafts/:id/pdf
func (h *DraftHandler) PDF(c *fiber.Ctx) error {
	out, name, err := h.export.PDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	disposition := "inline"
	if c.QueryBool("download") {
		disposition = "attachment"
	}
	c.Set(fiber.HeaderContentType, quotation.MimePDF)
	c.Set(fiber.HeaderContentDisposition, contentDisposition(disposition, name))
	return c.Send(out)
}

// XLSX exportación de la tabla de ítems.
// GET /api/drafts/:id/xlsx
func (h *DraftHandler) XLSX(c *fiber.Ctx) error {
	out, name, err := h.export.XLSX(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, quotation.MimeXLSX)
	c.Set(fiber.HeaderContentDisposition, contentDisposition("attachment", name))
	return c.Send(out)
}

// contentDisposition cabecera con el nombre de archivo escapado; el número del
// documento lo edita el usuario. Nombres no ASCII van como filename* (RFC 2231).
func contentDisposition(disposition, name string) string {
	if v := mime.FormatMediaType(disposition, map[string]string{"filename": name}); v != "" {
		return v
	}
	return disposition
}
