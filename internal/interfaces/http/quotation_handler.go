package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cotizador-api/internal/application/dto"
	"github.com/jhoicas/Cotizador-api/internal/application/quotation"
)

// QuotationHandler listado de cotizaciones.
type QuotationHandler struct {
	uc *quotation.ListUseCase
}

// NewQuotationHandler construye el handler.
func NewQuotationHandler(uc *quotation.ListUseCase) *QuotationHandler {
	return &QuotationHandler{uc: uc}
}

// List busca por número o cliente.
// GET /api/quotations?search=&limit=&offset=
func (h *QuotationHandler) List(c *fiber.Ctx) error {
	var in dto.PageRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros inválidos"})
	}
	out, err := h.uc.List(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
