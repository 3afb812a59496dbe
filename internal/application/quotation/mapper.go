package quotation

import (
	"time"

	"github.com/jhoicas/Cotizador-api/internal/application/dto"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/pkg/money"
)

const dateLayout = "2006-01-02"

func toColumnResponse(c entity.Column) dto.ColumnResponse {
	return dto.ColumnResponse{ID: c.ID, Name: c.Name, Width: c.Width, Required: c.Required}
}

// ToDraftResponse mapea el snapshot del documento al DTO de respuesta.
func ToDraftResponse(doc entity.Document) *dto.DraftResponse {
	cols := make([]dto.ColumnResponse, 0, len(doc.Columns))
	for _, c := range doc.Columns {
		cols = append(cols, toColumnResponse(c))
	}
	items := make([]dto.ItemResponse, 0, len(doc.Items))
	for _, it := range doc.Items {
		custom := make([]dto.CellResponse, 0, len(it.Custom))
		for _, cv := range it.Custom {
			custom = append(custom, dto.CellResponse{ColumnID: cv.ColumnID, Value: cv.Value})
		}
		items = append(items, dto.ItemResponse{
			ID:          it.ID,
			SerialNo:    it.SerialNo,
			Description: it.Description,
			Quantity:    it.Quantity,
			Rate:        it.Rate,
			Amount:      it.Amount,
			Custom:      custom,
		})
	}
	return &dto.DraftResponse{
		ID:         doc.ID,
		Kind:       string(doc.Kind),
		Number:     doc.Number,
		Date:       doc.Date,
		ValidUntil: doc.ValidUntil,
		Customer: dto.CustomerResponse{
			Name:    doc.Customer.Name,
			Address: doc.Customer.Address,
			Email:   doc.Customer.Email,
			Phone:   doc.Customer.Phone,
		},
		Columns:        cols,
		Items:          items,
		Notes:          doc.Notes,
		Terms:          doc.Terms,
		GSTRate:        doc.GSTRate,
		Subtotal:       doc.Totals.Subtotal,
		GSTAmount:      doc.Totals.GSTAmount,
		Total:          doc.Totals.Total,
		TotalFormatted: money.FormatIndian(doc.Totals.Total),
		AmountInWords:  doc.Totals.AmountInWords,
		UpdatedAt:      doc.UpdatedAt,
	}
}

// SummaryFromDocument fila del listado a partir de un documento exportado.
// Fechas ilegibles caen en la fecha de creación del borrador.
func SummaryFromDocument(doc entity.Document, status string) *entity.QuotationSummary {
	parse := func(s string, fallback time.Time) time.Time {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			return fallback
		}
		return t
	}
	date := parse(doc.Date, doc.CreatedAt)
	return &entity.QuotationSummary{
		Number:       doc.Number,
		CustomerName: doc.Customer.Name,
		Date:         date,
		ValidUntil:   parse(doc.ValidUntil, date.AddDate(0, 0, 30)),
		Total:        doc.Totals.Total,
		Status:       status,
	}
}

func toSummaryResponse(s *entity.QuotationSummary) dto.QuotationSummaryResponse {
	return dto.QuotationSummaryResponse{
		Number:         s.Number,
		CustomerName:   s.CustomerName,
		Date:           s.Date.Format(dateLayout),
		ValidUntil:     s.ValidUntil.Format(dateLayout),
		Total:          s.Total,
		TotalFormatted: money.FormatIndian(s.Total),
		Status:         s.Status,
	}
}
