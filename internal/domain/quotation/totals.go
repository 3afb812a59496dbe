package quotation

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/pkg/money"
)

var hundred = decimal.NewFromInt(100)

// CalculateTotals deriva subtotal, GST, total y total en palabras.
// El subtotal suma el importe guardado en cada fila; no recalcula cantidad × tarifa.
func CalculateTotals(rows []entity.ItemRow, gstRate decimal.Decimal) entity.Totals {
	subtotal := decimal.Zero
	for _, r := range rows {
		subtotal = subtotal.Add(r.Amount)
	}
	gst := subtotal.Mul(gstRate).Div(hundred)
	total := subtotal.Add(gst)

	return entity.Totals{
		Subtotal:      subtotal,
		GSTAmount:     gst,
		Total:         total,
		AmountInWords: money.AmountInWords(total),
	}
}
