package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentKind discrimina la presentación del documento.
type DocumentKind string

const (
	KindQuotation DocumentKind = "quotation"
	KindInvoice   DocumentKind = "invoice" // factura proforma (performa invoice)
)

// Valid indica si el tipo es conocido.
func (k DocumentKind) Valid() bool {
	return k == KindQuotation || k == KindInvoice
}

// Totals campos derivados; nunca se editan directamente.
type Totals struct {
	Subtotal      decimal.Decimal `json:"subtotal"`
	GSTAmount     decimal.Decimal `json:"gst_amount"`
	Total         decimal.Decimal `json:"total"`
	AmountInWords string          `json:"amount_in_words"`
}

// Document estado de una cotización o factura proforma en edición (borrador).
// Date y ValidUntil se guardan tal como los envía el usuario (YYYY-MM-DD).
type Document struct {
	ID         string          `json:"id"`
	Kind       DocumentKind    `json:"kind"`
	Number     string          `json:"number"`
	Date       string          `json:"date"`
	ValidUntil string          `json:"valid_until"`
	Customer   Customer        `json:"customer"`
	Columns    []Column        `json:"columns"`
	Items      []ItemRow       `json:"items"`
	NextRowID  int             `json:"next_row_id"`
	Notes      string          `json:"notes"`
	Terms      string          `json:"terms"`
	GSTRate    decimal.Decimal `json:"gst_rate"`
	Totals     Totals          `json:"totals"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// CustomColumns devuelve las columnas no estándar del esquema, en orden.
func (d Document) CustomColumns() []Column {
	var out []Column
	for _, c := range d.Columns {
		if !IsStandardColumn(c.ID) {
			out = append(out, c)
		}
	}
	return out
}
