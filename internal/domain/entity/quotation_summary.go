package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados mostrados en el listado de cotizaciones.
const (
	QuotationStatusDraft    = "Draft"
	QuotationStatusSent     = "Sent"
	QuotationStatusAccepted = "Accepted"
	QuotationStatusRejected = "Rejected"
	QuotationStatusExpired  = "Expired"
)

// QuotationSummary fila del listado de cotizaciones.
type QuotationSummary struct {
	Number       string
	CustomerName string
	Date         time.Time
	ValidUntil   time.Time
	Total        decimal.Decimal
	Status       string
}
