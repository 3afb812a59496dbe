package dto

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// CreateDraftRequest body de POST /api/drafts.
type CreateDraftRequest struct {
	Kind string `json:"kind"` // quotation | invoice
}

// UpdateHeaderRequest body de PATCH /api/drafts/:id; campos ausentes no cambian.
type UpdateHeaderRequest struct {
	Number          *string          `json:"number,omitempty"`
	Date            *string          `json:"date,omitempty"`
	ValidUntil      *string          `json:"valid_until,omitempty"`
	CustomerName    *string          `json:"customer_name,omitempty"`
	CustomerAddress *string          `json:"customer_address,omitempty"`
	CustomerEmail   *string          `json:"customer_email,omitempty"`
	CustomerPhone   *string          `json:"customer_phone,omitempty"`
	Notes           *string          `json:"notes,omitempty"`
	Terms           *string          `json:"terms,omitempty"`
	GSTRate         *decimal.Decimal `json:"gst_rate,omitempty"`
}

// CellValue texto de celda; acepta string o número en JSON.
type CellValue string

// UnmarshalJSON acepta "3", 3 o null.
func (v *CellValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*v = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = CellValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*v = CellValue(n.String())
	return nil
}

// UpdateCellRequest body de PATCH /api/drafts/:id/rows/:rowId.
type UpdateCellRequest struct {
	Column string    `json:"column"`
	Value  CellValue `json:"value"`
}

// AddColumnRequest body de POST /api/drafts/:id/columns.
type AddColumnRequest struct {
	Name string `json:"name"`
}

// ColumnResponse columna del esquema de la tabla.
type ColumnResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Width    string `json:"width,omitempty"`
	Required bool   `json:"required"`
}

// CellResponse valor de una columna personalizada.
type CellResponse struct {
	ColumnID string `json:"column_id"`
	Value    string `json:"value"`
}

// ItemResponse fila de la tabla de ítems.
type ItemResponse struct {
	ID          string          `json:"id"`
	SerialNo    string          `json:"serial_no"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
	Custom      []CellResponse  `json:"custom"`
}

// CustomerResponse bloque "To" del documento.
type CustomerResponse struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
}

// DraftResponse documento en edición con totales derivados.
type DraftResponse struct {
	ID             string           `json:"id"`
	Kind           string           `json:"kind"`
	Number         string           `json:"number"`
	Date           string           `json:"date"`
	ValidUntil     string           `json:"valid_until"`
	Customer       CustomerResponse `json:"customer"`
	Columns        []ColumnResponse `json:"columns"`
	Items          []ItemResponse   `json:"items"`
	Notes          string           `json:"notes"`
	Terms          string           `json:"terms"`
	GSTRate        decimal.Decimal  `json:"gst_rate"`
	Subtotal       decimal.Decimal  `json:"subtotal"`
	GSTAmount      decimal.Decimal  `json:"gst_amount"`
	Total          decimal.Decimal  `json:"total"`
	TotalFormatted string           `json:"total_formatted"`
	AmountInWords  string           `json:"amount_in_words"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// AddColumnResponse resultado de agregar una columna.
type AddColumnResponse struct {
	Result string          `json:"result"`
	Column *ColumnResponse `json:"column,omitempty"`
	Draft  *DraftResponse  `json:"draft"`
}

// QuotationSummaryResponse fila del listado de cotizaciones.
type QuotationSummaryResponse struct {
	Number         string          `json:"number"`
	CustomerName   string          `json:"customer_name"`
	Date           string          `json:"date"`
	ValidUntil     string          `json:"valid_until"`
	Total          decimal.Decimal `json:"total"`
	TotalFormatted string          `json:"total_formatted"`
	Status         string          `json:"status"`
}

// QuotationListResponse listado paginado.
type QuotationListResponse struct {
	Items []QuotationSummaryResponse `json:"items"`
	Page  PageResponse               `json:"page"`
}

// UploadStatusResponse estado de la subida a Drive de un borrador.
type UploadStatusResponse struct {
	Status string `json:"status"` // idle | uploading | success | error
	FileID string `json:"file_id,omitempty"`
	URL    string `json:"url,omitempty"`
}

// DriveAuthResponse respuesta cuando se requiere consentimiento del usuario.
type DriveAuthResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	AuthURL string `json:"auth_url"`
}

// DriveSessionResponse estado de la sesión de Drive.
type DriveSessionResponse struct {
	Available bool `json:"available"`
	SignedIn  bool `json:"signed_in"`
}
