package entity

import "github.com/shopspring/decimal"

// Identificadores de las columnas estándar de la tabla de ítems.
const (
	ColumnSerialNo    = "serial_no"
	ColumnDescription = "description"
	ColumnQuantity    = "quantity"
	ColumnRate        = "rate"
	ColumnAmount      = "amount"
)

// Column entrada del esquema de la tabla de ítems.
type Column struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Width    string `json:"width"`
	Required bool   `json:"required"`
}

// DefaultColumns devuelve el esquema base (todas obligatorias).
func DefaultColumns() []Column {
	return []Column{
		{ID: ColumnSerialNo, Name: "S. No.", Width: "10%", Required: true},
		{ID: ColumnDescription, Name: "Description", Width: "40%", Required: true},
		{ID: ColumnQuantity, Name: "Quantity", Width: "15%", Required: true},
		{ID: ColumnRate, Name: "Rate", Width: "15%", Required: true},
		{ID: ColumnAmount, Name: "Amount", Width: "15%", Required: true},
	}
}

// IsStandardColumn indica si el id corresponde a una columna estándar.
func IsStandardColumn(id string) bool {
	switch id {
	case ColumnSerialNo, ColumnDescription, ColumnQuantity, ColumnRate, ColumnAmount:
		return true
	}
	return false
}

// CellValue valor de una columna personalizada dentro de una fila.
type CellValue struct {
	ColumnID string `json:"column_id"`
	Value    string `json:"value"`
}

// ItemRow fila de la tabla de ítems. Custom mantiene una entrada por cada
// columna personalizada del esquema, en el mismo orden.
type ItemRow struct {
	ID          string          `json:"id"`
	SerialNo    string          `json:"serial_no"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
	Custom      []CellValue     `json:"custom,omitempty"`
}

// Value devuelve el valor de una columna personalizada ("" si no existe).
func (r ItemRow) Value(columnID string) string {
	for _, c := range r.Custom {
		if c.ColumnID == columnID {
			return c.Value
		}
	}
	return ""
}

// Clone copia la fila incluyendo sus valores personalizados.
func (r ItemRow) Clone() ItemRow {
	out := r
	if r.Custom != nil {
		out.Custom = append([]CellValue(nil), r.Custom...)
	}
	return out
}
