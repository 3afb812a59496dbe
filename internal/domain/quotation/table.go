// Package quotation contiene la lógica de dominio de cotizaciones y facturas
// proforma: la tabla dinámica de ítems, el cálculo de totales y el ciclo de
// vida del documento en edición.
package quotation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
)

// AmountFunc calcula el importe de una fila.
type AmountFunc func(row entity.ItemRow) decimal.Decimal

// ChangeFunc recibe la lista de filas después de cada mutación.
type ChangeFunc func(rows []entity.ItemRow)

// AddColumnResult resultado tipado de AddColumn; la capa de presentación decide cómo mostrarlo.
type AddColumnResult string

const (
	ColumnAdded         AddColumnResult = "added"
	ColumnAlreadyExists AddColumnResult = "already_exists"
	ColumnInvalidName   AddColumnResult = "invalid_name"
)

const customColumnWidth = "15%"

var whitespaceRe = regexp.MustCompile(`\s+`)

// QuantityTimesRate es el cálculo de importe por defecto.
func QuantityTimesRate(row entity.ItemRow) decimal.Decimal {
	return row.Quantity.Mul(row.Rate)
}

// TableOptions estado inicial y colaboradores de la tabla.
type TableOptions struct {
	Columns    []entity.Column
	Rows       []entity.ItemRow
	NextRowID  int
	AmountFunc AmountFunc
	OnChange   ChangeFunc
}

// ItemsTable lista ordenada de filas con un esquema de columnas extensible.
// No es segura para uso concurrente: hay un único escritor por documento.
type ItemsTable struct {
	columns  []entity.Column
	rows     []entity.ItemRow
	nextID   int
	amount   AmountFunc
	onChange ChangeFunc
}

// NewItemsTable construye la tabla. Sin filas iniciales crea una fila vacía por defecto.
func NewItemsTable(opts TableOptions) *ItemsTable {
	t := &ItemsTable{
		columns:  normalizeColumns(opts.Columns),
		amount:   opts.AmountFunc,
		onChange: opts.OnChange,
	}
	if t.amount == nil {
		t.amount = QuantityTimesRate
	}

	if len(opts.Rows) == 0 {
		t.rows = []entity.ItemRow{t.newRow("1", "1")}
		t.nextID = 2
		return t
	}

	t.rows = make([]entity.ItemRow, 0, len(opts.Rows))
	maxID := 0
	for i, r := range opts.Rows {
		row := r.Clone()
		if row.SerialNo == "" {
			row.SerialNo = strconv.Itoa(i + 1)
		}
		if n, err := strconv.Atoi(row.ID); err == nil && n > maxID {
			maxID = n
		}
		t.rows = append(t.rows, t.realign(row))
	}
	t.nextID = opts.NextRowID
	if t.nextID <= maxID {
		t.nextID = maxID + 1
	}
	if t.nextID <= len(t.rows) {
		t.nextID = len(t.rows) + 1
	}
	return t
}

// normalizeColumns usa el esquema tal cual si contiene todas las columnas estándar;
// si no, antepone el esquema por defecto y agrega las columnas personalizadas recibidas.
func normalizeColumns(given []entity.Column) []entity.Column {
	present := make(map[string]bool, len(given))
	for _, c := range given {
		present[c.ID] = true
	}
	complete := true
	for _, c := range entity.DefaultColumns() {
		if !present[c.ID] {
			complete = false
			break
		}
	}

	var out []entity.Column
	seen := make(map[string]bool)
	if !complete {
		out = entity.DefaultColumns()
		for _, c := range out {
			seen[c.ID] = true
		}
	}
	for _, c := range given {
		if c.ID == "" || seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		if entity.IsStandardColumn(c.ID) {
			c.Required = true
		}
		out = append(out, c)
	}
	return out
}

// Columns devuelve una copia del esquema.
func (t *ItemsTable) Columns() []entity.Column {
	return append([]entity.Column(nil), t.columns...)
}

// CustomColumns devuelve las columnas no estándar en orden de esquema.
func (t *ItemsTable) CustomColumns() []entity.Column {
	var out []entity.Column
	for _, c := range t.columns {
		if !entity.IsStandardColumn(c.ID) {
			out = append(out, c)
		}
	}
	return out
}

// Rows devuelve una copia de las filas.
func (t *ItemsTable) Rows() []entity.ItemRow {
	out := make([]entity.ItemRow, len(t.rows))
	for i, r := range t.rows {
		out[i] = r.Clone()
	}
	return out
}

// NextRowID siguiente identificador que recibirá una fila nueva.
func (t *ItemsTable) NextRowID() int { return t.nextID }

// AddRow agrega una fila con valores por defecto. El id nunca se reutiliza;
// el número de serie es posicional (cantidad de filas + 1).
func (t *ItemsTable) AddRow() entity.ItemRow {
	id := strconv.Itoa(t.nextID)
	t.nextID++
	row := t.newRow(id, strconv.Itoa(len(t.rows)+1))
	t.rows = append(t.rows, row)
	t.notify()
	return row.Clone()
}

// RemoveRow elimina la fila por id sin renumerar las demás.
func (t *ItemsTable) RemoveRow(id string) error {
	idx := t.rowIndex(id)
	if idx < 0 {
		return domain.ErrRowNotFound
	}
	t.rows = append(t.rows[:idx], t.rows[idx+1:]...)
	t.notify()
	return nil
}

// UpdateCell asigna un valor. Cantidad y tarifa se interpretan como números
// (entrada no numérica → 0) y disparan el recálculo del importe.
func (t *ItemsTable) UpdateCell(id, columnID, value string) error {
	idx := t.rowIndex(id)
	if idx < 0 {
		return domain.ErrRowNotFound
	}
	if t.columnIndex(columnID) < 0 {
		return fmt.Errorf("%w: %s", domain.ErrUnknownColumn, columnID)
	}

	row := &t.rows[idx]
	switch columnID {
	case entity.ColumnAmount:
		return fmt.Errorf("%w: %s", domain.ErrReadOnlyColumn, columnID)
	case entity.ColumnSerialNo:
		row.SerialNo = value
	case entity.ColumnDescription:
		row.Description = value
	case entity.ColumnQuantity:
		row.Quantity = parseNumber(value).Truncate(0)
		row.Amount = t.amount(*row)
	case entity.ColumnRate:
		row.Rate = parseNumber(value)
		row.Amount = t.amount(*row)
	default:
		for i := range row.Custom {
			if row.Custom[i].ColumnID == columnID {
				row.Custom[i].Value = value
			}
		}
	}
	t.notify()
	return nil
}

// ColumnIDFromName deriva el id: minúsculas y espacios convertidos en "_".
func ColumnIDFromName(name string) string {
	return whitespaceRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "_")
}

// AddColumn inserta una columna personalizada justo después de "description"
// y agrega el campo vacío a todas las filas. Si el id ya existe no cambia nada.
func (t *ItemsTable) AddColumn(name string) (AddColumnResult, entity.Column) {
	name = strings.TrimSpace(name)
	if name == "" {
		return ColumnInvalidName, entity.Column{}
	}
	id := ColumnIDFromName(name)
	if t.columnIndex(id) >= 0 {
		return ColumnAlreadyExists, t.columns[t.columnIndex(id)]
	}

	col := entity.Column{ID: id, Name: name, Width: customColumnWidth}
	pos := t.columnIndex(entity.ColumnDescription) + 1
	t.columns = append(t.columns, entity.Column{})
	copy(t.columns[pos+1:], t.columns[pos:])
	t.columns[pos] = col

	for i := range t.rows {
		t.rows[i] = t.realign(t.rows[i])
	}
	t.notify()
	return ColumnAdded, col
}

// RemoveColumn elimina una columna personalizada del esquema y de cada fila.
func (t *ItemsTable) RemoveColumn(columnID string) error {
	idx := t.columnIndex(columnID)
	if idx < 0 {
		return fmt.Errorf("%w: %s", domain.ErrUnknownColumn, columnID)
	}
	if t.columns[idx].Required {
		return fmt.Errorf("%w: %s", domain.ErrRequiredColumn, columnID)
	}
	t.columns = append(t.columns[:idx], t.columns[idx+1:]...)
	for i := range t.rows {
		t.rows[i] = t.realign(t.rows[i])
	}
	t.notify()
	return nil
}

// Validate comprueba que cada fila tenga exactamente los campos personalizados del esquema.
func (t *ItemsTable) Validate() error {
	custom := t.CustomColumns()
	for _, r := range t.rows {
		if len(r.Custom) != len(custom) {
			return fmt.Errorf("%w: fila %s tiene %d campos personalizados, esquema %d",
				domain.ErrInvalidInput, r.ID, len(r.Custom), len(custom))
		}
		for i, c := range custom {
			if r.Custom[i].ColumnID != c.ID {
				return fmt.Errorf("%w: fila %s campo %q fuera de esquema",
					domain.ErrInvalidInput, r.ID, r.Custom[i].ColumnID)
			}
		}
	}
	return nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (t *ItemsTable) newRow(id, serial string) entity.ItemRow {
	return t.realign(entity.ItemRow{
		ID:       id,
		SerialNo: serial,
		Quantity: decimal.NewFromInt(1),
		Rate:     decimal.Zero,
		Amount:   decimal.Zero,
	})
}

// realign reconstruye Custom según el orden actual de columnas personalizadas,
// conservando los valores existentes y descartando los que ya no están en el esquema.
func (t *ItemsTable) realign(row entity.ItemRow) entity.ItemRow {
	custom := t.CustomColumns()
	values := make([]entity.CellValue, 0, len(custom))
	for _, c := range custom {
		values = append(values, entity.CellValue{ColumnID: c.ID, Value: row.Value(c.ID)})
	}
	row.Custom = values
	return row
}

func (t *ItemsTable) rowIndex(id string) int {
	for i, r := range t.rows {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func (t *ItemsTable) columnIndex(id string) int {
	for i, c := range t.columns {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (t *ItemsTable) notify() {
	if t.onChange != nil {
		t.onChange(t.Rows())
	}
}

// parseNumber interpreta la entrada del usuario; vacío, inválido o negativo → 0.
func parseNumber(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}
