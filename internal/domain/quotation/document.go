package quotation

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
)

const (
	dateLayout       = "2006-01-02"
	validityDays     = 30
	defaultGSTRate   = 18
	quotationTerms   = "This quotation is valid for 30 days from the date of issue."
	invoiceTerms     = "Payment is due within 30 days from the date of issue."
	quotationPrefix  = "QT"
	invoicePrefix    = "PI"
	numberSuffixMin  = 1000
	numberSuffixSpan = 9000
)

// NewDocumentParams datos para crear un documento nuevo.
// RandIntN devuelve un entero en [0, n); se inyecta para poder fijarlo en tests.
type NewDocumentParams struct {
	ID       string
	Kind     entity.DocumentKind
	Now      time.Time
	RandIntN func(n int) int
}

// HeaderUpdate cambios parciales de cabecera; nil = sin cambio.
type HeaderUpdate struct {
	Number          *string
	Date            *string
	ValidUntil      *string
	CustomerName    *string
	CustomerAddress *string
	CustomerEmail   *string
	CustomerPhone   *string
	Notes           *string
	Terms           *string
	GSTRate         *decimal.Decimal
}

// Document documento en edición: cabecera + tabla de ítems + totales derivados.
// Los totales se recalculan en cada mutación de la tabla o de la tasa de GST.
type Document struct {
	state entity.Document
	table *ItemsTable
}

// NewDocument crea un documento con una fila vacía y un número aleatorio.
func NewDocument(p NewDocumentParams) (*Document, error) {
	if !p.Kind.Valid() {
		return nil, fmt.Errorf("%w: tipo de documento %q", domain.ErrInvalidInput, p.Kind)
	}
	d := &Document{state: entity.Document{
		ID:         p.ID,
		Kind:       p.Kind,
		Number:     GenerateNumber(p.Kind, p.Now, p.RandIntN),
		Date:       p.Now.Format(dateLayout),
		ValidUntil: p.Now.AddDate(0, 0, validityDays).Format(dateLayout),
		Terms:      defaultTerms(p.Kind),
		GSTRate:    decimal.NewFromInt(defaultGSTRate),
		CreatedAt:  p.Now,
		UpdatedAt:  p.Now,
	}}
	d.attachTable(TableOptions{})
	return d, nil
}

// Restore reconstruye un documento a partir de su snapshot almacenado.
func Restore(snapshot entity.Document) (*Document, error) {
	if !snapshot.Kind.Valid() {
		return nil, fmt.Errorf("%w: tipo de documento %q", domain.ErrInvalidInput, snapshot.Kind)
	}
	d := &Document{state: snapshot}
	d.attachTable(TableOptions{
		Columns:   snapshot.Columns,
		Rows:      snapshot.Items,
		NextRowID: snapshot.NextRowID,
	})
	if err := d.table.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// GenerateNumber devuelve "QT-<año>-<NNNN>" o "PI-<año>-<NNNN>".
func GenerateNumber(kind entity.DocumentKind, now time.Time, randIntN func(int) int) string {
	prefix := quotationPrefix
	if kind == entity.KindInvoice {
		prefix = invoicePrefix
	}
	return fmt.Sprintf("%s-%d-%d", prefix, now.Year(), numberSuffixMin+randIntN(numberSuffixSpan))
}

func defaultTerms(kind entity.DocumentKind) string {
	if kind == entity.KindInvoice {
		return invoiceTerms
	}
	return quotationTerms
}

func (d *Document) attachTable(opts TableOptions) {
	opts.OnChange = d.recompute
	d.table = NewItemsTable(opts)
	d.recompute(d.table.Rows())
}

func (d *Document) recompute(rows []entity.ItemRow) {
	d.state.Items = rows
	d.state.Columns = d.table.Columns()
	d.state.NextRowID = d.table.NextRowID()
	d.state.Totals = CalculateTotals(rows, d.state.GSTRate)
}

// Table tabla de ítems del documento; sus mutaciones recalculan los totales.
func (d *Document) Table() *ItemsTable { return d.table }

// ApplyHeader aplica cambios de cabecera, cliente, notas, términos y tasa de GST.
func (d *Document) ApplyHeader(u HeaderUpdate) error {
	if u.GSTRate != nil && u.GSTRate.IsNegative() {
		return fmt.Errorf("%w: gst_rate no puede ser negativo", domain.ErrInvalidInput)
	}
	if u.Number != nil {
		if strings.TrimSpace(*u.Number) == "" {
			return fmt.Errorf("%w: number requerido", domain.ErrInvalidInput)
		}
		d.state.Number = strings.TrimSpace(*u.Number)
	}
	setIf(&d.state.Date, u.Date)
	setIf(&d.state.ValidUntil, u.ValidUntil)
	setIf(&d.state.Customer.Name, u.CustomerName)
	setIf(&d.state.Customer.Address, u.CustomerAddress)
	setIf(&d.state.Customer.Email, u.CustomerEmail)
	setIf(&d.state.Customer.Phone, u.CustomerPhone)
	setIf(&d.state.Notes, u.Notes)
	setIf(&d.state.Terms, u.Terms)
	if u.GSTRate != nil {
		d.state.GSTRate = *u.GSTRate
		d.recompute(d.table.Rows())
	}
	return nil
}

func setIf(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// Touch registra la fecha de la última modificación.
func (d *Document) Touch(now time.Time) { d.state.UpdatedAt = now }

// Snapshot devuelve una copia plana del estado (columnas, filas y totales incluidos).
func (d *Document) Snapshot() entity.Document {
	s := d.state
	s.Columns = d.table.Columns()
	s.Items = d.table.Rows()
	s.NextRowID = d.table.NextRowID()
	return s
}

// ConvertToInvoice crea una factura proforma a partir de esta cotización,
// con número nuevo, fecha actual y vencimiento a 30 días.
func (d *Document) ConvertToInvoice(p NewDocumentParams) (*Document, error) {
	if d.state.Kind != entity.KindQuotation {
		return nil, fmt.Errorf("%w: solo una cotización se puede convertir", domain.ErrConflict)
	}
	snap := d.Snapshot()
	snap.ID = p.ID
	snap.Kind = entity.KindInvoice
	snap.Number = GenerateNumber(entity.KindInvoice, p.Now, p.RandIntN)
	snap.Date = p.Now.Format(dateLayout)
	snap.ValidUntil = p.Now.AddDate(0, 0, validityDays).Format(dateLayout)
	if snap.Terms == quotationTerms {
		snap.Terms = invoiceTerms
	}
	snap.CreatedAt = p.Now
	snap.UpdatedAt = p.Now
	return Restore(snap)
}
