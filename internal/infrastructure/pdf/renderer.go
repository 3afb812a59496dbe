// Package pdf genera la vista previa imprimible de cotizaciones y facturas proforma.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  MEMBRETE (imagen de cabecera, todas las páginas)            │
//	│  QUOTATION / PERFORMA INVOICE                                │
//	│  From: emisor                 │  To: cliente                 │
//	│  Número / Fecha / Validez                                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: S. No. | Description | <custom> | Qty | Rate | Amount│
//	│  TOTALES: Subtotal / GST (x%) / Total                        │
//	│  Importe en letras, términos y notas                         │
//	│  MEMBRETE (imagen de pie, todas las páginas)                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/linestyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/quotation"
	"github.com/jhoicas/Cotizador-api/pkg/money"
)

// gridSize columnas de la grilla; más fina que 12 para repartir columnas dinámicas.
const gridSize = 24

var (
	colorText   = &props.Color{Red: 33, Green: 37, Blue: 41}
	colorGray   = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorHeader = &props.Color{Red: 240, Green: 240, Blue: 240}
	colorRule   = &props.Color{Red: 200, Green: 200, Blue: 200}
)

// Letterhead imagen de membrete ya cargada.
type Letterhead struct {
	Bytes     []byte
	Extension extension.Type
}

// Options configuración del renderer.
type Options struct {
	Sender entity.Sender
	Header *Letterhead
	Footer *Letterhead
}

// MarotoRenderer implementa el render de documentos usando Maroto v2.
type MarotoRenderer struct {
	opts Options
}

// NewMarotoRenderer construye el renderer.
func NewMarotoRenderer(opts Options) *MarotoRenderer { return &MarotoRenderer{opts: opts} }

// LoadLetterhead lee una imagen PNG o JPG del disco. Ruta vacía = sin membrete (nil, nil).
func LoadLetterhead(path string) (*Letterhead, error) {
	if path == "" {
		return nil, nil
	}
	var ext extension.Type
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		ext = extension.Png
	case ".jpg", ".jpeg":
		ext = extension.Jpg
	default:
		return nil, fmt.Errorf("pdf: formato de membrete no soportado: %s", path)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("pdf: leer membrete: %w", err)
	}
	return &Letterhead{Bytes: b, Extension: ext}, nil
}

// Render genera el PDF del documento y devuelve sus bytes.
func (r *MarotoRenderer) Render(_ context.Context, doc entity.Document) ([]byte, error) {
	table := buildTable(doc)
	layout := newTableLayout(table.custom)

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithMaxGridSize(layout.grid).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title(doc.Kind)+" "+doc.Number, true).
		WithAuthor(r.opts.Sender.Name, true).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   colorGray,
		}).
		Build()

	m := maroto.New(cfg)

	if r.opts.Header != nil {
		if err := m.RegisterHeader(letterheadRow(r.opts.Header, 28, layout)); err != nil {
			return nil, fmt.Errorf("pdf: registrar cabecera: %w", err)
		}
	}
	if r.opts.Footer != nil {
		if err := m.RegisterFooter(letterheadRow(r.opts.Footer, 20, layout)); err != nil {
			return nil, fmt.Errorf("pdf: registrar pie: %w", err)
		}
	}

	m.AddRows(titleRow(doc.Kind, layout))
	m.AddRows(partiesRows(r.opts.Sender, doc.Customer, layout)...)
	m.AddRows(line.NewRow(2, props.Line{Color: colorRule, Thickness: 0.3}))
	m.AddRows(metadataRows(doc, layout)...)
	m.AddRows(row.New(3))

	m.AddRows(tableHeaderRow(table, layout))
	m.AddRows(tableBodyRows(table, layout)...)

	m.AddRows(row.New(4))
	m.AddRows(totalsRows(totalsLines(doc), layout)...)
	m.AddRows(line.NewRow(4, props.Line{Color: colorRule, Thickness: 0.2, Style: linestyle.Dashed}))
	m.AddRows(row.New(8).Add(col.New(layout.grid).Add(
		text.New("Amount in words: "+doc.Totals.AmountInWords, props.Text{Size: 9, Style: fontstyle.BoldItalic, Top: 1}),
	)))
	for _, sec := range sections(doc) {
		m.AddRows(textBlock(sec, layout)...)
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

func title(kind entity.DocumentKind) string {
	if kind == entity.KindInvoice {
		return "PERFORMA INVOICE"
	}
	return "QUOTATION"
}

func letterheadRow(l *Letterhead, height float64, g tableLayout) core.Row {
	return row.New(height).Add(col.New(g.grid).Add(
		image.NewFromBytes(l.Bytes, l.Extension, props.Rect{Center: true, Percent: 100}),
	))
}

func titleRow(kind entity.DocumentKind, g tableLayout) core.Row {
	return row.New(14).Add(col.New(g.grid).Add(
		text.New(title(kind), props.Text{
			Style: fontstyle.Bold, Size: 16, Align: align.Center, Color: colorText, Top: 3,
		}),
	))
}

// partiesRows bloque From (emisor) a la izquierda y To (cliente) a la derecha.
func partiesRows(s entity.Sender, c entity.Customer, g tableLayout) []core.Row {
	label := props.Text{Style: fontstyle.Bold, Size: 10}
	value := props.Text{Size: 9}
	half := g.grid / 2

	from := []string{s.Name, s.AddressLine1, s.AddressLine2, "Phone: " + s.Phone, "Email: " + s.Email}
	to := []string{c.Name, c.Address, "Phone: " + c.Phone, "Email: " + c.Email}

	rows := []core.Row{row.New(6).Add(
		col.New(half).Add(text.New("From:", label)),
		col.New(half).Add(text.New("To:", label)),
	)}
	n := max(len(from), len(to))
	for i := 0; i < n; i++ {
		rows = append(rows, row.New(5).Add(
			col.New(half).Add(text.New(at(from, i), value)),
			col.New(half).Add(text.New(at(to, i), value)),
		))
	}
	return rows
}

func at(s []string, i int) string {
	if i < len(s) {
		return s[i]
	}
	return ""
}

func metadataRows(doc entity.Document, g tableLayout) []core.Row {
	numberLabel, validLabel := "Quotation Number:", "Valid Until:"
	if doc.Kind == entity.KindInvoice {
		numberLabel, validLabel = "Invoice Number:", "Due Date:"
	}
	pair := func(label, value string) core.Row {
		return row.New(5).Add(
			col.New(g.span(5)).Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: 9})),
			col.New(g.grid-g.span(5)).Add(text.New(value, props.Text{Size: 9})),
		)
	}
	return []core.Row{
		pair(numberLabel, doc.Number),
		pair("Date:", FormatDate(doc.Date)),
		pair(validLabel, FormatDate(doc.ValidUntil)),
	}
}

// tableContent textos ya formateados de la tabla de ítems. Cabecera y filas
// comparten el orden: S. No., Description, personalizadas, Quantity, Rate, Amount.
type tableContent struct {
	header []string
	body   [][]string
	custom int
}

func buildTable(doc entity.Document) tableContent {
	custom := quotation.OrderCustomColumns(doc.CustomColumns())
	t := tableContent{custom: len(custom)}

	t.header = []string{"S. No.", "Description"}
	for _, c := range custom {
		t.header = append(t.header, quotation.ColumnLabel(c))
	}
	t.header = append(t.header, "Quantity", "Rate", "Amount")

	for _, it := range doc.Items {
		serial := it.SerialNo
		if serial == "" {
			serial = it.ID
		}
		desc := it.Description
		if strings.TrimSpace(desc) == "" {
			desc = "-"
		}
		cells := []string{serial, desc}
		for _, c := range custom {
			cells = append(cells, it.Value(c.ID))
		}
		cells = append(cells, FormatQuantity(it), money.FormatIndian(it.Rate), money.FormatIndian(it.Amount))
		t.body = append(t.body, cells)
	}
	return t
}

// tableLayout grilla del documento y anchos (en celdas) de cada columna de la tabla.
// La grilla base es gridSize; con muchas columnas personalizadas se usa un múltiplo
// (scale) para que la fila completa siga cabiendo en el ancho de la página.
type tableLayout struct {
	grid, scale                                         int
	serial, description, custom, quantity, rate, amount int
}

// span escala un ancho expresado sobre la grilla base.
func (l tableLayout) span(n int) int { return n * l.scale }

// widths ancho de cada columna en el orden de tableContent.
func (l tableLayout) widths(customCount int) []int {
	w := []int{l.serial, l.description}
	for i := 0; i < customCount; i++ {
		w = append(w, l.custom)
	}
	return append(w, l.quantity, l.rate, l.amount)
}

// newTableLayout reparte la grilla: las columnas fijas conservan su proporción y
// Description cede espacio a las personalizadas hasta un mínimo. La suma de
// anchos es siempre igual a grid.
func newTableLayout(customCount int) tableLayout {
	const minDescription = 2
	scale := 1
	for {
		free := (gridSize - 10) * scale
		if customCount == 0 || free-customCount >= minDescription*scale {
			break
		}
		scale++
	}
	l := tableLayout{
		grid:     gridSize * scale,
		scale:    scale,
		serial:   2 * scale,
		quantity: 2 * scale,
		rate:     3 * scale,
		amount:   3 * scale,
	}
	free := l.grid - l.serial - l.quantity - l.rate - l.amount
	if customCount == 0 {
		l.description = free
		return l
	}
	l.custom = min(3*scale, max(1, (free-4*scale)/customCount))
	l.description = free - l.custom*customCount
	return l
}

func tableHeaderRow(t tableContent, l tableLayout) core.Row {
	widths := l.widths(t.custom)
	cols := make([]core.Col, 0, len(t.header))
	for i, label := range t.header {
		cols = append(cols, col.New(widths[i]).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: cellAlign(i, len(t.header)), Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cols...).WithStyle(&props.Cell{BackgroundColor: colorHeader})
}

func tableBodyRows(t tableContent, l tableLayout) []core.Row {
	widths := l.widths(t.custom)
	rows := make([]core.Row, 0, len(t.body))
	for _, cells := range t.body {
		cols := make([]core.Col, 0, len(cells))
		for i, v := range cells {
			cols = append(cols, col.New(widths[i]).Add(text.New(v, props.Text{
				Size: 8, Align: cellAlign(i, len(cells)), Top: 1, Left: 1, Right: 1,
			})))
		}
		rows = append(rows, row.New(7).Add(cols...))
	}
	return rows
}

// cellAlign las tres últimas columnas (numéricas) van a la derecha.
func cellAlign(i, n int) align.Type {
	if i >= n-3 {
		return align.Right
	}
	return align.Left
}

// FormatQuantity cantidad entera; cero se imprime "0".
func FormatQuantity(it entity.ItemRow) string {
	if it.Quantity.IsZero() {
		return "0"
	}
	return it.Quantity.Truncate(0).String()
}

func totalsLines(doc entity.Document) [][2]string {
	return [][2]string{
		{"Subtotal:", money.FormatIndian(doc.Totals.Subtotal)},
		{fmt.Sprintf("GST (%s%%):", doc.GSTRate.String()), money.FormatIndian(doc.Totals.GSTAmount)},
		{"Total:", money.FormatIndian(doc.Totals.Total)},
	}
}

func totalsRows(lines [][2]string, g tableLayout) []core.Row {
	rows := make([]core.Row, 0, len(lines))
	for i, ln := range lines {
		size, style := 9.0, fontstyle.Normal
		if i == len(lines)-1 {
			size, style = 11, fontstyle.Bold
		}
		rows = append(rows, row.New(6).Add(
			col.New(g.span(14)),
			col.New(g.span(5)).Add(text.New(ln[0], props.Text{Style: fontstyle.Bold, Size: size})),
			col.New(g.span(5)).Add(text.New(ln[1], props.Text{Style: style, Size: size, Align: align.Right, Right: 1})),
		))
	}
	return rows
}

// section bloque de texto al pie del documento.
type section struct {
	label, body string
}

// sections términos y notas; los vacíos se omiten.
func sections(doc entity.Document) []section {
	var out []section
	for _, s := range []section{{"Terms & Conditions:", doc.Terms}, {"Notes:", doc.Notes}} {
		if strings.TrimSpace(s.body) != "" {
			out = append(out, s)
		}
	}
	return out
}

func textBlock(s section, g tableLayout) []core.Row {
	lines := strings.Count(s.body, "\n") + 1
	return []core.Row{
		row.New(8).Add(col.New(g.grid).Add(text.New(s.label, props.Text{Style: fontstyle.Bold, Size: 10, Top: 3}))),
		row.New(float64(5*lines)).Add(col.New(g.grid).Add(text.New(s.body, props.Text{Size: 8}))),
	}
}
