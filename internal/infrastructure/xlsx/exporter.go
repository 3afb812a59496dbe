// Package xlsx exporta la tabla de ítems de un documento a Excel.
package xlsx

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf16"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/quotation"
)

// ExcelExporter genera un libro con una hoja: metadatos, tabla y totales.
type ExcelExporter struct{}

// NewExcelExporter construye el exportador.
func NewExcelExporter() *ExcelExporter { return &ExcelExporter{} }

type styles struct {
	title, label, header, cell, money, totalLabel, total int
}

func newStyles(f *excelize.File) (styles, error) {
	var s styles
	border := []excelize.Border{
		{Type: "left", Color: "#BFBFBF", Style: 1},
		{Type: "top", Color: "#BFBFBF", Style: 1},
		{Type: "right", Color: "#BFBFBF", Style: 1},
		{Type: "bottom", Color: "#BFBFBF", Style: 1},
	}
	// Formato numérico con agrupación india (##,##,##0.00).
	moneyFmt := `[>=10000000]##\,##\,##\,##0.00;[>=100000]##\,##\,##0.00;##,##0.00`
	defs := []struct {
		dst   *int
		style *excelize.Style
	}{
		{&s.title, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 16}}},
		{&s.label, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 10}}},
		{&s.header, &excelize.Style{
			Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 10},
			Fill:      excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
			Border:    border,
		}},
		{&s.cell, &excelize.Style{Font: &excelize.Font{Size: 10}, Border: border}},
		{&s.money, &excelize.Style{Font: &excelize.Font{Size: 10}, Border: border, CustomNumFmt: &moneyFmt}},
		{&s.totalLabel, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 11}, Alignment: &excelize.Alignment{Horizontal: "right"}}},
		{&s.total, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 11}, CustomNumFmt: &moneyFmt}},
	}
	for _, d := range defs {
		id, err := f.NewStyle(d.style)
		if err != nil {
			return s, fmt.Errorf("crear estilo: %w", err)
		}
		*d.dst = id
	}
	return s, nil
}

// sheetNameReplacer caracteres que Excel no admite en el nombre de una hoja.
var sheetNameReplacer = strings.NewReplacer(
	":", "-", "\\", "-", "/", "-", "?", "-", "*", "-", "[", "-", "]", "-",
)

// SheetName nombre de la hoja: el número del documento sin los caracteres
// prohibidos por Excel, cortado a 31 caracteres. "Items" si queda vacío.
func SheetName(doc entity.Document) string {
	name := sheetNameReplacer.Replace(doc.Number)
	name = strings.Trim(name, "' ")
	// Excel mide el límite en unidades UTF-16; el corte respeta los caracteres.
	units := 0
	for i, r := range name {
		units += utf16.RuneLen(r)
		if units > excelize.MaxSheetNameLength {
			name = strings.TrimRight(name[:i], "' ")
			break
		}
	}
	if name == "" {
		return "Items"
	}
	return name
}

// Header encabezados de la tabla en el mismo orden que la vista previa PDF.
func Header(doc entity.Document) ([]string, []entity.Column) {
	custom := quotation.OrderCustomColumns(doc.CustomColumns())
	h := []string{"S. No.", "Description"}
	for _, c := range custom {
		h = append(h, quotation.ColumnLabel(c))
	}
	return append(h, "Quantity", "Rate", "Amount"), custom
}

// Export genera el .xlsx del documento.
func (e *ExcelExporter) Export(doc entity.Document) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := SheetName(doc)
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("renombrar hoja: %w", err)
	}
	st, err := newStyles(f)
	if err != nil {
		return nil, err
	}

	header, custom := Header(doc)
	lastCol, _ := excelize.ColumnNumberToName(len(header))

	title := "QUOTATION"
	validLabel := "Valid Until"
	if doc.Kind == entity.KindInvoice {
		title, validLabel = "PERFORMA INVOICE", "Due Date"
	}
	set := func(cell string, v any, style int) error {
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("celda %s: %w", cell, err)
		}
		return f.SetCellStyle(sheet, cell, cell, style)
	}

	if err := f.MergeCell(sheet, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("combinar título: %w", err)
	}
	meta := [][2]string{
		{"Number", doc.Number},
		{"Date", doc.Date},
		{validLabel, doc.ValidUntil},
		{"Customer", doc.Customer.Name},
		{"Address", doc.Customer.Address},
		{"Email", doc.Customer.Email},
		{"Phone", doc.Customer.Phone},
	}
	if err := set("A1", title, st.title); err != nil {
		return nil, err
	}
	for i, kv := range meta {
		r := i + 2
		if err := set(fmt.Sprintf("A%d", r), kv[0], st.label); err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, fmt.Sprintf("B%d", r), sanitizeCell(kv[1])); err != nil {
			return nil, fmt.Errorf("metadato %s: %w", kv[0], err)
		}
	}

	headerRow := len(meta) + 3
	for i, h := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		if err := set(cell, h, st.header); err != nil {
			return nil, err
		}
	}

	r := headerRow
	for _, it := range doc.Items {
		r++
		values := []any{sanitizeCell(it.SerialNo), sanitizeCell(it.Description)}
		for _, c := range custom {
			values = append(values, sanitizeCell(it.Value(c.ID)))
		}
		values = append(values, it.Quantity.IntPart(), it.Rate.InexactFloat64(), it.Amount.InexactFloat64())
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, r)
			style := st.cell
			if i >= len(values)-2 {
				style = st.money
			}
			if err := set(cell, v, style); err != nil {
				return nil, err
			}
		}
	}

	labelCol, _ := excelize.ColumnNumberToName(len(header) - 1)
	totals := []struct {
		label string
		value any
	}{
		{"Subtotal", doc.Totals.Subtotal.InexactFloat64()},
		{fmt.Sprintf("GST (%s%%)", doc.GSTRate.String()), doc.Totals.GSTAmount.InexactFloat64()},
		{"Total", doc.Totals.Total.InexactFloat64()},
	}
	r++
	for _, t := range totals {
		r++
		if err := set(fmt.Sprintf("%s%d", labelCol, r), t.label, st.totalLabel); err != nil {
			return nil, err
		}
		if err := set(fmt.Sprintf("%s%d", lastCol, r), t.value, st.total); err != nil {
			return nil, err
		}
	}
	r += 2
	if err := set(fmt.Sprintf("A%d", r), "Amount in words", st.label); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(sheet, fmt.Sprintf("B%d", r), doc.Totals.AmountInWords); err != nil {
		return nil, fmt.Errorf("importe en letras: %w", err)
	}
	for _, extra := range [][2]string{{"Terms & Conditions", doc.Terms}, {"Notes", doc.Notes}} {
		if extra[1] == "" {
			continue
		}
		r++
		if err := set(fmt.Sprintf("A%d", r), extra[0], st.label); err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, fmt.Sprintf("B%d", r), sanitizeCell(extra[1])); err != nil {
			return nil, fmt.Errorf("%s: %w", extra[0], err)
		}
	}

	if err := f.SetColWidth(sheet, "A", "A", 18); err != nil {
		return nil, fmt.Errorf("ancho de columna: %w", err)
	}
	if err := f.SetColWidth(sheet, "B", "B", 40); err != nil {
		return nil, fmt.Errorf("ancho de columna: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("escribir xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

// sanitizeCell antepone una comilla a textos que Excel interpretaría como fórmula.
func sanitizeCell(s string) string {
	if s == "" {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}
