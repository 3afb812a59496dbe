package pdf

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
)

func documentWithColumns(n int) entity.Document {
	cols := append([]entity.Column{}, entity.DefaultColumns()[:2]...)
	cells := make([]entity.CellValue, 0, n)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("extra_%02d", i)
		cols = append(cols, entity.Column{ID: id})
		cells = append(cells, entity.CellValue{ColumnID: id, Value: "v"})
	}
	cols = append(cols, entity.DefaultColumns()[2:]...)
	return entity.Document{
		ID: "d1", Kind: entity.KindQuotation, Number: "QT-1",
		Columns: cols,
		Items: []entity.ItemRow{{ID: "1", SerialNo: "1", Description: "Hoarding",
			Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(10), Amount: decimal.NewFromInt(10), Custom: cells}},
		GSTRate: decimal.NewFromInt(18),
	}
}

func TestNewTableLayout_FilaCabeEnLaGrilla(t *testing.T) {
	for n := 0; n <= 60; n++ {
		l := newTableLayout(n)
		sum := 0
		for _, w := range l.widths(n) {
			assert.GreaterOrEqual(t, w, 1, "%d columnas", n)
			sum += w
		}
		assert.Equal(t, l.grid, sum, "%d columnas", n)
		assert.Equal(t, gridSize*l.scale, l.grid)
	}
}

func TestNewTableLayout_SinPersonalizadasUsaGrillaBase(t *testing.T) {
	for n := 0; n <= 12; n++ {
		assert.Equal(t, gridSize, newTableLayout(n).grid, "%d columnas", n)
	}
	assert.Greater(t, newTableLayout(15).grid, gridSize)
}

func TestRender_MuchasColumnasPersonalizadas(t *testing.T) {
	out, err := NewMarotoRenderer(Options{}).Render(context.Background(), documentWithColumns(30))
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestBuildTable_CabeceraYCuerpoMismoOrden(t *testing.T) {
	cols := append([]entity.Column{}, entity.DefaultColumns()[:2]...)
	cols = append(cols, entity.Column{ID: "city", Name: "City"}, entity.Column{ID: "size", Name: "Size"})
	cols = append(cols, entity.DefaultColumns()[2:]...)
	doc := entity.Document{
		Columns: cols,
		Items: []entity.ItemRow{{ID: "1", SerialNo: "1", Description: "Hoarding",
			Quantity: decimal.NewFromInt(3), Rate: decimal.NewFromInt(250), Amount: decimal.NewFromInt(750),
			Custom: []entity.CellValue{{ColumnID: "city", Value: "Raipur"}, {ColumnID: "size", Value: "20x10"}}}},
	}

	table := buildTable(doc)
	assert.Equal(t, []string{"S. No.", "Description", "Size", "City", "Quantity", "Rate", "Amount"}, table.header)
	require.Len(t, table.body, 1)
	assert.Equal(t, []string{"1", "Hoarding", "20x10", "Raipur", "3", "250.00", "750.00"}, table.body[0])
	assert.Len(t, newTableLayout(table.custom).widths(table.custom), len(table.header))
}

func TestBuildTable_ValoresCero(t *testing.T) {
	doc := entity.Document{
		Columns: entity.DefaultColumns(),
		Items:   []entity.ItemRow{{ID: "7"}},
	}
	table := buildTable(doc)
	require.Len(t, table.body, 1)
	assert.Equal(t, []string{"7", "-", "0", "0.00", "0.00"}, table.body[0])
}

func TestTotalsLines_TasaGSTEnLaEtiqueta(t *testing.T) {
	doc := entity.Document{
		GSTRate: decimal.RequireFromString("12.5"),
		Totals: entity.Totals{
			Subtotal: decimal.NewFromInt(100000), GSTAmount: decimal.NewFromInt(12500), Total: decimal.NewFromInt(112500),
		},
	}
	lines := totalsLines(doc)
	require.Len(t, lines, 3)
	assert.Equal(t, [2]string{"Subtotal:", "1,00,000.00"}, lines[0])
	assert.Equal(t, [2]string{"GST (12.5%):", "12,500.00"}, lines[1])
	assert.Equal(t, [2]string{"Total:", "1,12,500.00"}, lines[2])

	doc.GSTRate = decimal.NewFromInt(18)
	assert.Equal(t, "GST (18%):", totalsLines(doc)[1][0])
}

func TestSections_OmiteVacios(t *testing.T) {
	assert.Empty(t, sections(entity.Document{Terms: "  ", Notes: ""}))

	got := sections(entity.Document{Terms: "30 días", Notes: ""})
	assert.Equal(t, []section{{"Terms & Conditions:", "30 días"}}, got)

	got = sections(entity.Document{Notes: "Entrega en obra"})
	assert.Equal(t, []section{{"Notes:", "Entrega en obra"}}, got)
}
