package quotation_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/quotation"
)

func TestCalculateTotals(t *testing.T) {
	cases := []struct {
		name    string
		amounts []string
		rate    string
		sub     string
		gst     string
		total   string
	}{
		{"vacío", nil, "18", "0", "0", "0"},
		{"una fila", []string{"750"}, "18", "750", "135", "885"},
		{"varias filas", []string{"5000", "6000"}, "18", "11000", "1980", "12980"},
		{"sin gst", []string{"1234.56"}, "0", "1234.56", "0", "1234.56"},
		{"tasa fraccionaria", []string{"1000"}, "2.5", "1000", "25", "1025"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rows := make([]entity.ItemRow, 0, len(tc.amounts))
			for _, a := range tc.amounts {
				rows = append(rows, entity.ItemRow{Amount: decimal.RequireFromString(a)})
			}
			got := quotation.CalculateTotals(rows, decimal.RequireFromString(tc.rate))

			assert.True(t, got.Subtotal.Equal(decimal.RequireFromString(tc.sub)), "subtotal %s", got.Subtotal)
			assert.True(t, got.GSTAmount.Equal(decimal.RequireFromString(tc.gst)), "gst %s", got.GSTAmount)
			assert.True(t, got.Total.Equal(decimal.RequireFromString(tc.total)), "total %s", got.Total)
			assert.True(t, got.Total.Equal(got.Subtotal.Add(got.GSTAmount)))
		})
	}
}

// El subtotal confía en el importe guardado y no recalcula cantidad × tarifa.
func TestCalculateTotals_UsaImporteGuardado(t *testing.T) {
	rows := []entity.ItemRow{{
		Quantity: decimal.NewFromInt(2),
		Rate:     decimal.NewFromInt(100),
		Amount:   decimal.NewFromInt(150),
	}}
	got := quotation.CalculateTotals(rows, decimal.Zero)
	assert.True(t, got.Subtotal.Equal(decimal.NewFromInt(150)))
}
