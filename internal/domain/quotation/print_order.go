package quotation

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
)

// preferredColumnOrder columnas personalizadas que se imprimen primero, en este orden.
var preferredColumnOrder = []string{"size", "city"}

// OrderCustomColumns orden de impresión de las columnas personalizadas: primero las
// preferidas (size, city), luego el resto alfabéticamente por ID sin distinguir mayúsculas.
// Cabecera y cuerpo de cualquier exportación usan este mismo orden.
func OrderCustomColumns(cols []entity.Column) []entity.Column {
	out := make([]entity.Column, len(cols))
	copy(out, cols)

	coll := collate.New(language.English, collate.IgnoreCase)
	rank := func(c entity.Column) int {
		id := strings.ToLower(c.ID)
		for i, p := range preferredColumnOrder {
			if p == id {
				return i
			}
		}
		return len(preferredColumnOrder)
	}
	sort.SliceStable(out, func(i, j int) bool {
		ra, rb := rank(out[i]), rank(out[j])
		if ra != rb {
			return ra < rb
		}
		if ra < len(preferredColumnOrder) {
			return false
		}
		return coll.CompareString(out[i].ID, out[j].ID) < 0
	})
	return out
}

// ColumnLabel encabezado impreso: el nombre de la columna, o el ID en formato título
// ("unit_price" → "Unit Price") si no tiene nombre.
func ColumnLabel(c entity.Column) string {
	if strings.TrimSpace(c.Name) != "" {
		return c.Name
	}
	return cases.Title(language.English).String(strings.ReplaceAll(c.ID, "_", " "))
}
