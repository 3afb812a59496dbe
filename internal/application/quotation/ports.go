package quotation

import (
	"context"

	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
)

// DocumentRenderer genera la vista previa imprimible (PDF) de un documento.
type DocumentRenderer interface {
	Render(ctx context.Context, doc entity.Document) ([]byte, error)
}

// SpreadsheetExporter exporta la tabla de ítems a una hoja de cálculo.
type SpreadsheetExporter interface {
	Export(doc entity.Document) ([]byte, error)
}
