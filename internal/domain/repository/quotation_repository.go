package repository

import (
	"context"

	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
)

// QuotationRepository define el puerto de lectura del listado de cotizaciones.
// Search filtra por número o nombre de cliente (subcadena, sin distinguir mayúsculas);
// vacío devuelve todo.
// Upsert registra una cotización exportada; el estado solo avanza mientras siga en Draft.
type QuotationRepository interface {
	List(ctx context.Context, search string, limit, offset int) ([]*entity.QuotationSummary, error)
	Upsert(ctx context.Context, s *entity.QuotationSummary) error
}
