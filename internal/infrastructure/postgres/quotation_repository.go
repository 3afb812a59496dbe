package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
)

var _ repository.QuotationRepository = (*QuotationRepo)(nil)

// QuotationRepo implementación de QuotationRepository sobre PostgreSQL.
type QuotationRepo struct {
	q Querier
}

// NewQuotationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewQuotationRepository(q Querier) *QuotationRepo {
	return &QuotationRepo{q: q}
}

// List busca por número o cliente (ILIKE) ordenando por fecha descendente.
func (r *QuotationRepo) List(ctx context.Context, search string, limit, offset int) ([]*entity.QuotationSummary, error) {
	query := `
		SELECT number, customer_name, issue_date, valid_until, total, status
		FROM quotations
		WHERE $1 = '' OR number ILIKE '%' || $1 || '%' OR customer_name ILIKE '%' || $1 || '%'
		ORDER BY issue_date DESC, number DESC
		LIMIT $2 OFFSET $3`
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.q.Query(ctx, query, escapeLike(strings.TrimSpace(search)), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list quotations: %w", err)
	}
	defer rows.Close()

	list := []*entity.QuotationSummary{}
	for rows.Next() {
		var s entity.QuotationSummary
		if err := rows.Scan(&s.Number, &s.CustomerName, &s.Date, &s.ValidUntil, &s.Total, &s.Status); err != nil {
			return nil, fmt.Errorf("scan quotation: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Upsert registra o actualiza una cotización del listado.
// El estado solo se reemplaza mientras la fila siga en Draft.
func (r *QuotationRepo) Upsert(ctx context.Context, s *entity.QuotationSummary) error {
	query := `
		INSERT INTO quotations (number, customer_name, issue_date, valid_until, total, status, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		ON CONFLICT (number) DO UPDATE SET
			customer_name = EXCLUDED.customer_name,
			issue_date    = EXCLUDED.issue_date,
			valid_until   = EXCLUDED.valid_until,
			total         = EXCLUDED.total,
			status        = CASE WHEN quotations.status = 'Draft' THEN EXCLUDED.status ELSE quotations.status END,
			updated_at    = now()`
	_, err := r.q.Exec(ctx, query, s.Number, s.CustomerName, s.Date, s.ValidUntil, s.Total, s.Status)
	if err != nil {
		return fmt.Errorf("upsert quotation: %w", err)
	}
	return nil
}

// escapeLike evita que % y _ del usuario actúen como comodines.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
