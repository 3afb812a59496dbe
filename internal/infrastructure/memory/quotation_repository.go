package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
)

var _ repository.QuotationRepository = (*QuotationRepo)(nil)

// QuotationRepo listado de cotizaciones en memoria (datos de ejemplo cuando no hay base de datos).
type QuotationRepo struct {
	mu    sync.RWMutex
	items []*entity.QuotationSummary
}

// NewQuotationRepository construye el listado con los resúmenes dados, del más reciente al más antiguo.
func NewQuotationRepository(items []*entity.QuotationSummary) *QuotationRepo {
	r := &QuotationRepo{items: items}
	r.sortByDate()
	return r
}

func (r *QuotationRepo) sortByDate() {
	sort.SliceStable(r.items, func(i, j int) bool { return r.items[i].Date.After(r.items[j].Date) })
}

// NewSampleQuotationRepository listado precargado con SampleQuotations.
func NewSampleQuotationRepository() *QuotationRepo {
	return NewQuotationRepository(SampleQuotations())
}

// List filtra por número o cliente y pagina.
func (r *QuotationRepo) List(_ context.Context, search string, limit, offset int) ([]*entity.QuotationSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	term := strings.ToLower(strings.TrimSpace(search))
	var out []*entity.QuotationSummary
	for _, q := range r.items {
		if term == "" ||
			strings.Contains(strings.ToLower(q.Number), term) ||
			strings.Contains(strings.ToLower(q.CustomerName), term) {
			cp := *q
			out = append(out, &cp)
		}
	}
	if offset >= len(out) {
		return []*entity.QuotationSummary{}, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

// Upsert agrega o actualiza por número y mantiene el orden por fecha descendente.
func (r *QuotationRepo) Upsert(_ context.Context, s *entity.QuotationSummary) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *s
	for i, q := range r.items {
		if q.Number == s.Number {
			if q.Status != entity.QuotationStatusDraft {
				cp.Status = q.Status
			}
			r.items[i] = &cp
			return nil
		}
	}
	r.items = append(r.items, &cp)
	r.sortByDate()
	return nil
}

// SampleQuotations cotizaciones de ejemplo usadas por el listado y por el generador de seeds.
func SampleQuotations() []*entity.QuotationSummary {
	d := func(s string) time.Time {
		t, _ := time.Parse("2006-01-02", s)
		return t
	}
	return []*entity.QuotationSummary{
		{Number: "QT-2023-1001", CustomerName: "ABC Corporation", Date: d("2023-10-15"), ValidUntil: d("2023-11-15"), Total: decimal.RequireFromString("12500.00"), Status: entity.QuotationStatusSent},
		{Number: "QT-2023-1002", CustomerName: "XYZ Enterprises", Date: d("2023-10-20"), ValidUntil: d("2023-11-20"), Total: decimal.RequireFromString("8750.50"), Status: entity.QuotationStatusAccepted},
		{Number: "QT-2023-1003", CustomerName: "Global Solutions Ltd", Date: d("2023-10-25"), ValidUntil: d("2023-11-25"), Total: decimal.RequireFromString("15000.00"), Status: entity.QuotationStatusExpired},
		{Number: "QT-2023-1004", CustomerName: "Tech Innovators Inc", Date: d("2023-11-01"), ValidUntil: d("2023-12-01"), Total: decimal.RequireFromString("5250.75"), Status: entity.QuotationStatusDraft},
		{Number: "QT-2023-1005", CustomerName: "Sunrise Retailers", Date: d("2023-11-05"), ValidUntil: d("2023-12-05"), Total: decimal.RequireFromString("9800.25"), Status: entity.QuotationStatusRejected},
	}
}
