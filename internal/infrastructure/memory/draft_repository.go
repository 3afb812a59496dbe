// Package memory implementa los puertos de persistencia en memoria del proceso.
// Todo su contenido se pierde al reiniciar, igual que un borrador sin guardar.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
)

var _ repository.DraftRepository = (*DraftRepo)(nil)

type draftEntry struct {
	doc       entity.Document
	expiresAt time.Time
}

// DraftRepo almacena borradores en un mapa protegido por mutex.
// Con ttl > 0 cada Save renueva la expiración del borrador.
type DraftRepo struct {
	mu    sync.RWMutex
	items map[string]draftEntry
	ttl   time.Duration
	now   func() time.Time
}

// NewDraftRepository construye el almacén. ttl = 0 desactiva la expiración.
func NewDraftRepository(ttl time.Duration) *DraftRepo {
	return &DraftRepo{
		items: make(map[string]draftEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (r *DraftRepo) WithClock(now func() time.Time) *DraftRepo {
	r.now = now
	return r
}

// Save guarda una copia del documento y elimina los borradores expirados.
func (r *DraftRepo) Save(_ context.Context, doc *entity.Document) error {
	now := r.now()
	e := draftEntry{doc: cloneDocument(*doc)}
	if r.ttl > 0 {
		e.expiresAt = now.Add(r.ttl)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ttl > 0 {
		for id, old := range r.items {
			if now.After(old.expiresAt) {
				delete(r.items, id)
			}
		}
	}
	r.items[doc.ID] = e
	return nil
}

// Get devuelve una copia del borrador o nil si no existe o expiró.
func (r *DraftRepo) Get(_ context.Context, id string) (*entity.Document, error) {
	r.mu.RLock()
	e, ok := r.items[id]
	r.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if !e.expiresAt.IsZero() && r.now().After(e.expiresAt) {
		r.mu.Lock()
		delete(r.items, id)
		r.mu.Unlock()
		return nil, nil
	}
	doc := cloneDocument(e.doc)
	return &doc, nil
}

// Delete elimina el borrador; no falla si no existe.
func (r *DraftRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	delete(r.items, id)
	r.mu.Unlock()
	return nil
}

func cloneDocument(d entity.Document) entity.Document {
	out := d
	out.Columns = append([]entity.Column(nil), d.Columns...)
	out.Items = make([]entity.ItemRow, len(d.Items))
	for i, it := range d.Items {
		out.Items[i] = it.Clone()
	}
	return out
}
