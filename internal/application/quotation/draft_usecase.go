package quotation

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Cotizador-api/internal/application/dto"
	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	qdomain "github.com/jhoicas/Cotizador-api/internal/domain/quotation"
	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
)

// DraftUseCase casos de uso del documento en edición (cotización o factura proforma).
// Cada operación carga el snapshot, reconstruye el documento, aplica el cambio y lo guarda.
type DraftUseCase struct {
	repo  repository.DraftRepository
	now   func() time.Time
	rand  func(n int) int
	newID func() string

	onDiscard []func(id string)
}

// DraftOption personaliza reloj, aleatoriedad e ids (tests).
type DraftOption func(*DraftUseCase)

// WithClock fija el reloj.
func WithClock(now func() time.Time) DraftOption {
	return func(uc *DraftUseCase) { uc.now = now }
}

// WithRand fija la fuente de números del sufijo del número de documento.
func WithRand(fn func(n int) int) DraftOption {
	return func(uc *DraftUseCase) { uc.rand = fn }
}

// WithIDGenerator fija el generador de ids de borrador.
func WithIDGenerator(fn func() string) DraftOption {
	return func(uc *DraftUseCase) { uc.newID = fn }
}

// OnDiscard registra una función que se llama con el id de cada borrador descartado.
// No es seguro llamarla concurrentemente con Discard; se registra al arrancar.
func (uc *DraftUseCase) OnDiscard(fn func(id string)) {
	uc.onDiscard = append(uc.onDiscard, fn)
}

// NewDraftUseCase construye el caso de uso.
func NewDraftUseCase(repo repository.DraftRepository, opts ...DraftOption) *DraftUseCase {
	uc := &DraftUseCase{
		repo:  repo,
		now:   time.Now,
		rand:  rand.IntN,
		newID: uuid.NewString,
	}
	for _, o := range opts {
		o(uc)
	}
	return uc
}

// Create abre un borrador nuevo del tipo indicado (por defecto cotización).
func (uc *DraftUseCase) Create(ctx context.Context, in dto.CreateDraftRequest) (*dto.DraftResponse, error) {
	kind := entity.DocumentKind(strings.ToLower(strings.TrimSpace(in.Kind)))
	if kind == "" {
		kind = entity.KindQuotation
	}
	doc, err := qdomain.NewDocument(qdomain.NewDocumentParams{
		ID: uc.newID(), Kind: kind, Now: uc.now(), RandIntN: uc.rand,
	})
	if err != nil {
		return nil, err
	}
	snap := doc.Snapshot()
	if err := uc.repo.Save(ctx, &snap); err != nil {
		return nil, fmt.Errorf("guardar borrador: %w", err)
	}
	return ToDraftResponse(snap), nil
}

// Load devuelve el snapshot del borrador; ErrNotFound si no existe o expiró.
func (uc *DraftUseCase) Load(ctx context.Context, id string) (entity.Document, error) {
	snap, err := uc.repo.Get(ctx, id)
	if err != nil {
		return entity.Document{}, fmt.Errorf("obtener borrador: %w", err)
	}
	if snap == nil {
		return entity.Document{}, domain.ErrNotFound
	}
	return *snap, nil
}

// Get devuelve el borrador.
func (uc *DraftUseCase) Get(ctx context.Context, id string) (*dto.DraftResponse, error) {
	snap, err := uc.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToDraftResponse(snap), nil
}

// errNoChange indica a mutate que no hay nada que guardar.
var errNoChange = errors.New("sin cambios")

func (uc *DraftUseCase) mutate(ctx context.Context, id string, fn func(*qdomain.Document) error) (*dto.DraftResponse, error) {
	snap, err := uc.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	doc, err := qdomain.Restore(snap)
	if err != nil {
		return nil, fmt.Errorf("restaurar borrador: %w", err)
	}
	if err := fn(doc); err != nil {
		if errors.Is(err, errNoChange) {
			return ToDraftResponse(snap), nil
		}
		return nil, err
	}
	doc.Touch(uc.now())
	out := doc.Snapshot()
	if err := uc.repo.Save(ctx, &out); err != nil {
		return nil, fmt.Errorf("guardar borrador: %w", err)
	}
	return ToDraftResponse(out), nil
}

// UpdateHeader aplica cambios de cabecera, cliente, notas, términos y tasa de GST.
func (uc *DraftUseCase) UpdateHeader(ctx context.Context, id string, in dto.UpdateHeaderRequest) (*dto.DraftResponse, error) {
	return uc.mutate(ctx, id, func(d *qdomain.Document) error {
		return d.ApplyHeader(qdomain.HeaderUpdate{
			Number:          in.Number,
			Date:            in.Date,
			ValidUntil:      in.ValidUntil,
			CustomerName:    in.CustomerName,
			CustomerAddress: in.CustomerAddress,
			CustomerEmail:   in.CustomerEmail,
			CustomerPhone:   in.CustomerPhone,
			Notes:           in.Notes,
			Terms:           in.Terms,
			GSTRate:         in.GSTRate,
		})
	})
}

// AddRow agrega una fila con valores por defecto.
func (uc *DraftUseCase) AddRow(ctx context.Context, id string) (*dto.DraftResponse, error) {
	return uc.mutate(ctx, id, func(d *qdomain.Document) error {
		d.Table().AddRow()
		return nil
	})
}

// RemoveRow elimina una fila; los números de serie no se reasignan.
func (uc *DraftUseCase) RemoveRow(ctx context.Context, id, rowID string) (*dto.DraftResponse, error) {
	return uc.mutate(ctx, id, func(d *qdomain.Document) error {
		return d.Table().RemoveRow(rowID)
	})
}

// UpdateCell cambia el valor de una celda; cantidad y tarifa recalculan el importe.
func (uc *DraftUseCase) UpdateCell(ctx context.Context, id, rowID string, in dto.UpdateCellRequest) (*dto.DraftResponse, error) {
	if strings.TrimSpace(in.Column) == "" {
		return nil, fmt.Errorf("%w: column requerido", domain.ErrInvalidInput)
	}
	return uc.mutate(ctx, id, func(d *qdomain.Document) error {
		return d.Table().UpdateCell(rowID, in.Column, string(in.Value))
	})
}

// AddColumn agrega una columna personalizada. Una colisión de nombre no es error:
// se informa en el resultado y el borrador queda igual.
func (uc *DraftUseCase) AddColumn(ctx context.Context, id string, in dto.AddColumnRequest) (*dto.AddColumnResponse, error) {
	var (
		result qdomain.AddColumnResult
		col    entity.Column
	)
	draft, err := uc.mutate(ctx, id, func(d *qdomain.Document) error {
		result, col = d.Table().AddColumn(in.Name)
		if result != qdomain.ColumnAdded {
			return errNoChange
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := &dto.AddColumnResponse{Result: string(result), Draft: draft}
	if result == qdomain.ColumnAdded {
		c := toColumnResponse(col)
		out.Column = &c
	}
	return out, nil
}

// RemoveColumn elimina una columna personalizada y sus valores en todas las filas.
func (uc *DraftUseCase) RemoveColumn(ctx context.Context, id, columnID string) (*dto.DraftResponse, error) {
	return uc.mutate(ctx, id, func(d *qdomain.Document) error {
		return d.Table().RemoveColumn(columnID)
	})
}

// Discard descarta el borrador.
func (uc *DraftUseCase) Discard(ctx context.Context, id string) error {
	if _, err := uc.Load(ctx, id); err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("descartar borrador: %w", err)
	}
	for _, fn := range uc.onDiscard {
		fn(id)
	}
	return nil
}

// Convert crea un borrador de factura proforma a partir de una cotización.
// La cotización original se conserva.
func (uc *DraftUseCase) Convert(ctx context.Context, id string) (*dto.DraftResponse, error) {
	snap, err := uc.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	doc, err := qdomain.Restore(snap)
	if err != nil {
		return nil, fmt.Errorf("restaurar borrador: %w", err)
	}
	inv, err := doc.ConvertToInvoice(qdomain.NewDocumentParams{
		ID: uc.newID(), Now: uc.now(), RandIntN: uc.rand,
	})
	if err != nil {
		return nil, err
	}
	out := inv.Snapshot()
	if err := uc.repo.Save(ctx, &out); err != nil {
		return nil, fmt.Errorf("guardar factura proforma: %w", err)
	}
	return ToDraftResponse(out), nil
}
