package repository

import (
	"context"

	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
)

// DraftRepository almacén volátil de documentos en edición.
// Get devuelve (nil, nil) si el borrador no existe o expiró.
type DraftRepository interface {
	Save(ctx context.Context, doc *entity.Document) error
	Get(ctx context.Context, id string) (*entity.Document, error)
	Delete(ctx context.Context, id string) error
}
