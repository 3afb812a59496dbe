package quotation

import (
	"context"
	"fmt"

	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
	"github.com/jhoicas/Cotizador-api/pkg/logger"
)

// MIME types de las exportaciones.
const (
	MimePDF  = "application/pdf"
	MimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ExportUseCase genera PDF y XLSX de un borrador y registra las cotizaciones
// exportadas en el listado.
type ExportUseCase struct {
	drafts     *DraftUseCase
	renderer   DocumentRenderer
	exporter   SpreadsheetExporter
	quotations repository.QuotationRepository
	log        *logger.Logger
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(
	drafts *DraftUseCase,
	renderer DocumentRenderer,
	exporter SpreadsheetExporter,
	quotations repository.QuotationRepository,
	log *logger.Logger,
) *ExportUseCase {
	return &ExportUseCase{
		drafts:     drafts,
		renderer:   renderer,
		exporter:   exporter,
		quotations: quotations,
		log:        log,
	}
}

// PDF genera la vista previa; el nombre de archivo es "<número>.pdf".
func (uc *ExportUseCase) PDF(ctx context.Context, id string) ([]byte, string, error) {
	doc, err := uc.drafts.Load(ctx, id)
	if err != nil {
		return nil, "", err
	}
	out, err := uc.renderer.Render(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: %w", err)
	}
	uc.record(ctx, doc, entity.QuotationStatusDraft)
	return out, doc.Number + ".pdf", nil
}

// XLSX exporta la tabla de ítems; el nombre de archivo es "<número>.xlsx".
func (uc *ExportUseCase) XLSX(ctx context.Context, id string) ([]byte, string, error) {
	doc, err := uc.drafts.Load(ctx, id)
	if err != nil {
		return nil, "", err
	}
	out, err := uc.exporter.Export(doc)
	if err != nil {
		return nil, "", fmt.Errorf("xlsx: %w", err)
	}
	return out, doc.Number + ".xlsx", nil
}

// MarkSent marca la cotización del borrador como enviada (subida a Drive).
func (uc *ExportUseCase) MarkSent(ctx context.Context, id string) {
	doc, err := uc.drafts.Load(ctx, id)
	if err != nil {
		uc.log.Warn().Err(err).Str("draft_id", id).Msg("marcar cotización enviada")
		return
	}
	uc.record(ctx, doc, entity.QuotationStatusSent)
}

// record actualiza el listado; un fallo no impide la exportación.
func (uc *ExportUseCase) record(ctx context.Context, doc entity.Document, status string) {
	if uc.quotations == nil || doc.Kind != entity.KindQuotation {
		return
	}
	if err := uc.quotations.Upsert(ctx, SummaryFromDocument(doc, status)); err != nil {
		uc.log.Warn().Err(err).Str("number", doc.Number).Msg("registrar cotización en el listado")
	}
}
