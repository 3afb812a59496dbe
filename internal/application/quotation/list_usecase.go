package quotation

import (
	"context"
	"fmt"

	"github.com/jhoicas/Cotizador-api/internal/application/dto"
	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
)

// ListUseCase listado de cotizaciones con búsqueda por número o cliente.
type ListUseCase struct {
	repo repository.QuotationRepository
}

// NewListUseCase construye el caso de uso.
func NewListUseCase(repo repository.QuotationRepository) *ListUseCase {
	return &ListUseCase{repo: repo}
}

// List devuelve la página solicitada; el estado se devuelve tal cual está guardado.
func (uc *ListUseCase) List(ctx context.Context, in dto.PageRequest) (*dto.QuotationListResponse, error) {
	in.DefaultPage()
	list, err := uc.repo.List(ctx, in.Search, in.Limit, in.Offset)
	if err != nil {
		return nil, fmt.Errorf("listar cotizaciones: %w", err)
	}
	items := make([]dto.QuotationSummaryResponse, 0, len(list))
	for _, s := range list {
		items = append(items, toSummaryResponse(s))
	}
	return &dto.QuotationListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Count: len(items)},
	}, nil
}
