package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/infrastructure/memory"
)

func TestDraftRepo_GuardaCopias(t *testing.T) {
	repo := memory.NewDraftRepository(0)
	ctx := context.Background()

	doc := &entity.Document{
		ID:    "d1",
		Kind:  entity.KindQuotation,
		Items: []entity.ItemRow{{ID: "1", Description: "A", Amount: decimal.NewFromInt(5)}},
	}
	require.NoError(t, repo.Save(ctx, doc))

	doc.Items[0].Description = "mutado"

	got, err := repo.Get(ctx, "d1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "A", got.Items[0].Description, "el almacén no comparte memoria con el llamador")

	got.Items[0].Description = "otra"
	again, _ := repo.Get(ctx, "d1")
	assert.Equal(t, "A", again.Items[0].Description)
}

func TestDraftRepo_InexistenteYDelete(t *testing.T) {
	repo := memory.NewDraftRepository(0)
	ctx := context.Background()

	got, err := repo.Get(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, repo.Save(ctx, &entity.Document{ID: "d1"}))
	require.NoError(t, repo.Delete(ctx, "d1"))
	got, _ = repo.Get(ctx, "d1")
	assert.Nil(t, got)
}

func TestDraftRepo_Expira(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	repo := memory.NewDraftRepository(time.Hour).WithClock(func() time.Time { return now })
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &entity.Document{ID: "d1"}))

	now = now.Add(59 * time.Minute)
	got, _ := repo.Get(ctx, "d1")
	assert.NotNil(t, got)

	now = now.Add(2 * time.Minute)
	got, _ = repo.Get(ctx, "d1")
	assert.Nil(t, got)
}

func TestDraftRepo_SaveEliminaExpiradosNoLeidos(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	repo := memory.NewDraftRepository(time.Hour).WithClock(func() time.Time { return now })
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &entity.Document{ID: "viejo"}))
	require.NoError(t, repo.Save(ctx, &entity.Document{ID: "vigente"}))
	require.Equal(t, 2, repo.Len())

	now = now.Add(30 * time.Minute)
	require.NoError(t, repo.Save(ctx, &entity.Document{ID: "vigente"}))

	now = now.Add(31 * time.Minute)
	require.NoError(t, repo.Save(ctx, &entity.Document{ID: "nuevo"}))
	assert.Equal(t, 2, repo.Len())

	got, _ := repo.Get(ctx, "vigente")
	assert.NotNil(t, got)
	got, _ = repo.Get(ctx, "nuevo")
	assert.NotNil(t, got)
}

func TestDraftRepo_SinTTLNoElimina(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	repo := memory.NewDraftRepository(0).WithClock(func() time.Time { return now })
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &entity.Document{ID: "d1"}))
	now = now.Add(1000 * time.Hour)
	require.NoError(t, repo.Save(ctx, &entity.Document{ID: "d2"}))
	assert.Equal(t, 2, repo.Len())
}

func TestQuotationRepo_Busqueda(t *testing.T) {
	repo := memory.NewSampleQuotationRepository()
	ctx := context.Background()

	all, err := repo.List(ctx, "", 0, 0)
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, "QT-2023-1005", all[0].Number, "más reciente primero")

	byCustomer, _ := repo.List(ctx, "  sunrise ", 0, 0)
	require.Len(t, byCustomer, 1)
	assert.Equal(t, "QT-2023-1005", byCustomer[0].Number)

	byNumber, _ := repo.List(ctx, "qt-2023-100", 2, 1)
	require.Len(t, byNumber, 2)
	assert.Equal(t, "QT-2023-1004", byNumber[0].Number)

	none, _ := repo.List(ctx, "zzz", 0, 0)
	assert.Empty(t, none)
}

func TestQuotationRepo_Upsert(t *testing.T) {
	repo := memory.NewSampleQuotationRepository()
	ctx := context.Background()

	nuevo := &entity.QuotationSummary{
		Number: "QT-2024-1234", CustomerName: "Nueva SA",
		Date: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), Total: decimal.NewFromInt(885),
		Status: entity.QuotationStatusDraft,
	}
	require.NoError(t, repo.Upsert(ctx, nuevo))

	all, _ := repo.List(ctx, "", 0, 0)
	require.Len(t, all, 6)
	assert.Equal(t, "QT-2024-1234", all[0].Number)

	nuevo.Status = entity.QuotationStatusSent
	require.NoError(t, repo.Upsert(ctx, nuevo))
	got, _ := repo.List(ctx, "QT-2024-1234", 0, 0)
	require.Len(t, got, 1)
	assert.Equal(t, entity.QuotationStatusSent, got[0].Status)

	nuevo.Status = entity.QuotationStatusDraft
	nuevo.Total = decimal.NewFromInt(900)
	require.NoError(t, repo.Upsert(ctx, nuevo))
	got, _ = repo.List(ctx, "QT-2024-1234", 0, 0)
	assert.Equal(t, entity.QuotationStatusSent, got[0].Status, "el estado no retrocede")
	assert.True(t, got[0].Total.Equal(decimal.NewFromInt(900)))
}
