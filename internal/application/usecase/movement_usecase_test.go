package usecase_test

import (
	"context"
	"testing"

	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/application/inventory"
	"github.com/jhoicas/kardex-api/internal/application/usecase"
	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/testutil/memstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovementQueries_HistorialPorArticuloYGlobal(t *testing.T) {
	store := memstore.New()
	store.SeedArticle(entity.Article{ID: idA1, Code: "A-001", Name: "Lápiz", Unit: "UND", Stock: dec("10")})
	store.SeedArticle(entity.Article{ID: idA2, Code: "B-001", Name: "Jabón", Unit: "UND", Stock: dec("3")})
	ledgerUC := inventory.NewRegisterMovementUseCase(store)
	ctx := context.Background()

	_, err := ledgerUC.Apply(ctx, inventory.MovementInput{ArticleID: idA1, Action: entity.MovementSalida, Quantity: dec("2")})
	require.NoError(t, err)
	_, err = ledgerUC.Apply(ctx, inventory.MovementInput{ArticleID: idA1, Action: entity.MovementEntrada, Quantity: dec("4"), UnitCost: ptr(dec("100"))})
	require.NoError(t, err)
	_, err = ledgerUC.Apply(ctx, inventory.MovementInput{ArticleID: idA2, Action: entity.MovementSalida, Quantity: dec("1")})
	require.NoError(t, err)

	repos := store.Repos()
	uc := usecase.NewMovementQueryUseCase(repos.Movements, repos.Articles)

	hist, err := uc.ListByArticle(ctx, idA1)
	require.NoError(t, err)
	require.Len(t, hist, 2)
	assert.Equal(t, entity.MovementEntrada, hist[0].Action, "más reciente primero")
	assert.Equal(t, "A-001", hist[0].ArticleCode)
	require.NotNil(t, hist[0].UnitCost)
	assert.Nil(t, hist[1].UnitCost, "una SALIDA no guarda costo")

	all, err := uc.List(ctx, dto.PageRequest{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	all, err = uc.List(ctx, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestMovementQueries_ArticuloInexistente(t *testing.T) {
	store := memstore.New()
	repos := store.Repos()
	uc := usecase.NewMovementQueryUseCase(repos.Movements, repos.Articles)

	_, err := uc.ListByArticle(context.Background(), idMissing)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.ListByArticle(context.Background(), "42")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
