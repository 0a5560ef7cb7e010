package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/jhoicas/kardex-api/internal/application/inventory"
	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/ledger"
	"github.com/jhoicas/kardex-api/internal/testutil/memstore"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Identificadores fijos para sembrar el almacén en memoria.
const (
	idA1      = "6f1c2d3e-0000-4000-8000-0000000000a1"
	idA2      = "6f1c2d3e-0000-4000-8000-0000000000a2"
	idA3      = "6f1c2d3e-0000-4000-8000-0000000000a3"
	idC1      = "6f1c2d3e-0000-4000-8000-0000000000c1"
	idC2      = "6f1c2d3e-0000-4000-8000-0000000000c2"
	idMissing = "6f1c2d3e-0000-4000-8000-00000000ffff"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr(d decimal.Decimal) *decimal.Decimal { return &d }

func seedArticle(store *memstore.Store, id, stock string) {
	store.SeedArticle(entity.Article{ID: id, Code: "C-" + id, Name: "Articulo " + id, Unit: "UND", Stock: dec(stock), Opening: dec(stock)})
}

func stockOf(t *testing.T, store *memstore.Store, id string) decimal.Decimal {
	t.Helper()
	a, ok := store.Article(id)
	require.True(t, ok)
	return a.Stock
}

func TestApply_SalidaLuegoEntrada(t *testing.T) {
	store := memstore.New()
	seedArticle(store, idA1, "10")
	uc := inventory.NewRegisterMovementUseCase(store)
	ctx := context.Background()

	res, err := uc.Apply(ctx, inventory.MovementInput{ArticleID: idA1, Action: entity.MovementSalida, Quantity: dec("4"), UnitCost: ptr(dec("99"))})
	require.NoError(t, err)
	assert.True(t, res.StockBefore.Equal(dec("10")))
	assert.True(t, res.StockAfter.Equal(dec("6")))
	assert.True(t, res.Delta.Equal(dec("-4")))
	assert.Equal(t, entity.MovementApplied, res.State)
	assert.Nil(t, res.Movement.UnitCost, "la salida no guarda costo")

	res, err = uc.Apply(ctx, inventory.MovementInput{ArticleID: idA1, Action: entity.MovementEntrada, Quantity: dec("5"), UnitCost: ptr(dec("2"))})
	require.NoError(t, err)
	assert.True(t, res.StockAfter.Equal(dec("11")))
	require.NotNil(t, res.Movement.UnitCost)
	assert.True(t, res.Movement.UnitCost.Equal(dec("2")))

	assert.True(t, stockOf(t, store, idA1).Equal(dec("11")))
	assert.Equal(t, 2, store.MovementCount(idA1))
}

func TestApply_StockInsuficienteNoPersisteNada(t *testing.T) {
	store := memstore.New()
	seedArticle(store, idA1, "3")
	uc := inventory.NewRegisterMovementUseCase(store)

	_, err := uc.Apply(context.Background(), inventory.MovementInput{ArticleID: idA1, Action: entity.MovementSalida, Quantity: dec("5")})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	var se *domain.InsufficientStockError
	require.True(t, errors.As(err, &se))
	assert.True(t, se.Current.Equal(dec("3")))
	assert.True(t, se.Requested.Equal(dec("5")))

	assert.True(t, stockOf(t, store, idA1).Equal(dec("3")))
	assert.Equal(t, 0, store.MovementCount(idA1))
	assert.Equal(t, 1, store.Rollbacks)
}

func TestApply_ValidacionAntesDeLaTransaccion(t *testing.T) {
	store := memstore.New()
	seedArticle(store, idA1, "3")
	uc := inventory.NewRegisterMovementUseCase(store)
	ctx := context.Background()

	cases := []inventory.MovementInput{
		{ArticleID: "", Action: entity.MovementSalida, Quantity: dec("1")},
		{ArticleID: idA1, Action: "TRASLADO", Quantity: dec("1")},
		{ArticleID: idA1, Action: entity.MovementSalida, Quantity: decimal.Zero},
		{ArticleID: idA1, Action: entity.MovementEntrada, Quantity: dec("1")},
	}
	for _, in := range cases {
		_, err := uc.Apply(ctx, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	assert.Zero(t, store.Commits+store.Rollbacks)
	assert.True(t, stockOf(t, store, idA1).Equal(dec("3")))
}

func TestApply_ArticuloInexistente(t *testing.T) {
	store := memstore.New()
	uc := inventory.NewRegisterMovementUseCase(store)

	_, err := uc.Apply(context.Background(), inventory.MovementInput{ArticleID: idMissing, Action: entity.MovementEntrada, Quantity: dec("1"), UnitCost: ptr(dec("1"))})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 0, store.MovementCount(idMissing))
}

func TestApply_CantidadFueraDeEscalaNoTocaElStock(t *testing.T) {
	store := memstore.New()
	seedArticle(store, idA1, "10")
	uc := inventory.NewRegisterMovementUseCase(store)

	_, err := uc.Apply(context.Background(), inventory.MovementInput{ArticleID: idA1, Action: entity.MovementSalida, Quantity: dec("1.005")})
	var ie *domain.InvalidInputError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, "cantidad", ie.Field)

	assert.True(t, stockOf(t, store, idA1).Equal(dec("10")))
	assert.Equal(t, 0, store.MovementCount(idA1))
	assert.Empty(t, store.Calls())
}

func TestApply_IDArticuloMalFormado(t *testing.T) {
	uc := inventory.NewRegisterMovementUseCase(memstore.New())
	_, err := uc.Apply(context.Background(), inventory.MovementInput{ArticleID: "42", Action: entity.MovementSalida, Quantity: dec("1")})
	var ie *domain.InvalidInputError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, "id_articulo", ie.Field)
}

func TestApply_FalloEnCadaPasoRevierte(t *testing.T) {
	boom := &domain.StoreError{Entity: "articulo", Action: "actualizar", Kind: domain.StoreConnection, Err: errors.New("conexión perdida")}
	for _, op := range []string{"tx.Begin", "articles.GetForUpdate", "movements.Create", "articles.UpdateStock", "tx.Commit"} {
		t.Run(op, func(t *testing.T) {
			store := memstore.New()
			seedArticle(store, idA1, "10")
			store.FailOn(op, boom)
			uc := inventory.NewRegisterMovementUseCase(store)

			_, err := uc.Apply(context.Background(), inventory.MovementInput{ArticleID: idA1, Action: entity.MovementSalida, Quantity: dec("4")})
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrStoreFailure)
			assert.Equal(t, domain.StoreConnection, domain.StoreKind(err))

			assert.True(t, stockOf(t, store, idA1).Equal(dec("10")))
			assert.Equal(t, 0, store.MovementCount(idA1))
		})
	}
}

func TestApply_SaldoIgualAlAperturaMasMovimientos(t *testing.T) {
	store := memstore.New()
	seedArticle(store, idA1, "2")
	uc := inventory.NewRegisterMovementUseCase(store)
	ctx := context.Background()

	inputs := []inventory.MovementInput{
		{ArticleID: idA1, Action: entity.MovementEntrada, Quantity: dec("8"), UnitCost: ptr(dec("1.5"))},
		{ArticleID: idA1, Action: entity.MovementSalida, Quantity: dec("3.25")},
		{ArticleID: idA1, Action: entity.MovementSalida, Quantity: dec("50")}, // rechazada
		{ArticleID: idA1, Action: entity.MovementEntrada, Quantity: dec("0.75"), UnitCost: ptr(dec("3"))},
		{ArticleID: idA1, Action: entity.MovementSalida, Quantity: dec("7.5")},
	}
	for _, in := range inputs {
		_, _ = uc.Apply(ctx, in)
	}

	movs, err := store.Repos().Movements.ListChronological(ctx, idA1)
	require.NoError(t, err)
	assert.Len(t, movs, 4)
	a, _ := store.Article(idA1)
	assert.True(t, a.Stock.Equal(ledger.Balance(a.Opening, movs)))
	assert.True(t, a.Stock.IsZero())
}

func TestApply_SalidasConcurrentesNoDejanStockNegativo(t *testing.T) {
	store := memstore.New()
	seedArticle(store, idA1, "10")
	uc := inventory.NewRegisterMovementUseCase(store)

	var wg sync.WaitGroup
	var mu sync.Mutex
	ok := 0
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Apply(context.Background(), inventory.MovementInput{ArticleID: idA1, Action: entity.MovementSalida, Quantity: dec("1")})
			if err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, ok)
	assert.True(t, stockOf(t, store, idA1).IsZero())
	assert.Equal(t, 10, store.MovementCount(idA1))
}

func TestDeleteMovement_RevierteStock(t *testing.T) {
	store := memstore.New()
	seedArticle(store, idA1, "10")
	uc := inventory.NewRegisterMovementUseCase(store)
	ctx := context.Background()

	out, err := uc.Apply(ctx, inventory.MovementInput{ArticleID: idA1, Action: entity.MovementSalida, Quantity: dec("4")})
	require.NoError(t, err)

	res, err := uc.Delete(ctx, out.Movement.ID)
	require.NoError(t, err)
	assert.True(t, res.Before.Equal(dec("6")))
	assert.True(t, res.After.Equal(dec("10")))
	assert.Equal(t, 0, store.MovementCount(idA1))

	_, err = uc.Delete(ctx, out.Movement.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteMovement_EntradaYaConsumida(t *testing.T) {
	store := memstore.New()
	seedArticle(store, idA1, "0")
	uc := inventory.NewRegisterMovementUseCase(store)
	ctx := context.Background()

	in, err := uc.Apply(ctx, inventory.MovementInput{ArticleID: idA1, Action: entity.MovementEntrada, Quantity: dec("5"), UnitCost: ptr(dec("1"))})
	require.NoError(t, err)
	_, err = uc.Apply(ctx, inventory.MovementInput{ArticleID: idA1, Action: entity.MovementSalida, Quantity: dec("4")})
	require.NoError(t, err)

	_, err = uc.Delete(ctx, in.Movement.ID)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, stockOf(t, store, idA1).Equal(dec("1")))
	assert.Equal(t, 2, store.MovementCount(idA1))
}
