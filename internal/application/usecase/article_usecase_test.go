package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/application/usecase"
	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
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

func newArticleUC(store *memstore.Store) *usecase.ArticleUseCase {
	return usecase.NewArticleUseCase(store.Repos().Articles, store)
}

func seedCategories(store *memstore.Store) {
	store.SeedCategory(entity.Category{ID: idC1, Name: "Papelería", Icon: "pen"})
	store.SeedCategory(entity.Category{ID: idC2, Name: "Aseo", Icon: "broom"})
}

func TestCreateArticle_CreaArticuloYAsociacion(t *testing.T) {
	store := memstore.New()
	seedCategories(store)
	uc := newArticleUC(store)

	out, err := uc.Create(context.Background(), dto.CreateArticleRequest{
		Code: " A-001 ", Name: "Lápiz", Unit: "UND", Stock: ptr(dec("12")), CategoryID: idC1,
		Expiration: "2027-01-31",
	})
	require.NoError(t, err)
	assert.Equal(t, "A-001", out.Code)

	a, ok := store.Article(out.ID)
	require.True(t, ok)
	assert.True(t, a.Stock.Equal(dec("12")))
	assert.True(t, a.Opening.Equal(dec("12")))
	require.NotNil(t, a.Expiration)
	assert.Equal(t, "2027-01-31", a.Expiration.Format("2006-01-02"))
	assert.Equal(t, 1, store.LinkCount(out.ID))
}

func TestCreateArticle_CodigoDuplicadoEnLaMismaCategoria(t *testing.T) {
	store := memstore.New()
	seedCategories(store)
	uc := newArticleUC(store)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateArticleRequest{Code: "A-001", Name: "Lápiz", Unit: "UND", CategoryID: idC1})
	require.NoError(t, err)

	_, err = uc.Create(ctx, dto.CreateArticleRequest{Code: "A-001", Name: "Lápiz rojo", Unit: "UND", CategoryID: idC1})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)

	// mismo código en otra categoría sí se permite
	out, err := uc.Create(ctx, dto.CreateArticleRequest{Code: "A-001", Name: "Lápiz", Unit: "UND", CategoryID: idC2})
	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestCreateArticle_Validaciones(t *testing.T) {
	store := memstore.New()
	seedCategories(store)
	uc := newArticleUC(store)
	ctx := context.Background()

	cases := []struct {
		name  string
		in    dto.CreateArticleRequest
		field string
	}{
		{"sin codigo", dto.CreateArticleRequest{Name: "x", Unit: "u", CategoryID: idC1}, "codigo"},
		{"nombre en blanco", dto.CreateArticleRequest{Code: "x", Name: "   ", Unit: "u", CategoryID: idC1}, "nombre"},
		{"sin unidad", dto.CreateArticleRequest{Code: "x", Name: "x", CategoryID: idC1}, "unidad"},
		{"categoria mal formada", dto.CreateArticleRequest{Code: "x", Name: "x", Unit: "u", CategoryID: "7"}, "id_categoria"},
		{"stock con tres decimales", dto.CreateArticleRequest{Code: "x", Name: "x", Unit: "u", CategoryID: idC1, Stock: ptr(dec("8.995"))}, "stock"},
		{"stock negativo", dto.CreateArticleRequest{Code: "x", Name: "x", Unit: "u", CategoryID: idC1, Stock: ptr(dec("-1"))}, "stock"},
		{"fecha invalida", dto.CreateArticleRequest{Code: "x", Name: "x", Unit: "u", CategoryID: idC1, Expiration: "31/01/2027"}, "fecha_vencimiento"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(ctx, tc.in)
			var ie *domain.InvalidInputError
			require.True(t, errors.As(err, &ie))
			assert.Equal(t, tc.field, ie.Field)
		})
	}
	assert.Zero(t, store.Commits+store.Rollbacks)
}

func TestCreateArticle_SinCategoria(t *testing.T) {
	store := memstore.New()
	uc := newArticleUC(store)
	ctx := context.Background()

	out, err := uc.Create(ctx, dto.CreateArticleRequest{Code: "A-1", Name: "Lápiz", Unit: "UND"})
	require.NoError(t, err)
	a, ok := store.Article(out.ID)
	require.True(t, ok)
	assert.True(t, a.Stock.IsZero())
	assert.Equal(t, 0, store.LinkCount(out.ID))
	assert.NotContains(t, store.Calls(), "categories.GetForUpdate")

	// sin categoría no hay ámbito para el código duplicado
	_, err = uc.Create(ctx, dto.CreateArticleRequest{Code: "A-1", Name: "Lápiz azul", Unit: "UND"})
	require.NoError(t, err)
}

func TestCreateArticle_BloqueaLaCategoria(t *testing.T) {
	store := memstore.New()
	seedCategories(store)

	_, err := newArticleUC(store).Create(context.Background(), dto.CreateArticleRequest{Code: "A-1", Name: "Lápiz", Unit: "UND", CategoryID: idC1})
	require.NoError(t, err)

	calls := store.Calls()
	lock := indexOf(calls, "categories.GetForUpdate")
	require.GreaterOrEqual(t, lock, 0)
	assert.Less(t, lock, indexOf(calls, "articles.ExistsCodeInCategory"))
}

func indexOf(list []string, op string) int {
	for i, v := range list {
		if v == op {
			return i
		}
	}
	return -1
}

func TestGetArticle_IDMalFormado(t *testing.T) {
	_, err := newArticleUC(memstore.New()).GetByID(context.Background(), "42")
	var ie *domain.InvalidInputError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, "id", ie.Field)
}

func TestCreateArticle_CategoriaInexistente(t *testing.T) {
	store := memstore.New()
	_, err := newArticleUC(store).Create(context.Background(), dto.CreateArticleRequest{Code: "A", Name: "B", Unit: "C", CategoryID: idMissing})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateArticle_FalloEnAsociacionRevierteArticulo(t *testing.T) {
	store := memstore.New()
	seedCategories(store)
	store.FailOn("links.Create", &domain.StoreError{Entity: "categoria_articulo", Action: "crear", Kind: domain.StoreTimeout, Err: errors.New("timeout")})
	uc := newArticleUC(store)

	_, err := uc.Create(context.Background(), dto.CreateArticleRequest{Code: "A", Name: "B", Unit: "C", CategoryID: idC1})
	require.Error(t, err)
	assert.Equal(t, domain.StoreTimeout, domain.StoreKind(err))

	list, err := uc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestUpdateStock(t *testing.T) {
	store := memstore.New()
	store.SeedArticle(entity.Article{ID: idA1, Code: "A", Name: "B", Unit: "C", Stock: dec("5")})
	uc := newArticleUC(store)
	ctx := context.Background()

	out, err := uc.UpdateStock(ctx, idA1, ptr(dec("9.5")))
	require.NoError(t, err)
	assert.True(t, out.Stock.Equal(dec("9.5")))

	_, err = uc.UpdateStock(ctx, idA1, ptr(dec("-1")))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.UpdateStock(ctx, idA1, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.UpdateStock(ctx, idA1, ptr(dec("9.505")))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	a, _ := store.Article(idA1)
	assert.True(t, a.Stock.Equal(dec("9.5")))

	_, err = uc.UpdateStock(ctx, idMissing, ptr(dec("1")))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateArticle_NoTocaElStock(t *testing.T) {
	store := memstore.New()
	store.SeedArticle(entity.Article{ID: idA1, Code: "A", Name: "B", Unit: "C", Stock: dec("5")})
	uc := newArticleUC(store)

	out, err := uc.Update(context.Background(), idA1, dto.UpdateArticleRequest{Code: "A2", Name: "Borrador", Unit: "UND", Detail: "miga"})
	require.NoError(t, err)
	assert.Equal(t, "Borrador", out.Name)

	a, _ := store.Article(idA1)
	assert.Equal(t, "A2", a.Code)
	assert.True(t, a.Stock.Equal(dec("5")))

	_, err = uc.Update(context.Background(), idMissing, dto.UpdateArticleRequest{Code: "A", Name: "B", Unit: "C"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFindDuplicatesByName(t *testing.T) {
	store := memstore.New()
	seedCategories(store)
	uc := newArticleUC(store)
	ctx := context.Background()

	// "Lápiz" con la tilde descompuesta (a + U+0301) debe encontrar el mismo nombre
	_, err := uc.Create(ctx, dto.CreateArticleRequest{Code: "A-1", Name: "Lápiz", Unit: "UND", CategoryID: idC1})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateArticleRequest{Code: "A-9", Name: "La\u0301piz", Unit: "UND", CategoryID: idC2})
	require.NoError(t, err)

	out, err := uc.FindDuplicatesByName(ctx, "Lápiz")
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Aseo", out[0].CategoryName)
	assert.Equal(t, "Papelería", out[1].CategoryName)
}
