package usecase_test

import (
	"context"
	"testing"

	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/application/usecase"
	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/testutil/memstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCategoryUC(store *memstore.Store) *usecase.CategoryUseCase {
	return usecase.NewCategoryUseCase(store.Repos().Categories, store)
}

func TestCreateCategory_NombreUnico(t *testing.T) {
	store := memstore.New()
	uc := newCategoryUC(store)
	ctx := context.Background()

	out, err := uc.Create(ctx, dto.CategoryRequest{Name: "Papelería", Icon: "pen"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)

	_, err = uc.Create(ctx, dto.CategoryRequest{Name: " Papelería ", Icon: "box"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.Create(ctx, dto.CategoryRequest{Name: "Aseo"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateCategory(t *testing.T) {
	store := memstore.New()
	seedCategories(store)
	uc := newCategoryUC(store)
	ctx := context.Background()

	// conservar su propio nombre no es un duplicado
	out, err := uc.Update(ctx, idC1, dto.CategoryRequest{Name: "Papelería", Icon: "pencil", Description: "útiles"})
	require.NoError(t, err)
	assert.Equal(t, "pencil", out.Icon)

	_, err = uc.Update(ctx, idC1, dto.CategoryRequest{Name: "Aseo", Icon: "pen"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.Update(ctx, idMissing, dto.CategoryRequest{Name: "Otra", Icon: "pen"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListCategories_ConTotales(t *testing.T) {
	store := memstore.New()
	seedCategories(store)
	store.SeedArticle(entity.Article{ID: idA1, Code: "A", Name: "Lápiz", Unit: "UND"})
	store.SeedLink(idC1, idA1)

	list, err := newCategoryUC(store).List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Aseo", list[0].Name)
	require.NotNil(t, list[0].TotalArticles)
	assert.Equal(t, 0, *list[0].TotalArticles)
	assert.Equal(t, 1, *list[1].TotalArticles)
}

func TestAssignYUnassign(t *testing.T) {
	store := memstore.New()
	seedCategories(store)
	store.SeedArticle(entity.Article{ID: idA1, Code: "A", Name: "Lápiz", Unit: "UND"})
	store.SeedArticle(entity.Article{ID: idA2, Code: "A", Name: "Lápiz rojo", Unit: "UND"})
	store.SeedLink(idC1, idA1)
	uc := newCategoryUC(store)
	ctx := context.Background()

	require.NoError(t, uc.Assign(ctx, dto.AssignRequest{CategoryID: idC2, ArticleID: idA1}))
	cats, err := uc.ListByArticle(ctx, idA1)
	require.NoError(t, err)
	assert.Len(t, cats, 2)

	err = uc.Assign(ctx, dto.AssignRequest{CategoryID: idC2, ArticleID: idA1})
	assert.ErrorIs(t, err, domain.ErrConflict)

	// a2 comparte código con a1, que ya está en c1
	err = uc.Assign(ctx, dto.AssignRequest{CategoryID: idC1, ArticleID: idA2})
	assert.ErrorIs(t, err, domain.ErrConflict)

	err = uc.Assign(ctx, dto.AssignRequest{CategoryID: idC1, ArticleID: idMissing})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = uc.Assign(ctx, dto.AssignRequest{CategoryID: idC1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, uc.Unassign(ctx, idC2, idA1))
	assert.ErrorIs(t, uc.Unassign(ctx, idC2, idA1), domain.ErrNotFound)
	assert.Equal(t, 1, store.LinkCount(idA1))
}

func TestAssign_BloqueaLaCategoria(t *testing.T) {
	store := memstore.New()
	seedCategories(store)
	store.SeedArticle(entity.Article{ID: idA1, Code: "A", Name: "Lápiz", Unit: "UND"})

	require.NoError(t, newCategoryUC(store).Assign(context.Background(), dto.AssignRequest{CategoryID: idC1, ArticleID: idA1}))

	calls := store.Calls()
	lock := indexOf(calls, "categories.GetForUpdate")
	require.GreaterOrEqual(t, lock, 0)
	assert.Less(t, lock, indexOf(calls, "articles.ExistsCodeInCategory"))
}

func TestCategoria_IDsMalFormados(t *testing.T) {
	store := memstore.New()
	uc := newCategoryUC(store)
	ctx := context.Background()

	_, err := uc.GetByID(ctx, "7")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = uc.Assign(ctx, dto.AssignRequest{CategoryID: idC1, ArticleID: "42"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.ErrorIs(t, uc.Unassign(ctx, "x", idA1), domain.ErrInvalidInput)
	assert.Empty(t, store.Calls())
}
