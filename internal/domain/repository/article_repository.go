package repository

import (
	"context"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ArticleRepository define el puerto de persistencia para Article (usable con pool o tx).
// Los métodos Get devuelven (nil, nil) si la fila no existe.
type ArticleRepository interface {
	Create(ctx context.Context, article *entity.Article) error
	GetByID(ctx context.Context, id string) (*entity.Article, error)
	// GetForUpdate bloquea la fila del artículo (SELECT FOR UPDATE) hasta el fin de la tx.
	GetForUpdate(ctx context.Context, id string) (*entity.Article, error)
	List(ctx context.Context) ([]*entity.Article, error)
	ListByCategory(ctx context.Context, categoryID string) ([]*entity.Article, error)
	// ExistsCodeInCategory verifica el duplicado de código acotado a la categoría.
	ExistsCodeInCategory(ctx context.Context, code, categoryID string) (bool, error)
	FindByName(ctx context.Context, name string) ([]entity.ArticleCategoryRef, error)
	// Update modifica los campos descriptivos (no el stock). Devuelve las filas afectadas.
	Update(ctx context.Context, article *entity.Article) (int64, error)
	UpdateStock(ctx context.Context, id string, stock decimal.Decimal) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}
