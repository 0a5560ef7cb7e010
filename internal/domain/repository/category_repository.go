package repository

import (
	"context"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Category, error)
	// ExistsName verifica unicidad global del nombre; excludeID vacío no excluye ninguna.
	ExistsName(ctx context.Context, name, excludeID string) (bool, error)
	ListWithCounts(ctx context.Context) ([]entity.CategoryWithCount, error)
	ListByArticle(ctx context.Context, articleID string) ([]*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}
