package repository

import (
	"context"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
)

// ArticleCategoryRepository define el puerto para la asociación artículo-categoría.
type ArticleCategoryRepository interface {
	Create(ctx context.Context, link entity.ArticleCategory) error
	Exists(ctx context.Context, link entity.ArticleCategory) (bool, error)
	CountByCategory(ctx context.Context, categoryID string) (int, error)
	Delete(ctx context.Context, link entity.ArticleCategory) (int64, error)
	DeleteByArticle(ctx context.Context, articleID string) (int64, error)
	DeleteByCategory(ctx context.Context, categoryID string) (int64, error)
}
