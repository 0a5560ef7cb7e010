package postgres

import (
	"context"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

var _ repository.ArticleCategoryRepository = (*ArticleCategoryRepo)(nil)

const entityLink = "categoria_articulo"

// ArticleCategoryRepo persistencia de la tabla de asociación article_categories.
type ArticleCategoryRepo struct {
	q Querier
}

// NewArticleCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewArticleCategoryRepository(q Querier) *ArticleCategoryRepo {
	return &ArticleCategoryRepo{q: q}
}

// Create inserta el par; la PK (category_id, article_id) rechaza duplicados.
func (r *ArticleCategoryRepo) Create(ctx context.Context, link entity.ArticleCategory) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO article_categories (category_id, article_id) VALUES ($1, $2)`,
		link.CategoryID, link.ArticleID,
	)
	return wrapErr(entityLink, "crear", err)
}

// Exists indica si el par ya existe.
func (r *ArticleCategoryRepo) Exists(ctx context.Context, link entity.ArticleCategory) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM article_categories WHERE category_id = $1 AND article_id = $2)`,
		link.CategoryID, link.ArticleID,
	).Scan(&exists)
	if err != nil {
		return false, wrapErr(entityLink, "verificar", err)
	}
	return exists, nil
}

// CountByCategory cuenta los artículos asociados a la categoría.
func (r *ArticleCategoryRepo) CountByCategory(ctx context.Context, categoryID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM article_categories WHERE category_id = $1`, categoryID).Scan(&n); err != nil {
		return 0, wrapErr(entityLink, "contar", err)
	}
	return n, nil
}

// Delete elimina un par.
func (r *ArticleCategoryRepo) Delete(ctx context.Context, link entity.ArticleCategory) (int64, error) {
	cmd, err := r.q.Exec(ctx,
		`DELETE FROM article_categories WHERE category_id = $1 AND article_id = $2`,
		link.CategoryID, link.ArticleID,
	)
	if err != nil {
		return 0, wrapErr(entityLink, "eliminar", err)
	}
	return cmd.RowsAffected(), nil
}

// DeleteByArticle elimina todas las asociaciones del artículo.
func (r *ArticleCategoryRepo) DeleteByArticle(ctx context.Context, articleID string) (int64, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM article_categories WHERE article_id = $1`, articleID)
	if err != nil {
		return 0, wrapErr(entityLink, "eliminar_por_articulo", err)
	}
	return cmd.RowsAffected(), nil
}

// DeleteByCategory elimina todas las asociaciones de la categoría.
func (r *ArticleCategoryRepo) DeleteByCategory(ctx context.Context, categoryID string) (int64, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM article_categories WHERE category_id = $1`, categoryID)
	if err != nil {
		return 0, wrapErr(entityLink, "eliminar_por_categoria", err)
	}
	return cmd.RowsAffected(), nil
}
