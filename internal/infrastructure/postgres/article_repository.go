package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.ArticleRepository = (*ArticleRepo)(nil)

const entityArticle = "articulo"

const articleColumns = `a.id, a.code, a.name, a.unit, a.detail, a.expiration, a.other, a.stock, a.opening_stock, a.created_at, a.updated_at`

// ArticleRepo implementación del puerto ArticleRepository sobre PostgreSQL (usable con pool o tx).
type ArticleRepo struct {
	q Querier
}

// NewArticleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewArticleRepository(q Querier) *ArticleRepo {
	return &ArticleRepo{q: q}
}

func scanArticle(row pgx.Row) (*entity.Article, error) {
	var a entity.Article
	err := row.Scan(&a.ID, &a.Code, &a.Name, &a.Unit, &a.Detail, &a.Expiration, &a.Other,
		&a.Stock, &a.Opening, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create persiste un nuevo artículo.
func (r *ArticleRepo) Create(ctx context.Context, a *entity.Article) error {
	query := `
		INSERT INTO articles (id, code, name, unit, detail, expiration, other, stock, opening_stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.Code, a.Name, a.Unit, a.Detail, a.Expiration, a.Other,
		a.Stock, a.Opening, a.CreatedAt, a.UpdatedAt,
	)
	return wrapErr(entityArticle, "crear", err)
}

func (r *ArticleRepo) get(ctx context.Context, query, action, id string) (*entity.Article, error) {
	a, err := scanArticle(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr(entityArticle, action, err)
	}
	return a, nil
}

// GetByID obtiene un artículo por ID.
func (r *ArticleRepo) GetByID(ctx context.Context, id string) (*entity.Article, error) {
	return r.get(ctx, `SELECT `+articleColumns+` FROM articles a WHERE a.id = $1`, "obtener", id)
}

// GetForUpdate obtiene el artículo y bloquea la fila hasta el fin de la transacción.
func (r *ArticleRepo) GetForUpdate(ctx context.Context, id string) (*entity.Article, error) {
	return r.get(ctx, `SELECT `+articleColumns+` FROM articles a WHERE a.id = $1 FOR UPDATE`, "bloquear", id)
}

func (r *ArticleRepo) list(ctx context.Context, action, query string, args ...any) ([]*entity.Article, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr(entityArticle, action, err)
	}
	defer rows.Close()
	var list []*entity.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, wrapErr(entityArticle, action, err)
		}
		list = append(list, a)
	}
	return list, wrapErr(entityArticle, action, rows.Err())
}

// List lista todos los artículos por nombre.
func (r *ArticleRepo) List(ctx context.Context) ([]*entity.Article, error) {
	return r.list(ctx, "listar", `SELECT `+articleColumns+` FROM articles a ORDER BY a.name, a.code`)
}

// ListByCategory lista los artículos asociados a la categoría.
func (r *ArticleRepo) ListByCategory(ctx context.Context, categoryID string) ([]*entity.Article, error) {
	query := `
		SELECT ` + articleColumns + `
		FROM articles a
		JOIN article_categories ac ON ac.article_id = a.id
		WHERE ac.category_id = $1
		ORDER BY a.name, a.code`
	return r.list(ctx, "listar_por_categoria", query, categoryID)
}

// ExistsCodeInCategory indica si ya hay un artículo con ese código en la categoría.
func (r *ArticleRepo) ExistsCodeInCategory(ctx context.Context, code, categoryID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM articles a
			JOIN article_categories ac ON ac.article_id = a.id
			WHERE a.code = $1 AND ac.category_id = $2
		)`
	var exists bool
	if err := r.q.QueryRow(ctx, query, code, categoryID).Scan(&exists); err != nil {
		return false, wrapErr(entityArticle, "verificar_codigo", err)
	}
	return exists, nil
}

// FindByName devuelve los artículos con ese nombre junto a cada categoría donde están.
func (r *ArticleRepo) FindByName(ctx context.Context, name string) ([]entity.ArticleCategoryRef, error) {
	query := `
		SELECT a.id, a.code, a.name, c.id, c.name, c.icon
		FROM articles a
		JOIN article_categories ac ON ac.article_id = a.id
		JOIN categories c ON c.id = ac.category_id
		WHERE a.name = $1
		ORDER BY c.name, a.code`
	rows, err := r.q.Query(ctx, query, name)
	if err != nil {
		return nil, wrapErr(entityArticle, "buscar_por_nombre", err)
	}
	defer rows.Close()
	var out []entity.ArticleCategoryRef
	for rows.Next() {
		var ref entity.ArticleCategoryRef
		if err := rows.Scan(&ref.ArticleID, &ref.Code, &ref.Name, &ref.CategoryID, &ref.CategoryName, &ref.CategoryIcon); err != nil {
			return nil, wrapErr(entityArticle, "buscar_por_nombre", err)
		}
		out = append(out, ref)
	}
	return out, wrapErr(entityArticle, "buscar_por_nombre", rows.Err())
}

// Update modifica los campos descriptivos; el stock no se toca.
func (r *ArticleRepo) Update(ctx context.Context, a *entity.Article) (int64, error) {
	query := `
		UPDATE articles SET code = $2, name = $3, unit = $4, detail = $5, expiration = $6, other = $7, updated_at = $8
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, a.ID, a.Code, a.Name, a.Unit, a.Detail, a.Expiration, a.Other, a.UpdatedAt)
	if err != nil {
		return 0, wrapErr(entityArticle, "actualizar", err)
	}
	return cmd.RowsAffected(), nil
}

// UpdateStock fija el saldo del artículo.
func (r *ArticleRepo) UpdateStock(ctx context.Context, id string, stock decimal.Decimal) (int64, error) {
	cmd, err := r.q.Exec(ctx, `UPDATE articles SET stock = $2, updated_at = now() WHERE id = $1`, id, stock)
	if err != nil {
		return 0, wrapErr(entityArticle, "actualizar_stock", err)
	}
	return cmd.RowsAffected(), nil
}

// Delete elimina el artículo. Falla con foreign_key_violation si quedan movimientos o asociaciones.
func (r *ArticleRepo) Delete(ctx context.Context, id string) (int64, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return 0, wrapErr(entityArticle, "eliminar", err)
	}
	return cmd.RowsAffected(), nil
}
