package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

const entityCategory = "categoria"

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL (usable con pool o tx).
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create persiste una categoría.
func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO categories (id, name, icon, description, created_at) VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.Name, c.Icon, c.Description, c.CreatedAt,
	)
	return wrapErr(entityCategory, "crear", err)
}

func (r *CategoryRepo) get(ctx context.Context, query, action, id string) (*entity.Category, error) {
	var c entity.Category
	err := r.q.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Icon, &c.Description, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr(entityCategory, action, err)
	}
	return &c, nil
}

// GetByID obtiene una categoría por ID.
func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	return r.get(ctx, `SELECT id, name, icon, description, created_at FROM categories WHERE id = $1`, "obtener", id)
}

// GetForUpdate obtiene la categoría y bloquea la fila; las inserciones en article_categories
// que la referencian esperan al fin de la transacción.
func (r *CategoryRepo) GetForUpdate(ctx context.Context, id string) (*entity.Category, error) {
	return r.get(ctx, `SELECT id, name, icon, description, created_at FROM categories WHERE id = $1 FOR UPDATE`, "bloquear", id)
}

// ExistsName indica si otra categoría ya usa el nombre.
func (r *CategoryRepo) ExistsName(ctx context.Context, name, excludeID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM categories WHERE name = $1 AND ($2 = '' OR id::text <> $2))`
	var exists bool
	if err := r.q.QueryRow(ctx, query, name, excludeID).Scan(&exists); err != nil {
		return false, wrapErr(entityCategory, "verificar_nombre", err)
	}
	return exists, nil
}

// ListWithCounts lista las categorías con el total de artículos asociados.
func (r *CategoryRepo) ListWithCounts(ctx context.Context) ([]entity.CategoryWithCount, error) {
	query := `
		SELECT c.id, c.name, c.icon, c.description, c.created_at, COUNT(ac.article_id)
		FROM categories c
		LEFT JOIN article_categories ac ON ac.category_id = c.id
		GROUP BY c.id
		ORDER BY c.name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, wrapErr(entityCategory, "listar", err)
	}
	defer rows.Close()
	var out []entity.CategoryWithCount
	for rows.Next() {
		var c entity.CategoryWithCount
		if err := rows.Scan(&c.ID, &c.Name, &c.Icon, &c.Description, &c.CreatedAt, &c.TotalArticles); err != nil {
			return nil, wrapErr(entityCategory, "listar", err)
		}
		out = append(out, c)
	}
	return out, wrapErr(entityCategory, "listar", rows.Err())
}

// ListByArticle lista las categorías a las que pertenece el artículo.
func (r *CategoryRepo) ListByArticle(ctx context.Context, articleID string) ([]*entity.Category, error) {
	query := `
		SELECT c.id, c.name, c.icon, c.description, c.created_at
		FROM categories c
		JOIN article_categories ac ON ac.category_id = c.id
		WHERE ac.article_id = $1
		ORDER BY c.name`
	rows, err := r.q.Query(ctx, query, articleID)
	if err != nil {
		return nil, wrapErr(entityCategory, "listar_por_articulo", err)
	}
	defer rows.Close()
	var out []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Icon, &c.Description, &c.CreatedAt); err != nil {
			return nil, wrapErr(entityCategory, "listar_por_articulo", err)
		}
		out = append(out, &c)
	}
	return out, wrapErr(entityCategory, "listar_por_articulo", rows.Err())
}

// Update modifica nombre, icono y descripción.
func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) (int64, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE categories SET name = $2, icon = $3, description = $4 WHERE id = $1`,
		c.ID, c.Name, c.Icon, c.Description,
	)
	if err != nil {
		return 0, wrapErr(entityCategory, "actualizar", err)
	}
	return cmd.RowsAffected(), nil
}

// Delete elimina la categoría.
func (r *CategoryRepo) Delete(ctx context.Context, id string) (int64, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return 0, wrapErr(entityCategory, "eliminar", err)
	}
	return cmd.RowsAffected(), nil
}
