package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const entityMovement = "movimiento"

// MovementRepo implementación sobre PostgreSQL (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento. unit_cost va NULL en las salidas.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	query := `
		INSERT INTO movements (id, article_id, action, date, doc, detail, quantity, unit_cost)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ArticleID, m.Action, m.Date, m.Doc, m.Detail, m.Quantity, m.UnitCost,
	)
	return wrapErr(entityMovement, "crear", err)
}

// GetByID obtiene un movimiento por ID.
func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	query := `
		SELECT id, article_id, action, date, doc, detail, quantity, unit_cost
		FROM movements WHERE id = $1`
	var m entity.Movement
	err := r.q.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.ArticleID, &m.Action, &m.Date, &m.Doc, &m.Detail, &m.Quantity, &m.UnitCost,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr(entityMovement, "obtener", err)
	}
	return &m, nil
}

const movementWithArticleQuery = `
	SELECT m.id, m.article_id, m.action, m.date, m.doc, m.detail, m.quantity, m.unit_cost, a.code, a.name
	FROM movements m
	JOIN articles a ON a.id = m.article_id`

func (r *MovementRepo) listWithArticle(ctx context.Context, action, query string, args ...any) ([]entity.MovementWithArticle, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr(entityMovement, action, err)
	}
	defer rows.Close()
	var out []entity.MovementWithArticle
	for rows.Next() {
		var m entity.MovementWithArticle
		if err := rows.Scan(&m.ID, &m.ArticleID, &m.Action, &m.Date, &m.Doc, &m.Detail,
			&m.Quantity, &m.UnitCost, &m.ArticleCode, &m.ArticleName); err != nil {
			return nil, wrapErr(entityMovement, action, err)
		}
		out = append(out, m)
	}
	return out, wrapErr(entityMovement, action, rows.Err())
}

// ListByArticle historial del artículo, más reciente primero.
func (r *MovementRepo) ListByArticle(ctx context.Context, articleID string) ([]entity.MovementWithArticle, error) {
	return r.listWithArticle(ctx, "listar_por_articulo",
		movementWithArticleQuery+` WHERE m.article_id = $1 ORDER BY m.date DESC, m.seq DESC`, articleID)
}

// List historial global paginado, más reciente primero.
func (r *MovementRepo) List(ctx context.Context, limit, offset int) ([]entity.MovementWithArticle, error) {
	return r.listWithArticle(ctx, "listar",
		movementWithArticleQuery+` ORDER BY m.date DESC, m.seq DESC LIMIT $1 OFFSET $2`, limit, offset)
}

// ListChronological movimientos del artículo en el orden en que se aplicaron.
func (r *MovementRepo) ListChronological(ctx context.Context, articleID string) ([]entity.Movement, error) {
	query := `
		SELECT id, article_id, action, date, doc, detail, quantity, unit_cost
		FROM movements WHERE article_id = $1 ORDER BY seq`
	return scanMovements(ctx, r.q, "listar_cronologico", query, articleID)
}

func scanMovements(ctx context.Context, q Querier, action, query string, args ...any) ([]entity.Movement, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr(entityMovement, action, err)
	}
	defer rows.Close()
	var out []entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(&m.ID, &m.ArticleID, &m.Action, &m.Date, &m.Doc, &m.Detail, &m.Quantity, &m.UnitCost); err != nil {
			return nil, wrapErr(entityMovement, action, err)
		}
		out = append(out, m)
	}
	return out, wrapErr(entityMovement, action, rows.Err())
}

// Delete elimina un movimiento.
func (r *MovementRepo) Delete(ctx context.Context, id string) (int64, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM movements WHERE id = $1`, id)
	if err != nil {
		return 0, wrapErr(entityMovement, "eliminar", err)
	}
	return cmd.RowsAffected(), nil
}

// DeleteByArticle elimina todos los movimientos del artículo.
func (r *MovementRepo) DeleteByArticle(ctx context.Context, articleID string) (int64, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM movements WHERE article_id = $1`, articleID)
	if err != nil {
		return 0, wrapErr(entityMovement, "eliminar_por_articulo", err)
	}
	return cmd.RowsAffected(), nil
}
