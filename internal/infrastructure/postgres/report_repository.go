package postgres

import (
	"context"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas del informe general.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// GeneralReport una fila por par categoría-artículo; las categorías vacías traen el artículo en NULL.
// Los artículos sin ninguna categoría llegan al final con la categoría vacía.
func (r *ReportRepo) GeneralReport(ctx context.Context) ([]entity.ReportRow, error) {
	query := `
		WITH mv AS (
			SELECT article_id,
			       COUNT(*) AS total,
			       SUM(CASE WHEN action = 'ENTRADA' THEN quantity ELSE -quantity END) AS net
			FROM movements
			GROUP BY article_id
		)
		SELECT grp, cat_id, cat_name, cat_icon,
		       art_id, code, art_name, unit, detail, stock, opening_stock, total, net
		FROM (
			SELECT 0 AS grp, c.id::text AS cat_id, c.name AS cat_name, c.icon AS cat_icon,
			       a.id::text AS art_id, a.code, a.name AS art_name, a.unit, a.detail,
			       a.stock, a.opening_stock,
			       COALESCE(mv.total, 0) AS total, COALESCE(mv.net, 0) AS net
			FROM categories c
			LEFT JOIN article_categories ac ON ac.category_id = c.id
			LEFT JOIN articles a ON a.id = ac.article_id
			LEFT JOIN mv ON mv.article_id = a.id
			UNION ALL
			SELECT 1, NULL, NULL, NULL,
			       a.id::text, a.code, a.name, a.unit, a.detail,
			       a.stock, a.opening_stock,
			       COALESCE(mv.total, 0), COALESCE(mv.net, 0)
			FROM articles a
			LEFT JOIN mv ON mv.article_id = a.id
			WHERE NOT EXISTS (SELECT 1 FROM article_categories ac WHERE ac.article_id = a.id)
		) r
		ORDER BY grp, cat_name, art_name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, wrapErr("informe", "generar", err)
	}
	defer rows.Close()
	var out []entity.ReportRow
	for rows.Next() {
		var (
			row                                 entity.ReportRow
			grp                                 int
			catID, catName, catIcon             *string
			articleID, code, name, unit, detail *string
			stock, opening                      decimal.NullDecimal
		)
		if err := rows.Scan(&grp, &catID, &catName, &catIcon,
			&articleID, &code, &name, &unit, &detail, &stock, &opening,
			&row.TotalMovements, &row.MovementsNet); err != nil {
			return nil, wrapErr("informe", "generar", err)
		}
		row.CategoryID = deref(catID)
		row.CategoryName = deref(catName)
		row.CategoryIcon = deref(catIcon)
		if articleID != nil {
			row.ArticleID = *articleID
			row.ArticleCode = deref(code)
			row.ArticleName = deref(name)
			row.Unit = deref(unit)
			row.Detail = deref(detail)
			row.Stock = stock.Decimal
			row.Opening = opening.Decimal
		}
		out = append(out, row)
	}
	return out, wrapErr("informe", "generar", rows.Err())
}

// MovementsChronological todos los movimientos, agrupables por artículo en orden de aplicación.
func (r *ReportRepo) MovementsChronological(ctx context.Context) ([]entity.Movement, error) {
	query := `
		SELECT id, article_id, action, date, doc, detail, quantity, unit_cost
		FROM movements ORDER BY article_id, seq`
	return scanMovements(ctx, r.q, "listar_cronologico", query)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
