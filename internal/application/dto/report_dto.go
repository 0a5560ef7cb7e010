package dto

import "github.com/shopspring/decimal"

// ReportArticleDTO artículo dentro de una categoría del informe general.
type ReportArticleDTO struct {
	ID             string          `json:"id_articulo"`
	Code           string          `json:"codigo"`
	Name           string          `json:"nombre_articulo"`
	Unit           string          `json:"unidad"`
	Detail         string          `json:"detalle"`
	Stock          decimal.Decimal `json:"stock_actual"`
	TotalMovements int             `json:"total_movimientos"`
	MovementsNet   decimal.Decimal `json:"total_movimientos_acumulado"`
	Consistent     bool            `json:"consistente"` // stock == stock inicial + neto de movimientos
	AverageCost    decimal.Decimal `json:"costo_promedio"`
	Valuation      decimal.Decimal `json:"valorizacion"` // stock * costo promedio
}

// ReportCategoryDTO categoría con sus artículos.
type ReportCategoryDTO struct {
	ID        string             `json:"id_categoria"`
	Name      string             `json:"nombre_categoria"`
	Icon      string             `json:"icono_categoria"`
	Articles  []ReportArticleDTO `json:"articulos"`
	Valuation decimal.Decimal    `json:"valorizacion"`
}

// GeneralReportDTO informe general agrupado por categoría.
type GeneralReportDTO struct {
	Categories     []ReportCategoryDTO `json:"categorias"`
	TotalArticles  int                 `json:"total_articulos"`
	Inconsistent   int                 `json:"inconsistentes"`
	TotalValuation decimal.Decimal     `json:"valorizacion_total"`
}
