package entity

import "github.com/shopspring/decimal"

// ReportRow fila del informe general: una categoría y (opcionalmente) uno de sus artículos.
// Las categorías sin artículos aparecen con ArticleID vacío.
type ReportRow struct {
	CategoryID     string
	CategoryName   string
	CategoryIcon   string
	ArticleID      string
	ArticleCode    string
	ArticleName    string
	Unit           string
	Detail         string
	Stock          decimal.Decimal
	Opening        decimal.Decimal
	TotalMovements int
	MovementsNet   decimal.Decimal // suma con signo de los movimientos
}
