package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMovementRequest body para POST /api/movements.
type CreateMovementRequest struct {
	ArticleID string           `json:"id_articulo" validate:"required"`
	Action    string           `json:"accion" validate:"required,oneof=ENTRADA SALIDA"`
	Doc       string           `json:"doc"`
	Detail    string           `json:"detalle"`
	Quantity  decimal.Decimal  `json:"cantidad"`
	UnitCost  *decimal.Decimal `json:"costo_unidad,omitempty"`
}

// MovementResultResponse salida del registro de un movimiento.
type MovementResultResponse struct {
	ID          string          `json:"id"`
	StockBefore decimal.Decimal `json:"stock_anterior"`
	StockAfter  decimal.Decimal `json:"stock_nuevo"`
	Delta       decimal.Decimal `json:"diferencia"`
}

// MovementResponse fila del historial de movimientos.
type MovementResponse struct {
	ID          string           `json:"id"`
	ArticleID   string           `json:"id_articulo"`
	ArticleCode string           `json:"codigo"`
	ArticleName string           `json:"nombre_articulo"`
	Action      string           `json:"accion"`
	Date        time.Time        `json:"fecha"`
	Doc         string           `json:"doc"`
	Detail      string           `json:"detalle"`
	Quantity    decimal.Decimal  `json:"cantidad"`
	UnitCost    *decimal.Decimal `json:"costo_unidad"`
}

// DeleteMovementResponse saldo resultante tras revertir un movimiento.
type DeleteMovementResponse struct {
	StockBefore decimal.Decimal `json:"stock_anterior"`
	StockAfter  decimal.Decimal `json:"stock_nuevo"`
}
