// Package ledger contiene la aritmética del kardex: validación de movimientos,
// cálculo del saldo con signo y su reversión. No toca la base de datos.
package ledger

import (
	"fmt"

	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Escala de las columnas NUMERIC: cantidades y stock con 2 decimales, costo unitario con 4.
const (
	QuantityPlaces int32 = 2
	CostPlaces     int32 = 4
)

// CheckScale rechaza valores con más decimales de los que guarda la columna.
func CheckScale(field string, d decimal.Decimal, places int32) error {
	if !d.Equal(d.Truncate(places)) {
		return domain.Invalid(field, fmt.Sprintf("admite como máximo %d decimales", places))
	}
	return nil
}

// Result saldo antes/después de aplicar (o revertir) un movimiento.
type Result struct {
	Before decimal.Decimal
	After  decimal.Decimal
	Delta  decimal.Decimal // con signo: +cantidad en ENTRADA, -cantidad en SALIDA
}

// ValidAction indica si action es ENTRADA o SALIDA.
func ValidAction(action string) bool {
	return action == entity.MovementEntrada || action == entity.MovementSalida
}

// Validate verifica la forma del movimiento antes de cualquier escritura.
// ENTRADA exige costo unitario > 0; en SALIDA el costo se ignora.
func Validate(action string, quantity decimal.Decimal, unitCost *decimal.Decimal) error {
	if !ValidAction(action) {
		return domain.Invalid("accion", "debe ser 'ENTRADA' o 'SALIDA'")
	}
	if !quantity.IsPositive() {
		return domain.Invalid("cantidad", "debe ser mayor a 0")
	}
	if err := CheckScale("cantidad", quantity, QuantityPlaces); err != nil {
		return err
	}
	if action != entity.MovementEntrada {
		return nil
	}
	if unitCost == nil || !unitCost.IsPositive() {
		return domain.Invalid("costo_unidad", "para entradas es requerido y debe ser mayor a 0")
	}
	return CheckScale("costo_unidad", *unitCost, CostPlaces)
}

// SignedDelta devuelve la cantidad con el signo de la acción.
func SignedDelta(action string, quantity decimal.Decimal) decimal.Decimal {
	if action == entity.MovementSalida {
		return quantity.Neg()
	}
	return quantity
}

// Apply calcula el nuevo saldo. Una SALIDA mayor al stock actual devuelve InsufficientStockError.
func Apply(current decimal.Decimal, action string, quantity decimal.Decimal) (Result, error) {
	delta := SignedDelta(action, quantity)
	after := current.Add(delta)
	if after.IsNegative() {
		return Result{}, &domain.InsufficientStockError{Current: current, Requested: quantity}
	}
	return Result{Before: current, After: after, Delta: delta}, nil
}

// Reverse deshace el efecto de un movimiento ya aplicado: quitar una ENTRADA resta, quitar una SALIDA suma.
// Falla con InsufficientStockError si la reversión dejaría el stock negativo.
func Reverse(current decimal.Decimal, action string, quantity decimal.Decimal) (Result, error) {
	delta := SignedDelta(action, quantity).Neg()
	after := current.Add(delta)
	if after.IsNegative() {
		return Result{}, &domain.InsufficientStockError{Current: current, Requested: quantity}
	}
	return Result{Before: current, After: after, Delta: delta}, nil
}

// Balance suma con signo una secuencia de movimientos a partir de un saldo inicial.
func Balance(opening decimal.Decimal, movements []entity.Movement) decimal.Decimal {
	total := opening
	for _, m := range movements {
		total = total.Add(SignedDelta(m.Action, m.Quantity))
	}
	return total
}
