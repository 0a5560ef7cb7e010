package ledger

import (
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CostCalculator costo promedio ponderado tras una entrada.
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
func CostCalculator(stockActual, costoActual, cantEntrada, costoEntrada decimal.Decimal) decimal.Decimal {
	sum := stockActual.Add(cantEntrada)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := stockActual.Mul(costoActual).Add(cantEntrada.Mul(costoEntrada))
	return num.Div(sum)
}

// AverageCost recorre los movimientos en orden cronológico y devuelve el costo promedio ponderado
// vigente. Las salidas no alteran el promedio, solo la cantidad sobre la que pondera la siguiente entrada.
// El saldo de apertura (stock inicial sin movimiento) entra con costo 0.
func AverageCost(opening decimal.Decimal, movements []entity.Movement) decimal.Decimal {
	qty := opening
	avg := decimal.Zero
	for _, m := range movements {
		switch m.Action {
		case entity.MovementEntrada:
			cost := decimal.Zero
			if m.UnitCost != nil {
				cost = *m.UnitCost
			}
			avg = CostCalculator(qty, avg, m.Quantity, cost)
			qty = qty.Add(m.Quantity)
		case entity.MovementSalida:
			qty = qty.Sub(m.Quantity)
			if qty.IsNegative() {
				qty = decimal.Zero
			}
		}
	}
	return avg.Round(4)
}
