package ledger_test

import (
	"errors"
	"testing"

	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr(d decimal.Decimal) *decimal.Decimal { return &d }

func TestValidate(t *testing.T) {
	cases := []struct {
		name     string
		action   string
		quantity decimal.Decimal
		cost     *decimal.Decimal
		field    string
	}{
		{"accion desconocida", "AJUSTE", dec("1"), nil, "accion"},
		{"cantidad cero", entity.MovementSalida, decimal.Zero, nil, "cantidad"},
		{"cantidad negativa", entity.MovementEntrada, dec("-2"), ptr(dec("1")), "cantidad"},
		{"entrada sin costo", entity.MovementEntrada, dec("2"), nil, "costo_unidad"},
		{"entrada costo cero", entity.MovementEntrada, dec("2"), ptr(decimal.Zero), "costo_unidad"},
		{"entrada costo negativo", entity.MovementEntrada, dec("2"), ptr(dec("-1")), "costo_unidad"},
		{"salida con tres decimales", entity.MovementSalida, dec("1.005"), nil, "cantidad"},
		{"cantidad bajo la escala", entity.MovementEntrada, dec("0.001"), ptr(dec("1")), "cantidad"},
		{"costo con cinco decimales", entity.MovementEntrada, dec("2"), ptr(dec("1.00001")), "costo_unidad"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ledger.Validate(tc.action, tc.quantity, tc.cost)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			var ie *domain.InvalidInputError
			require.True(t, errors.As(err, &ie))
			assert.Equal(t, tc.field, ie.Field)
		})
	}

	assert.NoError(t, ledger.Validate(entity.MovementEntrada, dec("5"), ptr(dec("2"))))
	assert.NoError(t, ledger.Validate(entity.MovementSalida, dec("5"), nil))
	// ceros a la derecha no cuentan como decimales
	assert.NoError(t, ledger.Validate(entity.MovementSalida, dec("1.500"), nil))
	assert.NoError(t, ledger.Validate(entity.MovementEntrada, dec("0.01"), ptr(dec("1.2345"))))
}

func TestCheckScale(t *testing.T) {
	assert.NoError(t, ledger.CheckScale("stock", dec("10.25"), ledger.QuantityPlaces))
	assert.NoError(t, ledger.CheckScale("stock", dec("7"), ledger.QuantityPlaces))

	err := ledger.CheckScale("stock", dec("8.995"), ledger.QuantityPlaces)
	var ie *domain.InvalidInputError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, "stock", ie.Field)
	assert.Contains(t, ie.Reason, "2 decimales")
}

func TestApply_EntradaYSalida(t *testing.T) {
	res, err := ledger.Apply(dec("10"), entity.MovementSalida, dec("4"))
	require.NoError(t, err)
	assert.True(t, res.Before.Equal(dec("10")))
	assert.True(t, res.After.Equal(dec("6")))
	assert.True(t, res.Delta.Equal(dec("-4")))

	res, err = ledger.Apply(res.After, entity.MovementEntrada, dec("5"))
	require.NoError(t, err)
	assert.True(t, res.After.Equal(dec("11")))
	assert.True(t, res.Delta.Equal(dec("5")))
}

func TestApply_SalidaMayorAlStock(t *testing.T) {
	_, err := ledger.Apply(dec("3"), entity.MovementSalida, dec("3.01"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var se *domain.InsufficientStockError
	require.True(t, errors.As(err, &se))
	assert.True(t, se.Current.Equal(dec("3")))
	assert.True(t, se.Requested.Equal(dec("3.01")))
}

func TestApply_SalidaExactaDejaCero(t *testing.T) {
	res, err := ledger.Apply(dec("7.5"), entity.MovementSalida, dec("7.5"))
	require.NoError(t, err)
	assert.True(t, res.After.IsZero())
}

func TestReverse(t *testing.T) {
	res, err := ledger.Reverse(dec("11"), entity.MovementEntrada, dec("5"))
	require.NoError(t, err)
	assert.True(t, res.After.Equal(dec("6")))

	res, err = ledger.Reverse(dec("6"), entity.MovementSalida, dec("4"))
	require.NoError(t, err)
	assert.True(t, res.After.Equal(dec("10")))

	_, err = ledger.Reverse(dec("2"), entity.MovementEntrada, dec("5"))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestBalance_SumaConSigno(t *testing.T) {
	movs := []entity.Movement{
		{Action: entity.MovementEntrada, Quantity: dec("10")},
		{Action: entity.MovementSalida, Quantity: dec("3")},
		{Action: entity.MovementEntrada, Quantity: dec("0.5")},
		{Action: entity.MovementSalida, Quantity: dec("7.5")},
	}
	assert.True(t, ledger.Balance(decimal.Zero, movs).Equal(decimal.Zero))
	assert.True(t, ledger.Balance(dec("2"), movs).Equal(dec("2")))
}

func TestAverageCost(t *testing.T) {
	movs := []entity.Movement{
		{Action: entity.MovementEntrada, Quantity: dec("10"), UnitCost: ptr(dec("2"))},
		{Action: entity.MovementSalida, Quantity: dec("5")},
		{Action: entity.MovementEntrada, Quantity: dec("5"), UnitCost: ptr(dec("4"))},
	}
	// (5*2 + 5*4) / 10 = 3
	assert.True(t, ledger.AverageCost(decimal.Zero, movs).Equal(dec("3")))
	assert.True(t, ledger.AverageCost(decimal.Zero, nil).IsZero())
}

func TestCostCalculator_SinStock(t *testing.T) {
	assert.True(t, ledger.CostCalculator(decimal.Zero, decimal.Zero, decimal.Zero, dec("9")).IsZero())
	assert.True(t, ledger.CostCalculator(decimal.Zero, decimal.Zero, dec("4"), dec("9")).Equal(dec("9")))
}
