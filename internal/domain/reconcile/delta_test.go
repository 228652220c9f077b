package reconcile_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/alternativecbd/glop-holded-api/internal/domain/reconcile"
)

func TestComputeDelta_VentaReduceStock(t *testing.T) {
	adj, newStock := reconcile.ComputeDelta(decimal.NewFromInt(20), decimal.NewFromInt(5))

	assert.True(t, adj.Equal(decimal.NewFromInt(-5)), "ajuste = -unidades vendidas")
	assert.True(t, newStock.Equal(decimal.NewFromInt(15)))
}

// Vender más de lo que hay deja stock negativo. Se devuelve tal
// cual (sobreventa señalizada), nunca se recorta a cero.
func TestComputeDelta_StockNegativoNoSeRecorta(t *testing.T) {
	adj, newStock := reconcile.ComputeDelta(decimal.NewFromInt(3), decimal.NewFromInt(5))

	assert.True(t, adj.Equal(decimal.NewFromInt(-5)))
	assert.True(t, newStock.Equal(decimal.NewFromInt(-2)))
}

// Cantidades fraccionarias son válidas (ventas a granel).
func TestComputeDelta_Fraccionario(t *testing.T) {
	current := decimal.RequireFromString("10.5")
	sold := decimal.RequireFromString("2.25")

	adj, newStock := reconcile.ComputeDelta(current, sold)

	assert.True(t, adj.Equal(decimal.RequireFromString("-2.25")))
	assert.True(t, newStock.Equal(decimal.RequireFromString("8.25")))
}

// Propiedad: para cualquier registro, NewStock == CurrentStock + Adjustment.
func TestComputeDelta_Invariante(t *testing.T) {
	cases := [][2]string{
		{"0", "0"},
		{"100", "0.001"},
		{"-4", "3"},
		{"2.5", "2.5"},
	}
	for _, c := range cases {
		current := decimal.RequireFromString(c[0])
		sold := decimal.RequireFromString(c[1])
		adj, newStock := reconcile.ComputeDelta(current, sold)

		assert.True(t, newStock.Equal(current.Add(adj)), "current=%s sold=%s", c[0], c[1])
		assert.True(t, adj.Equal(sold.Neg()), "current=%s sold=%s", c[0], c[1])
	}
}
