package reconcile_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alternativecbd/glop-holded-api/internal/application/reconcile"
	domrec "github.com/alternativecbd/glop-holded-api/internal/domain/reconcile"
	"github.com/alternativecbd/glop-holded-api/pkg/logger"
)

func simulatedResult(t *testing.T, gw *fakeGateway) *domrec.Result {
	t.Helper()
	p := reconcile.NewPipeline(gw, nil, logger.Nop())
	result, err := p.Run(context.Background(), csvFile(
		"Tienda Centro;Aceite;SKU-123;5",
		"Tienda Centro;Camiseta;CAM-M;1",
	))
	require.NoError(t, err)
	require.Len(t, result.Updates, 2)
	return result
}

func TestApplier_DryRunNoEscribe(t *testing.T) {
	gw := newFakeGateway()
	result := simulatedResult(t, gw)

	reconcile.NewApplier(gw, logger.Nop()).Apply(context.Background(), result, true, "cierre de caja")

	assert.Empty(t, gw.writes)
	for _, u := range result.Updates {
		assert.Equal(t, domrec.StatusSimulated, u.Status)
	}
	assert.Equal(t, 2, result.Updated())
}

func TestApplier_EjecucionReal(t *testing.T) {
	gw := newFakeGateway()
	result := simulatedResult(t, gw)

	reconcile.NewApplier(gw, logger.Nop()).Apply(context.Background(), result, false, "cierre de caja")

	require.Len(t, gw.writes, 2)
	// El ajuste del producto principal usa su propio ID como item.
	assert.Equal(t, "p1", gw.writes[0].ProductID)
	assert.Equal(t, "p1", gw.writes[0].ItemID)
	assert.Equal(t, "-5", gw.writes[0].Adjustment.String())
	assert.Equal(t, "cierre de caja", gw.writes[0].Description)
	// La variante ajusta sobre el ID de la variante, no el del padre.
	assert.Equal(t, "p2", gw.writes[1].ProductID)
	assert.Equal(t, "v1", gw.writes[1].ItemID)

	for _, u := range result.Updates {
		assert.Equal(t, domrec.StatusApplied, u.Status)
	}
	assert.Empty(t, result.Errors)
	assert.Equal(t, 2, result.Processed)
}

// Un rechazo de Holded reclasifica el registro como error de aplicación sin
// tocar los demás ni romper el conteo total.
func TestApplier_FalloParcial(t *testing.T) {
	gw := newFakeGateway()
	gw.writeErr = map[string]error{"v1": errors.New("409 conflicto")}
	result := simulatedResult(t, gw)

	reconcile.NewApplier(gw, logger.Nop()).Apply(context.Background(), result, false, "")

	require.Len(t, gw.writes, 1)
	require.Len(t, result.Updates, 1)
	assert.Equal(t, domrec.StatusApplied, result.Updates[0].Status)
	assert.Equal(t, "p1", result.Updates[0].ProductID)

	require.Len(t, result.Errors, 1)
	e := result.Errors[0]
	assert.Equal(t, domrec.ErrApplyFailed, e.Kind)
	assert.Equal(t, "CAM-M", e.SKU)
	assert.Contains(t, e.Detail, "409")

	assert.Equal(t, 2, result.Processed)
	assert.Equal(t, result.Processed, len(result.Updates)+len(result.Errors))
}
