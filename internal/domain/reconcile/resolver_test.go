package reconcile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alternativecbd/glop-holded-api/internal/domain/entity"
	"github.com/alternativecbd/glop-holded-api/internal/domain/reconcile"
)

func testWarehouses() []entity.Warehouse {
	return []entity.Warehouse{
		{ID: "wh-caceres", Name: "Tienda Cáceres"},
		{ID: "wh-murcia", Name: "Tienda Murcia"},
		{ID: "wh-central", Name: "Almacén Central"},
	}
}

// Todas las variantes tipográficas del mismo nombre resuelven al mismo almacén.
func TestResolver_AliasesResuelvenMismoAlmacen(t *testing.T) {
	r := reconcile.NewWarehouseResolver(testWarehouses(), nil)

	for _, terminal := range []string{"TIENDA CACERES", "Tienda Cáceres", "tienda caceres", " tienda  cáceres "} {
		ref, ok := r.Resolve(terminal)
		require.True(t, ok, "terminal %q debe resolver", terminal)
		assert.Equal(t, "wh-caceres", ref.WarehouseID)
		assert.Equal(t, "Tienda Cáceres", ref.WarehouseName)
	}
}

// El ID crudo del almacén también es un alias válido (el CSV a veces trae IDs).
func TestResolver_IDComoAlias(t *testing.T) {
	r := reconcile.NewWarehouseResolver(testWarehouses(), nil)

	ref, ok := r.Resolve("wh-murcia")
	require.True(t, ok)
	assert.Equal(t, "wh-murcia", ref.WarehouseID)
}

// Alias extra configurados: varios nombres de terminal -> un mismo almacén.
func TestResolver_AliasesExtraConfigurados(t *testing.T) {
	extra := map[string]string{
		"TPV Cáceres 01":     "wh-caceres",
		"TPV CACERES 02":     "wh-caceres",
		"alias a id inválido": "wh-no-existe", // se ignora: el id no está en el listado
	}
	r := reconcile.NewWarehouseResolver(testWarehouses(), extra)

	ref, ok := r.Resolve("tpv caceres 01")
	require.True(t, ok)
	assert.Equal(t, "wh-caceres", ref.WarehouseID)

	ref, ok = r.Resolve("TPV CÁCERES 02")
	require.True(t, ok)
	assert.Equal(t, "wh-caceres", ref.WarehouseID)

	_, ok = r.Resolve("alias a id inválido")
	assert.False(t, ok)
}

// Un nombre sin alias no resuelve; no es un error, el caller decide.
func TestResolver_NoResuelto(t *testing.T) {
	r := reconcile.NewWarehouseResolver(testWarehouses(), nil)

	ref, ok := r.Resolve("Tienda Desconocida")
	assert.False(t, ok)
	assert.Zero(t, ref)
}
