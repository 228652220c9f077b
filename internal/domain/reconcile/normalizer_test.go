package reconcile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alternativecbd/glop-holded-api/internal/domain/reconcile"
)

// TestNormalizeName_VariantesMismaClave: las tres formas habituales en que
// el TPV escribe una misma tienda deben producir la misma clave.
func TestNormalizeName_VariantesMismaClave(t *testing.T) {
	want := "tienda caceres"

	assert.Equal(t, want, reconcile.NormalizeName("Tienda Cáceres"))
	assert.Equal(t, want, reconcile.NormalizeName("TIENDA CACERES"))
	assert.Equal(t, want, reconcile.NormalizeName("tienda  caceres "))
	assert.Equal(t, want, reconcile.NormalizeName("\tTIENDA CÁCERES\n"))
}

func TestNormalizeName_Diacriticos(t *testing.T) {
	cases := map[string]string{
		"Almacén CENTRAL": "almacen central",
		"TIENDA MÁLAGA":   "tienda malaga",
		"Coruña":          "coruna",
		"":                "",
		"   ":             "",
	}
	for in, want := range cases {
		assert.Equal(t, want, reconcile.NormalizeName(in), "entrada: %q", in)
	}
}

// Idempotencia: normalizar dos veces no cambia el resultado.
func TestNormalizeName_Idempotente(t *testing.T) {
	inputs := []string{"Tienda Cáceres", "  ALMACÉN  Nº 2 ", "murcia", "ü ö ñ"}
	for _, in := range inputs {
		once := reconcile.NormalizeName(in)
		assert.Equal(t, once, reconcile.NormalizeName(once), "entrada: %q", in)
	}
}
