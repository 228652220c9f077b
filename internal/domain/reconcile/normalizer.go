package reconcile

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldDiacritics descompone a NFD, elimina marcas combinantes (tildes,
// diéresis) y recompone a NFC: "Cáceres" -> "Caceres".
var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeName canonicaliza el nombre libre de una terminal/tienda para
// usarlo como clave de resolución: minúsculas, sin tildes, sin espacios
// sobrantes. Función pura e idempotente.
// "Tienda Cáceres", "TIENDA CACERES" y "tienda  caceres " producen la misma clave.
func NormalizeName(raw string) string {
	folded, _, err := transform.String(foldDiacritics, raw)
	if err != nil {
		// Entrada con UTF-8 malformado: se normaliza sin plegar tildes.
		folded = raw
	}
	lower := strings.ToLower(folded)
	return strings.Join(strings.Fields(lower), " ")
}
