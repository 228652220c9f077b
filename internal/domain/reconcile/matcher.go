package reconcile

import (
	"strings"

	"github.com/alternativecbd/glop-holded-api/internal/domain/entity"
)

// MatchOutcome es el resultado de buscar un identificador en el catálogo.
type MatchOutcome int

const (
	MatchFound MatchOutcome = iota
	MatchNotFound
	// MatchAmbiguous: el snapshot contiene el mismo SKU/código de barras en
	// más de un producto o variante. Se reporta como error de fila, nunca
	// se elige un ganador arbitrario.
	MatchAmbiguous
)

// CatalogIndex indexa un snapshot de catálogo por SKU y código de barras,
// tanto de productos como de variantes. La búsqueda es exacta y sensible a
// mayúsculas sobre el identificador crudo (los SKU son tokens opacos); solo
// se recortan espacios en los extremos.
type CatalogIndex struct {
	byKey     map[string]entity.ProductRef
	ambiguous map[string]struct{}
}

// NewCatalogIndex construye el índice a partir del listado de productos con
// variantes. Claves duplicadas (incluido un SKU presente a la vez como
// producto y como variante) quedan marcadas como ambiguas.
func NewCatalogIndex(products []entity.Product) *CatalogIndex {
	idx := &CatalogIndex{
		byKey:     make(map[string]entity.ProductRef, len(products)),
		ambiguous: make(map[string]struct{}),
	}
	for _, p := range products {
		ref := entity.ProductRef{ProductID: p.ID, ProductName: p.Name}
		idx.add(p.SKU, ref)
		idx.add(p.Barcode, ref)
		for _, v := range p.Variants {
			name := p.Name
			if v.Name != "" {
				name = p.Name + " - " + v.Name
			}
			vref := entity.ProductRef{
				ProductID:   p.ID,
				ProductName: name,
				IsVariant:   true,
				VariantID:   v.ID,
			}
			idx.add(v.SKU, vref)
			idx.add(v.Barcode, vref)
		}
	}
	return idx
}

func (idx *CatalogIndex) add(key string, ref entity.ProductRef) {
	key = strings.TrimSpace(key)
	if key == "" {
		return
	}
	if prev, ok := idx.byKey[key]; ok {
		// La misma clave apuntando al mismo ítem (SKU == código de barras)
		// no es ambigüedad.
		if prev.ProductID == ref.ProductID && prev.VariantID == ref.VariantID {
			return
		}
		idx.ambiguous[key] = struct{}{}
		return
	}
	idx.byKey[key] = ref
}

// Match busca un SKU o código de barras en el índice.
func (idx *CatalogIndex) Match(identifier string) (entity.ProductRef, MatchOutcome) {
	key := strings.TrimSpace(identifier)
	if _, dup := idx.ambiguous[key]; dup {
		return entity.ProductRef{}, MatchAmbiguous
	}
	ref, ok := idx.byKey[key]
	if !ok {
		return entity.ProductRef{}, MatchNotFound
	}
	return ref, MatchFound
}

// Len devuelve el número de claves únicas indexadas (sin contar ambiguas).
func (idx *CatalogIndex) Len() int {
	return len(idx.byKey)
}
