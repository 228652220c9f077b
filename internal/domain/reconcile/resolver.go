package reconcile

import "github.com/alternativecbd/glop-holded-api/internal/domain/entity"

// WarehouseResolver mapea nombres libres de terminal a almacenes de Holded
// mediante una tabla de alias construida una vez por ejecución
// (muchos alias -> un almacén). De solo lectura durante la ejecución.
type WarehouseResolver struct {
	aliases    map[string]string // clave normalizada -> warehouse_id
	warehouses map[string]entity.Warehouse
}

// NewWarehouseResolver construye la tabla de alias a partir del listado de
// almacenes más los alias extra configurados (extraAliases: alias -> id).
// Cada almacén aporta su nombre normalizado y su propio ID como claves.
func NewWarehouseResolver(warehouses []entity.Warehouse, extraAliases map[string]string) *WarehouseResolver {
	r := &WarehouseResolver{
		aliases:    make(map[string]string, len(warehouses)*2+len(extraAliases)),
		warehouses: make(map[string]entity.Warehouse, len(warehouses)),
	}
	for _, w := range warehouses {
		r.warehouses[w.ID] = w
		r.aliases[NormalizeName(w.Name)] = w.ID
		r.aliases[NormalizeName(w.ID)] = w.ID
	}
	for alias, id := range extraAliases {
		if _, ok := r.warehouses[id]; ok {
			r.aliases[NormalizeName(alias)] = id
		}
	}
	return r
}

// Resolve devuelve el almacén asociado al nombre de terminal, o ok=false si
// ningún alias coincide. No resolver no es un error en sí: el caller decide
// si la fila se reporta como WarehouseNotFound.
func (r *WarehouseResolver) Resolve(terminal string) (entity.WarehouseRef, bool) {
	id, ok := r.aliases[NormalizeName(terminal)]
	if !ok {
		return entity.WarehouseRef{}, false
	}
	w := r.warehouses[id]
	return entity.WarehouseRef{WarehouseID: w.ID, WarehouseName: w.Name}, true
}
