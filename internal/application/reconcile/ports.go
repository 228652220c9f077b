package reconcile

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/alternativecbd/glop-holded-api/internal/domain/entity"
)

// CatalogProvider obtiene el snapshot de productos con variantes (una vez por ejecución).
type CatalogProvider interface {
	ListProducts(ctx context.Context) ([]entity.Product, error)
}

// WarehouseProvider obtiene el listado de almacenes para construir la tabla de alias.
type WarehouseProvider interface {
	ListWarehouses(ctx context.Context) ([]entity.Warehouse, error)
}

// StockReader lee el snapshot de stock de un almacén concreto.
type StockReader interface {
	WarehouseStock(ctx context.Context, warehouseID string) (entity.WarehouseStock, error)
}

// StockWriter emite un ajuste de stock contra el servicio de inventario
// externo. Una llamada por registro; sin garantía transaccional entre filas.
type StockWriter interface {
	UpdateStock(ctx context.Context, productID, itemID, warehouseID string, adjustment decimal.Decimal, description string) error
}

// InventoryGateway agrupa los colaboradores de Holded que consume el pipeline.
type InventoryGateway interface {
	CatalogProvider
	WarehouseProvider
	StockReader
	StockWriter
}

// ObjectStore obtiene los bytes del CSV cuando la fuente es cloud storage.
type ObjectStore interface {
	Fetch(ctx context.Context, uri string) ([]byte, error)
}

// RunLogStore persiste el log JSON de una ejecución. Best-effort: un fallo al
// subir el log nunca hace fallar la ejecución.
type RunLogStore interface {
	StoreRunLog(ctx context.Context, name string, payload any) error
}
