package entity

// Warehouse representa un almacén o tienda de Holded.
type Warehouse struct {
	ID   string
	Name string
}

// WarehouseRef es la resolución de un nombre libre de terminal a un almacén.
type WarehouseRef struct {
	WarehouseID   string
	WarehouseName string
}
