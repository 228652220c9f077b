package reconcile

import "github.com/shopspring/decimal"

// Estado de una actualización de stock dentro del resultado.
const (
	StatusSimulated = "simulated" // dry-run, nunca se intentó escribir
	StatusApplied   = "applied"   // escrita con éxito en Holded
	StatusFailed    = "failed"    // se intentó escribir y falló
)

// ErrorKind clasifica los errores por fila.
type ErrorKind string

const (
	ErrWarehouseNotFound ErrorKind = "WAREHOUSE_NOT_FOUND"
	ErrSkuNotFound       ErrorKind = "SKU_NOT_FOUND"
	ErrSkuAmbiguous      ErrorKind = "SKU_AMBIGUOUS"
	ErrInvalidQuantity   ErrorKind = "INVALID_QUANTITY"
	ErrApplyFailed       ErrorKind = "APPLY_FAILED"
)

// StockUpdate es el registro por fila emparejada con éxito: qué ajuste se
// calculó y, tras aplicar, si se escribió o no. NewStock puede ser negativo.
type StockUpdate struct {
	Row           int
	SKU           string
	ProductName   string
	ProductID     string
	VariantID     string
	IsVariant     bool
	WarehouseID   string
	WarehouseName string
	Terminal      string
	UnitsSold     decimal.Decimal
	Adjustment    decimal.Decimal
	CurrentStock  decimal.Decimal
	NewStock      decimal.Decimal
	Status        string
}

// RowError es el registro por fila que falló en resolución, emparejamiento o
// aplicación. Una fila produce exactamente un StockUpdate o un RowError.
type RowError struct {
	Row       int
	SKU       string
	Product   string
	Terminal  string
	UnitsSold decimal.Decimal
	Kind      ErrorKind
	Detail    string
}

// Result es el acumulador de una ejecución del pipeline. Se construye fila a
// fila, preservando el orden del archivo, y es inmutable tras devolverse.
// Invariante: Processed == len(Updates) + len(Errors).
type Result struct {
	Processed int
	Updates   []StockUpdate
	Errors    []RowError
}

// Updated es el número de actualizaciones vigentes (simuladas o aplicadas).
func (r *Result) Updated() int {
	return len(r.Updates)
}

// AddUpdate registra una fila emparejada.
func (r *Result) AddUpdate(u StockUpdate) {
	r.Processed++
	r.Updates = append(r.Updates, u)
}

// AddError registra una fila fallida.
func (r *Result) AddError(e RowError) {
	r.Processed++
	r.Errors = append(r.Errors, e)
}
