package reconcile

import "github.com/shopspring/decimal"

// ComputeDelta calcula el ajuste de stock por una venta (servicio de dominio).
// Ajuste = -UnidadesVendidas; NuevoStock = StockActual + Ajuste.
// Admite cantidades fraccionarias. Un NuevoStock negativo es un resultado
// válido (inventario sobrevendido): se devuelve tal cual, nunca se recorta.
func ComputeDelta(currentStock, unitsSold decimal.Decimal) (adjustment, newStock decimal.Decimal) {
	adjustment = unitsSold.Neg()
	newStock = currentStock.Add(adjustment)
	return adjustment, newStock
}
