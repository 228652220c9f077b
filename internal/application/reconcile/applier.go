package reconcile

import (
	"context"

	domrec "github.com/alternativecbd/glop-holded-api/internal/domain/reconcile"
	"github.com/alternativecbd/glop-holded-api/pkg/logger"
)

// Applier aplica (o simula) los ajustes de stock acumulados por el pipeline.
// Un único camino de código para ambos modos: el cálculo ya está hecho, la
// única diferencia es si se emite la escritura contra Holded.
type Applier struct {
	writer StockWriter
	log    *logger.Logger
}

// NewApplier construye el applier.
func NewApplier(writer StockWriter, log *logger.Logger) *Applier {
	return &Applier{writer: writer, log: log}
}

// Apply recorre los registros del resultado. En dry-run no hay llamada de
// red y todos quedan en "simulated". En ejecución real emite un ajuste por
// registro: éxito -> "applied"; fallo -> el registro se reclasifica como
// RowError (APPLY_FAILED) y sale de Updates, para que "simulado pero nunca
// intentado" y "intentado y fallido" sigan siendo distinguibles. Las
// escrituras son independientes entre sí: la aplicación parcial se reporta,
// no se revierte.
func (a *Applier) Apply(ctx context.Context, result *domrec.Result, dryRun bool, description string) {
	if dryRun {
		return
	}

	applied := result.Updates[:0]
	for _, u := range result.Updates {
		ref := u
		err := a.writer.UpdateStock(ctx, u.ProductID, itemID(u), u.WarehouseID, u.Adjustment, description)
		if err != nil {
			a.log.Warn().
				Err(err).
				Int("fila", u.Row).
				Str("sku", u.SKU).
				Str("almacen", u.WarehouseID).
				Msg("ajuste de stock rechazado por Holded")
			ref.Status = domrec.StatusFailed
			result.Errors = append(result.Errors, domrec.RowError{
				Row:       u.Row,
				SKU:       u.SKU,
				Product:   u.ProductName,
				Terminal:  u.Terminal,
				UnitsSold: u.UnitsSold,
				Kind:      domrec.ErrApplyFailed,
				Detail:    err.Error(),
			})
			continue
		}
		ref.Status = domrec.StatusApplied
		applied = append(applied, ref)
	}
	result.Updates = applied
}

func itemID(u domrec.StockUpdate) string {
	if u.IsVariant {
		return u.VariantID
	}
	return u.ProductID
}
