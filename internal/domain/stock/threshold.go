// Package stock contiene las reglas de umbral de existencias (servicio de dominio puro).
package stock

import (
	"sort"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

// Evaluate decide qué aviso corresponde a un producto después de una salida de stock.
// STOCK_AGOTADO si quedó en 0; STOCK_BAJO si quedó en o por debajo del mínimo; ninguno en otro caso.
func Evaluate(newStock, minStock int) (notificationType string, ok bool) {
	if newStock <= 0 {
		return entity.NotificationOutOfStock, true
	}
	if newStock <= minStock {
		return entity.NotificationLowStock, true
	}
	return "", false
}

// CanDecrease indica si current alcanza para descontar qty sin quedar negativo.
func CanDecrease(current, qty int) bool {
	return qty > 0 && current >= qty
}

// InLockOrder devuelve una copia de lines ordenada por id de producto (orden estable).
// Toda transacción que bloquea productos los recorre en este orden; así dos documentos
// con los mismos productos no se bloquean mutuamente.
func InLockOrder[T any](lines []T, productID func(T) string) []T {
	out := make([]T, len(lines))
	copy(out, lines)
	sort.SliceStable(out, func(i, j int) bool { return productID(out[i]) < productID(out[j]) })
	return out
}
