// Package sequence define el formato de los números de documento por empresa (V-000001, C-000001).
package sequence

import "fmt"

// Tipos de documento con numeración propia.
const (
	DocSale     = "VENTA"
	DocPurchase = "COMPRA"
)

const padding = 6

// Prefix devuelve el prefijo del tipo de documento ("V-" o "C-").
func Prefix(docType string) string {
	switch docType {
	case DocSale:
		return "V-"
	case DocPurchase:
		return "C-"
	}
	return ""
}

// Format arma el número visible: prefijo + n con 6 dígitos.
func Format(docType string, n int64) string {
	return fmt.Sprintf("%s%0*d", Prefix(docType), padding, n)
}

