package entity

import "time"

// Despacho un producto despachado, registrado al anotar un rótulo con su SKU.
// Una fila por parte de SKU (los SKUs compuestos "A + B" generan dos filas).
type Despacho struct {
	ID             int64
	UserID         string
	Username       string
	SKU            string
	NombreProducto string
	Cantidad       int
	NumeroPedido   string
	FechaDespacho  time.Time
	ArchivoRotulo  string
	CreatedAt      time.Time
}
