package dto

import "time"

// PaginaResponse una página del PDF analizado y su número de orden (vacío si
// no se detectó).
type PaginaResponse struct {
	Numero      int    `json:"numero"`
	NumeroOrden string `json:"numero_orden,omitempty"`
}

// AnalisisPDFResponse resultado del análisis de un PDF de rótulos.
type AnalisisPDFResponse struct {
	Paginas           []PaginaResponse `json:"paginas"`
	TotalPaginas      int              `json:"total_paginas"`
	OrdenesDetectadas int              `json:"ordenes_detectadas"`
}

// AnalisisCSVResponse encabezados y columnas autodetectadas de la planilla.
// Los índices -1 indican que el operador debe elegir la columna a mano.
type AnalisisCSVResponse struct {
	Encabezados     []string `json:"encabezados"`
	Filas           int      `json:"filas"`
	ColumnaSKU      int      `json:"columna_sku"`
	ColumnaOrden    int      `json:"columna_orden"`
	ColumnaCantidad int      `json:"columna_cantidad"`
}

// GenerarResponse metadatos de la generación; el PDF viaja en el cuerpo de la
// descarga, esto acompaña en el historial.
type GenerarResponse struct {
	PaginasAnotadas int `json:"paginas_anotadas"`
	Despachos       int `json:"despachos"`
}

// DespachoResponse un producto despachado, para el historial.
type DespachoResponse struct {
	ID             int64     `json:"id"`
	SKU            string    `json:"sku"`
	NombreProducto string    `json:"nombre_producto"`
	Cantidad       int       `json:"cantidad"`
	NumeroPedido   string    `json:"numero_pedido"`
	FechaDespacho  time.Time `json:"fecha_despacho"`
	ArchivoRotulo  string    `json:"archivo_rotulo"`
}

// ActividadResponse una entrada del historial de actividades.
type ActividadResponse struct {
	ID            int64          `json:"id"`
	ActivityType  string         `json:"activity_type"`
	Cantidad      int            `json:"cantidad"`
	ArchivoNombre string         `json:"archivo_nombre,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}
