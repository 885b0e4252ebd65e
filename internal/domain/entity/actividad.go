package entity

import "time"

// Tipos de actividad que se registran en el historial.
const (
	ActividadArchivoProcesado = "archivo_procesado"
	ActividadPedidoProcesado  = "pedido_procesado"
	ActividadSKURotulo        = "sku_rotulo_agregado"
)

// ActividadLog una actividad registrada por un usuario (procesó un archivo,
// generó rótulos, etc.). Cantidad acumula unidades según el tipo: filas para
// archivos, pedidos para pedidos, rótulos anotados para SKU.
type ActividadLog struct {
	ID            int64
	UserID        string
	Username      string
	ActivityType  string
	Cantidad      int
	ArchivoNombre string
	Metadata      map[string]any
	Bloqueado     bool
	CreatedAt     time.Time
}

// UserStats estadísticas agregadas de actividad de un usuario.
type UserStats struct {
	UserID                  string
	Username                string
	TotalArchivosProcesados int
	TotalPedidosProcesados  int
	TotalSKURotulos         int
	UltimaActividad         *time.Time
}
