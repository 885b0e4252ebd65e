// Package rotulos orquesta el flujo de anotación de rótulos: análisis del PDF
// y la planilla, cruce por número de orden, estampado y registro de despachos.
package rotulos

import (
	"context"
	"time"

	"github.com/facil-uno/facil-api/internal/domain/repository"
	"github.com/facil-uno/facil-api/internal/domain/rotulos"
)

// ExtractorPaginas extrae el texto plano de cada página de un PDF. El slice
// devuelto tiene una entrada por página, en orden.
type ExtractorPaginas interface {
	Paginas(data []byte) ([]string, error)
}

// Estampador escribe las anotaciones sobre el PDF original, página por
// página, y concatena documentos (el rótulo anotado más la hoja resumen).
type Estampador interface {
	Estampar(pdf []byte, anotaciones []rotulos.Anotacion, posX, posY float64) ([]byte, error)
	Unir(docs ...[]byte) ([]byte, error)
}

// ItemResumen una línea de la hoja resumen: SKU y unidades totales.
type ItemResumen struct {
	SKU      string
	Cantidad int
}

// GeneradorResumen produce la hoja "RESUMEN DE PRODUCTOS DESPACHADOS" que se
// anexa al final del PDF anotado.
type GeneradorResumen interface {
	Resumen(fecha time.Time, items []ItemResumen) ([]byte, error)
}

// LectorPlanilla parsea la planilla de pedidos (CSV) en encabezados y filas.
type LectorPlanilla interface {
	Leer(data []byte) (encabezados []string, filas [][]string, err error)
}

// TxRunner ejecuta el registro de despachos y actividades en una transacción:
// el historial de un rótulo generado se persiste entero o no se persiste.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		perfiles repository.UserProfileRepository,
		actividades repository.ActividadRepository,
		despachos repository.DespachoRepository,
	) error) error
}
