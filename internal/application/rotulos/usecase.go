package rotulos

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/facil-uno/facil-api/internal/application/dto"
	"github.com/facil-uno/facil-api/internal/domain"
	"github.com/facil-uno/facil-api/internal/domain/entity"
	"github.com/facil-uno/facil-api/internal/domain/repository"
	dominio "github.com/facil-uno/facil-api/internal/domain/rotulos"
	"github.com/facil-uno/facil-api/pkg/config"
)

// UseCase flujo completo de rótulos: analizar, cruzar, estampar, registrar.
type UseCase struct {
	extractor ExtractorPaginas
	estampa   Estampador
	resumen   GeneradorResumen
	planilla  LectorPlanilla
	tx        TxRunner
	cfg       config.RotulosConfig
}

// NewUseCase construye el caso de uso de rótulos.
func NewUseCase(
	extractor ExtractorPaginas,
	estampa Estampador,
	resumen GeneradorResumen,
	planilla LectorPlanilla,
	tx TxRunner,
	cfg config.RotulosConfig,
) *UseCase {
	return &UseCase{
		extractor: extractor,
		estampa:   estampa,
		resumen:   resumen,
		planilla:  planilla,
		tx:        tx,
		cfg:       cfg,
	}
}

// AnalizarPDF extrae el número de orden de cada página del PDF de rótulos.
func (uc *UseCase) AnalizarPDF(_ context.Context, data []byte) (*dto.AnalisisPDFResponse, error) {
	paginas, err := uc.paginas(data)
	if err != nil {
		return nil, err
	}
	out := &dto.AnalisisPDFResponse{
		Paginas:      make([]dto.PaginaResponse, 0, len(paginas)),
		TotalPaginas: len(paginas),
	}
	for _, pg := range paginas {
		if pg.NumeroOrden != "" {
			out.OrdenesDetectadas++
		}
		out.Paginas = append(out.Paginas, dto.PaginaResponse{Numero: pg.Numero, NumeroOrden: pg.NumeroOrden})
	}
	return out, nil
}

// AnalizarCSV parsea la planilla y autodetecta las columnas por encabezado.
func (uc *UseCase) AnalizarCSV(_ context.Context, data []byte) (*dto.AnalisisCSVResponse, error) {
	encabezados, filas, err := uc.planilla.Leer(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCSVInvalido, err)
	}
	cols := dominio.DetectarColumnas(encabezados)
	return &dto.AnalisisCSVResponse{
		Encabezados:     encabezados,
		Filas:           len(filas),
		ColumnaSKU:      cols.SKU,
		ColumnaOrden:    cols.Orden,
		ColumnaCantidad: cols.Cantidad,
	}, nil
}

// Opciones parámetros de generación. Los índices de columna en -1 piden
// autodetección; PosX/PosY/FontSize en cero toman los defaults configurados.
type Opciones struct {
	Columnas       dominio.Columnas
	PosX           float64
	PosY           float64
	FontSize       float64
	IncluirResumen bool
}

// OpcionesAuto devuelve opciones con todo en automático y hoja resumen.
func OpcionesAuto() Opciones {
	return Opciones{Columnas: dominio.Columnas{SKU: -1, Orden: -1, Cantidad: -1}, IncluirResumen: true}
}

// Generar produce el PDF anotado: cruza cada página con la planilla, estampa
// los SKUs y anexa la hoja resumen. Registra despachos y actividades en una
// transacción; si el registro falla, el PDF no se entrega (el historial es
// parte del contrato del despacho).
func (uc *UseCase) Generar(ctx context.Context, userID, username, nombreArchivo string, pdfData, csvData []byte, op Opciones) ([]byte, *dto.GenerarResponse, error) {
	paginas, err := uc.paginas(pdfData)
	if err != nil {
		return nil, nil, err
	}
	encabezados, filas, err := uc.planilla.Leer(csvData)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrCSVInvalido, err)
	}
	cols := op.Columnas
	if !cols.Completas() {
		cols = dominio.DetectarColumnas(encabezados)
	}
	if !cols.Completas() {
		return nil, nil, fmt.Errorf("%w: no se pudieron determinar las columnas sku/orden/cantidad", domain.ErrCSVInvalido)
	}

	posX, posY, fuente := uc.cfg.PosX, uc.cfg.PosY, uc.cfg.FontSize
	if op.PosX > 0 {
		posX = op.PosX
	}
	if op.PosY > 0 {
		posY = op.PosY
	}
	if op.FontSize > 0 {
		fuente = op.FontSize
	}

	anotaciones := dominio.Anotaciones(paginas, filas, cols, fuente)
	salida, err := uc.estampa.Estampar(pdfData, anotaciones, posX, posY)
	if err != nil {
		return nil, nil, err
	}

	ahora := time.Now()
	despachos := uc.armarDespachos(userID, username, nombreArchivo, paginas, filas, cols, ahora)

	if op.IncluirResumen && len(despachos) > 0 {
		hoja, err := uc.resumen.Resumen(ahora, agruparResumen(despachos))
		if err != nil {
			return nil, nil, err
		}
		salida, err = uc.estampa.Unir(salida, hoja)
		if err != nil {
			return nil, nil, err
		}
	}

	if err := uc.registrar(ctx, userID, username, nombreArchivo, len(filas), len(anotaciones), despachos, ahora); err != nil {
		return nil, nil, err
	}

	return salida, &dto.GenerarResponse{
		PaginasAnotadas: len(anotaciones),
		Despachos:       len(despachos),
	}, nil
}

func (uc *UseCase) paginas(data []byte) ([]dominio.Pagina, error) {
	textos, err := uc.extractor.Paginas(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPDFInvalido, err)
	}
	paginas := make([]dominio.Pagina, 0, len(textos))
	for i, texto := range textos {
		orden, _ := dominio.ExtraerNumeroOrden(texto)
		paginas = append(paginas, dominio.Pagina{Numero: i + 1, NumeroOrden: orden})
	}
	return paginas, nil
}

// armarDespachos genera un registro por parte de SKU y por página anotada.
func (uc *UseCase) armarDespachos(userID, username, archivo string, paginas []dominio.Pagina, filas [][]string, cols dominio.Columnas, ahora time.Time) []*entity.Despacho {
	var out []*entity.Despacho
	for _, pg := range paginas {
		if pg.NumeroOrden == "" {
			continue
		}
		for _, p := range dominio.ProductosParaOrden(filas, cols, pg.NumeroOrden) {
			out = append(out, &entity.Despacho{
				UserID:         userID,
				Username:       username,
				SKU:            p.SKU,
				NombreProducto: p.SKU,
				Cantidad:       p.Cantidad,
				NumeroPedido:   pg.NumeroOrden,
				FechaDespacho:  ahora,
				ArchivoRotulo:  archivo,
			})
		}
	}
	return out
}

func agruparResumen(despachos []*entity.Despacho) []ItemResumen {
	totales := make(map[string]int)
	for _, d := range despachos {
		totales[d.SKU] += d.Cantidad
	}
	items := make([]ItemResumen, 0, len(totales))
	for sku, n := range totales {
		items = append(items, ItemResumen{SKU: sku, Cantidad: n})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].SKU < items[j].SKU })
	return items
}

func (uc *UseCase) registrar(ctx context.Context, userID, username, archivo string, filas, paginasAnotadas int, despachos []*entity.Despacho, ahora time.Time) error {
	return uc.tx.Run(ctx, func(
		_ repository.UserProfileRepository,
		actividades repository.ActividadRepository,
		repoDespachos repository.DespachoRepository,
	) error {
		if len(despachos) > 0 {
			if err := repoDespachos.CreateBatch(ctx, despachos); err != nil {
				return err
			}
		}
		registros := []*entity.ActividadLog{
			{
				UserID:        userID,
				Username:      username,
				ActivityType:  entity.ActividadArchivoProcesado,
				Cantidad:      filas,
				ArchivoNombre: archivo,
				CreatedAt:     ahora,
			},
			{
				UserID:        userID,
				Username:      username,
				ActivityType:  entity.ActividadPedidoProcesado,
				Cantidad:      paginasAnotadas,
				ArchivoNombre: archivo,
				CreatedAt:     ahora,
			},
			{
				UserID:        userID,
				Username:      username,
				ActivityType:  entity.ActividadSKURotulo,
				Cantidad:      len(despachos),
				ArchivoNombre: archivo,
				Metadata:      map[string]any{"paginas_anotadas": paginasAnotadas},
				CreatedAt:     ahora,
			},
		}
		for _, a := range registros {
			if err := actividades.Create(ctx, a); err != nil {
				return err
			}
		}
		return nil
	})
}
