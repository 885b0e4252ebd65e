package pdf

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	approtulos "github.com/facil-uno/facil-api/internal/application/rotulos"
	"github.com/facil-uno/facil-api/internal/domain/rotulos"
)

var _ approtulos.Estampador = (*Estampador)(nil)

// Estampador escribe las anotaciones de SKU sobre el PDF original usando
// watermarks de texto de pdfcpu, una por página anotada. Las páginas sin
// anotación pasan intactas.
type Estampador struct {
	conf *model.Configuration
}

// NewEstampador construye el estampador con la configuración por defecto de
// pdfcpu (validación relajada, como vienen los PDFs de los couriers).
func NewEstampador() *Estampador {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &Estampador{conf: conf}
}

// Estampar aplica cada anotación en su página, en coordenadas absolutas en
// puntos desde el borde inferior izquierdo.
func (e *Estampador) Estampar(pdfData []byte, anotaciones []rotulos.Anotacion, posX, posY float64) ([]byte, error) {
	if len(anotaciones) == 0 {
		return pdfData, nil
	}
	marcas := make(map[int][]*model.Watermark, len(anotaciones))
	for _, a := range anotaciones {
		wm, err := watermarkAnotacion(a, posX, posY)
		if err != nil {
			return nil, err
		}
		marcas[a.Pagina] = []*model.Watermark{wm}
	}
	var out bytes.Buffer
	if err := api.AddWatermarksSliceMap(bytes.NewReader(pdfData), &out, marcas, e.conf); err != nil {
		return nil, fmt.Errorf("estampar anotaciones: %w", err)
	}
	return out.Bytes(), nil
}

// Unir concatena los documentos en uno solo, en orden.
func (e *Estampador) Unir(docs ...[]byte) ([]byte, error) {
	if len(docs) == 1 {
		return docs[0], nil
	}
	readers := make([]io.ReadSeeker, 0, len(docs))
	for _, d := range docs {
		readers = append(readers, bytes.NewReader(d))
	}
	var out bytes.Buffer
	if err := api.MergeRaw(readers, &out, false, e.conf); err != nil {
		return nil, fmt.Errorf("unir documentos: %w", err)
	}
	return out.Bytes(), nil
}

func watermarkAnotacion(a rotulos.Anotacion, posX, posY float64) (*model.Watermark, error) {
	desc := fmt.Sprintf(
		"font:Helvetica, points:%.0f, scale:1 abs, rot:0, pos:bl, off:%.0f %.0f, color:0 0 0, op:1",
		a.FontSize, posX, posY,
	)
	wm, err := api.TextWatermark(strings.Join(a.Lineas, "\n"), desc, true, false, types.POINTS)
	if err != nil {
		return nil, fmt.Errorf("watermark página %d: %w", a.Pagina, err)
	}
	return wm, nil
}
