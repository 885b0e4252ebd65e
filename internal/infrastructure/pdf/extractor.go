// Package pdf implementa los adaptadores de PDF del flujo de rótulos:
// extracción de texto por página, estampado de anotaciones sobre el documento
// original y generación de la hoja resumen.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"

	approtulos "github.com/facil-uno/facil-api/internal/application/rotulos"
)

var _ approtulos.ExtractorPaginas = (*Extractor)(nil)

// Extractor lee el texto plano de cada página de un PDF de rótulos.
type Extractor struct{}

// NewExtractor construye el extractor.
func NewExtractor() *Extractor { return &Extractor{} }

// Paginas devuelve el texto de cada página, en orden. Las páginas sin texto
// extraíble (rótulos rasterizados) quedan como string vacío y no cortan el
// procesamiento de las demás.
func (e *Extractor) Paginas(data []byte) ([]string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("leer pdf: %w", err)
	}
	total := r.NumPage()
	textos := make([]string, 0, total)
	for i := 1; i <= total; i++ {
		textos = append(textos, textoPagina(r, i))
	}
	return textos, nil
}

func textoPagina(r *pdf.Reader, num int) (texto string) {
	// La librería paniquea con content streams malformados; una página rota
	// se trata como página sin texto.
	defer func() {
		if recover() != nil {
			texto = ""
		}
	}()
	page := r.Page(num)
	if page.V.IsNull() {
		return ""
	}
	s, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return s
}
