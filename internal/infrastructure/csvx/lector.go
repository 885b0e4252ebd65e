// Package csvx implementa la lectura de las planillas de pedidos que exportan
// las plataformas de e-commerce: CSV con delimitador coma o punto y coma,
// con o sin BOM, y con comillas no siempre bien balanceadas.
package csvx

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	approtulos "github.com/facil-uno/facil-api/internal/application/rotulos"
)

var _ approtulos.LectorPlanilla = (*Lector)(nil)

// Lector parsea planillas CSV en encabezados y filas.
type Lector struct{}

// NewLector construye el lector.
func NewLector() *Lector { return &Lector{} }

// Leer parsea la planilla completa. La primera fila son los encabezados. El
// delimitador se detecta sobre la primera línea (punto y coma o coma); las
// filas pueden tener distinta cantidad de campos.
func (l *Lector) Leer(data []byte) ([]string, [][]string, error) {
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF}) // BOM de Excel

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = detectarDelimitador(data)
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	registros, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("parsear csv: %w", err)
	}
	if len(registros) == 0 {
		return nil, nil, fmt.Errorf("planilla vacía")
	}
	encabezados := make([]string, len(registros[0]))
	for i, h := range registros[0] {
		encabezados[i] = strings.TrimSpace(h)
	}
	return encabezados, registros[1:], nil
}

// detectarDelimitador elige entre ';' y ',' contando ocurrencias en la primera
// línea. Las exportaciones regionales de Excel usan punto y coma.
func detectarDelimitador(data []byte) rune {
	linea := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		linea = data[:i]
	}
	if bytes.Count(linea, []byte{';'}) > bytes.Count(linea, []byte{','}) {
		return ';'
	}
	return ','
}
