package pdf

import (
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	approtulos "github.com/facil-uno/facil-api/internal/application/rotulos"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ approtulos.GeneradorResumen = (*GeneradorResumen)(nil)

// GeneradorResumen arma la hoja resumen que se anexa al final del PDF de
// rótulos anotado: una tabla SKU / unidades con el total despachado del día.
type GeneradorResumen struct{}

// NewGeneradorResumen construye el generador.
func NewGeneradorResumen() *GeneradorResumen { return &GeneradorResumen{} }

// Resumen genera la hoja como PDF A4 y devuelve sus bytes.
func (g *GeneradorResumen) Resumen(fecha time.Time, items []approtulos.ItemResumen) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(15).WithBottomMargin(15).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 10}).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerResumen(fecha))
	m.AddRows(line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tablaHeaderRow())

	total := 0
	for _, it := range items {
		total += it.Cantidad
		m.AddRows(itemRow(it))
	}

	m.AddRows(line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(totalRow(total, len(items)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar resumen: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerResumen(fecha time.Time) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New("RESUMEN DE PRODUCTOS DESPACHADOS", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(4).Add(
			text.New("Fecha: "+fecha.Format("02/01/2006"), props.Text{
				Size: 9, Align: align.Right, Top: 4, Color: colorGray,
			}),
		),
	)
}

func tablaHeaderRow() core.Row {
	return row.New(8).Add(
		col.New(8).Add(text.New("SKU", props.Text{Style: fontstyle.Bold, Size: 10, Top: 1})),
		col.New(4).Add(text.New("Unidades", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1})),
	)
}

func itemRow(it approtulos.ItemResumen) core.Row {
	return row.New(6).Add(
		col.New(8).Add(text.New(it.SKU, props.Text{Size: 9, Top: 1})),
		col.New(4).Add(text.New(strconv.Itoa(it.Cantidad), props.Text{Size: 9, Align: align.Right, Top: 1})),
	)
}

func totalRow(unidades, skus int) core.Row {
	return row.New(8).Add(
		col.New(8).Add(text.New(fmt.Sprintf("SKUs distintos: %d", skus), props.Text{
			Size: 9, Color: colorGray, Top: 2,
		})),
		col.New(4).Add(text.New(fmt.Sprintf("Total: %d", unidades), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1,
		})),
	)
}
