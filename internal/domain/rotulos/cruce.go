package rotulos

import (
	"strconv"
	"strings"
)

// Pagina una página del PDF de rótulos: número 1-based y número de orden
// extraído de su texto (vacío si no se encontró).
type Pagina struct {
	Numero      int
	NumeroOrden string
}

// Columnas índices de columna elegidos (o autodetectados) sobre la planilla.
// -1 significa "no seleccionada".
type Columnas struct {
	SKU      int
	Orden    int
	Cantidad int
}

// DetectarColumnas busca las columnas por nombre de encabezado: la primera que
// contenga "sku", "orden"/"order" y "cantidad" respectivamente. Devuelve -1 en
// las que no encuentra, para que el operador las elija a mano.
func DetectarColumnas(encabezados []string) Columnas {
	c := Columnas{SKU: -1, Orden: -1, Cantidad: -1}
	for i, h := range encabezados {
		k := strings.ToLower(strings.TrimSpace(h))
		switch {
		case c.SKU == -1 && strings.Contains(k, "sku"):
			c.SKU = i
		case c.Orden == -1 && (strings.Contains(k, "orden") || strings.Contains(k, "order")):
			c.Orden = i
		case c.Cantidad == -1 && strings.Contains(k, "cantidad"):
			c.Cantidad = i
		}
	}
	return c
}

// Completas informa si las tres columnas están seleccionadas.
func (c Columnas) Completas() bool {
	return c.SKU >= 0 && c.Orden >= 0 && c.Cantidad >= 0
}

// Producto un SKU despachado para una orden, ya formateado para el rótulo.
type Producto struct {
	SKU      string
	Cantidad int
	Texto    string // "SKU-001 (x3)" o "SKU-001" sin cantidad
}

func celda(fila []string, idx int) string {
	if idx < 0 || idx >= len(fila) {
		return ""
	}
	return fila[idx]
}

// ProductosParaOrden selecciona las filas cuyo número de orden (recortado)
// iguala exactamente al de la página y arma un producto por cada parte de SKU.
// Los SKUs compuestos con "+" ("KIT-A + KIT-B") se separan en partes. La
// cantidad se agrega como "(xN)" salvo que la parte ya la traiga incluida.
func ProductosParaOrden(filas [][]string, cols Columnas, numeroOrden string) []Producto {
	orden := strings.TrimSpace(numeroOrden)
	if orden == "" {
		return nil
	}
	var productos []Producto
	for _, fila := range filas {
		if strings.TrimSpace(celda(fila, cols.Orden)) != orden {
			continue
		}
		sku := strings.TrimSpace(celda(fila, cols.SKU))
		if sku == "" {
			continue
		}
		cantidad := strings.TrimSpace(celda(fila, cols.Cantidad))
		n, err := strconv.Atoi(cantidad)
		if err != nil || n <= 0 {
			n = 1
		}
		for _, parte := range strings.Split(sku, "+") {
			parte = strings.TrimSpace(parte)
			if parte == "" {
				continue
			}
			texto := parte
			if cantidad != "" && !strings.Contains(parte, "(x") {
				texto = parte + " (x" + cantidad + ")"
			}
			productos = append(productos, Producto{SKU: parte, Cantidad: n, Texto: texto})
		}
	}
	return productos
}

// AgruparEnLineas arma las líneas de la anotación: dos productos por línea,
// separados por ", ".
func AgruparEnLineas(productos []Producto) []string {
	var lineas []string
	for i := 0; i < len(productos); i += 2 {
		fin := i + 2
		if fin > len(productos) {
			fin = len(productos)
		}
		textos := make([]string, 0, 2)
		for _, p := range productos[i:fin] {
			textos = append(textos, p.Texto)
		}
		lineas = append(lineas, strings.Join(textos, ", "))
	}
	return lineas
}

// TamanoFuente reduce la fuente a 8pt cuando la anotación supera dos líneas,
// para que entre en el rótulo.
func TamanoFuente(lineas []string, base float64) float64 {
	if len(lineas) > 2 {
		return 8
	}
	return base
}

// Anotacion texto multilínea listado para estampar en una página.
type Anotacion struct {
	Pagina   int // 1-based
	Lineas   []string
	FontSize float64
}

// Anotaciones calcula, para cada página con número de orden y filas
// coincidentes con SKU no vacío, la anotación a estampar. Las páginas sin
// orden o sin productos no aparecen en el resultado y pasan sin modificar.
// Determinista: mismas páginas y filas producen siempre el mismo resultado.
func Anotaciones(paginas []Pagina, filas [][]string, cols Columnas, fontBase float64) []Anotacion {
	var out []Anotacion
	for _, pg := range paginas {
		if pg.NumeroOrden == "" {
			continue
		}
		productos := ProductosParaOrden(filas, cols, pg.NumeroOrden)
		if len(productos) == 0 {
			continue
		}
		lineas := AgruparEnLineas(productos)
		out = append(out, Anotacion{
			Pagina:   pg.Numero,
			Lineas:   lineas,
			FontSize: TamanoFuente(lineas, fontBase),
		})
	}
	return out
}
