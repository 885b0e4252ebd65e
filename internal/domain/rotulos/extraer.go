// Package rotulos implementa el cruce de rótulos de envío con planillas de
// pedidos: extracción del número interno de orden del texto de cada página y
// composición de la anotación de SKUs a estampar sobre el rótulo.
package rotulos

import "regexp"

// Patrones de número de orden, en orden de prioridad. El primero que matchea
// gana. El número interno es siempre un código de 4 dígitos.
var patronesOrden = []*regexp.Regexp{
	regexp.MustCompile(`(?i)N°\s*Interno:\s*#?(\d{4})`),
	regexp.MustCompile(`(?i)N\s*Interno:\s*#?(\d{4})`),
	regexp.MustCompile(`(?i)Interno:\s*#?(\d{4})`),
	regexp.MustCompile(`#(\d{4})`),
}

// ExtraerNumeroOrden busca el número interno de orden en el texto concatenado
// de una página. Devuelve ("", false) si ningún patrón matchea; esa página
// queda excluida de la anotación.
func ExtraerNumeroOrden(texto string) (string, bool) {
	for _, p := range patronesOrden {
		if m := p.FindStringSubmatch(texto); m != nil {
			return m[1], true
		}
	}
	return "", false
}
