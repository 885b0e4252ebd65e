// Package nivel implementa la evaluación de acceso por nivel de usuario:
// secciones con nivel requerido, comparación inclusiva y el predicado de
// usuario pago para las secciones que exigen plan pagado en vez de nivel.
package nivel

import (
	"github.com/facil-uno/facil-api/internal/domain/entity"
)

// RequierePago centinela de nivel requerido: la sección no se gatea por nivel
// numérico sino por el predicado de usuario pago (EsUsuarioPago).
const RequierePago = -1

// Seccion configuración de una sección de la aplicación.
type Seccion struct {
	Clave          string
	Nombre         string
	Descripcion    string
	NivelRequerido int
}

// Secciones catálogo centralizado de secciones y niveles requeridos.
// El orden es el de presentación en la UI.
var Secciones = []Seccion{
	{"rentabilidad", "Calculadora de Rentabilidad", "Análisis financiero básico", entity.NivelInvitado},
	{"breakeven-roas", "Calcula tu Breakeven y ROAS", "Análisis de inversión", entity.NivelStarter},
	{"smartship", "SmartShip - Transformador de Pedidos", "Procesador de pedidos Andreani", entity.NivelBasic},
	{"historial", "Historial de Archivos", "Gestión de archivos procesados", entity.NivelBasic},
	{"informacion", "Información y Estadísticas", "Análisis inteligente de datos", entity.NivelBasic},
	{"pdf-generator", "Integrar SKU en Rótulos Andreani", "Generador de rótulos con SKU", entity.NivelPro},
	{"stock", "Control de Stock", "Stock despachado por tienda", RequierePago},
	{"admin", "Panel de Administración Dios", "Control total del sistema", entity.NivelDios},
}

// BuscarSeccion devuelve la configuración de una sección por clave.
func BuscarSeccion(clave string) (Seccion, bool) {
	for _, s := range Secciones {
		if s.Clave == clave {
			return s, true
		}
	}
	return Seccion{}, false
}

// nombres y colores por nivel para la UI.
var nombres = map[int]string{
	entity.NivelInvitado: "Invitado",
	entity.NivelStarter:  "Starter",
	entity.NivelBasic:    "Basic",
	entity.NivelPro:      "Pro",
	entity.NivelPlus:     "Plus",
	entity.NivelDios:     "Dios",
}

var colores = map[int]string{
	entity.NivelInvitado: "gray",
	entity.NivelStarter:  "green",
	entity.NivelBasic:    "blue",
	entity.NivelPro:      "purple",
	entity.NivelPlus:     "orange",
	entity.NivelDios:     "red",
}

// Nombre devuelve el nombre descriptivo de un nivel.
func Nombre(n int) string {
	if s, ok := nombres[n]; ok {
		return s
	}
	return "Desconocido"
}

// Color devuelve el color asociado a un nivel.
func Color(n int) string {
	if s, ok := colores[n]; ok {
		return s
	}
	return "gray"
}

// TieneAcceso decide si un nivel de usuario alcanza el nivel requerido de una
// sección. La comparación es inclusiva (igualdad otorga acceso). El centinela
// RequierePago no se resuelve acá: las secciones pagas se evalúan con
// TieneAccesoPerfil, que conoce el perfil completo.
func TieneAcceso(nivelUsuario, nivelRequerido int) bool {
	if nivelRequerido == RequierePago {
		return false
	}
	return nivelUsuario >= nivelRequerido
}

// TieneAccesoPerfil evalúa el acceso de un perfil a una sección, resolviendo
// el centinela RequierePago con el predicado de usuario pago.
func TieneAccesoPerfil(p *entity.UserProfile, s Seccion) bool {
	if p == nil {
		return false
	}
	if s.NivelRequerido == RequierePago {
		return EsUsuarioPago(p)
	}
	return TieneAcceso(p.Nivel, s.NivelRequerido)
}

// EsAdmin informa si el nivel es exactamente el centinela Dios. Se compara por
// igualdad y no por orden: ningún nivel futuro debe heredar permisos de admin
// por ser numéricamente mayor.
func EsAdmin(n int) bool {
	return n == entity.NivelDios
}
