package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrNivelInvalido      = errors.New("nivel de usuario inválido")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrPDFInvalido        = errors.New("el archivo PDF no se pudo procesar")
	ErrCSVInvalido        = errors.New("el archivo CSV no se pudo procesar")
)
