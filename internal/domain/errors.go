package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrInactiveProduct    = errors.New("producto inactivo")
	ErrEmptyLines         = errors.New("el documento debe tener al menos un producto")
	ErrAlreadyVoided      = errors.New("el documento ya está anulado")
	ErrInvalidTransition  = errors.New("transición de estado no permitida")
	ErrTenantRequired     = errors.New("se requiere una empresa (X-Company-ID)")
)
