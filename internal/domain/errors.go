package domain

import "errors"

// Errores de dominio (sin dependencias externas). La capa HTTP los traduce a status + mensaje.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrAccountNotFound    = errors.New("cuenta no encontrada")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrTaxIDAlreadyExists = errors.New("el cnpj ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidID          = errors.New("identificador inválido")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInvalidCredentials = errors.New("email o contraseña incorrectos")
	ErrProtectedField     = errors.New("campo protegido: no se puede modificar")
	ErrOwnershipTamper    = errors.New("no se puede cambiar el propietario del recurso")
	ErrAlreadyDeactivated = errors.New("la cuenta ya está desactivada")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrInUse              = errors.New("el recurso está referenciado por ventas")
)
