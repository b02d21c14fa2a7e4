package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrProductNotFound        = errors.New("producto no encontrado")
	ErrInsufficientStock      = errors.New("stock insuficiente")
	ErrEmptyOrder             = errors.New("la venta no tiene líneas")
	ErrStorageUnavailable     = errors.New("almacenamiento no disponible")
	ErrConflict               = errors.New("conflicto con el estado actual")
	ErrConflictRetryExhausted = errors.New("conflicto de concurrencia no resuelto tras reintentos")
	ErrInvalidInput           = errors.New("entrada inválida")
	ErrDuplicate              = errors.New("recurso duplicado")
	ErrNotFound               = errors.New("recurso no encontrado")
)
