package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")
	ErrConflict     = errors.New("conflicto con el estado actual")

	// Tabla dinámica de ítems.
	ErrRowNotFound    = errors.New("fila no encontrada")
	ErrUnknownColumn  = errors.New("columna desconocida")
	ErrReadOnlyColumn = errors.New("la columna es de solo lectura")
	ErrRequiredColumn = errors.New("la columna es obligatoria y no se puede eliminar")

	// Subida a la nube.
	ErrDriveUnavailable = errors.New("almacenamiento en la nube no disponible")
	ErrUploadInProgress = errors.New("ya hay una subida en curso para este documento")
)
