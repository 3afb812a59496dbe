package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cotizador-api/internal/application/dto"
	"github.com/jhoicas/Cotizador-api/internal/application/storage"
	"github.com/jhoicas/Cotizador-api/internal/domain"
)

type errorMapping struct {
	err     error
	status  int
	code    string
	message string
}

// Orden relevante: los errores de tabla se evalúan antes que los genéricos.
var errorMappings = []errorMapping{
	{domain.ErrRowNotFound, fiber.StatusNotFound, "ROW_NOT_FOUND", "fila no encontrada"},
	{domain.ErrUnknownColumn, fiber.StatusBadRequest, "UNKNOWN_COLUMN", "columna desconocida"},
	{domain.ErrReadOnlyColumn, fiber.StatusBadRequest, "READ_ONLY_COLUMN", "la columna amount es calculada"},
	{domain.ErrRequiredColumn, fiber.StatusConflict, "REQUIRED_COLUMN", "las columnas estándar no se pueden eliminar"},
	{domain.ErrUploadInProgress, fiber.StatusConflict, "UPLOAD_IN_PROGRESS", "ya hay una subida en curso"},
	{domain.ErrDriveUnavailable, fiber.StatusServiceUnavailable, "DRIVE_UNAVAILABLE", "almacenamiento en la nube no disponible"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND", "borrador no encontrado"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION", "datos inválidos"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT", "operación no permitida en el estado actual"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED", "no autorizado"},
}

// writeError traduce errores de dominio a status HTTP y dto.ErrorResponse.
// Errores de validación incluyen el detalle; el resto usa mensajes fijos.
func writeError(c *fiber.Ctx, err error) error {
	var authErr *storage.AuthRequiredError
	if errors.As(err, &authErr) {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.DriveAuthResponse{
			Code:    "DRIVE_AUTH_REQUIRED",
			Message: "inicie sesión en Google Drive",
			AuthURL: authErr.AuthURL,
		})
	}
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			msg := m.message
			if m.err == domain.ErrInvalidInput {
				msg = err.Error()
			}
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: msg})
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
