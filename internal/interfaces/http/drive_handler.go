package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cotizador-api/internal/application/dto"
	"github.com/jhoicas/Cotizador-api/internal/application/storage"
	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
)

// DriveHandler sesión de Google Drive y subida de borradores.
type DriveHandler struct {
	uc *storage.UploadUseCase
}

// NewDriveHandler construye el handler.
func NewDriveHandler(uc *storage.UploadUseCase) *DriveHandler {
	return &DriveHandler{uc: uc}
}

func toUploadResponse(st entity.UploadStatus) dto.UploadStatusResponse {
	return dto.UploadStatusResponse{Status: string(st.State), FileID: st.FileID, URL: st.URL}
}

// Upload sube el PDF del borrador.
// POST /api/drafts/:id/drive
func (h *DriveHandler) Upload(c *fiber.Ctx) error {
	st, err := h.uc.Upload(c.UserContext(), c.Params("id"))
	if err != nil {
		if st.State == entity.UploadError && !errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
				Code: "UPLOAD_FAILED", Message: "no se pudo subir el documento, intente de nuevo",
			})
		}
		return writeError(c, err)
	}
	return c.JSON(toUploadResponse(st))
}

// Status estado de la última subida.
// GET /api/drafts/:id/drive
func (h *DriveHandler) Status(c *fiber.Ctx) error {
	return c.JSON(toUploadResponse(h.uc.Status(c.Params("id"))))
}

// Session estado de la sesión.
// GET /api/drive/session
func (h *DriveHandler) Session(c *fiber.Ctx) error {
	available, signedIn := h.uc.Session()
	return c.JSON(dto.DriveSessionResponse{Available: available, SignedIn: signedIn})
}

// Login redirige al consentimiento de Google.
// GET /api/drive/login
func (h *DriveHandler) Login(c *fiber.Ctx) error {
	u, err := h.uc.SignIn()
	if err != nil {
		return writeError(c, err)
	}
	return c.Redirect(u, fiber.StatusFound)
}

// Callback canjea el código de autorización.
// GET /api/drive/callback
func (h *DriveHandler) Callback(c *fiber.Ctx) error {
	if e := c.Query("error"); e != "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "DRIVE_CONSENT_DENIED", Message: e})
	}
	if err := h.uc.CompleteSignIn(c.UserContext(), c.Query("state"), c.Query("code")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.DriveSessionResponse{Available: true, SignedIn: true})
}

// Logout cierra la sesión.
// POST /api/drive/logout
func (h *DriveHandler) Logout(c *fiber.Ctx) error {
	h.uc.SignOut()
	return c.SendStatus(fiber.StatusNoContent)
}
