// Package storage sube documentos generados al almacenamiento en la nube del usuario.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/pkg/logger"
)

const viewerURLFormat = "https://drive.google.com/file/d/%s/view"

// AuthRequiredError el usuario debe dar consentimiento antes de subir.
type AuthRequiredError struct {
	AuthURL string
}

func (e *AuthRequiredError) Error() string { return "se requiere iniciar sesión en Drive" }

// Unwrap permite errors.Is(err, domain.ErrUnauthorized).
func (e *AuthRequiredError) Unwrap() error { return domain.ErrUnauthorized }

// ViewerURL URL de visualización de un archivo.
func ViewerURL(fileID string) string { return fmt.Sprintf(viewerURLFormat, fileID) }

// UploadUseCase sube el PDF de un borrador a una carpeta con nombre fijo.
// Sin reintentos ni subida reanudable; una subida a la vez por borrador.
type UploadUseCase struct {
	session DriveSession
	store   FileStore
	source  DocumentSource
	folder  string
	log     *logger.Logger

	mu     sync.Mutex
	status map[string]entity.UploadStatus
}

// NewUploadUseCase construye el caso de uso.
func NewUploadUseCase(session DriveSession, store FileStore, source DocumentSource, folder string, log *logger.Logger) *UploadUseCase {
	return &UploadUseCase{
		session: session,
		store:   store,
		source:  source,
		folder:  folder,
		log:     log,
		status:  make(map[string]entity.UploadStatus),
	}
}

// Status estado de la última subida del borrador (idle si nunca se subió).
func (uc *UploadUseCase) Status(draftID string) entity.UploadStatus {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if st, ok := uc.status[draftID]; ok {
		return st
	}
	return entity.UploadStatus{State: entity.UploadIdle}
}

// Upload genera el PDF del borrador y lo sube. Errores de sesión se devuelven sin
// tocar el estado; un borrador inexistente no deja estado; cualquier otro fallo deja
// el estado en error y el detalle en el log.
func (uc *UploadUseCase) Upload(ctx context.Context, draftID string) (entity.UploadStatus, error) {
	if !uc.session.Ready() {
		return uc.Status(draftID), domain.ErrDriveUnavailable
	}
	if !uc.session.SignedIn() {
		return uc.Status(draftID), &AuthRequiredError{AuthURL: uc.session.AuthURL()}
	}

	// El id puede apuntar al buffer de la petición; el mapa vive más que ella.
	draftID = strings.Clone(draftID)

	uc.mu.Lock()
	if uc.status[draftID].State == entity.UploadUploading {
		uc.mu.Unlock()
		return entity.UploadStatus{State: entity.UploadUploading}, domain.ErrUploadInProgress
	}
	uc.status[draftID] = entity.UploadStatus{State: entity.UploadUploading}
	uc.mu.Unlock()

	fileID, err := uc.upload(ctx, draftID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.Forget(draftID)
			return entity.UploadStatus{State: entity.UploadIdle}, err
		}
		uc.log.Error().Err(err).Str("draft_id", draftID).Str("folder", uc.folder).Msg("subida a Drive fallida")
		st := uc.finish(draftID, entity.UploadStatus{State: entity.UploadError})
		if errors.Is(err, domain.ErrUnauthorized) {
			return st, err
		}
		return st, fmt.Errorf("subida a Drive: %w", err)
	}

	st := uc.finish(draftID, entity.UploadStatus{State: entity.UploadSuccess, FileID: fileID, URL: ViewerURL(fileID)})
	uc.log.Info().Str("draft_id", draftID).Str("file_id", fileID).Msg("documento subido a Drive")
	uc.source.MarkSent(ctx, draftID)
	return st, nil
}

func (uc *UploadUseCase) upload(ctx context.Context, draftID string) (string, error) {
	content, fileName, err := uc.source.PDF(ctx, draftID)
	if err != nil {
		return "", err
	}
	folderID, err := uc.resolveFolder(ctx)
	if err != nil {
		return "", err
	}
	return uc.store.UploadFile(ctx, fileName, "application/pdf", content, folderID)
}

// resolveFolder primera carpeta con el nombre exacto, o una nueva.
func (uc *UploadUseCase) resolveFolder(ctx context.Context) (string, error) {
	id, found, err := uc.store.FindFolder(ctx, uc.folder)
	if err != nil {
		return "", err
	}
	if found {
		return id, nil
	}
	return uc.store.CreateFolder(ctx, uc.folder)
}

func (uc *UploadUseCase) finish(draftID string, st entity.UploadStatus) entity.UploadStatus {
	uc.mu.Lock()
	uc.status[draftID] = st
	uc.mu.Unlock()
	return st
}

// Forget olvida el estado de subida del borrador (descartado o inexistente).
func (uc *UploadUseCase) Forget(draftID string) {
	uc.mu.Lock()
	delete(uc.status, draftID)
	uc.mu.Unlock()
}

// SignIn URL de consentimiento; ErrDriveUnavailable si la integración no está configurada.
func (uc *UploadUseCase) SignIn() (string, error) {
	if !uc.session.Ready() {
		return "", domain.ErrDriveUnavailable
	}
	return uc.session.AuthURL(), nil
}

// CompleteSignIn canjea el código devuelto por el proveedor.
func (uc *UploadUseCase) CompleteSignIn(ctx context.Context, state, code string) error {
	if !uc.session.Ready() {
		return domain.ErrDriveUnavailable
	}
	if err := uc.session.Exchange(ctx, state, code); err != nil {
		uc.log.Warn().Err(err).Msg("inicio de sesión en Drive fallido")
		return err
	}
	return nil
}

// SignOut cierra la sesión.
func (uc *UploadUseCase) SignOut() { uc.session.SignOut() }

// Session estado de la sesión.
func (uc *UploadUseCase) Session() (available, signedIn bool) {
	return uc.session.Ready(), uc.session.Ready() && uc.session.SignedIn()
}
