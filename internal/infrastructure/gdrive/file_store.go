package gdrive

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const folderMimeType = "application/vnd.google-apps.folder"

// FileStore carpetas y archivos en el Drive del usuario de la sesión.
type FileStore struct {
	session *Session
	opts    []option.ClientOption
}

// NewFileStore construye el almacén. opts adicionales (endpoint, cliente HTTP) se usan en tests.
func NewFileStore(session *Session, opts ...option.ClientOption) *FileStore {
	return &FileStore{session: session, opts: opts}
}

func (s *FileStore) service(ctx context.Context) (*drive.Service, error) {
	ts, err := s.session.TokenSource(ctx)
	if err != nil {
		return nil, err
	}
	opts := append([]option.ClientOption{option.WithTokenSource(ts)}, s.opts...)
	srv, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("drive: crear servicio: %w", err)
	}
	return srv, nil
}

// FolderQuery consulta de búsqueda de una carpeta por nombre exacto, excluyendo la papelera.
func FolderQuery(name string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(name)
	return fmt.Sprintf("name='%s' and mimeType='%s' and trashed=false", escaped, folderMimeType)
}

// FindFolder devuelve el id de la primera carpeta con ese nombre.
func (s *FileStore) FindFolder(ctx context.Context, name string) (string, bool, error) {
	srv, err := s.service(ctx)
	if err != nil {
		return "", false, err
	}
	list, err := srv.Files.List().
		Q(FolderQuery(name)).
		Fields("files(id, name)").
		Spaces("drive").
		Context(ctx).
		Do()
	if err != nil {
		return "", false, fmt.Errorf("drive: buscar carpeta: %w", err)
	}
	if len(list.Files) == 0 {
		return "", false, nil
	}
	return list.Files[0].Id, true, nil
}

// CreateFolder crea una carpeta en la raíz del Drive.
func (s *FileStore) CreateFolder(ctx context.Context, name string) (string, error) {
	srv, err := s.service(ctx)
	if err != nil {
		return "", err
	}
	f, err := srv.Files.Create(&drive.File{Name: name, MimeType: folderMimeType}).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("drive: crear carpeta: %w", err)
	}
	return f.Id, nil
}

// UploadFile sube el contenido en una sola petición multipart (metadatos + bytes).
func (s *FileStore) UploadFile(ctx context.Context, name, mimeType string, content []byte, parentID string) (string, error) {
	srv, err := s.service(ctx)
	if err != nil {
		return "", err
	}
	meta := &drive.File{Name: name, MimeType: mimeType}
	if parentID != "" {
		meta.Parents = []string{parentID}
	}
	f, err := srv.Files.Create(meta).
		Media(bytes.NewReader(content), googleapi.ChunkSize(0), googleapi.ContentType(mimeType)).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("drive: subir archivo: %w", err)
	}
	return f.Id, nil
}
