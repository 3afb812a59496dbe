package storage

import "context"

// DriveSession sesión del usuario con el almacenamiento en la nube.
type DriveSession interface {
	Ready() bool
	SignedIn() bool
	AuthURL() string
	Exchange(ctx context.Context, state, code string) error
	SignOut()
}

// FileStore operaciones de carpetas y archivos en la nube.
type FileStore interface {
	FindFolder(ctx context.Context, name string) (id string, found bool, err error)
	CreateFolder(ctx context.Context, name string) (string, error)
	UploadFile(ctx context.Context, name, mimeType string, content []byte, parentID string) (string, error)
}

// DocumentSource genera el PDF a subir y registra el envío.
type DocumentSource interface {
	PDF(ctx context.Context, draftID string) ([]byte, string, error)
	MarkSent(ctx context.Context, draftID string)
}
