package entity

// UploadState estado de la subida a la nube de un documento.
type UploadState string

const (
	UploadIdle      UploadState = "idle"
	UploadUploading UploadState = "uploading"
	UploadSuccess   UploadState = "success"
	UploadError     UploadState = "error"
)

// UploadStatus resultado visible para el cliente (sin detalle del error).
type UploadStatus struct {
	State  UploadState `json:"state"`
	FileID string      `json:"file_id,omitempty"`
	URL    string      `json:"url,omitempty"`
}
