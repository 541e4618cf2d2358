package filestorage

import "mime/multipart"

// FileStorage defines the interface for stored-file operations. The document
// service treats the returned path as an opaque token.
type FileStorage interface {
	// SaveFile saves an uploaded file and returns the path token under which
	// it was stored.
	SaveFile(fileHeader *multipart.FileHeader) (string, error)

	// DeleteFile removes a previously stored file.
	DeleteFile(pathToken string) error

	// GetFullPath returns the full filesystem path for a stored path token.
	GetFullPath(pathToken string) string
}
