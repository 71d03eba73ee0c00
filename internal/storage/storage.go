package storage

import (
	"context"
)

// FileStorage guarda arquivos enviados pelo painel (hoje, a foto da
// empresa) e devolve a URL pública.
type FileStorage interface {
	UploadFile(ctx context.Context, data []byte, filename string) (string, error)
	DeleteFile(ctx context.Context, fileURL string) error
}
