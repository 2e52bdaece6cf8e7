package blob

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("blob not found")

// Store es el contrato minimo de archivos por path (fotos de mascotas).
// Implementaciones: in-memory (mock) y S3.
type Store interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) (data []byte, contentType string, err error)
}
