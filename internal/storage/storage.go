package storage

import (
	"context"
	"fmt"
	"strings"

	"inkwell/internal/config"
)

const (
	// TypeLocal stores files on the local filesystem.
	TypeLocal = "local"
	// TypeS3 stores files on Amazon S3 or a compatible backend.
	TypeS3 = "s3"
	// TypeOSS stores files on Aliyun OSS.
	TypeOSS = "oss"
	// TypeCOS stores files on Tencent COS.
	TypeCOS = "cos"
	// TypeR2 stores files on Cloudflare R2.
	TypeR2 = "r2"
)

// SaveOptions controls how a backend persists a file.
//
// Category organises files on disk, BaseName is the file name without
// extension, and Extension hints the preferred file extension (without the
// leading dot).
type SaveOptions struct {
	Category  string
	BaseName  string
	Extension string
}

// Storage persists binary data and returns a backend-specific key (for local
// storage, a relative path). Delete removes a previously saved object; a
// missing object is not an error.
type Storage interface {
	Save(ctx context.Context, data []byte, opts SaveOptions) (string, error)
	Delete(ctx context.Context, key string) error
}

// LocalBaseDirProvider is implemented by backends exposing a local directory
// that can be served directly over HTTP.
type LocalBaseDirProvider interface {
	LocalBaseDir() string
}

// NewStorage instantiates the backend selected by config.
func NewStorage(cfg config.Config) (Storage, error) {
	typeName := strings.ToLower(strings.TrimSpace(cfg.StorageType))
	switch typeName {
	case "", TypeLocal:
		return NewLocalStorage(cfg.StorageLocalDir)
	case TypeS3:
		return NewS3Storage(cfg)
	case TypeOSS:
		return NewOSSStorage(cfg)
	case TypeCOS:
		return NewCOSStorage(cfg)
	case TypeR2:
		return NewR2Storage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.StorageType)
	}
}
