// Package assethost uploads image bytes to a third-party asset host and
// returns the public URL.
package assethost

import (
	"context"
	"errors"
	"path"
	"path/filepath"
	"strings"

	"github.com/folio-space/core/internal/config"
	"github.com/google/uuid"
)

var ErrNotConfigured = errors.New("asset host not configured")

// Object is a file to upload.
type Object struct {
	Name        string
	ContentType string
	Data        []byte
}

// Uploader stores an object and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, obj Object) (string, error)
	Name() string
}

// New picks the configured provider. With no explicit provider it uses
// ImageKit when a private key is set, then S3 when a bucket is set.
func New(cfg *config.AppConfig) (Uploader, error) {
	provider := cfg.Upload.Provider
	if provider == "" {
		switch {
		case cfg.ImageKit.PrivateKey != "":
			provider = config.AssetProviderImageKit
		case cfg.S3.Bucket != "":
			provider = config.AssetProviderS3
		default:
			return Disabled{}, nil
		}
	}

	switch provider {
	case config.AssetProviderImageKit:
		return NewImageKit(cfg.ImageKit, cfg.Upload.Folder)
	case config.AssetProviderS3:
		return NewS3(cfg.S3, cfg.Upload.Folder)
	}
	return nil, errors.New("unknown asset provider " + provider)
}

// Disabled rejects every upload.
type Disabled struct{}

func (Disabled) Upload(context.Context, Object) (string, error) { return "", ErrNotConfigured }
func (Disabled) Name() string                                   { return "disabled" }

// BuildFileName generates a collision-resistant filename that keeps the
// original extension.
func BuildFileName(original string) string {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(original)))
	if ext == "" || len(ext) > 10 {
		ext = ".dat"
	}
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:18] + ext
}

// objectKey joins the upload folder and name without a leading slash.
func objectKey(folder, name string) string {
	key := path.Join("/", strings.ReplaceAll(folder, "\\", "/"), name)
	return strings.TrimPrefix(key, "/")
}
