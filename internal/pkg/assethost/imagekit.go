package assethost

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/folio-space/core/internal/config"
	"github.com/imagekit-developer/imagekit-go"
	"github.com/imagekit-developer/imagekit-go/api/uploader"
)

// ImageKit uploads through the ImageKit SDK.
type ImageKit struct {
	ik     *imagekit.ImageKit
	folder string
}

func NewImageKit(cfg config.ImageKitConfig, folder string) (*ImageKit, error) {
	if strings.TrimSpace(cfg.PrivateKey) == "" {
		return nil, fmt.Errorf("incomplete imagekit config: private_key is required")
	}
	uploadURL := strings.TrimSpace(cfg.UploadURL)
	if uploadURL == "" {
		return nil, fmt.Errorf("incomplete imagekit config: upload_url is required")
	}

	ik := imagekit.NewFromParams(imagekit.NewParams{
		PrivateKey:  cfg.PrivateKey,
		PublicKey:   cfg.PublicKey,
		UrlEndpoint: cfg.URLEndpoint,
	})
	// The SDK appends "files/upload" to its upload prefix.
	ik.Uploader.Config.API.UploadPrefix = strings.TrimSuffix(strings.TrimRight(uploadURL, "/"), "files/upload")
	if !strings.HasSuffix(ik.Uploader.Config.API.UploadPrefix, "/") {
		ik.Uploader.Config.API.UploadPrefix += "/"
	}
	return &ImageKit{ik: ik, folder: folder}, nil
}

func (k *ImageKit) Name() string { return config.AssetProviderImageKit }

func (k *ImageKit) Upload(ctx context.Context, obj Object) (string, error) {
	unique := true
	resp, err := k.ik.Uploader.Upload(ctx, bytes.NewReader(obj.Data), uploader.UploadParam{
		FileName:          obj.Name,
		Folder:            k.folder,
		UseUniqueFileName: &unique,
	})
	if err != nil {
		return "", fmt.Errorf("imagekit upload failed: %w", err)
	}
	if resp == nil || resp.Data.Url == "" {
		return "", fmt.Errorf("imagekit upload failed: response has no url")
	}
	return resp.Data.Url, nil
}
