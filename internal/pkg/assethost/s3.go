package assethost

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/folio-space/core/internal/config"
)

// S3 uploads to an S3-compatible bucket with PutObject.
type S3 struct {
	client       *s3.Client
	bucket       string
	folder       string
	endpoint     *url.URL
	region       string
	customDomain string
	pathStyle    bool
}

func NewS3(cfg config.S3Config, folder string) (*S3, error) {
	bucket := strings.TrimSpace(cfg.Bucket)
	region := strings.TrimSpace(cfg.Region)
	accessKey := strings.TrimSpace(cfg.AccessKeyID)
	secretKey := strings.TrimSpace(cfg.SecretAccessKey)
	if bucket == "" || region == "" || accessKey == "" || secretKey == "" {
		return nil, fmt.Errorf("incomplete s3 config: bucket/region/access_key_id/secret_access_key are required")
	}

	endpoint := strings.TrimSpace(cfg.Endpoint)
	pathStyle := cfg.PathStyle
	if endpoint != "" {
		// custom endpoints (minio, r2) rarely support virtual-hosted buckets
		pathStyle = true
	} else {
		endpoint = fmt.Sprintf("https://s3.%s.amazonaws.com", region)
	}
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}
	endpoint = strings.TrimSuffix(endpoint, "/")
	parsed, err := url.Parse(endpoint)
	if err != nil || parsed.Host == "" {
		return nil, fmt.Errorf("invalid s3 endpoint: %s", endpoint)
	}

	client := s3.New(s3.Options{
		Region:                     region,
		Credentials:                credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		BaseEndpoint:               aws.String(endpoint),
		UsePathStyle:               pathStyle,
		RequestChecksumCalculation: aws.RequestChecksumCalculationWhenRequired,
	})

	return &S3{
		client:       client,
		bucket:       bucket,
		folder:       folder,
		endpoint:     parsed,
		region:       region,
		customDomain: strings.TrimRight(strings.TrimSpace(cfg.CustomDomain), "/"),
		pathStyle:    pathStyle,
	}, nil
}

func (u *S3) Name() string { return config.AssetProviderS3 }

func (u *S3) Upload(ctx context.Context, obj Object) (string, error) {
	key := objectKey(u.folder, obj.Name)
	contentType := obj.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(obj.Data),
		ContentLength: aws.Int64(int64(len(obj.Data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("s3 upload failed: %w", err)
	}
	return u.publicURL(key), nil
}

func (u *S3) publicURL(key string) string {
	if u.customDomain != "" {
		return u.customDomain + "/" + key
	}
	base := strings.TrimSuffix(u.endpoint.Path, "/")
	if u.pathStyle {
		return u.endpoint.Scheme + "://" + u.endpoint.Host + base + "/" + u.bucket + "/" + key
	}
	return u.endpoint.Scheme + "://" + u.bucket + "." + u.endpoint.Host + base + "/" + key
}
