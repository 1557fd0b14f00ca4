package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/modaline/storefront/internal/aws"
)

// MaxUploadSize caps uploads at 5 MB.
const MaxUploadSize = 5 << 20

var (
	// ErrNotImage rejects uploads whose declared content type is not an image.
	ErrNotImage = errors.New("upload is not an image")
	// ErrTooLarge rejects uploads over MaxUploadSize.
	ErrTooLarge = errors.New("upload exceeds size limit")
)

// Uploader stores images in an S3 bucket under random, extension-preserving keys.
type Uploader struct {
	client aws.S3API
	bucket string
}

// NewUploader returns an Uploader bound to a bucket.
func NewUploader(client aws.S3API, bucket string) *Uploader {
	return &Uploader{
		client: client,
		bucket: bucket,
	}
}

// UploadImage validates and stores one image, returning the object key.
// The original filename only contributes its extension; the key itself is
// a fresh uuid so uploads can never collide or traverse paths.
func (u *Uploader) UploadImage(ctx context.Context, filename, contentType string, size int64, r io.Reader) (string, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return "", ErrNotImage
	}
	if size > MaxUploadSize {
		return "", ErrTooLarge
	}

	key := uuid.NewString() + strings.ToLower(filepath.Ext(filename))
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        &u.bucket,
		Key:           &key,
		Body:          r,
		ContentType:   &contentType,
		ContentLength: &size,
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}
	return key, nil
}
