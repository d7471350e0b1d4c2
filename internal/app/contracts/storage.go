package contracts

import (
	"context"
	"io"
	"time"
)

type Storage interface {
	UploadObject(ctx context.Context, reader io.Reader, size int64, objectName, contentType, bucketName string) (string, error)
	PresignedGetURL(ctx context.Context, bucketName, objectName string, expiry time.Duration) (string, error)
}
