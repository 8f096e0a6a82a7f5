// Copyright (c) 2026 Getemall. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package storage persists uploaded binary objects.

[S3Store] targets any S3-compatible service (AWS, MinIO, R2); the API server
only wires it when a bucket is configured.
*/
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrEmptyKey is returned when an object is stored without a key.
var ErrEmptyKey = errors.New("storage: object key is empty")

// ObjectStore writes objects under a key.
type ObjectStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
}
