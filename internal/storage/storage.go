package storage

import (
	"context"
	"time"
)

type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified *time.Time
}

// Service writes account snapshots to remote object storage.
type Service interface {
	Put(ctx context.Context, bucket, key string, body []byte) error
	ListObjects(ctx context.Context, bucket, prefix string) ([]ObjectInfo, error)
}
