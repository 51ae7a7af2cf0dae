// Package store defines the persistence gateway: an opaque key/value
// contract mirroring what the mobile app expected from its local storage.
// Records are self-describing JSON blobs under stable keys; the drivers
// (redis, postgres, memory) are interchangeable.
package store

import (
	"context"
	"errors"
	"fmt"
)

// ErrAbsent is returned by Get when the key has never been written.
var ErrAbsent = errors.New("key absent")

// KV is the storage contract the core depends on. Every failure other than
// an absent key surfaces as a *StorageError so callers can distinguish
// "not written yet" from "storage is broken".
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	ListKeys(ctx context.Context, prefix string) ([]string, error)
	GetMany(ctx context.Context, keys []string) (map[string][]byte, error)
}

// StorageError wraps a driver failure with the operation and key involved.
type StorageError struct {
	Op  string // "get" | "set" | "list" | "getmany"
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("store: %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// IsStorageError reports whether err is (or wraps) a driver failure.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
