// Package docstore keeps whole JSON documents under fixed string keys.
package docstore

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

var (
	ErrNotFound   = errors.New("document not found")
	ErrInvalidKey = errors.New("invalid document key")
)

// Backend stores opaque document bodies. Get returns ErrNotFound for a key
// that was never written or has been deleted; Delete of a missing key is
// not an error.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, body []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

var validKey = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

func checkKey(key string) error {
	if !validKey.MatchString(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}

	return nil
}
