package storage

import (
	"errors"
)

var (
	// ErrNotFound means no value has ever been stored under the key.
	ErrNotFound = errors.New("storage: key not found")
	// ErrMalformed means a value exists but could not be decoded into the
	// requested shape. Callers fall back to a default and write it back.
	ErrMalformed = errors.New("storage: malformed value")
	// ErrInvalidKey means the key contains characters that could name a file
	// outside the store's directory.
	ErrInvalidKey = errors.New("storage: invalid key")
)

// Store is a string-keyed durable store of JSON-serializable documents.
//
// Writers within one process are serialized, but read-modify-write sequences
// at the component level are not compare-and-swap: two writers racing on the
// same key keep the last write only. See the README.
// Keys name stored documents directly, so they must not contain path
// separators or parent references; such keys fail with ErrInvalidKey.
type Store interface {
	// Get decodes the value stored under key into dest. Returns ErrNotFound
	// or ErrMalformed as appropriate.
	Get(key string, dest any) error
	// Put stores value under key, replacing any previous value, and notifies
	// subscribers after a successful write.
	Put(key string, value any) error
	// Delete removes the key. Deleting an absent key is not an error.
	Delete(key string) error
	// Subscribe registers fn to be called with the key of every successful
	// write. The returned function cancels the subscription.
	Subscribe(fn func(key string)) (cancel func())
}
