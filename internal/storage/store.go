// Package storage persists the signed-in session between runs as plain
// string values under fixed keys.
package storage

import "errors"

// Keys under which the session is persisted.
const (
	TokenKey = "@GoBarber:token"
	UserKey  = "@GoBarber:user"
)

// ErrNotFound is returned by Get when the key has no value.
var ErrNotFound = errors.New("storage: key not found")

// Store is a durable string key-value store.
type Store interface {
	// Get returns ErrNotFound when key is unset.
	Get(key string) (string, error)
	Set(key, value string) error
	// Remove is a no-op for keys that are already unset.
	Remove(key string) error
}
