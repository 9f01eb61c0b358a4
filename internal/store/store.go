package store

import "errors"

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("key not found")

// KV is the persistence boundary shared by the cart and session engines.
// Each engine owns its own keys; neither reads or writes the other's.
// Implementations must survive a process restart unless documented otherwise.
type KV interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}
