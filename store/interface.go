package store

// Store is the persistent key-value store the state managers write to.
// Values are opaque JSON blobs keyed by a short string.
type Store interface {
	// Get returns the value stored under key. found is false when the key
	// has never been set or was deleted; that is not an error.
	Get(key string) (data []byte, found bool, err error)

	// Set overwrites the value stored under key.
	Set(key string, data []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error

	Close() error
}
