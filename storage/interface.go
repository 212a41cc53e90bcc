package storage

// Store defines the interface for paste content backends. Keys are the
// resolved relative names produced by the naming logic ("<name>" for file
// pastes, "url/<name>" for URL pastes).
type Store interface {
	// Put writes content under the given name, creating or truncating it.
	Put(name string, content []byte) error

	// Get retrieves content by name.
	Get(name string) ([]byte, error)

	// Exists checks whether content is stored under the given name.
	Exists(name string) (bool, error)

	// Close closes the storage connection.
	Close() error
}
