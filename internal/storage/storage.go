// Package storage defines the opaque key-value snapshot store the
// application persists into.
package storage

// Keys used in the store. Collections are serialized whole under a
// single key on every mutation; there are no partial writes.
const (
	KeySession             = "user"
	KeyUsers               = "users"
	KeyBoards              = "boards"
	KeyTasks               = "tasks"
	KeyInvitations         = "invitations"
	KeyPendingVerification = "pendingVerification"
	KeyPasswordReset       = "passwordResetRequested"
)

// KV is a string-keyed blob store. Get reports presence alongside the
// value so an empty string stays distinguishable from an absent key.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}

// Memory is a map-backed KV used in tests and as a reference
// implementation of the store contract.
type Memory struct {
	values map[string]string
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// Get returns the stored value and whether the key exists.
func (m *Memory) Get(key string) (string, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

// Set stores value under key, replacing any previous value.
func (m *Memory) Set(key, value string) error {
	m.values[key] = value
	return nil
}

// Remove deletes key. Removing an absent key is not an error.
func (m *Memory) Remove(key string) error {
	delete(m.values, key)
	return nil
}
