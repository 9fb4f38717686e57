// Package hash provides one-way password hashing and verification. Both
// supported schemes embed a per-call random salt, so hashing the same
// plaintext twice yields different digests, and both verify in constant time
// with respect to the stored digest contents.
package hash

import (
	"errors"
	"fmt"
)

var (
	// ErrHasherNotFound is returned when no hasher is registered for a Method.
	ErrHasherNotFound = errors.New("hasher not found")
)

// Method identifies a hashing scheme.
type Method string

const (
	Bcrypt   Method = "bcrypt"
	Argon2ID Method = "argon2id"
)

// Hasher performs one-way password hashing and verification.
//
// Check must tolerate structurally invalid stored digests: a malformed
// digest verifies false rather than returning an error, so a corrupted
// database row can never crash a login attempt.
type Hasher interface {
	Hash(password string) (string, error)
	Check(password, hash string) (bool, error)
}

// Manager holds the registered hashers and the configured default. It is
// built once at process start and read-only afterwards.
type Manager struct {
	hashers       map[Method]Hasher
	defaultMethod Method
}

// New returns a Manager pre-configured with Bcrypt and Argon2ID hashers,
// using the given Method as the default.
func New(defaultMethod Method) (*Manager, error) {
	m := &Manager{
		hashers: map[Method]Hasher{
			Bcrypt:   BcryptHasher{},
			Argon2ID: Argon2IDHasher{},
		},
	}

	if _, ok := m.hashers[defaultMethod]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrHasherNotFound, defaultMethod)
	}
	m.defaultMethod = defaultMethod

	return m, nil
}

// Hash generates a password digest using the default Method.
func (m *Manager) Hash(password string) (string, error) {
	return m.hashers[m.defaultMethod].Hash(password)
}

// Check verifies a password against a digest using the default Method.
func (m *Manager) Check(password, hash string) (bool, error) {
	return m.hashers[m.defaultMethod].Check(password, hash)
}

// Hasher looks up a Hasher by Method. Returns ErrHasherNotFound if missing.
func (m *Manager) Hasher(mt Method) (Hasher, error) {
	if hasher, ok := m.hashers[mt]; ok {
		return hasher, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrHasherNotFound, mt)
}

var _ Hasher = (*Manager)(nil)
