package hash

import (
	"errors"

	"github.com/alexedwards/argon2id"
	"golang.org/x/crypto/bcrypt"
)

// BcryptHasher implements Hasher using the bcrypt algorithm.
type BcryptHasher struct{}

var _ Hasher = BcryptHasher{}

// Hash returns the bcrypt digest of the password using DefaultCost. bcrypt
// generates and embeds a fresh salt on every call.
func (BcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Check compares a plaintext password against a bcrypt digest. Any error
// other than a plain mismatch means the stored digest is structurally
// invalid, which verifies false instead of failing.
func (BcryptHasher) Check(password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil {
		return false, nil
	}
	return true, nil
}

// Argon2IDHasher implements Hasher using the argon2id algorithm.
type Argon2IDHasher struct{}

var _ Hasher = Argon2IDHasher{}

// Hash returns the argon2id digest of the password using DefaultParams. The
// salt is drawn fresh from crypto/rand on every call.
func (Argon2IDHasher) Hash(password string) (string, error) {
	return argon2id.CreateHash(password, argon2id.DefaultParams)
}

// Check compares a plaintext password against an argon2id digest. Malformed
// or incompatible digests verify false rather than failing.
func (Argon2IDHasher) Check(password, hash string) (bool, error) {
	ok, err := argon2id.ComparePasswordAndHash(password, hash)
	if err != nil {
		if errors.Is(err, argon2id.ErrInvalidHash) ||
			errors.Is(err, argon2id.ErrIncompatibleVariant) ||
			errors.Is(err, argon2id.ErrIncompatibleVersion) {
			return false, nil
		}
		return false, err
	}
	return ok, nil
}
