// Package password wraps argon2id hashing for stored credentials.
package password

import "github.com/alexedwards/argon2id"

// Hash produces an argon2id hash with a fresh random salt embedded in the
// standard encoded form. Two calls with the same input yield different strings.
func Hash(plaintext string) (string, error) {
	return argon2id.CreateHash(plaintext, argon2id.DefaultParams)
}

// Verify re-derives the hash using the parameters and salt embedded in
// encodedHash and compares in constant time.
func Verify(encodedHash, plaintext string) (bool, error) {
	return argon2id.ComparePasswordAndHash(plaintext, encodedHash)
}
