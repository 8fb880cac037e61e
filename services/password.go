package services

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// argon2id parameters, fixed for every stored credential
const (
	argonMemory      = 64 * 1024
	argonIterations  = 3
	argonParallelism = 2
	argonKeyLength   = 32
	argonSaltLength  = 16
)

// HashPassword derives an argon2id hash and returns it as
// base64(salt)$base64(hash). Blank passwords are rejected here so a
// caller can never store an empty credential.
func HashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password must not be blank")
	}

	salt := make([]byte, argonSaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, argonIterations, argonMemory, argonParallelism, argonKeyLength)

	return base64.RawStdEncoding.EncodeToString(salt) + "$" +
		base64.RawStdEncoding.EncodeToString(hash), nil
}

// VerifyPassword re-derives the hash with the stored salt and compares
// in constant time.
func VerifyPassword(stored, provided string) (bool, error) {
	encodedSalt, encodedHash, found := strings.Cut(stored, "$")
	if !found {
		return false, errors.New("invalid stored password format")
	}

	salt, err := base64.RawStdEncoding.DecodeString(encodedSalt)
	if err != nil {
		return false, err
	}
	hash, err := base64.RawStdEncoding.DecodeString(encodedHash)
	if err != nil {
		return false, err
	}

	computed := argon2.IDKey([]byte(provided), salt, argonIterations, argonMemory, argonParallelism, argonKeyLength)

	return subtle.ConstantTimeCompare(computed, hash) == 1, nil
}

// ComparePasswords treats malformed stored hashes as a mismatch.
func ComparePasswords(stored, plain string) bool {
	match, err := VerifyPassword(stored, plain)
	return err == nil && match
}
