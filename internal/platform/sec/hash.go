// Copyright (c) 2026 Hirefly. All rights reserved.
// Author: engineering@hirefly.dev

package sec

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHashCost is the bcrypt work factor applied when a password is set
// or changed. A hash is produced exactly once per plaintext value; re-saving
// an account never re-hashes an existing hash.
const PasswordHashCost = 11

// HashPassword hashes a plain-text password using the bcrypt algorithm.
//
// bcrypt generates a fresh random salt internally, so hashing the same
// password twice yields different hashes and requires no shared state.
func HashPassword(plainTextPassword string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), PasswordHashCost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// CheckPasswordHash compares a plain-text password with its hashed version.
//
// The comparison inside bcrypt is constant-time with respect to the hash,
// so a mismatch reveals nothing about how close the guess was.
func CheckPasswordHash(plainTextPassword, existingHash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(plainTextPassword))
	return err == nil
}

// GenerateSecureToken returns a hex-encoded random string of byteLength
// random bytes, suitable for single-use artifacts such as OAuth states.
func GenerateSecureToken(byteLength int) (string, error) {
	buf := make([]byte, byteLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("sec: failed to generate secure token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
