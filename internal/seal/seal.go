// Copyright © 2025 Roknuzzaman Rokon roknuzzamanrokon113@gmail.com
// SPDX-License-Identifier: MIT

// Package seal encrypts and decrypts export documents with a passphrase.
// The sealed document is a small JSON envelope carrying the scrypt salt and
// the AES-GCM ciphertext, so a sealed export remains a single portable file.
package seal

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"syscall"

	"golang.org/x/crypto/scrypt"
	"golang.org/x/term"
)

// scrypt parameters. Interactive-use strength.
const (
	scryptN = 32768
	scryptR = 8
	scryptP = 1
	keyLen  = 32
	saltLen = 16
)

var (
	ErrEmptyPassphrase = errors.New("passphrase must not be empty")
	ErrNotSealed       = errors.New("document is not sealed")
)

// envelope is the on-disk form of a sealed document.
type envelope struct {
	Version       int    `json:"version"`
	Salt          string `json:"salt"`
	EncryptedData string `json:"encrypted_data"`
}

// IsSealed reports whether the document looks like a sealed envelope.
func IsSealed(doc []byte) bool {
	var env envelope
	if err := json.Unmarshal(doc, &env); err != nil {
		return false
	}
	return env.EncryptedData != ""
}

// Seal encrypts the document with a key derived from the passphrase and
// returns the sealed envelope.
func Seal(doc []byte, passphrase string) ([]byte, error) {
	if passphrase == "" {
		return nil, ErrEmptyPassphrase
	}

	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	gcm, err := keyedGCM(passphrase, salt)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	// The nonce is prepended to the ciphertext so Open only needs the salt
	// from the envelope.
	sealed := gcm.Seal(nonce, nonce, doc, nil)

	env := envelope{
		Version:       1,
		Salt:          base64.StdEncoding.EncodeToString(salt),
		EncryptedData: base64.StdEncoding.EncodeToString(sealed),
	}

	out, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal envelope: %w", err)
	}

	return out, nil
}

// Open decrypts a sealed envelope produced by Seal.
func Open(doc []byte, passphrase string) ([]byte, error) {
	if passphrase == "" {
		return nil, ErrEmptyPassphrase
	}

	var env envelope
	if err := json.Unmarshal(doc, &env); err != nil || env.EncryptedData == "" {
		return nil, ErrNotSealed
	}

	salt, err := base64.StdEncoding.DecodeString(env.Salt)
	if err != nil {
		return nil, fmt.Errorf("failed to decode salt: %w", err)
	}

	sealed, err := base64.StdEncoding.DecodeString(env.EncryptedData)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ciphertext: %w", err)
	}

	gcm, err := keyedGCM(passphrase, salt)
	if err != nil {
		return nil, err
	}

	if len(sealed) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}

	nonce, ciphertext := sealed[:gcm.NonceSize()], sealed[gcm.NonceSize():]

	plain, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt: %w", err)
	}

	return plain, nil
}

func keyedGCM(passphrase string, salt []byte) (cipher.AEAD, error) {
	key, err := scrypt.Key([]byte(passphrase), salt, scryptN, scryptR, scryptP, keyLen)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create gcm: %w", err)
	}

	return gcm, nil
}

// GetPassphrase prompts for a passphrase on the terminal without echo.
func GetPassphrase() (string, error) {
	fmt.Fprint(os.Stderr, "Passphrase: ")
	pass, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read passphrase: %w", err)
	}
	return string(pass), nil
}
