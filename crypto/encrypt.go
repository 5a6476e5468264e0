package crypto

import (
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"
)

// CiphertextBundle holds an AEAD output with the tag detached from the
// ciphertext. An empty AuthTag means the tag is appended to Ciphertext.
type CiphertextBundle struct {
	Ciphertext []byte
	Nonce      []byte
	AuthTag    []byte
}

// AEADEngine is a CipherEngine over any 12-byte-nonce AEAD with a 16-byte tag.
// Every Encrypt call draws a fresh random nonce; keys in this protocol are
// single use, so a random nonce never repeats under one key.
type AEADEngine struct {
	suite   CipherSuite
	newAEAD func(key []byte) (cipher.AEAD, error)
	rand    io.Reader
}

// Suite returns the cipher suite implemented by the engine.
func (e *AEADEngine) Suite() CipherSuite {
	return e.suite
}

// GenerateNonce returns a fresh random 12-byte nonce.
func (e *AEADEngine) GenerateNonce() ([]byte, error) {
	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(e.random(), nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	return nonce, nil
}

// Encrypt seals plaintext under key with associatedData and returns the
// ciphertext, the nonce and the detached tag.
func (e *AEADEngine) Encrypt(key, plaintext, associatedData []byte) (*CiphertextBundle, error) {
	aead, err := e.aead(key)
	if err != nil {
		return nil, err
	}

	nonce, err := e.GenerateNonce()
	if err != nil {
		return nil, err
	}

	sealed := aead.Seal(nil, nonce, plaintext, associatedData)
	if len(sealed) < TagSize {
		return nil, fmt.Errorf("sealed output too short: %d bytes", len(sealed))
	}

	split := len(sealed) - TagSize
	bundle := &CiphertextBundle{
		Ciphertext: sealed[:split:split],
		Nonce:      nonce,
		AuthTag:    append([]byte(nil), sealed[split:]...),
	}

	NewLogger("Encrypt").
		WithField("suite", e.suite.Name).
		WithField("plaintext_size", len(plaintext)).
		WithField("aad_size", len(associatedData)).
		Debug("AEAD encryption complete")

	return bundle, nil
}

func (e *AEADEngine) aead(key []byte) (cipher.AEAD, error) {
	if len(key) != SymmetricKeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidKeySize, len(key), SymmetricKeySize)
	}
	aead, err := e.newAEAD(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", e.suite.Name, err)
	}
	return aead, nil
}

func (e *AEADEngine) random() io.Reader {
	if e.rand == nil {
		return rand.Reader
	}
	return e.rand
}
