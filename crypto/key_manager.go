package crypto

import (
	"crypto/ecdh"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/mr-tron/base58/base58"
)

// P256KeyManager generates and parses identity and ephemeral keys on NIST P-256.
type P256KeyManager struct {
	rand io.Reader
}

// NewKeyManager returns a key manager backed by crypto/rand.
func NewKeyManager() *P256KeyManager {
	return &P256KeyManager{rand: rand.Reader}
}

// GenerateIdentityKeyPair creates a new long-lived identity key pair.
func (m *P256KeyManager) GenerateIdentityKeyPair() (*KeyPair, error) {
	priv, err := ecdsa.GenerateKey(elliptic.P256(), m.random())
	if err != nil {
		NewLogger("GenerateIdentityKeyPair").WithError(err, "rng", "generate_identity").Error("Identity key generation failed")
		return nil, fmt.Errorf("%w: %v", ErrKeyGeneration, err)
	}
	return &KeyPair{Private: priv, Public: &priv.PublicKey}, nil
}

// GenerateEphemeralKeyPair creates a fresh single-use key pair. The caller
// must Wipe it once the agreement it was generated for is complete.
func (m *P256KeyManager) GenerateEphemeralKeyPair() (*EphemeralKeyPair, error) {
	priv, err := ecdh.P256().GenerateKey(m.random())
	if err != nil {
		NewLogger("GenerateEphemeralKeyPair").WithError(err, "rng", "generate_ephemeral").Error("Ephemeral key generation failed")
		return nil, fmt.Errorf("%w: %v", ErrKeyGeneration, err)
	}

	pub := priv.PublicKey()
	pubBytes, err := EncodePublicKey(pub)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyGeneration, err)
	}

	return &EphemeralKeyPair{
		scalar:      priv.Bytes(),
		Public:      pub,
		PublicBytes: pubBytes,
	}, nil
}

// ReconstructPublicKey parses an SPKI encoded public key.
func (m *P256KeyManager) ReconstructPublicKey(encoded []byte) (*ecdsa.PublicKey, error) {
	return DecodePublicKey(encoded)
}

// CalculateFingerprint returns SHA-256 over the SPKI encoding as colon
// separated uppercase hex pairs, for manual out-of-band comparison.
func (m *P256KeyManager) CalculateFingerprint(pub *ecdsa.PublicKey) (string, error) {
	sum, err := publicKeyDigest(pub)
	if err != nil {
		return "", err
	}

	groups := make([]string, 0, FingerprintHashSize)
	for _, b := range sum[:FingerprintHashSize] {
		groups = append(groups, strings.ToUpper(hex.EncodeToString([]byte{b})))
	}
	return strings.Join(groups, ":"), nil
}

// CompactFingerprint returns a short base58 identity code derived from the
// same digest as CalculateFingerprint.
func (m *P256KeyManager) CompactFingerprint(pub *ecdsa.PublicKey) (string, error) {
	sum, err := publicKeyDigest(pub)
	if err != nil {
		return "", err
	}
	return base58.Encode(sum[:CompactFingerprintSize]), nil
}

// ValidateKeyPair reports whether privBytes (PKCS#8) and pubBytes (SPKI) parse
// as P-256 keys and belong together. It never returns an error.
func (m *P256KeyManager) ValidateKeyPair(privBytes, pubBytes []byte) bool {
	if _, err := KeyPairFromBytes(privBytes, pubBytes); err != nil {
		NewLogger("ValidateKeyPair").WithField("reason", err.Error()).Debug("Stored key pair rejected")
		return false
	}
	return true
}

func (m *P256KeyManager) random() io.Reader {
	if m == nil || m.rand == nil {
		return rand.Reader
	}
	return m.rand
}

func publicKeyDigest(pub *ecdsa.PublicKey) ([sha256.Size]byte, error) {
	if pub == nil {
		return [sha256.Size]byte{}, fmt.Errorf("%w: nil public key", ErrInvalidKeyEncoding)
	}
	der, err := EncodePublicKey(pub)
	if err != nil {
		return [sha256.Size]byte{}, err
	}
	return sha256.Sum256(der), nil
}
