package interfaces

import (
	"crypto/ecdh"
	"crypto/ecdsa"

	"github.com/opd-ai/versecrypt/crypto"
)

// IKeyManager generates, parses and fingerprints identity and ephemeral keys.
type IKeyManager interface {
	// GenerateIdentityKeyPair creates a long-lived identity key pair
	GenerateIdentityKeyPair() (*crypto.KeyPair, error)

	// GenerateEphemeralKeyPair creates a single-use key pair; the caller wipes it
	GenerateEphemeralKeyPair() (*crypto.EphemeralKeyPair, error)

	// ReconstructPublicKey parses an SPKI encoded public key
	ReconstructPublicKey(encoded []byte) (*ecdsa.PublicKey, error)

	// CalculateFingerprint returns a human-comparable digest of a public key
	CalculateFingerprint(publicKey *ecdsa.PublicKey) (string, error)

	// ValidateKeyPair reports whether stored key bytes are consistent
	ValidateKeyPair(privBytes, pubBytes []byte) bool
}

// ISharedSecretDeriver performs key agreement and key derivation.
type ISharedSecretDeriver interface {
	// DeriveSharedSecret runs ECDH between a private and a public key
	DeriveSharedSecret(myPrivate *ecdh.PrivateKey, theirPublic *ecdh.PublicKey) ([]byte, error)

	// DeriveEncryptionKey expands a shared secret into a key and nonce
	DeriveEncryptionKey(sharedSecret, info, salt []byte) (*crypto.DerivedKeyMaterial, error)
}

// ICipherEngine provides authenticated encryption.
type ICipherEngine interface {
	// Encrypt seals plaintext under a fresh random nonce
	Encrypt(key, plaintext, associatedData []byte) (*crypto.CiphertextBundle, error)

	// Decrypt opens a bundle or fails with crypto.ErrAuthenticationFailure
	Decrypt(key []byte, bundle *crypto.CiphertextBundle, associatedData []byte) ([]byte, error)

	// GenerateNonce returns a fresh random nonce
	GenerateNonce() ([]byte, error)
}

// ISignatureValidator signs and verifies with identity keys.
type ISignatureValidator interface {
	// Sign signs data with an identity private key
	Sign(privateKey *ecdsa.PrivateKey, data []byte) ([]byte, error)

	// Verify returns false, not an error, for an invalid signature
	Verify(publicKey *ecdsa.PublicKey, data, signature []byte) (bool, error)

	// SignEphemeralKey binds an encoded ephemeral public key to an identity
	SignEphemeralKey(identityPrivateKey *ecdsa.PrivateKey, ephemeralPublicKey []byte) ([]byte, error)
}

var (
	_ IKeyManager          = (*crypto.P256KeyManager)(nil)
	_ ISharedSecretDeriver = (*crypto.HKDFDeriver)(nil)
	_ ICipherEngine        = (*crypto.AEADEngine)(nil)
	_ ISignatureValidator  = (*crypto.ECDSAValidator)(nil)
)
