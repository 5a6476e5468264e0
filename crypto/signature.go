package crypto

import (
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"
)

// ECDSAValidator signs and verifies with P-256 identity keys using ECDSA over
// SHA-256 with ASN.1 DER signatures.
type ECDSAValidator struct {
	rand io.Reader
}

// NewSignatureValidator returns an ECDSA P-256 validator backed by crypto/rand.
func NewSignatureValidator() *ECDSAValidator {
	return &ECDSAValidator{rand: rand.Reader}
}

// Sign returns an ASN.1 DER ECDSA signature over SHA-256(data).
func (v *ECDSAValidator) Sign(privateKey *ecdsa.PrivateKey, data []byte) ([]byte, error) {
	if privateKey == nil {
		return nil, fmt.Errorf("%w: nil private key", ErrInvalidKeyEncoding)
	}
	digest := sha256.Sum256(data)

	r := v.rand
	if r == nil {
		r = rand.Reader
	}
	sig, err := ecdsa.SignASN1(r, privateKey, digest[:])
	if err != nil {
		return nil, fmt.Errorf("failed to sign: %w", err)
	}
	return sig, nil
}

// Verify reports whether signature is valid for data under publicKey. A
// malformed or wrong signature yields false with a nil error; only a missing
// key is reported as an error.
func (v *ECDSAValidator) Verify(publicKey *ecdsa.PublicKey, data, signature []byte) (bool, error) {
	if publicKey == nil {
		return false, fmt.Errorf("%w: nil public key", ErrInvalidKeyEncoding)
	}
	if len(signature) == 0 {
		return false, nil
	}
	digest := sha256.Sum256(data)
	return ecdsa.VerifyASN1(publicKey, digest[:], signature), nil
}

// SignEphemeralKey signs the encoded ephemeral public key with the identity
// key, binding the ephemeral key to that identity.
func (v *ECDSAValidator) SignEphemeralKey(identityPrivateKey *ecdsa.PrivateKey, ephemeralPublicKey []byte) ([]byte, error) {
	if len(ephemeralPublicKey) == 0 {
		return nil, fmt.Errorf("%w: empty ephemeral public key", ErrInvalidKeyEncoding)
	}
	return v.Sign(identityPrivateKey, ephemeralPublicKey)
}
