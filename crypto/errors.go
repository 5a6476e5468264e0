package crypto

import "errors"

var (
	// ErrKeyGeneration is returned when the random source or the curve
	// implementation fails to produce a key pair.
	ErrKeyGeneration = errors.New("key generation failed")

	// ErrInvalidKeyEncoding is returned when encoded key bytes cannot be parsed
	// or do not describe a P-256 key.
	ErrInvalidKeyEncoding = errors.New("invalid key encoding")

	// ErrKeyAgreement is returned when ECDH fails, typically because the peer
	// key is on a different curve or is not a valid point.
	ErrKeyAgreement = errors.New("key agreement failed")

	// ErrAuthenticationFailure is returned when an AEAD tag does not verify.
	// No plaintext is ever returned alongside it.
	ErrAuthenticationFailure = errors.New("authentication failure")

	// ErrSignatureVerificationFailed is returned when an identity signature over
	// an ephemeral key or announcement does not verify.
	ErrSignatureVerificationFailed = errors.New("signature verification failed")

	// ErrInvalidKeySize is returned when a symmetric key has the wrong length.
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrInvalidNonceSize is returned when a nonce has the wrong length.
	ErrInvalidNonceSize = errors.New("invalid nonce size")

	// ErrUnsupportedCipherSuite is returned for an unknown AEAD name.
	ErrUnsupportedCipherSuite = errors.New("unsupported cipher suite")
)
