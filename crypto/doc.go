// Package crypto implements the cryptographic primitives behind versecrypt's
// dual-envelope protocol.
//
// All keys live on NIST P-256 so that one identity key pair can both sign
// (ECDSA) and agree on secrets (ECDH). Public keys travel as X.509
// SubjectPublicKeyInfo DER; identity private keys are stored as PKCS#8 DER by
// the caller.
//
// # Components
//
//   - [P256KeyManager]: identity and ephemeral key generation, SPKI parsing,
//     fingerprints and stored key-pair validation.
//   - [HKDFDeriver]: ECDH followed by HKDF-SHA-256, yielding a 32-byte key and a
//     12-byte nonce.
//   - [AEADEngine]: AES-256-GCM (default) or ChaCha20-Poly1305 with a fresh
//     random nonce per call and a detached 16-byte tag.
//   - [ECDSAValidator]: ECDSA-SHA-256 signing and verification, including the
//     ephemeral key binding signature.
//
// Example:
//
//	km := crypto.NewKeyManager()
//	alice, _ := km.GenerateIdentityKeyPair()
//	fp, _ := km.CalculateFingerprint(alice.Public)
//	fmt.Println("verify out of band:", fp)
//
// # Ephemeral Keys
//
// [EphemeralKeyPair] owns its private scalar in a plain byte buffer. The
// crypto/ecdh key object is built only for the agreement and [EphemeralKeyPair.Wipe]
// zeroes the buffer. Callers must defer Wipe immediately after generation:
//
//	eph, err := km.GenerateEphemeralKeyPair()
//	if err != nil {
//	    return err
//	}
//	defer eph.Wipe()
//
// # Errors
//
// Every failure wraps one of the package sentinels, so callers classify with
// errors.Is: [ErrKeyGeneration], [ErrInvalidKeyEncoding], [ErrKeyAgreement],
// [ErrAuthenticationFailure], [ErrSignatureVerificationFailed].
//
// # Thread Safety
//
// All types are stateless apart from their random source and are safe for
// concurrent use.
package crypto
