package crypto

import (
	"crypto/ecdh"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/x509"
	"errors"
	"fmt"
)

// KeyPair is a long-lived P-256 identity key pair. The same key serves ECDSA
// signing and ECDH key agreement.
type KeyPair struct {
	Private *ecdsa.PrivateKey
	Public  *ecdsa.PublicKey
}

// PublicKeyBytes returns the X.509 SubjectPublicKeyInfo encoding of the public key.
func (kp *KeyPair) PublicKeyBytes() ([]byte, error) {
	if kp == nil || kp.Public == nil {
		return nil, fmt.Errorf("%w: nil public key", ErrInvalidKeyEncoding)
	}
	return EncodePublicKey(kp.Public)
}

// PrivateKeyBytes returns the PKCS#8 encoding of the private key. Callers own
// the returned buffer and should wipe it once persisted.
func (kp *KeyPair) PrivateKeyBytes() ([]byte, error) {
	if kp == nil || kp.Private == nil {
		return nil, fmt.Errorf("%w: nil private key", ErrInvalidKeyEncoding)
	}
	der, err := x509.MarshalPKCS8PrivateKey(kp.Private)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeyEncoding, err)
	}
	return der, nil
}

// KeyPairFromBytes rebuilds an identity key pair from its PKCS#8 private and
// SPKI public encodings. The public key must match the private key.
func KeyPairFromBytes(privBytes, pubBytes []byte) (*KeyPair, error) {
	priv, err := DecodePrivateKey(privBytes)
	if err != nil {
		return nil, err
	}
	pub, err := DecodePublicKey(pubBytes)
	if err != nil {
		return nil, err
	}
	if !priv.PublicKey.Equal(pub) {
		return nil, fmt.Errorf("%w: public key does not match private key", ErrInvalidKeyEncoding)
	}
	return &KeyPair{Private: priv, Public: pub}, nil
}

// EphemeralKeyPair is a single-use ECDH key pair. The private scalar lives in a
// buffer owned by this value so that Wipe can clear it; the crypto/ecdh key
// object is only materialised for the duration of one agreement.
type EphemeralKeyPair struct {
	scalar []byte

	// Public is the ephemeral public key.
	Public *ecdh.PublicKey
	// PublicBytes is the SPKI encoding of Public, as placed in an envelope.
	PublicBytes []byte
}

// PrivateKey materialises the ephemeral private key. It fails once the pair
// has been wiped.
func (e *EphemeralKeyPair) PrivateKey() (*ecdh.PrivateKey, error) {
	if e == nil || e.scalar == nil {
		return nil, errors.New("ephemeral key pair already wiped")
	}
	priv, err := ecdh.P256().NewPrivateKey(e.scalar)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyAgreement, err)
	}
	return priv, nil
}

// Wipe zeroes the private scalar and drops it. It is safe to call more than once.
func (e *EphemeralKeyPair) Wipe() {
	if e == nil || e.scalar == nil {
		return
	}
	ZeroBytes(e.scalar)
	e.scalar = nil
}

// Wiped reports whether the private half has been destroyed.
func (e *EphemeralKeyPair) Wiped() bool {
	return e == nil || e.scalar == nil
}

// EncodePublicKey returns the SPKI DER encoding of an ECDSA or ECDH public key.
func EncodePublicKey(pub any) ([]byte, error) {
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeyEncoding, err)
	}
	return der, nil
}

// DecodePublicKey parses an SPKI DER encoded P-256 public key.
func DecodePublicKey(encoded []byte) (*ecdsa.PublicKey, error) {
	if len(encoded) == 0 {
		return nil, fmt.Errorf("%w: empty public key", ErrInvalidKeyEncoding)
	}
	parsed, err := x509.ParsePKIXPublicKey(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeyEncoding, err)
	}
	pub, ok := parsed.(*ecdsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected key type %T", ErrInvalidKeyEncoding, parsed)
	}
	if pub.Curve != elliptic.P256() {
		return nil, fmt.Errorf("%w: unexpected curve %s", ErrInvalidKeyEncoding, pub.Curve.Params().Name)
	}
	return pub, nil
}

// DecodePrivateKey parses a PKCS#8 DER encoded P-256 private key.
func DecodePrivateKey(encoded []byte) (*ecdsa.PrivateKey, error) {
	if len(encoded) == 0 {
		return nil, fmt.Errorf("%w: empty private key", ErrInvalidKeyEncoding)
	}
	parsed, err := x509.ParsePKCS8PrivateKey(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeyEncoding, err)
	}
	priv, ok := parsed.(*ecdsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected key type %T", ErrInvalidKeyEncoding, parsed)
	}
	if priv.Curve != elliptic.P256() {
		return nil, fmt.Errorf("%w: unexpected curve %s", ErrInvalidKeyEncoding, priv.Curve.Params().Name)
	}
	return priv, nil
}

// AgreementPrivateKey converts an identity private key for use in ECDH.
func AgreementPrivateKey(priv *ecdsa.PrivateKey) (*ecdh.PrivateKey, error) {
	if priv == nil {
		return nil, fmt.Errorf("%w: nil private key", ErrKeyAgreement)
	}
	key, err := priv.ECDH()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyAgreement, err)
	}
	return key, nil
}

// AgreementPublicKey converts an identity public key for use in ECDH.
func AgreementPublicKey(pub *ecdsa.PublicKey) (*ecdh.PublicKey, error) {
	if pub == nil {
		return nil, fmt.Errorf("%w: nil public key", ErrKeyAgreement)
	}
	key, err := pub.ECDH()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyAgreement, err)
	}
	return key, nil
}
