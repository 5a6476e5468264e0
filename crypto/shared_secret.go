package crypto

import (
	"crypto/ecdh"
	"crypto/sha256"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/hkdf"
)

// DerivedKeyMaterial is the output of DeriveEncryptionKey.
type DerivedKeyMaterial struct {
	EncryptionKey []byte
	Nonce         []byte
}

// Wipe zeroes the derived key and nonce.
func (d *DerivedKeyMaterial) Wipe() {
	if d == nil {
		return
	}
	ZeroBytes(d.EncryptionKey)
	ZeroBytes(d.Nonce)
}

// HKDFDeriver performs P-256 ECDH and HKDF-SHA-256 key derivation.
type HKDFDeriver struct{}

// NewSharedSecretDeriver returns the ECDH + HKDF-SHA-256 deriver.
func NewSharedSecretDeriver() *HKDFDeriver {
	return &HKDFDeriver{}
}

// DeriveSharedSecret computes the raw ECDH shared secret between myPrivate and
// theirPublic. The result is symmetric: A.priv with B.pub equals B.priv with A.pub.
func (HKDFDeriver) DeriveSharedSecret(myPrivate *ecdh.PrivateKey, theirPublic *ecdh.PublicKey) ([]byte, error) {
	if myPrivate == nil || theirPublic == nil {
		return nil, fmt.Errorf("%w: missing key", ErrKeyAgreement)
	}

	logrus.WithFields(logrus.Fields{
		"function": "DeriveSharedSecret",
		"curve":    fmt.Sprintf("%v", theirPublic.Curve()),
	}).Debug("Computing shared secret using ECDH")

	secret, err := myPrivate.ECDH(theirPublic)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "DeriveSharedSecret",
			"error":    err.Error(),
		}).Debug("ECDH computation failed")
		return nil, fmt.Errorf("%w: %v", ErrKeyAgreement, err)
	}
	return secret, nil
}

// DeriveEncryptionKey runs HKDF extract-then-expand over sharedSecret and
// returns a 32-byte key followed by a 12-byte nonce. With an empty salt the
// pseudo-random key is SHA-256(sharedSecret). Identical inputs always yield
// identical output.
func (HKDFDeriver) DeriveEncryptionKey(sharedSecret, info, salt []byte) (*DerivedKeyMaterial, error) {
	if len(sharedSecret) == 0 {
		return nil, fmt.Errorf("%w: empty shared secret", ErrKeyAgreement)
	}

	var prk []byte
	if len(salt) == 0 {
		sum := sha256.Sum256(sharedSecret)
		prk = sum[:]
	} else {
		prk = hkdf.Extract(sha256.New, sharedSecret, salt)
	}
	defer ZeroBytes(prk)

	okm := make([]byte, DerivedMaterialSize)
	if _, err := io.ReadFull(hkdf.Expand(sha256.New, prk, info), okm); err != nil {
		return nil, fmt.Errorf("failed to expand key material: %w", err)
	}

	material := &DerivedKeyMaterial{
		EncryptionKey: make([]byte, SymmetricKeySize),
		Nonce:         make([]byte, NonceSize),
	}
	copy(material.EncryptionKey, okm[:SymmetricKeySize])
	copy(material.Nonce, okm[SymmetricKeySize:])
	ZeroBytes(okm)

	return material, nil
}
