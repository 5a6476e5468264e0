package envelope

import (
	"crypto/ecdsa"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/opd-ai/versecrypt/crypto"
	"github.com/opd-ai/versecrypt/interfaces"
)

// SignedPublicKey announces an identity public key out of band. The signature
// is the identity's own signature over PublicKey ‖ u64be(Timestamp).
type SignedPublicKey struct {
	PublicKey []byte
	Signature []byte
	// Timestamp is milliseconds since the Unix epoch.
	Timestamp uint64
}

// SignPublicKey creates a self-signed announcement for identity at now.
func SignPublicKey(identity *crypto.KeyPair, signer interfaces.ISignatureValidator, now time.Time) (*SignedPublicKey, error) {
	if identity == nil {
		return nil, fmt.Errorf("%w: nil identity", crypto.ErrInvalidKeyEncoding)
	}
	pub, err := identity.PublicKeyBytes()
	if err != nil {
		return nil, err
	}

	millis := now.UnixMilli()
	if millis < 0 {
		return nil, fmt.Errorf("timestamp before epoch: %v", now)
	}

	spk := &SignedPublicKey{PublicKey: pub, Timestamp: uint64(millis)}
	sig, err := signer.Sign(identity.Private, spk.signedBytes())
	if err != nil {
		return nil, err
	}
	spk.Signature = sig
	return spk, nil
}

// Time returns the announcement timestamp.
func (s *SignedPublicKey) Time() time.Time {
	return time.UnixMilli(int64(s.Timestamp))
}

// Verify parses the announced key and checks its self-signature. It returns
// the key only when the signature is valid.
func (s *SignedPublicKey) Verify(km interfaces.IKeyManager, verifier interfaces.ISignatureValidator) (*ecdsa.PublicKey, error) {
	pub, err := km.ReconstructPublicKey(s.PublicKey)
	if err != nil {
		return nil, err
	}
	ok, err := verifier.Verify(pub, s.signedBytes(), s.Signature)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: announcement self-signature", crypto.ErrSignatureVerificationFailed)
	}
	return pub, nil
}

func (s *SignedPublicKey) signedBytes() []byte {
	out := make([]byte, 0, len(s.PublicKey)+8)
	out = append(out, s.PublicKey...)
	return binary.BigEndian.AppendUint64(out, s.Timestamp)
}

// SerializeSignedPublicKey encodes {u32 len, key}{u32 len, signature}{u64 timestamp}.
func SerializeSignedPublicKey(s *SignedPublicKey) ([]byte, error) {
	if s == nil || len(s.PublicKey) == 0 {
		return nil, fmt.Errorf("%w: publicKey", ErrMissingField)
	}
	if len(s.Signature) == 0 {
		return nil, fmt.Errorf("%w: signature", ErrMissingField)
	}
	w := &fieldWriter{}
	w.writeField(s.PublicKey)
	w.writeField(s.Signature)
	w.writeUint64(s.Timestamp)
	return w.bytes(), nil
}

// DeserializeSignedPublicKey decodes the output of SerializeSignedPublicKey.
func DeserializeSignedPublicKey(data []byte) (*SignedPublicKey, error) {
	return DeserializeSignedPublicKeyPadded(data, 0)
}

// DeserializeSignedPublicKeyPadded also accepts up to maxPadding trailing zero bytes.
func DeserializeSignedPublicKeyPadded(data []byte, maxPadding int) (*SignedPublicKey, error) {
	r := &fieldReader{data: data}

	pub, err := r.readField("publicKey")
	if err != nil {
		return nil, err
	}
	sig, err := r.readField("signature")
	if err != nil {
		return nil, err
	}
	ts, err := r.readUint64("timestamp")
	if err != nil {
		return nil, err
	}
	if err := r.finishPadded(maxPadding); err != nil {
		return nil, err
	}
	if len(pub) == 0 {
		return nil, fmt.Errorf("%w: publicKey", ErrMissingField)
	}
	if len(sig) == 0 {
		return nil, fmt.Errorf("%w: signature", ErrMissingField)
	}
	return &SignedPublicKey{PublicKey: pub, Signature: sig, Timestamp: ts}, nil
}
