package envelope

import (
	"crypto/sha256"
	"fmt"
)

// CryptoEnvelope is one protected message. The ciphertext, nonce and tag are
// shared by two logical sub-envelopes: the receiver recovers the message key
// from ReceiverEphemeralPublicKey, the sender from SenderWrappedKey.
type CryptoEnvelope struct {
	// receiver sub-envelope
	ReceiverEphemeralPublicKey []byte
	ReceiverSignature          []byte
	Ciphertext                 []byte
	Nonce                      []byte
	AuthTag                    []byte

	// sender sub-envelope
	SenderEphemeralPublicKey []byte
	SenderSignature          []byte
	SenderWrappedKey         []byte
	SenderWrappedKeyNonce    []byte
	SenderWrappedKeyAuthTag  []byte
}

// fields returns the envelope fields in wire order.
func (e *CryptoEnvelope) fields() []field {
	return []field{
		{"receiverEphemeralPublicKey", &e.ReceiverEphemeralPublicKey, true},
		{"receiverSignature", &e.ReceiverSignature, true},
		{"ciphertext", &e.Ciphertext, false},
		{"nonce", &e.Nonce, true},
		{"authTag", &e.AuthTag, false},
		{"senderEphemeralPublicKey", &e.SenderEphemeralPublicKey, true},
		{"senderSignature", &e.SenderSignature, true},
		{"senderWrappedKey", &e.SenderWrappedKey, true},
		{"senderWrappedKeyNonce", &e.SenderWrappedKeyNonce, true},
		{"senderWrappedKeyAuthTag", &e.SenderWrappedKeyAuthTag, false},
	}
}

// Validate reports the first mandatory field that is empty.
func (e *CryptoEnvelope) Validate() error {
	if e == nil {
		return fmt.Errorf("%w: nil envelope", ErrMissingField)
	}
	for _, f := range e.fields() {
		if f.required && len(*f.value) == 0 {
			return fmt.Errorf("%w: %s", ErrMissingField, f.name)
		}
	}
	return nil
}

const (
	messageBindingLabel = "versecrypt-envelope-message-v1"
	wrapBindingLabel    = "versecrypt-envelope-wrap-v1"
)

// MessageAssociatedData returns the associated data for the message AEAD: a
// SHA-256 digest over every envelope field except the payload triple
// (ciphertext, nonce, authTag). Altering any key, signature or wrapped-key
// field therefore breaks the message tag on both decryption paths.
func (e *CryptoEnvelope) MessageAssociatedData() []byte {
	h := sha256.New()
	h.Write([]byte(messageBindingLabel))
	w := &fieldWriter{}
	for _, b := range [][]byte{
		e.ReceiverEphemeralPublicKey,
		e.ReceiverSignature,
		e.SenderEphemeralPublicKey,
		e.SenderSignature,
		e.SenderWrappedKey,
		e.SenderWrappedKeyNonce,
		e.SenderWrappedKeyAuthTag,
	} {
		w.writeField(b)
	}
	h.Write(w.bytes())
	return h.Sum(nil)
}

// WrapAssociatedData returns the associated data for the key-wrap AEAD,
// binding the wrapped key to both ephemeral public keys of its envelope.
func WrapAssociatedData(receiverEphemeralPublicKey, senderEphemeralPublicKey []byte) []byte {
	h := sha256.New()
	h.Write([]byte(wrapBindingLabel))
	w := &fieldWriter{}
	w.writeField(receiverEphemeralPublicKey)
	w.writeField(senderEphemeralPublicKey)
	h.Write(w.bytes())
	return h.Sum(nil)
}
