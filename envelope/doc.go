// Package envelope defines the wire structures of the dual-envelope protocol
// and their deterministic binary framing.
//
// # CryptoEnvelope
//
// A [CryptoEnvelope] is a fixed sequence of ten fields, each written as a
// 4-byte big-endian length followed by the bytes:
//
//	receiverEphemeralPublicKey, receiverSignature, ciphertext, nonce, authTag,
//	senderEphemeralPublicKey, senderSignature, senderWrappedKey,
//	senderWrappedKeyNonce, senderWrappedKeyAuthTag
//
// Optional fields (the two auth tags and an empty ciphertext) are written with
// length 0. [Deserialize] never panics on hostile input: a buffer that ends
// early fails with [ErrTruncatedData], a length prefix that is negative as an
// int32 or larger than limits.MaxEnvelopeField fails with [ErrCorruptLength].
//
// # SignedPublicKey
//
// A [SignedPublicKey] is an identity announcement:
//
//	{u32 len, publicKey}{u32 len, signature}{u64 big-endian timestamp millis}
//
// # Associated Data
//
// [CryptoEnvelope.MessageAssociatedData] and [WrapAssociatedData] produce the
// AEAD associated data that binds every envelope field to the payload, so a
// field swapped in from another envelope fails authentication.
package envelope
