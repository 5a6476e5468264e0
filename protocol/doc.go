// Package protocol implements versecrypt's dual-envelope encryption.
//
// A message is sealed once, under a key agreed between a fresh receiver
// ephemeral key and the receiver's identity. That message key is also wrapped
// under a second key, agreed between a fresh sender ephemeral key and the
// sender's own identity, so the sender can later reopen their sent messages
// with nothing but their identity key.
//
// Both ephemeral public keys are signed by the sender's identity. The message
// AEAD authenticates every other envelope field as associated data, and the
// wrap AEAD authenticates both ephemeral public keys, so modifying any field
// fails decryption on both paths.
//
// Example:
//
//	o := protocol.NewDefaultOrchestrator()
//	env, err := o.Encrypt(msg, alice.Private, alice.Public, bob.Public)
//	// Bob, as receiver:
//	plain, err := o.Decrypt(env, bob.Private, bob.Public, alice.Public, false)
//	// Alice, recovering her own message:
//	plain, err = o.Decrypt(env, alice.Private, alice.Public, bob.Public, true)
package protocol
