// Package versecrypt hides end-to-end encrypted messages inside ordinary
// looking text.
//
// A message is sealed for one recipient with an ephemeral ECDH exchange and an
// AEAD, packed into a length-prefixed envelope, and the envelope bytes are then
// spelled out as words from a shared corpus. Anyone holding the same corpus can
// turn the words back into bytes; only the recipient, or the sender through a
// separately wrapped recovery key, can decrypt them.
//
// # Getting Started
//
//	pipeline, err := versecrypt.New(versecrypt.NewOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	alice, _ := pipeline.GenerateIdentity()
//	bob, _ := pipeline.GenerateIdentity()
//
//	text, err := pipeline.Protect([]byte("meet at noon"), alice, bob.Public)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Bob, who knows Alice's public key:
//	plaintext, err := pipeline.Reveal(text, bob, alice.Public, false)
//
//	// Alice, reading her own sent message later:
//	plaintext, err = pipeline.Reveal(text, alice, nil, true)
//
// # Core Types
//
// Pipeline is the facade. It composes the packages below and holds no
// per-message state:
//
//   - crypto: P-256 identities, ECDH, HKDF-SHA-256, AEAD suites and signatures
//   - envelope: the CryptoEnvelope wire format and signed key announcements
//   - protocol: the encrypt and decrypt orchestration for both recipients
//   - corpus: loading and fingerprinting the shared word list
//   - poetic: the bytes to words codec
//   - limits: size caps shared by every stage
//
// # Identity Exchange
//
// Public keys are exchanged out of band. AnnounceIdentity produces a
// self-signed announcement as poetic text and ReadAnnouncement checks it.
// Users compare Fingerprint output before trusting a key.
//
// # Error Handling
//
// Reveal failures fall into two classes:
//
//	plaintext, err := pipeline.Reveal(text, bob, alice.Public, false)
//	switch {
//	case versecrypt.IsSteganographyError(err):
//	    // not poetic text for this corpus
//	case versecrypt.IsCryptoError(err):
//	    // poetic text, but damaged, forged or for someone else
//	}
//
// Decryption failures do not say which check failed.
//
// # Corpus
//
// Both sides must load the identical word list. Corpus.Fingerprint gives a
// digest to compare; a mismatched corpus decodes to garbage and fails
// authentication. Options.Corpus nil selects the built-in English list of
// 2048 words.
//
// # Metrics
//
// Setting Options.Registerer exports operation counters, latency histograms
// and the corpus size under the versecrypt namespace.
//
// # Deterministic Testing
//
// Options.TimeProvider replaces the clock used for announcement timestamps
// and operation timing.
//
// # Thread Safety
//
// A Pipeline may be shared between goroutines. Key pairs are read-only once
// created.
package versecrypt
