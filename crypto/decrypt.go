package crypto

import "fmt"

// Decrypt opens bundle under key with associatedData. Any mismatch of key,
// nonce, tag, ciphertext or associated data yields ErrAuthenticationFailure
// and no plaintext.
func (e *AEADEngine) Decrypt(key []byte, bundle *CiphertextBundle, associatedData []byte) ([]byte, error) {
	if bundle == nil {
		return nil, fmt.Errorf("%w: nil bundle", ErrAuthenticationFailure)
	}
	if len(bundle.Nonce) != NonceSize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidNonceSize, len(bundle.Nonce), NonceSize)
	}

	aead, err := e.aead(key)
	if err != nil {
		return nil, err
	}

	sealed := bundle.Ciphertext
	switch len(bundle.AuthTag) {
	case 0:
		// tag is carried at the end of the ciphertext
	case TagSize:
		sealed = make([]byte, 0, len(bundle.Ciphertext)+TagSize)
		sealed = append(sealed, bundle.Ciphertext...)
		sealed = append(sealed, bundle.AuthTag...)
	default:
		return nil, fmt.Errorf("%w: tag length %d", ErrAuthenticationFailure, len(bundle.AuthTag))
	}
	if len(sealed) < TagSize {
		return nil, fmt.Errorf("%w: ciphertext too short", ErrAuthenticationFailure)
	}

	plaintext, err := aead.Open(nil, bundle.Nonce, sealed, associatedData)
	if err != nil {
		NewLogger("Decrypt").WithField("suite", e.suite.Name).Debug("AEAD tag did not verify")
		return nil, ErrAuthenticationFailure
	}
	return plaintext, nil
}
