package versecrypt

import (
	"errors"

	"github.com/opd-ai/versecrypt/crypto"
	"github.com/opd-ai/versecrypt/envelope"
	"github.com/opd-ai/versecrypt/limits"
	"github.com/opd-ai/versecrypt/poetic"
)

// ErrNilIdentity is returned when an operation needs an identity key pair.
var ErrNilIdentity = errors.New("nil identity key pair")

var cryptoErrors = []error{
	crypto.ErrKeyGeneration,
	crypto.ErrInvalidKeyEncoding,
	crypto.ErrKeyAgreement,
	crypto.ErrAuthenticationFailure,
	crypto.ErrSignatureVerificationFailed,
	crypto.ErrInvalidKeySize,
	crypto.ErrInvalidNonceSize,
	envelope.ErrTruncatedData,
	envelope.ErrCorruptLength,
	envelope.ErrTrailingData,
	envelope.ErrMissingField,
}

// IsSteganographyError reports whether err means the text is not poetic text
// for the loaded corpus at all, as opposed to a damaged envelope.
func IsSteganographyError(err error) bool {
	return errors.Is(err, poetic.ErrUnknownWord)
}

// IsCryptoError reports whether err comes from envelope framing, key handling,
// signature checks or AEAD authentication. For Reveal this means the text was
// well-formed poetic text but the envelope inside is corrupted, tampered with
// or not addressed to the caller.
func IsCryptoError(err error) bool {
	for _, target := range cryptoErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsLimitError reports whether err is a size limit rejection.
func IsLimitError(err error) bool {
	return errors.Is(err, limits.ErrMessageTooLarge) || errors.Is(err, limits.ErrMessageEmpty)
}
