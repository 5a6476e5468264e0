// Package limits provides centralized size constants and validation functions
// for the versecrypt pipeline, so that the envelope codec, the poetic decoder
// and the pipeline facade agree on what counts as oversized input.
//
// # Size Hierarchy
//
//   - MaxPlaintextMessage (64 KiB): the largest plaintext the pipeline protects.
//     Deployments usually configure a lower cap (DefaultPlaintextMessage, 16 KiB).
//
//   - MaxProcessingBuffer (1 MiB): the absolute maximum for a serialized envelope.
//     MaxEnvelopeField uses the same bound for a single length-prefixed field, so
//     a declared length above it is treated as corruption rather than truncation.
//
//   - MaxPoeticText (16 MiB): the largest poetic text accepted for decoding.
//
// # Validation Functions
//
//	if err := limits.ValidateMessageSize(plaintext, cfg.MaxPlaintextSize); err != nil {
//	    // errors.Is(err, limits.ErrMessageTooLarge)
//	}
//
// Plaintexts may be empty; envelopes may not.
package limits
