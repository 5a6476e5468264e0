// Package limits provides centralized size limits for the versecrypt pipeline.
package limits

import (
	"errors"
	"fmt"
)

const (
	// MaxPlaintextMessage is the largest plaintext the pipeline will protect (64 KiB).
	MaxPlaintextMessage = 64 * 1024

	// DefaultPlaintextMessage is the default configured plaintext cap (16 KiB).
	DefaultPlaintextMessage = 16 * 1024

	// MaxProcessingBuffer is the absolute maximum for any serialized structure (1 MiB).
	MaxProcessingBuffer = 1024 * 1024

	// MaxEnvelopeField is the largest length prefix an envelope field may declare.
	MaxEnvelopeField = MaxProcessingBuffer

	// MaxPoeticText is the largest poetic text accepted for decoding, in bytes.
	// Corpus words are multi-byte, so text is several times the envelope size.
	MaxPoeticText = 16 * MaxProcessingBuffer
)

var (
	// ErrMessageEmpty indicates an empty input where one is required
	ErrMessageEmpty = errors.New("empty message")

	// ErrMessageTooLarge indicates an input exceeds its maximum size
	ErrMessageTooLarge = errors.New("message too large")
)

// ValidateMessageSize validates a message against the specified maximum size.
// Empty messages are allowed.
func ValidateMessageSize(message []byte, maxSize int) error {
	if len(message) > maxSize {
		return fmt.Errorf("%w: size %d exceeds limit %d", ErrMessageTooLarge, len(message), maxSize)
	}
	return nil
}

// ValidatePlaintextMessage validates a plaintext against MaxPlaintextMessage.
func ValidatePlaintextMessage(message []byte) error {
	if len(message) > MaxPlaintextMessage {
		return fmt.Errorf("%w: plaintext size %d exceeds limit %d", ErrMessageTooLarge, len(message), MaxPlaintextMessage)
	}
	return nil
}

// ValidateEnvelope validates a serialized envelope against MaxProcessingBuffer.
// Envelopes are never empty.
func ValidateEnvelope(data []byte) error {
	if len(data) == 0 {
		return ErrMessageEmpty
	}
	if len(data) > MaxProcessingBuffer {
		return fmt.Errorf("%w: envelope size %d exceeds limit %d", ErrMessageTooLarge, len(data), MaxProcessingBuffer)
	}
	return nil
}

// ValidatePoeticText validates poetic text length against MaxPoeticText.
func ValidatePoeticText(text string) error {
	if len(text) > MaxPoeticText {
		return fmt.Errorf("%w: text size %d exceeds limit %d", ErrMessageTooLarge, len(text), MaxPoeticText)
	}
	return nil
}
