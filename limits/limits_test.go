package limits

import (
	"errors"
	"strings"
	"testing"
)

// TestSizeHierarchy verifies the limits nest in the expected order
func TestSizeHierarchy(t *testing.T) {
	if DefaultPlaintextMessage > MaxPlaintextMessage {
		t.Errorf("DefaultPlaintextMessage %d exceeds MaxPlaintextMessage %d", DefaultPlaintextMessage, MaxPlaintextMessage)
	}
	if MaxPlaintextMessage >= MaxProcessingBuffer {
		t.Errorf("MaxPlaintextMessage %d must be below MaxProcessingBuffer %d", MaxPlaintextMessage, MaxProcessingBuffer)
	}
	if MaxEnvelopeField > MaxProcessingBuffer {
		t.Errorf("MaxEnvelopeField %d exceeds MaxProcessingBuffer %d", MaxEnvelopeField, MaxProcessingBuffer)
	}
	if MaxPoeticText <= MaxProcessingBuffer {
		t.Errorf("MaxPoeticText %d must exceed MaxProcessingBuffer %d", MaxPoeticText, MaxProcessingBuffer)
	}
}

func TestValidateMessageSize(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		max     int
		wantErr error
	}{
		{"empty allowed", 0, 10, nil},
		{"at limit", 10, 10, nil},
		{"over limit", 11, 10, ErrMessageTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMessageSize(make([]byte, tt.size), tt.max)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateMessageSize() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidatePlaintextMessage(t *testing.T) {
	if err := ValidatePlaintextMessage(nil); err != nil {
		t.Errorf("empty plaintext rejected: %v", err)
	}
	if err := ValidatePlaintextMessage(make([]byte, MaxPlaintextMessage)); err != nil {
		t.Errorf("plaintext at limit rejected: %v", err)
	}
	err := ValidatePlaintextMessage(make([]byte, MaxPlaintextMessage+1))
	if !errors.Is(err, ErrMessageTooLarge) {
		t.Errorf("oversized plaintext error = %v, want ErrMessageTooLarge", err)
	}
	if !strings.Contains(err.Error(), "65537") {
		t.Errorf("error should carry the actual size: %v", err)
	}
}

func TestValidateEnvelope(t *testing.T) {
	if err := ValidateEnvelope(nil); !errors.Is(err, ErrMessageEmpty) {
		t.Errorf("empty envelope error = %v, want ErrMessageEmpty", err)
	}
	if err := ValidateEnvelope([]byte{1}); err != nil {
		t.Errorf("small envelope rejected: %v", err)
	}
	if err := ValidateEnvelope(make([]byte, MaxProcessingBuffer+1)); !errors.Is(err, ErrMessageTooLarge) {
		t.Errorf("oversized envelope error = %v, want ErrMessageTooLarge", err)
	}
}

func TestValidatePoeticText(t *testing.T) {
	if err := ValidatePoeticText("ب ج"); err != nil {
		t.Errorf("short text rejected: %v", err)
	}
	if err := ValidatePoeticText(strings.Repeat("a", MaxPoeticText+1)); !errors.Is(err, ErrMessageTooLarge) {
		t.Errorf("oversized text error = %v, want ErrMessageTooLarge", err)
	}
}
