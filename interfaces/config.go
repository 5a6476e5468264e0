package interfaces

import (
	"errors"
	"fmt"
	"strings"

	"github.com/opd-ai/versecrypt/crypto"
	"github.com/opd-ai/versecrypt/limits"
)

var (
	// ErrInvalidMaxPlaintext is returned when MaxPlaintextSize is out of range.
	ErrInvalidMaxPlaintext = errors.New("max plaintext size out of range")

	// ErrInvalidLogLevel is returned for an unknown log level name.
	ErrInvalidLogLevel = errors.New("invalid log level")
)

// PipelineConfig holds the settings both ends of a conversation must agree on
// (corpus and cipher) plus local tuning.
type PipelineConfig struct {
	// CorpusPath is a newline-delimited word list; empty selects the built-in corpus
	CorpusPath string `yaml:"corpusPath"`

	// Cipher names the AEAD suite, "aes-256-gcm" or "chacha20-poly1305"
	Cipher string `yaml:"cipher"`

	// MaxPlaintextSize caps the plaintext accepted by Protect
	MaxPlaintextSize int `yaml:"maxPlaintextSize"`

	// LogLevel is a logrus level name
	LogLevel string `yaml:"logLevel"`
}

// Validate checks the configuration for values no pipeline can run with.
func (c *PipelineConfig) Validate() error {
	if c == nil {
		return errors.New("nil config")
	}
	if _, err := crypto.ParseCipherSuite(c.Cipher); err != nil {
		return err
	}
	if c.MaxPlaintextSize <= 0 || c.MaxPlaintextSize > limits.MaxPlaintextMessage {
		return fmt.Errorf("%w: %d (allowed 1..%d)", ErrInvalidMaxPlaintext, c.MaxPlaintextSize, limits.MaxPlaintextMessage)
	}
	switch strings.ToLower(c.LogLevel) {
	case "", "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}
	return nil
}
