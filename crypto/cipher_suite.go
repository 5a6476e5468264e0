package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
	"strings"

	"golang.org/x/crypto/chacha20poly1305"
)

// CipherSuite names an AEAD usable by the envelope protocol. Both ends of a
// conversation must be configured with the same suite.
type CipherSuite struct {
	Name string
}

var (
	// AES256GCM is the default suite.
	AES256GCM = CipherSuite{Name: "aes-256-gcm"}
	// ChaCha20Poly1305 is the software-friendly alternative.
	ChaCha20Poly1305 = CipherSuite{Name: "chacha20-poly1305"}
)

// SupportedCipherSuites lists suites in order of preference.
var SupportedCipherSuites = []CipherSuite{AES256GCM, ChaCha20Poly1305}

// ParseCipherSuite resolves a configured suite name. Matching ignores case and
// surrounding whitespace; an empty name selects AES256GCM.
func ParseCipherSuite(name string) (CipherSuite, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return AES256GCM, nil
	}
	for _, suite := range SupportedCipherSuites {
		if suite.Name == name {
			return suite, nil
		}
	}
	return CipherSuite{}, fmt.Errorf("%w: %q", ErrUnsupportedCipherSuite, name)
}

// NewCipherEngine returns the engine implementing suite.
func NewCipherEngine(suite CipherSuite) (*AEADEngine, error) {
	switch suite {
	case AES256GCM:
		return &AEADEngine{suite: suite, newAEAD: newAESGCM}, nil
	case ChaCha20Poly1305:
		return &AEADEngine{suite: suite, newAEAD: chacha20poly1305.New}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCipherSuite, suite.Name)
	}
}

// NewAESGCMEngine returns the default AES-256-GCM engine.
func NewAESGCMEngine() *AEADEngine {
	return &AEADEngine{suite: AES256GCM, newAEAD: newAESGCM}
}

func newAESGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
