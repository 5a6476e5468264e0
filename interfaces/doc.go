// Package interfaces defines the capability interfaces the dual-envelope
// orchestrator is written against, and the pipeline configuration.
//
// Each interface has exactly one production implementation in package crypto:
//
//   - [IKeyManager]: crypto.P256KeyManager
//   - [ISharedSecretDeriver]: crypto.HKDFDeriver
//   - [ICipherEngine]: crypto.AEADEngine
//   - [ISignatureValidator]: crypto.ECDSAValidator
//
// Tests substitute fakes to force individual protocol steps to fail.
//
// # Configuration
//
// [PipelineConfig] holds the corpus location, the AEAD suite, the plaintext
// size cap and the log level:
//
//	config := &interfaces.PipelineConfig{
//	    Cipher:           "aes-256-gcm",
//	    MaxPlaintextSize: 16384,
//	    LogLevel:         "info",
//	}
//	if err := config.Validate(); err != nil {
//	    log.Fatalf("invalid config: %v", err)
//	}
//
// The factory package loads it from YAML and VERSECRYPT_* environment variables.
//
// # Thread Safety
//
// Implementations must be safe for concurrent use. The orchestrator shares one
// instance of each across concurrent Encrypt and Decrypt calls.
package interfaces
