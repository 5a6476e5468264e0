package crypto

const (
	// SymmetricKeySize is the size of an AES-256 / ChaCha20 key in bytes.
	SymmetricKeySize = 32
	// NonceSize is the AEAD nonce size in bytes.
	NonceSize = 12
	// TagSize is the AEAD authentication tag size in bytes.
	TagSize = 16
	// DerivedMaterialSize is the KDF output length: key followed by nonce.
	DerivedMaterialSize = SymmetricKeySize + NonceSize
	// FingerprintHashSize is the number of hash bytes shown in a fingerprint.
	FingerprintHashSize = 32
	// CompactFingerprintSize is the number of hash bytes in a base58 fingerprint.
	CompactFingerprintSize = 16
)
