package protocol

import (
	"bytes"
	"crypto/ecdh"
	"crypto/ecdsa"
	"errors"
	"fmt"

	"github.com/opd-ai/versecrypt/crypto"
	"github.com/opd-ai/versecrypt/envelope"
	"github.com/opd-ai/versecrypt/interfaces"
)

const (
	// ReceiverInfo is the HKDF info string for the receiver path.
	ReceiverInfo = "VerseCrypt-Receiver-E2EE-v1"
	// SenderInfo is the HKDF info string for the sender recovery path.
	SenderInfo = "VerseCrypt-Sender-Recovery-v1"
)

// ErrMissingIdentity is returned when a required identity key is nil.
var ErrMissingIdentity = errors.New("missing identity key")

// Orchestrator composes the four crypto capabilities into the dual-envelope
// encrypt and decrypt operations. It holds no per-message state and is safe
// for concurrent use.
type Orchestrator struct {
	keys    interfaces.IKeyManager
	deriver interfaces.ISharedSecretDeriver
	cipher  interfaces.ICipherEngine
	signer  interfaces.ISignatureValidator
}

// NewOrchestrator wires an orchestrator from explicit capabilities.
func NewOrchestrator(keys interfaces.IKeyManager, deriver interfaces.ISharedSecretDeriver, cipher interfaces.ICipherEngine, signer interfaces.ISignatureValidator) *Orchestrator {
	return &Orchestrator{
		keys:    keys,
		deriver: deriver,
		cipher:  cipher,
		signer:  signer,
	}
}

// NewDefaultOrchestrator wires the P-256 / HKDF-SHA-256 / AES-256-GCM / ECDSA stack.
func NewDefaultOrchestrator() *Orchestrator {
	return NewOrchestrator(
		crypto.NewKeyManager(),
		crypto.NewSharedSecretDeriver(),
		crypto.NewAESGCMEngine(),
		crypto.NewSignatureValidator(),
	)
}

// Encrypt protects plaintext for the holder of theirIdentityPub while keeping
// a recovery path for the sender.
//
// Two independent ephemeral key pairs are generated. The receiver ephemeral
// agrees with theirIdentityPub and yields the message key; the sender
// ephemeral agrees with myIdentityPub and yields a wrap key that encrypts the
// message key. Both ephemeral private halves are wiped before Encrypt returns,
// on every path.
func (o *Orchestrator) Encrypt(plaintext []byte, myIdentityPriv *ecdsa.PrivateKey, myIdentityPub, theirIdentityPub *ecdsa.PublicKey) (*envelope.CryptoEnvelope, error) {
	log := crypto.NewPackageLogger("protocol", "Encrypt").WithField("plaintext_size", len(plaintext))

	if myIdentityPriv == nil || myIdentityPub == nil || theirIdentityPub == nil {
		return nil, ErrMissingIdentity
	}
	theirAgreement, err := crypto.AgreementPublicKey(theirIdentityPub)
	if err != nil {
		return nil, err
	}
	selfAgreement, err := crypto.AgreementPublicKey(myIdentityPub)
	if err != nil {
		return nil, err
	}

	receiverEph, err := o.keys.GenerateEphemeralKeyPair()
	if err != nil {
		return nil, err
	}
	defer receiverEph.Wipe()

	senderEph, err := o.keys.GenerateEphemeralKeyPair()
	if err != nil {
		return nil, err
	}
	defer senderEph.Wipe()

	if bytes.Equal(receiverEph.PublicBytes, senderEph.PublicBytes) {
		return nil, fmt.Errorf("%w: ephemeral keys collided", crypto.ErrKeyGeneration)
	}

	receiverSig, err := o.signer.SignEphemeralKey(myIdentityPriv, receiverEph.PublicBytes)
	if err != nil {
		return nil, fmt.Errorf("sign receiver ephemeral key: %w", err)
	}
	receiverKey, err := o.deriveEphemeral(receiverEph, theirAgreement, ReceiverInfo)
	if err != nil {
		return nil, err
	}
	defer receiverKey.Wipe()

	senderSig, err := o.signer.SignEphemeralKey(myIdentityPriv, senderEph.PublicBytes)
	if err != nil {
		return nil, fmt.Errorf("sign sender ephemeral key: %w", err)
	}
	wrapKey, err := o.deriveEphemeral(senderEph, selfAgreement, SenderInfo)
	if err != nil {
		return nil, err
	}
	defer wrapKey.Wipe()

	wrapped, err := o.cipher.Encrypt(
		wrapKey.EncryptionKey,
		receiverKey.EncryptionKey,
		envelope.WrapAssociatedData(receiverEph.PublicBytes, senderEph.PublicBytes),
	)
	if err != nil {
		return nil, fmt.Errorf("wrap message key: %w", err)
	}

	env := &envelope.CryptoEnvelope{
		ReceiverEphemeralPublicKey: receiverEph.PublicBytes,
		ReceiverSignature:          receiverSig,
		SenderEphemeralPublicKey:   senderEph.PublicBytes,
		SenderSignature:            senderSig,
		SenderWrappedKey:           wrapped.Ciphertext,
		SenderWrappedKeyNonce:      wrapped.Nonce,
		SenderWrappedKeyAuthTag:    wrapped.AuthTag,
	}

	payload, err := o.cipher.Encrypt(receiverKey.EncryptionKey, plaintext, env.MessageAssociatedData())
	if err != nil {
		return nil, fmt.Errorf("encrypt message: %w", err)
	}
	env.Ciphertext = payload.Ciphertext
	env.Nonce = payload.Nonce
	env.AuthTag = payload.AuthTag

	log.WithFields(crypto.SecureFieldHash(env.ReceiverEphemeralPublicKey, "receiver_ephemeral")).Debug("Envelope sealed")
	return env, nil
}

// Decrypt opens env. With iAmSender false it takes the receiver path and
// authenticates the envelope against theirIdentityPub; with iAmSender true it
// unwraps the message key through the sender path and authenticates against
// myIdentityPub. Any signature or AEAD failure aborts without output.
func (o *Orchestrator) Decrypt(env *envelope.CryptoEnvelope, myIdentityPriv *ecdsa.PrivateKey, myIdentityPub, theirIdentityPub *ecdsa.PublicKey, iAmSender bool) ([]byte, error) {
	if err := env.Validate(); err != nil {
		return nil, err
	}
	if myIdentityPriv == nil {
		return nil, ErrMissingIdentity
	}

	var (
		plaintext []byte
		err       error
	)
	if iAmSender {
		plaintext, err = o.decryptAsSender(env, myIdentityPriv, myIdentityPub)
	} else {
		plaintext, err = o.decryptAsReceiver(env, myIdentityPriv, theirIdentityPub)
	}
	if err != nil {
		crypto.NewPackageLogger("protocol", "Decrypt").
			WithField("sender_path", iAmSender).
			WithError(err, failureKind(err), "decrypt").
			Debug("Envelope rejected")
		return nil, err
	}
	return plaintext, nil
}

func (o *Orchestrator) decryptAsReceiver(env *envelope.CryptoEnvelope, myIdentityPriv *ecdsa.PrivateKey, theirIdentityPub *ecdsa.PublicKey) ([]byte, error) {
	if theirIdentityPub == nil {
		return nil, ErrMissingIdentity
	}
	if err := o.verifyEphemeral(theirIdentityPub, env.ReceiverEphemeralPublicKey, env.ReceiverSignature); err != nil {
		return nil, fmt.Errorf("receiver signature: %w", err)
	}

	receiverKey, err := o.deriveIdentity(myIdentityPriv, env.ReceiverEphemeralPublicKey, ReceiverInfo)
	if err != nil {
		return nil, err
	}
	defer receiverKey.Wipe()

	return o.openPayload(env, receiverKey.EncryptionKey)
}

func (o *Orchestrator) decryptAsSender(env *envelope.CryptoEnvelope, myIdentityPriv *ecdsa.PrivateKey, myIdentityPub *ecdsa.PublicKey) ([]byte, error) {
	if myIdentityPub == nil {
		return nil, ErrMissingIdentity
	}
	if err := o.verifyEphemeral(myIdentityPub, env.SenderEphemeralPublicKey, env.SenderSignature); err != nil {
		return nil, fmt.Errorf("sender signature: %w", err)
	}

	wrapKey, err := o.deriveIdentity(myIdentityPriv, env.SenderEphemeralPublicKey, SenderInfo)
	if err != nil {
		return nil, err
	}
	defer wrapKey.Wipe()

	messageKey, err := o.cipher.Decrypt(
		wrapKey.EncryptionKey,
		&crypto.CiphertextBundle{
			Ciphertext: env.SenderWrappedKey,
			Nonce:      env.SenderWrappedKeyNonce,
			AuthTag:    env.SenderWrappedKeyAuthTag,
		},
		envelope.WrapAssociatedData(env.ReceiverEphemeralPublicKey, env.SenderEphemeralPublicKey),
	)
	if err != nil {
		return nil, fmt.Errorf("unwrap message key: %w", err)
	}
	defer crypto.ZeroBytes(messageKey)

	if len(messageKey) != crypto.SymmetricKeySize {
		return nil, fmt.Errorf("%w: unwrapped key is %d bytes", crypto.ErrInvalidKeySize, len(messageKey))
	}
	return o.openPayload(env, messageKey)
}

func (o *Orchestrator) openPayload(env *envelope.CryptoEnvelope, key []byte) ([]byte, error) {
	plaintext, err := o.cipher.Decrypt(key, &crypto.CiphertextBundle{
		Ciphertext: env.Ciphertext,
		Nonce:      env.Nonce,
		AuthTag:    env.AuthTag,
	}, env.MessageAssociatedData())
	if err != nil {
		return nil, fmt.Errorf("decrypt message: %w", err)
	}
	return plaintext, nil
}

func (o *Orchestrator) verifyEphemeral(signerPub *ecdsa.PublicKey, ephemeralPub, signature []byte) error {
	ok, err := o.signer.Verify(signerPub, ephemeralPub, signature)
	if err != nil {
		return err
	}
	if !ok {
		return crypto.ErrSignatureVerificationFailed
	}
	return nil
}

// deriveEphemeral agrees an ephemeral private key with a peer key. The
// ephemeral public encoding is the HKDF salt.
func (o *Orchestrator) deriveEphemeral(eph *crypto.EphemeralKeyPair, peer *ecdh.PublicKey, info string) (*crypto.DerivedKeyMaterial, error) {
	priv, err := eph.PrivateKey()
	if err != nil {
		return nil, err
	}
	return o.derive(priv, peer, info, eph.PublicBytes)
}

// deriveIdentity agrees the identity private key with an encoded ephemeral
// public key taken from an envelope.
func (o *Orchestrator) deriveIdentity(myIdentityPriv *ecdsa.PrivateKey, encodedEphemeral []byte, info string) (*crypto.DerivedKeyMaterial, error) {
	priv, err := crypto.AgreementPrivateKey(myIdentityPriv)
	if err != nil {
		return nil, err
	}
	ephPub, err := o.keys.ReconstructPublicKey(encodedEphemeral)
	if err != nil {
		return nil, err
	}
	peer, err := crypto.AgreementPublicKey(ephPub)
	if err != nil {
		return nil, err
	}
	return o.derive(priv, peer, info, encodedEphemeral)
}

func (o *Orchestrator) derive(priv *ecdh.PrivateKey, peer *ecdh.PublicKey, info string, salt []byte) (*crypto.DerivedKeyMaterial, error) {
	secret, err := o.deriver.DeriveSharedSecret(priv, peer)
	if err != nil {
		return nil, err
	}
	defer crypto.ZeroBytes(secret)

	return o.deriver.DeriveEncryptionKey(secret, []byte(info), salt)
}

func failureKind(err error) string {
	switch {
	case errors.Is(err, crypto.ErrSignatureVerificationFailed):
		return "signature"
	case errors.Is(err, crypto.ErrAuthenticationFailure):
		return "authentication"
	case errors.Is(err, crypto.ErrKeyAgreement):
		return "key_agreement"
	case errors.Is(err, crypto.ErrInvalidKeyEncoding):
		return "key_encoding"
	default:
		return "other"
	}
}
