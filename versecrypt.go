package versecrypt

import (
	"crypto/ecdsa"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/opd-ai/versecrypt/corpus"
	"github.com/opd-ai/versecrypt/crypto"
	"github.com/opd-ai/versecrypt/envelope"
	"github.com/opd-ai/versecrypt/interfaces"
	"github.com/opd-ai/versecrypt/limits"
	"github.com/opd-ai/versecrypt/poetic"
	"github.com/opd-ai/versecrypt/protocol"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// Options configures a Pipeline.
type Options struct {
	// Corpus is the shared codebook; nil selects corpus.Default()
	Corpus *corpus.Corpus
	// Cipher is the AEAD suite; the zero value selects AES-256-GCM
	Cipher crypto.CipherSuite
	// MaxPlaintextSize caps Protect input
	MaxPlaintextSize int
	// Registerer receives the pipeline metrics; nil disables registration
	Registerer prometheus.Registerer
	// TimeProvider stamps announcements and times operations
	TimeProvider TimeProvider
}

// NewOptions returns the default options.
func NewOptions() *Options {
	return &Options{
		Cipher:           crypto.AES256GCM,
		MaxPlaintextSize: limits.DefaultPlaintextMessage,
		TimeProvider:     DefaultTimeProvider{},
	}
}

// Pipeline turns plaintext into poetic text for one recipient and back.
// A Pipeline holds no per-message state and is safe for concurrent use.
type Pipeline struct {
	keys         interfaces.IKeyManager
	signer       interfaces.ISignatureValidator
	orchestrator *protocol.Orchestrator
	corpus       *corpus.Corpus
	encoder      *poetic.Encoder
	decoder      *poetic.Decoder
	maxPlaintext int
	metrics      *Metrics
	clock        TimeProvider
}

// New builds a pipeline from options. A nil options value uses NewOptions.
func New(options *Options) (*Pipeline, error) {
	if options == nil {
		options = NewOptions()
	}

	suite := options.Cipher
	if suite.Name == "" {
		suite = crypto.AES256GCM
	}
	engine, err := crypto.NewCipherEngine(suite)
	if err != nil {
		return nil, err
	}

	maxPlaintext := options.MaxPlaintextSize
	if maxPlaintext <= 0 || maxPlaintext > limits.MaxPlaintextMessage {
		return nil, fmt.Errorf("%w: max plaintext %d", limits.ErrMessageTooLarge, maxPlaintext)
	}

	c := options.Corpus
	if c == nil {
		c = corpus.Default()
	}
	encoder, err := poetic.NewEncoder(c)
	if err != nil {
		return nil, err
	}
	decoder, err := poetic.NewDecoder(c)
	if err != nil {
		return nil, err
	}

	metrics, err := NewMetrics(options.Registerer)
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}
	metrics.setCorpusWords(c.WordCount())

	clock := options.TimeProvider
	if clock == nil {
		clock = DefaultTimeProvider{}
	}

	keys := crypto.NewKeyManager()
	signer := crypto.NewSignatureValidator()

	fp := c.Fingerprint()
	logrus.WithFields(logrus.Fields{
		"function":      "New",
		"cipher":        suite.Name,
		"corpus_words":  c.WordCount(),
		"bits_per_word": c.BitsPerWord(),
		"corpus_id":     hex.EncodeToString(fp[:8]),
		"max_plaintext": maxPlaintext,
	}).Info("Created versecrypt pipeline")

	return &Pipeline{
		keys:         keys,
		signer:       signer,
		orchestrator: protocol.NewOrchestrator(keys, crypto.NewSharedSecretDeriver(), engine, signer),
		corpus:       c,
		encoder:      encoder,
		decoder:      decoder,
		maxPlaintext: maxPlaintext,
		metrics:      metrics,
		clock:        clock,
	}, nil
}

// Corpus returns the codebook the pipeline encodes with.
func (p *Pipeline) Corpus() *corpus.Corpus {
	return p.corpus
}

// GenerateIdentity creates a new identity key pair.
func (p *Pipeline) GenerateIdentity() (*crypto.KeyPair, error) {
	return p.keys.GenerateIdentityKeyPair()
}

// Fingerprint returns the human-comparable fingerprint of an identity key.
func (p *Pipeline) Fingerprint(pub *ecdsa.PublicKey) (string, error) {
	return p.keys.CalculateFingerprint(pub)
}

// Protect encrypts plaintext from me to theirPublicKey and returns it as
// poetic text. me can later Reveal the text with iAmSender set.
func (p *Pipeline) Protect(plaintext []byte, me *crypto.KeyPair, theirPublicKey *ecdsa.PublicKey) (text string, err error) {
	start := p.clock.Now()
	defer func() { p.metrics.observe(OperationProtect, p.clock.Since(start), err) }()

	if me == nil {
		return "", ErrNilIdentity
	}
	if err := limits.ValidateMessageSize(plaintext, p.maxPlaintext); err != nil {
		return "", err
	}

	env, err := p.orchestrator.Encrypt(plaintext, me.Private, me.Public, theirPublicKey)
	if err != nil {
		return "", err
	}
	data, err := envelope.Serialize(env)
	if err != nil {
		return "", err
	}
	text = p.encoder.Encode(data)

	logrus.WithFields(logrus.Fields{
		"function":       "Protect",
		"plaintext_size": len(plaintext),
		"envelope_size":  len(data),
		"text_size":      len(text),
	}).Debug("Protected message")
	return text, nil
}

// Reveal decodes poetic text and decrypts the envelope inside. With iAmSender
// false, me is the recipient and theirPublicKey the claimed sender; with
// iAmSender true, me recovers a message it protected earlier and
// theirPublicKey is ignored.
//
// Use IsSteganographyError to tell text that was never poetic text apart
// from a damaged or foreign envelope (IsCryptoError).
func (p *Pipeline) Reveal(text string, me *crypto.KeyPair, theirPublicKey *ecdsa.PublicKey, iAmSender bool) (plaintext []byte, err error) {
	start := p.clock.Now()
	defer func() { p.metrics.observe(OperationReveal, p.clock.Since(start), err) }()

	if me == nil {
		return nil, ErrNilIdentity
	}
	if strings.TrimSpace(text) == "" {
		return nil, limits.ErrMessageEmpty
	}
	data, err := p.decoder.Decode(text)
	if err != nil {
		return nil, err
	}
	env, err := envelope.DeserializePadded(data, p.decoder.MaxPaddingBytes())
	if err != nil {
		return nil, err
	}
	return p.orchestrator.Decrypt(env, me.Private, me.Public, theirPublicKey, iAmSender)
}

// AnnounceIdentity returns a self-signed announcement of me's public key as
// poetic text, for sharing over the same channel as messages.
func (p *Pipeline) AnnounceIdentity(me *crypto.KeyPair) (text string, err error) {
	start := p.clock.Now()
	defer func() { p.metrics.observe(OperationAnnounce, p.clock.Since(start), err) }()

	spk, err := envelope.SignPublicKey(me, p.signer, p.clock.Now())
	if err != nil {
		return "", err
	}
	data, err := envelope.SerializeSignedPublicKey(spk)
	if err != nil {
		return "", err
	}
	return p.encoder.Encode(data), nil
}

// ReadAnnouncement decodes an announcement and checks its self-signature.
// The signature only proves possession of the key; the caller still has to
// confirm the fingerprint out of band before trusting it.
func (p *Pipeline) ReadAnnouncement(text string) (spk *envelope.SignedPublicKey, err error) {
	start := p.clock.Now()
	defer func() { p.metrics.observe(OperationReadAnnouncement, p.clock.Since(start), err) }()

	if strings.TrimSpace(text) == "" {
		return nil, limits.ErrMessageEmpty
	}
	data, err := p.decoder.Decode(text)
	if err != nil {
		return nil, err
	}
	spk, err = envelope.DeserializeSignedPublicKeyPadded(data, p.decoder.MaxPaddingBytes())
	if err != nil {
		return nil, err
	}
	if _, err := spk.Verify(p.keys, p.signer); err != nil {
		return nil, err
	}
	return spk, nil
}

// LooksLikePoeticText reports whether every token of text is a corpus word.
func (p *Pipeline) LooksLikePoeticText(text string) bool {
	return p.decoder.Validate(text)
}
