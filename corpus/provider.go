package corpus

import (
	"encoding/hex"
	"io"
	"sync"

	"github.com/sirupsen/logrus"
)

// Provider loads a corpus at most once and hands out the loaded value.
// The first successful load wins; later load calls return the existing corpus.
type Provider struct {
	mu     sync.Mutex
	corpus *Corpus
}

// NewProvider returns an empty provider.
func NewProvider() *Provider {
	return &Provider{}
}

// IsLoaded reports whether a corpus has been loaded.
func (p *Provider) IsLoaded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.corpus != nil
}

// Corpus returns the loaded corpus or ErrCorpusNotLoaded.
func (p *Provider) Corpus() (*Corpus, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.corpus == nil {
		return nil, ErrCorpusNotLoaded
	}
	return p.corpus, nil
}

// LoadFile loads the corpus from path unless one is already loaded.
func (p *Provider) LoadFile(path string) (*Corpus, error) {
	return p.load(path, func() (*Corpus, error) { return LoadFile(path) })
}

// LoadReader loads the corpus from r unless one is already loaded.
func (p *Provider) LoadReader(r io.Reader) (*Corpus, error) {
	return p.load("reader", func() (*Corpus, error) { return Load(r) })
}

// LoadDefault installs the built-in corpus unless one is already loaded.
func (p *Provider) LoadDefault() (*Corpus, error) {
	return p.load("builtin", func() (*Corpus, error) { return Default(), nil })
}

func (p *Provider) load(source string, build func() (*Corpus, error)) (*Corpus, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.corpus != nil {
		return p.corpus, nil
	}

	c, err := build()
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "Provider.load",
			"package":  "corpus",
			"source":   source,
			"error":    err.Error(),
		}).Error("Corpus load failed")
		return nil, err
	}

	fp := c.Fingerprint()
	logrus.WithFields(logrus.Fields{
		"function":      "Provider.load",
		"package":       "corpus",
		"source":        source,
		"word_count":    c.WordCount(),
		"bits_per_word": c.BitsPerWord(),
		"fingerprint":   hex.EncodeToString(fp[:8]),
	}).Info("Corpus loaded")

	p.corpus = c
	return c, nil
}
