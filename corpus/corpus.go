package corpus

import (
	"bufio"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math/bits"
	"os"
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"
	"github.com/tyler-smith/go-bip39/wordlists"
)

var (
	// ErrEmptyCorpus indicates a word list with no usable entries
	ErrEmptyCorpus = errors.New("empty corpus")

	// ErrCorpusTooSmall indicates a word list that cannot carry a single bit per word
	ErrCorpusTooSmall = errors.New("corpus needs at least two distinct words")

	// ErrCorpusNotLoaded indicates the provider was queried before a load
	ErrCorpusNotLoaded = errors.New("corpus not loaded")

	// ErrInvalidWord indicates a corpus line holding more than one token
	ErrInvalidWord = errors.New("invalid corpus word")
)

// Corpus is an immutable, ordered word list used as the steganographic codebook.
// Encoder and decoder must hold identical corpora.
type Corpus struct {
	words       []string
	index       map[string]int
	bitsPerWord int
}

// FromWords builds a corpus from an in-memory list. Entries are trimmed,
// blank entries are skipped and repeated words keep their first position.
func FromWords(words []string) (*Corpus, error) {
	c := &Corpus{
		words: make([]string, 0, len(words)),
		index: make(map[string]int, len(words)),
	}

	duplicates := 0
	for i, raw := range words {
		w := strings.TrimSpace(raw)
		if w == "" {
			continue
		}
		if strings.IndexFunc(w, unicode.IsSpace) >= 0 {
			return nil, fmt.Errorf("%w: entry %d contains whitespace", ErrInvalidWord, i+1)
		}
		if _, seen := c.index[w]; seen {
			duplicates++
			continue
		}
		c.index[w] = len(c.words)
		c.words = append(c.words, w)
	}

	if duplicates > 0 {
		logrus.WithFields(logrus.Fields{
			"function":   "FromWords",
			"package":    "corpus",
			"duplicates": duplicates,
		}).Warn("Dropped repeated corpus words")
	}

	switch len(c.words) {
	case 0:
		return nil, ErrEmptyCorpus
	case 1:
		return nil, ErrCorpusTooSmall
	}

	c.bitsPerWord = bits.Len(uint(len(c.words))) - 1
	return c, nil
}

// Load reads a newline-delimited UTF-8 word list.
func Load(r io.Reader) (*Corpus, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if len(words) == 0 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read corpus: %w", err)
	}
	return FromWords(words)
}

// LoadFile reads a word list from disk.
func LoadFile(path string) (*Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus: %w", err)
	}
	defer f.Close()

	c, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Default returns the built-in corpus: the 2048-word BIP-39 English list,
// carrying 11 bits per word.
func Default() *Corpus {
	c, err := FromWords(wordlists.English)
	if err != nil {
		panic(fmt.Sprintf("built-in corpus is invalid: %v", err))
	}
	return c
}

// WordCount returns the number of distinct words.
func (c *Corpus) WordCount() int {
	return len(c.words)
}

// BitsPerWord returns floor(log2(WordCount())).
func (c *Corpus) BitsPerWord() int {
	return c.bitsPerWord
}

// Word returns the word at index i.
func (c *Corpus) Word(i int) (string, bool) {
	if i < 0 || i >= len(c.words) {
		return "", false
	}
	return c.words[i], true
}

// Index returns the position of w.
func (c *Corpus) Index(w string) (int, bool) {
	i, ok := c.index[w]
	return i, ok
}

// Contains reports whether w is a corpus word.
func (c *Corpus) Contains(w string) bool {
	_, ok := c.index[w]
	return ok
}

// Fingerprint is SHA-256 over the ordered word list. Two parties holding
// corpora with equal fingerprints can exchange poetic text.
func (c *Corpus) Fingerprint() [32]byte {
	h := sha256.New()
	var n [4]byte
	for _, w := range c.words {
		binary.BigEndian.PutUint32(n[:], uint32(len(w)))
		h.Write(n[:])
		h.Write([]byte(w))
	}
	var sum [32]byte
	copy(sum[:], h.Sum(nil))
	return sum
}
