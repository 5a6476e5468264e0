package poetic

import (
	"errors"
	"fmt"
	"strings"

	"github.com/opd-ai/versecrypt/corpus"
	"github.com/opd-ai/versecrypt/limits"
	"github.com/sirupsen/logrus"
)

var (
	// ErrUnknownWord indicates a token that the corpus cannot decode
	ErrUnknownWord = errors.New("unknown word")

	// ErrNilCorpus indicates a codec built without a corpus
	ErrNilCorpus = errors.New("nil corpus")
)

// Encoder turns bytes into space-separated corpus words.
type Encoder struct {
	corpus *corpus.Corpus
}

// NewEncoder binds an encoder to a loaded corpus.
func NewEncoder(c *corpus.Corpus) (*Encoder, error) {
	if c == nil {
		return nil, ErrNilCorpus
	}
	return &Encoder{corpus: c}, nil
}

// Encode packs data most-significant bit first into BitsPerWord-wide chunks
// and emits one word per chunk. The final chunk is zero padded. Empty input
// yields the empty string.
func (e *Encoder) Encode(data []byte) string {
	width := e.corpus.BitsPerWord()
	totalBits := len(data) * 8
	wordCount := (totalBits + width - 1) / width

	var b strings.Builder
	for i := 0; i < wordCount; i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		w, _ := e.corpus.Word(readBits(data, i*width, width))
		b.WriteString(w)
	}

	logrus.WithFields(logrus.Fields{
		"function":   "Encode",
		"package":    "poetic",
		"bytes":      len(data),
		"word_count": wordCount,
	}).Debug("Encoded bytes as poetic text")

	return b.String()
}

// Decoder turns corpus words back into bytes.
type Decoder struct {
	corpus *corpus.Corpus
}

// NewDecoder binds a decoder to a loaded corpus.
func NewDecoder(c *corpus.Corpus) (*Decoder, error) {
	if c == nil {
		return nil, ErrNilCorpus
	}
	return &Decoder{corpus: c}, nil
}

// Decode reverses Encode. Words are split on any whitespace. Bits left over
// after the last whole byte are encoder padding and are discarded.
//
// When a word carries more than 8 bits the padding can span a whole byte, so
// the output may end in up to MaxPaddingBytes zero bytes that were not in the
// encoded input. Self-delimiting payloads such as envelopes tolerate this.
func (d *Decoder) Decode(text string) ([]byte, error) {
	if err := limits.ValidatePoeticText(text); err != nil {
		return nil, err
	}

	words := strings.Fields(text)
	width := d.corpus.BitsPerWord()
	out := make([]byte, len(words)*width/8)

	for i, w := range words {
		v, err := d.value(w)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"function": "Decode",
				"package":  "poetic",
				"position": i,
			}).Debug("Poetic text contains a non-corpus word")
			return nil, fmt.Errorf("%w at position %d", err, i)
		}
		writeBits(out, i*width, width, v)
	}
	return out, nil
}

// MaxPaddingBytes returns how many trailing zero bytes Decode may add.
func (d *Decoder) MaxPaddingBytes() int {
	return (d.corpus.BitsPerWord() - 1) / 8
}

// Validate reports whether text is non-empty and made only of decodable
// corpus words. It is a cheap check for "is this our format at all".
func (d *Decoder) Validate(text string) bool {
	if len(text) > limits.MaxPoeticText {
		return false
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return false
	}
	for _, w := range words {
		if _, err := d.value(w); err != nil {
			return false
		}
	}
	return true
}

// value maps a word to its index. Words past the last index representable in
// BitsPerWord bits are never produced by Encode and are rejected.
func (d *Decoder) value(w string) (int, error) {
	idx, ok := d.corpus.Index(w)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownWord, w)
	}
	if idx >= 1<<d.corpus.BitsPerWord() {
		return 0, fmt.Errorf("%w: %q is outside the encodable range", ErrUnknownWord, w)
	}
	return idx, nil
}
