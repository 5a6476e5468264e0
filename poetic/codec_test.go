package poetic

import (
	"bytes"
	"crypto/rand"
	"strings"
	"testing"

	"github.com/opd-ai/versecrypt/corpus"
	"github.com/opd-ai/versecrypt/limits"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCodec(t testing.TB, c *corpus.Corpus) (*Encoder, *Decoder) {
	t.Helper()
	enc, err := NewEncoder(c)
	require.NoError(t, err)
	dec, err := NewDecoder(c)
	require.NoError(t, err)
	return enc, dec
}

func arabicCorpus(t testing.TB) *corpus.Corpus {
	t.Helper()
	c, err := corpus.FromWords([]string{"الف", "ب", "ج", "د"})
	require.NoError(t, err)
	return c
}

func TestArabicSingleByte(t *testing.T) {
	enc, dec := newCodec(t, arabicCorpus(t))

	text := enc.Encode([]byte{0xB0})
	assert.Equal(t, "ج د الف الف", text)
	assert.Len(t, strings.Fields(text), 4)

	got, err := dec.Decode(text)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xB0}, got)
}

func TestEmptyInput(t *testing.T) {
	enc, dec := newCodec(t, corpus.Default())

	assert.Equal(t, "", enc.Encode(nil))

	got, err := dec.Decode("")
	require.NoError(t, err)
	assert.Empty(t, got)

	assert.False(t, dec.Validate(""))
	assert.False(t, dec.Validate("   \n"))
}

func TestRoundTripDefaultCorpus(t *testing.T) {
	enc, dec := newCodec(t, corpus.Default())

	sizes := []int{1, 2, 3, 10, 11, 64, 1024, 4096}
	for _, n := range sizes {
		data := make([]byte, n)
		_, err := rand.Read(data)
		require.NoError(t, err)

		text := enc.Encode(data)
		assert.Len(t, strings.Fields(text), (n*8+10)/11, "size %d", n)
		assert.True(t, dec.Validate(text))

		got, err := dec.Decode(text)
		require.NoError(t, err)
		assertPaddedEqual(t, dec, data, got)
	}
}

func assertPaddedEqual(t *testing.T, dec *Decoder, want, got []byte) {
	t.Helper()
	require.GreaterOrEqual(t, len(got), len(want))
	assert.Equal(t, want, got[:len(want)])
	extra := got[len(want):]
	assert.LessOrEqual(t, len(extra), dec.MaxPaddingBytes())
	for _, b := range extra {
		assert.Zero(t, b)
	}
}

func TestWidePaddingSurvivesAsZeroByte(t *testing.T) {
	enc, dec := newCodec(t, corpus.Default())
	assert.Equal(t, 1, dec.MaxPaddingBytes())

	// 3 bytes = 24 bits -> 3 words of 11 bits = 33 bits, 9 of them padding
	text := enc.Encode([]byte{0x01, 0x02, 0x03})
	require.Len(t, strings.Fields(text), 3)

	got, err := dec.Decode(text)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02, 0x03, 0x00}, got)

	_, narrow := newCodec(t, arabicCorpus(t))
	assert.Equal(t, 0, narrow.MaxPaddingBytes())
}

func TestRoundTripOddWidths(t *testing.T) {
	data := []byte{0x00, 0xFF, 0x5A, 0xA5, 0x01, 0x80, 0x7F}

	for _, count := range []int{2, 3, 5, 8, 17, 100, 513} {
		words := make([]string, count)
		for i := range words {
			words[i] = "w" + strings.Repeat("o", i+1)
		}
		c, err := corpus.FromWords(words)
		require.NoError(t, err)
		enc, dec := newCodec(t, c)

		got, err := dec.Decode(enc.Encode(data))
		require.NoError(t, err)
		assert.Equal(t, data, got, "corpus size %d", count)
	}
}

func TestEncodedWordsBelongToCorpus(t *testing.T) {
	c := corpus.Default()
	enc, _ := newCodec(t, c)

	data := bytes.Repeat([]byte{0xDE, 0xAD, 0xBE, 0xEF}, 64)
	for _, w := range strings.Fields(enc.Encode(data)) {
		assert.True(t, c.Contains(w), w)
	}
}

func TestDecodeWhitespaceTolerance(t *testing.T) {
	enc, dec := newCodec(t, arabicCorpus(t))

	text := enc.Encode([]byte{0x1B, 0xE4})
	messy := "  " + strings.ReplaceAll(text, " ", "\n\t ") + "\n"

	got, err := dec.Decode(messy)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x1B, 0xE4}, got)
}

func TestUnknownWord(t *testing.T) {
	_, dec := newCodec(t, arabicCorpus(t))

	_, err := dec.Decode("ج د hello الف")
	assert.ErrorIs(t, err, ErrUnknownWord)
	assert.False(t, dec.Validate("ج د hello الف"))
	assert.True(t, dec.Validate("ج د ب الف"))

	// punctuation and case must match exactly
	_, dec = newCodec(t, corpus.Default())
	assert.False(t, dec.Validate("Abandon ability"))
	assert.False(t, dec.Validate("abandon, ability"))
	assert.True(t, dec.Validate("abandon ability"))
}

func TestWordOutsideEncodableRange(t *testing.T) {
	c, err := corpus.FromWords([]string{"a", "b", "c", "d", "e"})
	require.NoError(t, err)
	require.Equal(t, 2, c.BitsPerWord())
	_, dec := newCodec(t, c)

	_, err = dec.Decode("a b c e")
	assert.ErrorIs(t, err, ErrUnknownWord)
	assert.False(t, dec.Validate("a b c e"))
}

func TestDecodeRejectsOversizedText(t *testing.T) {
	_, dec := newCodec(t, arabicCorpus(t))
	huge := strings.Repeat("x", limits.MaxPoeticText+1)

	_, err := dec.Decode(huge)
	assert.ErrorIs(t, err, limits.ErrMessageTooLarge)
	assert.False(t, dec.Validate(huge))
}

func TestNilCorpus(t *testing.T) {
	_, err := NewEncoder(nil)
	assert.ErrorIs(t, err, ErrNilCorpus)
	_, err = NewDecoder(nil)
	assert.ErrorIs(t, err, ErrNilCorpus)
}

func TestBitHelpers(t *testing.T) {
	data := []byte{0xB0}
	assert.Equal(t, 2, readBits(data, 0, 2))
	assert.Equal(t, 3, readBits(data, 2, 2))
	assert.Equal(t, 0, readBits(data, 6, 4), "bits past the end read as zero")
	assert.Equal(t, 0x58, readBits(data, 0, 7))

	out := make([]byte, 1)
	writeBits(out, 0, 3, 5)
	writeBits(out, 3, 11, 0x7FF)
	assert.Equal(t, byte(0xBF), out[0])
}

func FuzzRoundTrip(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte{0xB0})
	f.Add([]byte("Hello, World!"))
	f.Add(make([]byte, 100))

	enc, dec := newCodec(f, corpus.Default())

	f.Fuzz(func(t *testing.T, data []byte) {
		if len(data) > 8192 {
			return
		}
		got, err := dec.Decode(enc.Encode(data))
		if err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		if len(got) < len(data) || !bytes.Equal(got[:len(data)], data) {
			t.Fatalf("round trip mismatch: got %x, want %x", got, data)
		}
		extra := got[len(data):]
		if len(extra) > dec.MaxPaddingBytes() || !bytes.Equal(extra, make([]byte, len(extra))) {
			t.Errorf("unexpected trailing bytes %x", extra)
		}
	})
}

func FuzzDecode(f *testing.F) {
	f.Add("abandon ability able")
	f.Add("")
	f.Add("not a corpus word")

	_, dec := newCodec(f, corpus.Default())

	f.Fuzz(func(t *testing.T, text string) {
		_, err := dec.Decode(text)
		if dec.Validate(text) && err != nil {
			t.Errorf("Validate accepted text that Decode rejected: %v", err)
		}
	})
}

func BenchmarkEncode1K(b *testing.B) {
	enc, _ := newCodec(b, corpus.Default())
	data := make([]byte, 1024)
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = enc.Encode(data)
	}
}

func BenchmarkDecode1K(b *testing.B) {
	enc, dec := newCodec(b, corpus.Default())
	text := enc.Encode(make([]byte, 1024))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := dec.Decode(text); err != nil {
			b.Fatal(err)
		}
	}
}
