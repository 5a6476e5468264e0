// Package poetic is the steganographic layer: it rewrites arbitrary bytes as
// a sequence of words from a corpus and back.
//
// With a corpus of N words each word carries floor(log2(N)) bits. Bytes are
// read most-significant bit first, cut into word-sized chunks, and each chunk
// selects the word at that index. The last chunk is zero padded; the decoder
// drops the leftover bits that do not fill a whole byte.
//
//	enc, _ := poetic.NewEncoder(corpus.Default())
//	text := enc.Encode(envelopeBytes)
//
// Decoding fails with [ErrUnknownWord] when a token is not in the corpus,
// which tells "not our text" apart from a corrupted envelope.
package poetic
