// Package corpus holds the word list that acts as the shared codebook of the
// poetic codec.
//
// A [Corpus] is immutable once built. Its word count fixes the number of bits
// each word carries (floor(log2(count))), and its order fixes which word stands
// for which value, so both sides of a conversation must load the same list.
// [Corpus.Fingerprint] lets them compare.
//
// [Provider] wraps the one-time load behind a mutex for callers that load
// lazily from several goroutines.
package corpus
