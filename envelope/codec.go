package envelope

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/opd-ai/versecrypt/limits"
	"github.com/sirupsen/logrus"
)

const lengthPrefixSize = 4

type field struct {
	name     string
	value    *[]byte
	required bool
}

type fieldWriter struct {
	buf []byte
}

func (w *fieldWriter) writeField(b []byte) {
	w.buf = binary.BigEndian.AppendUint32(w.buf, uint32(len(b)))
	w.buf = append(w.buf, b...)
}

func (w *fieldWriter) writeUint64(v uint64) {
	w.buf = binary.BigEndian.AppendUint64(w.buf, v)
}

func (w *fieldWriter) bytes() []byte {
	return w.buf
}

type fieldReader struct {
	data []byte
	off  int
}

func (r *fieldReader) remaining() int {
	return len(r.data) - r.off
}

// readField reads one length-prefixed field. A zero length yields nil.
func (r *fieldReader) readField(name string) ([]byte, error) {
	if r.remaining() < lengthPrefixSize {
		return nil, fmt.Errorf("%w: %s length prefix needs %d bytes, %d left", ErrTruncatedData, name, lengthPrefixSize, r.remaining())
	}
	declared := binary.BigEndian.Uint32(r.data[r.off:])
	r.off += lengthPrefixSize

	if declared > math.MaxInt32 || declared > limits.MaxEnvelopeField {
		return nil, fmt.Errorf("%w: %s declares %d bytes", ErrCorruptLength, name, declared)
	}
	n := int(declared)
	if n > r.remaining() {
		return nil, fmt.Errorf("%w: %s declares %d bytes, %d left", ErrTruncatedData, name, n, r.remaining())
	}
	if n == 0 {
		return nil, nil
	}

	out := make([]byte, n)
	copy(out, r.data[r.off:r.off+n])
	r.off += n
	return out, nil
}

func (r *fieldReader) readUint64(name string) (uint64, error) {
	if r.remaining() < 8 {
		return 0, fmt.Errorf("%w: %s needs 8 bytes, %d left", ErrTruncatedData, name, r.remaining())
	}
	v := binary.BigEndian.Uint64(r.data[r.off:])
	r.off += 8
	return v, nil
}

// finishPadded accepts up to maxPadding trailing zero bytes.
func (r *fieldReader) finishPadded(maxPadding int) error {
	rest := r.data[r.off:]
	if len(rest) > maxPadding {
		return fmt.Errorf("%w: %d bytes", ErrTrailingData, len(rest))
	}
	for _, b := range rest {
		if b != 0 {
			return fmt.Errorf("%w: non-zero padding", ErrTrailingData)
		}
	}
	r.off = len(r.data)
	return nil
}

// Serialize encodes the envelope as ten length-prefixed fields in wire order:
// receiver ephemeral key, receiver signature, ciphertext, nonce, auth tag,
// sender ephemeral key, sender signature, wrapped key, wrapped key nonce,
// wrapped key tag. Absent optional fields are written with length 0.
func Serialize(e *CryptoEnvelope) ([]byte, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}

	w := &fieldWriter{}
	for _, f := range e.fields() {
		if len(*f.value) > limits.MaxEnvelopeField {
			return nil, fmt.Errorf("%w: %s is %d bytes", ErrCorruptLength, f.name, len(*f.value))
		}
		w.writeField(*f.value)
	}

	out := w.bytes()
	if err := limits.ValidateEnvelope(out); err != nil {
		return nil, err
	}
	return out, nil
}

// Deserialize decodes an envelope produced by Serialize. It rejects short
// buffers with ErrTruncatedData, impossible length prefixes with
// ErrCorruptLength and leftover bytes with ErrTrailingData.
func Deserialize(data []byte) (*CryptoEnvelope, error) {
	return DeserializePadded(data, 0)
}

// DeserializePadded is Deserialize that also accepts up to maxPadding
// trailing zero bytes, as left behind by the poetic decoder.
func DeserializePadded(data []byte, maxPadding int) (*CryptoEnvelope, error) {
	if err := limits.ValidateEnvelope(data); err != nil {
		if len(data) == 0 {
			return nil, fmt.Errorf("%w: empty envelope", ErrTruncatedData)
		}
		return nil, err
	}

	e := &CryptoEnvelope{}
	r := &fieldReader{data: data}
	for _, f := range e.fields() {
		value, err := r.readField(f.name)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"function": "Deserialize",
				"field":    f.name,
				"size":     len(data),
				"error":    err.Error(),
			}).Debug("Envelope framing rejected")
			return nil, err
		}
		*f.value = value
	}
	if err := r.finishPadded(maxPadding); err != nil {
		return nil, err
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}
