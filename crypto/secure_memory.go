package crypto

import (
	"errors"
	"runtime"
)

// SecureWipe overwrites a byte slice holding sensitive data with zeros.
// It returns an error if the slice is nil.
func SecureWipe(data []byte) error {
	if data == nil {
		return errors.New("cannot wipe nil data")
	}
	clear(data)
	// keep the slice live until the stores above have happened
	runtime.KeepAlive(data)
	return nil
}

// ZeroBytes is SecureWipe without the nil check error.
func ZeroBytes(data []byte) {
	_ = SecureWipe(data)
}

// WipeAll zeroes every non-nil buffer.
func WipeAll(buffers ...[]byte) {
	for _, b := range buffers {
		if b != nil {
			ZeroBytes(b)
		}
	}
}
