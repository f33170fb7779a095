package staticstruct

import (
	"encoding/binary"
	"fmt"
)

var (
	BE = binary.BigEndian
	LE = binary.LittleEndian
	// Order is default binary order
	Order = BE
)

const BUFFER_SIZE = 4096

// MaxCount bounds every decoded length prefix. Memory for a decoded
// sequence or string grows with the bytes actually read, never with the
// prefix alone.
const MaxCount = 1 << 24

// MAX_PADDING defines the maximum number of trailing bytes to check.
// Anything larger is considered a protocol error.
const MAX_PADDING = 1024 // 1KB

// CheckBufferNotZeros verifies that the trailing bytes left after decoding
// are all zero.
func CheckBufferNotZeros(trailing []byte) error {
	if len(trailing) > MAX_PADDING {
		return fmt.Errorf("%w: exceeds maximum expected size of %d bytes", ErrTrailingData, MAX_PADDING)
	}
	for i, b := range trailing {
		if b != 0 {
			return fmt.Errorf("%w: found non-zero byte 0x%02x at offset %d", ErrTrailingData, b, i)
		}
	}
	return nil
}
