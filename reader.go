package staticstruct

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

type byteReader interface {
	io.Reader
	io.ByteReader
}

// Reader decodes the fixed-width primitives a Registry is encoded with.
// It tracks the first error. Subsequent reads become no-ops.
type Reader struct {
	r     byteReader
	count int64 // total bytes read
	err   error // first error encountered.
	order binary.ByteOrder
}

// NewReaderSize creates a new Reader with a specified buffer size.
func NewReaderSize(r io.Reader, size int) (*Reader, error) {
	if r == nil {
		return nil, ErrNilIO
	}

	switch reader := r.(type) {
	// Share the source of an existing Reader, keep an independent count.
	case *Reader:
		return &Reader{r: reader.r, order: reader.order}, nil

	// prevent unpredictable double-buffering.
	case *bufio.Reader:
		if reader.Size() >= size {
			return &Reader{r: reader, order: Order}, nil
		}
		return nil, ErrAlreadyBuffered

	// underlying is a buf so we don't need buffering
	case *BytesReader:
		return &Reader{r: reader, order: Order}, nil
	case *bytes.Reader:
		return &Reader{r: reader, order: Order}, nil
	case *bytes.Buffer:
		return &Reader{r: reader, order: Order}, nil
	}

	if size < 16 {
		return nil, ErrSizeTooSmall
	}

	return &Reader{r: bufio.NewReaderSize(r, size), order: Order}, nil
}

// NewReader creates a new Reader with a default buffer size.
func NewReader(r io.Reader) (*Reader, error) {
	return NewReaderSize(r, BUFFER_SIZE)
}

// WithByteOrder allows setting a custom byte order and returns
// the configured for chaining.
func (r *Reader) WithByteOrder(order binary.ByteOrder) *Reader {
	r.order = order
	return r
}

// Read implements the io.Reader interface.
func (r *Reader) Read(p []byte) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	n, err := r.r.Read(p)
	r.count += int64(n)
	r.setError(err)
	return n, r.err
}

func (r *Reader) Count() int64 { return r.count }
func (r *Reader) Err() error   { return r.err }
func (r *Reader) IsEOF() bool  { return r.err == io.EOF }

// setError records the first non-nil error.
func (r *Reader) setError(err error) {
	if r.err == nil && err != nil {
		r.err = err
	}
}

// Result returns the total bytes read and the final error state.
func (r *Reader) Result() (int64, error) {
	return r.count, r.err
}

// readFull reads exactly n bytes.
func (r *Reader) readFull(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n > BUFFER_SIZE {
		return r.readGrowing(n)
	}
	buf := make([]byte, n)
	read, err := io.ReadFull(r.r, buf)
	r.count += int64(read)
	if err != nil {
		// io.ReadFull reports a partial read as io.ErrUnexpectedEOF.
		r.setError(err)
		return nil
	}
	return buf
}

// readGrowing reads exactly n bytes into a buffer that grows with the data
// actually received, so a corrupt length cannot reserve n bytes up front.
func (r *Reader) readGrowing(n int) []byte {
	var buf bytes.Buffer
	read, err := io.CopyN(&buf, r.r, int64(n))
	r.count += read
	if err != nil {
		if err == io.EOF && read > 0 {
			err = io.ErrUnexpectedEOF
		}
		r.setError(err)
		return nil
	}
	return buf.Bytes()
}

func (r *Reader) readByte() byte {
	if r.err != nil {
		return 0
	}
	b, err := r.r.ReadByte()
	if err != nil {
		r.setError(err)
		return 0
	}
	r.count++
	return b
}

// ReadBytes reads n bytes and returns a new byte slice.
func (r *Reader) ReadBytes(n int) []byte {
	if n <= 0 {
		return nil
	}
	return r.readFull(n)
}

// ReadCount reads a uint32 length prefix and checks it against MaxCount.
func (r *Reader) ReadCount() int {
	var n uint32
	r.ReadUint32(&n)
	if r.err != nil {
		return 0
	}
	if n > MaxCount {
		r.setError(fmt.Errorf("%w: %d exceeds %d", ErrCountTooLarge, n, MaxCount))
		return 0
	}
	return int(n)
}

// --- Primitive Read Operations ---

func (r *Reader) ReadBool(dest *bool) {
	b := r.readByte()
	if r.err == nil {
		*dest = b != 0
	}
}

func (r *Reader) ReadUint8(dest *uint8) {
	b := r.readByte()
	if r.err == nil {
		*dest = b
	}
}

func (r *Reader) ReadUint16(dest *uint16) {
	buf := r.readFull(2)
	if r.err == nil {
		*dest = r.order.Uint16(buf)
	}
}

func (r *Reader) ReadUint32(dest *uint32) {
	buf := r.readFull(4)
	if r.err == nil {
		*dest = r.order.Uint32(buf)
	}
}

func (r *Reader) ReadUint64(dest *uint64) {
	buf := r.readFull(8)
	if r.err == nil {
		*dest = r.order.Uint64(buf)
	}
}

func (r *Reader) ReadInt8(dest *int8) {
	b := r.readByte()
	if r.err == nil {
		*dest = int8(b)
	}
}

func (r *Reader) ReadInt16(dest *int16) {
	buf := r.readFull(2)
	if r.err == nil {
		*dest = int16(r.order.Uint16(buf))
	}
}

func (r *Reader) ReadInt32(dest *int32) {
	buf := r.readFull(4)
	if r.err == nil {
		*dest = int32(r.order.Uint32(buf))
	}
}

func (r *Reader) ReadInt64(dest *int64) {
	buf := r.readFull(8)
	if r.err == nil {
		*dest = int64(r.order.Uint64(buf))
	}
}

func (r *Reader) ReadFloat32(dest *float32) {
	buf := r.readFull(4)
	if r.err == nil {
		*dest = math.Float32frombits(r.order.Uint32(buf))
	}
}

func (r *Reader) ReadFloat64(dest *float64) {
	buf := r.readFull(8)
	if r.err == nil {
		*dest = math.Float64frombits(r.order.Uint64(buf))
	}
}

// ReadPrefixedString reads a uint32 length followed by that many bytes.
func (r *Reader) ReadPrefixedString(dest *string) {
	n := r.ReadCount()
	if r.err != nil {
		return
	}
	buf := r.readFull(n)
	if r.err == nil {
		*dest = string(buf)
	}
}

// readUint reads an unsigned integer of width bytes.
func (r *Reader) readUint(width int) uint64 {
	switch width {
	case 1:
		return uint64(r.readByte())
	case 2:
		var v uint16
		r.ReadUint16(&v)
		return uint64(v)
	case 4:
		var v uint32
		r.ReadUint32(&v)
		return uint64(v)
	default:
		var v uint64
		r.ReadUint64(&v)
		return v
	}
}
