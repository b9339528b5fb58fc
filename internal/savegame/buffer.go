// Package savegame reads and writes the save-game image of a world: a
// per-item record shaped by each object's save flags, Lara's block and
// the flip state. It understands the current tagged format and the older
// untagged layout.
package savegame

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/vovakirdan/tomb-engine/internal/core"
)

// MaxSize is the largest save image.
const MaxSize = 10240

var (
	// ErrCorrupt reports a save that fails validation.
	ErrCorrupt = errors.New("savegame: corrupt save")
	// ErrSizeMismatch reports a save whose length does not match the
	// layout it claims.
	ErrSizeMismatch = errors.New("savegame: size mismatch")
)

// OverflowError is the panic value raised when a save image outgrows
// MaxSize.
type OverflowError struct {
	Size int
	Max  int
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("savegame: buffer overflow: %d bytes exceeds %d", e.Size, e.Max)
}

// writer appends little-endian values to a bounded buffer.
type writer struct {
	buf []byte
}

func newWriter() *writer {
	return &writer{buf: make([]byte, 0, MaxSize)}
}

func (w *writer) grow(n int) []byte {
	if len(w.buf)+n > MaxSize {
		panic(&OverflowError{Size: len(w.buf) + n, Max: MaxSize})
	}
	start := len(w.buf)
	w.buf = w.buf[:start+n]
	return w.buf[start:]
}

func (w *writer) bytes(p []byte) { copy(w.grow(len(p)), p) }
func (w *writer) u8(v uint8)     { w.grow(1)[0] = v }
func (w *writer) u16(v uint16)   { binary.LittleEndian.PutUint16(w.grow(2), v) }
func (w *writer) i16(v int16)    { w.u16(uint16(v)) }
func (w *writer) i32(v int32)    { binary.LittleEndian.PutUint32(w.grow(4), uint32(v)) }
func (w *writer) u64(v uint64)   { binary.LittleEndian.PutUint64(w.grow(8), v) }

func (w *writer) bool(v bool) {
	if v {
		w.u8(1)
		return
	}
	w.u8(0)
}

// reader consumes little-endian values. Reading past the end sets a sticky
// ErrSizeMismatch and yields zeroes.
type reader struct {
	buf []byte
	pos int
	err error
}

func newReader(buf []byte) *reader {
	return &reader{buf: buf}
}

func (r *reader) take(n int) []byte {
	if r.err != nil || r.pos+n > len(r.buf) {
		r.err = ErrSizeMismatch
		return make([]byte, n)
	}
	p := r.buf[r.pos : r.pos+n]
	r.pos += n
	return p
}

func (r *reader) u8() uint8   { return r.take(1)[0] }
func (r *reader) u16() uint16 { return binary.LittleEndian.Uint16(r.take(2)) }
func (r *reader) i16() int16  { return int16(r.u16()) }
func (r *reader) i32() int32  { return int32(binary.LittleEndian.Uint32(r.take(4))) }
func (r *reader) u64() uint64 { return binary.LittleEndian.Uint64(r.take(8)) }
func (r *reader) bool() bool  { return r.u8() != 0 }

// remaining returns the unread byte count.
func (r *reader) remaining() int {
	return len(r.buf) - r.pos
}

func writeRot(w *writer, r core.Rot) {
	w.i16(r.X)
	w.i16(r.Y)
	w.i16(r.Z)
}

func readRot(r *reader) core.Rot {
	return core.Rot{X: r.i16(), Y: r.i16(), Z: r.i16()}
}

func boolToI16(v bool) int16 {
	if v {
		return 1
	}
	return 0
}
