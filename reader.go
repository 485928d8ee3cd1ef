// Copyright 2026 CloudWeGo Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package streambuf

import (
	"bytes"
	"encoding/binary"

	"github.com/bytedance/gopkg/lang/dirtmake"
)

// Reader buffers an incrementally arriving byte stream in one contiguous
// buffer and tokenizes it with a marker/cursor pair:
//
//	buf[marker:cursor] is the current token, buf[cursor:] is unread.
//
// Failing operations return ErrOutOfData and leave the position intact,
// so callers mark, try to parse, and rewind when bytes are missing.
// Extraction hands out front slices of the buffer without copying.
//
// Bytes are fed in through the Writable half returned by NewReader.
// Reader methods never reallocate the buffer; only the Writable does.
type Reader struct {
	buf    []byte // buf[cursor:] is the buffer for reading
	marker int
	cursor int
	lost   int // bytes discarded from the front by extraction
}

// NewReader returns an empty Reader with an initial capacity hint and
// the Writable half that feeds it. sizeHint <= 0 selects the default.
func NewReader(sizeHint int) (*Reader, *Writable) {
	if sizeHint <= 0 {
		sizeHint = defaultReaderSize
	}
	r := &Reader{buf: dirtmake.Bytes(0, sizeHint)}
	return r, &Writable{r: r}
}

// Len returns the number of bytes ahead of the cursor.
func (r *Reader) Len() int {
	return len(r.buf) - r.cursor
}

// Pos returns the absolute stream position of the cursor, counting the
// bytes discarded by extraction.
func (r *Reader) Pos() int {
	return r.lost + r.cursor
}

// Mark pins the token start at the current cursor.
func (r *Reader) Mark() {
	r.marker = r.cursor
}

// Rewind moves the cursor back to the marker.
func (r *Reader) Rewind() {
	r.cursor = r.marker
}

// Advance moves the cursor n bytes forward. It returns ErrOutOfData and
// leaves the cursor unchanged if fewer than n bytes are ahead.
func (r *Reader) Advance(n int) error {
	if n < 0 {
		return errNegativeCount
	}
	if n > len(r.buf)-r.cursor {
		return ErrOutOfData
	}
	r.cursor += n
	return nil
}

// AdvanceWhile moves the cursor forward while pred holds for the byte
// under it and stops on the first byte it rejects. Reaching the end of
// buffered data first is ErrOutOfData; the progress made is kept, so the
// scan resumes where it stopped once more bytes arrive.
func (r *Reader) AdvanceWhile(pred func(b byte) bool) error {
	for r.cursor < len(r.buf) {
		if !pred(r.buf[r.cursor]) {
			return nil
		}
		r.cursor++
	}
	return ErrOutOfData
}

// take returns the n bytes under the cursor and advances past them.
func (r *Reader) take(n int) ([]byte, error) {
	if n > len(r.buf)-r.cursor {
		return nil, ErrOutOfData
	}
	b := r.buf[r.cursor:]
	r.cursor += n
	return b, nil
}

// peek returns the bytes starting off bytes ahead of the cursor, at
// least n of them, without moving the cursor.
func (r *Reader) peek(off, n int) ([]byte, error) {
	if off < 0 {
		return nil, errNegativeCount
	}
	if off+n > len(r.buf)-r.cursor {
		return nil, ErrOutOfData
	}
	return r.buf[r.cursor+off:], nil
}

// TakeByte reads the byte under the cursor and advances past it.
func (r *Reader) TakeByte() (byte, error) {
	if r.cursor >= len(r.buf) {
		return 0, ErrOutOfData
	}
	b := r.buf[r.cursor]
	r.cursor++
	return b, nil
}

// TakeUint16 reads a native-order uint16 at the cursor and advances past it.
func (r *Reader) TakeUint16() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return binary.NativeEndian.Uint16(b), nil
}

// TakeUint32 reads a native-order uint32 at the cursor and advances past it.
func (r *Reader) TakeUint32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.NativeEndian.Uint32(b), nil
}

// TakeUint64 reads a native-order uint64 at the cursor and advances past it.
func (r *Reader) TakeUint64() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return binary.NativeEndian.Uint64(b), nil
}

// TakeUint16BE reads a big-endian uint16 at the cursor and advances past it.
func (r *Reader) TakeUint16BE() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

// TakeUint32BE reads a big-endian uint32 at the cursor and advances past it.
func (r *Reader) TakeUint32BE() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// TakeUint64BE reads a big-endian uint64 at the cursor and advances past it.
func (r *Reader) TakeUint64BE() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

// TakeUint16LE reads a little-endian uint16 at the cursor and advances past it.
func (r *Reader) TakeUint16LE() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// TakeUint32LE reads a little-endian uint32 at the cursor and advances past it.
func (r *Reader) TakeUint32LE() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// TakeUint64LE reads a little-endian uint64 at the cursor and advances past it.
func (r *Reader) TakeUint64LE() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// PeekByte returns the byte off bytes ahead of the cursor without moving it.
func (r *Reader) PeekByte(off int) (byte, error) {
	b, err := r.peek(off, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// PeekUint16 returns the native-order uint16 off bytes ahead of the cursor.
func (r *Reader) PeekUint16(off int) (uint16, error) {
	b, err := r.peek(off, 2)
	if err != nil {
		return 0, err
	}
	return binary.NativeEndian.Uint16(b), nil
}

// PeekUint32 returns the native-order uint32 off bytes ahead of the cursor.
func (r *Reader) PeekUint32(off int) (uint32, error) {
	b, err := r.peek(off, 4)
	if err != nil {
		return 0, err
	}
	return binary.NativeEndian.Uint32(b), nil
}

// PeekUint64 returns the native-order uint64 off bytes ahead of the cursor.
func (r *Reader) PeekUint64(off int) (uint64, error) {
	b, err := r.peek(off, 8)
	if err != nil {
		return 0, err
	}
	return binary.NativeEndian.Uint64(b), nil
}

// PeekUint16BE returns the big-endian uint16 off bytes ahead of the cursor.
func (r *Reader) PeekUint16BE(off int) (uint16, error) {
	b, err := r.peek(off, 2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

// PeekUint32BE returns the big-endian uint32 off bytes ahead of the cursor.
func (r *Reader) PeekUint32BE(off int) (uint32, error) {
	b, err := r.peek(off, 4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// PeekUint64BE returns the big-endian uint64 off bytes ahead of the cursor.
func (r *Reader) PeekUint64BE(off int) (uint64, error) {
	b, err := r.peek(off, 8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

// PeekUint16LE returns the little-endian uint16 off bytes ahead of the cursor.
func (r *Reader) PeekUint16LE(off int) (uint16, error) {
	b, err := r.peek(off, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// PeekUint32LE returns the little-endian uint32 off bytes ahead of the cursor.
func (r *Reader) PeekUint32LE(off int) (uint32, error) {
	b, err := r.peek(off, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// PeekUint64LE returns the little-endian uint64 off bytes ahead of the cursor.
func (r *Reader) PeekUint64LE(off int) (uint64, error) {
	b, err := r.peek(off, 8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// TokenLen returns the number of bytes between marker and cursor.
func (r *Reader) TokenLen() int {
	return r.cursor - r.marker
}

// Token returns the bytes between marker and cursor as a view into the
// buffer. The view is valid until the next extraction or append.
func (r *Reader) Token() []byte {
	return r.buf[r.marker:r.cursor]
}

// TokenString returns the bytes between marker and cursor as a string.
func (r *Reader) TokenString() string {
	tok := r.buf[r.marker:r.cursor]
	if spanCacheEnable {
		return b2s(spanCache.Copy(tok))
	}
	return string(tok)
}

// TokenUint parses the token as an unsigned decimal integer. Any
// non-digit byte, or an empty token, is ErrInvalidToken.
func (r *Reader) TokenUint() (uint64, error) {
	tok := r.buf[r.marker:r.cursor]
	if len(tok) == 0 {
		return 0, ErrInvalidToken
	}
	return accumUint(0, tok)
}

// TokenEqual reports whether the token equals p.
func (r *Reader) TokenEqual(p []byte) bool {
	return bytes.Equal(r.buf[r.marker:r.cursor], p)
}

// TokenEqualFold reports whether the token matches lower ignoring ASCII
// case in the token. lower must already be all lowercase.
func (r *Reader) TokenEqualFold(lower []byte) bool {
	tok := r.buf[r.marker:r.cursor]
	if len(tok) != len(lower) {
		return false
	}
	for i := 0; i < len(tok); i++ {
		if lowerASCII(tok[i]) != lower[i] {
			return false
		}
	}
	return true
}

// ExtractToken removes and returns the bytes between marker and cursor.
// No copying happens: the result is a capped front slice of the backing
// array whose ownership transfers to the caller, and the reader keeps
// only the bytes past the cursor. Marker and cursor reset to the start
// of what remains.
func (r *Reader) ExtractToken() []byte {
	tok := r.buf[r.marker:r.cursor:r.cursor]
	r.buf = r.buf[r.cursor:]
	r.lost += r.cursor
	r.marker, r.cursor = 0, 0
	return tok
}

// ExtractAll advances the cursor to the end of buffered data and
// extracts everything from the marker on.
func (r *Reader) ExtractAll() []byte {
	r.cursor = len(r.buf)
	return r.ExtractToken()
}

// ExtractLine scans ahead for the next line feed and returns the bytes
// from the marker up to it, with one trailing carriage return stripped,
// discarding through the terminator so the next call reads the next
// line. Until a line feed is buffered it returns ErrOutOfData with the
// position untouched.
func (r *Reader) ExtractLine() ([]byte, error) {
	i := bytes.IndexByte(r.buf[r.cursor:], '\n')
	if i < 0 {
		return nil, ErrOutOfData
	}
	lf := r.cursor + i
	end := lf
	if end > r.marker && r.buf[end-1] == '\r' {
		end--
	}
	line := r.buf[r.marker:end:end]
	r.buf = r.buf[lf+1:]
	r.lost += lf + 1
	r.marker, r.cursor = 0, 0
	return line, nil
}

// ExtractFrame reads a 4 byte big-endian length prefix at the cursor and
// extracts that many payload bytes following it, discarding the prefix.
// Unless the whole frame is buffered it returns ErrOutOfData with the
// position untouched.
func (r *Reader) ExtractFrame() ([]byte, error) {
	if len(r.buf)-r.cursor < 4 {
		return nil, ErrOutOfData
	}
	sz := binary.BigEndian.Uint32(r.buf[r.cursor:])
	if uint64(sz) > uint64(len(r.buf)-r.cursor-4) {
		return nil, ErrOutOfData
	}
	start := r.cursor + 4
	end := start + int(sz)
	frame := r.buf[start:end:end]
	r.buf = r.buf[end:]
	r.lost += end
	r.marker, r.cursor = 0, 0
	return frame, nil
}

// Clear drops all buffered bytes while keeping capacity, resetting the
// reader for a new stream.
func (r *Reader) Clear() {
	r.buf = r.buf[:0]
	r.marker, r.cursor, r.lost = 0, 0, 0
}

// accumUint folds the decimal digits in bs into v.
func accumUint(v uint64, bs []byte) (uint64, error) {
	for _, c := range bs {
		if c < '0' || c > '9' {
			return 0, ErrInvalidToken
		}
		v = v*10 + uint64(c-'0')
	}
	return v, nil
}

func lowerASCII(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}
