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

	"github.com/cloudwego/streambuf/container/window"
)

// position addresses one byte in the chunk window: the logical chunk
// index and the offset inside that chunk. Positions are kept normalized,
// the offset is always valid for its chunk, or the position is the
// one-past-end sentinel (End, 0).
type position struct {
	idx int
	off int
}

// ChunkReader buffers an incrementally arriving byte stream as an
// ordered sequence of immutable chunks, ingested without copying, and
// tokenizes it with the same marker/cursor vocabulary as Reader. Chunk
// boundaries are invisible to callers: advancing, peeking and token
// operations walk across them.
//
// Byte counts ahead of marker and cursor are maintained incrementally,
// so Len and TokenLen never rescan the chunks.
type ChunkReader struct {
	chunks *window.Window[[]byte]

	cursor position
	marker position

	aheadCursor int // bytes ahead of the cursor
	aheadMarker int // bytes ahead of the marker
	totalIn     int // bytes ever appended
}

// NewChunkReader returns an empty ChunkReader.
func NewChunkReader() *ChunkReader {
	return &ChunkReader{chunks: window.New[[]byte](8)}
}

// Append ingests chunk without copying it. The reader owns the chunk
// afterwards and requires it to stay unmodified. Empty chunks are
// dropped.
func (cr *ChunkReader) Append(chunk []byte) {
	if len(chunk) == 0 {
		return
	}
	cr.chunks.Push(chunk)
	cr.aheadCursor += len(chunk)
	cr.aheadMarker += len(chunk)
	cr.totalIn += len(chunk)
}

// Len returns the number of bytes ahead of the cursor.
func (cr *ChunkReader) Len() int {
	return cr.aheadCursor
}

// Pos returns the absolute stream position of the cursor.
func (cr *ChunkReader) Pos() int {
	return cr.totalIn - cr.aheadCursor
}

// Mark pins the token start at the current cursor.
func (cr *ChunkReader) Mark() {
	cr.marker = cr.cursor
	cr.aheadMarker = cr.aheadCursor
}

// Rewind moves the cursor back to the marker.
func (cr *ChunkReader) Rewind() {
	cr.cursor = cr.marker
	cr.aheadCursor = cr.aheadMarker
}

func (cr *ChunkReader) chunkAt(idx int) []byte {
	chunk, _ := cr.chunks.Get(idx)
	return chunk
}

// skip moves the cursor n bytes forward without validation; the caller
// guarantees n <= aheadCursor.
func (cr *ChunkReader) skip(n int) {
	cr.aheadCursor -= n
	pos := cr.cursor
	for n > 0 {
		room := len(cr.chunkAt(pos.idx)) - pos.off
		if n < room {
			pos.off += n
			break
		}
		n -= room
		pos.idx, pos.off = pos.idx+1, 0
	}
	cr.cursor = pos
}

// Advance moves the cursor n bytes forward, walking chunk boundaries.
// It returns ErrOutOfData and leaves the cursor unchanged if fewer than
// n bytes are ahead.
func (cr *ChunkReader) Advance(n int) error {
	if n < 0 {
		return errNegativeCount
	}
	if n > cr.aheadCursor {
		return ErrOutOfData
	}
	cr.skip(n)
	return nil
}

// AdvanceWhile moves the cursor forward while pred holds for the byte
// under it, crossing chunk boundaries, and stops on the first byte it
// rejects. Reaching the end of buffered data first is ErrOutOfData; the
// progress made is kept, so the scan resumes where it stopped once more
// chunks arrive.
func (cr *ChunkReader) AdvanceWhile(pred func(b byte) bool) error {
	end := cr.chunks.End()
	pos := cr.cursor
	moved := 0
	for pos.idx < end {
		chunk := cr.chunkAt(pos.idx)
		for pos.off < len(chunk) {
			if !pred(chunk[pos.off]) {
				cr.cursor = pos
				cr.aheadCursor -= moved
				return nil
			}
			pos.off++
			moved++
		}
		pos.idx, pos.off = pos.idx+1, 0
	}
	cr.cursor = pos
	cr.aheadCursor -= moved
	return ErrOutOfData
}

// peekFill copies len(p) bytes starting off bytes ahead of the cursor
// into p, gathering across chunks, without moving the cursor.
func (cr *ChunkReader) peekFill(off int, p []byte) error {
	if off < 0 {
		return errNegativeCount
	}
	if off+len(p) > cr.aheadCursor {
		return ErrOutOfData
	}
	pos := cr.cursor
	for off > 0 {
		room := len(cr.chunkAt(pos.idx)) - pos.off
		if off < room {
			pos.off += off
			break
		}
		off -= room
		pos.idx, pos.off = pos.idx+1, 0
	}
	l := 0
	for l < len(p) {
		chunk := cr.chunkAt(pos.idx)
		l += copy(p[l:], chunk[pos.off:])
		pos.idx, pos.off = pos.idx+1, 0
	}
	return nil
}

// takeFill reads len(p) bytes at the cursor and advances past them.
func (cr *ChunkReader) takeFill(p []byte) error {
	if err := cr.peekFill(0, p); err != nil {
		return err
	}
	cr.skip(len(p))
	return nil
}

// TakeByte reads the byte under the cursor and advances past it.
func (cr *ChunkReader) TakeByte() (byte, error) {
	if cr.aheadCursor == 0 {
		return 0, ErrOutOfData
	}
	chunk := cr.chunkAt(cr.cursor.idx)
	b := chunk[cr.cursor.off]
	cr.aheadCursor--
	if cr.cursor.off+1 < len(chunk) {
		cr.cursor.off++
	} else {
		cr.cursor.idx, cr.cursor.off = cr.cursor.idx+1, 0
	}
	return b, nil
}

// TakeUint16 reads a native-order uint16 at the cursor and advances past it.
func (cr *ChunkReader) TakeUint16() (uint16, error) {
	var b [2]byte
	if err := cr.takeFill(b[:]); err != nil {
		return 0, err
	}
	return binary.NativeEndian.Uint16(b[:]), nil
}

// TakeUint32 reads a native-order uint32 at the cursor and advances past it.
func (cr *ChunkReader) TakeUint32() (uint32, error) {
	var b [4]byte
	if err := cr.takeFill(b[:]); err != nil {
		return 0, err
	}
	return binary.NativeEndian.Uint32(b[:]), nil
}

// TakeUint64 reads a native-order uint64 at the cursor and advances past it.
func (cr *ChunkReader) TakeUint64() (uint64, error) {
	var b [8]byte
	if err := cr.takeFill(b[:]); err != nil {
		return 0, err
	}
	return binary.NativeEndian.Uint64(b[:]), nil
}

// TakeUint16BE reads a big-endian uint16 at the cursor and advances past it.
func (cr *ChunkReader) TakeUint16BE() (uint16, error) {
	var b [2]byte
	if err := cr.takeFill(b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b[:]), nil
}

// TakeUint32BE reads a big-endian uint32 at the cursor and advances past it.
func (cr *ChunkReader) TakeUint32BE() (uint32, error) {
	var b [4]byte
	if err := cr.takeFill(b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b[:]), nil
}

// TakeUint64BE reads a big-endian uint64 at the cursor and advances past it.
func (cr *ChunkReader) TakeUint64BE() (uint64, error) {
	var b [8]byte
	if err := cr.takeFill(b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b[:]), nil
}

// TakeUint16LE reads a little-endian uint16 at the cursor and advances past it.
func (cr *ChunkReader) TakeUint16LE() (uint16, error) {
	var b [2]byte
	if err := cr.takeFill(b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b[:]), nil
}

// TakeUint32LE reads a little-endian uint32 at the cursor and advances past it.
func (cr *ChunkReader) TakeUint32LE() (uint32, error) {
	var b [4]byte
	if err := cr.takeFill(b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

// TakeUint64LE reads a little-endian uint64 at the cursor and advances past it.
func (cr *ChunkReader) TakeUint64LE() (uint64, error) {
	var b [8]byte
	if err := cr.takeFill(b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

// PeekByte returns the byte off bytes ahead of the cursor without moving it.
func (cr *ChunkReader) PeekByte(off int) (byte, error) {
	if off < 0 {
		return 0, errNegativeCount
	}
	if off >= cr.aheadCursor {
		return 0, ErrOutOfData
	}
	pos := cr.cursor
	for {
		chunk := cr.chunkAt(pos.idx)
		room := len(chunk) - pos.off
		if off < room {
			return chunk[pos.off+off], nil
		}
		off -= room
		pos.idx, pos.off = pos.idx+1, 0
	}
}

// PeekUint16 returns the native-order uint16 off bytes ahead of the cursor.
func (cr *ChunkReader) PeekUint16(off int) (uint16, error) {
	var b [2]byte
	if err := cr.peekFill(off, b[:]); err != nil {
		return 0, err
	}
	return binary.NativeEndian.Uint16(b[:]), nil
}

// PeekUint32 returns the native-order uint32 off bytes ahead of the cursor.
func (cr *ChunkReader) PeekUint32(off int) (uint32, error) {
	var b [4]byte
	if err := cr.peekFill(off, b[:]); err != nil {
		return 0, err
	}
	return binary.NativeEndian.Uint32(b[:]), nil
}

// PeekUint64 returns the native-order uint64 off bytes ahead of the cursor.
func (cr *ChunkReader) PeekUint64(off int) (uint64, error) {
	var b [8]byte
	if err := cr.peekFill(off, b[:]); err != nil {
		return 0, err
	}
	return binary.NativeEndian.Uint64(b[:]), nil
}

// PeekUint16BE returns the big-endian uint16 off bytes ahead of the cursor.
func (cr *ChunkReader) PeekUint16BE(off int) (uint16, error) {
	var b [2]byte
	if err := cr.peekFill(off, b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b[:]), nil
}

// PeekUint32BE returns the big-endian uint32 off bytes ahead of the cursor.
func (cr *ChunkReader) PeekUint32BE(off int) (uint32, error) {
	var b [4]byte
	if err := cr.peekFill(off, b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b[:]), nil
}

// PeekUint64BE returns the big-endian uint64 off bytes ahead of the cursor.
func (cr *ChunkReader) PeekUint64BE(off int) (uint64, error) {
	var b [8]byte
	if err := cr.peekFill(off, b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b[:]), nil
}

// PeekUint16LE returns the little-endian uint16 off bytes ahead of the cursor.
func (cr *ChunkReader) PeekUint16LE(off int) (uint16, error) {
	var b [2]byte
	if err := cr.peekFill(off, b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b[:]), nil
}

// PeekUint32LE returns the little-endian uint32 off bytes ahead of the cursor.
func (cr *ChunkReader) PeekUint32LE(off int) (uint32, error) {
	var b [4]byte
	if err := cr.peekFill(off, b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

// PeekUint64LE returns the little-endian uint64 off bytes ahead of the cursor.
func (cr *ChunkReader) PeekUint64LE(off int) (uint64, error) {
	var b [8]byte
	if err := cr.peekFill(off, b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

// TokenLen returns the number of bytes between marker and cursor.
func (cr *ChunkReader) TokenLen() int {
	return cr.aheadMarker - cr.aheadCursor
}

// eachTokenSlice calls fn for every chunk segment between marker and
// cursor in order, stopping early when fn returns false. It is the
// common basis for token materialization, comparison and parsing.
func (cr *ChunkReader) eachTokenSlice(fn func(p []byte) bool) {
	pos := cr.marker
	for pos.idx < cr.cursor.idx {
		if !fn(cr.chunkAt(pos.idx)[pos.off:]) {
			return
		}
		pos.idx, pos.off = pos.idx+1, 0
	}
	if pos.idx == cr.cursor.idx && pos.off < cr.cursor.off {
		fn(cr.chunkAt(pos.idx)[pos.off:cr.cursor.off])
	}
}

// gatherToken copies the token into one owned buffer of exactly n bytes.
func (cr *ChunkReader) gatherToken(n int) []byte {
	buf := dirtmake.Bytes(n, n)
	l := 0
	cr.eachTokenSlice(func(p []byte) bool {
		l += copy(buf[l:], p)
		return true
	})
	return buf
}

// tokenInOneChunk reports whether the whole token lies inside the
// marker's chunk.
func (cr *ChunkReader) tokenInOneChunk(n int) bool {
	return cr.marker.off+n <= len(cr.chunkAt(cr.marker.idx))
}

// TokenString returns the bytes between marker and cursor as a string.
// A token inside a single chunk becomes a zero-copy view of it; chunks
// are immutable, so the view stays valid. Tokens spanning chunks are
// concatenated once.
func (cr *ChunkReader) TokenString() string {
	n := cr.TokenLen()
	if n == 0 {
		return ""
	}
	if cr.tokenInOneChunk(n) {
		chunk := cr.chunkAt(cr.marker.idx)
		return b2s(chunk[cr.marker.off : cr.marker.off+n])
	}
	return b2s(cr.gatherToken(n))
}

// TokenUint parses the token as an unsigned decimal integer. Any
// non-digit byte, or an empty token, is ErrInvalidToken.
func (cr *ChunkReader) TokenUint() (uint64, error) {
	if cr.TokenLen() == 0 {
		return 0, ErrInvalidToken
	}
	var v uint64
	valid := true
	cr.eachTokenSlice(func(p []byte) bool {
		var err error
		v, err = accumUint(v, p)
		valid = err == nil
		return valid
	})
	if !valid {
		return 0, ErrInvalidToken
	}
	return v, nil
}

// TokenEqual reports whether the token equals p.
func (cr *ChunkReader) TokenEqual(p []byte) bool {
	if cr.TokenLen() != len(p) {
		return false
	}
	equal := true
	cr.eachTokenSlice(func(seg []byte) bool {
		equal = bytes.Equal(seg, p[:len(seg)])
		p = p[len(seg):]
		return equal
	})
	return equal
}

// TokenEqualFold reports whether the token matches lower ignoring ASCII
// case in the token, crossing chunk boundaries. lower must already be
// all lowercase.
func (cr *ChunkReader) TokenEqualFold(lower []byte) bool {
	if cr.TokenLen() != len(lower) {
		return false
	}
	equal := true
	cr.eachTokenSlice(func(seg []byte) bool {
		for i := 0; i < len(seg); i++ {
			if lowerASCII(seg[i]) != lower[i] {
				equal = false
				return false
			}
		}
		lower = lower[len(seg):]
		return true
	})
	return equal
}

// ExtractToken removes and returns the bytes between marker and cursor
// as an owned buffer, dropping the chunks it leaves behind. A token
// inside a single chunk is returned as a capped zero-copy view of it;
// tokens spanning chunks are concatenated once.
func (cr *ChunkReader) ExtractToken() []byte {
	n := cr.TokenLen()
	var tok []byte
	switch {
	case n == 0:
		tok = []byte{}
	case cr.tokenInOneChunk(n):
		chunk := cr.chunkAt(cr.marker.idx)
		tok = chunk[cr.marker.off : cr.marker.off+n : cr.marker.off+n]
	default:
		tok = cr.gatherToken(n)
	}
	cr.marker = cr.cursor
	cr.aheadMarker = cr.aheadCursor
	cr.compact()
	return tok
}

// ExtractAll advances the cursor to the end of buffered data and
// extracts everything from the marker on.
func (cr *ChunkReader) ExtractAll() []byte {
	cr.skip(cr.aheadCursor)
	return cr.ExtractToken()
}

// consume moves the cursor n validated bytes forward, brings the marker
// along and drops the chunks left behind.
func (cr *ChunkReader) consume(n int) {
	cr.skip(n)
	cr.marker = cr.cursor
	cr.aheadMarker = cr.aheadCursor
	cr.compact()
}

// findByte returns the distance from the cursor to the first occurrence
// of c, or -1 when c is not ahead of the cursor.
func (cr *ChunkReader) findByte(c byte) int {
	end := cr.chunks.End()
	pos := cr.cursor
	n := 0
	for pos.idx < end {
		chunk := cr.chunkAt(pos.idx)
		if i := bytes.IndexByte(chunk[pos.off:], c); i >= 0 {
			return n + i
		}
		n += len(chunk) - pos.off
		pos.idx, pos.off = pos.idx+1, 0
	}
	return -1
}

// byteBeforeCursor returns the byte directly behind the cursor. Valid
// only while marker < cursor, which guarantees the byte exists.
func (cr *ChunkReader) byteBeforeCursor() byte {
	if cr.cursor.off > 0 {
		return cr.chunkAt(cr.cursor.idx)[cr.cursor.off-1]
	}
	prev := cr.chunkAt(cr.cursor.idx - 1)
	return prev[len(prev)-1]
}

// ExtractLine scans ahead for the next line feed, which may sit in a
// later chunk, and returns the bytes from the marker up to it with one
// trailing carriage return stripped, discarding through the terminator.
// Until a line feed is buffered it returns ErrOutOfData with the
// position untouched.
func (cr *ChunkReader) ExtractLine() ([]byte, error) {
	i := cr.findByte('\n')
	if i < 0 {
		return nil, ErrOutOfData
	}
	cr.skip(i) // cursor now on the line feed
	strip := cr.TokenLen() > 0 && cr.byteBeforeCursor() == '\r'
	line := cr.ExtractToken()
	if strip {
		line = line[: len(line)-1 : len(line)-1]
	}
	cr.consume(1)
	return line, nil
}

// ExtractFrame reads a 4 byte big-endian length prefix at the cursor and
// extracts that many payload bytes following it, discarding the prefix.
// Both prefix and payload may straddle chunk boundaries. Unless the
// whole frame is buffered it returns ErrOutOfData with the position
// untouched.
func (cr *ChunkReader) ExtractFrame() ([]byte, error) {
	sz, err := cr.PeekUint32BE(0)
	if err != nil {
		return nil, err
	}
	if uint64(sz) > uint64(cr.aheadCursor-4) {
		return nil, ErrOutOfData
	}
	cr.consume(4)
	cr.skip(int(sz))
	return cr.ExtractToken(), nil
}

// Compact drops the chunks that lie fully behind both marker and cursor.
// Logical indexing keeps the stored positions valid and the cached byte
// counts are unaffected, so compaction is safe at any point. Extraction
// compacts implicitly; long mark-and-rewind scans may call it by hand.
func (cr *ChunkReader) Compact() {
	cr.compact()
}

func (cr *ChunkReader) compact() {
	// marker <= cursor, so the marker's chunk is the binding edge
	if n := cr.marker.idx - cr.chunks.Base(); n > 0 {
		cr.chunks.DropFirst(n)
	}
}

// Clear drops all chunks and resets the reader for a new stream.
func (cr *ChunkReader) Clear() {
	cr.chunks.Reset()
	cr.cursor = position{}
	cr.marker = position{}
	cr.aheadCursor, cr.aheadMarker, cr.totalIn = 0, 0, 0
}
