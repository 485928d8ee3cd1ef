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
	"io"

	"github.com/bytedance/gopkg/lang/dirtmake"
)

// Writable is the privileged half of a Reader: only it may append bytes
// or reallocate the backing storage. Reader methods never reallocate, so
// a region booked for an in-flight fill stays valid no matter how the
// reading side moves its cursor in the meantime.
//
// It is held by the stream's owner, not handed to parsing code.
type Writable struct {
	r *Reader
}

// Append copies p into the reader's buffer, growing it as needed.
func (w *Writable) Append(p []byte) {
	w.grow(len(p))
	r := w.r
	r.buf = r.buf[:len(r.buf)+copy(r.buf[len(r.buf):cap(r.buf)], p)]
}

// Book returns a writable region of at least min bytes (one byte
// minimum) past the buffered content, growing the buffer as needed.
// Bytes written into it become readable only after BookAck.
func (w *Writable) Book(min int) []byte {
	if min < 1 {
		min = 1
	}
	w.grow(min)
	r := w.r
	return r.buf[len(r.buf):cap(r.buf)]
}

// BookAck commits the first n bytes of the booked region.
func (w *Writable) BookAck(n int) {
	r := w.r
	if n < 0 || n > cap(r.buf)-len(r.buf) {
		panic("streambuf: book ack out of range")
	}
	r.buf = r.buf[:len(r.buf)+n]
}

// Grow ensures at least n bytes of spare capacity beyond the buffered
// content.
func (w *Writable) Grow(n int) {
	if n <= 0 {
		return
	}
	w.grow(n)
}

// GrowAhead ensures capacity for at least n bytes ahead of the reader's
// cursor, counting bytes already buffered past it. It reallocates only
// when the capacity ahead falls short.
func (w *Writable) GrowAhead(n int) {
	r := w.r
	if n <= cap(r.buf)-r.cursor {
		return
	}
	w.grow(r.cursor + n - len(r.buf))
}

// Fill books a region, reads once from src into it, and commits what was
// read. It returns the number of bytes committed. io.EOF maps to
// ErrSourceClosed: the source is gone for good.
func (w *Writable) Fill(src io.Reader) (int, error) {
	buf := w.Book(1)
	n, err := src.Read(buf)
	if n > 0 {
		w.BookAck(n)
	}
	if err == io.EOF {
		err = ErrSourceClosed
	}
	return n, err
}

func (w *Writable) grow(n int) {
	// fast path, for inline
	if n <= cap(w.r.buf)-len(w.r.buf) {
		return
	}
	w.growSlow(n)
}

func (w *Writable) growSlow(n int) {
	r := w.r
	// new buffer. the old array may still be aliased by extracted
	// slices, it must never be reused.
	ncap := cap(r.buf) * 2
	if ncap < defaultReaderSize {
		ncap = defaultReaderSize
	}
	for ; ncap < len(r.buf)+n; ncap *= 2 {
	}
	nbuf := dirtmake.Bytes(len(r.buf), ncap)
	copy(nbuf, r.buf)
	r.buf = nbuf
}
