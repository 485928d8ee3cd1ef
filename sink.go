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
	"net"
)

// A Sink receives finished chunks from a Writer. WriteChunk takes
// ownership of p and must keep it read only; it never fails and gives no
// delivery guarantee. Flush attempts full delivery of everything pending
// and returns ErrIncompleteFlush when a remainder stays undelivered; the
// remainder is preserved for the next Flush, never duplicated, never
// dropped.
type Sink interface {
	WriteChunk(p []byte)
	Flush() error
}

// A ChunkReceiver consumes batches of chunks asynchronously, the actor
// boundary of this package. A call transfers ownership of the batch
// slice and every chunk in it to the receiver; there is no result to
// observe and the sender retains nothing.
type ChunkReceiver interface {
	WriteChunks(chunks [][]byte)
}

// ReaderSink loops chunks back into a Reader, turning a Writer and a
// Reader into an in-process pipe.
type ReaderSink struct {
	w      *Writable
	chunks [][]byte
	size   int
}

// NewReaderSink returns a sink feeding the reader behind w.
func NewReaderSink(w *Writable) *ReaderSink {
	return &ReaderSink{w: w}
}

// WriteChunk buffers p until the next Flush.
func (s *ReaderSink) WriteChunk(p []byte) {
	s.chunks = append(s.chunks, p)
	s.size += len(p)
}

// Flush grows the reader once by the cumulative pending size, then
// appends the chunks in order. It never fails.
func (s *ReaderSink) Flush() error {
	if len(s.chunks) == 0 {
		return nil
	}
	s.w.Grow(s.size)
	for i, chunk := range s.chunks {
		s.w.Append(chunk)
		s.chunks[i] = nil
	}
	s.chunks = s.chunks[:0]
	s.size = 0
	return nil
}

// ReceiverSink forwards whole batches to a ChunkReceiver. Chunks pile up
// across writes; Flush moves the batch out in one call.
type ReceiverSink struct {
	recv   ChunkReceiver
	chunks [][]byte
}

// NewReceiverSink returns a sink handing batches to recv.
func NewReceiverSink(recv ChunkReceiver) *ReceiverSink {
	return &ReceiverSink{recv: recv}
}

// WriteChunk buffers p until the next Flush.
func (s *ReceiverSink) WriteChunk(p []byte) {
	s.chunks = append(s.chunks, p)
}

// Flush moves the pending batch, if any, into a single WriteChunks call.
// The batch slice itself is handed over, not copied, and the sink starts
// a fresh one. Fire and forget: it never fails.
func (s *ReceiverSink) Flush() error {
	if len(s.chunks) == 0 {
		return nil
	}
	batch := s.chunks
	s.chunks = nil
	s.recv.WriteChunks(batch)
	return nil
}

// IOSink delivers chunks to an io.Writer, all pending chunks in one
// vectored write per flush.
type IOSink struct {
	wd     io.Writer
	chunks net.Buffers
}

// NewIOSink returns a sink writing to wd.
func NewIOSink(wd io.Writer) *IOSink {
	return &IOSink{wd: wd}
}

// WriteChunk buffers p until the next Flush.
func (s *IOSink) WriteChunk(p []byte) {
	s.chunks = append(s.chunks, p)
}

// Flush writes everything pending to the underlying writer. It might
// call writev if wd is a net.Conn. On error the chunks not yet delivered
// stay pending and the returned error matches ErrIncompleteFlush.
func (s *IOSink) Flush() error {
	if len(s.chunks) == 0 {
		return nil
	}
	if _, err := s.chunks.WriteTo(s.wd); err != nil {
		return &flushError{cause: err}
	}
	return nil
}
