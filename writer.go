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
	"encoding/binary"

	"github.com/bytedance/gopkg/lang/dirtmake"
)

// Writer accumulates bytes into an exclusively owned in-progress chunk
// and hands finished chunks to a Sink. Writes of up to CoalesceThreshold
// bytes coalesce into the chunk; larger writes bypass it and reach the
// sink without copying. Nothing is delivered before Flush.
type Writer struct {
	chunk []byte
	sink  Sink
}

// NewWriter returns a Writer delivering to sink.
func NewWriter(sink Sink) *Writer {
	return NewWriterSize(sink, defaultWriterChunkSize)
}

// NewWriterSize returns a Writer whose first chunk has the given
// capacity hint. sizeHint <= 0 selects the default.
func NewWriterSize(sink Sink, sizeHint int) *Writer {
	if sizeHint <= 0 {
		sizeHint = defaultWriterChunkSize
	}
	return &Writer{chunk: dirtmake.Bytes(0, sizeHint), sink: sink}
}

// Push appends a single byte to the in-progress chunk.
func (w *Writer) Push(b byte) {
	w.chunk = append(w.chunk, b)
}

// PushUint16 appends v in native byte order.
func (w *Writer) PushUint16(v uint16) {
	w.chunk = binary.NativeEndian.AppendUint16(w.chunk, v)
}

// PushUint32 appends v in native byte order.
func (w *Writer) PushUint32(v uint32) {
	w.chunk = binary.NativeEndian.AppendUint32(w.chunk, v)
}

// PushUint64 appends v in native byte order.
func (w *Writer) PushUint64(v uint64) {
	w.chunk = binary.NativeEndian.AppendUint64(w.chunk, v)
}

// Buffered returns the number of bytes in the in-progress chunk.
func (w *Writer) Buffered() int {
	return len(w.chunk)
}

// Write buffers p, implementing io.Writer; the error is always nil.
// Up to CoalesceThreshold bytes are copied into the in-progress chunk.
// A larger p first flushes the in-progress chunk to the sink and is then
// handed over directly, so it must not be mutated afterwards.
func (w *Writer) Write(p []byte) (int, error) {
	if len(p) <= CoalesceThreshold {
		w.chunk = append(w.chunk, p...)
		return len(p), nil
	}
	w.handoff()
	w.sink.WriteChunk(p)
	return len(p), nil
}

// WriteString buffers s like Write. Large strings are handed over
// without copying; sinks keep chunks read only, so sharing the string
// bytes is safe.
func (w *Writer) WriteString(s string) (int, error) {
	if len(s) <= CoalesceThreshold {
		w.chunk = append(w.chunk, s...)
		return len(s), nil
	}
	w.handoff()
	w.sink.WriteChunk(s2b(s))
	return len(s), nil
}

// handoff moves a non-empty in-progress chunk to the sink, replacing it
// with a fresh chunk pre-sized to the same capacity.
func (w *Writer) handoff() {
	if len(w.chunk) == 0 {
		return
	}
	chunk := w.chunk
	w.chunk = dirtmake.Bytes(0, cap(chunk))
	w.sink.WriteChunk(chunk)
}

// Flush hands the in-progress chunk to the sink and asks it to deliver
// everything pending. On ErrIncompleteFlush the undelivered remainder
// stays with the sink; calling Flush again retries.
func (w *Writer) Flush() error {
	w.handoff()
	return w.sink.Flush()
}
