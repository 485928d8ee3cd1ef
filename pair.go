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

// Pair couples a Writer to a Reader through an in-process loopback:
// whatever is written and flushed can be read back immediately. It
// exercises protocol encoders against their decoders deterministically,
// with no transport in between.
type Pair struct {
	Reader *Reader
	Writer *Writer
}

// NewPair returns a connected Reader/Writer pair. The reader's Writable
// half is captured by the loopback and not exposed.
func NewPair() *Pair {
	r, w := NewReader(0)
	return &Pair{Reader: r, Writer: NewWriter(NewReaderSink(w))}
}
