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

// Package streambuf provides byte stream buffering primitives for
// building wire protocol readers and writers: a contiguous Reader with
// marker/cursor tokenization and zero-copy extraction, a ChunkReader
// with the same semantics over discrete immutable chunks, and a
// coalescing chunk Writer with pluggable sinks.
//
// Everything is single-owner with no internal locking. The only
// concurrency boundary is the ChunkReceiver handoff, which transfers
// ownership of whole batches and retains nothing on the sending side.
package streambuf

import (
	"github.com/bytedance/gopkg/lang/span"
)

const (
	defaultReaderSize      = 4096
	defaultWriterChunkSize = 4096

	// CoalesceThreshold is the largest write a Writer copies into its
	// in-progress chunk. Larger writes are handed to the sink as
	// standalone chunks without copying.
	CoalesceThreshold = 64
)

var (
	spanCache            = span.NewSpanCache(1024 * 1024)
	spanCacheEnable bool = false
)

// SetSpanCache enable/disable the span allocator for token string copies
func SetSpanCache(enable bool) {
	spanCacheEnable = enable
}
