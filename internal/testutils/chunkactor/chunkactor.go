/*
 * Copyright 2026 CloudWeGo Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package chunkactor

import (
	"github.com/oleiade/lane"
)

// Actor stands in for the asynchronous receiver of writer batches.
//
// It's only used for testing purposes: batches handed to WriteChunks
// queue up in a mailbox, in order, until a test relays them with Drain
// or inspects them with Pending.
type Actor struct {
	mailbox *lane.Queue
}

// ChunkAppender consumes relayed chunks, satisfied by
// streambuf.ChunkReader.
type ChunkAppender interface {
	Append(chunk []byte)
}

// New returns an Actor with an empty mailbox.
func New() *Actor {
	return &Actor{mailbox: lane.NewQueue()}
}

// WriteChunks takes ownership of batch and never blocks.
func (a *Actor) WriteChunks(batch [][]byte) {
	a.mailbox.Enqueue(batch)
}

// Pending returns the number of undelivered batches.
func (a *Actor) Pending() int {
	return a.mailbox.Size()
}

// Drain relays every pending chunk into dst, batch order preserved, and
// returns the number of chunks moved.
func (a *Actor) Drain(dst ChunkAppender) int {
	n := 0
	for !a.mailbox.Empty() {
		batch := a.mailbox.Dequeue().([][]byte)
		for _, chunk := range batch {
			dst.Append(chunk)
			n++
		}
	}
	return n
}
