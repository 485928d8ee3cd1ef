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

package window

// Window is an index-stable FIFO. Values enter at the back with Push and
// leave at the front with DropFirst, and the i-th value ever pushed keeps
// logical index i for its whole life, no matter how many predecessors
// were dropped. Callers can therefore store logical indices across drops.
type Window[V any] struct {
	items []V
	base  int // logical index of items[0]
}

// New returns an empty Window with room for sizeHint values.
func New[V any](sizeHint int) *Window[V] {
	return &Window[V]{items: make([]V, 0, sizeHint)}
}

// Push appends v at the back and returns its logical index.
func (w *Window[V]) Push(v V) int {
	w.items = append(w.items, v)
	return w.base + len(w.items) - 1
}

// Get returns the value at logical index i.
func (w *Window[V]) Get(i int) (V, bool) {
	if i < w.base || i >= w.base+len(w.items) {
		var zero V
		return zero, false
	}
	return w.items[i-w.base], true
}

// DropFirst discards the n oldest values and releases their references.
// Dropping more than Len values drops everything.
func (w *Window[V]) DropFirst(n int) {
	if n > len(w.items) {
		n = len(w.items)
	}
	if n <= 0 {
		return
	}
	var zero V
	for i := 0; i < n; i++ {
		w.items[i] = zero
	}
	w.items = w.items[n:]
	w.base += n
}

// Base returns the logical index of the oldest retained value.
func (w *Window[V]) Base() int {
	return w.base
}

// End returns one past the logical index of the newest value.
func (w *Window[V]) End() int {
	return w.base + len(w.items)
}

// Len returns the number of retained values.
func (w *Window[V]) Len() int {
	return len(w.items)
}

// Do calls f on each retained value in order, oldest first.
func (w *Window[V]) Do(f func(v V)) {
	for i := range w.items {
		f(w.items[i])
	}
}

// Reset drops all values and restarts logical indexing at zero.
func (w *Window[V]) Reset() {
	var zero V
	for i := range w.items {
		w.items[i] = zero
	}
	w.items = w.items[:0]
	w.base = 0
}
