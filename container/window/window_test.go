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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindowPushGet(t *testing.T) {
	w := New[int](4)
	assert.Equal(t, 0, w.Len())
	assert.Equal(t, 0, w.Base())
	assert.Equal(t, 0, w.End())

	n := 100
	for i := 0; i < n; i++ {
		idx := w.Push(i * 10)
		assert.Equal(t, i, idx)
	}
	assert.Equal(t, n, w.Len())
	assert.Equal(t, n, w.End())

	for i := 0; i < n; i++ {
		v, ok := w.Get(i)
		require.True(t, ok)
		assert.Equal(t, i*10, v)
	}

	_, ok := w.Get(-1)
	assert.False(t, ok)
	_, ok = w.Get(n)
	assert.False(t, ok)
}

func TestWindowDropFirst(t *testing.T) {
	w := New[string](0)
	w.Push("a")
	w.Push("b")
	w.Push("c")
	w.Push("d")

	w.DropFirst(2)
	assert.Equal(t, 2, w.Len())
	assert.Equal(t, 2, w.Base())
	assert.Equal(t, 4, w.End())

	// dropped indices are gone, retained indices are stable
	_, ok := w.Get(1)
	assert.False(t, ok)
	v, ok := w.Get(2)
	require.True(t, ok)
	assert.Equal(t, "c", v)
	v, ok = w.Get(3)
	require.True(t, ok)
	assert.Equal(t, "d", v)

	// indices keep counting up after a drop
	idx := w.Push("e")
	assert.Equal(t, 4, idx)

	w.DropFirst(0)
	assert.Equal(t, 3, w.Len())
	w.DropFirst(100)
	assert.Equal(t, 0, w.Len())
	assert.Equal(t, 5, w.Base())
	assert.Equal(t, 5, w.End())
}

func TestWindowDropReleasesRefs(t *testing.T) {
	w := New[[]byte](2)
	w.Push([]byte("hello"))
	w.Push([]byte("world"))
	items := w.items
	w.DropFirst(1)
	assert.Nil(t, items[0])
	assert.NotNil(t, items[1])
}

func TestWindowDo(t *testing.T) {
	w := New[int](8)
	for i := 0; i < 10; i++ {
		w.Push(i)
	}
	w.DropFirst(3)

	var got []int
	w.Do(func(v int) {
		got = append(got, v)
	})
	assert.Equal(t, []int{3, 4, 5, 6, 7, 8, 9}, got)
}

func TestWindowReset(t *testing.T) {
	w := New[[]byte](2)
	w.Push([]byte("a"))
	w.Push([]byte("b"))
	w.DropFirst(1)
	w.Reset()

	assert.Equal(t, 0, w.Len())
	assert.Equal(t, 0, w.Base())
	assert.Equal(t, 0, w.End())

	idx := w.Push([]byte("c"))
	assert.Equal(t, 0, idx)
	v, ok := w.Get(0)
	require.True(t, ok)
	assert.Equal(t, []byte("c"), v)
}
