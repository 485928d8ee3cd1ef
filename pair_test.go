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
	"strconv"
	"testing"

	gofakeit "github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPair_RoundTrip(t *testing.T) {
	faker := gofakeit.New(42)
	p := NewPair()

	var want string
	for i := 0; i < 20; i++ {
		s := faker.Sentence(faker.Number(1, 30))
		want += s
		_, err := p.Writer.WriteString(s)
		require.NoError(t, err)
	}
	assert.Equal(t, 0, p.Reader.Len()) // nothing readable before Flush

	require.NoError(t, p.Writer.Flush())
	assert.Equal(t, want, string(p.Reader.ExtractAll()))
}

func TestPair_Frames(t *testing.T) {
	p := NewPair()
	writeFrame := func(payload string) {
		var pre [4]byte
		binary.BigEndian.PutUint32(pre[:], uint32(len(payload)))
		_, err := p.Writer.Write(pre[:])
		require.NoError(t, err)
		_, err = p.Writer.WriteString(payload)
		require.NoError(t, err)
	}

	writeFrame("hello")
	writeFrame("world")
	require.NoError(t, p.Writer.Flush())

	frame, err := p.Reader.ExtractFrame()
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), frame)

	frame, err = p.Reader.ExtractFrame()
	require.NoError(t, err)
	assert.Equal(t, []byte("world"), frame)

	_, err = p.Reader.ExtractFrame()
	assert.Equal(t, ErrOutOfData, err)
}

func TestPair_Lines(t *testing.T) {
	p := NewPair()
	_, err := p.Writer.WriteString("alpha\r\nbeta\n")
	require.NoError(t, err)
	require.NoError(t, p.Writer.Flush())

	line, err := p.Reader.ExtractLine()
	require.NoError(t, err)
	assert.Equal(t, []byte("alpha"), line)

	line, err = p.Reader.ExtractLine()
	require.NoError(t, err)
	assert.Equal(t, []byte("beta"), line)

	_, err = p.Reader.ExtractLine()
	assert.Equal(t, ErrOutOfData, err)
}

func TestPair_InterleavedWriteRead(t *testing.T) {
	isDigit := func(b byte) bool { return b >= '0' && b <= '9' }
	p := NewPair()

	_, err := p.Writer.WriteString("123")
	require.NoError(t, err)
	require.NoError(t, p.Writer.Flush())

	p.Reader.Mark()
	assert.Equal(t, ErrOutOfData, p.Reader.AdvanceWhile(isDigit))

	_, err = p.Writer.WriteString("45 tail")
	require.NoError(t, err)
	require.NoError(t, p.Writer.Flush())

	require.NoError(t, p.Reader.AdvanceWhile(isDigit))
	v, err := p.Reader.TokenUint()
	require.NoError(t, err)
	assert.Equal(t, uint64(12345), v)
	assert.Equal(t, []byte("12345"), p.Reader.ExtractToken())
	assert.Equal(t, []byte(" tail"), p.Reader.ExtractAll())
}

func TestPair_ManyFrames(t *testing.T) {
	faker := gofakeit.New(7)
	p := NewPair()

	payloads := make([]string, 50)
	for i := range payloads {
		payloads[i] = strconv.Itoa(i) + ":" + faker.Word()
		var pre [4]byte
		binary.BigEndian.PutUint32(pre[:], uint32(len(payloads[i])))
		_, err := p.Writer.Write(pre[:])
		require.NoError(t, err)
		_, err = p.Writer.WriteString(payloads[i])
		require.NoError(t, err)
		if i%8 == 0 {
			require.NoError(t, p.Writer.Flush())
		}
	}
	require.NoError(t, p.Writer.Flush())

	for i := range payloads {
		frame, err := p.Reader.ExtractFrame()
		require.NoError(t, err, "frame %d", i)
		assert.Equal(t, payloads[i], string(frame))
	}
	assert.Equal(t, 0, p.Reader.Len())
}
