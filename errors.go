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

import "errors"

var (
	// ErrOutOfData means an operation needed more bytes than are
	// currently buffered. Reader state stays retry-safe: feed more bytes
	// and call again. AdvanceWhile is the one documented exception, it
	// keeps partial progress.
	ErrOutOfData = errors.New("streambuf: out of data")

	// ErrInvalidToken means the token content is malformed for the
	// requested interpretation, e.g. a non-digit byte where a decimal
	// integer is expected. Waiting for more data cannot fix it.
	ErrInvalidToken = errors.New("streambuf: invalid token")

	// ErrIncompleteFlush means a sink could not deliver all pending
	// chunks. The undelivered remainder is preserved; call Flush again.
	ErrIncompleteFlush = errors.New("streambuf: incomplete flush")

	// ErrSourceClosed means the byte source has permanently closed and
	// no further bytes will ever arrive.
	ErrSourceClosed = errors.New("streambuf: source closed")
)

var errNegativeCount = errors.New("streambuf: negative count")

// flushError carries the cause of a failed delivery while matching
// ErrIncompleteFlush in errors.Is chains.
type flushError struct {
	cause error
}

func (e *flushError) Error() string {
	return "streambuf: incomplete flush: " + e.cause.Error()
}

func (e *flushError) Is(target error) bool {
	return target == ErrIncompleteFlush
}

func (e *flushError) Unwrap() error {
	return e.cause
}
