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

import "unsafe"

// b2s converts a byte slice to a string without copying.
// bs must not be mutated afterwards.
func b2s(bs []byte) string {
	return unsafe.String(unsafe.SliceData(bs), len(bs))
}

// s2b converts a string to a byte slice without copying.
// The result is read only.
func s2b(s string) []byte {
	return unsafe.Slice(unsafe.StringData(s), len(s))
}
