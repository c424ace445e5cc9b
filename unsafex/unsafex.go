/*
 * Copyright 2024 CloudWeGo Authors
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

// Package unsafex converts between string and []byte without copying.
//
// Both directions alias memory. A string produced by BinaryToString is only
// immutable as long as nobody writes to the slice afterwards, and a slice
// produced by StringToBinary must never be written at all.
package unsafex

import "unsafe"

// BinaryToString returns a string sharing b's memory.
func BinaryToString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(b), len(b))
}

// StringToBinary returns a read-only []byte sharing s's memory.
// The result has len == cap == len(s).
func StringToBinary(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

// SameData reports whether a and b start at the same address.
// Empty strings never share data.
func SameData(a, b string) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	return unsafe.StringData(a) == unsafe.StringData(b)
}
