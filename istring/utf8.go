// Copyright 2025 CloudWeGo Authors
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

package istring

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrInvalidUTF8 is wrapped by every *EncodingError.
var ErrInvalidUTF8 = errors.New("istring: invalid UTF-8")

// EncodingError describes the first invalid UTF-8 sequence of an IString.
type EncodingError struct {
	// Offset is the index of the first invalid byte, which is also the
	// length of the valid prefix.
	Offset int

	// Length is the number of bytes forming the invalid sequence, 1 to 3.
	// It is 0 if the bytes end in the middle of an otherwise valid sequence,
	// in which case more input could have made them valid.
	Length int
}

func (e *EncodingError) Error() string {
	if e.Length == 0 {
		return fmt.Sprintf("istring: incomplete utf-8 byte sequence from index %d", e.Offset)
	}
	return fmt.Sprintf("istring: invalid utf-8 sequence of %d bytes from index %d", e.Length, e.Offset)
}

func (e *EncodingError) Unwrap() error { return ErrInvalidUTF8 }

func validUTF8(s string) bool {
	return utf8.ValidString(s)
}

func checkUTF8(s string) error {
	if validUTF8(s) {
		return nil
	}
	for i := 0; i < len(s); {
		if s[i] < utf8.RuneSelf {
			i++
			continue
		}
		r, sz := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && sz == 1 {
			n, truncated := invalidSeqLen(s[i:])
			if truncated {
				n = 0
			}
			return &EncodingError{Offset: i, Length: n}
		}
		i += sz
	}
	// unreachable: ValidString and DecodeRuneInString disagree
	panic("istring: inconsistent utf-8 validation")
}

// invalidSeqLen returns the length of the longest prefix of p that could
// begin a well-formed sequence, at least 1. truncated is set when that
// prefix runs to the end of p and is shorter than its lead byte requires.
func invalidSeqLen(p string) (n int, truncated bool) {
	c := p[0]
	lo, hi := byte(0x80), byte(0xBF)
	want := 0
	switch {
	case c >= 0xC2 && c <= 0xDF:
		want = 2
	case c == 0xE0:
		want, lo = 3, 0xA0
	case c == 0xED:
		want, hi = 3, 0x9F
	case c >= 0xE1 && c <= 0xEF:
		want = 3
	case c == 0xF0:
		want, lo = 4, 0x90
	case c == 0xF4:
		want, hi = 4, 0x8F
	case c >= 0xF1 && c <= 0xF3:
		want = 4
	default:
		// continuation byte, overlong lead or beyond U+10FFFF
		return 1, false
	}
	n = 1
	for ; n < want && n < len(p); n++ {
		if p[n] < lo || p[n] > hi {
			return n, false
		}
		lo, hi = 0x80, 0xBF
	}
	return n, n < want
}
