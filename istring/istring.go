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

// Package istring provides IString, an immutable byte string that owns
// exactly as many bytes as it holds.
//
// An IString is two words (pointer and length), one word less than a []byte,
// and its storage is never shared with the caller: every constructor copies
// into a freshly allocated buffer of the exact size. The bytes may or may not
// be valid UTF-8; validity is checked on demand.
//
// IString is comparable and can be used as a map key directly.
package istring

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bytedance/gopkg/util/xxhash3"

	"github.com/cloudwego/istring/internal/fixedbuf"
	"github.com/cloudwego/istring/unsafex"
)

// IString is an immutable owned byte string. The zero value is empty.
type IString struct {
	// s owns its memory; it is built by a frozen fixedbuf.Buffer and never
	// aliases memory handed in by a caller.
	s string
}

// FromBytes returns an IString holding a copy of b.
func FromBytes(b []byte) IString {
	if len(b) == 0 {
		return IString{}
	}
	buf := fixedbuf.New(len(b))
	_, _ = buf.Write(b)
	return IString{s: buf.Freeze()}
}

// New returns an IString holding a copy of s.
// The result is always valid UTF-8 if s is.
func New(s string) IString {
	return FromBytes(unsafex.StringToBinary(s))
}

// FromRunes returns an IString holding the UTF-8 encoding of rs.
//
// The exact size is computed before allocating and each rune is encoded
// straight into the new buffer, so nothing else is allocated. Values in rs
// that are not Unicode scalar values are encoded as utf8.RuneError.
func FromRunes(rs []rune) IString {
	n := EncodedLen(rs)
	if n == 0 {
		return IString{}
	}
	buf := fixedbuf.New(n)
	for _, r := range rs {
		_, _ = buf.WriteRune(r)
	}
	// Freeze panics if the cursor is not exactly at n.
	return IString{s: buf.Freeze()}
}

// EncodedLen returns the number of bytes FromRunes(rs) holds.
func EncodedLen(rs []rune) int {
	n := 0
	for _, r := range rs {
		n += fixedbuf.RuneLen(r)
	}
	return n
}

// Len returns the number of bytes.
func (x IString) Len() int { return len(x.s) }

// IsEmpty reports whether x holds no bytes.
func (x IString) IsEmpty() bool { return len(x.s) == 0 }

// At returns the i-th byte. It panics if i is out of range.
func (x IString) At(i int) byte { return x.s[i] }

// Bytes returns a copy of the bytes which the caller may modify.
func (x IString) Bytes() []byte {
	if len(x.s) == 0 {
		return []byte{}
	}
	return []byte(x.s)
}

// UnsafeBytes returns the bytes without copying.
// The returned slice MUST NOT be modified.
func (x IString) UnsafeBytes() []byte {
	return unsafex.StringToBinary(x.s)
}

// AppendTo appends the bytes to dst and returns the extended slice.
func (x IString) AppendTo(dst []byte) []byte {
	return append(dst, x.s...)
}

// WriteTo writes the bytes to w. It implements io.WriterTo.
func (x IString) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(x.UnsafeBytes())
	return int64(n), err
}

// IsValidUTF8 reports whether the bytes are valid UTF-8.
func (x IString) IsValidUTF8() bool {
	return validUTF8(x.s)
}

// Text returns the bytes as text without copying.
// It returns an *EncodingError if they are not valid UTF-8.
func (x IString) Text() (string, error) {
	if err := checkUTF8(x.s); err != nil {
		return "", err
	}
	return x.s, nil
}

// String returns the bytes as a string, whether or not they are valid UTF-8.
func (x IString) String() string { return x.s }

// GoString returns a quoted string if x is valid UTF-8, and the byte list
// otherwise. It implements fmt.GoStringer, so it is used by %#v.
func (x IString) GoString() string {
	if x.IsValidUTF8() {
		return strconv.Quote(x.s)
	}
	return fmt.Sprint(x.UnsafeBytes())
}

// Equal reports whether x and y hold the same bytes. It's the same as x == y.
func (x IString) Equal(y IString) bool { return x.s == y.s }

// EqualString reports whether x holds the same bytes as s.
func (x IString) EqualString(s string) bool { return x.s == s }

// EqualBytes reports whether x holds the same bytes as b.
func (x IString) EqualBytes(b []byte) bool { return x.s == string(b) }

// Compare compares x and y byte by byte and returns -1, 0 or +1.
func (x IString) Compare(y IString) int { return strings.Compare(x.s, y.s) }

// Less reports whether x sorts before y.
func (x IString) Less(y IString) bool { return x.s < y.s }

// Hash returns the xxhash3 hash of the bytes.
// Equal IStrings always have equal hashes.
func (x IString) Hash() uint64 { return xxhash3.HashString(x.s) }

// Clone returns an equal IString backed by its own copy of the bytes.
func (x IString) Clone() IString { return New(x.s) }

// MarshalText implements encoding.TextMarshaler.
// It fails with an *EncodingError if x is not valid UTF-8.
func (x IString) MarshalText() ([]byte, error) {
	if err := checkUTF8(x.s); err != nil {
		return nil, err
	}
	return x.Bytes(), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
// It replaces *x with a new IString; storage of the old value is untouched.
func (x *IString) UnmarshalText(b []byte) error {
	*x = FromBytes(b)
	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (x IString) MarshalBinary() ([]byte, error) {
	return x.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (x *IString) UnmarshalBinary(b []byte) error {
	*x = FromBytes(b)
	return nil
}
