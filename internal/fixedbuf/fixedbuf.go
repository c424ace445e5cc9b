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

// Package fixedbuf implements a write-once byte buffer of an exact size.
//
// A Buffer is allocated without zeroing, filled front to back through a
// cursor, and then frozen into a string. It never grows: the caller must know
// the final size up front.
package fixedbuf

import (
	"io"
	"unicode/utf8"

	"github.com/bytedance/gopkg/lang/dirtmake"

	"github.com/cloudwego/istring/unsafex"
)

var (
	_ io.Writer       = &Buffer{}
	_ io.StringWriter = &Buffer{}
	_ io.ByteWriter   = &Buffer{}
)

// Buffer is an exact-capacity buffer with a write cursor.
// buf[:wi] is initialized, buf[wi:] holds whatever dirtmake returned.
//
// A Buffer must not be copied once written to.
type Buffer struct {
	buf    []byte
	wi     int
	frozen bool
}

// New returns a Buffer of exactly size bytes.
// It is returned by value so that it can live on the caller's stack.
func New(size int) Buffer {
	if size < 0 {
		panic("fixedbuf: negative size")
	}
	var b Buffer
	if size > 0 {
		b.buf = dirtmake.Bytes(size, size)
	}
	return b
}

// Cap returns the size the Buffer was created with, or 0 once frozen.
func (b *Buffer) Cap() int { return len(b.buf) }

// Written returns the cursor position.
func (b *Buffer) Written() int { return b.wi }

// Available returns the number of bytes that still have to be written.
func (b *Buffer) Available() int { return len(b.buf) - b.wi }

func (b *Buffer) reserve(n int) []byte {
	if b.frozen {
		panic("fixedbuf: write after Freeze")
	}
	if n > len(b.buf)-b.wi {
		panic("fixedbuf: write exceeds capacity")
	}
	return b.buf[b.wi : b.wi+n]
}

// Write copies p at the cursor. It panics if p does not fit.
func (b *Buffer) Write(p []byte) (int, error) {
	n := copy(b.reserve(len(p)), p)
	b.wi += n
	return n, nil
}

// WriteString copies s at the cursor. It panics if s does not fit.
func (b *Buffer) WriteString(s string) (int, error) {
	n := copy(b.reserve(len(s)), s)
	b.wi += n
	return n, nil
}

// WriteByte writes c at the cursor. It panics if the Buffer is full.
func (b *Buffer) WriteByte(c byte) error {
	b.reserve(1)[0] = c
	b.wi++
	return nil
}

// WriteRune encodes r as UTF-8 straight into the unwritten tail.
// Invalid runes are written as utf8.RuneError, like utf8.EncodeRune does.
func (b *Buffer) WriteRune(r rune) (int, error) {
	n := RuneLen(r)
	b.reserve(n)
	// Encode into the whole tail; a partial slice would hide a short write.
	n = utf8.EncodeRune(b.buf[b.wi:], r)
	b.wi += n
	return n, nil
}

// Freeze returns the contents as a string sharing the Buffer's memory and
// detaches the memory from the Buffer. It panics unless every byte has been
// written exactly once.
func (b *Buffer) Freeze() string {
	if b.frozen {
		panic("fixedbuf: Freeze called twice")
	}
	if b.wi != len(b.buf) {
		panic("fixedbuf: buffer not fully written")
	}
	s := unsafex.BinaryToString(b.buf)
	b.buf = nil
	b.wi = 0
	b.frozen = true
	return s
}

// RuneLen returns the number of bytes WriteRune uses for r.
func RuneLen(r rune) int {
	if n := utf8.RuneLen(r); n > 0 {
		return n
	}
	return utf8.RuneLen(utf8.RuneError)
}
