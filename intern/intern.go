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

// Package intern deduplicates IStrings.
//
// A Table keeps one IString per distinct content. Interning the same bytes
// twice returns IStrings backed by the same memory, so a program holding many
// equal identifiers pays for their bytes once.
package intern

import (
	"sync"

	"github.com/cloudwego/istring/istring"
	"github.com/cloudwego/istring/unsafex"
)

// Table is an interning table of IStrings.
//
// The zero value is empty and ready to use.
// It's safe for concurrent use by multiple goroutines.
type Table struct {
	mu sync.RWMutex

	// keys share memory with their values
	index map[string]istring.IString

	size int // total bytes held
}

// Intern returns the IString in t holding s, adding a copy of s if needed.
func (t *Table) Intern(s string) istring.IString {
	// fast path: most lookups hit and only need the read lock
	if x, ok := t.Query(s); ok {
		return x
	}
	return t.internSlow(s)
}

// InternBytes is like Intern for a []byte.
// b must not be modified until InternBytes returns.
func (t *Table) InternBytes(b []byte) istring.IString {
	// Neither Query nor internSlow keeps s, so aliasing b is safe here.
	return t.Intern(unsafex.BinaryToString(b))
}

// InternRunes returns the IString in t holding the UTF-8 encoding of rs.
func (t *Table) InternRunes(rs []rune) istring.IString {
	x := istring.FromRunes(rs)
	if y, ok := t.Query(x.String()); ok {
		return y
	}
	return t.insert(x)
}

// Query returns the IString in t holding s, if any.
// The empty string is always present.
func (t *Table) Query(s string) (istring.IString, bool) {
	if s == "" {
		return istring.IString{}, true
	}
	t.mu.RLock()
	x, ok := t.index[s]
	t.mu.RUnlock()
	return x, ok
}

// QueryBytes is like Query for a []byte.
func (t *Table) QueryBytes(b []byte) (istring.IString, bool) {
	return t.Query(unsafex.BinaryToString(b))
}

func (t *Table) internSlow(s string) istring.IString {
	t.mu.Lock()
	defer t.mu.Unlock()

	// someone may have interned s between RUnlock and Lock
	if x, ok := t.index[s]; ok {
		return x
	}
	return t.insertLocked(istring.New(s))
}

func (t *Table) insert(x istring.IString) istring.IString {
	t.mu.Lock()
	defer t.mu.Unlock()
	if y, ok := t.index[x.String()]; ok {
		return y
	}
	return t.insertLocked(x)
}

func (t *Table) insertLocked(x istring.IString) istring.IString {
	if t.index == nil {
		t.index = make(map[string]istring.IString)
	}
	t.index[x.String()] = x
	t.size += x.Len()
	return x
}

// Len returns the number of distinct non-empty IStrings in t.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.index)
}

// Size returns the total number of bytes held by t.
func (t *Table) Size() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.size
}

// Range calls f for every IString in t in unspecified order until f returns
// false. f must not call methods of t that intern new strings.
func (t *Table) Range(f func(x istring.IString) bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, x := range t.index {
		if !f(x) {
			return
		}
	}
}
