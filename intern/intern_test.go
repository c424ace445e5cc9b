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

package intern_test

import (
	"crypto/rand"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudwego/istring/intern"
	"github.com/cloudwego/istring/istring"
	"github.com/cloudwego/istring/unsafex"
)

func TestIntern(t *testing.T) {
	var table intern.Table

	a := table.Intern("foo.bar")
	b := table.InternBytes([]byte("foo.bar"))
	c := table.InternRunes([]rune("foo.bar"))
	require.Equal(t, istring.New("foo.bar"), a)
	require.Equal(t, a, b)
	require.Equal(t, a, c)
	require.True(t, unsafex.SameData(a.String(), b.String()))
	require.True(t, unsafex.SameData(a.String(), c.String()))

	require.Equal(t, 1, table.Len())
	require.Equal(t, len("foo.bar"), table.Size())

	x, ok := table.Query("foo.bar")
	require.True(t, ok)
	require.True(t, unsafex.SameData(a.String(), x.String()))

	_, ok = table.Query("foo")
	require.False(t, ok)
	_, ok = table.QueryBytes([]byte("foo"))
	require.False(t, ok)

	x, ok = table.Query("")
	require.True(t, ok)
	require.True(t, x.IsEmpty())
	require.Equal(t, istring.IString{}, table.Intern(""))
	require.Equal(t, 1, table.Len())
}

func TestInternCopies(t *testing.T) {
	var table intern.Table

	in := []byte("héllo")
	x := table.InternBytes(in)
	in[0] = 'j'
	require.Equal(t, "héllo", x.String())

	y, ok := table.QueryBytes([]byte("héllo"))
	require.True(t, ok)
	require.Equal(t, x, y)

	s := string([]byte("world"))
	z := table.Intern(s)
	require.False(t, unsafex.SameData(s, z.String()))
}

func TestInternInvalidUTF8(t *testing.T) {
	var table intern.Table
	x := table.InternBytes([]byte{0xff, 0xfe})
	require.False(t, x.IsValidUTF8())
	require.Equal(t, x, table.InternBytes([]byte{0xff, 0xfe}))

	// invalid runes are stored as U+FFFD
	y := table.InternRunes([]rune{0xD800})
	require.Equal(t, table.Intern("\uFFFD"), y)
	require.Equal(t, 2, table.Len())
}

func TestInternRange(t *testing.T) {
	var table intern.Table
	for _, s := range []string{"b", "a", "c", "a"} {
		table.Intern(s)
	}
	var got []string
	table.Range(func(x istring.IString) bool {
		got = append(got, x.String())
		return true
	})
	sort.Strings(got)
	assert.Equal(t, []string{"a", "b", "c"}, got)

	n := 0
	table.Range(func(istring.IString) bool {
		n++
		return false
	})
	assert.Equal(t, 1, n)
}

func TestInternConcurrent(t *testing.T) {
	t.Parallel()

	data := make([]string, 100)
	for i := range data {
		data[i] = fmt.Sprintf("ident_%d", i)
	}

	var table intern.Table
	results := make([][]istring.IString, 8)
	var wg sync.WaitGroup
	for g := range results {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for _, s := range data {
				results[g] = append(results[g], table.Intern(s))
			}
		}(g)
	}
	wg.Wait()

	require.Equal(t, len(data), table.Len())
	for i, s := range data {
		want, ok := table.Query(s)
		require.True(t, ok)
		for g := range results {
			got := results[g][i]
			require.Equal(t, want, got)
			require.True(t, unsafex.SameData(want.String(), got.String()), "%s", s)
		}
	}
}

func randStrings(m, n int) []string {
	b := make([]byte, m*n)
	rand.Read(b)
	ret := make([]string, 0, n)
	for i := 0; i < n; i++ {
		ret = append(ret, string(b[m*i:m*(i+1)]))
	}
	return ret
}

func BenchmarkIntern(b *testing.B) {
	ss := randStrings(16, 1000)
	var table intern.Table
	for _, s := range ss {
		table.Intern(s)
	}
	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			_ = table.Intern(ss[i%len(ss)])
			i++
		}
	})
}
