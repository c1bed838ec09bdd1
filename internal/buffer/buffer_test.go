// Copyright 2026 The tair-client-go Authors
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

package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendAndNext(t *testing.T) {
	b := New(16)
	b.AppendString("hello world")
	require.Equal(t, 11, b.ReadableBytes())

	got := b.Next(5)
	assert.Equal(t, "hello", string(got))
	assert.Equal(t, 6, b.ReadableBytes())

	rest := b.NextAll()
	assert.Equal(t, " world", string(rest))
	assert.Equal(t, 0, b.ReadableBytes())
}

func TestGrowReallocatesWhenCompactionIsNotEnough(t *testing.T) {
	b := NewSize(4, DefaultPrependSize)
	b.AppendString("abcd")
	b.Skip(0) // nothing read yet; forces a real grow, not just compaction
	b.AppendString("efghijklmnopqrstuvwxyz")
	assert.Equal(t, "abcdefghijklmnopqrstuvwxyz", string(b.Bytes()))
}

func TestGrowCompactsInPlaceWhenRoomExists(t *testing.T) {
	b := New(32)
	b.AppendString("0123456789")
	b.Skip(8) // only "89" remains readable, freeing space at the front
	before := len(b.buf)
	b.EnsureWritable(28) // fits once the consumed prefix is reclaimed
	assert.Equal(t, before, len(b.buf), "compaction should not reallocate")
	assert.Equal(t, "89", string(b.Bytes()))
}

func TestPrependGrowsBackward(t *testing.T) {
	b := New(16)
	b.AppendString("body")
	b.Prepend([]byte("*1\r\n"))
	assert.Equal(t, "*1\r\nbody", string(b.Bytes()))
}

func TestPrependPanicsWhenRegionExhausted(t *testing.T) {
	b := NewSize(16, 2)
	assert.Panics(t, func() {
		b.Prepend([]byte("123"))
	})
}

func TestFindEOLAndCRLF(t *testing.T) {
	b := New(16)
	b.AppendString("foo\r\nbar\n")
	assert.Equal(t, 3, b.FindCRLF(0))
	assert.Equal(t, 4, b.FindEOL(0))
	assert.Equal(t, 8, b.FindEOL(5))
	assert.Equal(t, -1, b.FindCRLF(6))
}

func TestIntegerRoundTrip(t *testing.T) {
	b := New(16)
	b.AppendI32(42)
	b.AppendI64(-7)
	assert.EqualValues(t, 42, b.PeekI32())
	assert.EqualValues(t, 42, b.ReadI32())
	assert.EqualValues(t, -7, b.ReadI64())
	assert.Equal(t, 0, b.ReadableBytes())
}

func TestReservePreservesReadUnreadInvariant(t *testing.T) {
	b := New(16)
	b.AppendString("xyz")
	snapshot := append([]byte(nil), b.Bytes()...)
	b.Reserve(64) // a non-reading, non-reset op must not disturb [read,write)
	assert.Equal(t, snapshot, b.Bytes())
}

func TestTruncateKeepsPrefix(t *testing.T) {
	b := New(16)
	b.AppendString("abcdef")
	b.Truncate(3)
	assert.Equal(t, "abc", string(b.Bytes()))
}
