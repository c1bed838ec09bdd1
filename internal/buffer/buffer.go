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

// Package buffer implements the ring-style I/O buffer shared by every
// codec: a contiguous byte region with a cheap prepend region ahead of the
// readable bytes, modeled after the muduo/netty ChannelBuffer layout.
//
//	+-------------------+------------------+------------------+
//	| prependable bytes |  readable bytes  |  writable bytes  |
//	+-------------------+------------------+------------------+
//	0      <=      readIndex   <=    writeIndex    <=      cap
//
// A Buffer is owned by exactly one endpoint (an input or output stream of a
// single connection) and is never shared across goroutines.
package buffer

import (
	"bytes"
	"encoding/binary"
	"strconv"

	"github.com/valyala/bytebufferpool"
)

// DefaultPrependSize is the number of bytes reserved ahead of the readable
// region for in-place length-prefix framing.
const DefaultPrependSize = 8

const defaultInitialSize = 1024

var crlf = []byte{'\r', '\n'}

// pool backs LeaseScratch/ReleaseScratch with
// github.com/valyala/bytebufferpool. A Buffer's own storage is not pooled:
// Reset keeps it, and growing allocates a new array with make().
var pool bytebufferpool.Pool

// Buffer is a growable byte buffer with a reserved prepend region.
type Buffer struct {
	buf         []byte
	readIndex   int
	writeIndex  int
	prependSize int
}

// New allocates a Buffer with the given initial capacity (excluding the
// prepend region) and the default prepend size.
func New(initialSize int) *Buffer {
	return NewSize(initialSize, DefaultPrependSize)
}

// NewSize allocates a Buffer with an explicit prepend region size.
func NewSize(initialSize, prependSize int) *Buffer {
	if initialSize <= 0 {
		initialSize = defaultInitialSize
	}
	b := &Buffer{
		buf:         make([]byte, prependSize+initialSize),
		readIndex:   prependSize,
		writeIndex:  prependSize,
		prependSize: prependSize,
	}
	return b
}

// ReadableBytes returns the number of unread bytes.
func (b *Buffer) ReadableBytes() int { return b.writeIndex - b.readIndex }

// WritableBytes returns the number of bytes that can be written before a
// grow is required.
func (b *Buffer) WritableBytes() int { return len(b.buf) - b.writeIndex }

// PrependableBytes returns the number of bytes available to Prepend.
func (b *Buffer) PrependableBytes() int { return b.readIndex }

// Bytes returns the unread region. The slice is only valid until the next
// mutating call.
func (b *Buffer) Bytes() []byte { return b.buf[b.readIndex:b.writeIndex] }

// Reset discards all buffered data, returning the buffer to its initial
// empty state but keeping the underlying storage for reuse.
func (b *Buffer) Reset() { b.Truncate(0) }

// Truncate keeps the first n unread bytes and discards the rest.
func (b *Buffer) Truncate(n int) {
	if n == 0 {
		b.readIndex = b.prependSize
		b.writeIndex = b.prependSize
		return
	}
	if b.writeIndex > b.readIndex+n {
		b.writeIndex = b.readIndex + n
	}
}

// Skip advances the read index by n, clamping to the readable region.
func (b *Buffer) Skip(n int) {
	if n >= b.ReadableBytes() {
		b.Reset()
		return
	}
	b.readIndex += n
}

// Reserve grows the buffer, if needed, so that its capacity beyond the
// prepend region is at least n bytes. Bytes already readable count toward
// n: when the capacity already suffices nothing is moved, and a later
// Append compacts as usual.
func (b *Buffer) Reserve(n int) {
	if len(b.buf) >= n+b.prependSize {
		return
	}
	b.grow(n + b.prependSize)
}

// EnsureWritable guarantees WritableBytes() >= n, compacting or growing the
// backing array as needed. Per spec this is: if the unread bytes plus n
// plus the prepend region fit in the current capacity, compact in place;
// otherwise reallocate to 2*capacity+n.
func (b *Buffer) EnsureWritable(n int) {
	if b.WritableBytes() < n {
		b.grow(n)
	}
}

func (b *Buffer) grow(n int) {
	if b.WritableBytes()+b.PrependableBytes() < n+b.prependSize {
		newCap := len(b.buf)*2 + n
		newBuf := make([]byte, newCap)
		readable := b.ReadableBytes()
		copy(newBuf[b.prependSize:], b.buf[b.readIndex:b.writeIndex])
		b.buf = newBuf
		b.readIndex = b.prependSize
		b.writeIndex = b.prependSize + readable
		return
	}
	// compact: slide the unread bytes back to the start of the prepend
	// boundary to make room without growing.
	readable := b.ReadableBytes()
	copy(b.buf[b.prependSize:], b.buf[b.readIndex:b.writeIndex])
	b.readIndex = b.prependSize
	b.writeIndex = b.prependSize + readable
}

// Append writes p to the writable region, growing the buffer if needed.
func (b *Buffer) Append(p []byte) {
	b.EnsureWritable(len(p))
	n := copy(b.buf[b.writeIndex:], p)
	b.writeIndex += n
}

// AppendString is a convenience wrapper for Append([]byte(s)) that avoids
// the intermediate allocation.
func (b *Buffer) AppendString(s string) {
	b.EnsureWritable(len(s))
	n := copy(b.buf[b.writeIndex:], s)
	b.writeIndex += n
}

// AppendNumberAsText appends the base-10 text form of i.
func (b *Buffer) AppendNumberAsText(i int64) {
	b.EnsureWritable(20)
	b.buf = strconv.AppendInt(b.buf[:b.writeIndex], i, 10)
	b.writeIndex = len(b.buf)
}

// AppendCRLF appends the RESP line terminator.
func (b *Buffer) AppendCRLF() { b.Append(crlf) }

func (b *Buffer) AppendI8(v int8) { b.Append([]byte{byte(v)}) }

func (b *Buffer) AppendI16(v int16) {
	b.EnsureWritable(2)
	binary.BigEndian.PutUint16(b.buf[b.writeIndex:b.writeIndex+2], uint16(v))
	b.writeIndex += 2
}

func (b *Buffer) AppendI32(v int32) {
	b.EnsureWritable(4)
	binary.BigEndian.PutUint32(b.buf[b.writeIndex:b.writeIndex+4], uint32(v))
	b.writeIndex += 4
}

func (b *Buffer) AppendI64(v int64) {
	b.EnsureWritable(8)
	binary.BigEndian.PutUint64(b.buf[b.writeIndex:b.writeIndex+8], uint64(v))
	b.writeIndex += 8
}

// Prepend writes p immediately before the current readable region,
// decrementing the read index. It panics if p doesn't fit in the prepend
// region — callers reserve the prepend region precisely for this purpose.
func (b *Buffer) Prepend(p []byte) {
	if len(p) > b.PrependableBytes() {
		panic("buffer: prepend does not fit in reserved region")
	}
	b.readIndex -= len(p)
	copy(b.buf[b.readIndex:], p)
}

func (b *Buffer) PrependI8(v int8)   { b.Prepend([]byte{byte(v)}) }
func (b *Buffer) PrependI16(v int16) { var p [2]byte; binary.BigEndian.PutUint16(p[:], uint16(v)); b.Prepend(p[:]) }
func (b *Buffer) PrependI32(v int32) { var p [4]byte; binary.BigEndian.PutUint32(p[:], uint32(v)); b.Prepend(p[:]) }
func (b *Buffer) PrependI64(v int64) { var p [8]byte; binary.BigEndian.PutUint64(p[:], uint64(v)); b.Prepend(p[:]) }

// ReadI8 reads and consumes a signed byte.
func (b *Buffer) ReadI8() int8 {
	v := b.PeekI8()
	b.readIndex++
	return v
}

func (b *Buffer) ReadI16() int16 { v := b.PeekI16(); b.readIndex += 2; return v }
func (b *Buffer) ReadI32() int32 { v := b.PeekI32(); b.readIndex += 4; return v }
func (b *Buffer) ReadI64() int64 { v := b.PeekI64(); b.readIndex += 8; return v }

// PeekI8 reads without consuming.
func (b *Buffer) PeekI8() int8 { return int8(b.buf[b.readIndex]) }

func (b *Buffer) PeekI16() int16 {
	return int16(binary.BigEndian.Uint16(b.buf[b.readIndex : b.readIndex+2]))
}

func (b *Buffer) PeekI32() int32 {
	return int32(binary.BigEndian.Uint32(b.buf[b.readIndex : b.readIndex+4]))
}

func (b *Buffer) PeekI64() int64 {
	return int64(binary.BigEndian.Uint64(b.buf[b.readIndex : b.readIndex+8]))
}

// Next returns (and consumes) the next n unread bytes. If fewer than n are
// available, it returns everything that's left, same as NextAll.
func (b *Buffer) Next(n int) []byte {
	if n >= b.ReadableBytes() {
		return b.NextAll()
	}
	p := b.buf[b.readIndex : b.readIndex+n]
	b.readIndex += n
	return p
}

// NextAll returns (and consumes) every remaining unread byte.
func (b *Buffer) NextAll() []byte {
	p := b.buf[b.readIndex:b.writeIndex]
	b.Reset()
	return p
}

// FindEOL returns the index (relative to the readable region, i.e. 0 is
// the first unread byte), starting the scan at "from", of the next '\n',
// or -1 if none is buffered yet.
func (b *Buffer) FindEOL(from int) int {
	i := bytes.IndexByte(b.buf[b.readIndex+from:b.writeIndex], '\n')
	if i < 0 {
		return -1
	}
	return from + i
}

// FindCRLF returns the index (relative to the readable region) of the next
// exact "\r\n" sequence starting at "from", or -1 if not yet buffered.
func (b *Buffer) FindCRLF(from int) int {
	i := bytes.Index(b.buf[b.readIndex+from:b.writeIndex], crlf)
	if i < 0 {
		return -1
	}
	return from + i
}

// LeaseScratch returns a pooled scratch buffer for codecs that need a
// temporary staging area (e.g. computing encoded_size before writing).
// Callers must call ReleaseScratch when done.
func LeaseScratch() *bytebufferpool.ByteBuffer { return pool.Get() }

// ReleaseScratch returns bb to the shared pool.
func ReleaseScratch(bb *bytebufferpool.ByteBuffer) { pool.Put(bb) }
