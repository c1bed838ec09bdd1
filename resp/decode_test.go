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

package resp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair-opensource/tair-client-go/internal/buffer"
	"github.com/tair-opensource/tair-client-go/packet"
)

func TestDecodeSimpleTypes(t *testing.T) {
	cases := []struct {
		wire string
		want packet.Packet
	}{
		{"+OK\r\n", packet.NewSimpleString("OK")},
		{"-ERR bad\r\n", packet.NewError("ERR bad")},
		{":1000\r\n", packet.NewInteger(1000)},
		{"$-1\r\n", packet.NewNullBulkString()},
		{"$5\r\nhello\r\n", packet.NewBulkString([]byte("hello"))},
		{"*-1\r\n", packet.NewNullArray()},
		{"_\r\n", packet.NewNull()},
		{"#t\r\n", packet.NewBoolean(true)},
		{",3.14\r\n", packet.NewDouble(3.14)},
		{"(3492890328409238509324850943850943825024385\r\n", packet.NewBigNumber("3492890328409238509324850943850943825024385")},
	}
	for _, c := range cases {
		d := NewDecoder()
		buf := buffer.New(64)
		buf.AppendString(c.wire)
		got, status, err := d.DecodeV3(buf)
		require.NoError(t, err, c.wire)
		require.Equal(t, Done, status, c.wire)
		assert.True(t, c.want.Equal(*got), "wire=%q got=%+v want=%+v", c.wire, got, c.want)
		assert.Equal(t, 0, buf.ReadableBytes(), "wire=%q should be fully consumed", c.wire)
	}
}

func TestDecodeVerbatimString(t *testing.T) {
	d := NewDecoder()
	buf := buffer.New(64)
	buf.AppendString("=10\r\ntxt:test\r\n\r\n")
	got, status, err := d.DecodeV3(buf)
	require.NoError(t, err)
	require.Equal(t, Done, status)
	assert.Equal(t, packet.VerbatimString, got.Kind)
	assert.Equal(t, "txt", got.Tag)
	assert.Equal(t, "test\r\n", string(got.Str))
}

func TestDecodeNestedArray(t *testing.T) {
	d := NewDecoder()
	buf := buffer.New(64)
	buf.AppendString("*2\r\n*2\r\n:1\r\n:2\r\n$5\r\nhello\r\n")
	got, status, err := d.DecodeV3(buf)
	require.NoError(t, err)
	require.Equal(t, Done, status)
	want := packet.NewArray(
		packet.NewArray(packet.NewInteger(1), packet.NewInteger(2)),
		packet.NewBulkString([]byte("hello")),
	)
	assert.True(t, want.Equal(*got))
}

func TestDecodeMapAndSet(t *testing.T) {
	d := NewDecoder()
	buf := buffer.New(64)
	buf.AppendString("%1\r\n+k\r\n:1\r\n")
	got, status, err := d.DecodeV3(buf)
	require.NoError(t, err)
	require.Equal(t, Done, status)
	want := packet.NewMap(packet.Pair{Key: packet.NewSimpleString("k"), Value: packet.NewInteger(1)})
	assert.True(t, want.Equal(*got))

	d2 := NewDecoder()
	buf2 := buffer.New(64)
	buf2.AppendString("~2\r\n:1\r\n:2\r\n")
	got2, status2, err2 := d2.DecodeV3(buf2)
	require.NoError(t, err2)
	require.Equal(t, Done, status2)
	assert.True(t, packet.NewSet(packet.NewInteger(1), packet.NewInteger(2)).Equal(*got2))
}

// TestDecodeByteAtATime verifies the decoder is fully resumable: feeding
// one byte per call must eventually reach Done with the same result as
// feeding the whole message at once, and every intermediate call must
// report NeedMore rather than erroring.
func TestDecodeByteAtATime(t *testing.T) {
	wire := []byte("*3\r\n$3\r\nSET\r\n$3\r\nfoo\r\n$3\r\nbar\r\n")
	d := NewDecoder()
	buf := buffer.New(8)
	var got *packet.Packet
	for i, b := range wire {
		buf.Append([]byte{b})
		pkt, status, err := d.DecodeV3(buf)
		require.NoError(t, err, "byte %d", i)
		if status == Done {
			got = pkt
			assert.Equal(t, len(wire)-1, i, "Done fired before last byte")
			break
		}
		assert.Equal(t, NeedMore, status, "byte %d", i)
	}
	require.NotNil(t, got)
	want := packet.NewArray(
		packet.NewBulkString([]byte("SET")),
		packet.NewBulkString([]byte("foo")),
		packet.NewBulkString([]byte("bar")),
	)
	assert.True(t, want.Equal(*got))
}

func TestDecodeRejectsUnknownType(t *testing.T) {
	d := NewDecoder()
	buf := buffer.New(64)
	buf.AppendString("X1\r\n")
	_, status, err := d.DecodeV3(buf)
	assert.Equal(t, Failed, status)
	assert.Error(t, err)
}

func TestDecodeRejectsNullBlobError(t *testing.T) {
	d := NewDecoder()
	buf := buffer.New(64)
	buf.AppendString("!-1\r\n")
	_, status, err := d.DecodeV3(buf)
	assert.Equal(t, Failed, status)
	assert.ErrorIs(t, err, errNonNullCapableNull)
}

func TestDecodeRequestMultibulk(t *testing.T) {
	d := NewRequestDecoder()
	buf := buffer.New(64)
	buf.AppendString("*2\r\n$3\r\nGET\r\n$3\r\nfoo\r\n")
	got, status, err := d.DecodeRequest(buf)
	require.NoError(t, err)
	require.Equal(t, Done, status)
	want := packet.NewArray(packet.NewBulkString([]byte("GET")), packet.NewBulkString([]byte("foo")))
	assert.True(t, want.Equal(*got))
}

func TestDecodeRequestRejectsNullArray(t *testing.T) {
	d := NewRequestDecoder()
	buf := buffer.New(64)
	buf.AppendString("*-1\r\n")
	_, status, err := d.DecodeRequest(buf)
	assert.Equal(t, Failed, status)
	assert.ErrorIs(t, err, errNonNullCapableNull)
}

func TestDecodeRequestInline(t *testing.T) {
	d := NewRequestDecoder()
	buf := buffer.New(64)
	buf.AppendString("GET foo\n")
	got, status, err := d.DecodeRequest(buf)
	require.NoError(t, err)
	require.Equal(t, Done, status)
	want := packet.NewArray(packet.NewBulkString([]byte("GET")), packet.NewBulkString([]byte("foo")))
	assert.True(t, want.Equal(*got))
}

func TestDecodeRequestInlineQuoted(t *testing.T) {
	d := NewRequestDecoder()
	buf := buffer.New(64)
	buf.AppendString(`SET key "hello world\n"` + "\n")
	got, status, err := d.DecodeRequest(buf)
	require.NoError(t, err)
	require.Equal(t, Done, status)
	require.Len(t, got.Items, 3)
	assert.Equal(t, "hello world\n", string(got.Items[2].Str))
}

func TestDecodeRequestInlineUnbalancedQuotes(t *testing.T) {
	d := NewRequestDecoder()
	buf := buffer.New(64)
	buf.AppendString(`SET key "unterminated` + "\n")
	_, status, err := d.DecodeRequest(buf)
	assert.Equal(t, Failed, status)
	assert.ErrorIs(t, err, errUnbalancedQuotes)
}

func TestDecodeRequestEmptyBufferNeedsMore(t *testing.T) {
	d := NewRequestDecoder()
	buf := buffer.New(64)
	_, status, err := d.DecodeRequest(buf)
	assert.NoError(t, err)
	assert.Equal(t, NeedMore, status)
}

func TestDecoderIsReusableAcrossValues(t *testing.T) {
	d := NewDecoder()
	buf := buffer.New(64)
	buf.AppendString(":1\r\n:2\r\n")
	p1, s1, err1 := d.DecodeV3(buf)
	require.NoError(t, err1)
	require.Equal(t, Done, s1)
	assert.Equal(t, int64(1), p1.Int)

	p2, s2, err2 := d.DecodeV3(buf)
	require.NoError(t, err2)
	require.Equal(t, Done, s2)
	assert.Equal(t, int64(2), p2.Int)
}
