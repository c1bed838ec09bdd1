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

package memcache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair-opensource/tair-client-go/internal/buffer"
)

func argvStrings(req *Request) []string {
	out := make([]string, len(req.Argv))
	for i, f := range req.Argv {
		out[i] = string(f)
	}
	return out
}

func TestTextSetProducesPrefixedArgv(t *testing.T) {
	d := NewTextDecoder(0)
	buf := buffer.New(64)
	buf.AppendString("set K 0 0 5\r\nhello\r\n")
	req, status, err := d.Decode(buf)
	require.NoError(t, err)
	require.Equal(t, Done, status)
	assert.Equal(t, []string{"memcache_set", "K", "0", "0", "5", "hello", "-1"}, argvStrings(req))
	assert.Equal(t, 0, buf.ReadableBytes())
}

func TestTextSetByteAtATime(t *testing.T) {
	wire := []byte("set K 0 0 5\r\nhello\r\n")
	d := NewTextDecoder(0)
	buf := buffer.New(8)
	var req *Request
	for i, b := range wire {
		buf.Append([]byte{b})
		r, status, err := d.Decode(buf)
		require.NoError(t, err, "byte %d", i)
		if status == Done {
			req = r
			break
		}
		assert.Equal(t, NeedMore, status, "byte %d", i)
	}
	require.NotNil(t, req)
	assert.Equal(t, []string{"memcache_set", "K", "0", "0", "5", "hello", "-1"}, argvStrings(req))
}

func TestTextCasIncludesCasUnique(t *testing.T) {
	d := NewTextDecoder(0)
	buf := buffer.New(64)
	buf.AppendString("cas K 0 0 3 42\r\nabc\r\n")
	req, status, err := d.Decode(buf)
	require.NoError(t, err)
	require.Equal(t, Done, status)
	assert.Equal(t, []string{"memcache_cas", "K", "0", "0", "3", "abc", "42"}, argvStrings(req))
}

func TestTextMscanOmitsCasSentinel(t *testing.T) {
	d := NewTextDecoder(0)
	buf := buffer.New(64)
	buf.AppendString("mscan cursor0 10 0 0 5\r\nhello\r\n")
	req, status, err := d.Decode(buf)
	require.NoError(t, err)
	require.Equal(t, Done, status)
	assert.Equal(t, []string{"memcache_mscan", "cursor0", "10", "0", "0", "5", "hello"}, argvStrings(req))
	assert.Equal(t, 0, buf.ReadableBytes())
}

func TestTextMscanIgnoresMaxItemSize(t *testing.T) {
	d := NewTextDecoder(1)
	buf := buffer.New(64)
	buf.AppendString("mscan cursor0 10 0 0 5\r\nhello\r\n")
	_, status, err := d.Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, Done, status)
}

func TestTextMscanTooFewFields(t *testing.T) {
	d := NewTextDecoder(0)
	buf := buffer.New(64)
	buf.AppendString("mscan cursor0 10\r\n")
	_, status, err := d.Decode(buf)
	assert.Equal(t, Failed, status)
	assert.ErrorIs(t, err, errBadCommandLine)
}

func TestTextIncrDecr(t *testing.T) {
	d := NewTextDecoder(0)
	buf := buffer.New(64)
	buf.AppendString("incr K 5\r\n")
	req, status, err := d.Decode(buf)
	require.NoError(t, err)
	require.Equal(t, Done, status)
	assert.Equal(t, []string{"memcache_incr", "K", "5", "0", "0", "-1"}, argvStrings(req))
}

func TestTextDelete(t *testing.T) {
	d := NewTextDecoder(0)
	buf := buffer.New(64)
	buf.AppendString("delete K\r\n")
	req, status, err := d.Decode(buf)
	require.NoError(t, err)
	require.Equal(t, Done, status)
	assert.Equal(t, []string{"memcache_delete", "K", "-1"}, argvStrings(req))
}

func TestTextUnknownCommand(t *testing.T) {
	d := NewTextDecoder(0)
	buf := buffer.New(64)
	buf.AppendString("frobnicate K\r\n")
	_, status, err := d.Decode(buf)
	assert.Equal(t, Failed, status)
	assert.ErrorIs(t, err, errUnknownCommand)
}

func TestTextKeyTooLong(t *testing.T) {
	d := NewTextDecoder(0)
	buf := buffer.New(512)
	longKey := make([]byte, 251)
	for i := range longKey {
		longKey[i] = 'a'
	}
	buf.AppendString("set ")
	buf.Append(longKey)
	buf.AppendString(" 0 0 1\r\nx\r\n")
	_, status, err := d.Decode(buf)
	assert.Equal(t, Failed, status)
	assert.ErrorIs(t, err, errBadCommandLine)
}

func TestTextObjectTooLarge(t *testing.T) {
	d := NewTextDecoder(10)
	buf := buffer.New(64)
	buf.AppendString("set K 0 0 20\r\n")
	_, status, err := d.Decode(buf)
	assert.Equal(t, Failed, status)
	assert.ErrorIs(t, err, errObjectTooLarge)
}

func TestTextBadDataChunkTerminator(t *testing.T) {
	d := NewTextDecoder(0)
	buf := buffer.New(64)
	buf.AppendString("set K 0 0 5\r\nhelloXX")
	_, status, err := d.Decode(buf)
	assert.Equal(t, Failed, status)
	assert.ErrorIs(t, err, errBadDataChunk)
}
