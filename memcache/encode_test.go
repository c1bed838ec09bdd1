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
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair-opensource/tair-client-go/command"
	"github.com/tair-opensource/tair-client-go/internal/buffer"
	"github.com/tair-opensource/tair-client-go/packet"
)

func hitReply(flags, cas int64, value string) *packet.Packet {
	item := packet.NewArray(
		packet.NewInteger(flags),
		packet.NewInteger(cas),
		packet.NewBulkString([]byte(value)),
	)
	p := packet.NewArray(item)
	return &p
}

func decodeHeader(t *testing.T, raw []byte) (opcode Opcode, status RespStatus, bodyLen uint32, opaque uint32, cas uint64) {
	t.Helper()
	require.GreaterOrEqual(t, len(raw), binaryHeaderLen)
	require.EqualValues(t, binaryMagicResponse, raw[0])
	opcode = Opcode(raw[1])
	status = RespStatus(binary.BigEndian.Uint16(raw[6:8]))
	bodyLen = binary.BigEndian.Uint32(raw[8:12])
	opaque = binary.BigEndian.Uint32(raw[12:16])
	cas = binary.BigEndian.Uint64(raw[16:24])
	return
}

func TestEncodeBinaryGetHit(t *testing.T) {
	req := &Request{Argv: command.New("memcache_get", "k"), Binary: true, Opcode: OpGet, Opaque: 5}
	buf := buffer.New(64)
	EncodeReply(buf, req, hitReply(7, 99, "bar"), nil)

	raw := buf.NextAll()
	opcode, status, bodyLen, opaque, cas := decodeHeader(t, raw)
	assert.Equal(t, OpGet, opcode)
	assert.Equal(t, StatusNoError, status)
	assert.EqualValues(t, 5, opaque)
	assert.EqualValues(t, 99, cas)
	assert.EqualValues(t, 4+3, bodyLen)
	body := raw[binaryHeaderLen:]
	assert.EqualValues(t, 7, binary.BigEndian.Uint32(body[0:4]))
	assert.Equal(t, "bar", string(body[4:]))
}

func TestEncodeBinaryGetMiss(t *testing.T) {
	req := &Request{Argv: command.New("memcache_get", "k"), Binary: true, Opcode: OpGet, Opaque: 1}
	buf := buffer.New(64)
	miss := packet.NewArray(packet.NewNullBulkString())
	EncodeReply(buf, req, &miss, nil)

	_, status, _, _, _ := decodeHeader(t, buf.NextAll())
	assert.Equal(t, StatusKeyNotFound, status)
}

func TestEncodeBinaryGetQSuppressesMissButNotHit(t *testing.T) {
	// A decoded GETQ request normalizes Opcode to the canonical OpGet
	// with Quiet set — see BinaryDecoder.Decode — so that's what's built
	// here, not the raw OpGetQ wire value.
	req := &Request{Argv: command.New("memcache_get", "k"), Binary: true, Opcode: OpGet, Quiet: true}
	missBuf := buffer.New(64)
	miss := packet.NewArray(packet.NewNullBulkString())
	EncodeReply(missBuf, req, &miss, nil)
	assert.Equal(t, 0, missBuf.ReadableBytes())

	hitBuf := buffer.New(64)
	EncodeReply(hitBuf, req, hitReply(0, 1, "v"), nil)
	assert.NotEqual(t, 0, hitBuf.ReadableBytes())
}

func TestEncodeBinarySetQSuppressesOnlyOnSuccess(t *testing.T) {
	req := &Request{Argv: command.New("memcache_set", "k", "0", "0", "1", "v", "-1"), Binary: true, Opcode: OpSet, Quiet: true}

	okBuf := buffer.New(64)
	ok := packet.NewInteger(1)
	EncodeReply(okBuf, req, &ok, nil)
	assert.Equal(t, 0, okBuf.ReadableBytes())

	failBuf := buffer.New(64)
	fail := packet.NewInteger(0)
	EncodeReply(failBuf, req, &fail, nil)
	assert.NotEqual(t, 0, failBuf.ReadableBytes())
	_, status, _, _, _ := decodeHeader(t, failBuf.NextAll())
	assert.Equal(t, StatusItemNotStored, status)
}

func TestEncodeBinaryIncrement(t *testing.T) {
	req := &Request{Argv: command.New("memcache_incr", "ctr", "1", "0", "0", "-1"), Binary: true, Opcode: OpIncrement}
	buf := buffer.New(64)
	v := packet.NewInteger(42)
	EncodeReply(buf, req, &v, nil)

	raw := buf.NextAll()
	_, status, bodyLen, _, _ := decodeHeader(t, raw)
	assert.Equal(t, StatusNoError, status)
	assert.EqualValues(t, 8, bodyLen)
	assert.EqualValues(t, 42, binary.BigEndian.Uint64(raw[binaryHeaderLen:]))
}

func TestEncodeBinaryCallErrorMapsToUnknownCommand(t *testing.T) {
	req := &Request{Argv: command.New("memcache_get", "k"), Binary: true, Opcode: OpGet}
	buf := buffer.New(64)
	EncodeReply(buf, req, nil, errUnknownCommand)

	_, status, _, _, _ := decodeHeader(t, buf.NextAll())
	assert.Equal(t, StatusUnknownCmd, status)
}

func TestEncodeTextGetWritesValueAndEnd(t *testing.T) {
	req := &Request{Argv: command.New("memcache_get", "k")}
	buf := buffer.New(64)
	EncodeReply(buf, req, hitReply(7, 99, "bar"), nil)
	assert.Equal(t, "VALUE k 7 3\r\nbar\r\nEND\r\n", string(buf.NextAll()))
}

func TestEncodeTextGetsIncludesCas(t *testing.T) {
	req := &Request{Argv: command.New("memcache_gets", "k")}
	buf := buffer.New(64)
	EncodeReply(buf, req, hitReply(0, 42, "v"), nil)
	assert.Equal(t, "VALUE k 0 1 42\r\nv\r\nEND\r\n", string(buf.NextAll()))
}

func TestEncodeTextGetMissIsJustEnd(t *testing.T) {
	req := &Request{Argv: command.New("memcache_get", "k")}
	buf := buffer.New(64)
	miss := packet.NewArray(packet.NewNullBulkString())
	EncodeReply(buf, req, &miss, nil)
	assert.Equal(t, "END\r\n", string(buf.NextAll()))
}

func TestEncodeTextSetStoredAndNotStored(t *testing.T) {
	req := &Request{Argv: command.New("memcache_set", "k", "0", "0", "1", "v", "-1")}

	storedBuf := buffer.New(64)
	ok := packet.NewInteger(1)
	EncodeReply(storedBuf, req, &ok, nil)
	assert.Equal(t, "STORED\r\n", string(storedBuf.NextAll()))

	notStoredBuf := buffer.New(64)
	fail := packet.NewInteger(0)
	EncodeReply(notStoredBuf, req, &fail, nil)
	assert.Equal(t, "NOT_STORED\r\n", string(notStoredBuf.NextAll()))
}

func TestEncodeTextDelete(t *testing.T) {
	req := &Request{Argv: command.New("memcache_delete", "k", "-1")}

	buf := buffer.New(64)
	ok := packet.NewInteger(1)
	EncodeReply(buf, req, &ok, nil)
	assert.Equal(t, "DELETED\r\n", string(buf.NextAll()))

	missBuf := buffer.New(64)
	miss := packet.NewInteger(0)
	EncodeReply(missBuf, req, &miss, nil)
	assert.Equal(t, "NOT_FOUND\r\n", string(missBuf.NextAll()))
}

func TestEncodeTextIncr(t *testing.T) {
	req := &Request{Argv: command.New("memcache_incr", "ctr", "1", "0", "0", "-1")}
	buf := buffer.New(64)
	v := packet.NewInteger(6)
	EncodeReply(buf, req, &v, nil)
	assert.Equal(t, "6\r\n", string(buf.NextAll()))
}

func TestEncodeTextPassesThroughBackendError(t *testing.T) {
	req := &Request{Argv: command.New("memcache_set", "k", "0", "0", "1", "v", "-1")}
	buf := buffer.New(64)
	errPkt := packet.NewError("CLIENT_ERROR bad data chunk")
	EncodeReply(buf, req, &errPkt, nil)
	assert.Equal(t, "CLIENT_ERROR bad data chunk\r\n", string(buf.NextAll()))
}

func TestEncodeTextCallErrorBecomesServerError(t *testing.T) {
	req := &Request{Argv: command.New("memcache_get", "k")}
	buf := buffer.New(64)
	EncodeReply(buf, req, nil, errBadCommandLine)
	assert.Contains(t, string(buf.NextAll()), "SERVER_ERROR")
}
