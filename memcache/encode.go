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
	"strings"

	"github.com/tair-opensource/tair-client-go/command"
	"github.com/tair-opensource/tair-client-go/internal/buffer"
	"github.com/tair-opensource/tair-client-go/packet"
)

// EncodeReply writes the Memcached-dialect wire response for req's backend
// outcome: reply is the packet.Packet a "memcache_<op>" command produced,
// callErr a transport/routing failure distinct from a backend-reported
// error. Binary-origin requests get the 24-byte header framing; text-origin
// requests get a status line (plus VALUE/END blocks for retrieval).
func EncodeReply(buf *buffer.Buffer, req *Request, reply *packet.Packet, callErr error) {
	if req.Binary {
		encodeBinaryReply(buf, req, reply, callErr)
		return
	}
	encodeTextReply(buf, req, reply, callErr)
}

// shouldSuppress reports whether a quiet binary request's reply is
// dropped for this status: the mutating *Q opcodes drop every successful
// reply, while GetQ inverts that and drops only a miss.
func shouldSuppress(req *Request, status RespStatus) bool {
	if !req.Quiet {
		return false
	}
	if req.Opcode.SuppressOnMiss() {
		return status == StatusKeyNotFound
	}
	return status == StatusNoError
}

func encodeBinaryReply(buf *buffer.Buffer, req *Request, reply *packet.Packet, callErr error) {
	status, extras, value, cas := binaryOutcome(req, reply, callErr)
	if status != StatusNoError {
		extras = nil
		value = []byte(statusMessage(status))
	}
	if shouldSuppress(req, status) {
		return
	}
	if cas == 0 {
		cas = req.CAS
	}
	opcode := req.Opcode
	if req.Quiet {
		for q, canon := range quietOf {
			if canon == req.Opcode {
				opcode = q
				break
			}
		}
	}
	writeBinaryHeader(buf, opcode, req.Opaque, cas, status, extras, value)
}

func writeBinaryHeader(buf *buffer.Buffer, opcode Opcode, opaque uint32, cas uint64, status RespStatus, extras, value []byte) {
	bodyLen := len(extras) + len(value)
	buf.AppendI8(int8(binaryMagicResponse))
	buf.AppendI8(int8(opcode))
	buf.AppendI16(0) // keylen: none of the wired opcodes echo the key back
	buf.AppendI8(int8(len(extras)))
	buf.AppendI8(0) // datatype: raw bytes
	buf.AppendI16(int16(uint16(status)))
	buf.AppendI32(int32(uint32(bodyLen)))
	buf.AppendI32(int32(opaque))
	buf.AppendI64(int64(cas))
	if len(extras) > 0 {
		buf.Append(extras)
	}
	if len(value) > 0 {
		buf.Append(value)
	}
}

// binaryOutcome maps a backend reply onto (status, extras, value, cas) for
// the request's canonical opcode. Where status comes back non-zero the
// caller replaces extras/value with the status's own message, so only the
// success path's extras/value need be exact here.
func binaryOutcome(req *Request, reply *packet.Packet, callErr error) (status RespStatus, extras, value []byte, cas uint64) {
	if callErr != nil {
		return StatusUnknownCmd, nil, nil, 0
	}
	if reply == nil {
		return StatusUnknownCmd, nil, nil, 0
	}
	if reply.IsError() {
		return statusFromErrorText(string(reply.Str)), nil, nil, 0
	}

	// req.Opcode is already canonical (the decoder never leaves a quiet
	// opcode in place — see normalizeQuiet), so no further normalization
	// is needed before dispatching on it.
	switch req.Opcode {
	case OpGet:
		return getOutcome(reply)
	case OpIncrement, OpDecrement:
		if reply.Kind == packet.Integer {
			v := uint64(reply.Int)
			extras := make([]byte, 8)
			binary.BigEndian.PutUint64(extras, v)
			return StatusNoError, extras, nil, v
		}
		return StatusNonNumeric, nil, nil, 0
	case OpDelete:
		if reply.Kind == packet.Integer && reply.Int != 0 {
			return StatusNoError, nil, nil, 0
		}
		return StatusKeyNotFound, nil, nil, 0
	default: // Set, Add, Replace, Append, Prepend
		if reply.Kind == packet.Integer && reply.Int != 0 {
			return StatusNoError, nil, nil, uint64(reply.Int)
		}
		return StatusItemNotStored, nil, nil, 0
	}
}

// getOutcome interprets a "memcache_get"/"memcache_gets" reply: an Array
// with one entry per requested key, each either a null BulkString (miss)
// or a 3-element Array of [flags Integer, cas Integer, value BulkString].
// Binary Get only ever carries a single key, so only the first entry
// matters here.
func getOutcome(reply *packet.Packet) (RespStatus, []byte, []byte, uint64) {
	if reply.Kind != packet.Array || len(reply.Items) == 0 {
		return StatusKeyNotFound, nil, nil, 0
	}
	item := reply.Items[0]
	if item.Kind != packet.Array || len(item.Items) != 3 {
		return StatusKeyNotFound, nil, nil, 0
	}
	flags := uint32(item.Items[0].Int)
	cas := uint64(item.Items[1].Int)
	value := item.Items[2].Str
	extras := make([]byte, 4)
	binary.BigEndian.PutUint32(extras, flags)
	return StatusNoError, extras, value, cas
}

// statusFromErrorText classifies a backend error line by its leading
// token, the same way a text-protocol error is classified at the client.
func statusFromErrorText(msg string) RespStatus {
	switch {
	case strings.HasPrefix(msg, "CLIENT_ERROR"):
		return StatusInvalidArgs
	case strings.HasPrefix(msg, "SERVER_ERROR"):
		return StatusOutOfMemory
	case strings.HasPrefix(msg, "NOPERM"), strings.HasPrefix(msg, "NOAUTH"):
		return StatusAuthError
	case strings.HasPrefix(msg, "Unknown"):
		return StatusUnknownCmd
	default:
		return StatusInvalidArgs
	}
}

func statusMessage(status RespStatus) string {
	switch status {
	case StatusOutOfMemory:
		return "Out of memory"
	case StatusUnknownCmd:
		return "Unknown command"
	case StatusKeyNotFound:
		return "Not found"
	case StatusInvalidArgs:
		return "Invalid arguments"
	case StatusKeyExists:
		return "Data exists for key."
	case StatusValueTooLarge:
		return "Too large."
	case StatusNonNumeric:
		return "Non-numeric server-side value for incr or decr"
	case StatusItemNotStored:
		return "Not stored."
	case StatusAuthError:
		return "Auth failure."
	default:
		return "Unknown error"
	}
}

func encodeTextReply(buf *buffer.Buffer, req *Request, reply *packet.Packet, callErr error) {
	name := strings.TrimPrefix(req.Argv.Name(), "memcache_")
	if callErr != nil {
		buf.AppendString("SERVER_ERROR " + callErr.Error())
		buf.AppendCRLF()
		return
	}
	if reply == nil {
		buf.AppendString("SERVER_ERROR no reply\r\n")
		return
	}
	if reply.IsError() {
		buf.Append(reply.Str)
		buf.AppendCRLF()
		return
	}
	switch name {
	case "get", "gets":
		encodeTextRetrieval(buf, req.Argv, reply, name == "gets")
	case "incr", "decr":
		if reply.Kind == packet.Integer {
			buf.AppendNumberAsText(reply.Int)
			buf.AppendCRLF()
		} else {
			buf.AppendString("NOT_FOUND\r\n")
		}
	case "delete":
		if reply.Kind == packet.Integer && reply.Int != 0 {
			buf.AppendString("DELETED\r\n")
		} else {
			buf.AppendString("NOT_FOUND\r\n")
		}
	case "cas":
		switch {
		case reply.Kind == packet.Integer && reply.Int == 1:
			buf.AppendString("STORED\r\n")
		case reply.Kind == packet.Integer && reply.Int == 0:
			buf.AppendString("EXISTS\r\n")
		default:
			buf.AppendString("NOT_FOUND\r\n")
		}
	default: // set, add, replace, append, prepend
		if reply.Kind == packet.Integer && reply.Int != 0 {
			buf.AppendString("STORED\r\n")
		} else {
			buf.AppendString("NOT_STORED\r\n")
		}
	}
}

// encodeTextRetrieval writes one VALUE line per requested key that hit,
// in request order, followed by a terminating END line. withCas appends
// the cas-unique field for "gets", matching the original's with_version_
// branch in its text encoder. A miss contributes no line at all: the
// text protocol has no per-key "not found" marker, only omission.
func encodeTextRetrieval(buf *buffer.Buffer, argv command.Argv, reply *packet.Packet, withCas bool) {
	keys := argv[1:]
	if reply.Kind == packet.Array {
		for i, item := range reply.Items {
			if i >= len(keys) || item.Kind != packet.Array || len(item.Items) != 3 {
				continue
			}
			flags := item.Items[0].Int
			cas := item.Items[1].Int
			value := item.Items[2].Str
			buf.AppendString("VALUE ")
			buf.Append(keys[i])
			buf.AppendString(" ")
			buf.AppendNumberAsText(flags)
			buf.AppendString(" ")
			buf.AppendNumberAsText(int64(len(value)))
			if withCas {
				buf.AppendString(" ")
				buf.AppendNumberAsText(cas)
			}
			buf.AppendCRLF()
			buf.Append(value)
			buf.AppendCRLF()
		}
	}
	buf.AppendString("END\r\n")
}
