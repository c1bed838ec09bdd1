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
	"strconv"

	"github.com/tair-opensource/tair-client-go/command"
	"github.com/tair-opensource/tair-client-go/internal/buffer"
)

const (
	binaryMagicRequest  = 0x80
	binaryMagicResponse = 0x81
	binaryHeaderLen     = 24
)

type binaryHeader struct {
	magic    byte
	opcode   Opcode
	keyLen   uint16
	extLen   uint8
	dataType byte
	vbucket  uint16
	bodyLen  uint32
	opaque   uint32
	cas      uint64
}

// BinaryDecoder is a resumable decoder for the Memcached binary dialect.
// Unlike the text decoder it needs no persistent state across NeedMore:
// the header declares the exact body length up front, so every call
// either has the full `24 + bodylen` already buffered or doesn't, with
// nothing partial to remember in between.
type BinaryDecoder struct {
	maxItemSize int
}

// NewBinaryDecoder returns a BinaryDecoder; maxItemSize caps a stored
// value's size (0 selects the default).
func NewBinaryDecoder(maxItemSize int) *BinaryDecoder {
	if maxItemSize <= 0 {
		maxItemSize = defaultMaxItem
	}
	return &BinaryDecoder{maxItemSize: maxItemSize}
}

// LooksBinary reports whether buf's first byte is the binary magic,
// i.e. whether BinaryDecoder should be used for this connection's first
// request instead of TextDecoder.
func LooksBinary(buf *buffer.Buffer) (yes bool, known bool) {
	if buf.ReadableBytes() == 0 {
		return false, false
	}
	return buf.Bytes()[0] == binaryMagicRequest, true
}

func (d *BinaryDecoder) Decode(buf *buffer.Buffer) (*Request, Status, error) {
	if buf.ReadableBytes() < binaryHeaderLen {
		return nil, NeedMore, nil
	}
	raw := buf.Bytes()[:binaryHeaderLen]
	h := binaryHeader{
		magic:    raw[0],
		opcode:   Opcode(raw[1]),
		keyLen:   binary.BigEndian.Uint16(raw[2:4]),
		extLen:   raw[4],
		dataType: raw[5],
		vbucket:  binary.BigEndian.Uint16(raw[6:8]),
		bodyLen:  binary.BigEndian.Uint32(raw[8:12]),
		opaque:   binary.BigEndian.Uint32(raw[12:16]),
		cas:      binary.BigEndian.Uint64(raw[16:24]),
	}
	if h.magic != binaryMagicRequest {
		return nil, Failed, errBadCommandLine
	}
	if int(h.bodyLen) > d.maxItemSize+int(h.keyLen)+int(h.extLen) {
		return nil, Failed, errObjectTooLarge
	}

	total := binaryHeaderLen + int(h.bodyLen)
	if buf.ReadableBytes() < total {
		return nil, NeedMore, nil
	}

	canon, quiet := normalizeQuiet(h.opcode)
	layout, known := layouts[canon]
	if !known {
		buf.Skip(total)
		return nil, Failed, errUnknownCommand
	}
	if layout.extLen != h.extLen || (layout.needsKey && h.keyLen == 0) {
		buf.Skip(total)
		return nil, Failed, errBadCommandLine
	}

	buf.Skip(binaryHeaderLen)
	extras := cloneBytes(buf.Next(int(h.extLen)))
	key := cloneBytes(buf.Next(int(h.keyLen)))
	valueLen := int(h.bodyLen) - int(h.extLen) - int(h.keyLen)
	if valueLen < 0 {
		return nil, Failed, errBadCommandLine
	}
	value := cloneBytes(buf.Next(valueLen))

	name, ok := canon.name()
	if !ok {
		return nil, Failed, errUnknownCommand
	}

	var argv command.Argv
	switch {
	case layout.arithmetic:
		if len(extras) != 20 {
			return nil, Failed, errBadCommandLine
		}
		delta := binary.BigEndian.Uint64(extras[0:8])
		initial := binary.BigEndian.Uint64(extras[8:16])
		expiration := binary.BigEndian.Uint32(extras[16:20])
		argv = command.Argv{
			[]byte("memcache_" + name), key,
			[]byte(strconv.FormatUint(delta, 10)),
			[]byte(strconv.FormatUint(initial, 10)),
			[]byte(strconv.FormatUint(uint64(expiration), 10)),
			[]byte("-1"),
		}
	case layout.hasValue && layout.extLen == 8:
		flags := binary.BigEndian.Uint32(extras[0:4])
		exptime := binary.BigEndian.Uint32(extras[4:8])
		argv = command.Argv{
			[]byte("memcache_" + name), key,
			[]byte(strconv.FormatUint(uint64(flags), 10)),
			[]byte(strconv.FormatUint(uint64(exptime), 10)),
			[]byte(strconv.Itoa(len(value))),
			value,
			[]byte(strconv.FormatUint(h.cas, 10)),
		}
	case layout.hasValue:
		argv = command.Argv{[]byte("memcache_" + name), key, value}
	default:
		argv = command.Argv{[]byte("memcache_" + name), key, []byte("-1")}
	}

	return &Request{
		Argv:   argv,
		Binary: true,
		Opcode: canon,
		Opaque: h.opaque,
		CAS:    h.cas,
		Quiet:  quiet,
	}, Done, nil
}
