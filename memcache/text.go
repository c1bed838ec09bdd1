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
	"bytes"
	"strconv"

	"github.com/tair-opensource/tair-client-go/command"
	"github.com/tair-opensource/tair-client-go/internal/buffer"
)

const (
	maxKeyLen       = 250
	maxLineLen      = 64 * 1024
	defaultMaxItem  = 1024 * 1024
	storageCASIndex = 5 // index of the optional cas-unique field for the "cas" command
	mscanBytesIndex = 5 // index of the body-length field in an mscan command line
	mscanMinFields  = 6 // mscan f1 f2 f3 f4 bytes
)

var storageCommands = map[string]bool{
	"set": true, "add": true, "replace": true, "append": true, "prepend": true, "cas": true,
}

// pendingBody is the state held between a storage (or mscan) command's
// first line and its value line arriving.
type pendingBody struct {
	prefix command.Argv // "memcache_<op>", key, flags, exptime, bytes
	cas    string       // trailing field appended after the body; empty means none
	n      int
}

// TextDecoder is a resumable decoder for the Memcached text dialect.
type TextDecoder struct {
	pending     *pendingBody
	maxItemSize int
}

// NewTextDecoder returns a TextDecoder. maxItemSize caps a stored value's
// size (memcached_max_item_size); 0 selects the default (1 MiB).
func NewTextDecoder(maxItemSize int) *TextDecoder {
	if maxItemSize <= 0 {
		maxItemSize = defaultMaxItem
	}
	return &TextDecoder{maxItemSize: maxItemSize}
}

// Status mirrors resp.Status so callers that multiplex both codecs can
// share a switch; memcache intentionally does not import package resp to
// avoid a pointless cross-codec dependency. It is the decode-progress
// status of a single Decode call, distinct from RespStatus (a
// binary-protocol response status code).
type Status int

const (
	Done Status = iota
	NeedMore
	Failed
)

// Decode consumes as much of buf as forms a complete command, returning
// its normalized Request once one is available.
func (d *TextDecoder) Decode(buf *buffer.Buffer) (*Request, Status, error) {
	if d.pending != nil {
		return d.continueBody(buf)
	}

	idx := buf.FindEOL(0)
	if idx < 0 {
		if buf.ReadableBytes() > maxLineLen {
			return nil, Failed, errBadCommandLine
		}
		return nil, NeedMore, nil
	}
	raw := buf.Next(idx + 1)
	line := trimCRLF(raw)
	fields := bytes.Fields(line)
	if len(fields) == 0 {
		return nil, Failed, errUnknownCommand
	}
	cmd := string(bytes.ToLower(fields[0]))

	switch {
	case storageCommands[cmd]:
		return d.startStorage(buf, cmd, fields)
	case cmd == "mscan":
		return d.startMscan(buf, fields)
	case cmd == "incr" || cmd == "decr":
		return d.arithmetic(cmd, fields)
	case cmd == "delete":
		return d.delete(fields)
	case cmd == "get" || cmd == "gets":
		return d.retrieval(cmd, fields)
	default:
		return nil, Failed, errUnknownCommand
	}
}

func trimCRLF(raw []byte) []byte {
	n := len(raw)
	if n > 0 && raw[n-1] == '\n' {
		n--
	}
	if n > 0 && raw[n-1] == '\r' {
		n--
	}
	return raw[:n]
}

func (d *TextDecoder) startStorage(buf *buffer.Buffer, cmd string, fields [][]byte) (*Request, Status, error) {
	minFields := 5 // cmd key flags exptime bytes
	if cmd == "cas" {
		minFields = 6
	}
	if len(fields) < minFields {
		return nil, Failed, errBadCommandLine
	}
	key := fields[1]
	if len(key) > maxKeyLen {
		return nil, Failed, errBadCommandLine
	}
	n, err := strconv.Atoi(string(fields[4]))
	if err != nil || n < 0 {
		return nil, Failed, errBadCommandLine
	}
	if n > d.maxItemSize {
		return nil, Failed, errObjectTooLarge
	}
	cas := "-1"
	if cmd == "cas" {
		cas = string(fields[storageCASIndex])
	}
	prefix := command.Argv{
		[]byte("memcache_" + cmd),
		key,
		fields[2],
		fields[3],
		fields[4],
	}
	d.pending = &pendingBody{prefix: prefix, cas: cas, n: n}
	return d.continueBody(buf)
}

func (d *TextDecoder) continueBody(buf *buffer.Buffer) (*Request, Status, error) {
	p := d.pending
	if buf.ReadableBytes() < p.n+2 {
		return nil, NeedMore, nil
	}
	body := cloneBytes(buf.Next(p.n))
	term := buf.Next(2)
	if len(term) != 2 || term[0] != '\r' || term[1] != '\n' {
		d.pending = nil
		return nil, Failed, errBadDataChunk
	}
	argv := append(command.Argv{}, p.prefix...)
	argv = append(argv, body)
	if p.cas != "" {
		argv = append(argv, []byte(p.cas))
	}
	d.pending = nil
	return &Request{Argv: argv}, Done, nil
}

// startMscan parses an "mscan" command line, whose body length lives at
// mscanBytesIndex rather than storage's fixed index 4, and whose body
// carries no trailing CAS sentinel and is not subject to maxItemSize.
func (d *TextDecoder) startMscan(buf *buffer.Buffer, fields [][]byte) (*Request, Status, error) {
	if len(fields) < mscanMinFields {
		return nil, Failed, errBadCommandLine
	}
	n, err := strconv.Atoi(string(fields[mscanBytesIndex]))
	if err != nil || n < 0 {
		return nil, Failed, errBadCommandLine
	}
	prefix := command.Argv{
		[]byte("memcache_mscan"),
		fields[1],
		fields[2],
		fields[3],
		fields[4],
		fields[5],
	}
	d.pending = &pendingBody{prefix: prefix, n: n}
	return d.continueBody(buf)
}

func (d *TextDecoder) arithmetic(cmd string, fields [][]byte) (*Request, Status, error) {
	if len(fields) < 3 {
		return nil, Failed, errBadCommandLine
	}
	argv := command.Argv{
		[]byte("memcache_" + cmd),
		fields[1],
		fields[2],
		[]byte("0"),
		[]byte("0"),
		[]byte("-1"),
	}
	return &Request{Argv: argv}, Done, nil
}

func (d *TextDecoder) delete(fields [][]byte) (*Request, Status, error) {
	if len(fields) < 2 {
		return nil, Failed, errBadCommandLine
	}
	argv := command.Argv{[]byte("memcache_delete"), fields[1], []byte("-1")}
	return &Request{Argv: argv}, Done, nil
}

func (d *TextDecoder) retrieval(cmd string, fields [][]byte) (*Request, Status, error) {
	if len(fields) < 2 {
		return nil, Failed, errBadCommandLine
	}
	argv := make(command.Argv, 0, len(fields))
	argv = append(argv, []byte("memcache_"+cmd))
	argv = append(argv, fields[1:]...)
	return &Request{Argv: argv}, Done, nil
}

func cloneBytes(b []byte) []byte {
	if len(b) == 0 {
		return []byte{}
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
