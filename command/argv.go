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

// Package command defines the Command Argument Vector: the shape both the
// RESP and Memcached codecs normalize into, and the shape the cluster
// dispatcher consumes to pick a route. It has no decode/encode logic of
// its own — that lives in resp and memcache — only the shared value type
// and the small set of pure helpers every consumer needs (name lookup,
// conversion to/from a Packet array).
package command

import (
	"bytes"

	"github.com/pkg/errors"

	"github.com/tair-opensource/tair-client-go/packet"
)

// Argv is one command invocation: argv[0] is the command name, the rest
// are its arguments. It is built by the caller (or a codec's decode
// path), borrowed by the dispatcher to compute a slot, then consumed by
// an encoder — it is never mutated in place by any of the three.
type Argv [][]byte

// Name returns argv[0] lower-cased, the form every dispatch comparison
// uses; empty Argv returns "".
func (a Argv) Name() string {
	if len(a) == 0 {
		return ""
	}
	return string(bytes.ToLower(a[0]))
}

// Is reports whether argv[0] case-insensitively equals name.
func (a Argv) Is(name string) bool { return a.Name() == name }

// At returns argv[i] and true, or nil and false if i is out of bounds —
// callers use this instead of direct indexing so an undersized command
// becomes a routing failure rather than a panic.
func (a Argv) At(i int) ([]byte, bool) {
	if i < 0 || i >= len(a) {
		return nil, false
	}
	return a[i], true
}

// ToPacket builds the RESP request representation of argv: an Array of
// non-null BulkStrings, the same shape DecodeRequest produces for a
// multibulk request.
func (a Argv) ToPacket() packet.Packet {
	items := make([]packet.Packet, len(a))
	for i, f := range a {
		items[i] = packet.NewBulkString(f)
	}
	return packet.NewArray(items...)
}

// FromPacket extracts an Argv from a decoded request Packet, which must
// be a non-null Array of non-null BulkStrings (what both DecodeRequest's
// multibulk and inline paths always produce).
func FromPacket(p packet.Packet) (Argv, error) {
	if p.Kind != packet.Array || p.IsNull {
		return nil, errors.Errorf("command: expected array, got %s", p.Kind)
	}
	out := make(Argv, len(p.Items))
	for i, it := range p.Items {
		if it.Kind != packet.BulkString || it.IsNull {
			return nil, errors.Errorf("command: argv[%d] is not a bulk string", i)
		}
		out[i] = it.Str
	}
	return out, nil
}

// New is a convenience constructor for building an Argv literal from
// strings, e.g. New("set", key, value).
func New(fields ...string) Argv {
	out := make(Argv, len(fields))
	for i, f := range fields {
		out[i] = []byte(f)
	}
	return out
}
