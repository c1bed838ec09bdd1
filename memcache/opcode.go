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

// Opcode identifies a binary-protocol command.
type Opcode uint8

const (
	OpGet       Opcode = 0x00
	OpSet       Opcode = 0x01
	OpAdd       Opcode = 0x02
	OpReplace   Opcode = 0x03
	OpDelete    Opcode = 0x04
	OpIncrement Opcode = 0x05
	OpDecrement Opcode = 0x06
	OpAppend    Opcode = 0x0E
	OpPrepend   Opcode = 0x0F

	OpGetQ     Opcode = 0x09
	OpSetQ     Opcode = 0x11
	OpAddQ     Opcode = 0x12
	OpReplaceQ Opcode = 0x13
	OpDeleteQ  Opcode = 0x14
	OpIncrQ    Opcode = 0x15
	OpDecrQ    Opcode = 0x16
	OpAppendQ  Opcode = 0x19
	OpPrependQ Opcode = 0x1A
)

// quietOf maps a quiet opcode onto its non-quiet equivalent; it is the
// zero value for opcodes that have no quiet form.
var quietOf = map[Opcode]Opcode{
	OpGetQ:     OpGet,
	OpSetQ:     OpSet,
	OpAddQ:     OpAdd,
	OpReplaceQ: OpReplace,
	OpDeleteQ:  OpDelete,
	OpIncrQ:    OpIncrement,
	OpDecrQ:    OpDecrement,
	OpAppendQ:  OpAppend,
	OpPrependQ: OpPrepend,
}

// normalizeQuiet returns the canonical (non-quiet) opcode and whether op
// was a quiet opcode in the first place.
func normalizeQuiet(op Opcode) (Opcode, bool) {
	if canon, ok := quietOf[op]; ok {
		return canon, true
	}
	return op, false
}

// name is the text-protocol command token each opcode normalizes to.
func (o Opcode) name() (string, bool) {
	switch o {
	case OpGet:
		return "get", true
	case OpSet:
		return "set", true
	case OpAdd:
		return "add", true
	case OpReplace:
		return "replace", true
	case OpDelete:
		return "delete", true
	case OpIncrement:
		return "incr", true
	case OpDecrement:
		return "decr", true
	case OpAppend:
		return "append", true
	case OpPrepend:
		return "prepend", true
	default:
		return "", false
	}
}

// extrasLayout describes what the binary extras field must contain for a
// given opcode, used to validate (extlen, keylen, bodylen) before the
// request is accepted.
type extrasLayout struct {
	extLen     uint8
	needsKey   bool
	hasValue   bool
	arithmetic bool // incr/decr: extras are {delta:u64, initial:u64, expiration:u32}
}

var layouts = map[Opcode]extrasLayout{
	OpGet:       {extLen: 0, needsKey: true},
	OpDelete:    {extLen: 0, needsKey: true},
	OpSet:       {extLen: 8, needsKey: true, hasValue: true},
	OpAdd:       {extLen: 8, needsKey: true, hasValue: true},
	OpReplace:   {extLen: 8, needsKey: true, hasValue: true},
	OpAppend:    {extLen: 0, needsKey: true, hasValue: true},
	OpPrepend:   {extLen: 0, needsKey: true, hasValue: true},
	OpIncrement: {extLen: 20, needsKey: true, arithmetic: true},
	OpDecrement: {extLen: 20, needsKey: true, arithmetic: true},
}

// SuppressOnMiss reports whether a quiet request normalized onto this
// canonical opcode suppresses its reply specifically on a cache miss, as
// opposed to on success. Request.Opcode always holds the canonical
// (non-quiet) form — see normalizeQuiet — so this compares against OpGet,
// not OpGetQ: a quiet get suppresses only the miss case (a hit still
// replies with the value), while the mutating *Q opcodes suppress every
// successful reply regardless of this method. Callers gate on Request.Quiet
// first; this only decides which of the two suppression rules applies.
func (o Opcode) SuppressOnMiss() bool {
	return o == OpGet
}
