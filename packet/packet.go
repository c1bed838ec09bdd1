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

// Package packet implements spec component C: a tagged-union value model
// covering every RESP2/RESP3 wire type, shared by the RESP and Memcached
// codecs. Where the source (tair-client, C++) used a Packet base class and
// virtual dispatch, this is a single struct with an explicit Kind tag and
// pattern-match-style (switch) arms — aggregates hold their children by
// value, so there are no cycles and nothing to reference-count.
package packet

import "fmt"

// Kind identifies which of the fifteen RESP wire-value variants a Packet
// holds.
type Kind uint8

const (
	SimpleString Kind = iota
	Error
	Integer
	BulkString
	Array
	Null
	Double
	Boolean
	BigNumber
	BlobError
	VerbatimString
	Map
	Set
	Attribute
	Push
)

func (k Kind) String() string {
	switch k {
	case SimpleString:
		return "SimpleString"
	case Error:
		return "Error"
	case Integer:
		return "Integer"
	case BulkString:
		return "BulkString"
	case Array:
		return "Array"
	case Null:
		return "Null"
	case Double:
		return "Double"
	case Boolean:
		return "Boolean"
	case BigNumber:
		return "BigNumber"
	case BlobError:
		return "BlobError"
	case VerbatimString:
		return "VerbatimString"
	case Map:
		return "Map"
	case Set:
		return "Set"
	case Attribute:
		return "Attribute"
	case Push:
		return "Push"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Pair is one key/value entry of a Map or Attribute.
type Pair struct {
	Key   Packet
	Value Packet
}

// Packet is the sum-type value for every RESP wire value. Only the fields
// relevant to Kind are meaningful; the zero Packet is Kind==SimpleString
// with an empty Str, matching the source's "all-zero-value is an empty
// simple value" convention for the common defaulted case.
type Packet struct {
	Kind Kind

	// Str holds: SimpleString/Error text, BulkString/BlobError bytes,
	// BigNumber decimal digits (as text), and VerbatimString's body
	// (without the 3-byte format tag).
	Str []byte

	// IsNull marks the null form of BulkString or Array. It is never set
	// on any other Kind.
	IsNull bool

	Int    int64
	Double float64
	Bool   bool

	// Tag is VerbatimString's 3-character format hint, e.g. "txt", "mkd".
	Tag string

	// Items holds the ordered children of Array, Set, or Push.
	Items []Packet

	// Pairs holds the ordered key/value entries of Map or Attribute.
	Pairs []Pair
}

// NewSimpleString builds a SimpleString packet.
func NewSimpleString(s string) Packet { return Packet{Kind: SimpleString, Str: []byte(s)} }

// NewError builds an Error packet.
func NewError(msg string) Packet { return Packet{Kind: Error, Str: []byte(msg)} }

// NewInteger builds an Integer packet.
func NewInteger(i int64) Packet { return Packet{Kind: Integer, Int: i} }

// NewBulkString builds a non-null BulkString packet. A nil b is treated as
// an empty (zero-length), not null, bulk string — use NewNullBulkString
// for the null form.
func NewBulkString(b []byte) Packet {
	if b == nil {
		b = []byte{}
	}
	return Packet{Kind: BulkString, Str: b}
}

// NewNullBulkString builds the null BulkString.
func NewNullBulkString() Packet { return Packet{Kind: BulkString, IsNull: true} }

// NewArray builds a non-null Array packet.
func NewArray(items ...Packet) Packet { return Packet{Kind: Array, Items: items} }

// NewNullArray builds the null Array.
func NewNullArray() Packet { return Packet{Kind: Array, IsNull: true} }

// NewNull builds the RESP3 Null variant (distinct on the wire from a null
// bulk string or null array; collapses to the same RESP2 bytes as a null
// bulk string).
func NewNull() Packet { return Packet{Kind: Null} }

// NewDouble builds a Double packet.
func NewDouble(f float64) Packet { return Packet{Kind: Double, Double: f} }

// NewBoolean builds a Boolean packet.
func NewBoolean(b bool) Packet { return Packet{Kind: Boolean, Bool: b} }

// NewBigNumber builds a BigNumber packet from its decimal digit text
// (which may be arbitrarily large — it is never parsed as an int64).
func NewBigNumber(digits string) Packet { return Packet{Kind: BigNumber, Str: []byte(digits)} }

// NewBlobError builds a BlobError packet.
func NewBlobError(b []byte) Packet { return Packet{Kind: BlobError, Str: b} }

// NewVerbatimString builds a VerbatimString packet. tag must be exactly 3
// bytes (e.g. "txt", "mkd").
func NewVerbatimString(tag string, body []byte) Packet {
	return Packet{Kind: VerbatimString, Tag: tag, Str: body}
}

// NewMap builds a Map packet.
func NewMap(pairs ...Pair) Packet { return Packet{Kind: Map, Pairs: pairs} }

// NewSet builds a Set packet.
func NewSet(items ...Packet) Packet { return Packet{Kind: Set, Items: items} }

// NewAttribute builds an Attribute packet.
func NewAttribute(pairs ...Pair) Packet { return Packet{Kind: Attribute, Pairs: pairs} }

// NewPush builds a Push packet.
func NewPush(items ...Packet) Packet { return Packet{Kind: Push, Items: items} }

// IsError reports whether the packet represents a protocol-level
// application error (RESP Error or BlobError), as opposed to a decode
// failure, which never produces a Packet at all.
func (p Packet) IsError() bool { return p.Kind == Error || p.Kind == BlobError }

// Equal reports deep equality, treating Items/Pairs element-wise and NaN
// doubles as unequal to everything including themselves (matching Go's
// own float equality, not spec-mandated but the only sane default).
func (p Packet) Equal(o Packet) bool {
	if p.Kind != o.Kind {
		return false
	}
	switch p.Kind {
	case SimpleString, Error, BigNumber, BlobError:
		return bytesEqual(p.Str, o.Str)
	case BulkString:
		return p.IsNull == o.IsNull && (p.IsNull || bytesEqual(p.Str, o.Str))
	case Integer:
		return p.Int == o.Int
	case Double:
		return p.Double == o.Double
	case Boolean:
		return p.Bool == o.Bool
	case Null:
		return true
	case VerbatimString:
		return p.Tag == o.Tag && bytesEqual(p.Str, o.Str)
	case Array, Set, Push:
		if p.IsNull != o.IsNull || len(p.Items) != len(o.Items) {
			return false
		}
		for i := range p.Items {
			if !p.Items[i].Equal(o.Items[i]) {
				return false
			}
		}
		return true
	case Map, Attribute:
		if len(p.Pairs) != len(o.Pairs) {
			return false
		}
		for i := range p.Pairs {
			if !p.Pairs[i].Key.Equal(o.Pairs[i].Key) || !p.Pairs[i].Value.Equal(o.Pairs[i].Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
