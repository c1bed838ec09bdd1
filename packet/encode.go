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

package packet

import (
	"strconv"

	"github.com/tair-opensource/tair-client-go/internal/buffer"
)

// Encoding is linear, never resumable: callers query the size once, ensure
// room, then append. Only decode needs the Progress state machine in
// package resp.

const crlf = "\r\n"

// EncodedSizeV3 returns the exact number of bytes EncodeV3 will append.
func (p Packet) EncodedSizeV3() int {
	switch p.Kind {
	case SimpleString:
		return 1 + len(p.Str) + 2
	case Error:
		return 1 + len(p.Str) + 2
	case Integer:
		return 1 + decimalLen(p.Int) + 2
	case BulkString:
		if p.IsNull {
			return len("$-1\r\n")
		}
		return 1 + decimalLen(int64(len(p.Str))) + 2 + len(p.Str) + 2
	case Array:
		if p.IsNull {
			return len("*-1\r\n")
		}
		n := 1 + decimalLen(int64(len(p.Items))) + 2
		for _, it := range p.Items {
			n += it.EncodedSizeV3()
		}
		return n
	case Null:
		return len("_\r\n")
	case Double:
		return 1 + len(formatDouble(p.Double)) + 2
	case Boolean:
		return len("#t\r\n")
	case BigNumber:
		return 1 + len(p.Str) + 2
	case BlobError:
		return 1 + decimalLen(int64(len(p.Str))) + 2 + len(p.Str) + 2
	case VerbatimString:
		body := 4 + len(p.Str)
		return 1 + decimalLen(int64(body)) + 2 + body + 2
	case Map, Attribute:
		n := 1 + decimalLen(int64(len(p.Pairs))) + 2
		for _, kv := range p.Pairs {
			n += kv.Key.EncodedSizeV3() + kv.Value.EncodedSizeV3()
		}
		return n
	case Set, Push:
		n := 1 + decimalLen(int64(len(p.Items))) + 2
		for _, it := range p.Items {
			n += it.EncodedSizeV3()
		}
		return n
	default:
		return 0
	}
}

// EncodedSizeV2 returns the exact number of bytes EncodeV2 will append:
// RESP3-only variants are projected onto their nearest RESP2 equivalent.
func (p Packet) EncodedSizeV2() int {
	switch p.Kind {
	case Null:
		return len("$-1\r\n")
	case Double:
		b := NewBulkString([]byte(formatDouble(p.Double)))
		return b.EncodedSizeV2()
	case Boolean:
		if p.Bool {
			return NewInteger(1).EncodedSizeV2()
		}
		return NewInteger(0).EncodedSizeV2()
	case BigNumber:
		return NewBulkString(p.Str).EncodedSizeV2()
	case BlobError:
		return NewError(escapeSimple(p.Str)).EncodedSizeV2()
	case VerbatimString:
		return NewBulkString(p.Str).EncodedSizeV2()
	case Map, Attribute:
		n := 1 + decimalLen(int64(2*len(p.Pairs))) + 2
		for _, kv := range p.Pairs {
			n += kv.Key.EncodedSizeV2() + kv.Value.EncodedSizeV2()
		}
		return n
	case Set, Push:
		n := 1 + decimalLen(int64(len(p.Items))) + 2
		for _, it := range p.Items {
			n += it.EncodedSizeV2()
		}
		return n
	case Array:
		if p.IsNull {
			return len("*-1\r\n")
		}
		n := 1 + decimalLen(int64(len(p.Items))) + 2
		for _, it := range p.Items {
			n += it.EncodedSizeV2()
		}
		return n
	default:
		return p.EncodedSizeV3()
	}
}

// EncodeV3 appends the full RESP3 wire encoding of p to buf.
func (p Packet) EncodeV3(buf *buffer.Buffer) {
	switch p.Kind {
	case SimpleString:
		buf.Append([]byte{'+'})
		buf.Append(p.Str)
		buf.AppendCRLF()
	case Error:
		buf.Append([]byte{'-'})
		buf.Append(p.Str)
		buf.AppendCRLF()
	case Integer:
		buf.Append([]byte{':'})
		buf.AppendNumberAsText(p.Int)
		buf.AppendCRLF()
	case BulkString:
		if p.IsNull {
			buf.AppendString("$-1\r\n")
			return
		}
		buf.Append([]byte{'$'})
		buf.AppendNumberAsText(int64(len(p.Str)))
		buf.AppendCRLF()
		buf.Append(p.Str)
		buf.AppendCRLF()
	case Array:
		if p.IsNull {
			buf.AppendString("*-1\r\n")
			return
		}
		buf.Append([]byte{'*'})
		buf.AppendNumberAsText(int64(len(p.Items)))
		buf.AppendCRLF()
		for _, it := range p.Items {
			it.EncodeV3(buf)
		}
	case Null:
		buf.AppendString("_\r\n")
	case Double:
		buf.Append([]byte{','})
		buf.AppendString(formatDouble(p.Double))
		buf.AppendCRLF()
	case Boolean:
		if p.Bool {
			buf.AppendString("#t\r\n")
		} else {
			buf.AppendString("#f\r\n")
		}
	case BigNumber:
		buf.Append([]byte{'('})
		buf.Append(p.Str)
		buf.AppendCRLF()
	case BlobError:
		buf.Append([]byte{'!'})
		buf.AppendNumberAsText(int64(len(p.Str)))
		buf.AppendCRLF()
		buf.Append(p.Str)
		buf.AppendCRLF()
	case VerbatimString:
		body := 4 + len(p.Str)
		buf.Append([]byte{'='})
		buf.AppendNumberAsText(int64(body))
		buf.AppendCRLF()
		buf.AppendString(p.Tag)
		buf.Append([]byte{':'})
		buf.Append(p.Str)
		buf.AppendCRLF()
	case Map, Attribute:
		if p.Kind == Map {
			buf.Append([]byte{'%'})
		} else {
			buf.Append([]byte{'|'})
		}
		buf.AppendNumberAsText(int64(len(p.Pairs)))
		buf.AppendCRLF()
		for _, kv := range p.Pairs {
			kv.Key.EncodeV3(buf)
			kv.Value.EncodeV3(buf)
		}
	case Set, Push:
		if p.Kind == Set {
			buf.Append([]byte{'~'})
		} else {
			buf.Append([]byte{'>'})
		}
		buf.AppendNumberAsText(int64(len(p.Items)))
		buf.AppendCRLF()
		for _, it := range p.Items {
			it.EncodeV3(buf)
		}
	}
}

// EncodeV2 appends p's RESP2 wire projection to buf, folding RESP3-only
// variants onto their nearest RESP2 equivalent (see spec §4.D "Encoding
// rules").
func (p Packet) EncodeV2(buf *buffer.Buffer) {
	switch p.Kind {
	case Null:
		buf.AppendString("$-1\r\n")
	case Double:
		NewBulkString([]byte(formatDouble(p.Double))).EncodeV2(buf)
	case Boolean:
		if p.Bool {
			NewInteger(1).EncodeV2(buf)
		} else {
			NewInteger(0).EncodeV2(buf)
		}
	case BigNumber:
		NewBulkString(p.Str).EncodeV2(buf)
	case BlobError:
		NewError(escapeSimple(p.Str)).EncodeV2(buf)
	case VerbatimString:
		NewBulkString(p.Str).EncodeV2(buf)
	case Map, Attribute:
		buf.Append([]byte{'*'})
		buf.AppendNumberAsText(int64(2 * len(p.Pairs)))
		buf.AppendCRLF()
		for _, kv := range p.Pairs {
			kv.Key.EncodeV2(buf)
			kv.Value.EncodeV2(buf)
		}
	case Set, Push:
		buf.Append([]byte{'*'})
		buf.AppendNumberAsText(int64(len(p.Items)))
		buf.AppendCRLF()
		for _, it := range p.Items {
			it.EncodeV2(buf)
		}
	case Array:
		if p.IsNull {
			buf.AppendString("*-1\r\n")
			return
		}
		buf.Append([]byte{'*'})
		buf.AppendNumberAsText(int64(len(p.Items)))
		buf.AppendCRLF()
		for _, it := range p.Items {
			it.EncodeV2(buf)
		}
	default:
		p.EncodeV3(buf)
	}
}

func decimalLen(i int64) int {
	if i == 0 {
		return 1
	}
	n := 0
	if i < 0 {
		n++
		i = -i
	}
	for i > 0 {
		n++
		i /= 10
	}
	return n
}

func formatDouble(f float64) string {
	switch {
	case f != f:
		return "nan"
	case f > 1.7976931348623157e+308:
		return "inf"
	case f < -1.7976931348623157e+308:
		return "-inf"
	default:
		return strconv.FormatFloat(f, 'g', 17, 64)
	}
}

// escapeSimple makes arbitrary bytes safe to carry as a RESP2 simple-error
// line (no CR/LF) when a RESP2 client can't accept a BlobError's
// length-prefixed form, mirroring the source's toPrintableStr: named
// control characters get their backslash form, everything else non-
// printable is \xHH, and printable ASCII passes through unchanged.
func escapeSimple(b []byte) string {
	out := make([]byte, 0, len(b))
	for _, c := range b {
		switch c {
		case '"':
			out = append(out, '\\', '"')
		case '\\':
			out = append(out, '\\', '\\')
		case '\n':
			out = append(out, '\\', 'n')
		case '\r':
			out = append(out, '\\', 'r')
		case '\t':
			out = append(out, '\\', 't')
		case '\a':
			out = append(out, '\\', 'a')
		case '\b':
			out = append(out, '\\', 'b')
		default:
			if c >= 0x20 && c < 0x7f {
				out = append(out, c)
			} else {
				out = append(out, '\\', 'x', hexDigit(c>>4), hexDigit(c&0x0f))
			}
		}
	}
	return string(out)
}

func hexDigit(n byte) byte {
	if n < 10 {
		return '0' + n
	}
	return 'a' + (n - 10)
}
