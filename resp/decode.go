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
	"strconv"

	"github.com/tair-opensource/tair-client-go/internal/buffer"
	"github.com/tair-opensource/tair-client-go/packet"
)

const (
	// maxLineLen bounds any single length/count/value line (count lines,
	// :, ,, #, ( lines) the way Redis bounds PROTO_INLINE_MAX_SIZE reuse
	// for protocol lines.
	maxLineLen = 64 * 1024
	// inlineMaxSize bounds an inline (non-multibulk) request line.
	inlineMaxSize = 64 * 1024
	// bigArgThreshold is the body size, in bytes, above which the
	// decoder pre-reserves buffer capacity for the whole body plus its
	// trailing CRLF before waiting on it, avoiding repeated
	// compact/grow churn while a large bulk streams in.
	bigArgThreshold = 32 * 1024
	// defaultMaxBulkLen mirrors Redis's proto-max-bulk-len default.
	defaultMaxBulkLen = 512 * 1024 * 1024
	// defaultMaxMultibulkLen mirrors Redis's hard multibulk ceiling.
	defaultMaxMultibulkLen = 1024 * 1024
	// requestMultibulkLimit is the request-path's multibulk ceiling,
	// distinct from (and far larger than) the response path's: the wire
	// format allows any int32 count here. The only other request-path
	// check on an array header is that it may not be null.
	requestMultibulkLimit = 1<<31 - 1
)

// frame is one level of an in-progress Array/Map/Set/Attribute/Push
// decode: how many more child values it needs, and what it has collected
// so far. Map and Attribute track children as a flat, pair-ordered
// sequence and split them into Pairs only once complete.
type frame struct {
	kind      packet.Kind
	remaining int
	collected []packet.Packet
}

func (f *frame) toPacket() packet.Packet {
	switch f.kind {
	case packet.Map, packet.Attribute:
		pairs := make([]packet.Pair, len(f.collected)/2)
		for i := range pairs {
			pairs[i] = packet.Pair{Key: f.collected[2*i], Value: f.collected[2*i+1]}
		}
		return packet.Packet{Kind: f.kind, Pairs: pairs}
	default:
		return packet.Packet{Kind: f.kind, Items: f.collected}
	}
}

// bulkPending is the state held while waiting for a length-prefixed
// body (BulkString, BlobError, VerbatimString) to fully arrive.
type bulkPending struct {
	kind packet.Kind
	n    int
}

// Decoder holds all state needed to resume a RESP decode across multiple
// Decode calls separated by partial reads. A Decoder decodes one logical
// stream of values in one direction; request and response directions need
// their own Decoder (see NewRequestDecoder / NewDecoder).
type Decoder struct {
	stack       []frame
	pendingBulk *bulkPending

	requestMode     bool
	maxBulkLen      int
	maxMultibulkLen int
}

// NewDecoder returns a Decoder for a stream of response-position values
// (or any standalone value stream: replies, pub/sub pushes, RDB-adjacent
// framed values).
func NewDecoder() *Decoder {
	return &Decoder{maxBulkLen: defaultMaxBulkLen, maxMultibulkLen: defaultMaxMultibulkLen}
}

// NewRequestDecoder returns a Decoder for the command-request position,
// where a bare (non-'*') leading byte means an inline command rather than
// a protocol error, a null array is rejected, and multibulk counts are
// checked against requestMultibulkLimit instead of the response path's
// cap.
func NewRequestDecoder() *Decoder {
	d := NewDecoder()
	d.requestMode = true
	return d
}

// Reset discards all in-progress decode state, as if the Decoder were
// freshly constructed. Callers use this after a Failed Status, once the
// owning connection is being torn down and a fresh one takes its place.
func (d *Decoder) Reset() {
	d.stack = d.stack[:0]
	d.pendingBulk = nil
}

// idle reports whether the decoder is between top-level values (no
// in-progress aggregate or pending body), the only state from which a
// request's leading byte may still route to the inline path.
func (d *Decoder) idle() bool { return len(d.stack) == 0 && d.pendingBulk == nil }

// DecodeRequest decodes one command from the request position: a
// multibulk array of bulk strings, or (source compatibility) a single
// inline, shell-quoted line.
func (d *Decoder) DecodeRequest(buf *buffer.Buffer) (*packet.Packet, Status, error) {
	if d.idle() {
		if buf.ReadableBytes() == 0 {
			return nil, NeedMore, nil
		}
		if buf.Bytes()[0] != '*' {
			return d.decodeInline(buf)
		}
	}
	return d.decode(buf)
}

// DecodeV2 decodes the next value from buf. It is dialect-agnostic at the
// wire level (the leading byte alone determines the variant); the V2/V3
// naming exists for symmetry with Packet's EncodeV2/EncodeV3 split, where
// the dialect actually changes the bytes produced.
func (d *Decoder) DecodeV2(buf *buffer.Buffer) (*packet.Packet, Status, error) { return d.decode(buf) }

// DecodeV3 decodes the next value from buf; see DecodeV2.
func (d *Decoder) DecodeV3(buf *buffer.Buffer) (*packet.Packet, Status, error) { return d.decode(buf) }

func (d *Decoder) decode(buf *buffer.Buffer) (*packet.Packet, Status, error) {
	for {
		if d.pendingBulk != nil {
			pkt, status, err := d.continueBulk(buf)
			if err != nil {
				d.Reset()
				return nil, Failed, err
			}
			if status == NeedMore {
				return nil, NeedMore, nil
			}
			if done, result := d.pushChild(pkt); done {
				return result, Done, nil
			}
			continue
		}

		if n := len(d.stack); n > 0 && d.stack[n-1].remaining == 0 {
			f := d.stack[n-1]
			d.stack = d.stack[:n-1]
			if done, result := d.pushChild(f.toPacket()); done {
				return result, Done, nil
			}
			continue
		}

		line, status, err := d.readLine(buf)
		if err != nil {
			d.Reset()
			return nil, Failed, err
		}
		if status == NeedMore {
			return nil, NeedMore, nil
		}

		pkt, fr, err := d.parseLine(buf, line)
		if err != nil {
			d.Reset()
			return nil, Failed, err
		}
		if d.pendingBulk != nil {
			continue
		}
		if fr != nil {
			if fr.remaining == 0 {
				if done, result := d.pushChild(fr.toPacket()); done {
					return result, Done, nil
				}
				continue
			}
			d.stack = append(d.stack, *fr)
			continue
		}
		if done, result := d.pushChild(pkt); done {
			return result, Done, nil
		}
	}
}

// pushChild delivers a freshly decoded value either to the frame on top
// of the stack, or — when the stack is empty — as the finished top-level
// result.
func (d *Decoder) pushChild(p packet.Packet) (done bool, result *packet.Packet) {
	if len(d.stack) == 0 {
		return true, &p
	}
	top := &d.stack[len(d.stack)-1]
	top.collected = append(top.collected, p)
	top.remaining--
	return false, nil
}

// readLine scans for the next CRLF-terminated protocol line without
// consuming it until the full line (including CRLF) is available.
func (d *Decoder) readLine(buf *buffer.Buffer) (line []byte, status Status, err error) {
	idx := buf.FindEOL(0)
	if idx < 0 {
		if buf.ReadableBytes() > maxLineLen {
			return nil, Failed, errTooBigCountString
		}
		return nil, NeedMore, nil
	}
	raw := buf.Next(idx + 1)
	if len(raw) < 2 || raw[len(raw)-2] != '\r' {
		return nil, Failed, errExpected([]byte("\r\n"), raw[max(0, len(raw)-2):])
	}
	return raw[:len(raw)-2], Done, nil
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func cloneBytes(b []byte) []byte {
	if len(b) == 0 {
		return []byte{}
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// parseLine dispatches on the leading type byte of a protocol line. It
// returns exactly one of: a complete one-line Packet, a frame describing
// a new in-progress aggregate, or (via d.pendingBulk) the start of a
// length-prefixed body read.
func (d *Decoder) parseLine(buf *buffer.Buffer, line []byte) (packet.Packet, *frame, error) {
	if len(line) == 0 {
		return packet.Packet{}, nil, errUnknownType(0)
	}
	body := line[1:]
	switch line[0] {
	case '+':
		return packet.NewSimpleString(string(body)), nil, nil
	case '-':
		return packet.NewError(string(body)), nil, nil
	case ':':
		i, err := strconv.ParseInt(string(body), 10, 64)
		if err != nil {
			return packet.Packet{}, nil, errIntegerFormat
		}
		return packet.NewInteger(i), nil, nil
	case '$':
		n, err := d.parseCount(body, errNoBulkStringLen)
		if err != nil {
			return packet.Packet{}, nil, err
		}
		if n == -1 {
			return packet.NewNullBulkString(), nil, nil
		}
		if n < -1 || n > int64(d.maxBulkLen) {
			return packet.Packet{}, nil, errInvalidBulkLength
		}
		d.startBulk(buf, packet.BulkString, int(n))
		return packet.Packet{}, nil, nil
	case '!':
		n, err := d.parseCount(body, errNoBulkStringLen)
		if err != nil {
			return packet.Packet{}, nil, err
		}
		if n == -1 {
			return packet.Packet{}, nil, errNonNullCapableNull
		}
		if n < -1 || n > int64(d.maxBulkLen) {
			return packet.Packet{}, nil, errInvalidBulkLength
		}
		d.startBulk(buf, packet.BlobError, int(n))
		return packet.Packet{}, nil, nil
	case '=':
		n, err := d.parseCount(body, errNoBulkStringLen)
		if err != nil {
			return packet.Packet{}, nil, err
		}
		if n == -1 {
			return packet.Packet{}, nil, errNonNullCapableNull
		}
		if n < -1 || n > int64(d.maxBulkLen) {
			return packet.Packet{}, nil, errInvalidBulkLength
		}
		d.startBulk(buf, packet.VerbatimString, int(n))
		return packet.Packet{}, nil, nil
	case '*':
		return d.parseAggregateHeader(body, packet.Array, !d.requestMode)
	case '%':
		p, fr, err := d.parseAggregateHeader(body, packet.Map, false)
		if fr != nil {
			fr.remaining *= 2
		}
		return p, fr, err
	case '~':
		return d.parseAggregateHeader(body, packet.Set, false)
	case '|':
		p, fr, err := d.parseAggregateHeader(body, packet.Attribute, false)
		if fr != nil {
			fr.remaining *= 2
		}
		return p, fr, err
	case '>':
		return d.parseAggregateHeader(body, packet.Push, false)
	case '_':
		return packet.NewNull(), nil, nil
	case ',':
		f, err := parseDouble(body)
		if err != nil {
			return packet.Packet{}, nil, err
		}
		return packet.NewDouble(f), nil, nil
	case '#':
		switch string(body) {
		case "t":
			return packet.NewBoolean(true), nil, nil
		case "f":
			return packet.NewBoolean(false), nil, nil
		default:
			return packet.Packet{}, nil, errBooleanFormat
		}
	case '(':
		if !isDecimalInteger(body) {
			return packet.Packet{}, nil, errBigNumberFormat
		}
		return packet.NewBigNumber(string(body)), nil, nil
	default:
		return packet.Packet{}, nil, errUnknownType(line[0])
	}
}

func (d *Decoder) startBulk(buf *buffer.Buffer, kind packet.Kind, n int) {
	if n >= bigArgThreshold {
		buf.Reserve(n + 2)
	}
	d.pendingBulk = &bulkPending{kind: kind, n: n}
}

func (d *Decoder) continueBulk(buf *buffer.Buffer) (packet.Packet, Status, error) {
	pb := d.pendingBulk
	if buf.ReadableBytes() < pb.n+2 {
		return packet.Packet{}, NeedMore, nil
	}
	body := cloneBytes(buf.Next(pb.n))
	term := buf.Next(2)
	if len(term) != 2 || term[0] != '\r' || term[1] != '\n' {
		return packet.Packet{}, Failed, errExpected([]byte("\r\n"), term)
	}
	d.pendingBulk = nil
	switch pb.kind {
	case packet.BlobError:
		return packet.NewBlobError(body), Done, nil
	case packet.VerbatimString:
		if len(body) < 4 || body[3] != ':' {
			return packet.Packet{}, Failed, errExpected([]byte(":"), body[min(3, len(body)):min(4, len(body))])
		}
		return packet.NewVerbatimString(string(body[:3]), cloneBytes(body[4:])), Done, nil
	default:
		return packet.NewBulkString(body), Done, nil
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// parseAggregateHeader parses the count of an Array/Map/Set/Attribute/Push
// header line. nullable allows a count of -1 to mean "null" (Array only);
// all other kinds reject it as errNonNullCapableNull. In request mode the
// caller always passes nullable=false (a request array is never null) and
// the count is checked against requestMultibulkLimit rather than the
// response path's maxMultibulkLen, matching the wire's real int32 range
// since the request decoder has no separate abuse guard to fall back on.
func (d *Decoder) parseAggregateHeader(body []byte, kind packet.Kind, nullable bool) (packet.Packet, *frame, error) {
	n, err := d.parseCount(body, errNoArraySize)
	if err != nil {
		return packet.Packet{}, nil, err
	}
	limit := int64(d.maxMultibulkLen)
	if d.requestMode {
		limit = requestMultibulkLimit
	}
	if n == -1 {
		if !nullable {
			return packet.Packet{}, nil, errNonNullCapableNull
		}
		return packet.Packet{Kind: kind, IsNull: true}, nil, nil
	}
	if n < -1 || n > limit {
		return packet.Packet{}, nil, errInvalidMultibulk
	}
	return packet.Packet{}, &frame{kind: kind, remaining: int(n)}, nil
}

func (d *Decoder) parseCount(body []byte, onParseErr error) (int64, error) {
	n, err := strconv.ParseInt(string(body), 10, 64)
	if err != nil {
		return 0, onParseErr
	}
	return n, nil
}

func isDecimalInteger(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	i := 0
	if b[0] == '-' || b[0] == '+' {
		i++
	}
	if i == len(b) {
		return false
	}
	for ; i < len(b); i++ {
		if b[i] < '0' || b[i] > '9' {
			return false
		}
	}
	return true
}

func parseDouble(b []byte) (float64, error) {
	switch string(b) {
	case "inf", "+inf":
		return posInf, nil
	case "-inf":
		return negInf, nil
	case "nan":
		return nan, nil
	}
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return 0, errDoubleFormat
	}
	return f, nil
}
