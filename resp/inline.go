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
	"github.com/tair-opensource/tair-client-go/internal/buffer"
	"github.com/tair-opensource/tair-client-go/packet"
)

// decodeInline parses the legacy inline command form: a single line,
// shell-quoted into argv, terminated by a bare '\n' (an optional
// preceding '\r' is stripped). No persistent state is kept across
// NeedMore: the whole line is re-scanned from the buffer's current read
// position on every call, which is cheap for the tiny lines inline
// commands are meant for.
func (d *Decoder) decodeInline(buf *buffer.Buffer) (*packet.Packet, Status, error) {
	idx := buf.FindEOL(0)
	if idx < 0 {
		if buf.ReadableBytes() > inlineMaxSize {
			return nil, Failed, errTooBigInlineReq
		}
		return nil, NeedMore, nil
	}
	raw := buf.Next(idx + 1)
	line := raw[:len(raw)-1]
	if len(line) > 0 && line[len(line)-1] == '\r' {
		line = line[:len(line)-1]
	}
	argv, err := splitInlineArgs(line)
	if err != nil {
		return nil, Failed, err
	}
	items := make([]packet.Packet, len(argv))
	for i, a := range argv {
		items[i] = packet.NewBulkString(a)
	}
	p := packet.NewArray(items...)
	return &p, Done, nil
}

// splitInlineArgs tokenizes a line the way Redis's sdssplitargs does:
// double-quoted tokens interpret C-style backslash escapes, single-quoted
// tokens only recognize \' as an escaped quote, and a quoted token must
// be immediately followed by whitespace or end of line.
func splitInlineArgs(line []byte) ([][]byte, error) {
	var argv [][]byte
	i := 0
	n := len(line)
	for {
		for i < n && isSpace(line[i]) {
			i++
		}
		if i == n {
			break
		}

		var cur []byte
		switch {
		case line[i] == '"':
			i++
			closed := false
			for i < n {
				if line[i] == '\\' && i+1 < n {
					c, width, ok := unescape(line[i+1:])
					if !ok {
						return nil, errUnbalancedQuotes
					}
					cur = append(cur, c)
					i += 1 + width
					continue
				}
				if line[i] == '"' {
					i++
					closed = true
					break
				}
				cur = append(cur, line[i])
				i++
			}
			if !closed || (i < n && !isSpace(line[i])) {
				return nil, errUnbalancedQuotes
			}
		case line[i] == '\'':
			i++
			closed := false
			for i < n {
				if line[i] == '\\' && i+1 < n && line[i+1] == '\'' {
					cur = append(cur, '\'')
					i += 2
					continue
				}
				if line[i] == '\'' {
					i++
					closed = true
					break
				}
				cur = append(cur, line[i])
				i++
			}
			if !closed || (i < n && !isSpace(line[i])) {
				return nil, errUnbalancedQuotes
			}
		default:
			for i < n && !isSpace(line[i]) {
				cur = append(cur, line[i])
				i++
			}
		}
		if cur == nil {
			cur = []byte{}
		}
		argv = append(argv, cur)
	}
	return argv, nil
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// unescape decodes one backslash escape starting just after the '\\' at
// the head of s. It returns the decoded byte, how many bytes of s (beyond
// the backslash itself) were consumed, and whether the escape was valid.
func unescape(s []byte) (byte, int, bool) {
	if len(s) == 0 {
		return 0, 0, false
	}
	switch s[0] {
	case 'n':
		return '\n', 1, true
	case 'r':
		return '\r', 1, true
	case 't':
		return '\t', 1, true
	case 'b':
		return '\b', 1, true
	case 'a':
		return '\a', 1, true
	case '\\', '"':
		return s[0], 1, true
	case 'x':
		if len(s) >= 3 && isHex(s[1]) && isHex(s[2]) {
			return hexVal(s[1])<<4 | hexVal(s[2]), 3, true
		}
		return 0, 0, false
	default:
		return s[0], 1, true
	}
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func hexVal(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
