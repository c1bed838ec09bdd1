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

// Package resp implements spec component D: a resumable RESP2/RESP3
// decoder built on top of package packet. Decoding never recurses and
// never blocks — it holds its in-progress state (an explicit stack of
// pending aggregates, plus at most one pending length-prefixed body read)
// as struct fields on Decoder, the same discipline the source's
// RedisProtocol state machine uses instead of a coroutine.
package resp

// Status is the outcome of a single Decode call.
type Status int

const (
	// Done means a complete top-level Packet was produced; the buffer's
	// read index has advanced over exactly the bytes that made it up.
	Done Status = iota
	// NeedMore means no complete top-level Packet is available yet; the
	// buffer's read index has advanced over whatever complete sub-tokens
	// were already consumed, and the Decoder retains enough state to
	// resume from exactly this point once more bytes are appended.
	NeedMore
	// Failed means the buffered bytes can never form a valid packet. The
	// Decoder must be discarded (or Reset) before reuse; the connection
	// that owns it should be torn down.
	Failed
)

func (s Status) String() string {
	switch s {
	case Done:
		return "Done"
	case NeedMore:
		return "NeedMore"
	case Failed:
		return "Failed"
	default:
		return "Status(?)"
	}
}
