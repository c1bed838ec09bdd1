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

import "github.com/tair-opensource/tair-client-go/internal/buffer"

// Decoder picks the text or binary dialect from the first byte of a
// fresh connection and sticks with it for the connection's lifetime —
// Memcached connections never switch dialect mid-stream.
type Decoder struct {
	text   *TextDecoder
	binary *BinaryDecoder
	isBin  bool
	picked bool
}

// NewDecoder returns a dialect-sniffing Decoder; maxItemSize caps a
// stored value's size for both dialects.
func NewDecoder(maxItemSize int) *Decoder {
	return &Decoder{
		text:   NewTextDecoder(maxItemSize),
		binary: NewBinaryDecoder(maxItemSize),
	}
}

// Decode decodes the next request from buf, sniffing the dialect on the
// first call.
func (d *Decoder) Decode(buf *buffer.Buffer) (*Request, Status, error) {
	if !d.picked {
		isBin, known := LooksBinary(buf)
		if !known {
			return nil, NeedMore, nil
		}
		d.isBin = isBin
		d.picked = true
	}
	if d.isBin {
		return d.binary.Decode(buf)
	}
	return d.text.Decode(buf)
}
